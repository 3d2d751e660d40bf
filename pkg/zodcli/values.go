// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zodcli

import "slices"

// Values maps argument names to their typed values. Absent optional
// arguments have no entry.
//
// Value types: string (String, Enum), float64 (Number), bool (Boolean),
// []string (arrays of String or Enum) and []float64 (arrays of Number).
type Values map[string]any

// Lookup returns the raw value for name.
func (v Values) Lookup(name string) (any, bool) {
	x, ok := v[name]
	return x, ok
}

// Has reports whether name resolved to a value.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// String returns the string value for name, or "".
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Number returns the numeric value for name, or 0.
func (v Values) Number(name string) float64 {
	n, _ := v[name].(float64)
	return n
}

// Int returns the numeric value for name truncated to int, or 0.
func (v Values) Int(name string) int {
	return int(v.Number(name))
}

// Bool returns the boolean value for name, or false.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Strings returns a copy of the string slice for name, or nil.
func (v Values) Strings(name string) []string {
	s, _ := v[name].([]string)
	return slices.Clone(s)
}

// Numbers returns a copy of the number slice for name, or nil.
func (v Values) Numbers(name string) []float64 {
	n, _ := v[name].([]float64)
	return slices.Clone(n)
}
