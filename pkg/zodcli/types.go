// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zodcli

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind is the tag of a Type.
type Kind int

const (
	KindString Kind = iota + 1
	KindNumber
	KindBoolean
	KindEnum
	KindArray
	KindOptional
	KindDefault
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	case KindOptional:
		return "optional"
	case KindDefault:
		return "default"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Type describes the value an argument accepts. A Type is an immutable value;
// the modifier methods return a new Type wrapping the receiver.
//
// The zero Type is invalid and rejected when a Command is built.
type Type struct {
	kind   Kind
	values []string // KindEnum
	inner  *Type    // KindArray, KindOptional, KindDefault

	// KindDefault. defFunc is set for both static and lazy defaults; lazy
	// reports whether it is a caller-supplied thunk.
	defFunc func() any
	lazy    bool
}

// String returns a Type accepting any string token.
func String() Type { return Type{kind: KindString} }

// Number returns a Type accepting a numeric token, decoded as float64.
func Number() Type { return Type{kind: KindNumber} }

// Boolean returns a Type for presence flags. Named boolean options never
// consume the following token.
func Boolean() Type { return Type{kind: KindBoolean} }

// Enum returns a Type accepting one of values.
func Enum(values ...string) Type {
	return Type{kind: KindEnum, values: slices.Clone(values)}
}

// Array returns a Type collecting every occurrence of an option, or every
// token of a rest argument. Element types may be String, Number or Enum.
func Array(elem Type) Type {
	return Type{kind: KindArray, inner: &elem}
}

// Optional marks inner as not required.
func Optional(inner Type) Type {
	return Type{kind: KindOptional, inner: &inner}
}

// WithDefault returns a Type that resolves to value when no token is given.
func WithDefault(inner Type, value any) Type {
	return Type{kind: KindDefault, inner: &inner, defFunc: func() any { return value }}
}

// WithDefaultFunc is like WithDefault but evaluates fn on every resolution
// that needs the default.
func WithDefaultFunc(inner Type, fn func() any) Type {
	return Type{kind: KindDefault, inner: &inner, defFunc: fn, lazy: true}
}

// Optional is shorthand for Optional(t).
func (t Type) Optional() Type { return Optional(t) }

// Default is shorthand for WithDefault(t, value).
func (t Type) Default(value any) Type { return WithDefault(t, value) }

// DefaultFunc is shorthand for WithDefaultFunc(t, fn).
func (t Type) DefaultFunc(fn func() any) Type { return WithDefaultFunc(t, fn) }

// Kind returns the outermost tag of t.
func (t Type) Kind() Kind { return t.kind }

// EnumValues returns the allowed values of an enum Type (after unwrapping
// modifiers), or nil.
func (t Type) EnumValues() []string {
	b := t.Base()
	if b.kind == KindArray {
		b = b.inner.Base()
	}
	if b.kind != KindEnum {
		return nil
	}
	return slices.Clone(b.values)
}

// Elem returns the element Type of an array Type (after unwrapping modifiers).
func (t Type) Elem() (Type, bool) {
	b := t.Base()
	if b.kind != KindArray {
		return Type{}, false
	}
	return *b.inner, true
}

// Base strips Optional and Default wrappers.
func (t Type) Base() Type {
	for t.kind == KindOptional || t.kind == KindDefault {
		t = *t.inner
	}
	return t
}

// IsOptional reports whether t may be left absent, either because it is
// Optional or because it carries a default.
func (t Type) IsOptional() bool {
	return t.kind == KindOptional || t.kind == KindDefault
}

// IsBoolean reports whether the base of t is Boolean.
func (t Type) IsBoolean() bool { return t.Base().kind == KindBoolean }

// IsArray reports whether the base of t is an Array.
func (t Type) IsArray() bool { return t.Base().kind == KindArray }

// HasDefault reports whether t, or one of its wrappers, declares a default.
func (t Type) HasDefault() bool {
	_, ok := t.defaultSource()
	return ok
}

func (t Type) defaultSource() (Type, bool) {
	for t.kind == KindOptional || t.kind == KindDefault {
		if t.kind == KindDefault {
			return t, true
		}
		t = *t.inner
	}
	return Type{}, false
}

// DefaultValue evaluates the default of t and converts it to the canonical Go
// representation of the type. ok is false when t has no default.
func (t Type) DefaultValue() (v any, ok bool, err error) {
	d, ok := t.defaultSource()
	if !ok {
		return nil, false, nil
	}
	raw := d.defFunc()
	v, err = normalize(d.inner.Base(), raw)
	if err != nil {
		return nil, true, fmt.Errorf("default %v does not fit %s: %w", raw, t.Display(), err)
	}
	return v, true, nil
}

// Display returns the short type tag used in help text: str, num, bool, a|b|c
// or T[].
func (t Type) Display() string {
	b := t.Base()
	switch b.kind {
	case KindString:
		return "str"
	case KindNumber:
		return "num"
	case KindBoolean:
		return "bool"
	case KindEnum:
		return strings.Join(b.values, "|")
	case KindArray:
		elem := b.inner.Display()
		if b.inner.Base().kind == KindEnum {
			elem = "(" + elem + ")"
		}
		return elem + "[]"
	}
	return "?"
}

// check reports structural problems with t: the zero Type, empty enums and
// unsupported array elements.
func (t Type) check() error {
	switch t.kind {
	case KindString, KindNumber, KindBoolean:
		return nil
	case KindEnum:
		if len(t.values) == 0 {
			return fmt.Errorf("enum has no values")
		}
		seen := make(map[string]bool, len(t.values))
		for _, v := range t.values {
			if seen[v] {
				return fmt.Errorf("enum value %q listed twice", v)
			}
			seen[v] = true
		}
		return nil
	case KindArray:
		if err := t.inner.check(); err != nil {
			return err
		}
		switch t.inner.Base().kind {
		case KindString, KindNumber, KindEnum:
			return nil
		}
		return fmt.Errorf("unsupported array element type %s", t.inner.Base().kind)
	case KindOptional:
		return t.inner.check()
	case KindDefault:
		if t.defFunc == nil {
			return fmt.Errorf("default thunk is nil")
		}
		if err := t.inner.check(); err != nil {
			return err
		}
		if t.lazy {
			// Thunks are evaluated at resolution time.
			return nil
		}
		_, _, err := t.DefaultValue()
		return err
	}
	return fmt.Errorf("missing type")
}

// Coerce converts raw tokens to the Go value for t. Scalars use the last
// token; arrays take every token, so a single bare token becomes a
// one-element slice.
//
// Values produced per kind: string and enum -> string, number -> float64,
// boolean -> bool, array -> []string or []float64. Enum membership is not
// checked here; see Validate.
func Coerce(t Type, raw []string) (any, error) {
	switch t.kind {
	case KindOptional, KindDefault:
		return Coerce(*t.inner, raw)
	case KindArray:
		elem := t.inner.Base()
		if elem.kind == KindNumber {
			out := make([]float64, 0, len(raw))
			for i, tok := range raw {
				n, err := parseNumber(tok)
				if err != nil {
					return nil, &elementError{index: i, err: err}
				}
				out = append(out, n)
			}
			return out, nil
		}
		return slices.Clone(nonNil(raw)), nil
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("expected a value")
	}
	tok := raw[len(raw)-1]
	switch t.kind {
	case KindString, KindEnum:
		return tok, nil
	case KindNumber:
		return parseNumber(tok)
	case KindBoolean:
		b, err := strconv.ParseBool(tok)
		if err != nil {
			return nil, fmt.Errorf("expected boolean, received %q", tok)
		}
		return b, nil
	}
	return nil, fmt.Errorf("unsupported type %s", t.kind)
}

// Validate checks a coerced value against the constraints of t and returns
// one message per problem.
func Validate(t Type, v any) []string {
	b := t.Base()
	switch b.kind {
	case KindEnum:
		s, ok := v.(string)
		if !ok {
			return []string{fmt.Sprintf("expected string, received %T", v)}
		}
		if !slices.Contains(b.values, s) {
			return []string{fmt.Sprintf("invalid enum value %q, expected %s", s, strings.Join(b.values, " | "))}
		}
	case KindNumber:
		n, ok := v.(float64)
		if !ok {
			return []string{fmt.Sprintf("expected number, received %T", v)}
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return []string{fmt.Sprintf("expected finite number, received %v", n)}
		}
	case KindString:
		if _, ok := v.(string); !ok {
			return []string{fmt.Sprintf("expected string, received %T", v)}
		}
	case KindBoolean:
		if _, ok := v.(bool); !ok {
			return []string{fmt.Sprintf("expected boolean, received %T", v)}
		}
	case KindArray:
		var msgs []string
		switch vals := v.(type) {
		case []string:
			for i, s := range vals {
				for _, m := range Validate(*b.inner, s) {
					msgs = append(msgs, fmt.Sprintf("[%d]: %s", i, m))
				}
			}
		case []float64:
			for i, n := range vals {
				for _, m := range Validate(*b.inner, n) {
					msgs = append(msgs, fmt.Sprintf("[%d]: %s", i, m))
				}
			}
		default:
			msgs = append(msgs, fmt.Sprintf("expected array, received %T", v))
		}
		return msgs
	}
	return nil
}

// renderDefault returns the JSON rendering of the default of t for help
// text, or "" when t has none or it cannot be evaluated. A panicking
// DefaultFunc renders as "".
func renderDefault(t Type) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()
	v, ok, err := t.DefaultValue()
	if !ok || err != nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

type elementError struct {
	index int
	err   error
}

func (e *elementError) Error() string { return e.err.Error() }
func (e *elementError) Unwrap() error { return e.err }

func parseNumber(tok string) (float64, error) {
	s := strings.TrimSpace(tok)
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || s == "" {
		return 0, fmt.Errorf("expected number, received %q", tok)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("expected finite number, received %q", tok)
	}
	return n, nil
}

// isNumeric reports whether s is a plain decimal such as "10", "-10" or
// "-3.14". Exponents are not recognized.
func isNumeric(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	digits := whole + frac
	return digits != "" && strings.Trim(digits, "0123456789") == ""
}

// normalize converts a Go value supplied as a default (or decoded from a
// schema file) into the canonical representation for base type t.
func normalize(t Type, v any) (any, error) {
	switch t.kind {
	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		return s, nil
	case KindEnum:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		if !slices.Contains(t.values, s) {
			return nil, fmt.Errorf("%q is not one of %s", s, strings.Join(t.values, "|"))
		}
		return s, nil
	case KindBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", v)
		}
		return b, nil
	case KindNumber:
		return toFloat(v)
	case KindArray:
		elem := t.inner.Base()
		items, err := toSlice(v)
		if err != nil {
			return nil, err
		}
		if elem.kind == KindNumber {
			out := make([]float64, 0, len(items))
			for _, it := range items {
				n, err := toFloat(it)
				if err != nil {
					return nil, err
				}
				out = append(out, n)
			}
			return out, nil
		}
		out := make([]string, 0, len(items))
		for _, it := range items {
			s, err := normalize(elem, it)
			if err != nil {
				return nil, err
			}
			out = append(out, s.(string))
		}
		return out, nil
	case KindOptional, KindDefault:
		return normalize(t.Base(), v)
	}
	return nil, fmt.Errorf("unsupported type %s", t.kind)
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("expected number, got %T", v)
}

func toSlice(v any) ([]any, error) {
	switch s := v.(type) {
	case []any:
		return s, nil
	case []string:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out, nil
	case []float64:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out, nil
	case []int:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out, nil
	case []int64:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected array, got %T", v)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
