// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zodcli

import (
	"errors"
	"fmt"
)

// Resolve validates args as a schema and converts tokens into typed values.
// It is a pure function of its inputs.
//
// Errors, in the order they are checked:
//   - *ConfigurationError if args is not a valid schema (before tokens are examined)
//   - *UnknownOptionError for an unrecognized option or a positional token
//     with no slot
//   - *ValidationError for missing, malformed or out-of-range values
func Resolve(args []Arg, tokens Tokens) (Values, error) {
	l, err := compile("", args)
	if err != nil {
		return nil, err
	}
	return l.resolve(tokens)
}

func (l *layout) resolve(tokens Tokens) (Values, error) {
	if len(tokens.Unknown) > 0 {
		return nil, &UnknownOptionError{Command: l.command, Token: tokens.Unknown[0]}
	}
	if l.rest == nil && len(tokens.Positionals) > len(l.indexed) {
		return nil, &UnknownOptionError{Command: l.command, Token: tokens.Positionals[len(l.indexed)]}
	}

	r := resolver{values: Values{}}

	for i, a := range l.indexed {
		if i < len(tokens.Positionals) {
			r.coerce(a, tokens.Positionals[i:i+1])
			continue
		}
		if err := r.absent(a); err != nil {
			return nil, l.configErr(a, err)
		}
	}

	if l.rest != nil {
		var raw []string
		if len(tokens.Positionals) > len(l.indexed) {
			raw = tokens.Positionals[len(l.indexed):]
		}
		if len(raw) > 0 || !l.rest.Type.HasDefault() {
			r.coerce(*l.rest, raw)
		} else if err := r.absent(*l.rest); err != nil {
			return nil, l.configErr(*l.rest, err)
		}
	}

	for _, a := range l.named {
		if raw, ok := tokens.Named[a.Name]; ok {
			r.coerce(a, raw)
			continue
		}
		if err := r.absent(a); err != nil {
			return nil, l.configErr(a, err)
		}
	}

	for _, name := range tokens.MissingValue {
		if _, given := tokens.Named[name]; given {
			continue
		}
		r.issue(name, "expected a value")
	}

	if len(r.issues) > 0 {
		return nil, &ValidationError{Command: l.command, Issues: r.issues}
	}
	return r.values, nil
}

func (l *layout) configErr(a Arg, err error) error {
	return &ConfigurationError{Command: l.command, Arg: a.Name, Reason: err.Error()}
}

// resolver accumulates values and issues for one resolution.
type resolver struct {
	values Values
	issues []Issue
}

func (r *resolver) issue(path, msg string) {
	r.issues = append(r.issues, Issue{Path: path, Message: msg})
}

// coerce converts raw for a and validates the result.
func (r *resolver) coerce(a Arg, raw []string) {
	v, err := Coerce(a.Type, raw)
	if err != nil {
		var elemErr *elementError
		if errors.As(err, &elemErr) {
			r.issue(fmt.Sprintf("%s[%d]", a.Name, elemErr.index), elemErr.Error())
		} else {
			r.issue(a.Name, err.Error())
		}
		return
	}
	if msgs := Validate(a.Type, v); len(msgs) > 0 {
		for _, m := range msgs {
			r.issue(a.Name, m)
		}
		return
	}
	r.values[a.Name] = v
}

// absent handles an argument with no tokens: apply its default, leave it out
// if optional, or record a required issue. The returned error is a default
// that does not fit its type.
func (r *resolver) absent(a Arg) error {
	v, ok, err := a.Type.DefaultValue()
	if err != nil {
		return err
	}
	if ok {
		r.values[a.Name] = v
		return nil
	}
	if !a.Type.IsOptional() {
		r.issue(a.Name, "required")
	}
	return nil
}
