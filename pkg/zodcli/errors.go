// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zodcli

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for help handling
var (
	// ErrHelp is matched (via errors.Is) by the *HelpError returned from the
	// throwing Parse variants when --help or -h was given.
	ErrHelp = errors.New("help requested")

	// ErrShown is returned by ParseAndHandleHelp once it has printed help. A
	// printed usage error wraps both ErrShown and its cause.
	ErrShown = errors.New("help or error displayed")
)

// ConfigurationError reports a malformed schema: conflicting or
// non-contiguous positions, several rest arguments, a reserved or duplicate
// name, a default that does not fit its type, or an unknown default
// subcommand. It indicates a programming mistake, not bad user input.
type ConfigurationError struct {
	Command string // Command or subcommand set name, if known
	Arg     string // Offending argument, if any
	Reason  string
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid schema")
	if e.Command != "" {
		fmt.Fprintf(&b, " for %q", e.Command)
	}
	if e.Arg != "" {
		fmt.Fprintf(&b, ": argument %q", e.Arg)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// Issue is a single validation problem. Path names the argument, with an
// index suffix for array elements (e.g. "ports[1]").
type Issue struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError is returned when a well-formed schema rejects the supplied
// tokens: missing required arguments, bad numbers, values outside an enum.
type ValidationError struct {
	Command string
	Issues  []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return "invalid arguments: " + strings.Join(parts, "; ")
}

// UnknownOptionError is returned when a token fits no named option and no
// positional slot.
type UnknownOptionError struct {
	Command string
	Token   string
}

func (e *UnknownOptionError) Error() string {
	if strings.HasPrefix(e.Token, "-") && !isNumeric(e.Token) {
		return fmt.Sprintf("unknown option: %s", e.Token)
	}
	return fmt.Sprintf("unexpected argument: %s", e.Token)
}

// UnknownSubcommandError is returned when the first token names no
// subcommand and no default subcommand is configured.
type UnknownSubcommandError struct {
	Command string // Name of the subcommand set
	Name    string
}

func (e *UnknownSubcommandError) Error() string {
	return fmt.Sprintf("unknown command: %s", e.Name)
}

// HelpError carries rendered help text out of the throwing Parse variants.
type HelpError struct {
	Text string
}

func (e *HelpError) Error() string { return ErrHelp.Error() }

func (e *HelpError) Is(target error) bool { return target == ErrHelp }
