// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schemafile

import (
	"fmt"
	"math"
	"strings"

	"github.com/yeetrun/zodcli/pkg/tui"
	"github.com/yeetrun/zodcli/pkg/zodcli"
)

// Schema is a built File: exactly one of Command and Subcommands is set.
type Schema struct {
	Command     *zodcli.Command
	Subcommands *zodcli.Subcommands
}

// Build converts f into zodcli schemas. Problems with argument definitions
// are returned as *zodcli.ConfigurationError.
func (f *File) Build() (*Schema, error) {
	if f.Name == "" {
		return nil, &zodcli.ConfigurationError{Reason: "schema has no name"}
	}
	if len(f.Commands) == 0 {
		if f.Default != "" {
			return nil, &zodcli.ConfigurationError{Command: f.Name, Reason: "default set without commands"}
		}
		cmd, err := buildCommand(f.Name, f.Description, f.Args)
		if err != nil {
			return nil, err
		}
		return &Schema{Command: cmd}, nil
	}
	if len(f.Args) > 0 {
		return nil, &zodcli.ConfigurationError{Command: f.Name, Reason: "args and commands are mutually exclusive"}
	}

	cfg := zodcli.SubcommandsConfig{
		Name:        f.Name,
		Description: f.Description,
		Default:     f.Default,
	}
	for _, c := range f.Commands {
		cmd, err := buildCommand(c.Name, c.Description, c.Args)
		if err != nil {
			return nil, err
		}
		cfg.Commands = append(cfg.Commands, zodcli.Entry{Name: c.Name, Command: cmd})
	}
	subs, err := zodcli.NewSubcommands(cfg)
	if err != nil {
		return nil, err
	}
	return &Schema{Subcommands: subs}, nil
}

func buildCommand(name, description string, defs []ArgDef) (*zodcli.Command, error) {
	args := make([]zodcli.Arg, 0, len(defs))
	for _, d := range defs {
		a, err := d.arg()
		if err != nil {
			return nil, &zodcli.ConfigurationError{Command: name, Arg: d.Name, Reason: err.Error()}
		}
		args = append(args, a)
	}
	return zodcli.NewCommand(name, description, args...)
}

func (d ArgDef) arg() (zodcli.Arg, error) {
	typ, err := parseType(d.Type, d.Values)
	if err != nil {
		return zodcli.Arg{}, err
	}
	switch {
	case d.Default != nil:
		typ = typ.Default(d.Default)
	case d.Optional:
		typ = typ.Optional()
	}
	pos, err := parsePosition(d.Position)
	if err != nil {
		return zodcli.Arg{}, err
	}
	return zodcli.Arg{
		Name:        d.Name,
		Type:        typ,
		Position:    pos,
		Short:       d.Short,
		Description: d.Description,
	}, nil
}

func parseType(s string, values []string) (zodcli.Type, error) {
	s = strings.TrimSpace(s)
	if elem, ok := strings.CutSuffix(s, "[]"); ok {
		t, err := parseType(elem, values)
		if err != nil {
			return zodcli.Type{}, err
		}
		return zodcli.Array(t), nil
	}
	if len(values) > 0 && s != "enum" {
		return zodcli.Type{}, fmt.Errorf("values given for %s type", s)
	}
	switch s {
	case "string", "str":
		return zodcli.String(), nil
	case "number", "num":
		return zodcli.Number(), nil
	case "boolean", "bool":
		return zodcli.Boolean(), nil
	case "enum":
		return zodcli.Enum(values...), nil
	case "":
		return zodcli.Type{}, fmt.Errorf("missing type")
	}
	return zodcli.Type{}, fmt.Errorf("unknown type %q", s)
}

func parsePosition(v any) (zodcli.Position, error) {
	switch p := v.(type) {
	case nil:
		return zodcli.Position{}, nil
	case bool:
		if p {
			return zodcli.Auto, nil
		}
		return zodcli.Position{}, nil
	case int:
		return zodcli.Pos(p), nil
	case int64:
		return zodcli.Pos(int(p)), nil
	case uint64:
		return zodcli.Pos(int(p)), nil
	case float64:
		if p != math.Trunc(p) {
			return zodcli.Position{}, fmt.Errorf("position %v is not an integer", p)
		}
		return zodcli.Pos(int(p)), nil
	case string:
		switch p {
		case "rest":
			return zodcli.Rest, nil
		case "auto":
			return zodcli.Auto, nil
		case "", "named":
			return zodcli.Position{}, nil
		}
		return zodcli.Position{}, fmt.Errorf("unknown position %q", p)
	}
	return zodcli.Position{}, fmt.Errorf("unsupported position %v (%T)", v, v)
}

// Name returns the command or subcommand set name.
func (s *Schema) Name() string {
	if s.Subcommands != nil {
		return s.Subcommands.Name()
	}
	return s.Command.Name()
}

// SafeParse parses argv with whichever schema s holds. For a single command
// the Routed command is the command name.
func (s *Schema) SafeParse(argv []string) zodcli.Routed {
	if s.Subcommands != nil {
		return s.Subcommands.SafeParse(argv)
	}
	return zodcli.Routed{Command: s.Command.Name(), Result: s.Command.SafeParse(argv)}
}

// Help renders the root help, or the help of command when it is not empty.
func (s *Schema) Help(command string) (string, error) {
	return s.HelpStyled(command, tui.Colorizer{})
}

// HelpStyled is Help with terminal styling.
func (s *Schema) HelpStyled(command string, color tui.Colorizer) (string, error) {
	if s.Subcommands == nil {
		if command != "" && command != s.Command.Name() {
			return "", fmt.Errorf("%s has no subcommands", s.Command.Name())
		}
		return s.Command.HelpStyled(color), nil
	}
	if command == "" {
		return s.Subcommands.HelpStyled(color), nil
	}
	cmd, ok := s.Subcommands.Lookup(command)
	if !ok {
		return "", &zodcli.UnknownSubcommandError{Command: s.Subcommands.Name(), Name: command}
	}
	return cmd.HelpStyled(color), nil
}

// ParseAndHandleHelp is SafeParse with help and usage errors printed to out.
func (s *Schema) ParseAndHandleHelp(argv []string, out zodcli.Output) (string, zodcli.Values, error) {
	if s.Subcommands != nil {
		return s.Subcommands.ParseAndHandleHelp(argv, out)
	}
	values, err := s.Command.ParseAndHandleHelp(argv, out)
	return s.Command.Name(), values, err
}
