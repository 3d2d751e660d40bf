// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zodcli

import (
	"fmt"

	"github.com/yeetrun/zodcli/pkg/tui"
)

// Entry binds a subcommand name to its schema.
type Entry struct {
	Name    string
	Command *Command
}

// SubcommandsConfig describes a set of subcommands.
type SubcommandsConfig struct {
	Name        string
	Description string
	// Default, if set, handles argv whose first token names no subcommand.
	// It must name one of Commands.
	Default  string
	Commands []Entry
}

// Subcommands routes the first token of argv to a command schema. It is
// immutable and safe for concurrent use.
type Subcommands struct {
	name        string
	description string
	def         string
	entries     []Entry
	index       map[string]*Command
}

// NewSubcommands validates cfg. Duplicate or empty names, nil commands and a
// Default that names no entry are reported as *ConfigurationError.
func NewSubcommands(cfg SubcommandsConfig) (*Subcommands, error) {
	cfgErr := func(arg, format string, a ...any) error {
		return &ConfigurationError{Command: cfg.Name, Arg: arg, Reason: fmt.Sprintf(format, a...)}
	}
	s := &Subcommands{
		name:        cfg.Name,
		description: cfg.Description,
		def:         cfg.Default,
		index:       make(map[string]*Command, len(cfg.Commands)),
	}
	for i, e := range cfg.Commands {
		if e.Name == "" {
			return nil, cfgErr("", "subcommand %d has no name", i)
		}
		if e.Command == nil {
			return nil, cfgErr(e.Name, "subcommand has no schema")
		}
		if _, dup := s.index[e.Name]; dup {
			return nil, cfgErr(e.Name, "subcommand declared twice")
		}
		s.index[e.Name] = e.Command
		s.entries = append(s.entries, e)
	}
	if s.def != "" {
		if _, ok := s.index[s.def]; !ok {
			return nil, cfgErr("", "default command %q is not a declared subcommand", s.def)
		}
	}
	return s, nil
}

// MustSubcommands is like NewSubcommands but panics on error.
func MustSubcommands(cfg SubcommandsConfig) *Subcommands {
	s, err := NewSubcommands(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the name of the subcommand set.
func (s *Subcommands) Name() string { return s.name }

// Default returns the default subcommand name, or "".
func (s *Subcommands) Default() string { return s.def }

// Names returns the subcommand names in declaration order.
func (s *Subcommands) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	return names
}

// Lookup returns the schema for a subcommand.
func (s *Subcommands) Lookup(name string) (*Command, bool) {
	c, ok := s.index[name]
	return c, ok
}

// SafeParse routes argv:
//   - argv is empty or contains --help/-h anywhere: root help
//   - argv[0] names a subcommand: it is consumed and the rest is parsed by
//     that command
//   - a default is configured: the whole argv is parsed by the default
//   - otherwise: Failure with *UnknownSubcommandError and root help
func (s *Subcommands) SafeParse(argv []string) Routed {
	if len(argv) == 0 || hasHelpFlag(argv) {
		return Routed{Result: Help{Text: s.Help()}}
	}
	if cmd, ok := s.index[argv[0]]; ok {
		return Routed{Command: argv[0], Result: cmd.SafeParse(argv[1:])}
	}
	if s.def != "" {
		return Routed{Command: s.def, Result: s.index[s.def].SafeParse(argv)}
	}
	return Routed{Result: Failure{
		Err:      &UnknownSubcommandError{Command: s.name, Name: argv[0]},
		HelpText: s.Help(),
	}}
}

// Parse is the throwing form of SafeParse. It returns the subcommand that
// handled argv alongside its values.
func (s *Subcommands) Parse(argv []string) (string, Values, error) {
	r := s.SafeParse(argv)
	values, err := Unwrap(r.Result)
	return r.Command, values, err
}

// ParseAndHandleHelp is the Subcommands form of Command.ParseAndHandleHelp.
func (s *Subcommands) ParseAndHandleHelp(argv []string, out Output) (string, Values, error) {
	r := s.SafeParse(argv)
	name := s.name
	styled := s.HelpStyled
	if cmd, ok := s.index[r.Command]; ok {
		name = s.name + " " + r.Command
		styled = cmd.HelpStyled
	}
	switch res := r.Result.(type) {
	case Help:
		r.Result = Help{Text: styled(out.colorizer(out.stdout()))}
	case Failure:
		r.Result = Failure{Err: res.Err, HelpText: styled(out.colorizer(out.stderr()))}
	}
	values, err := handleResult(r.Result, name, out)
	return r.Command, values, err
}

// Help renders the root help listing every subcommand.
func (s *Subcommands) Help() string {
	return s.HelpStyled(tui.Colorizer{})
}

// HelpStyled renders the root help with terminal styling.
func (s *Subcommands) HelpStyled(color tui.Colorizer) string {
	rows := make([]helpRow, 0, len(s.entries))
	for _, e := range s.entries {
		desc := e.Command.Description()
		if e.Name == s.def {
			if desc == "" {
				desc = "(default)"
			} else {
				desc += " (default)"
			}
		}
		rows = append(rows, helpRow{label: e.Name, desc: desc})
	}
	sections := []helpSection{
		{title: "SUBCOMMANDS", rows: rows},
		{title: "FLAGS", rows: []helpRow{{label: helpFlagLong + ", " + helpFlagShort, desc: helpDescription}}},
	}
	return renderHelp(s.name, s.description, sections, color)
}
