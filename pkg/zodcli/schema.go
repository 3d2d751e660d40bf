// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zodcli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Help option names. The help option is implicit on every command and cannot
// be declared by a schema.
const (
	helpName      = "help"
	helpShort     = "h"
	helpFlagLong  = "--help"
	helpFlagShort = "-h"
)

type posKind uint8

const (
	posNamed posKind = iota
	posIndex
	posAuto
	posRest
)

// Position says where an argument is read from. The zero Position marks a
// named option (--name value).
type Position struct {
	kind  posKind
	index int
}

var (
	// Auto assigns the lowest index not claimed by an explicit Pos, in
	// declaration order.
	Auto = Position{kind: posAuto}

	// Rest collects every positional token after the highest index.
	Rest = Position{kind: posRest}
)

// Pos returns an explicit positional index.
func Pos(i int) Position { return Position{kind: posIndex, index: i} }

// IsNamed reports whether p is the zero Position.
func (p Position) IsNamed() bool { return p.kind == posNamed }

// IsRest reports whether p is Rest.
func (p Position) IsRest() bool { return p.kind == posRest }

// Index returns the explicit index of p.
func (p Position) Index() (int, bool) {
	if p.kind != posIndex {
		return 0, false
	}
	return p.index, true
}

func (p Position) String() string {
	switch p.kind {
	case posIndex:
		return strconv.Itoa(p.index)
	case posAuto:
		return "auto"
	case posRest:
		return "rest"
	}
	return "named"
}

// Arg describes one positional argument or named option.
type Arg struct {
	Name        string
	Type        Type
	Position    Position
	Short       string // single-character alias, named options only
	Description string
}

// Command is an immutable, validated argument schema. Build one with
// NewCommand; a *Command is safe for concurrent use.
type Command struct {
	name        string
	description string
	layout      *layout
	options     OptionTable
}

// NewCommand validates args and returns the command schema. Every schema
// problem is reported as a *ConfigurationError.
func NewCommand(name, description string, args ...Arg) (*Command, error) {
	l, err := compile(name, args)
	if err != nil {
		return nil, err
	}
	return &Command{
		name:        name,
		description: description,
		layout:      l,
		options:     newOptionTable(l.named),
	}, nil
}

// MustCommand is like NewCommand but panics on error. Intended for static
// schema definitions.
func MustCommand(name, description string, args ...Arg) *Command {
	c, err := NewCommand(name, description, args...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the command name.
func (c *Command) Name() string { return c.name }

// Description returns the command description.
func (c *Command) Description() string { return c.description }

// Args returns the arguments in declaration order with Auto positions
// replaced by their assigned index.
func (c *Command) Args() []Arg { return slices.Clone(c.layout.args) }

// OptionTable returns the tokenizer table derived from the named options.
func (c *Command) OptionTable() OptionTable { return c.options }

// layout is the compiled form of a schema.
type layout struct {
	command string
	args    []Arg // declaration order, Auto resolved
	indexed []Arg // sorted by index; indexed[i] has index i
	rest    *Arg
	named   []Arg // declaration order
}

// compile validates args and assigns Auto positions. Position conflicts are
// checked before anything else so they are reported regardless of other
// problems.
func compile(command string, args []Arg) (*layout, error) {
	cfgErr := func(arg, format string, a ...any) error {
		return &ConfigurationError{Command: command, Arg: arg, Reason: fmt.Sprintf(format, a...)}
	}

	l := &layout{command: command, args: slices.Clone(args)}

	claimed := make(map[int]string)
	var restName string
	for _, a := range l.args {
		switch a.Position.kind {
		case posIndex:
			if a.Position.index < 0 {
				return nil, cfgErr(a.Name, "negative position %d", a.Position.index)
			}
			if other, ok := claimed[a.Position.index]; ok {
				return nil, cfgErr(a.Name, "position %d already used by %q", a.Position.index, other)
			}
			claimed[a.Position.index] = a.Name
		case posRest:
			if restName != "" {
				return nil, cfgErr(a.Name, "only one rest argument is allowed, %q is already rest", restName)
			}
			restName = a.Name
		}
	}

	next := 0
	for i := range l.args {
		if l.args[i].Position.kind != posAuto {
			continue
		}
		for {
			if _, ok := claimed[next]; !ok {
				break
			}
			next++
		}
		claimed[next] = l.args[i].Name
		l.args[i].Position = Pos(next)
	}

	for i := 0; i < len(claimed); i++ {
		if _, ok := claimed[i]; !ok {
			return nil, cfgErr("", "positions must be contiguous from 0, missing %d", i)
		}
	}

	names := make(map[string]bool, len(l.args))
	shorts := make(map[string]string)
	l.indexed = make([]Arg, len(claimed))
	for i := range l.args {
		a := &l.args[i]
		if a.Name == "" {
			return nil, cfgErr("", "argument %d has no name", i)
		}
		if a.Name == helpName {
			return nil, cfgErr(a.Name, "%q is reserved for the help flag", helpName)
		}
		if names[a.Name] {
			return nil, cfgErr(a.Name, "declared twice")
		}
		names[a.Name] = true

		if err := a.Type.check(); err != nil {
			return nil, cfgErr(a.Name, "%v", err)
		}

		switch a.Position.kind {
		case posIndex:
			if a.Short != "" {
				return nil, cfgErr(a.Name, "short alias %q on a positional argument", a.Short)
			}
			l.indexed[a.Position.index] = *a
		case posRest:
			if a.Short != "" {
				return nil, cfgErr(a.Name, "short alias %q on a positional argument", a.Short)
			}
			if !a.Type.IsArray() {
				return nil, cfgErr(a.Name, "rest argument must be an array, got %s", a.Type.Display())
			}
			l.rest = a
		case posNamed:
			if strings.HasPrefix(a.Name, "-") || strings.Contains(a.Name, "=") {
				return nil, cfgErr(a.Name, "option name cannot start with %q or contain %q", "-", "=")
			}
			if a.Short != "" {
				if utf8.RuneCountInString(a.Short) != 1 || a.Short == "-" || a.Short == "=" {
					return nil, cfgErr(a.Name, "short alias %q must be a single character", a.Short)
				}
				if isNumeric(a.Short) {
					return nil, cfgErr(a.Name, "short alias %q reads as a negative number", a.Short)
				}
				if a.Short == helpShort {
					return nil, cfgErr(a.Name, "short alias %q is reserved for the help flag", helpShort)
				}
				if other, ok := shorts[a.Short]; ok {
					return nil, cfgErr(a.Name, "short alias %q already used by %q", a.Short, other)
				}
				shorts[a.Short] = a.Name
			}
			l.named = append(l.named, *a)
		}
	}
	if l.rest != nil {
		r := *l.rest
		l.rest = &r
	}
	return l, nil
}

// Option is a named option as seen by the tokenizer.
type Option struct {
	Name    string
	Short   string
	Boolean bool // presence flag, never consumes the next token
}

// OptionTable maps long and short spellings to options.
type OptionTable struct {
	long  map[string]Option
	short map[string]Option
}

func newOptionTable(named []Arg) OptionTable {
	t := OptionTable{
		long:  make(map[string]Option, len(named)+1),
		short: make(map[string]Option, len(named)+1),
	}
	help := Option{Name: helpName, Short: helpShort, Boolean: true}
	t.long[helpName] = help
	t.short[helpShort] = help
	for _, a := range named {
		o := Option{Name: a.Name, Short: a.Short, Boolean: a.Type.IsBoolean()}
		t.long[a.Name] = o
		if a.Short != "" {
			t.short[a.Short] = o
		}
	}
	return t
}

// Long looks up an option by its long name (without dashes).
func (t OptionTable) Long(name string) (Option, bool) {
	o, ok := t.long[name]
	return o, ok
}

// Short looks up an option by its short alias (without the dash).
func (t OptionTable) Short(name string) (Option, bool) {
	o, ok := t.short[name]
	return o, ok
}
