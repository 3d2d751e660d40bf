// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zodcli

import (
	"errors"
	"strings"
	"testing"
)

func TestNewCommandConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []Arg
		wantMsg string
	}{
		{
			name: "duplicate positions",
			args: []Arg{
				{Name: "a", Type: String(), Position: Pos(0)},
				{Name: "b", Type: String(), Position: Pos(0)},
			},
			wantMsg: `position 0 already used by "a"`,
		},
		{
			name: "gap in positions",
			args: []Arg{
				{Name: "a", Type: String(), Position: Pos(0)},
				{Name: "b", Type: String(), Position: Pos(2)},
			},
			wantMsg: "missing 1",
		},
		{
			name:    "positions not starting at zero",
			args:    []Arg{{Name: "a", Type: String(), Position: Pos(1)}},
			wantMsg: "missing 0",
		},
		{
			name:    "negative position",
			args:    []Arg{{Name: "a", Type: String(), Position: Pos(-1)}},
			wantMsg: "negative position",
		},
		{
			name: "two rest arguments",
			args: []Arg{
				{Name: "a", Type: Array(String()), Position: Rest},
				{Name: "b", Type: Array(String()), Position: Rest},
			},
			wantMsg: "only one rest argument",
		},
		{
			name:    "rest must be an array",
			args:    []Arg{{Name: "files", Type: String(), Position: Rest}},
			wantMsg: "rest argument must be an array",
		},
		{
			name:    "help is reserved",
			args:    []Arg{{Name: "help", Type: Boolean()}},
			wantMsg: "reserved",
		},
		{
			name:    "h is reserved",
			args:    []Arg{{Name: "host", Type: String(), Short: "h"}},
			wantMsg: "reserved",
		},
		{
			name: "duplicate names",
			args: []Arg{
				{Name: "a", Type: String()},
				{Name: "a", Type: Number()},
			},
			wantMsg: "declared twice",
		},
		{
			name: "duplicate shorts",
			args: []Arg{
				{Name: "alpha", Type: String(), Short: "a"},
				{Name: "all", Type: Boolean(), Short: "a"},
			},
			wantMsg: `short alias "a" already used by "alpha"`,
		},
		{
			name:    "long short alias",
			args:    []Arg{{Name: "count", Type: Number(), Short: "cn"}},
			wantMsg: "single character",
		},
		{
			name:    "digit short alias",
			args:    []Arg{{Name: "one", Type: Boolean(), Short: "1"}},
			wantMsg: "negative number",
		},
		{
			name:    "dashed option name",
			args:    []Arg{{Name: "-x", Type: String()}},
			wantMsg: "cannot start with",
		},
		{
			name:    "option name with equals",
			args:    []Arg{{Name: "a=b", Type: String()}},
			wantMsg: "cannot start with",
		},
		{
			name:    "short on positional",
			args:    []Arg{{Name: "query", Type: String(), Position: Pos(0), Short: "q"}},
			wantMsg: "positional",
		},
		{
			name:    "empty name",
			args:    []Arg{{Type: String()}},
			wantMsg: "no name",
		},
		{
			name:    "missing type",
			args:    []Arg{{Name: "a"}},
			wantMsg: "missing type",
		},
		{
			name:    "default does not fit",
			args:    []Arg{{Name: "count", Type: Number().Default("many")}},
			wantMsg: "does not fit",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCommand("test", "", tt.args...)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("NewCommand() error = %v, want *ConfigurationError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
			if cfgErr.Command != "test" {
				t.Errorf("Command = %q, want %q", cfgErr.Command, "test")
			}
		})
	}
}

func TestNewCommandAutoPositions(t *testing.T) {
	cmd, err := NewCommand("cp", "",
		Arg{Name: "src", Type: String(), Position: Auto},
		Arg{Name: "mode", Type: String(), Position: Pos(0)},
		Arg{Name: "dst", Type: String(), Position: Auto},
	)
	if err != nil {
		t.Fatalf("NewCommand failed: %v", err)
	}
	want := map[string]int{"mode": 0, "src": 1, "dst": 2}
	for _, a := range cmd.Args() {
		idx, ok := a.Position.Index()
		if !ok {
			t.Fatalf("%s: position %v is not an index", a.Name, a.Position)
		}
		if idx != want[a.Name] {
			t.Errorf("%s: index = %d, want %d", a.Name, idx, want[a.Name])
		}
	}
}

func TestAutoFillsGap(t *testing.T) {
	_, err := NewCommand("x", "",
		Arg{Name: "a", Type: String(), Position: Pos(0)},
		Arg{Name: "c", Type: String(), Position: Pos(2)},
		Arg{Name: "b", Type: String(), Position: Auto},
	)
	if err != nil {
		t.Fatalf("NewCommand failed: %v", err)
	}
}

func TestMustCommandPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustCommand did not panic on a duplicate position")
		}
	}()
	MustCommand("x", "",
		Arg{Name: "a", Type: String(), Position: Pos(0)},
		Arg{Name: "b", Type: String(), Position: Pos(0)},
	)
}

func TestOptionTable(t *testing.T) {
	table := searchCommand(t).OptionTable()

	if o, ok := table.Long("count"); !ok || o.Boolean || o.Short != "c" {
		t.Errorf("Long(count) = %+v, %v", o, ok)
	}
	if o, ok := table.Short("v"); !ok || !o.Boolean || o.Name != "verbose" {
		t.Errorf("Short(v) = %+v, %v", o, ok)
	}
	if o, ok := table.Long("help"); !ok || !o.Boolean {
		t.Errorf("Long(help) = %+v, %v", o, ok)
	}
	if o, ok := table.Short("h"); !ok || o.Name != "help" {
		t.Errorf("Short(h) = %+v, %v", o, ok)
	}
	if _, ok := table.Long("query"); ok {
		t.Error("positional argument should not be in the option table")
	}
}

func TestPositionString(t *testing.T) {
	for p, want := range map[Position]string{
		{}:     "named",
		Pos(3): "3",
		Auto:   "auto",
		Rest:   "rest",
	} {
		if got := p.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
