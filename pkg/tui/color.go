// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tui holds terminal styling shared by help rendering and the zodcli
// binary.
package tui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Colorizer styles text for a terminal. The zero value is disabled and
// returns text unchanged.
type Colorizer struct {
	Enabled bool
}

// NewColorizer returns an enabled Colorizer unless enabled is false, NO_COLOR
// is set, or TERM is empty or "dumb".
func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	termEnv := os.Getenv("TERM")
	if termEnv == "" || termEnv == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// ForWriter returns a Colorizer enabled only when w is a terminal.
func ForWriter(w io.Writer) Colorizer {
	return NewColorizer(IsTerminal(w))
}

// IsTerminal reports whether w is an *os.File attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Heading styles section titles such as "OPTIONS:".
func (c Colorizer) Heading(s string) string { return c.paint(s, color.Bold, color.Underline) }

// Flag styles option spellings and argument placeholders.
func (c Colorizer) Flag(s string) string { return c.paint(s, color.FgCyan) }

// Type styles type tags and defaults.
func (c Colorizer) Type(s string) string { return c.paint(s, color.FgHiBlack) }

// Error styles error messages.
func (c Colorizer) Error(s string) string { return c.paint(s, color.FgRed, color.Bold) }

// Success styles confirmations.
func (c Colorizer) Success(s string) string { return c.paint(s, color.FgGreen) }

func (c Colorizer) paint(s string, attrs ...color.Attribute) string {
	if !c.Enabled || s == "" {
		return s
	}
	p := color.New(attrs...)
	p.EnableColor()
	return p.Sprint(s)
}
