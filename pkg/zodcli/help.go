// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zodcli

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/yeetrun/zodcli/pkg/tui"
)

const helpDescription = "Show help"

type helpRow struct {
	label string
	typ   string
	desc  string
	def   string // JSON-rendered default
}

type helpSection struct {
	title string
	rows  []helpRow
}

// Help renders the help text for c.
func (c *Command) Help() string {
	return c.HelpStyled(tui.Colorizer{})
}

// HelpStyled renders the help text for c with terminal styling. With a
// disabled Colorizer it is identical to Help.
func (c *Command) HelpStyled(color tui.Colorizer) string {
	return renderHelp(c.name, c.description, c.helpSections(), color)
}

func (c *Command) helpSections() []helpSection {
	var args, opts, flags []helpRow
	for _, a := range c.layout.indexed {
		label := "<" + a.Name + ">"
		if a.Type.IsOptional() {
			label = "[" + a.Name + "]"
		}
		args = append(args, helpRow{label: label, typ: a.Type.Display(), desc: a.Description, def: renderDefault(a.Type)})
	}
	if r := c.layout.rest; r != nil {
		args = append(args, helpRow{label: "[" + r.Name + "...]", typ: r.Type.Display(), desc: r.Description, def: renderDefault(r.Type)})
	}
	for _, a := range c.layout.named {
		label := "--" + a.Name
		if a.Short != "" {
			label += ", -" + a.Short
		}
		row := helpRow{label: label, desc: a.Description, def: renderDefault(a.Type)}
		if a.Type.IsBoolean() {
			flags = append(flags, row)
			continue
		}
		row.typ = a.Type.Display()
		opts = append(opts, row)
	}
	flags = append(flags, helpRow{label: helpFlagLong + ", " + helpFlagShort, desc: helpDescription})

	var sections []helpSection
	if len(args) > 0 {
		sections = append(sections, helpSection{title: "ARGUMENTS", rows: args})
	}
	if len(opts) > 0 {
		sections = append(sections, helpSection{title: "OPTIONS", rows: opts})
	}
	sections = append(sections, helpSection{title: "FLAGS", rows: flags})
	return sections
}

// renderHelp lays out the usage header followed by each section. Columns are
// aligned across all sections.
func renderHelp(name, description string, sections []helpSection, color tui.Colorizer) string {
	var b strings.Builder

	b.WriteString(color.Heading(name))
	b.WriteString("\n")
	if description != "" {
		fmt.Fprintf(&b, "> %s\n", description)
	}

	var labelWidth, typeWidth int
	for _, s := range sections {
		for _, r := range s.rows {
			labelWidth = max(labelWidth, runewidth.StringWidth(r.label))
			typeWidth = max(typeWidth, runewidth.StringWidth(r.typ))
		}
	}

	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(color.Heading(s.title + ":"))
		b.WriteString("\n")
		for _, r := range s.rows {
			desc := r.desc
			if r.def != "" {
				def := color.Type("(default: " + r.def + ")")
				if desc == "" {
					desc = def
				} else {
					desc += " " + def
				}
			}

			// Cells are padded before styling, and only when something
			// follows them, so lines carry no trailing spaces.
			label, typ := r.label, r.typ
			if typeWidth > 0 && (typ != "" || desc != "") {
				label = pad(label, labelWidth)
			}
			if desc != "" {
				if typeWidth > 0 {
					typ = pad(typ, typeWidth)
				} else {
					label = pad(label, labelWidth)
				}
			}

			b.WriteString("  ")
			b.WriteString(color.Flag(label))
			if typeWidth > 0 && (typ != "" || desc != "") {
				b.WriteString("  ")
				b.WriteString(color.Type(typ))
			}
			if desc != "" {
				b.WriteString("  ")
				b.WriteString(desc)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// pad fills s to width terminal cells.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}
