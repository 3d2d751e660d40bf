// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"cmp"
	"os"

	"github.com/yeetrun/zodcli/pkg/zodcli"
)

const formatEnv = "ZODCLI_FORMAT"

var (
	parseCmd = zodcli.MustCommand("parse", "Parse arguments against a schema file and print the result",
		zodcli.Arg{Name: "schema", Type: zodcli.String(), Position: zodcli.Pos(0), Description: "Schema file (.yaml, .yml or .toml)"},
		zodcli.Arg{Name: "args", Type: zodcli.Array(zodcli.String()), Position: zodcli.Rest, Description: "Arguments to parse; put options after --"},
		zodcli.Arg{
			Name:        "format",
			Type:        zodcli.Enum("json", "yaml").DefaultFunc(defaultFormat),
			Short:       "f",
			Description: "Output format (" + formatEnv + ")",
		},
	)

	helpCmd = zodcli.MustCommand("help", "Print the help text a schema file generates",
		zodcli.Arg{Name: "schema", Type: zodcli.String(), Position: zodcli.Auto, Description: "Schema file"},
		zodcli.Arg{Name: "command", Type: zodcli.String().Optional(), Position: zodcli.Auto, Description: "Subcommand to describe"},
	)

	checkCmd = zodcli.MustCommand("check", "Validate schema files",
		zodcli.Arg{Name: "files", Type: zodcli.Array(zodcli.String()), Position: zodcli.Rest, Description: "Schema files"},
		zodcli.Arg{Name: "jobs", Type: zodcli.Number().Default(4), Short: "j", Description: "Files to check in parallel"},
		zodcli.Arg{Name: "quiet", Type: zodcli.Boolean().Default(false), Short: "q", Description: "Only report failures"},
	)

	versionCmd = zodcli.MustCommand("version", "Print version information")

	commands = zodcli.MustSubcommands(zodcli.SubcommandsConfig{
		Name:        "zodcli",
		Description: "Typed argument parsing from schema files",
		Commands: []zodcli.Entry{
			{Name: "parse", Command: parseCmd},
			{Name: "help", Command: helpCmd},
			{Name: "check", Command: checkCmd},
			{Name: "version", Command: versionCmd},
		},
	})
)

func defaultFormat() any {
	return cmp.Or(os.Getenv(formatEnv), "json")
}
