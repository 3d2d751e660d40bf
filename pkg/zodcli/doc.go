// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package zodcli is a schema-driven command-line argument parser with typed
// values and generated help.
//
// A schema is a list of Args, each with a Type built from String, Number,
// Boolean, Enum and Array, optionally wrapped with Optional or a default.
// Schemas are validated once, when built, and are immutable afterwards.
//
// # Basic Usage
//
//	cmd := zodcli.MustCommand("search", "Search the index",
//	    zodcli.Arg{Name: "query", Type: zodcli.String(), Position: zodcli.Pos(0), Description: "Search query"},
//	    zodcli.Arg{Name: "count", Type: zodcli.Number().Default(5), Short: "c", Description: "Number of results"},
//	)
//
//	switch r := cmd.SafeParse(os.Args[1:]).(type) {
//	case zodcli.Success:
//	    fmt.Println(r.Values.String("query"), r.Values.Int("count"))
//	case zodcli.Help:
//	    fmt.Print(r.Text)
//	case zodcli.Failure:
//	    fmt.Fprintf(os.Stderr, "Error: %v\n\n%s", r.Err, r.HelpText)
//	    os.Exit(1)
//	}
//
// # Positions
//
// An Arg without a Position is a named option (--count 10, --count=10, -c 10).
// Pos(i) reads the i-th positional token; explicit indexes must be unique and
// contiguous from 0. Auto takes the next free index. Rest collects every
// token after the highest index and must be an Array.
//
// # Flag Syntax
//
//   - Boolean options: --verbose, -v, --verbose=false
//   - Value options: --count 10, --count=10, -c 10, -c=10, --offset -5
//   - "--" ends option parsing
//   - --help and -h are always available and win over everything else
//
// An option-shaped token that matches no option, or a positional token left
// over with no slot, is reported as an *UnknownOptionError. Negative numbers
// and tokens after "--" are always positional.
//
// # Subcommands
//
//	git := zodcli.MustSubcommands(zodcli.SubcommandsConfig{
//	    Name:    "git",
//	    Default: "status",
//	    Commands: []zodcli.Entry{
//	        {Name: "add", Command: addCmd},
//	        {Name: "status", Command: statusCmd},
//	    },
//	})
//	r := git.SafeParse(os.Args[1:]) // r.Command is "add", "status" or ""
//
// # Errors
//
// *ConfigurationError means the schema is wrong; *ValidationError,
// *UnknownOptionError and *UnknownSubcommandError mean the input is wrong and
// come with the help text of the command that rejected it.
package zodcli
