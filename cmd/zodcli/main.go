// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command zodcli parses arguments against schema files, renders their help
// and lints them.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/shayne/yargs"
	"github.com/yeetrun/zodcli/pkg/tui"
	"github.com/yeetrun/zodcli/pkg/zodcli"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

type globalFlagsParsed struct {
	NoColor bool `flag:"no-color" help:"Disable colored output (NO_COLOR)"`
	Verbose bool `flag:"verbose" help:"Log schema loading and routing"`
}

// env carries the process streams and global settings into each command.
type env struct {
	stdout io.Writer
	stderr io.Writer
	flags  globalFlagsParsed
}

func (e *env) output() zodcli.Output {
	return zodcli.Output{Stdout: e.stdout, Stderr: e.stderr, NoColor: e.flags.NoColor}
}

func (e *env) colorizer(w io.Writer) tui.Colorizer {
	if e.flags.NoColor {
		return tui.Colorizer{}
	}
	return tui.ForWriter(w)
}

func main() {
	log.SetFlags(0)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	flags, remaining, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	log.SetOutput(stderr)
	if !flags.Verbose {
		log.SetOutput(io.Discard)
	}
	e := &env{stdout: stdout, stderr: stderr, flags: flags}

	// Everything after "--" belongs to the schema being parsed.
	cliArgs, passthrough := remaining, []string(nil)
	if i := slices.Index(remaining, "--"); i >= 0 {
		cliArgs, passthrough = remaining[:i], remaining[i+1:]
	}

	name, values, err := commands.ParseAndHandleHelp(cliArgs, e.output())
	if errors.Is(err, zodcli.ErrShown) {
		return shownExitCode(err)
	}
	if err != nil {
		printCLIError(stderr, err)
		return 1
	}
	log.Printf("routed to %s", name)

	switch name {
	case "parse":
		err = runParse(e, values, passthrough)
	case "help":
		err = runHelp(e, values)
	case "check":
		err = runCheck(e, values)
	case "version":
		err = runVersion(e)
	default:
		err = fmt.Errorf("unhandled command %q", name)
	}
	if err != nil {
		printCLIError(stderr, err)
		return 1
	}
	return 0
}

// parseGlobalFlags consumes the global flags that precede the first
// command-line word, so flags meant for a parsed schema are left alone.
func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	n := slices.IndexFunc(args, func(a string) bool { return !strings.HasPrefix(a, "-") || a == "--" })
	if n < 0 {
		n = len(args)
	}
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args[:n], yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, append(result.RemainingArgs, args[n:]...), nil
}

// shownExitCode maps an already printed outcome to an exit code. Help is
// reported as ErrShown itself; a usage error wraps its cause.
func shownExitCode(err error) int {
	if err == zodcli.ErrShown {
		return 0
	}
	return 2
}

func printCLIError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "zodcli: %v\n", err)
}
