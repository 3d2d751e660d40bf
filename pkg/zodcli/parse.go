// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zodcli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yeetrun/zodcli/pkg/tui"
)

// SafeParse parses argv (without the program name) and never panics. Help
// wins over everything else: if --help or -h appears anywhere the result is
// Help, even when other tokens are invalid.
func (c *Command) SafeParse(argv []string) (res Result) {
	// Default thunks are user code. Help rendering recovers on its own.
	defer func() {
		if r := recover(); r != nil {
			res = Failure{Err: fmt.Errorf("parse %s: panic: %v", c.name, r), HelpText: c.Help()}
		}
	}()

	if hasHelpFlag(argv) {
		return Help{Text: c.Help()}
	}

	values, err := c.layout.resolve(Tokenize(argv, c.options))
	if err != nil {
		return Failure{Err: err, HelpText: c.Help()}
	}
	return Success{Values: values}
}

// Parse is the throwing form of SafeParse. Help is reported as a *HelpError,
// which matches ErrHelp.
//
//	values, err := cmd.Parse(os.Args[1:])
//	var helpErr *zodcli.HelpError
//	if errors.As(err, &helpErr) {
//	    fmt.Print(helpErr.Text)
//	    return nil
//	}
func (c *Command) Parse(argv []string) (Values, error) {
	return Unwrap(c.SafeParse(argv))
}

// Output configures where ParseAndHandleHelp writes. Nil writers default to
// os.Stdout and os.Stderr.
type Output struct {
	Stdout  io.Writer
	Stderr  io.Writer
	NoColor bool
}

func (o Output) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

func (o Output) stderr() io.Writer {
	if o.Stderr == nil {
		return os.Stderr
	}
	return o.Stderr
}

func (o Output) colorizer(w io.Writer) tui.Colorizer {
	if o.NoColor {
		return tui.Colorizer{}
	}
	return tui.ForWriter(w)
}

// ParseAndHandleHelp parses argv and prints help or errors itself.
//
// Returns:
//   - (values, nil) on success
//   - (nil, ErrShown) if help was printed
//   - (nil, err) matching both ErrShown and the cause if a usage error was printed
//   - (nil, err) for a *ConfigurationError, which is a bug in the schema and is not printed
//
// Usage:
//
//	values, err := cmd.ParseAndHandleHelp(os.Args[1:], zodcli.Output{})
//	if errors.Is(err, zodcli.ErrShown) {
//	    return nil
//	}
//	if err != nil {
//	    return err
//	}
func (c *Command) ParseAndHandleHelp(argv []string, out Output) (Values, error) {
	res := c.SafeParse(argv)
	if f, ok := res.(Failure); ok {
		res = Failure{Err: f.Err, HelpText: c.HelpStyled(out.colorizer(out.stderr()))}
	} else if _, ok := res.(Help); ok {
		res = Help{Text: c.HelpStyled(out.colorizer(out.stdout()))}
	}
	return handleResult(res, c.name, out)
}

func handleResult(res Result, name string, out Output) (Values, error) {
	switch r := res.(type) {
	case Success:
		return r.Values, nil
	case Help:
		fmt.Fprint(out.stdout(), r.Text)
		return nil, ErrShown
	case Failure:
		var cfgErr *ConfigurationError
		if errors.As(r.Err, &cfgErr) {
			return nil, r.Err
		}
		w := out.stderr()
		color := out.colorizer(w)
		fmt.Fprintf(w, "%s %v\n\n", color.Error("Error:"), r.Err)
		fmt.Fprint(w, r.HelpText)
		fmt.Fprintf(w, "\nTry '%s --help' for more information\n", name)
		return nil, fmt.Errorf("%w: %w", ErrShown, r.Err)
	}
	return nil, fmt.Errorf("unknown result %T", res)
}
