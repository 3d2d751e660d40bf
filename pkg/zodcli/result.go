// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zodcli

// Result is the outcome of SafeParse. It is one of Success, Help or Failure.
type Result interface {
	isResult()
}

// Success holds the typed values of a parse.
type Success struct {
	Values Values
}

// Help is returned when --help or -h was requested.
type Help struct {
	Text string
}

// Failure pairs the cause of a failed parse with the help text of the
// command that rejected it.
type Failure struct {
	Err      error
	HelpText string
}

func (Success) isResult() {}
func (Help) isResult()    {}
func (Failure) isResult() {}

// Routed is the outcome of Subcommands.SafeParse. Command is the subcommand
// that handled argv, or "" when the root answered (root help or an unknown
// subcommand).
type Routed struct {
	Command string
	Result  Result
}

// Unwrap converts r to the throwing form: values for Success, a *HelpError
// for Help and the cause for Failure.
func Unwrap(r Result) (Values, error) {
	switch r := r.(type) {
	case Success:
		return r.Values, nil
	case Help:
		return nil, &HelpError{Text: r.Text}
	case Failure:
		return nil, r.Err
	}
	panic("zodcli: unknown result type")
}
