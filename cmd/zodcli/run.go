// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"runtime"

	"github.com/yeetrun/zodcli/pkg/schemafile"
	"github.com/yeetrun/zodcli/pkg/zodcli"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// parseReport is what `zodcli parse` prints for a routed result.
type parseReport struct {
	Command string         `json:"command,omitempty" yaml:"command,omitempty"`
	Status  string         `json:"status" yaml:"status"`
	Values  zodcli.Values  `json:"values,omitempty" yaml:"values,omitempty"`
	Error   string         `json:"error,omitempty" yaml:"error,omitempty"`
	Issues  []zodcli.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
	Help    string         `json:"help,omitempty" yaml:"help,omitempty"`
}

func newParseReport(r zodcli.Routed) parseReport {
	rep := parseReport{Command: r.Command}
	switch res := r.Result.(type) {
	case zodcli.Success:
		rep.Status = "success"
		rep.Values = res.Values
	case zodcli.Help:
		rep.Status = "help"
		rep.Help = res.Text
	case zodcli.Failure:
		rep.Status = "error"
		rep.Error = res.Err.Error()
		rep.Help = res.HelpText
		var verr *zodcli.ValidationError
		if errors.As(res.Err, &verr) {
			rep.Issues = verr.Issues
		}
	}
	return rep
}

func loadSchema(path string) (*schemafile.Schema, error) {
	log.Printf("loading %s", path)
	f, err := schemafile.Load(path)
	if err != nil {
		return nil, err
	}
	s, err := f.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func runParse(e *env, values zodcli.Values, passthrough []string) error {
	s, err := loadSchema(values.String("schema"))
	if err != nil {
		return err
	}
	argv := append(values.Strings("args"), passthrough...)
	log.Printf("parsing %q with %s", argv, s.Name())

	rep := newParseReport(s.SafeParse(argv))
	var out []byte
	switch values.String("format") {
	case "yaml":
		out, err = yaml.Marshal(rep)
	default:
		out, err = json.MarshalIndent(rep, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return err
	}
	if _, err := e.stdout.Write(out); err != nil {
		return err
	}
	if rep.Status == "error" {
		return errParseFailed
	}
	return nil
}

var errParseFailed = errors.New("arguments did not parse")

func runHelp(e *env, values zodcli.Values) error {
	s, err := loadSchema(values.String("schema"))
	if err != nil {
		return err
	}
	text, err := s.HelpStyled(values.String("command"), e.colorizer(e.stdout))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(e.stdout, text)
	return err
}

// checkResult is the outcome of checking one schema file.
type checkResult struct {
	path string
	err  error
}

func runCheck(e *env, values zodcli.Values) error {
	files := values.Strings("files")
	if len(files) == 0 {
		return errors.New("no schema files given")
	}
	jobs := values.Int("jobs")
	if jobs < 1 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results, err := checkFiles(files, jobs)

	color := e.colorizer(e.stdout)
	var failed int
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(e.stdout, "%s %s: %v\n", color.Error("FAIL"), r.path, r.err)
			continue
		}
		if !values.Bool("quiet") {
			fmt.Fprintf(e.stdout, "%s %s\n", color.Success("ok"), r.path)
		}
	}
	if err != nil {
		return fmt.Errorf("%d of %d schema files failed, first: %w", failed, len(files), err)
	}
	return nil
}

// checkFiles loads and builds every file with at most jobs in flight. Every
// file is checked even after a failure. The results are in the order of
// files, and the error is the first failure to finish.
func checkFiles(files []string, jobs int) ([]checkResult, error) {
	results := make([]checkResult, len(files))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			_, err := loadSchema(path)
			results[i] = checkResult{path: path, err: err}
			return err
		})
	}
	return results, g.Wait()
}

func runVersion(e *env) error {
	_, err := fmt.Fprintf(e.stdout, "zodcli %s (schema format %s, %s)\n", Version, schemafile.FormatVersion, runtime.Version())
	return err
}
