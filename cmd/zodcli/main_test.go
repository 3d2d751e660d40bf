// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/zodcli/pkg/zodcli"
	"gopkg.in/yaml.v3"
)

const searchSchema = `version: "^1"
name: search
description: Search the index
args:
  - name: query
    type: string
    position: 0
    description: Search query
  - name: count
    type: number
    short: c
    default: 5
    description: Number of results
`

const gitSchema = `
name = "git"
default = "status"

[[commands]]
name = "add"
description = "Stage files"

  [[commands.args]]
  name = "files"
  type = "string[]"
  position = "rest"

[[commands]]
name = "status"
description = "Show the working tree status"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestParseCommand(t *testing.T) {
	path := writeFile(t, "search.yaml", searchSchema)

	code, stdout, stderr := runCLI(t, "parse", path, "--", "golang", "-c", "3")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	var got parseReport
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("Unmarshal error: %v\n%s", err, stdout)
	}
	want := parseReport{
		Command: "search",
		Status:  "success",
		Values:  zodcli.Values{"query": "golang", "count": 3.0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCommandWithoutSeparator(t *testing.T) {
	path := writeFile(t, "search.yaml", searchSchema)
	code, stdout, _ := runCLI(t, "parse", path, "golang")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, `"count": 5`) {
		t.Errorf("default not applied:\n%s", stdout)
	}
}

func TestParseCommandYAML(t *testing.T) {
	path := writeFile(t, "search.yaml", searchSchema)

	check := func(t *testing.T, stdout string) {
		t.Helper()
		var got map[string]any
		if err := yaml.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("yaml.Unmarshal error: %v\n%s", err, stdout)
		}
		if got["status"] != "success" {
			t.Errorf("status = %v", got["status"])
		}
	}

	t.Run("flag", func(t *testing.T) {
		code, stdout, _ := runCLI(t, "parse", "--format", "yaml", path, "golang")
		if code != 0 {
			t.Fatalf("exit code = %d", code)
		}
		check(t, stdout)
	})
	t.Run("env", func(t *testing.T) {
		t.Setenv(formatEnv, "yaml")
		code, stdout, _ := runCLI(t, "parse", path, "golang")
		if code != 0 {
			t.Fatalf("exit code = %d", code)
		}
		check(t, stdout)
	})
}

func TestParseCommandFailure(t *testing.T) {
	path := writeFile(t, "search.yaml", searchSchema)

	code, stdout, _ := runCLI(t, "parse", path, "--", "--count", "lots")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	var got parseReport
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("Unmarshal error: %v\n%s", err, stdout)
	}
	wantIssues := []zodcli.Issue{
		{Path: "query", Message: "required"},
		{Path: "count", Message: `expected number, received "lots"`},
	}
	if got.Status != "error" {
		t.Errorf("status = %q, want error", got.Status)
	}
	if diff := cmp.Diff(wantIssues, got.Issues); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(got.Help, "ARGUMENTS:") {
		t.Errorf("failure report carries no help:\n%s", got.Help)
	}
}

func TestParseCommandSubcommands(t *testing.T) {
	path := writeFile(t, "git.toml", gitSchema)

	tests := []struct {
		name        string
		args        []string
		wantStatus  string
		wantCommand string
	}{
		{"explicit", []string{"add", "a.go"}, "success", "add"},
		{"default", []string{}, "help", ""},
		{"schema help", []string{"--help"}, "help", ""},
		{"subcommand help", []string{"add", "--help"}, "help", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"parse", path, "--"}, tt.args...)
			code, stdout, stderr := runCLI(t, args...)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr = %q", code, stderr)
			}
			var got parseReport
			if err := json.Unmarshal([]byte(stdout), &got); err != nil {
				t.Fatalf("Unmarshal error: %v\n%s", err, stdout)
			}
			if got.Status != tt.wantStatus || got.Command != tt.wantCommand {
				t.Errorf("got status %q command %q, want %q %q", got.Status, got.Command, tt.wantStatus, tt.wantCommand)
			}
		})
	}
}

func TestHelpCommand(t *testing.T) {
	path := writeFile(t, "git.toml", gitSchema)

	code, stdout, stderr := runCLI(t, "--no-color", "help", path)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	for _, want := range []string{"git\n", "SUBCOMMANDS:", "status      Show the working tree status (default)"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help missing %q:\n%s", want, stdout)
		}
	}

	code, stdout, _ = runCLI(t, "help", path, "add")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, "[files...]") {
		t.Errorf("add help missing rest argument:\n%s", stdout)
	}

	code, _, stderr = runCLI(t, "help", path, "push")
	if code != 1 || !strings.Contains(stderr, "unknown command: push") {
		t.Errorf("help push: code = %d, stderr = %q", code, stderr)
	}
}

func TestCheckCommand(t *testing.T) {
	good := writeFile(t, "search.yaml", searchSchema)
	toml := writeFile(t, "git.toml", gitSchema)
	bad := writeFile(t, "bad.yaml", `name: bad
args:
  - {name: a, type: string, position: 0}
  - {name: b, type: string, position: 0}
`)
	future := writeFile(t, "future.yaml", "version: \">= 2\"\nname: x\n")

	code, stdout, _ := runCLI(t, "check", "-j", "2", good, bad, toml, future)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), stdout)
	}
	wantPrefix := []string{"ok " + good, "FAIL " + bad, "ok " + toml, "FAIL " + future}
	for i, p := range wantPrefix {
		if !strings.HasPrefix(lines[i], p) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], p)
		}
	}
	if !strings.Contains(lines[1], "position 0 already used") {
		t.Errorf("bad schema line = %q", lines[1])
	}

	code, stdout, _ = runCLI(t, "check", "--quiet", good, toml)
	if code != 0 || stdout != "" {
		t.Errorf("quiet check: code = %d, stdout = %q", code, stdout)
	}
}

func TestCheckFiles(t *testing.T) {
	good := writeFile(t, "search.yaml", searchSchema)
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	results, err := checkFiles([]string{missing, good}, 1)
	if err == nil || !strings.Contains(err.Error(), missing) {
		t.Fatalf("checkFiles() error = %v, want it to name %s", err, missing)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].err == nil || results[1].err != nil {
		t.Errorf("results = %+v, want only the missing file to fail", results)
	}

	if _, err := checkFiles([]string{good}, 4); err != nil {
		t.Errorf("checkFiles(good) error = %v", err)
	}
}

func TestRootUsage(t *testing.T) {
	code, stdout, _ := runCLI(t, "--help")
	if code != 0 || !strings.Contains(stdout, "SUBCOMMANDS:") {
		t.Errorf("--help: code = %d, stdout = %q", code, stdout)
	}

	code, _, stderr := runCLI(t, "bogus")
	if code != 2 || !strings.Contains(stderr, "unknown command: bogus") {
		t.Errorf("bogus: code = %d, stderr = %q", code, stderr)
	}

	code, _, stderr = runCLI(t, "check")
	if code != 1 || !strings.Contains(stderr, "no schema files") {
		t.Errorf("check: code = %d, stderr = %q", code, stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	if code != 0 || !strings.HasPrefix(stdout, "zodcli dev (schema format ") {
		t.Errorf("version: code = %d, stdout = %q", code, stdout)
	}
}

func TestParseGlobalFlags(t *testing.T) {
	flags, remaining, err := parseGlobalFlags([]string{"--verbose", "--no-color", "parse", "s.yaml", "--verbose"})
	if err != nil {
		t.Fatalf("parseGlobalFlags error: %v", err)
	}
	if !flags.Verbose || !flags.NoColor {
		t.Errorf("flags = %+v", flags)
	}
	if diff := cmp.Diff([]string{"parse", "s.yaml", "--verbose"}, remaining); diff != "" {
		t.Errorf("remaining mismatch (-want +got):\n%s", diff)
	}
}
