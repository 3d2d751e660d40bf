// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zodcli

import "testing"

// searchCommand is the schema used by most parser tests.
func searchCommand(t *testing.T) *Command {
	t.Helper()
	cmd, err := NewCommand("search", "Search the index",
		Arg{Name: "query", Type: String(), Position: Pos(0), Description: "Search query"},
		Arg{Name: "count", Type: Number().Default(5), Short: "c", Description: "Number of results"},
		Arg{Name: "verbose", Type: Boolean().Default(false), Short: "v", Description: "Verbose output"},
	)
	if err != nil {
		t.Fatalf("NewCommand failed: %v", err)
	}
	return cmd
}

func addCommand(t *testing.T) *Command {
	t.Helper()
	cmd, err := NewCommand("add", "Stage files",
		Arg{Name: "command", Type: String(), Position: Pos(0)},
		Arg{Name: "files", Type: Array(String()), Position: Rest},
	)
	if err != nil {
		t.Fatalf("NewCommand failed: %v", err)
	}
	return cmd
}
