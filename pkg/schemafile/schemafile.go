// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schemafile loads zodcli schemas from YAML or TOML files.
//
// A file describes either a single command:
//
//	version: "^1"
//	name: search
//	description: Search the index
//	args:
//	  - {name: query, type: string, position: 0}
//	  - {name: count, type: number, short: c, default: 5}
//
// or a set of subcommands:
//
//	name: git
//	default: status
//	commands:
//	  - name: add
//	    args:
//	      - {name: files, type: "string[]", position: rest}
//	  - name: status
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// FormatVersion is the schema file format understood by this package. A
// file's version field is a semver constraint that must accept it.
const FormatVersion = "1.1.0"

// Format is a schema file encoding.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// File is the decoded form of a schema file.
type File struct {
	Version     string       `yaml:"version,omitempty" toml:"version,omitempty"`
	Name        string       `yaml:"name" toml:"name"`
	Description string       `yaml:"description,omitempty" toml:"description,omitempty"`
	Default     string       `yaml:"default,omitempty" toml:"default,omitempty"`
	Args        []ArgDef     `yaml:"args,omitempty" toml:"args,omitempty"`
	Commands    []CommandDef `yaml:"commands,omitempty" toml:"commands,omitempty"`
}

// CommandDef is one subcommand of a File.
type CommandDef struct {
	Name        string   `yaml:"name" toml:"name"`
	Description string   `yaml:"description,omitempty" toml:"description,omitempty"`
	Args        []ArgDef `yaml:"args,omitempty" toml:"args,omitempty"`
}

// ArgDef is one argument. Type is string, number, boolean or enum, with a
// "[]" suffix for arrays. Position is an integer index, true or "auto" for
// the next free index, "rest", or absent for a named option.
type ArgDef struct {
	Name        string   `yaml:"name" toml:"name"`
	Type        string   `yaml:"type" toml:"type"`
	Values      []string `yaml:"values,omitempty" toml:"values,omitempty"`
	Position    any      `yaml:"position,omitempty" toml:"position"`
	Short       string   `yaml:"short,omitempty" toml:"short,omitempty"`
	Description string   `yaml:"description,omitempty" toml:"description,omitempty"`
	Optional    bool     `yaml:"optional,omitempty" toml:"optional,omitempty"`
	Default     any      `yaml:"default,omitempty" toml:"default"`
}

// FormatForPath picks the encoding from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", fmt.Errorf("unsupported schema file extension %q", filepath.Ext(path))
}

// Load reads, decodes and version-checks the schema file at path.
func Load(path string) (*File, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

// Decode decodes data and checks its version. Unknown fields are rejected.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case TOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown field %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err := f.CheckVersion(); err != nil {
		return nil, err
	}
	return &f, nil
}

// CheckVersion reports whether f.Version accepts FormatVersion. An empty
// version accepts any format.
func (f *File) CheckVersion() error {
	if f.Version == "" {
		return nil
	}
	c, err := semver.NewConstraint(f.Version)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", f.Version, err)
	}
	if v := semver.MustParse(FormatVersion); !c.Check(v) {
		return fmt.Errorf("schema requires format %s, this build supports %s", f.Version, FormatVersion)
	}
	return nil
}

// Encode writes f in the given format.
func (f *File) Encode(format Format) ([]byte, error) {
	switch format {
	case YAML:
		return yaml.Marshal(f)
	case TOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(f); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}
