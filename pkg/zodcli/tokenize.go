// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zodcli

import (
	"reflect"
	"slices"
	"strings"

	"github.com/shayne/yargs"
	"tailscale.com/util/mak"
)

// Tokens is the raw split of argv into named option values and positional
// tokens.
type Tokens struct {
	// Named maps an option's long name to every value given for it, in
	// order. Bare boolean flags contribute "true".
	Named map[string][]string
	// Positionals holds every token not consumed by a known option.
	Positionals []string
	// MissingValue lists value-taking options that appeared without a value.
	MissingValue []string
	// Unknown lists option-shaped tokens before "--" that matched no
	// option. They are also kept in Positionals.
	Unknown []string
}

// Tokenize splits argv using table. It never fails: tokens that match no
// option fall through to Positionals, and legality is decided by Resolve.
//
// Recognized forms:
//   - --name value, --name=value
//   - -s value, -s=value
//   - --flag, -s for boolean options (true); --flag=false
//   - "--" ends option parsing; everything after it is positional
//
// A value-taking option consumes the next token unless it starts with "-"
// and is not a number (so "--offset -5" works).
func Tokenize(argv []string, table OptionTable) Tokens {
	var t Tokens
	t.Positionals = []string{}

	for i := 0; i < len(argv); i++ {
		arg := argv[i]

		if arg == "--" {
			t.Positionals = append(t.Positionals, argv[i+1:]...)
			break
		}

		opt, value, hasValue, ok := lookupOption(arg, table)
		if !ok {
			if isOptionLike(arg) {
				t.Unknown = append(t.Unknown, arg)
			}
			t.Positionals = append(t.Positionals, arg)
			continue
		}

		value, consumed, missing := consumeOption(opt, value, hasValue, argv[i+1:])
		if consumed {
			i++
		}
		if missing {
			if !slices.Contains(t.MissingValue, opt.Name) {
				t.MissingValue = append(t.MissingValue, opt.Name)
			}
			continue
		}
		mak.Set(&t.Named, opt.Name, append(t.Named[opt.Name], value))
	}
	return t
}

// consumeOption reads the value of one occurrence of opt with yargs. The
// occurrence is respelled as --name[=value] so that yargs, which strips any
// number of leading dashes, sees exactly one known flag, and it is handed at
// most the following token. Whether that token was taken is read back from
// what yargs leaves over, which keeps an empty explicit value (--name=)
// apart from a missing one.
func consumeOption(opt Option, value string, hasValue bool, rest []string) (v string, consumed, missing bool) {
	flag := "--" + opt.Name
	if hasValue {
		flag += "=" + value
	}
	window := []string{flag}
	if len(rest) > 0 {
		window = append(window, rest[0])
	}
	kind := reflect.String
	if opt.Boolean {
		kind = reflect.Bool
	}
	remaining, values := yargs.ConsumeFlagsBySpec(window, map[string]yargs.ConsumeSpec{
		opt.Name: {Kind: kind},
	})
	// The following token may itself be read as another occurrence of the
	// same flag; only the first value belongs to this one.
	got := values[opt.Name]
	if len(got) == 0 {
		return "", false, true
	}
	consumed = len(window) == 2 && len(remaining) == 0 && len(got) == 1
	if !hasValue && !opt.Boolean && !consumed {
		return "", false, true
	}
	return got[0], consumed, false
}

// lookupOption resolves arg against table. ok is false for anything that is
// not a known option, including negative numbers and a lone "-".
func lookupOption(arg string, table OptionTable) (opt Option, value string, hasValue, ok bool) {
	var name string
	var short bool
	switch {
	case !isOptionLike(arg):
		return Option{}, "", false, false
	case strings.HasPrefix(arg, "--"):
		name = arg[2:]
	default:
		name = arg[1:]
		short = true
	}
	name, value, hasValue = strings.Cut(name, "=")
	if short {
		opt, ok = table.Short(name)
	} else {
		opt, ok = table.Long(name)
	}
	return opt, value, hasValue, ok
}

// isOptionLike reports whether arg is spelled like an option rather than a
// value: not "-", "--" or a negative number.
func isOptionLike(arg string) bool {
	return len(arg) > 1 && arg != "--" && strings.HasPrefix(arg, "-") && !isNumeric(arg)
}

// hasHelpFlag reports whether argv contains --help or -h anywhere, with or
// without an attached value (--help=true, -h=1).
func hasHelpFlag(argv []string) bool {
	return slices.ContainsFunc(argv, func(arg string) bool {
		flag, _, _ := strings.Cut(arg, "=")
		return flag == helpFlagLong || flag == helpFlagShort
	})
}
