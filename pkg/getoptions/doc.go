// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package getoptions parses command-line arguments against a table of option
// definitions written in a compact mini-language, in the style of Perl's
// Getopt::Long.
//
// It works on any slice of strings and returns the bound values plus the
// arguments it did not use, so the remaining args can be handed to a
// subcommand or parsed again with another table.
//
// # Basic Usage
//
//	res, rest, err := getoptions.Parse(os.Args[1:], getoptions.Definitions{
//	    "verbose|v":   getoptions.Key("verbose"),
//	    "output|o=s":  getoptions.Key("output"),
//	    "level=i":     getoptions.Key("level"),
//	    "color!":      getoptions.Key("color"),
//	    "tag=s@":      getoptions.Key("tags"),
//	    "define|D=s%": getoptions.Key("defines"),
//	    "rgb=i@{3}":   getoptions.Key("rgb"),
//	    "help":        getoptions.Callback(usage),
//	}, getoptions.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Bool("verbose"), res.String("output"), res.Ints("rgb"), rest)
//
// # Definitions
//
// A definition is one or more names separated by '|' followed by an argument
// specification:
//
//	name          flag, binds true (or calls a Callback destination)
//	name!         negatable flag, --name binds true, --no-name and --noname bind false
//	name+         increment (not implemented, fails when used)
//	name=T        required value of type T
//	name:T        optional value of type T, the zero value when absent
//	name:N        optional value with default N (not implemented)
//	name:+        optional value with increment (not implemented)
//
// T is s (string), i (integer), f (float) or o (opaque, not implemented). T
// may be followed by @ to collect values in a list or % to collect key=value
// pairs in a map, and, for required values, by a repeat {min,max} giving how
// many values each occurrence consumes: {n}, {n,}, {,m} or {n,m}.
//
// # Matching
//
// Options may be abbreviated as long as the abbreviation is unambiguous: with
// "build" and "bundle" defined, --bui matches build while --bu is an error.
// Exact matches always win over abbreviations.
//
// # Modes
//
// Arguments starting with "--" always name a single option. Single-dash
// arguments depend on Config.Mode:
//
//	ModeNormal      -abc   is the option "abc"
//	ModeBundling    -abc   are the options "a", "b" and "c"
//	ModeSingleDash  -abc   is the option "a" with the value "bc"
//
// Values can be attached with '=' (--name=value) or given as the next
// argument. A lone "-" is an ordinary value or option name and "--" ends option
// processing.
//
// # Unknown options
//
// Unknown options are returned in the remaining args with a warning. Set
// Config.PassThrough to silence the warning, Config.FailOnUnknown to make them
// an error, and Config.RequireOrder to stop at the first non-option.
//
// # Errors
//
// Problems in the definitions are reported before any argument is parsed and
// match ErrDefinition. Problems in the arguments abort the parse and match
// ErrParse. Use errors.As with the concrete error types to get the offending
// option.
package getoptions
