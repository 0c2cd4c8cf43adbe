// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getoptions

import (
	"fmt"
	"strings"
)

// Mode controls how single-dash tokens such as "-abc" are read.
type Mode int

const (
	// ModeNormal reads "-abc" as the option "abc".
	ModeNormal Mode = iota
	// ModeBundling reads "-abc" as the options "a", "b" and "c".
	ModeBundling
	// ModeSingleDash reads "-abc" as the option "a" with the value "bc".
	ModeSingleDash
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeBundling:
		return "bundling"
	case ModeSingleDash:
		return "singleDash"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "normal", "bundling" or "singleDash" (case-insensitive).
// The empty string is ModeNormal.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "normal":
		return ModeNormal, nil
	case "bundling":
		return ModeBundling, nil
	case "singledash", "single-dash":
		return ModeSingleDash, nil
	}
	return 0, fmt.Errorf("unknown mode %q (expected normal, bundling or singleDash)", s)
}

const endOfOptions = "--"

// Token is a classified command-line argument.
type Token struct {
	// End is set for "--": no more options follow.
	End bool
	// Names are the candidate option names, in order. Empty for arguments
	// that are not options.
	Names []string
	// Value is the inline value that followed the option names, e.g. "x" in
	// "--name=x". It belongs to the last name only.
	Value string
}

// IsOption reports whether arg has the shape of an option: one or two dashes
// followed by a non-digit. This is what stops an option from taking arg as its
// value, so "-5" and "-" can be values while "-x" cannot.
func IsOption(arg string) bool {
	// A second dash is itself a non-digit, so only arg[1] matters.
	return len(arg) >= 2 && arg[0] == '-' && !isDigit(arg[1])
}

// Classify splits arg into candidate option names and an inline value
// according to mode.
func Classify(arg string, mode Mode) Token {
	switch arg {
	case endOfOptions:
		return Token{End: true}
	case "-":
		return Token{Names: []string{"-"}}
	}

	dashes, name, eq, value, ok := splitOption(arg)
	if !ok {
		return Token{}
	}
	if dashes == 2 {
		return Token{Names: []string{name}, Value: value}
	}
	switch mode {
	case ModeBundling:
		names := make([]string, 0, len(name))
		for _, r := range name {
			names = append(names, string(r))
		}
		return Token{Names: names, Value: value}
	case ModeSingleDash:
		first := firstRuneLen(name)
		return Token{Names: []string{name[:first]}, Value: name[first:] + eq + value}
	default:
		return Token{Names: []string{name}, Value: value}
	}
}

// splitOption splits "--name=value" style arguments. The name is everything up
// to the first '=', must be non-empty and must not start with a digit.
func splitOption(arg string) (dashes int, name, eq, value string, ok bool) {
	switch {
	case strings.HasPrefix(arg, "--"):
		dashes = 2
	case strings.HasPrefix(arg, "-"):
		dashes = 1
	default:
		return 0, "", "", "", false
	}
	name = arg[dashes:]
	if i := strings.IndexByte(name, '='); i >= 0 {
		name, eq, value = name[:i], "=", name[i+1:]
	}
	if name == "" || isDigit(name[0]) {
		return 0, "", "", "", false
	}
	return dashes, name, eq, value, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func firstRuneLen(s string) int {
	for i := range s {
		if i > 0 {
			return i
		}
	}
	return len(s)
}
