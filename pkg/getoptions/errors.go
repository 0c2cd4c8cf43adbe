// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getoptions

import (
	"errors"
	"fmt"
	"strings"
)

// Error tiers. Every error returned by Compile or Parse matches exactly one of
// these with errors.Is.
var (
	// ErrDefinition is matched by errors found while compiling the definition
	// table, before any argument is looked at.
	ErrDefinition = errors.New("invalid option definition")

	// ErrParse is matched by errors that abort parsing of the arguments.
	ErrParse = errors.New("invalid arguments")
)

// MissingNameError is returned when a definition has no option name, e.g. "=s".
type MissingNameError struct {
	Definition string
}

func (e *MissingNameError) Error() string {
	return fmt.Sprintf("missing name in definition %q", e.Definition)
}

func (e *MissingNameError) Unwrap() error { return ErrDefinition }

// InvalidSpecError is returned when the part of a definition after the names
// does not follow the option mini-language, or when the destination cannot be
// used with the option kind.
type InvalidSpecError struct {
	Definition string
	Spec       string // The offending suffix (e.g. "=x"), empty for destination errors.
	Reason     string
}

func (e *InvalidSpecError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid definition %q: %s", e.Definition, e.Reason)
	}
	return fmt.Sprintf("invalid option specification %q in definition %q", e.Spec, e.Definition)
}

func (e *InvalidSpecError) Unwrap() error { return ErrDefinition }

// RepeatRangeError is returned when a repeat quantifier has max < min.
type RepeatRangeError struct {
	Definition string
	Min, Max   int
}

func (e *RepeatRangeError) Error() string {
	return fmt.Sprintf("invalid repeat in definition %q: max %d is less than min %d", e.Definition, e.Max, e.Min)
}

func (e *RepeatRangeError) Unwrap() error { return ErrDefinition }

// DuplicateOptionError is returned when the same alias is declared by two
// definitions.
type DuplicateOptionError struct {
	Alias       string
	Definitions [2]string
}

func (e *DuplicateOptionError) Error() string {
	return fmt.Sprintf("option %q defined more than once (%q and %q)", e.Alias, e.Definitions[0], e.Definitions[1])
}

func (e *DuplicateOptionError) Unwrap() error { return ErrDefinition }

// UnknownOptionError is returned for an option that matches no definition when
// Config.FailOnUnknown is set.
type UnknownOptionError struct {
	Option string
	Arg    string // The command-line token the option came from.
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("option %q not found", e.Option)
}

func (e *UnknownOptionError) Unwrap() error { return ErrParse }

// AmbiguousOptionError is returned when an option matches more than one
// definition. Matches holds the alias sets of every match, sorted.
type AmbiguousOptionError struct {
	Option  string
	Matches [][]string
}

func (e *AmbiguousOptionError) Error() string {
	names := make([]string, len(e.Matches))
	for i, m := range e.Matches {
		names[i] = "[" + strings.Join(m, "|") + "]"
	}
	return fmt.Sprintf("option %q matches multiple names %s", e.Option, strings.Join(names, ", "))
}

func (e *AmbiguousOptionError) Unwrap() error { return ErrParse }

// MissingArgumentError is returned when an option that requires a value is not
// followed by one.
type MissingArgumentError struct {
	Option string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing argument for option %q", e.Option)
}

func (e *MissingArgumentError) Unwrap() error { return ErrParse }

// TypeMismatchError is returned when a value cannot be coerced to the option's
// type. Err holds the conversion error, if any.
type TypeMismatchError struct {
	Option string
	Type   ValueType
	Value  string
	Err    error
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("argument %q for option %q is not of type %s", e.Value, e.Option, e.Type)
}

// Is reports ErrParse so the error tier stays reachable while Unwrap exposes
// the conversion error.
func (e *TypeMismatchError) Is(target error) bool { return target == ErrParse }

func (e *TypeMismatchError) Unwrap() error { return e.Err }

// KeyValueFormatError is returned when a map option receives a value that is
// not of the form key=value.
type KeyValueFormatError struct {
	Option string
	Value  string
}

func (e *KeyValueFormatError) Error() string {
	return fmt.Sprintf("argument %q for option %q must be of type key=value", e.Value, e.Option)
}

func (e *KeyValueFormatError) Unwrap() error { return ErrParse }

// UnimplementedKindError is returned when an option of a kind the engine parses
// but does not execute (increment, optional with default, optional with
// increment) is used.
type UnimplementedKindError struct {
	Option string
	Kind   Kind
}

func (e *UnimplementedKindError) Error() string {
	return fmt.Sprintf("option %q: unimplemented option kind %s", e.Option, e.Kind)
}

func (e *UnimplementedKindError) Unwrap() error { return ErrParse }

// UnimplementedTypeError is returned when a value of the opaque type "o" has
// to be produced.
type UnimplementedTypeError struct {
	Option string
	Type   ValueType
}

func (e *UnimplementedTypeError) Error() string {
	return fmt.Sprintf("option %q: unimplemented type %s", e.Option, e.Type)
}

func (e *UnimplementedTypeError) Unwrap() error { return ErrParse }
