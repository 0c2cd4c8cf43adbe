// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getoptions

import (
	"regexp"
	"strconv"
)

var (
	// integerPattern is an optional sign followed by digits.
	integerPattern = regexp.MustCompile(`^[+-]?\d+$`)
	// floatPattern is an optional sign, digits, an optional fraction and an
	// optional exponent.
	floatPattern = regexp.MustCompile(`^[+-]?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?$`)
)

// coerce converts value to the type of spec. String values are returned as
// is; integers become int and floats float64.
func coerce(spec *OptionSpec, value string) (any, error) {
	switch spec.Type {
	case String:
		return value, nil
	case Integer:
		if !integerPattern.MatchString(value) {
			return nil, &TypeMismatchError{Option: spec.Name(), Type: Integer, Value: value}
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, &TypeMismatchError{Option: spec.Name(), Type: Integer, Value: value, Err: err}
		}
		return n, nil
	case Float:
		if !floatPattern.MatchString(value) {
			return nil, &TypeMismatchError{Option: spec.Name(), Type: Float, Value: value}
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, &TypeMismatchError{Option: spec.Name(), Type: Float, Value: value, Err: err}
		}
		return f, nil
	}
	return nil, &UnimplementedTypeError{Option: spec.Name(), Type: spec.Type}
}

// zeroValue is what an optional option binds when no value follows it.
func zeroValue(spec *OptionSpec) (any, error) {
	switch spec.Type {
	case String:
		return "", nil
	case Integer:
		return 0, nil
	case Float:
		return 0.0, nil
	}
	return nil, &UnimplementedTypeError{Option: spec.Name(), Type: spec.Type}
}
