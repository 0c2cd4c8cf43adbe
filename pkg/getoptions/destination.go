// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getoptions

import (
	"fmt"
	"reflect"
)

// Destination says where a matched option goes: either a key in the Result or
// a callback that is invoked instead of binding a value.
type Destination struct {
	key any
	fn  func()
}

// Key returns a Destination that binds option values under k in the Result.
// k must be comparable.
func Key(k any) Destination {
	return Destination{key: k}
}

// Callback returns a Destination that calls fn each time the option is seen.
// Only plain flags accept callbacks.
func Callback(fn func()) Destination {
	return Destination{fn: fn}
}

// IsCallback reports whether d invokes a function rather than binding a key.
func (d Destination) IsCallback() bool {
	return d.fn != nil
}

// Key returns the result key of d, nil for callbacks.
func (d Destination) Key() any {
	return d.key
}

func (d Destination) String() string {
	if d.fn != nil {
		return "<callback>"
	}
	return fmt.Sprint(d.key)
}

// validate checks that d can be used by an option of kind k.
func (d Destination) validate(k Kind) string {
	if d.fn != nil {
		if k != Flag {
			return fmt.Sprintf("%s options cannot use a callback destination", k)
		}
		return ""
	}
	if d.key == nil {
		return "destination key is nil"
	}
	if t := reflect.TypeOf(d.key); !t.Comparable() {
		return fmt.Sprintf("destination key of type %s is not comparable", t)
	}
	return ""
}
