// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getoptions

import "strings"

// bind executes a resolved option: it consumes the values the option needs
// from the front of the argument stream and stores them in the result.
func (p *parser) bind(r ResolvedOption) error {
	spec := r.Spec
	key := spec.Dest.Key()
	switch spec.Kind {
	case Flag:
		if spec.Dest.IsCallback() {
			p.diag.debugf("calling callback for %q", spec.Name())
			spec.Dest.fn()
			return nil
		}
		p.result[key] = true
		return nil
	case NegatableFlag:
		p.result[key] = !r.Negated
		return nil
	case Required, Optional:
	default:
		return &UnimplementedKindError{Option: spec.Name(), Kind: spec.Kind}
	}

	if spec.Type == Opaque {
		return &UnimplementedTypeError{Option: spec.Name(), Type: spec.Type}
	}
	switch spec.Container {
	case List:
		return p.bindList(spec)
	case Map:
		return p.bindMap(spec)
	}
	v, err := p.value(spec)
	if err != nil {
		return err
	}
	p.diag.debugf("%q = %v", spec.Name(), v)
	p.result[key] = v
	return nil
}

// value consumes the value of a scalar-style option. If the stream is empty or
// the next argument looks like an option, optional options get their zero value
// and required ones fail; required string options take the next argument
// whatever it looks like.
func (p *parser) value(spec *OptionSpec) (any, error) {
	next, ok := p.peek()
	if ok && (!IsOption(next) || (spec.Kind == Required && spec.Type == String)) {
		p.shift()
		return coerce(spec, next)
	}
	if spec.Kind == Optional {
		return zeroValue(spec)
	}
	return nil, &MissingArgumentError{Option: spec.Name()}
}

// bindList appends to the list under the option's key. Without a repeat it
// takes one value like a scalar option, so an optional list gets the zero
// value when nothing follows. With a {min,max} repeat, min values are
// mandatory and up to max-min more are taken while the next argument is not
// an option.
func (p *parser) bindList(spec *OptionSpec) error {
	key := spec.Dest.Key()
	switch spec.Type {
	case String:
		ensureList[string](p.result, key)
	case Integer:
		ensureList[int](p.result, key)
	case Float:
		ensureList[float64](p.result, key)
	}

	atLeast, atMost := 1, 1
	if spec.Repeat != nil {
		atLeast, atMost = spec.Repeat.Min, spec.Repeat.Max
	}
	for i := 0; i < atMost; i++ {
		var (
			v   any
			err error
		)
		if i < atLeast {
			if p.empty() && (spec.Kind == Required || spec.Repeat != nil) {
				return &MissingArgumentError{Option: spec.Name()}
			}
			v, err = p.value(spec)
		} else {
			next, ok := p.peek()
			if !ok || IsOption(next) {
				break
			}
			v, err = coerce(spec, p.shift())
		}
		if err != nil {
			return err
		}
		p.diag.debugf("%q += %v", spec.Name(), v)
		switch v := v.(type) {
		case string:
			appendList(p.result, key, v)
		case int:
			appendList(p.result, key, v)
		case float64:
			appendList(p.result, key, v)
		}
	}
	return nil
}

// bindMap adds key=value arguments to the map under the option's key, with the
// same repeat rules as bindList.
func (p *parser) bindMap(spec *OptionSpec) error {
	key := spec.Dest.Key()
	switch spec.Type {
	case String:
		ensureMap[string](p.result, key)
	case Integer:
		ensureMap[int](p.result, key)
	case Float:
		ensureMap[float64](p.result, key)
	}

	atLeast, atMost := 1, 1
	if spec.Repeat != nil {
		atLeast, atMost = spec.Repeat.Min, spec.Repeat.Max
	}
	for i := 0; i < atMost; i++ {
		next, ok := p.peek()
		if !ok || IsOption(next) {
			if i < atLeast {
				return &MissingArgumentError{Option: spec.Name()}
			}
			break
		}
		p.shift()
		k, raw, found := strings.Cut(next, "=")
		if !found || k == "" {
			return &KeyValueFormatError{Option: spec.Name(), Value: next}
		}
		v, err := coerce(spec, raw)
		if err != nil {
			return err
		}
		p.diag.debugf("%q[%q] = %v", spec.Name(), k, v)
		switch v := v.(type) {
		case string:
			setMap(p.result, key, k, v)
		case int:
			setMap(p.result, key, k, v)
		case float64:
			setMap(p.result, key, k, v)
		}
	}
	return nil
}
