// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getoptions

import (
	"fmt"
	"strconv"
	"strings"

	"tailscale.com/util/set"
)

// Kind is the argument behaviour of an option.
type Kind int

const (
	Flag                  Kind = iota // name
	NegatableFlag                     // name!
	Increment                         // name+
	Required                          // name=TYPE
	Optional                          // name:TYPE
	OptionalWithDefault               // name:DIGITS
	OptionalWithIncrement             // name:+
)

func (k Kind) String() string {
	switch k {
	case Flag:
		return "flag"
	case NegatableFlag:
		return "negatable flag"
	case Increment:
		return "increment"
	case Required:
		return "required"
	case Optional:
		return "optional"
	case OptionalWithDefault:
		return "optional with default"
	case OptionalWithIncrement:
		return "optional with increment"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ValueType is the type option values are coerced to.
type ValueType int

const (
	String  ValueType = iota // s
	Integer                  // i
	Float                    // f
	Opaque                   // o
)

func (t ValueType) String() string {
	switch t {
	case String:
		return "String"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Opaque:
		return "Opaque"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

func (t ValueType) letter() byte {
	return "sifo"[t]
}

// Container is the shape of the value stored under the destination key.
type Container int

const (
	Scalar Container = iota
	List             // @
	Map              // %
)

func (c Container) String() string {
	switch c {
	case Scalar:
		return "scalar"
	case List:
		return "list"
	case Map:
		return "map"
	default:
		return fmt.Sprintf("Container(%d)", int(c))
	}
}

// Repeat bounds the number of values a list or map option consumes each time
// it appears.
type Repeat struct {
	Min, Max int
}

// OptionSpec is one compiled option definition.
type OptionSpec struct {
	Aliases   []string
	Kind      Kind
	Type      ValueType
	Container Container
	Repeat    *Repeat // nil when no {min,max} was given
	Default   string  // digits of an OptionalWithDefault definition
	Dest      Destination

	def string // the definition string this spec was compiled from
}

// Name returns the first alias, used when reporting errors.
func (s *OptionSpec) Name() string {
	return s.Aliases[0]
}

// Definition returns the definition string s was compiled from.
func (s *OptionSpec) Definition() string {
	return s.def
}

// String renders s back into the mini-language.
func (s *OptionSpec) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(s.Aliases, "|"))
	switch s.Kind {
	case Flag:
	case NegatableFlag:
		b.WriteByte('!')
	case Increment:
		b.WriteByte('+')
	case Required:
		b.WriteByte('=')
		b.WriteByte(s.Type.letter())
	case Optional:
		b.WriteByte(':')
		b.WriteByte(s.Type.letter())
	case OptionalWithDefault:
		b.WriteByte(':')
		b.WriteString(s.Default)
	case OptionalWithIncrement:
		b.WriteString(":+")
	}
	switch s.Container {
	case List:
		b.WriteByte('@')
	case Map:
		b.WriteByte('%')
	}
	if s.Repeat != nil {
		fmt.Fprintf(&b, "{%d,%d}", s.Repeat.Min, s.Repeat.Max)
	}
	return b.String()
}

const specSymbols = "=:+!"

// CompileSpec compiles a single definition such as "name|n=s@{1,3}" into an
// OptionSpec bound to dest.
//
// The definition is split at the first of '=', ':', '+' or '!' into the
// '|'-separated aliases and the argument specification:
//
//	""                     flag
//	"!"                    negatable flag (--no-name, --noname)
//	"+"                    increment
//	"=" TYPE [DEST] [REP]  required value
//	":" DIGITS [DEST]      optional value with default
//	":+" [DEST]            optional value with increment
//	":" TYPE [DEST]        optional value
//
// TYPE is one of s, i, f, o; DEST is @ (list) or % (map); REP is {min},
// {min,}, {,max} or {min,max}.
func CompileSpec(def string, dest Destination) (*OptionSpec, error) {
	cut := strings.IndexAny(def, specSymbols)
	names, suffix := def, ""
	if cut >= 0 {
		names, suffix = def[:cut], def[cut:]
	}
	if names == "" {
		return nil, &MissingNameError{Definition: def}
	}

	spec := &OptionSpec{def: def, Dest: dest}
	seen := make(set.Set[string])
	for _, alias := range strings.Split(names, "|") {
		if alias == "" {
			return nil, &MissingNameError{Definition: def}
		}
		if seen.Contains(alias) {
			continue
		}
		seen.Add(alias)
		spec.Aliases = append(spec.Aliases, alias)
	}

	if err := parseArgSpec(spec, suffix); err != nil {
		return nil, err
	}
	if reason := dest.validate(spec.Kind); reason != "" {
		return nil, &InvalidSpecError{Definition: def, Reason: reason}
	}
	return spec, nil
}

// parseArgSpec fills the kind, type, container and repeat of spec from the
// argument specification suffix.
func parseArgSpec(spec *OptionSpec, suffix string) error {
	invalid := &InvalidSpecError{Definition: spec.def, Spec: suffix}
	switch suffix {
	case "":
		spec.Kind = Flag
		return nil
	case "!":
		spec.Kind = NegatableFlag
		return nil
	case "+":
		spec.Kind = Increment
		spec.Type = Integer
		return nil
	}

	rest := suffix[1:]
	switch suffix[0] {
	case '=':
		spec.Kind = Required
		typ, ok := parseType(rest)
		if !ok {
			return invalid
		}
		spec.Type = typ
		rest = parseContainer(spec, rest[1:])
		if rest == "" {
			return nil
		}
		rep, err := parseRepeat(spec.def, suffix, rest)
		if err != nil {
			return err
		}
		spec.Repeat = rep
		return nil
	case ':':
		if digits := leadingDigits(rest); digits != "" {
			spec.Kind = OptionalWithDefault
			spec.Type = Integer
			spec.Default = digits
			rest = rest[len(digits):]
		} else if strings.HasPrefix(rest, "+") {
			spec.Kind = OptionalWithIncrement
			spec.Type = Integer
			rest = rest[1:]
		} else {
			typ, ok := parseType(rest)
			if !ok {
				return invalid
			}
			spec.Kind = Optional
			spec.Type = typ
			rest = rest[1:]
		}
		if parseContainer(spec, rest) != "" {
			return invalid
		}
		return nil
	}
	return invalid
}

func parseType(s string) (ValueType, bool) {
	if s == "" {
		return 0, false
	}
	switch s[0] {
	case 's':
		return String, true
	case 'i':
		return Integer, true
	case 'f':
		return Float, true
	case 'o':
		return Opaque, true
	}
	return 0, false
}

// parseContainer consumes an optional @ or % marker and returns what is left.
func parseContainer(spec *OptionSpec, s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '@':
		spec.Container = List
		return s[1:]
	case '%':
		spec.Container = Map
		return s[1:]
	}
	return s
}

// parseRepeat parses "{min}", "{min,}", "{,max}" or "{min,max}". A missing min
// is 1 and a missing max is min.
func parseRepeat(def, suffix, s string) (*Repeat, error) {
	invalid := &InvalidSpecError{Definition: def, Spec: suffix}
	if len(s) < 3 || s[0] != '{' || s[len(s)-1] != '}' {
		return nil, invalid
	}
	minStr, maxStr, _ := strings.Cut(s[1:len(s)-1], ",")
	maxStr = strings.TrimPrefix(maxStr, " ")
	if minStr == "" && maxStr == "" {
		return nil, invalid
	}

	r := &Repeat{Min: 1}
	if minStr != "" {
		n, ok := atoiDigits(minStr)
		if !ok {
			return nil, invalid
		}
		r.Min = n
	}
	r.Max = r.Min
	if maxStr != "" {
		n, ok := atoiDigits(maxStr)
		if !ok {
			return nil, invalid
		}
		r.Max = n
	}
	if r.Max < r.Min {
		return nil, &RepeatRangeError{Definition: def, Min: r.Min, Max: r.Max}
	}
	return r, nil
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}

func atoiDigits(s string) (int, bool) {
	if leadingDigits(s) != s {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
