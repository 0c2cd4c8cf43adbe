// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getoptions

import (
	"slices"
	"strings"

	"github.com/tidwall/btree"
)

// Definitions maps option definitions in the mini-language (see CompileSpec)
// to their destinations.
//
//	getoptions.Definitions{
//	    "verbose|v":  getoptions.Key("verbose"),
//	    "name=s":     getoptions.Key("name"),
//	    "define=s%":  getoptions.Key("define"),
//	    "color!":     getoptions.Key("color"),
//	}
type Definitions map[string]Destination

// Table is a compiled set of definitions. A Table is read-only once built and
// may be shared between goroutines.
type Table struct {
	specs []*OptionSpec

	// exact maps every alias to its index in specs.
	exact map[string]int
	// ordered holds the same aliases sorted, for prefix scans.
	ordered *btree.Map[string, int]
}

// Compile compiles every definition in defs. Definitions are compiled in
// sorted order so that errors are reported deterministically.
func Compile(defs Definitions) (*Table, error) {
	t := &Table{
		specs:   make([]*OptionSpec, 0, len(defs)),
		exact:   make(map[string]int, len(defs)),
		ordered: btree.NewMap[string, int](0),
	}

	keys := make([]string, 0, len(defs))
	for def := range defs {
		keys = append(keys, def)
	}
	slices.Sort(keys)

	for _, def := range keys {
		spec, err := CompileSpec(def, defs[def])
		if err != nil {
			return nil, err
		}
		if err := t.add(spec); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) add(spec *OptionSpec) error {
	for _, alias := range spec.Aliases {
		if i, ok := t.exact[alias]; ok {
			return &DuplicateOptionError{
				Alias:       alias,
				Definitions: [2]string{t.specs[i].def, spec.def},
			}
		}
	}
	idx := len(t.specs)
	t.specs = append(t.specs, spec)
	for _, alias := range spec.Aliases {
		t.exact[alias] = idx
		t.ordered.Set(alias, idx)
	}
	return nil
}

// Specs returns the compiled specs in definition order.
func (t *Table) Specs() []*OptionSpec {
	return slices.Clone(t.specs)
}

// lookup returns the index of the spec declaring name.
func (t *Table) lookup(name string) (int, bool) {
	i, ok := t.exact[name]
	return i, ok
}

// scanPrefix calls fn with the index of every spec that has an alias starting
// with prefix. An index may be reported more than once.
func (t *Table) scanPrefix(prefix string, fn func(idx int)) {
	t.ordered.Ascend(prefix, func(alias string, idx int) bool {
		if !strings.HasPrefix(alias, prefix) {
			return false
		}
		fn(idx)
		return true
	})
}
