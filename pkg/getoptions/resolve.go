// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getoptions

import (
	"slices"
	"strings"

	"tailscale.com/util/set"
)

// ResolvedOption is the result of looking up an option name.
type ResolvedOption struct {
	Spec *OptionSpec
	// Negated is set when a negatable flag was matched through its "no-" or
	// "no" form.
	Negated bool
}

// Lookup finds the single spec matching name.
//
// Exact matches are tried first: an alias equal to name, or for negatable
// flags "no-<alias>" and "no<alias>". Only when nothing matches exactly is name
// tried as an abbreviation (prefix) of the aliases, with the same negation
// rule. If either pass matches more than one spec Lookup returns an
// *AmbiguousOptionError. ok is false when nothing matches.
func (t *Table) Lookup(name string) (_ ResolvedOption, ok bool, _ error) {
	m := t.exactMatches(name)
	if m.empty() {
		m = t.prefixMatches(name)
	}
	switch len(m.order) {
	case 0:
		return ResolvedOption{}, false, nil
	case 1:
		idx := m.order[0]
		return ResolvedOption{Spec: t.specs[idx], Negated: !m.direct.Contains(idx)}, true, nil
	}
	return ResolvedOption{}, false, &AmbiguousOptionError{Option: name, Matches: t.aliasSets(m.order)}
}

// matches collects spec indices in first-seen order. direct holds the indices
// matched by name rather than through negation.
type matches struct {
	seen   set.Set[int]
	direct set.Set[int]
	order  []int
}

func newMatches() *matches {
	return &matches{seen: make(set.Set[int]), direct: make(set.Set[int])}
}

func (m *matches) add(idx int, negated bool) {
	if !negated {
		m.direct.Add(idx)
	}
	if m.seen.Contains(idx) {
		return
	}
	m.seen.Add(idx)
	m.order = append(m.order, idx)
}

func (m *matches) empty() bool {
	return len(m.order) == 0
}

func (t *Table) exactMatches(name string) *matches {
	m := newMatches()
	if idx, ok := t.lookup(name); ok {
		m.add(idx, false)
	}
	for _, base := range negationBases(name) {
		if idx, ok := t.lookup(base); ok && t.specs[idx].Kind == NegatableFlag {
			m.add(idx, true)
		}
	}
	return m
}

func (t *Table) prefixMatches(name string) *matches {
	m := newMatches()
	t.scanPrefix(name, func(idx int) {
		m.add(idx, false)
	})
	for _, base := range negationBases(name) {
		t.scanPrefix(base, func(idx int) {
			if t.specs[idx].Kind == NegatableFlag {
				m.add(idx, true)
			}
		})
	}
	return m
}

// negationBases returns the names name could negate: "no-x" gives "x" (and
// "-x"), "nox" gives "x". Empty bases are dropped.
func negationBases(name string) []string {
	var bases []string
	if base, ok := strings.CutPrefix(name, "no-"); ok && base != "" {
		bases = append(bases, base)
	}
	if base, ok := strings.CutPrefix(name, "no"); ok && base != "" {
		bases = append(bases, base)
	}
	return bases
}

// aliasSets returns the aliases of the given specs sorted for stable error
// messages.
func (t *Table) aliasSets(idxs []int) [][]string {
	out := make([][]string, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, slices.Clone(t.specs[idx].Aliases))
	}
	slices.SortFunc(out, func(a, b []string) int {
		return slices.Compare(a, b)
	})
	return out
}

// resolve applies the unknown-option policy of cfg on top of Lookup.
func (p *parser) resolve(name, arg string) (ResolvedOption, bool, error) {
	r, ok, err := p.table.Lookup(name)
	if err != nil {
		return ResolvedOption{}, false, err
	}
	if ok {
		p.diag.debugf("%q resolved to %q (negated=%v)", name, r.Spec.Aliases, r.Negated)
		return r, true, nil
	}
	if p.cfg.FailOnUnknown {
		return ResolvedOption{}, false, &UnknownOptionError{Option: name, Arg: arg}
	}
	p.diag.debugf("option %q not found", name)
	if !p.cfg.PassThrough {
		p.diag.warnf("option %q not found", name)
	}
	return ResolvedOption{}, false, nil
}
