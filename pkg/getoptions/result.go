// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package getoptions

import "tailscale.com/util/mak"

// Result maps destination keys to the values bound by Parse.
//
// Flags bind bool. Scalar options bind string, int or float64 depending on
// their type; list options bind []string, []int or []float64; map options bind
// map[string]string, map[string]int or map[string]float64. Options that were
// not given are absent.
type Result map[any]any

// Has reports whether a value was bound under key.
func (r Result) Has(key any) bool {
	_, ok := r[key]
	return ok
}

func (r Result) Bool(key any) bool { return get[bool](r, key) }
func (r Result) String(key any) string { return get[string](r, key) }
func (r Result) Int(key any) int { return get[int](r, key) }
func (r Result) Float(key any) float64 { return get[float64](r, key) }
func (r Result) Strings(key any) []string { return get[[]string](r, key) }
func (r Result) Ints(key any) []int { return get[[]int](r, key) }
func (r Result) Floats(key any) []float64 { return get[[]float64](r, key) }
func (r Result) StringMap(key any) map[string]string { return get[map[string]string](r, key) }
func (r Result) IntMap(key any) map[string]int { return get[map[string]int](r, key) }
func (r Result) FloatMap(key any) map[string]float64 { return get[map[string]float64](r, key) }

// get returns the value under key as a T, or the zero T.
func get[T any](r Result, key any) T {
	v, _ := r[key].(T)
	return v
}

// ensureList makes sure a []T exists under key so that an option with a
// {0,n} repeat still leaves an (empty) list behind.
func ensureList[T any](r Result, key any) {
	if _, ok := r[key].([]T); !ok {
		r[key] = []T{}
	}
}

func appendList[T any](r Result, key any, v T) {
	l, _ := r[key].([]T)
	r[key] = append(l, v)
}

func ensureMap[T any](r Result, key any) {
	if _, ok := r[key].(map[string]T); !ok {
		r[key] = map[string]T{}
	}
}

func setMap[T any](r Result, key any, k string, v T) {
	m, _ := r[key].(map[string]T)
	mak.Set(&m, k, v)
	r[key] = m
}
