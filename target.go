/*
 * target.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

// TargetFilter restricts one position of a potential or BOF record's
// target tuple to a set of elements, tags or indices. An empty filter
// (no category populated) matches any atom in that position. When more
// than one category is populated, an atom matches if it satisfies any
// one of them -- callers are expected to use exactly one category per
// filter in practice, but nothing enforces that.
type TargetFilter struct {
	Elements []string
	Tags     []int
	Indices  []int
}

// Matches reports whether atom a is accepted by this filter, delegating
// to the same predicate spec.md 4.2 calls
// bond_order_factor_affects_atom (and its potential-registry twin):
// a simple membership test against whichever categories were
// specified.
func (f TargetFilter) Matches(a *Atom) bool {
	checked := false
	if len(f.Elements) > 0 {
		checked = true
		if containsString(f.Elements, a.Element) {
			return true
		}
	}
	if len(f.Tags) > 0 {
		checked = true
		if containsInt(f.Tags, a.Tag) {
			return true
		}
	}
	if len(f.Indices) > 0 {
		checked = true
		if containsInt(f.Indices, a.Index) {
			return true
		}
	}
	return !checked
}

// equal reports whether f and g are built from the same category
// values, used by the permutation-expansion deduplication in
// potential.go and bof.go.
func (f TargetFilter) equal(g TargetFilter) bool {
	return equalStrings(f.Elements, g.Elements) && equalInts(f.Tags, g.Tags) && equalInts(f.Indices, g.Indices)
}

func containsString(hay []string, needle string) bool {
	for _, h := range hay {
		if h == needle {
			return true
		}
	}
	return false
}

func containsInt(hay []int, needle int) bool {
	for _, h := range hay {
		if h == needle {
			return true
		}
	}
	return false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// permutations returns every permutation of the integers 0..n-1, via
// Heap's algorithm. Used once at registration time (never in the hot
// loop, per spec.md 9's note that "the core never re-permutes during
// the hot loop").
func permutations(n int) [][]int {
	if n <= 0 {
		return nil
	}
	a := make([]int, n)
	for i := range a {
		a[i] = i
	}
	var out [][]int
	var generate func(k int)
	generate = func(k int) {
		if k == 1 {
			cp := make([]int, n)
			copy(cp, a)
			out = append(out, cp)
			return
		}
		for i := 0; i < k; i++ {
			generate(k - 1)
			if k%2 == 0 {
				a[i], a[k-1] = a[k-1], a[i]
			} else {
				a[0], a[k-1] = a[k-1], a[0]
			}
		}
	}
	generate(n)
	return out
}

// expandTargetPermutations generates the distinct permuted target-filter
// sequences for original, together with the permutation mapping each
// one used (perm[k] is the original-index that ended up at position
// k), deduplicating permutations that produce an identical sequence of
// filters (the homonuclear case, e.g. two identical "X" targets, where
// swapping them would otherwise double-register the same record and
// double-count every matching tuple).
func expandTargetPermutations(original []TargetFilter) (targets [][]TargetFilter, perms [][]int) {
	n := len(original)
	for _, perm := range permutations(n) {
		candidate := make([]TargetFilter, n)
		for k, orig := range perm {
			candidate[k] = original[orig]
		}
		dup := false
		for _, existing := range targets {
			if sameFilterSequence(existing, candidate) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		targets = append(targets, candidate)
		perms = append(perms, perm)
	}
	return targets, perms
}

func sameFilterSequence(a, b []TargetFilter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].equal(b[i]) {
			return false
		}
	}
	return true
}
