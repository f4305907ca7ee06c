/*
 * neighbor.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

import "github.com/bobot51/pysic/geom"

// BuildNeighborLists implements spec.md 4.1: partition the cell into
// subcells sized for maxCutoff, bin every atom, and for each atom scan
// its 27 neighboring subcells for candidates within cutoffs[a.Index-1].
// Each atom's scan is independent and uses only its own cutoff, so the
// resulting lists are symmetric by construction -- if b lands in a's
// list under cutoff(a), a lands in b's list too whenever the same
// separation also satisfies cutoff(b), since b runs the identical scan
// with its own radius. Clears and repopulates every atom's Neighbors.
func BuildNeighborLists(atoms []*Atom, cell *geom.Cell, maxCutoff float64, cutoffs []float64) error {
	if maxCutoff <= 0 {
		return newError(KindConfiguration, "build_neighbor_lists: non-positive max cutoff %g", maxCutoff)
	}
	if len(cutoffs) != len(atoms) {
		return newError(KindConfiguration, "build_neighbor_lists: %d cutoffs for %d atoms", len(cutoffs), len(atoms))
	}
	grid, wrapOffsets := buildSubcellGrid(cell, maxCutoff, atoms)

	byIndex := make(map[int]*Atom, len(atoms))
	for _, a := range atoms {
		byIndex[a.Index] = a
	}

	for _, a := range atoms {
		a.Neighbors = a.Neighbors[:0]
		cutoff := cutoffs[a.Index-1]
		if cutoff <= 0 {
			continue
		}
		cutoff2 := cutoff * cutoff
		wrapA := wrapOffsets[a.Index]
		for _, entry := range grid.neighborTable(a.subcell) {
			if !entry.include {
				continue
			}
			for _, bIndex := range grid.occupants[entry.cell] {
				if bIndex == a.Index && entry.offset == (geom.IntTriple{}) {
					continue
				}
				b := byIndex[bIndex]
				wrapB := wrapOffsets[bIndex]
				total := entry.offset.Sub(wrapA).Add(wrapB)
				sep := cell.SeparationVector(a.Position, b.Position, total)
				if sep.Norm2() >= cutoff2 {
					continue
				}
				a.Neighbors = append(a.Neighbors, NeighborEntry{Neighbor: bIndex, Offset: total})
			}
		}
	}
	return nil
}

// pick is the canonical-pair predicate spec.md 4.1 step 4 describes: of
// the (possibly several, under symmetric/small-cell neighbor lists)
// ways a pair (i, j) with cell offset o can be visited, exactly one is
// the canonical representative the interaction loop evaluates. j > i
// always wins; for j == i (an atom interacting with its own periodic
// image) the lexicographically positive offset wins, so the pair and
// its mirror (j, i, -o) are never both canonical.
func pick(i, j int, o geom.IntTriple) bool {
	if j != i {
		return j > i
	}
	return o.LexPositive()
}
