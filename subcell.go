/*
 * subcell.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

import "github.com/bobot51/pysic/geom"

// subcellNeighborEntry is one entry of the per-cell 3x3x3 neighbor
// table spec.md 3 describes: for one of the 27 relative directions,
// which concrete cell triple it maps to (after wrapping), what
// cell-level image offset
// that wrap introduced, and whether the direction should be visited at
// all (it is excluded along a non-periodic axis that would walk off the
// edge of the grid).
type subcellNeighborEntry struct {
	cell    geom.IntTriple
	offset  geom.IntTriple
	include bool
}

// subcellGrid bins atoms into subcells of edge >= the largest cutoff in
// play, per spec.md 4.1.
type subcellGrid struct {
	dims      [3]int
	periodic  [3]bool
	occupants map[geom.IntTriple][]int // cell coordinate -> atom indices (1-based Atom.Index)
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// buildSubcellGrid partitions cell into subcells sized for maxCutoff and
// bins every atom's wrapped position into one, recording the wrap
// offset used. atoms must already have Position set.
func buildSubcellGrid(cell *geom.Cell, maxCutoff float64, atoms []*Atom) (*subcellGrid, map[int]geom.IntTriple) {
	dims := cell.OptimalSplitting(maxCutoff)
	grid := &subcellGrid{
		dims:      dims,
		periodic:  [3]bool{cell.Periodic(0), cell.Periodic(1), cell.Periodic(2)},
		occupants: make(map[geom.IntTriple][]int),
	}
	wrapOffsets := make(map[int]geom.IntTriple, len(atoms))
	for _, a := range atoms {
		wrapped, off := cell.WrappedCoordinates(a.Position)
		frac := cell.Fractional(wrapped)
		var bin geom.IntTriple
		for i := 0; i < 3; i++ {
			b := int(frac[i] * float64(dims[i]))
			if b < 0 {
				b = 0
			}
			if b >= dims[i] {
				b = dims[i] - 1
			}
			bin[i] = b
		}
		a.subcell = bin
		wrapOffsets[a.Index] = off
		grid.occupants[bin] = append(grid.occupants[bin], a.Index)
	}
	return grid, wrapOffsets
}

// neighborTable returns the 27-entry neighbor table for subcell c.
func (g *subcellGrid) neighborTable(c geom.IntTriple) []subcellNeighborEntry {
	entries := make([]subcellNeighborEntry, 0, 27)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				raw := [3]int{c[0] + dx, c[1] + dy, c[2] + dz}
				var cellOut geom.IntTriple
				var offset geom.IntTriple
				include := true
				for i, v := range raw {
					if g.periodic[i] {
						cellOut[i] = mod(v, g.dims[i])
						offset[i] = (v - cellOut[i]) / g.dims[i]
					} else {
						if v < 0 || v >= g.dims[i] {
							include = false
						}
						cellOut[i] = v
						offset[i] = 0
					}
				}
				entries = append(entries, subcellNeighborEntry{cell: cellOut, offset: offset, include: include})
			}
		}
	}
	return entries
}
