/*
 * atom.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

import "github.com/bobot51/pysic/geom"

// Atom holds everything spec.md 3 says an atom carries: identity, the
// mutable state that changes between steps, and the bookkeeping the
// registries/neighbor builder populate once per step. Atoms live in a
// contiguous slice inside CoreState (arena+index, per spec.md 9's
// DESIGN NOTES on pointer-graph ownership); an *Atom is only ever a
// pointer into that arena, never independently allocated.
type Atom struct {
	// Index is the atom's dense 1..N identity. It never changes over a
	// run (spec.md 3's invariant), even though its position in
	// CoreState.Atoms is Index-1.
	Index int
	// Element is the chemical label used for target filtering.
	Element string
	// Tag is a caller-defined integer, also usable for target
	// filtering.
	Tag int
	// Mass is immutable for the run.
	Mass float64
	// Charge is mutable between steps (UpdateCharges).
	Charge float64
	// Position is mutable between steps (UpdateCoordinates).
	Position geom.Vec3
	// Momentum is mutable state the core does not interpret, carried
	// only so a caller's integrator has somewhere to keep it between
	// calls into this engine.
	Momentum geom.Vec3

	// Neighbors is populated by BuildNeighborLists; it is a list of
	// (neighbor index, offset) pairs, with the same neighbor possibly
	// repeated under distinct offsets when the cell is smaller than the
	// cutoff (spec.md 3's Neighbor list note).
	Neighbors []NeighborEntry
	// PotentialIndices is the set of potential-registry indices whose
	// first-position target accepts this atom, populated by
	// AssignPotentialIndices.
	PotentialIndices []int
	// BOFIndices is the analogous set for the BOF registry, populated
	// by AssignBondOrderFactorIndices.
	BOFIndices []int
	// subcell is this atom's current subcell coordinate triple,
	// populated by the neighbor builder.
	subcell geom.IntTriple
}

// NeighborEntry is one (neighbor, offset) pair in an atom's neighbor
// list, per spec.md 3.
type NeighborEntry struct {
	Neighbor int // the neighbor's Index
	Offset   geom.IntTriple
}

// NewAtom constructs an atom with the given dense index, element, tag
// and mass. Charge, position and momentum default to zero and are set
// separately via UpdateCharges/UpdateCoordinates, mirroring
// generate_atoms followed by a separate coordinate assignment in
// spec.md 6.
func NewAtom(index int, element string, tag int, mass float64) *Atom {
	return &Atom{Index: index, Element: element, Tag: tag, Mass: mass}
}
