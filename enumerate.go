/*
 * enumerate.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

import "github.com/bobot51/pysic/geom"

// canonicalPair is one canonical (i, j, offset) pair of atom i's
// neighbor list, i.e. one for which pick(i.Index, j.Index, offset) is
// true. Shared by the BOF sum fill (spec.md 4.3) and the 2-body loop
// stage (spec.md 4.5b) so both enumerate identical pairs.
type canonicalPair struct {
	I, J      *Atom
	Offset    geom.IntTriple
	Sep       geom.Vec3
	Dist      float64
}

// canonicalPairsOf returns every canonical pair with i in the first
// position, in i's neighbor-list order.
func canonicalPairsOf(cs *CoreState, i *Atom) []canonicalPair {
	var out []canonicalPair
	for _, n := range i.Neighbors {
		j := cs.atomByIndex(n.Neighbor)
		if j == nil || !pick(i.Index, j.Index, n.Offset) {
			continue
		}
		sep := cs.Cell.SeparationVector(i.Position, j.Position, n.Offset)
		out = append(out, canonicalPair{I: i, J: j, Offset: n.Offset, Sep: sep, Dist: sep.Norm()})
	}
	return out
}

// triplet is one canonical 3-atom tuple produced while walking a
// canonical pair's extensions, per spec.md 4.3's triplet enumeration
// rule. Center is always the atom the chain is built outward from
// (spec.md 4.4's "atom 1"); the other two, in the order the rule
// names them.
type triplet struct {
	Center, A, B *Atom
	// offsets of A and B relative to Center, for separation recomputation.
	OffA, OffB geom.IntTriple
}

// tripletsForPair returns the two families of triplets a canonical
// pair (i, j) extends to, per spec.md 4.3: triplets centered on i
// (examine i's neighbors for k with pick(j, k, offset_jk)), and
// triplets centered on j (examine j's neighbors for k with
// pick(i, k, offset_ik)). Each unordered triplet is visited exactly
// once this way, across the whole canonical-pair walk.
func tripletsForPair(cs *CoreState, pair canonicalPair) []triplet {
	var out []triplet
	i, j, oij := pair.I, pair.J, pair.Offset
	for _, n := range i.Neighbors {
		k := cs.atomByIndex(n.Neighbor)
		if k == nil || k.Index == j.Index {
			continue
		}
		offJK := n.Offset.Sub(oij)
		if !pick(j.Index, k.Index, offJK) {
			continue
		}
		out = append(out, triplet{Center: i, A: j, B: k, OffA: oij, OffB: n.Offset})
	}
	for _, n := range j.Neighbors {
		k := cs.atomByIndex(n.Neighbor)
		if k == nil || k.Index == i.Index {
			continue
		}
		offIK := oij.Add(n.Offset)
		if !pick(i.Index, k.Index, offIK) {
			continue
		}
		out = append(out, triplet{Center: j, A: i, B: k, OffA: oij.Neg(), OffB: n.Offset})
	}
	return out
}

// quadruplet is a bonded 4-atom chain Chain[0]-Chain[1]-Chain[2]-Chain[3]
// extending triplet.A-triplet.Center-triplet.B by one bond at either
// end, per spec.md 4.3's 4-body enumeration rule. Offsets are each
// chain atom's cell offset relative to Chain[0] (spec.md 4.5d's
// cumulative r_{1,p+1} convention, resolving Open Question 1 with
// atom4 = atom_quadruplet(4), never re-derived from atom3).
type quadruplet struct {
	Chain   [4]*Atom
	Offsets [4]geom.IntTriple // Offsets[0] is always the zero triple
}

// quadrupletsForTriplet extends t's A-Center-B chain by one neighbor
// beyond A (new chain Outer-A-Center-B) and by one neighbor beyond B
// (new chain A-Center-B-Inner), applying the disallowed self-closure
// rule that the new atom must differ from the atom diagonally opposite
// it in the resulting 4-chain.
func quadrupletsForTriplet(cs *CoreState, t triplet) []quadruplet {
	var out []quadruplet
	// t.OffA, t.OffB are Center->A, Center->B. A->Center = -OffA.
	for _, n := range t.A.Neighbors {
		outer := cs.atomByIndex(n.Neighbor)
		if outer == nil || outer.Index == t.Center.Index || outer.Index == t.B.Index {
			continue
		}
		// chain Outer(0) - A(1) - Center(2) - B(3); offsets relative to
		// Outer. n.Offset is A -> Outer, so Outer -> A is its negation.
		offA := n.Offset.Neg()
		offCenter := offA.Add(t.OffA.Neg())
		offB := offCenter.Add(t.OffB)
		out = append(out, quadruplet{
			Chain:   [4]*Atom{outer, t.A, t.Center, t.B},
			Offsets: [4]geom.IntTriple{{}, offA, offCenter, offB},
		})
	}
	for _, n := range t.B.Neighbors {
		inner := cs.atomByIndex(n.Neighbor)
		if inner == nil || inner.Index == t.Center.Index || inner.Index == t.A.Index {
			continue
		}
		// chain A(0) - Center(1) - B(2) - Inner(3); offsets relative to A.
		offCenter := t.OffA.Neg()      // A -> Center
		offB := offCenter.Add(t.OffB)  // A -> B
		offInner := offB.Add(n.Offset) // A -> B -> Inner
		out = append(out, quadruplet{
			Chain:   [4]*Atom{t.A, t.Center, t.B, inner},
			Offsets: [4]geom.IntTriple{{}, offCenter, offB, offInner},
		})
	}
	return out
}

// buildTuple assembles a Tuple from a center atom and the ordered list
// of other atoms with their offsets relative to the center (so
// Separations come out "measured from the center outward", per
// spec.md 4.4).
func buildTuple(cs *CoreState, order []*Atom, centerSlot int, offsetsFromCenter []geom.IntTriple) Tuple {
	center := order[centerSlot]
	seps := make([]geom.Vec3, 0, len(order)-1)
	dists := make([]float64, 0, len(order)-1)
	oi := 0
	for idx, a := range order {
		if idx == centerSlot {
			continue
		}
		off := offsetsFromCenter[oi]
		oi++
		sep := cs.Cell.SeparationVector(center.Position, a.Position, off)
		seps = append(seps, sep)
		dists = append(dists, sep.Norm())
	}
	return Tuple{Atoms: order, CenterSlot: centerSlot, Separations: seps, Distances: dists}
}
