/*
 * bofcache.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

import "github.com/bobot51/pysic/geom"

// BOFCache is spec.md 3's two-level BOF cache. Sums and Factors hold
// spec.md's [N_atoms x N_groups_used] arrays, stored group-major as
// [group slot][atom]; a group id is never used directly as an array
// index (group ids are caller-chosen and may be sparse) -- groupSlot
// recycles a compact
// 0..N_groups_used-1 index per group, freshly assigned the first time
// a group is touched within a step (EmptyStorage resets the map).
//
// Gradients are the "smaller array of shape [3 x N_atoms x
// N_groups_used x 4]": for each (group, position-in-tuple) slot, a
// full per-atom vector field holding the gradient of the slot's cached
// center atom's scaled factor with respect to the position of every
// atom. The slots' virial fields make up the matching
// [6 x N_groups_used x 4] virial array.
type BOFCache struct {
	nAtoms  int
	nGroups int
	nFactors int

	groupSlot map[int]int
	nextSlot  int

	Sums    [][]float64 // [group][atom], 0-based atom
	Factors [][]float64

	gradSlots [][4]*gradSlot // [group][position 1..4, stored 0..3]
}

// gradSlot is one entry of the gradient-cache slot table spec.md 4.4
// describes: the most recently requested center atom for this
// (group, position) pair, together with its per-atom gradient field
// and Voigt virial contribution.
type gradSlot struct {
	center int // 1-based Atom.Index, 0 = empty
	grads  []geom.Vec3
	virial geom.Voigt
}

// NewBOFCache allocates a cache for nAtoms atoms and up to nGroups
// distinct group ids live at once. nFactors is recorded but sizes
// nothing: the gradient-slot table always holds four positions per
// group -- spec.md 6's allocate_bond_order_storage(n_atoms, n_groups,
// n_factors).
func NewBOFCache(nAtoms, nGroups, nFactors int) *BOFCache {
	c := &BOFCache{nAtoms: nAtoms, nGroups: nGroups, nFactors: nFactors}
	c.allocate()
	return c
}

func (c *BOFCache) allocate() {
	c.groupSlot = make(map[int]int, c.nGroups)
	c.nextSlot = 0
	c.Sums = make([][]float64, c.nGroups)
	c.Factors = make([][]float64, c.nGroups)
	c.gradSlots = make([][4]*gradSlot, c.nGroups)
	for g := 0; g < c.nGroups; g++ {
		c.Sums[g] = make([]float64, c.nAtoms)
		c.Factors[g] = make([]float64, c.nAtoms)
	}
}

// slotFor returns the compact slot index for groupID, assigning a
// fresh one the first time the group is touched this step. Once
// nGroups distinct groups hold a slot, a further group gets a
// KindResource error; slots are only reclaimed by EmptyStorage.
func (c *BOFCache) slotFor(groupID int) (int, error) {
	if s, ok := c.groupSlot[groupID]; ok {
		return s, nil
	}
	if len(c.groupSlot) >= c.nGroups {
		return 0, newError(KindResource, "bof cache: more than %d distinct groups touched in one step", c.nGroups)
	}
	s := c.nextSlot
	c.nextSlot++
	c.groupSlot[groupID] = s
	for a := 0; a < c.nAtoms; a++ {
		c.Sums[s][a] = 0
		c.Factors[s][a] = 0
	}
	c.gradSlots[s] = [4]*gradSlot{}
	return s, nil
}

// EmptyStorage implements empty_bond_order_storage: clears sums,
// factors and the group->slot map (spec.md 3 Lifecycle step 2),
// and also clears every gradient slot, since a slot's validity is
// scoped to the sums that produced it.
func (c *BOFCache) EmptyStorage() {
	c.groupSlot = make(map[int]int, c.nGroups)
	c.nextSlot = 0
	for g := 0; g < c.nGroups; g++ {
		for a := range c.Sums[g] {
			c.Sums[g][a] = 0
			c.Factors[g][a] = 0
		}
		c.gradSlots[g] = [4]*gradSlot{}
	}
}

// EmptyGradientStorage implements empty_bond_order_gradient_storage:
// slot == 0 clears every position slot of every group (the outer-loop
// boundary per spec.md 4.4); slot in 1..4 clears only that position
// across all groups (used on "each change of the second-position
// atom" to clear position slot 2).
func (c *BOFCache) EmptyGradientStorage(slot int) {
	for g := range c.gradSlots {
		if slot == 0 {
			c.gradSlots[g] = [4]*gradSlot{}
			continue
		}
		if slot >= 1 && slot <= 4 {
			c.gradSlots[g][slot-1] = nil
		}
	}
}

// clonePerRank returns a cache sharing c's Sums/Factors (already
// filled and read-only for the duration of an evaluation step) but
// with its own gradient-cache slot table, so concurrent ranks in
// reduceLoop each warm their own gradient cache without racing on the
// shared one (spec.md 4.7's "each rank reads... accumulates only for
// owned atoms" extended to the lazily-computed gradient slots, which
// are the cache's only per-step mutable state besides the sums/factors
// fillGroup writes before the parallel loop starts).
func (c *BOFCache) clonePerRank() *BOFCache {
	clone := &BOFCache{
		nAtoms:    c.nAtoms,
		nGroups:   c.nGroups,
		nFactors:  c.nFactors,
		groupSlot: c.groupSlot,
		nextSlot:  c.nextSlot,
		Sums:      c.Sums,
		Factors:   c.Factors,
		gradSlots: make([][4]*gradSlot, c.nGroups),
	}
	return clone
}

// sumAt and factorAt return the raw sum / scaled factor for an atom in
// a group, by the atom's dense 1-based index. Both invariant (a) from
// spec.md 3 (factor defined only if sum is) is maintained by
// fillGroup always writing both together.
func (c *BOFCache) sumAt(slot, atomIndex int) float64    { return c.Sums[slot][atomIndex-1] }
func (c *BOFCache) factorAt(slot, atomIndex int) float64 { return c.Factors[slot][atomIndex-1] }

// factorForGroup returns the scaled BOF factor for atomIndex in
// groupID, or 1.0 (spec.md 4.5's "if any, else 1") when the potential
// declares no BOF group or no BOF storage is allocated. A declared
// group that holds no slot this step is a KindInternal error (a
// panic), since FillBondOrderStorage assigns one to every group in use.
func (cs *CoreState) factorForGroup(groupID int, hasGroup bool, atomIndex int) (float64, error) {
	if !hasGroup || cs.Cache == nil {
		return 1.0, nil
	}
	slot, ok := cs.Cache.groupSlot[groupID]
	if !ok {
		return 0, newError(KindInternal, "bof cache: group %d not filled before use", groupID)
	}
	return cs.Cache.factorAt(slot, atomIndex), nil
}

// gradientSlot fetches (or, on a genuine cache miss, computes via
// compute) the gradient-cache slot for (groupID, position). position
// is spec.md's 1-based slot in {1,2,3,4}. A hit is returned directly;
// a miss fills the slot via compute and stores it, per spec.md 4.4's
// "Cache hit returns stored values in O(N); miss recomputes, fills the
// slot, and returns."
func (c *BOFCache) gradientSlot(groupSlotIdx, position, center int, compute func() ([]geom.Vec3, geom.Voigt, error)) (*gradSlot, error) {
	if position < 1 || position > 4 {
		return nil, newError(KindInternal, "bof cache: invalid gradient position %d", position)
	}
	existing := c.gradSlots[groupSlotIdx][position-1]
	if existing != nil && existing.center == center {
		return existing, nil
	}
	grads, virial, err := compute()
	if err != nil {
		return nil, err
	}
	slot := &gradSlot{center: center, grads: grads, virial: virial}
	c.gradSlots[groupSlotIdx][position-1] = slot
	return slot, nil
}
