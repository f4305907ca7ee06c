/*
 * corestate.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

import "github.com/bobot51/pysic/geom"

// CoreState is spec.md 9's re-architecture of the source's process-level
// global state into a single value the caller owns. Every operation in
// this package takes a *CoreState as its first argument and mutates it
// explicitly; a single-process program holds exactly one, and tests
// construct as many as they like without fear of cross-contamination.
type CoreState struct {
	Atoms      []*Atom
	Cell       *geom.Cell
	Potentials PotentialRegistry
	BOFs       BOFRegistry
	Cache      *BOFCache

	// Ranks is the number of worker goroutines the parallel reducer
	// spawns (spec.md 4.7/5's "ranks", realized as goroutines per
	// SPEC_FULL 8).
	Ranks int
	// DeterministicReduce selects Kahan-compensated summation of the
	// energy total in the reducer (spec.md 8 property 6, MPI
	// invariance); forces, electronegativities and stress are summed
	// plainly in rank order either way.
	DeterministicReduce bool
	// DumpEnabled turns on the best-effort debug dump after each step.
	DumpEnabled bool
	DumpDir     string

	Ewald          EwaldKernel
	EwaldParams    EwaldParams
	EwaldEnabled   bool

	// Form tables are the core's only link to the closed catalog of
	// functional forms (spec.md's Out of scope list): a tag looked up
	// at evaluation time, never a compile-time dependency on the
	// catalog package.
	PotentialForms map[string]PotentialForm
	BOFForms       map[string]BOFForm
	PostProcessors map[string]PostProcessor
	Smoothener     Smoothening

	// Cancel is polled at outer-loop boundaries (spec.md 5's
	// cooperative cancel signal); a nil Cancel never cancels.
	Cancel func() bool

	maxCutoff    float64
	cutoffs      []float64
	geometryDirty bool
	dumpStep     int

	Stats ReduceStats
}

// EwaldParams bundles spec.md 6's set_ewald_parameters arguments.
type EwaldParams struct {
	RealCutoff float64
	KCutoffs   [3]int
	Sigma      float64
	Epsilon0   float64
	Scaler     []float64
}

// NewCoreState constructs a CoreState ready for registration. ranks <= 0
// is normalized to 1 (single-rank, i.e. a plain sequential evaluation).
func NewCoreState(ranks int) *CoreState {
	if ranks <= 0 {
		ranks = 1
	}
	return &CoreState{Ranks: ranks}
}

// GenerateAtoms replaces the atom set wholesale, matching the source's
// generate_atoms. Indices are assigned densely 1..N in slice order.
func (cs *CoreState) GenerateAtoms(elements []string, tags []int, masses []float64) {
	cs.Atoms = make([]*Atom, len(elements))
	for i := range elements {
		cs.Atoms[i] = NewAtom(i+1, elements[i], tags[i], masses[i])
	}
	cs.geometryDirty = true
}

// GetNumberOfAtoms mirrors get_number_of_atoms.
func (cs *CoreState) GetNumberOfAtoms() int { return len(cs.Atoms) }

// UpdateCoordinates sets every atom's position from positions, in atom
// order (by dense index). Marks geometry dirty so the next evaluation
// rebuilds neighbor lists, per spec.md 3's Lifecycle step 1.
func (cs *CoreState) UpdateCoordinates(positions []geom.Vec3) error {
	if len(positions) != len(cs.Atoms) {
		return newError(KindConfiguration, "update_coordinates: %d positions for %d atoms", len(positions), len(cs.Atoms))
	}
	for i, a := range cs.Atoms {
		a.Position = positions[i]
	}
	cs.geometryDirty = true
	return nil
}

// UpdateCharges sets every atom's charge. Charge updates do not dirty
// geometry: neighbor lists depend only on position, per spec.md 3.
func (cs *CoreState) UpdateCharges(charges []float64) error {
	if len(charges) != len(cs.Atoms) {
		return newError(KindConfiguration, "update_charges: %d charges for %d atoms", len(charges), len(cs.Atoms))
	}
	for i, a := range cs.Atoms {
		a.Charge = charges[i]
	}
	return nil
}

// CreateCell installs a new supercell. Rebuilding the cell invalidates
// neighbor lists and the BOF cache, per spec.md 3's Supercell
// invariant.
func (cs *CoreState) CreateCell(a, b, c geom.Vec3, periodic [3]bool) error {
	cell, err := geom.NewCell(a, b, c, periodic)
	if err != nil {
		return newError(KindConfiguration, "create_cell: %v", err)
	}
	cs.Cell = cell
	cs.geometryDirty = true
	return nil
}

// GetCellVectors mirrors get_cell_vectors.
func (cs *CoreState) GetCellVectors() (geom.Vec3, geom.Vec3, geom.Vec3, error) {
	if cs.Cell == nil {
		return geom.Vec3{}, geom.Vec3{}, geom.Vec3{}, newError(KindState, "get_cell_vectors: no cell created")
	}
	a, b, c := cs.Cell.Vectors()
	return a, b, c, nil
}

// CreateSpacePartitioning records the max cutoff used to size the
// subcell grid on the next BuildNeighborLists call, per spec.md 6's
// create_space_partitioning.
func (cs *CoreState) CreateSpacePartitioning(maxCutoff float64) error {
	if maxCutoff <= 0 {
		return newError(KindConfiguration, "create_space_partitioning: non-positive max cutoff %g", maxCutoff)
	}
	cs.maxCutoff = maxCutoff
	return nil
}

// BuildNeighborLists rebuilds every atom's neighbor list under the
// current cell and per-atom cutoffs, per spec.md 4.1 and 6. Clears the
// geometry-dirty flag so repeated evaluation steps at an unchanged
// geometry skip the rebuild (spec.md 3 Lifecycle step 1).
func (cs *CoreState) BuildNeighborLists(cutoffs []float64) error {
	if cs.Cell == nil {
		return newError(KindState, "build_neighbor_lists: no cell created")
	}
	if err := BuildNeighborLists(cs.Atoms, cs.Cell, cs.maxCutoff, cutoffs); err != nil {
		return err
	}
	cs.cutoffs = cutoffs
	cs.geometryDirty = false
	return nil
}

// CreateNeighborList installs an explicit neighbor list for one atom,
// bypassing the spatial partitioner -- spec.md 6's
// create_neighbor_list, useful for tests that want an exact list
// without relying on subcell geometry.
func (cs *CoreState) CreateNeighborList(atomIndex int, neighbors []int, offsets []geom.IntTriple) error {
	a := cs.atomByIndex(atomIndex)
	if a == nil {
		return newError(KindConfiguration, "create_neighbor_list: no atom %d", atomIndex)
	}
	if len(neighbors) != len(offsets) {
		return newError(KindConfiguration, "create_neighbor_list: %d neighbors, %d offsets", len(neighbors), len(offsets))
	}
	a.Neighbors = a.Neighbors[:0]
	for i, n := range neighbors {
		a.Neighbors = append(a.Neighbors, NeighborEntry{Neighbor: n, Offset: offsets[i]})
	}
	return nil
}

// GetNumberOfNeighbors mirrors get_number_of_neighbors.
func (cs *CoreState) GetNumberOfNeighbors(atomIndex int) int {
	a := cs.atomByIndex(atomIndex)
	if a == nil {
		return 0
	}
	return len(a.Neighbors)
}

// GetNeighborListOfAtom mirrors get_neighbor_list_of_atom.
func (cs *CoreState) GetNeighborListOfAtom(atomIndex int) []NeighborEntry {
	a := cs.atomByIndex(atomIndex)
	if a == nil {
		return nil
	}
	return a.Neighbors
}

func (cs *CoreState) atomByIndex(index int) *Atom {
	if index < 1 || index > len(cs.Atoms) {
		return nil
	}
	a := cs.Atoms[index-1]
	if a.Index != index {
		for _, cand := range cs.Atoms {
			if cand.Index == index {
				return cand
			}
		}
		return nil
	}
	return a
}

// AssignPotentialIndices mirrors assign_potential_indices.
func (cs *CoreState) AssignPotentialIndices() {
	cs.Potentials.AssignPotentialIndices(cs.Atoms)
}

// AssignBondOrderFactorIndices mirrors assign_bond_order_factor_indices.
func (cs *CoreState) AssignBondOrderFactorIndices() {
	cs.BOFs.AssignBondOrderFactorIndices(cs.Atoms)
}

// AllocateBondOrderStorage mirrors allocate_bond_order_storage,
// sizing the two-level BOF cache for nAtoms atoms and up to nGroups
// distinct group ids touched in a single step. nFactors is passed on
// to NewBOFCache but does not size the gradient-slot table, which
// holds four (group, position) entries per group.
func (cs *CoreState) AllocateBondOrderStorage(nAtoms, nGroups, nFactors int) error {
	if nAtoms <= 0 || nGroups <= 0 {
		return newError(KindResource, "allocate_bond_order_storage: invalid sizing (%d atoms, %d groups)", nAtoms, nGroups)
	}
	cs.Cache = NewBOFCache(nAtoms, nGroups, nFactors)
	return nil
}

// EmptyBondOrderStorage mirrors empty_bond_order_storage.
func (cs *CoreState) EmptyBondOrderStorage() {
	if cs.Cache != nil {
		cs.Cache.EmptyStorage()
	}
}

// EmptyBondOrderGradientStorage mirrors
// empty_bond_order_gradient_storage(slot?): slot==0 clears every
// position slot, otherwise only the named one.
func (cs *CoreState) EmptyBondOrderGradientStorage(slot int) {
	if cs.Cache != nil {
		cs.Cache.EmptyGradientStorage(slot)
	}
}

// FillBondOrderStorage mirrors fill_bond_order_storage: fills raw sums
// and scaled factors for every group referenced by any potential, per
// spec.md 3 Lifecycle step 3.
func (cs *CoreState) FillBondOrderStorage() error {
	if cs.Cache == nil {
		return newError(KindState, "fill_bond_order_storage: no BOF storage allocated")
	}
	groups := cs.groupsInUse()
	for _, g := range groups {
		if err := fillGroup(cs, g); err != nil {
			return err
		}
	}
	return nil
}

// groupsInUse returns the distinct BOF group ids referenced by any
// potential record that declares a group.
func (cs *CoreState) groupsInUse() []int {
	seen := map[int]bool{}
	var groups []int
	for _, p := range cs.Potentials.Records {
		if p.HasGroup && !seen[p.GroupID] {
			seen[p.GroupID] = true
			groups = append(groups, p.GroupID)
		}
	}
	return groups
}

// ReleaseAllMemory mirrors release_all_memory: drops every registry,
// atom and cache reference so the CoreState can be garbage collected
// or reused from scratch.
func (cs *CoreState) ReleaseAllMemory() {
	*cs = CoreState{Ranks: cs.Ranks}
}

// ClearAtoms, ClearPotentials and ClearBondOrderFactors are the
// individual clear_* operations spec.md 6 lists alongside
// release_all_memory.
func (cs *CoreState) ClearAtoms()              { cs.Atoms = nil; cs.geometryDirty = true }
func (cs *CoreState) ClearPotentials()         { cs.Potentials = PotentialRegistry{} }
func (cs *CoreState) ClearBondOrderFactors()   { cs.BOFs = BOFRegistry{} }

// RegisterPotentialForm adds a concrete functional form to the form
// table keyed by tag, the one hook through which the closed catalog of
// potential forms (evaluate_energy/evaluate_forces/
// evaluate_electronegativity) reaches the engine.
func (cs *CoreState) RegisterPotentialForm(tag string, form PotentialForm) {
	if cs.PotentialForms == nil {
		cs.PotentialForms = make(map[string]PotentialForm)
	}
	cs.PotentialForms[tag] = form
}

// RegisterBOFForm is the BOF-form twin of RegisterPotentialForm.
func (cs *CoreState) RegisterBOFForm(tag string, form BOFForm) {
	if cs.BOFForms == nil {
		cs.BOFForms = make(map[string]BOFForm)
	}
	cs.BOFForms[tag] = form
}

// RegisterPostProcessor registers a post_process_bond_order_factor /
// post_process_bond_order_gradient implementation by tag.
func (cs *CoreState) RegisterPostProcessor(tag string, pp PostProcessor) {
	if cs.PostProcessors == nil {
		cs.PostProcessors = make(map[string]PostProcessor)
	}
	cs.PostProcessors[tag] = pp
}

// SetSmoothening installs the single smoothening_factor/
// smoothening_gradient implementation used across every soft-cutoff
// potential, per spec.md's Out-of-scope list.
func (cs *CoreState) SetSmoothening(s Smoothening) { cs.Smoothener = s }

func (cs *CoreState) potentialForm(tag string) (PotentialForm, error) {
	f, ok := cs.PotentialForms[tag]
	if !ok {
		return nil, newError(KindConfiguration, "unknown potential form %q", tag)
	}
	return f, nil
}

func (cs *CoreState) bofForm(tag string) (BOFForm, error) {
	f, ok := cs.BOFForms[tag]
	if !ok {
		return nil, newError(KindConfiguration, "unknown bond order factor form %q", tag)
	}
	return f, nil
}

func (cs *CoreState) smoothen(distance, soft, hard float64, hasSoft bool) (float64, float64, error) {
	if !hasSoft || cs.Smoothener == nil {
		return 1.0, 0.0, nil
	}
	if soft > hard {
		return 0, 0, newError(KindNumerical, "degenerate smoothening interval: soft %g > hard %g", soft, hard)
	}
	return cs.Smoothener.Factor(distance, soft, hard), cs.Smoothener.Gradient(distance, soft, hard), nil
}

// SetEwaldParameters mirrors set_ewald_parameters.
func (cs *CoreState) SetEwaldParameters(kernel EwaldKernel, realCutoff float64, kCutoffs [3]int, sigma, epsilon0 float64, scaler []float64) {
	cs.Ewald = kernel
	cs.EwaldParams = EwaldParams{RealCutoff: realCutoff, KCutoffs: kCutoffs, Sigma: sigma, Epsilon0: epsilon0, Scaler: scaler}
	cs.EwaldEnabled = kernel != nil
}
