/*
 * potential.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

// PotentialRecord is spec.md 3's potential record: a functional-form
// tag, its parameter vector, hard/soft cutoffs, a target filter per
// tuple position (already permutation-expanded, see AddPotential), the
// original unpermuted filter list for asymmetric forms, the mapping
// from permuted to original position, and an optional BOF group id
// that modulates this potential.
type PotentialRecord struct {
	FormTag         string
	Params          []float64
	HardCutoff      float64
	SoftCutoff      float64
	HasSoftCutoff   bool
	Targets         []TargetFilter
	OriginalTargets []TargetFilter
	Permutation     []int
	GroupID         int
	HasGroup        bool
}

// NTargets returns the record's arity (1, 2, 3 or 4).
func (p *PotentialRecord) NTargets() int { return len(p.Targets) }

// PotentialRegistry is the immutable-once-built ordered collection of
// potential records spec.md 3/6 describes (allocate_potentials /
// add_potential / assign_potential_indices).
type PotentialRegistry struct {
	Records  []*PotentialRecord
	capacity int
}

// AllocatePotentials reserves room for n records, mirroring
// allocate_potentials(n). Registering past the reserved capacity fails
// with KindResource, per spec.md 7.
func (r *PotentialRegistry) AllocatePotentials(n int) {
	r.capacity = n
	r.Records = make([]*PotentialRecord, 0, n)
}

// AddPotential registers a potential for the given (unpermuted) target
// list, expanding it into one record per distinct permutation so that,
// e.g., a [Si, O] target also matches an [O, Si] tuple ordering (spec.md
// 3). Returns the indices of every record created. softCutoff <= 0
// means "no soft cutoff" (f_s is identically 1).
func (r *PotentialRegistry) AddPotential(formTag string, targets []TargetFilter, params []float64, hardCutoff, softCutoff float64, groupID int, hasGroup bool) ([]int, error) {
	if len(targets) < 1 || len(targets) > 4 {
		return nil, newError(KindConfiguration, "add_potential: target arity %d out of range 1..4", len(targets))
	}
	if hardCutoff <= 0 {
		return nil, newError(KindConfiguration, "add_potential: non-positive hard cutoff %g", hardCutoff)
	}
	hasSoft := softCutoff > 0
	if hasSoft && softCutoff > hardCutoff {
		return nil, newError(KindNumerical, "add_potential: soft cutoff %g exceeds hard cutoff %g", softCutoff, hardCutoff)
	}
	variants, perms := expandTargetPermutations(targets)
	if r.capacity > 0 && len(r.Records)+len(variants) > r.capacity {
		return nil, newError(KindResource, "add_potential: exceeds allocated capacity %d", r.capacity)
	}
	indices := make([]int, 0, len(variants))
	for i, variant := range variants {
		rec := &PotentialRecord{
			FormTag:         formTag,
			Params:          params,
			HardCutoff:      hardCutoff,
			SoftCutoff:      softCutoff,
			HasSoftCutoff:   hasSoft,
			Targets:         variant,
			OriginalTargets: targets,
			Permutation:     perms[i],
			GroupID:         groupID,
			HasGroup:        hasGroup,
		}
		indices = append(indices, len(r.Records))
		r.Records = append(r.Records, rec)
	}
	return indices, nil
}

// AssignPotentialIndices populates, for every atom, the list of record
// indices whose first-position target accepts it (spec.md 4.2). Must be
// called after all AddPotential calls and before evaluation.
func (r *PotentialRegistry) AssignPotentialIndices(atoms []*Atom) {
	for _, a := range atoms {
		a.PotentialIndices = a.PotentialIndices[:0]
		for idx, rec := range r.Records {
			if rec.Targets[0].Matches(a) {
				a.PotentialIndices = append(a.PotentialIndices, idx)
			}
		}
	}
}
