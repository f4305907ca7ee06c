/*
 * bof.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

// BOFParams splits a bond-order-factor record's parameters by the
// body-count they apply to, per spec.md 3.
type BOFParams struct {
	OneBody   []float64
	TwoBody   []float64
	ThreeBody []float64
	FourBody  []float64
}

// ParamsFor returns the parameter slice for the given arity (1..4).
func (p BOFParams) ParamsFor(nBody int) []float64 {
	switch nBody {
	case 1:
		return p.OneBody
	case 2:
		return p.TwoBody
	case 3:
		return p.ThreeBody
	case 4:
		return p.FourBody
	default:
		return nil
	}
}

// BOFRecord is spec.md 3's BOF parameter record.
type BOFRecord struct {
	FormTag         string
	Params          BOFParams
	HardCutoff      float64
	SoftCutoff      float64
	HasSoftCutoff   bool
	Targets         []TargetFilter
	OriginalTargets []TargetFilter
	Permutation     []int
	GroupID         int
	IsPostProcessor bool
	// PostProcessorParams holds the parameters for the post-processing
	// scaler, used only when IsPostProcessor is true.
	PostProcessorParams []float64
}

// NTargets returns the record's arity.
func (b *BOFRecord) NTargets() int { return len(b.Targets) }

// BOFRegistry is the parallel registry for BOF records (spec.md 3, 6).
type BOFRegistry struct {
	Records  []*BOFRecord
	capacity int
}

// AllocateBondOrderFactors reserves room for n records.
func (r *BOFRegistry) AllocateBondOrderFactors(n int) {
	r.capacity = n
	r.Records = make([]*BOFRecord, 0, n)
}

// AddBondOrderFactor registers a BOF record, expanding target
// permutations exactly as AddPotential does.
func (r *BOFRegistry) AddBondOrderFactor(formTag string, targets []TargetFilter, params BOFParams, hardCutoff, softCutoff float64, groupID int, isPostProcessor bool, postProcessorParams []float64) ([]int, error) {
	if len(targets) < 1 || len(targets) > 4 {
		return nil, newError(KindConfiguration, "add_bond_order_factor: target arity %d out of range 1..4", len(targets))
	}
	if hardCutoff <= 0 {
		return nil, newError(KindConfiguration, "add_bond_order_factor: non-positive hard cutoff %g", hardCutoff)
	}
	hasSoft := softCutoff > 0
	if hasSoft && softCutoff > hardCutoff {
		return nil, newError(KindNumerical, "add_bond_order_factor: soft cutoff %g exceeds hard cutoff %g", softCutoff, hardCutoff)
	}
	variants, perms := expandTargetPermutations(targets)
	if r.capacity > 0 && len(r.Records)+len(variants) > r.capacity {
		return nil, newError(KindResource, "add_bond_order_factor: exceeds allocated capacity %d", r.capacity)
	}
	indices := make([]int, 0, len(variants))
	for i, variant := range variants {
		rec := &BOFRecord{
			FormTag:             formTag,
			Params:              params,
			HardCutoff:          hardCutoff,
			SoftCutoff:          softCutoff,
			HasSoftCutoff:       hasSoft,
			Targets:             variant,
			OriginalTargets:     targets,
			Permutation:         perms[i],
			GroupID:             groupID,
			IsPostProcessor:     isPostProcessor,
			PostProcessorParams: postProcessorParams,
		}
		indices = append(indices, len(r.Records))
		r.Records = append(r.Records, rec)
	}
	return indices, nil
}

// AssignBondOrderFactorIndices populates, for every atom, the list of
// BOF record indices whose first-position target accepts it.
func (r *BOFRegistry) AssignBondOrderFactorIndices(atoms []*Atom) {
	for _, a := range atoms {
		a.BOFIndices = a.BOFIndices[:0]
		for idx, rec := range r.Records {
			if rec.Targets[0].Matches(a) {
				a.BOFIndices = append(a.BOFIndices, idx)
			}
		}
	}
}

// postProcessorFor implements spec.md 4.3's post-processing selection
// rule: among the group's records that are flagged as post-processors
// and whose first original-element equals the atom's element, the
// first one in registration order wins; nil if none match, meaning
// b_i = S_i.
func (r *BOFRegistry) postProcessorFor(group int, element string) *BOFRecord {
	for _, rec := range r.Records {
		if rec.GroupID != group || !rec.IsPostProcessor {
			continue
		}
		if len(rec.OriginalTargets) == 0 || len(rec.OriginalTargets[0].Elements) == 0 {
			continue
		}
		if rec.OriginalTargets[0].Elements[0] == element {
			return rec
		}
	}
	return nil
}
