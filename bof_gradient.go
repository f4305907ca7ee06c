/*
 * bof_gradient.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

import "github.com/bobot51/pysic/geom"

// slotOf returns the 0-based position of atom within tuple atoms, or
// -1 if absent.
func slotOf(atoms []*Atom, atom *Atom) int {
	for i, a := range atoms {
		if a.Index == atom.Index {
			return i
		}
	}
	return -1
}

// rawSumGradient implements the shared walk of spec.md 4.4: for the
// given center atom (whose raw sum S_center we are differentiating),
// visit every tuple in groupID containing center and accumulate, for
// every atom q in that tuple, the tuple's contribution to d(S_center)/
// d(r_q). Returns a dense N-length gradient field (indexed by
// Atom.Index-1) and the tuple-summed Voigt virial, undifferentiated by
// any post-processing scaler.
func (cs *CoreState) rawSumGradient(groupID int, center *Atom) ([]geom.Vec3, geom.Voigt, error) {
	records := cs.BOFs.recordsInGroup(groupID)
	grads := make([]geom.Vec3, len(cs.Atoms))
	var virial geom.Voigt

	accumulate := func(order []*Atom, tupleCenter int, offsets []geom.IntTriple, params func(*BOFRecord) []float64, arity int) error {
		cslot := slotOf(order, center)
		if cslot < 0 {
			return nil
		}
		tup := buildTuple(cs, order, tupleCenter, offsets)
		for _, rec := range records {
			if rec.NTargets() != arity {
				continue
			}
			matched := true
			for k, a := range order {
				if !rec.Targets[k].Matches(a) {
					matched = false
					break
				}
			}
			if !matched {
				continue
			}
			skip := false
			for _, d := range tup.Distances {
				if d >= rec.HardCutoff {
					skip = true
				}
			}
			if skip {
				continue
			}
			form, err := cs.bofForm(rec.FormTag)
			if err != nil {
				return err
			}
			vecs, vir, err := form.EvaluateBondOrderGradient(tup, params(rec), cslot)
			if err != nil {
				return err
			}
			for k, a := range order {
				if k < len(vecs) {
					grads[a.Index-1] = grads[a.Index-1].Add(vecs[k])
				}
			}
			virial.Add(vir)
		}
		return nil
	}

	for _, i := range cs.Atoms {
		for _, pair := range canonicalPairsOf(cs, i) {
			if err := accumulate([]*Atom{pair.I, pair.J}, 0, []geom.IntTriple{pair.Offset}, func(r *BOFRecord) []float64 { return r.Params.TwoBody }, 2); err != nil {
				return nil, geom.Voigt{}, err
			}
			for _, tr := range tripletsForPair(cs, pair) {
				order := []*Atom{tr.A, tr.Center, tr.B}
				offsets := []geom.IntTriple{tr.OffA, tr.OffB}
				if err := accumulate(order, 1, offsets, func(r *BOFRecord) []float64 { return r.Params.ThreeBody }, 3); err != nil {
					return nil, geom.Voigt{}, err
				}
				for _, q := range quadrupletsForTriplet(cs, tr) {
					qorder := []*Atom{q.Chain[0], q.Chain[1], q.Chain[2], q.Chain[3]}
					qoffsets := []geom.IntTriple{q.Offsets[1], q.Offsets[2], q.Offsets[3]}
					if err := accumulate(qorder, 0, qoffsets, func(r *BOFRecord) []float64 { return r.Params.FourBody }, 4); err != nil {
						return nil, geom.Voigt{}, err
					}
				}
			}
		}
	}
	return grads, virial, nil
}

// postProcessorScale returns the scalar f'_i(S_i) a post-processor
// applies, extracted by probing PostProcessGradient with a unit
// vector -- spec.md 4.4's "f'_i(S_i) . grad_alpha S_i via
// post_process_bond_order_gradient" is linear in the gradient it's
// handed, so one probe recovers the scale.
func (cs *CoreState) postProcessorScale(sum float64, pp *BOFRecord) (float64, error) {
	if pp == nil {
		return 1.0, nil
	}
	impl, err := cs.postProcessor(pp.FormTag)
	if err != nil {
		return 0, err
	}
	scaled, err := impl.PostProcessGradient(sum, geom.Vec3{1, 0, 0}, pp.PostProcessorParams)
	if err != nil {
		return 0, err
	}
	return scaled[0], nil
}

// FactorGradient implements spec.md 4.4's per-factor mode: given the
// tuple-position slot and the center atom occupying it, return
// grad_alpha b_center for every atom alpha, plus the scaled virial,
// consulting the gradient-cache slot table first.
func (cs *CoreState) FactorGradient(groupID, position int, center *Atom) ([]geom.Vec3, geom.Voigt, error) {
	if cs.Cache == nil {
		return nil, geom.Voigt{}, newError(KindState, "factor gradient requested with no BOF storage allocated")
	}
	gslot, err := cs.Cache.slotFor(groupID)
	if err != nil {
		return nil, geom.Voigt{}, err
	}
	slot, err := cs.Cache.gradientSlot(gslot, position, center.Index, func() ([]geom.Vec3, geom.Voigt, error) {
		rawGrads, rawVirial, err := cs.rawSumGradient(groupID, center)
		if err != nil {
			return nil, geom.Voigt{}, err
		}
		sum := cs.Cache.sumAt(gslot, center.Index)
		pp := cs.BOFs.postProcessorFor(groupID, center.Element)
		scale, err := cs.postProcessorScale(sum, pp)
		if err != nil {
			return nil, geom.Voigt{}, err
		}
		if scale == 1.0 {
			return rawGrads, rawVirial, nil
		}
		scaledGrads := make([]geom.Vec3, len(rawGrads))
		for i, g := range rawGrads {
			scaledGrads[i] = g.Scale(scale)
		}
		for i := range rawVirial {
			rawVirial[i] *= scale
		}
		return scaledGrads, rawVirial, nil
	})
	if err != nil {
		return nil, geom.Voigt{}, err
	}
	for _, v := range slot.grads {
		if isNonFinite(v[0]) || isNonFinite(v[1]) || isNonFinite(v[2]) {
			return nil, geom.Voigt{}, newError(KindNumerical, "bond order gradient produced a non-finite value")
		}
	}
	return slot.grads, slot.virial, nil
}
