/*
 * bof_fill.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

import "github.com/bobot51/pysic/geom"

// fillGroup implements spec.md 4.3's contract: for groupID, compute
// every atom's raw sum S_i by walking canonical pairs, the triplets
// they extend to, and the quadruplets those extend to, accumulating
// each matching BOF record's contribution; then apply the group's
// post-processing selection rule to produce the scaled factor b_i.
func fillGroup(cs *CoreState, groupID int) error {
	slot, err := cs.Cache.slotFor(groupID)
	if err != nil {
		return err
	}
	records := cs.BOFs.recordsInGroup(groupID)
	if len(records) == 0 {
		return nil
	}

	for _, i := range cs.Atoms {
		for _, pair := range canonicalPairsOf(cs, i) {
			tup := buildTuple(cs, []*Atom{pair.I, pair.J}, 0, []geom.IntTriple{pair.Offset})
			for _, rec := range records {
				if rec.NTargets() != 2 || !rec.Targets[0].Matches(pair.I) || !rec.Targets[1].Matches(pair.J) {
					continue
				}
				if pair.Dist >= rec.HardCutoff {
					continue
				}
				form, err := cs.bofForm(rec.FormTag)
				if err != nil {
					return err
				}
				c, err := form.EvaluateBondOrderFactor(tup, rec.Params.TwoBody)
				if err != nil {
					return err
				}
				if err := checkFinite2(c); err != nil {
					return err
				}
				cs.Cache.Sums[slot][pair.I.Index-1] += c[0]
				cs.Cache.Sums[slot][pair.J.Index-1] += c[1]
			}

			for _, tr := range tripletsForPair(cs, pair) {
				order := []*Atom{tr.A, tr.Center, tr.B}
				offsets := []geom.IntTriple{tr.OffA, tr.OffB}
				ttup := buildTuple(cs, order, 1, offsets)
				for _, rec := range records {
					if rec.NTargets() != 3 {
						continue
					}
					if !rec.Targets[0].Matches(tr.A) || !rec.Targets[1].Matches(tr.Center) || !rec.Targets[2].Matches(tr.B) {
						continue
					}
					if ttup.Distances[0] >= rec.HardCutoff || ttup.Distances[1] >= rec.HardCutoff {
						continue
					}
					form, err := cs.bofForm(rec.FormTag)
					if err != nil {
						return err
					}
					c, err := form.EvaluateBondOrderFactor(ttup, rec.Params.ThreeBody)
					if err != nil {
						return err
					}
					if err := checkFiniteN(c); err != nil {
						return err
					}
					for k, atom := range order {
						if k < len(c) {
							cs.Cache.Sums[slot][atom.Index-1] += c[k]
						}
					}
				}

				if !groupHasArity(records, 4) {
					continue
				}
				for _, q := range quadrupletsForTriplet(cs, tr) {
					qorder := []*Atom{q.Chain[0], q.Chain[1], q.Chain[2], q.Chain[3]}
					qoffsets := []geom.IntTriple{q.Offsets[1], q.Offsets[2], q.Offsets[3]}
					qtup := buildTuple(cs, qorder, 0, qoffsets)
					for _, rec := range records {
						if rec.NTargets() != 4 {
							continue
						}
						if !rec.Targets[0].Matches(q.Chain[0]) || !rec.Targets[1].Matches(q.Chain[1]) ||
							!rec.Targets[2].Matches(q.Chain[2]) || !rec.Targets[3].Matches(q.Chain[3]) {
							continue
						}
						skip := false
						for _, d := range qtup.Distances {
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
						c, err := form.EvaluateBondOrderFactor(qtup, rec.Params.FourBody)
						if err != nil {
							return err
						}
						if err := checkFiniteN(c); err != nil {
							return err
						}
						for k, atom := range qorder {
							if k < len(c) {
								cs.Cache.Sums[slot][atom.Index-1] += c[k]
							}
						}
					}
				}
			}
		}
	}

	for _, i := range cs.Atoms {
		sum := cs.Cache.Sums[slot][i.Index-1]
		pp := cs.BOFs.postProcessorFor(groupID, i.Element)
		if pp == nil {
			cs.Cache.Factors[slot][i.Index-1] = sum
			continue
		}
		impl, err := cs.postProcessor(pp.FormTag)
		if err != nil {
			return err
		}
		b, err := impl.PostProcessFactor(sum, pp.PostProcessorParams)
		if err != nil {
			return err
		}
		if isNonFinite(b) {
			return newError(KindNumerical, "post_process_bond_order_factor produced non-finite value for atom %d", i.Index)
		}
		cs.Cache.Factors[slot][i.Index-1] = b
	}
	return nil
}

// recordsInGroup returns every BOF record belonging to groupID.
func (r *BOFRegistry) recordsInGroup(groupID int) []*BOFRecord {
	var out []*BOFRecord
	for _, rec := range r.Records {
		if rec.GroupID == groupID {
			out = append(out, rec)
		}
	}
	return out
}

func groupHasArity(records []*BOFRecord, n int) bool {
	for _, r := range records {
		if r.NTargets() == n {
			return true
		}
	}
	return false
}

func (cs *CoreState) postProcessor(tag string) (PostProcessor, error) {
	f, ok := cs.PostProcessors[tag]
	if !ok {
		return nil, newError(KindConfiguration, "unknown post-processor form %q", tag)
	}
	return f, nil
}
