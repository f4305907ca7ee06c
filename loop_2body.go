/*
 * loop_2body.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

import "github.com/bobot51/pysic/geom"

// twoBodyContribution implements spec.md 4.5 step 3b. Returns whether
// any matching potential declared n_targets > 2, which sets the
// driver's many_bodies_found flag.
func twoBodyContribution(cs *CoreState, pair canonicalPair, kind CalcKind, acc *accumulator) (bool, error) {
	i, j := pair.I, pair.J
	manyBodiesFound := false
	direction := pair.Sep.Unit()

	for _, idx := range i.PotentialIndices {
		rec := cs.Potentials.Records[idx]
		if rec.NTargets() > 2 {
			manyBodiesFound = true
		}
		if rec.NTargets() != 2 || !rec.Targets[1].Matches(j) {
			continue
		}
		if pair.Dist >= rec.HardCutoff {
			continue
		}
		fs, fsGrad, err := cs.smoothen(pair.Dist, rec.SoftCutoff, rec.HardCutoff, rec.HasSoftCutoff)
		if err != nil {
			return manyBodiesFound, err
		}
		bi, err := cs.factorForGroup(rec.GroupID, rec.HasGroup, i.Index)
		if err != nil {
			return manyBodiesFound, err
		}
		bj, err := cs.factorForGroup(rec.GroupID, rec.HasGroup, j.Index)
		if err != nil {
			return manyBodiesFound, err
		}
		weight := (bi + bj) / 2

		tup := buildTuple(cs, []*Atom{i, j}, 0, []geom.IntTriple{pair.Offset})
		form, err := cs.potentialForm(rec.FormTag)
		if err != nil {
			return manyBodiesFound, err
		}

		switch kind {
		case CalcEnergy:
			e, err := form.EvaluateEnergy(tup, rec.Params)
			if err != nil {
				return manyBodiesFound, err
			}
			if isNonFinite(e) {
				return manyBodiesFound, newError(KindNumerical, "evaluate_energy (2-body, form %q) returned a non-finite value", rec.FormTag)
			}
			acc.energy += e * fs * weight

		case CalcForces:
			e, err := form.EvaluateEnergy(tup, rec.Params)
			if err != nil {
				return manyBodiesFound, err
			}
			fraw, err := form.EvaluateForces(tup, rec.Params)
			if err != nil {
				return manyBodiesFound, err
			}
			if len(fraw) != 2 {
				return manyBodiesFound, newError(KindInternal, "evaluate_forces (2-body) returned %d forces, want 2", len(fraw))
			}
			fi := fraw[0].Scale(fs).Sub(direction.Scale(e * fsGrad)).Scale(weight)
			fj := fraw[1].Scale(fs).Add(direction.Scale(e * fsGrad)).Scale(weight)
			acc.addForce(i.Index, fi)
			acc.addForce(j.Index, fj)
			acc.stress.AddOuter(pair.Sep, fj)

			if rec.HasGroup {
				gi, vi, err := cs.FactorGradient(rec.GroupID, 1, i)
				if err != nil {
					return manyBodiesFound, err
				}
				gj, vj, err := cs.FactorGradient(rec.GroupID, 2, j)
				if err != nil {
					return manyBodiesFound, err
				}
				factor := e * fs
				for _, alpha := range cs.Atoms {
					dw := gi[alpha.Index-1].Add(gj[alpha.Index-1]).Scale(0.5)
					acc.addForce(alpha.Index, dw.Scale(-factor))
				}
				for k := range acc.stress {
					acc.stress[k] -= factor * (vi[k] + vj[k]) / 2
				}
			}

		case CalcElectronegativity:
			chi, err := form.EvaluateElectronegativity(tup, rec.Params)
			if err != nil {
				return manyBodiesFound, err
			}
			if len(chi) != 2 {
				return manyBodiesFound, newError(KindInternal, "evaluate_electronegativity (2-body) returned %d values, want 2", len(chi))
			}
			acc.addChi(i.Index, chi[0]*fs*weight)
			acc.addChi(j.Index, chi[1]*fs*weight)
		}
	}
	return manyBodiesFound, nil
}
