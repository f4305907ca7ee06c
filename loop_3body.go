/*
 * loop_3body.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

import "github.com/bobot51/pysic/geom"

// threeBodyContribution implements spec.md 4.5 step 3c. Returns
// whether any matching potential declared n_targets > 3, which
// enables the 4-body stage.
func threeBodyContribution(cs *CoreState, pair canonicalPair, kind CalcKind, acc *accumulator) (bool, error) {
	fourBodyEnabled := false
	for _, tr := range tripletsForPair(cs, pair) {
		order := []*Atom{tr.A, tr.Center, tr.B}
		offsets := []geom.IntTriple{tr.OffA, tr.OffB}
		tup := buildTuple(cs, order, 1, offsets)

		for _, idx := range tr.A.PotentialIndices {
			rec := cs.Potentials.Records[idx]
			if rec.NTargets() > 3 {
				fourBodyEnabled = true
			}
			if rec.NTargets() != 3 {
				continue
			}
			if !rec.Targets[1].Matches(tr.Center) || !rec.Targets[2].Matches(tr.B) {
				continue
			}
			if tup.Distances[0] >= rec.HardCutoff || tup.Distances[1] >= rec.HardCutoff {
				continue
			}
			if err := threeBodyEvaluate(cs, rec, tup, order, kind, acc); err != nil {
				return fourBodyEnabled, err
			}
		}
	}
	return fourBodyEnabled, nil
}

func threeBodyEvaluate(cs *CoreState, rec *PotentialRecord, tup Tuple, order []*Atom, kind CalcKind, acc *accumulator) error {
	dCA, dCB := tup.Distances[0], tup.Distances[1]
	fs1, fsGrad1, err := cs.smoothen(dCA, rec.SoftCutoff, rec.HardCutoff, rec.HasSoftCutoff)
	if err != nil {
		return err
	}
	fs2, fsGrad2, err := cs.smoothen(dCB, rec.SoftCutoff, rec.HardCutoff, rec.HasSoftCutoff)
	if err != nil {
		return err
	}
	bs := make([]float64, 3)
	for k, a := range order {
		b, err := cs.factorForGroup(rec.GroupID, rec.HasGroup, a.Index)
		if err != nil {
			return err
		}
		bs[k] = b
	}
	weight := (bs[0] + bs[1] + bs[2]) / 3

	form, err := cs.potentialForm(rec.FormTag)
	if err != nil {
		return err
	}

	switch kind {
	case CalcEnergy:
		e, err := form.EvaluateEnergy(tup, rec.Params)
		if err != nil {
			return err
		}
		if isNonFinite(e) {
			return newError(KindNumerical, "evaluate_energy (3-body, form %q) returned a non-finite value", rec.FormTag)
		}
		acc.energy += e * fs1 * fs2 * weight

	case CalcForces:
		e, err := form.EvaluateEnergy(tup, rec.Params)
		if err != nil {
			return err
		}
		fraw, err := form.EvaluateForces(tup, rec.Params)
		if err != nil {
			return err
		}
		if len(fraw) != 3 {
			return newError(KindInternal, "evaluate_forces (3-body) returned %d forces, want 3", len(fraw))
		}
		dirCA := tup.Separations[0].Unit()
		dirCB := tup.Separations[1].Unit()

		fA := fraw[0].Scale(fs1 * fs2).Add(dirCA.Scale(e * fsGrad1 * fs2))
		fCenter := fraw[1].Scale(fs1 * fs2).Sub(dirCA.Scale(e * fsGrad1 * fs2)).Sub(dirCB.Scale(e * fsGrad2 * fs1))
		fB := fraw[2].Scale(fs1 * fs2).Add(dirCB.Scale(e * fsGrad2 * fs1))
		acc.addForce(order[0].Index, fA.Scale(weight))
		acc.addForce(order[1].Index, fCenter.Scale(weight))
		acc.addForce(order[2].Index, fB.Scale(weight))

		acc.stress.AddOuter(tup.Separations[0], fA.Scale(weight))
		acc.stress.AddOuter(tup.Separations[1], fB.Scale(weight))

		if rec.HasGroup {
			factor := e * fs1 * fs2
			grads := make([][]geom.Vec3, 3)
			virs := make([]geom.Voigt, 3)
			for k, a := range order {
				g, v, err := cs.FactorGradient(rec.GroupID, k+1, a)
				if err != nil {
					return err
				}
				grads[k] = g
				virs[k] = v
			}
			for _, alpha := range cs.Atoms {
				dw := grads[0][alpha.Index-1].Add(grads[1][alpha.Index-1]).Add(grads[2][alpha.Index-1]).Scale(1.0 / 3)
				acc.addForce(alpha.Index, dw.Scale(-factor))
			}
			for k := range acc.stress {
				acc.stress[k] -= factor * (virs[0][k] + virs[1][k] + virs[2][k]) / 3
			}
		}

	case CalcElectronegativity:
		chi, err := form.EvaluateElectronegativity(tup, rec.Params)
		if err != nil {
			return err
		}
		if len(chi) != 3 {
			return newError(KindInternal, "evaluate_electronegativity (3-body) returned %d values, want 3", len(chi))
		}
		for k, a := range order {
			acc.addChi(a.Index, chi[k]*fs1*fs2*weight)
		}
	}
	return nil
}
