/*
 * loop_4body.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

import "github.com/bobot51/pysic/geom"

// fourBodyContribution implements spec.md 4.5 step 3d: extend every
// 3-body triplet found for pair by one neighbor at either end (see
// enumerate.go's quadrupletsForTriplet) and evaluate every matching
// 4-body potential along the resulting bonded chain.
func fourBodyContribution(cs *CoreState, pair canonicalPair, kind CalcKind, acc *accumulator) error {
	for _, tr := range tripletsForPair(cs, pair) {
		for _, q := range quadrupletsForTriplet(cs, tr) {
			order := []*Atom{q.Chain[0], q.Chain[1], q.Chain[2], q.Chain[3]}
			offsets := []geom.IntTriple{q.Offsets[1], q.Offsets[2], q.Offsets[3]}
			tup := buildTuple(cs, order, 0, offsets)

			for _, idx := range order[0].PotentialIndices {
				rec := cs.Potentials.Records[idx]
				if rec.NTargets() != 4 {
					continue
				}
				if !rec.Targets[1].Matches(order[1]) || !rec.Targets[2].Matches(order[2]) || !rec.Targets[3].Matches(order[3]) {
					continue
				}
				if tup.Distances[0] >= rec.HardCutoff || tup.Distances[1] >= rec.HardCutoff || tup.Distances[2] >= rec.HardCutoff {
					continue
				}
				if err := fourBodyEvaluate(cs, rec, tup, order, q, kind, acc); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func fourBodyEvaluate(cs *CoreState, rec *PotentialRecord, tup Tuple, order []*Atom, q quadruplet, kind CalcKind, acc *accumulator) error {
	sep01 := cs.Cell.SeparationVector(order[0].Position, order[1].Position, q.Offsets[1])
	sep12 := cs.Cell.SeparationVector(order[1].Position, order[2].Position, q.Offsets[2].Sub(q.Offsets[1]))
	sep23 := cs.Cell.SeparationVector(order[2].Position, order[3].Position, q.Offsets[3].Sub(q.Offsets[2]))
	d01, d12, d23 := sep01.Norm(), sep12.Norm(), sep23.Norm()

	fs1, fsGrad1, err := cs.smoothen(d01, rec.SoftCutoff, rec.HardCutoff, rec.HasSoftCutoff)
	if err != nil {
		return err
	}
	fs2, fsGrad2, err := cs.smoothen(d12, rec.SoftCutoff, rec.HardCutoff, rec.HasSoftCutoff)
	if err != nil {
		return err
	}
	fs3, fsGrad3, err := cs.smoothen(d23, rec.SoftCutoff, rec.HardCutoff, rec.HasSoftCutoff)
	if err != nil {
		return err
	}
	fsProd := fs1 * fs2 * fs3

	bs := make([]float64, 4)
	for k, a := range order {
		b, err := cs.factorForGroup(rec.GroupID, rec.HasGroup, a.Index)
		if err != nil {
			return err
		}
		bs[k] = b
	}
	weight := (bs[0] + bs[1] + bs[2] + bs[3]) / 4

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
			return newError(KindNumerical, "evaluate_energy (4-body, form %q) returned a non-finite value", rec.FormTag)
		}
		acc.energy += e * fsProd * weight

	case CalcForces:
		e, err := form.EvaluateEnergy(tup, rec.Params)
		if err != nil {
			return err
		}
		fraw, err := form.EvaluateForces(tup, rec.Params)
		if err != nil {
			return err
		}
		if len(fraw) != 4 {
			return newError(KindInternal, "evaluate_forces (4-body) returned %d forces, want 4", len(fraw))
		}
		dir01, dir12, dir23 := sep01.Unit(), sep12.Unit(), sep23.Unit()

		f0 := fraw[0].Scale(fsProd).Sub(dir01.Scale(e * fs2 * fs3 * fsGrad1))
		f1 := fraw[1].Scale(fsProd).Add(dir01.Scale(e * fs2 * fs3 * fsGrad1)).Sub(dir12.Scale(e * fs1 * fs3 * fsGrad2))
		f2 := fraw[2].Scale(fsProd).Add(dir12.Scale(e * fs1 * fs3 * fsGrad2)).Sub(dir23.Scale(e * fs1 * fs2 * fsGrad3))
		f3 := fraw[3].Scale(fsProd).Add(dir23.Scale(e * fs1 * fs2 * fsGrad3))

		f0, f1, f2, f3 = f0.Scale(weight), f1.Scale(weight), f2.Scale(weight), f3.Scale(weight)
		acc.addForce(order[0].Index, f0)
		acc.addForce(order[1].Index, f1)
		acc.addForce(order[2].Index, f2)
		acc.addForce(order[3].Index, f3)

		acc.stress.AddOuter(tup.Separations[0], f1)
		acc.stress.AddOuter(tup.Separations[1], f2)
		acc.stress.AddOuter(tup.Separations[2], f3)

		if rec.HasGroup {
			factor := e * fsProd
			grads := make([][]geom.Vec3, 4)
			virs := make([]geom.Voigt, 4)
			for k, a := range order {
				g, v, err := cs.FactorGradient(rec.GroupID, k+1, a)
				if err != nil {
					return err
				}
				grads[k] = g
				virs[k] = v
			}
			for _, alpha := range cs.Atoms {
				var dw geom.Vec3
				for k := range order {
					dw = dw.Add(grads[k][alpha.Index-1])
				}
				dw = dw.Scale(1.0 / 4)
				acc.addForce(alpha.Index, dw.Scale(-factor))
			}
			for k := range acc.stress {
				var v float64
				for p := range virs {
					v += virs[p][k]
				}
				acc.stress[k] -= factor * v / 4
			}
		}

	case CalcElectronegativity:
		chi, err := form.EvaluateElectronegativity(tup, rec.Params)
		if err != nil {
			return err
		}
		if len(chi) != 4 {
			return newError(KindInternal, "evaluate_electronegativity (4-body) returned %d values, want 4", len(chi))
		}
		// All three smoothening factors apply here, not just the first
		// two (spec.md 9's second discrepancy note).
		for k, a := range order {
			acc.addChi(a.Index, chi[k]*fsProd*weight)
		}
	}
	return nil
}
