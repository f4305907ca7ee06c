/*
 * loop_1body.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

// oneBodyContribution implements spec.md 4.5 step 2: for every
// potential targeting i with n_targets == 1, fetch b_i for its group
// (or 1 if ungrouped), evaluate the requested observable, and
// accumulate. In the force path, also subtract v_i . grad_alpha b_i
// for every alpha via gradient-cache slot 1.
func oneBodyContribution(cs *CoreState, i *Atom, kind CalcKind, acc *accumulator) error {
	for _, idx := range i.PotentialIndices {
		rec := cs.Potentials.Records[idx]
		if rec.NTargets() != 1 {
			continue
		}
		form, err := cs.potentialForm(rec.FormTag)
		if err != nil {
			return err
		}
		tup := Tuple{Atoms: []*Atom{i}, CenterSlot: 0}
		b, err := cs.factorForGroup(rec.GroupID, rec.HasGroup, i.Index)
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
				return newError(KindNumerical, "evaluate_energy (1-body, form %q) returned a non-finite value", rec.FormTag)
			}
			acc.energy += e * b

		case CalcForces:
			fs, err := form.EvaluateForces(tup, rec.Params)
			if err != nil {
				return err
			}
			if len(fs) != 1 {
				return newError(KindInternal, "evaluate_forces (1-body) returned %d forces, want 1", len(fs))
			}
			acc.addForce(i.Index, fs[0].Scale(b))

			if rec.HasGroup {
				e, err := form.EvaluateEnergy(tup, rec.Params)
				if err != nil {
					return err
				}
				grads, virial, err := cs.FactorGradient(rec.GroupID, 1, i)
				if err != nil {
					return err
				}
				for _, alpha := range cs.Atoms {
					g := grads[alpha.Index-1]
					acc.addForce(alpha.Index, g.Scale(-e))
				}
				for k := range acc.stress {
					acc.stress[k] -= e * virial[k]
				}
			}

		case CalcElectronegativity:
			chi, err := form.EvaluateElectronegativity(tup, rec.Params)
			if err != nil {
				return err
			}
			if len(chi) != 1 {
				return newError(KindInternal, "evaluate_electronegativity (1-body) returned %d values, want 1", len(chi))
			}
			acc.addChi(i.Index, chi[0]*b)
		}
	}
	return nil
}
