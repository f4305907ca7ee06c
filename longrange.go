/*
 * longrange.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

// addEwald implements spec.md 4.6's long-range add-on: one call into
// the registered EwaldKernel over the full atom set, added into the
// short-range accumulator already filled by reduceLoop.
func (cs *CoreState) addEwald(kind CalcKind, acc *accumulator) error {
	p := cs.EwaldParams
	switch kind {
	case CalcEnergy:
		e, err := cs.Ewald.CalculateEwaldEnergy(cs.Atoms, cs.Cell, p.RealCutoff, p.KCutoffs, p.Sigma, p.Epsilon0, p.Scaler)
		if err != nil {
			return errDecorate(err, "addEwald")
		}
		if isNonFinite(e) {
			return newError(KindNumerical, "ewald energy is non-finite")
		}
		acc.energy += e

	case CalcForces:
		forces, virial, err := cs.Ewald.CalculateEwaldForces(cs.Atoms, cs.Cell, p.RealCutoff, p.KCutoffs, p.Sigma, p.Epsilon0, p.Scaler)
		if err != nil {
			return errDecorate(err, "addEwald")
		}
		if len(forces) != len(cs.Atoms) {
			return newError(KindInternal, "ewald forces: got %d, want %d", len(forces), len(cs.Atoms))
		}
		for i, f := range forces {
			if isNonFinite(f[0]) || isNonFinite(f[1]) || isNonFinite(f[2]) {
				return newError(KindNumerical, "ewald force on atom %d is non-finite", i+1)
			}
			acc.addForce(i+1, f)
		}
		acc.stress.Add(virial)

	case CalcElectronegativity:
		chi, err := cs.Ewald.CalculateEwaldElectronegativities(cs.Atoms, cs.Cell, p.RealCutoff, p.KCutoffs, p.Sigma, p.Epsilon0, p.Scaler)
		if err != nil {
			return errDecorate(err, "addEwald")
		}
		if len(chi) != len(cs.Atoms) {
			return newError(KindInternal, "ewald electronegativities: got %d, want %d", len(chi), len(cs.Atoms))
		}
		for i, c := range chi {
			acc.addChi(i+1, c)
		}
	}
	return nil
}
