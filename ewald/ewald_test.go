/*
 * ewald_test.go, part of pysic/ewald.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package ewald

import (
	"math"
	"testing"

	"github.com/bobot51/pysic"
	"github.com/bobot51/pysic/geom"
)

// S6, spec.md 8: two ions (+1, -1) in a cubic box, L=10, fully
// periodic, real cutoff 5, k-cutoff (5,5,5), sigma=1.0. spec.md only
// asks that the result be checked against a reference table without
// giving the literal number, so this exercises the two properties a
// correct Ewald summation must have instead of a fixed magic value:
// unlike-charge ions attract (negative energy, force pulling them
// together), and the force the kernel reports agrees with a finite
// difference of the energy it reports.
func twoIonCell(t *testing.T, sep float64) ([]*pysic.Atom, *geom.Cell) {
	t.Helper()
	cell, err := geom.NewCell(geom.Vec3{10, 0, 0}, geom.Vec3{0, 10, 0}, geom.Vec3{0, 0, 10}, [3]bool{true, true, true})
	if err != nil {
		t.Fatalf("new_cell: %v", err)
	}
	a1 := pysic.NewAtom(1, "Na", 0, 22.99)
	a1.Position = geom.Vec3{0, 0, 0}
	a1.Charge = 1
	a2 := pysic.NewAtom(2, "Cl", 0, 35.45)
	a2.Position = geom.Vec3{sep, 0, 0}
	a2.Charge = -1
	return []*pysic.Atom{a1, a2}, cell
}

func energyAt(t *testing.T, sepDist float64) float64 {
	t.Helper()
	atoms, cell := twoIonCell(t, sepDist)
	e, err := DirectKernel{}.CalculateEwaldEnergy(atoms, cell, 5, [3]int{5, 5, 5}, 1.0, 1.0, []float64{1, 1})
	if err != nil {
		t.Fatalf("calculate_ewald_energy: %v", err)
	}
	return e
}

func TestEwaldTwoIonsAttract(t *testing.T) {
	e := energyAt(t, 5.0)
	if !(e < 0) {
		t.Fatalf("energy = %v, want negative (unlike charges attract)", e)
	}
}

func TestEwaldForceMatchesEnergyGradient(t *testing.T) {
	const h = 1e-4
	ePlus := energyAt(t, 5.0+h)
	eMinus := energyAt(t, 5.0-h)
	numericForce := -(ePlus - eMinus) / (2 * h)

	atoms, cell := twoIonCell(t, 5.0)
	forces, _, err := DirectKernel{}.CalculateEwaldForces(atoms, cell, 5, [3]int{5, 5, 5}, 1.0, 1.0, []float64{1, 1})
	if err != nil {
		t.Fatalf("calculate_ewald_forces: %v", err)
	}
	analyticForce := forces[1][0]

	if math.Abs(numericForce-analyticForce) > 1e-4*math.Max(1, math.Abs(analyticForce)) {
		t.Fatalf("numeric force %v vs analytic force %v", numericForce, analyticForce)
	}

	var total geom.Vec3
	for _, f := range forces {
		total = total.Add(f)
	}
	if total.Norm() > 1e-8 {
		t.Fatalf("net force %v, want zero (Newton's third law)", total)
	}
}

func TestEwaldScalerZeroesContribution(t *testing.T) {
	atoms, cell := twoIonCell(t, 5.0)
	scaler := []float64{0, 0}
	e, err := DirectKernel{}.CalculateEwaldEnergy(atoms, cell, 5, [3]int{5, 5, 5}, 1.0, 1.0, scaler)
	if err != nil {
		t.Fatalf("calculate_ewald_energy: %v", err)
	}
	if e != 0 {
		t.Fatalf("energy with zero scaler = %v, want 0", e)
	}
}

func TestEwaldValidateScalerLengthMismatch(t *testing.T) {
	atoms, cell := twoIonCell(t, 5.0)
	_, err := DirectKernel{}.CalculateEwaldEnergy(atoms, cell, 5, [3]int{5, 5, 5}, 1.0, 1.0, []float64{1})
	if err == nil {
		t.Fatalf("expected an error for a mismatched scaler length")
	}
}

func TestEwaldElectronegativitySignsOpposeForUnlikeCharges(t *testing.T) {
	atoms, cell := twoIonCell(t, 5.0)
	chi, err := DirectKernel{}.CalculateEwaldElectronegativities(atoms, cell, 5, [3]int{5, 5, 5}, 1.0, 1.0, []float64{1, 1})
	if err != nil {
		t.Fatalf("calculate_ewald_electronegativities: %v", err)
	}
	// The positive ion's own self-energy term dominates: its chi should
	// differ in sign from the negative ion's, by symmetry of q -> -q.
	if math.Signbit(chi[0]) == math.Signbit(chi[1]) {
		t.Fatalf("chi = %v, want opposite signs for +1/-1 ions", chi)
	}
}
