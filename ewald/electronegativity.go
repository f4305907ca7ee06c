/*
 * electronegativity.go, part of pysic/ewald.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package ewald

import (
	"math"

	"github.com/bobot51/pysic"
	"github.com/bobot51/pysic/geom"
)

// CalculateEwaldElectronegativities implements pysic.EwaldKernel:
// -dE/dq_i for the Ewald energy, holding every other atom's charge
// fixed, mirroring the -dE/dq convention pysic.PotentialForm's
// EvaluateElectronegativity already uses for short-range terms.
func (DirectKernel) CalculateEwaldElectronegativities(atoms []*pysic.Atom, cell *geom.Cell, realCutoff float64, kCutoffs [3]int, sigma, epsilon0 float64, scaler []float64) ([]float64, error) {
	if err := validateScaler(len(atoms), scaler); err != nil {
		return nil, err
	}
	positions := positionsOf(atoms)
	charges := chargesOf(atoms)
	q := weightedCharges(charges, scaler)
	a := alpha(sigma)
	coulomb := 1 / (4 * math.Pi * epsilon0)
	dEdq := make([]float64, len(atoms))

	// Each geometric pair is visited once from i's side (i,j,offset)
	// and once from j's side (j,i,-offset); unlike the pairwise-
	// symmetric energy sum this is exactly what dE/dq_i wants, since
	// it is i's own row of the double sum.
	realPairs(positions, cell, realCutoff, func(i, j int, sep geom.Vec3, r float64) {
		dEdq[i] += scaler[i] * coulomb * q[j] * math.Erfc(a*r) / r
	})

	volume := cell.Volume()
	for _, k := range kVectors(cell, kCutoffs) {
		sc, ss := structureFactor(positions, q, k)
		k2 := k.Norm2()
		amp := math.Exp(-k2/(4*a*a)) / k2
		for i, pos := range positions {
			phase := k.Dot(pos)
			dEdq[i] += (scaler[i] * amp / (epsilon0 * volume)) * (sc*math.Cos(phase) + ss*math.Sin(phase))
		}
	}

	selfCoef := -coulomb * 2 * a / math.Sqrt(math.Pi)
	chi := make([]float64, len(atoms))
	for i := range atoms {
		dEdq[i] += selfCoef * q[i] * scaler[i]
		chi[i] = -dEdq[i]
	}
	return chi, nil
}
