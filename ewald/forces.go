/*
 * forces.go, part of pysic/ewald.
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

// realForceCoef returns the magnitude of the erfc-screened Coulomb
// force between a pair separated by r, directed along sep (i -> j):
// the force ADDED to atom i is -coef*dir, and (by visiting the mirror
// ordered pair) atom j's is +coef*dir, per the standard erfc/r force
// derivative -d/dr[erfc(a*r)/r].
func realForceCoef(qi, qj, r, a, coulomb float64) float64 {
	return coulomb * qi * qj * (math.Erfc(a*r)/(r*r) + 2*a/math.Sqrt(math.Pi)*math.Exp(-a*a*r*r)/r)
}

// CalculateEwaldForces implements pysic.EwaldKernel.
func (DirectKernel) CalculateEwaldForces(atoms []*pysic.Atom, cell *geom.Cell, realCutoff float64, kCutoffs [3]int, sigma, epsilon0 float64, scaler []float64) ([]geom.Vec3, geom.Voigt, error) {
	var realVirial, recipVirial geom.Voigt
	if err := validateScaler(len(atoms), scaler); err != nil {
		return nil, realVirial, err
	}
	positions := positionsOf(atoms)
	q := weightedCharges(chargesOf(atoms), scaler)
	a := alpha(sigma)
	coulomb := 1 / (4 * math.Pi * epsilon0)
	forces := make([]geom.Vec3, len(atoms))

	realPairs(positions, cell, realCutoff, func(i, j int, sep geom.Vec3, r float64) {
		dir := sep.Unit()
		coef := realForceCoef(q[i], q[j], r, a, coulomb)
		forces[i] = forces[i].Sub(dir.Scale(coef))
		// Each physical pair is visited from both sides with an
		// identical contribution (unlike the force update, which
		// naturally splits between the two visits), so halve it here.
		realVirial.AddOuter(sep, dir.Scale(0.5*coef))
	})

	volume := cell.Volume()
	for _, k := range kVectors(cell, kCutoffs) {
		sc, ss := structureFactor(positions, q, k)
		k2 := k.Norm2()
		amp := math.Exp(-k2/(4*a*a)) / k2
		weight := amp * (sc*sc + ss*ss)
		c := 1/(4*a*a) + 1/k2

		recipVirial[0] += weight
		recipVirial[1] += weight
		recipVirial[2] += weight
		recipVirial.AddOuter(k.Scale(-2*c*weight), k)

		for i, pos := range positions {
			phase := k.Dot(pos)
			fi := amp * q[i] * (sc*math.Sin(phase) - ss*math.Cos(phase))
			forces[i] = forces[i].Add(k.Scale(fi / (epsilon0 * volume)))
		}
	}
	for i := range recipVirial {
		recipVirial[i] /= 2 * epsilon0 * volume
	}

	total := realVirial
	total.Add(recipVirial)
	return forces, total, nil
}
