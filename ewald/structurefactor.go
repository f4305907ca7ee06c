/*
 * structurefactor.go, part of pysic/ewald.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package ewald

import (
	"math"

	"github.com/bobot51/pysic/geom"
)

// structureFactor returns the real and imaginary parts of S(k) =
// sum_j q_j exp(i k.r_j) over the weighted per-atom charges.
func structureFactor(positions []geom.Vec3, q []float64, k geom.Vec3) (sc, ss float64) {
	for j, pos := range positions {
		phase := k.Dot(pos)
		sc += q[j] * math.Cos(phase)
		ss += q[j] * math.Sin(phase)
	}
	return sc, ss
}

// weightedCharges returns atoms[i].Charge*scaler[i], the effective
// point charge SPEC_FULL.md 4.6's per-atom scaler vector multiplies
// into every Ewald observable.
func weightedCharges(charges, scaler []float64) []float64 {
	q := make([]float64, len(charges))
	for i := range q {
		q[i] = charges[i] * scaler[i]
	}
	return q
}
