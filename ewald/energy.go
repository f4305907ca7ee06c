/*
 * energy.go, part of pysic/ewald.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package ewald

import (
	"fmt"
	"math"

	"github.com/bobot51/pysic"
	"github.com/bobot51/pysic/geom"
)

// DirectKernel is a from-scratch, brute-force Ewald summation: every
// real-space image pair within realCutoff, every reciprocal vector
// within kCutoffs, no cell lists or precomputed tables. Grounded on the
// direct all-pairs style of the pack's N-body codes (e.g.
// relspas-Molecular-Dynamics-Simulator's Coulomb block and
// sandeepkv93-concurrency-in-golang's parallelnbody.go double loop),
// generalized from a plain 1/r Coulomb sum into the erfc-screened
// real-space term plus a reciprocal-space correction.
type DirectKernel struct{}

func positionsOf(atoms []*pysic.Atom) []geom.Vec3 {
	pos := make([]geom.Vec3, len(atoms))
	for i, a := range atoms {
		pos[i] = a.Position
	}
	return pos
}

func chargesOf(atoms []*pysic.Atom) []float64 {
	q := make([]float64, len(atoms))
	for i, a := range atoms {
		q[i] = a.Charge
	}
	return q
}

func validateScaler(n int, scaler []float64) error {
	if len(scaler) != n {
		return fmt.Errorf("ewald: scaler has %d entries, want %d", len(scaler), n)
	}
	return nil
}

// CalculateEwaldEnergy implements pysic.EwaldKernel.
func (DirectKernel) CalculateEwaldEnergy(atoms []*pysic.Atom, cell *geom.Cell, realCutoff float64, kCutoffs [3]int, sigma, epsilon0 float64, scaler []float64) (float64, error) {
	if err := validateScaler(len(atoms), scaler); err != nil {
		return 0, err
	}
	positions := positionsOf(atoms)
	q := weightedCharges(chargesOf(atoms), scaler)
	a := alpha(sigma)
	coulomb := 1 / (4 * math.Pi * epsilon0)

	var real float64
	realPairs(positions, cell, realCutoff, func(i, j int, sep geom.Vec3, r float64) {
		real += 0.5 * coulomb * q[i] * q[j] * math.Erfc(a*r) / r
	})

	var recip float64
	volume := cell.Volume()
	for _, k := range kVectors(cell, kCutoffs) {
		sc, ss := structureFactor(positions, q, k)
		k2 := k.Norm2()
		recip += math.Exp(-k2/(4*a*a)) / k2 * (sc*sc + ss*ss)
	}
	recip /= 2 * epsilon0 * volume

	var self float64
	for _, qi := range q {
		self += qi * qi
	}
	self *= -coulomb * a / math.Sqrt(math.Pi)

	return real + recip + self, nil
}
