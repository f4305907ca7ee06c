/*
 * geometry.go, part of pysic/ewald.
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

// alpha converts the Gaussian smearing width sigma into the screening
// parameter the erfc/erf split uses.
func alpha(sigma float64) float64 { return 1 / (sigma * math.Sqrt2) }

// imageRange returns, per axis, how many periodic images in each
// direction the real-space sum must visit to cover realCutoff -- a
// direct-kernel analogue of geom.Cell.OptimalSplitting, sized by
// cutoff instead of subcell count. Non-periodic axes never get images.
func imageRange(cell *geom.Cell, cutoff float64) [3]int {
	a, b, c := cell.Vectors()
	lengths := [3]float64{a.Norm(), b.Norm(), c.Norm()}
	var n [3]int
	for i := 0; i < 3; i++ {
		if !cell.Periodic(i) || cutoff <= 0 {
			continue
		}
		n[i] = int(math.Ceil(cutoff / lengths[i]))
	}
	return n
}

// realPairs calls fn once for every ordered pair of atom positions
// (posI, posJ, offset) within realCutoff, including self-images
// (i == j under a nonzero offset) but excluding the zero-offset
// self-pair. Each physical pair is visited twice, once from either
// side (offset and its negation) -- callers that accumulate a
// pairwise-symmetric quantity must halve it; callers that accumulate
// per-atom quantities (forces, electronegativity) should not, since
// the two visits naturally supply each atom's own half.
func realPairs(positions []geom.Vec3, cell *geom.Cell, realCutoff float64, fn func(i, j int, sep geom.Vec3, r float64)) {
	n := imageRange(cell, realCutoff)
	for i, posI := range positions {
		for j, posJ := range positions {
			for nx := -n[0]; nx <= n[0]; nx++ {
				for ny := -n[1]; ny <= n[1]; ny++ {
					for nz := -n[2]; nz <= n[2]; nz++ {
						if i == j && nx == 0 && ny == 0 && nz == 0 {
							continue
						}
						off := geom.IntTriple{nx, ny, nz}
						sep := cell.SeparationVector(posI, posJ, off)
						r := sep.Norm()
						if r > realCutoff || r == 0 {
							continue
						}
						fn(i, j, sep, r)
					}
				}
			}
		}
	}
}

// kVectors returns every nonzero reciprocal-lattice vector k =
// nx*b1+ny*b2+nz*b3 with |n_axis| <= kCutoffs[axis].
func kVectors(cell *geom.Cell, kCutoffs [3]int) []geom.Vec3 {
	b1, b2, b3 := cell.ReciprocalVectors()
	var ks []geom.Vec3
	for nx := -kCutoffs[0]; nx <= kCutoffs[0]; nx++ {
		for ny := -kCutoffs[1]; ny <= kCutoffs[1]; ny++ {
			for nz := -kCutoffs[2]; nz <= kCutoffs[2]; nz++ {
				if nx == 0 && ny == 0 && nz == 0 {
					continue
				}
				k := b1.Scale(float64(nx)).Add(b2.Scale(float64(ny))).Add(b3.Scale(float64(nz)))
				ks = append(ks, k)
			}
		}
	}
	return ks
}
