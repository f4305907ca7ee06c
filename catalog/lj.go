/*
 * lj.go, part of pysic/catalog.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package catalog

import (
	"github.com/bobot51/pysic"
	"github.com/bobot51/pysic/geom"
)

// LennardJones is the 2-body potential V(r) = eps*((sigma/r)^12 -
// (sigma/r)^6), params = [eps, sigma]. Matches spec.md 8's S2
// scenario literally (no extra 4x prefactor).
type LennardJones struct{}

func ljTerms(r, eps, sigma float64) (e, dedr float64) {
	sr6 := sigma * sigma * sigma * sigma * sigma * sigma
	sr6 /= r * r * r * r * r * r
	sr12 := sr6 * sr6
	e = eps * (sr12 - sr6)
	dedr = eps * (-12*sr12 + 6*sr6) / r
	return e, dedr
}

func (LennardJones) EvaluateEnergy(t pysic.Tuple, params []float64) (float64, error) {
	e, _ := ljTerms(t.Distances[0], params[0], params[1])
	return e, nil
}

func (LennardJones) EvaluateForces(t pysic.Tuple, params []float64) ([]geom.Vec3, error) {
	r := t.Distances[0]
	_, dedr := ljTerms(r, params[0], params[1])
	direction := t.Separations[0].Unit()
	fRadial := -dedr
	return []geom.Vec3{direction.Scale(-fRadial), direction.Scale(fRadial)}, nil
}

func (LennardJones) EvaluateElectronegativity(t pysic.Tuple, params []float64) ([]float64, error) {
	return []float64{0, 0}, nil
}
