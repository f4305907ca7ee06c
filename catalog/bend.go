/*
 * bend.go, part of pysic/catalog.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package catalog

import (
	"math"

	"github.com/bobot51/pysic"
	"github.com/bobot51/pysic/geom"
)

// BondBending is the 3-body angle potential V = 0.5*k*(cos(theta) -
// cos(theta0))^2, theta the angle A-Center-B, params = [k, theta0].
// Matches spec.md 8's S3 scenario.
type BondBending struct{}

func (BondBending) EvaluateEnergy(t pysic.Tuple, params []float64) (float64, error) {
	k, theta0 := params[0], params[1]
	u, v := t.Separations[0], t.Separations[1]
	cosTheta := u.Dot(v) / (u.Norm() * v.Norm())
	return angleEnergy(k, cosTheta, math.Cos(theta0)), nil
}

// EvaluateForces returns forces for [A, Center, B], matching the
// tuple order the interaction loop builds (pysic/loop_3body.go).
func (BondBending) EvaluateForces(t pysic.Tuple, params []float64) ([]geom.Vec3, error) {
	k, theta0 := params[0], params[1]
	u, v := t.Separations[0], t.Separations[1]
	rA, rB := u.Norm(), v.Norm()
	uHat, vHat := u.Scale(1/rA), v.Scale(1/rB)
	cosTheta := uHat.Dot(vHat)

	gradA := vHat.Sub(uHat.Scale(cosTheta)).Scale(1 / rA)
	gradB := uHat.Sub(vHat.Scale(cosTheta)).Scale(1 / rB)
	gradCenter := gradA.Add(gradB).Scale(-1)

	dvdcos := angleDVDCos(k, cosTheta, math.Cos(theta0))
	fA := gradA.Scale(-dvdcos)
	fCenter := gradCenter.Scale(-dvdcos)
	fB := gradB.Scale(-dvdcos)
	return []geom.Vec3{fA, fCenter, fB}, nil
}

func (BondBending) EvaluateElectronegativity(t pysic.Tuple, params []float64) ([]float64, error) {
	return []float64{0, 0, 0}, nil
}
