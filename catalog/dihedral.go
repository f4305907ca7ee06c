/*
 * dihedral.go, part of pysic/catalog.
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

// Dihedral is the 4-body torsion potential V = 0.5*k*(cos(phi) -
// cos(theta0))^2, phi the dihedral angle of the bonded chain
// Chain[0]-Chain[1]-Chain[2]-Chain[3], params = [k, theta0]. Matches
// spec.md 8's S5 scenario.
type Dihedral struct{}

// dihedralBonds recovers the three consecutive bond vectors from a
// tuple built cumulative-from-atom-1 (pysic/loop_4body.go's
// CenterSlot == 0 convention).
func dihedralBonds(t pysic.Tuple) (b1, b2, b3 geom.Vec3) {
	b1 = t.Separations[0]
	b2 = t.Separations[1].Sub(t.Separations[0])
	b3 = t.Separations[2].Sub(t.Separations[1])
	return
}

func dihedralCosSin(b1, b2, b3 geom.Vec3) (cosPhi, sinPhi float64, m, n geom.Vec3) {
	m = b1.Cross(b2)
	n = b2.Cross(b3)
	cosPhi = m.Dot(n) / (m.Norm() * n.Norm())
	sinPhi = m.Cross(n).Dot(b2.Unit()) / (m.Norm() * n.Norm())
	return
}

func (Dihedral) EvaluateEnergy(t pysic.Tuple, params []float64) (float64, error) {
	k, theta0 := params[0], params[1]
	b1, b2, b3 := dihedralBonds(t)
	cosPhi, _, _, _ := dihedralCosSin(b1, b2, b3)
	return angleEnergy(k, cosPhi, math.Cos(theta0)), nil
}

// EvaluateForces implements the standard torsion-force decomposition
// (Blondel & Karplus 1996): forces on the two end atoms are along
// m = b1xb2 and n = b2xb3, and the two middle atoms' forces follow by
// requiring zero net force and zero net torque.
func (Dihedral) EvaluateForces(t pysic.Tuple, params []float64) ([]geom.Vec3, error) {
	k, theta0 := params[0], params[1]
	b1, b2, b3 := dihedralBonds(t)
	cosPhi, sinPhi, m, n := dihedralCosSin(b1, b2, b3)

	dvdcos := angleDVDCos(k, cosPhi, math.Cos(theta0))
	dvdphi := -dvdcos * sinPhi

	b2n := b2.Norm()
	f0 := m.Scale(-dvdphi * b2n / m.Norm2())
	f3 := n.Scale(dvdphi * b2n / n.Norm2())

	b2b2 := b2.Dot(b2)
	c1 := b1.Dot(b2) / b2b2
	c3 := b3.Dot(b2) / b2b2
	f1 := f0.Scale(-1).Add(f0.Scale(c1)).Sub(f3.Scale(c3))
	f2 := f3.Scale(-1).Sub(f0.Scale(c1)).Add(f3.Scale(c3))

	return []geom.Vec3{f0, f1, f2, f3}, nil
}

func (Dihedral) EvaluateElectronegativity(t pysic.Tuple, params []float64) ([]float64, error) {
	return []float64{0, 0, 0, 0}, nil
}
