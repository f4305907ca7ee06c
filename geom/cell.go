/*
 * cell.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package geom

import "math"

// Cell is the supercell: three lattice row vectors, their inverse
// (cached at construction, since it is read far more often than the
// cell changes), and a periodicity flag per axis. Immutable during a
// calculation step -- rebuilding it invalidates neighbor lists and BOF
// caches, per spec.md 3's Supercell invariant.
type Cell struct {
	vectors  *Matrix
	inverse  *Matrix
	periodic [3]bool
}

// NewCell builds a Cell from three row lattice vectors and a
// periodicity flag per axis. Returns an error (kind configuration, in
// the caller's vocabulary) if the cell is singular.
func NewCell(a, b, c Vec3, periodic [3]bool) (*Cell, error) {
	m := Zeros3()
	m.SetRow(0, a)
	m.SetRow(1, b)
	m.SetRow(2, c)
	inv, err := m.Inverse()
	if err != nil {
		return nil, err
	}
	return &Cell{vectors: m, inverse: inv, periodic: periodic}, nil
}

// Vectors returns the three lattice row vectors.
func (c *Cell) Vectors() (Vec3, Vec3, Vec3) {
	return c.vectors.Row(0), c.vectors.Row(1), c.vectors.Row(2)
}

// Periodic reports whether axis i (0=a,1=b,2=c) is periodic.
func (c *Cell) Periodic(i int) bool { return c.periodic[i] }

// AnyPeriodic reports whether any axis is periodic.
func (c *Cell) AnyPeriodic() bool {
	return c.periodic[0] || c.periodic[1] || c.periodic[2]
}

// Fractional converts an absolute position to fractional (lattice)
// coordinates via the cached inverse.
func (c *Cell) Fractional(r Vec3) Vec3 {
	return c.inverse.RowVecMul(r)
}

// Absolute converts a fractional coordinate back to an absolute
// position.
func (c *Cell) Absolute(s Vec3) Vec3 {
	return c.vectors.RowVecMul(s)
}

// WrappedCoordinates wraps an absolute position into the primary image
// along periodic axes, returning the wrapped position and the integer
// offset triple that was subtracted (the "wrap offset" spec.md 4.1
// step 2 asks the neighbor builder to remember per atom). Non-periodic
// axes are left untouched with offset 0.
func (c *Cell) WrappedCoordinates(r Vec3) (Vec3, IntTriple) {
	s := c.Fractional(r)
	var off IntTriple
	for i := 0; i < 3; i++ {
		if !c.periodic[i] {
			continue
		}
		f := math.Floor(s[i])
		off[i] = int(f)
		s[i] -= f
	}
	return c.Absolute(s), off
}

// SeparationVector computes the separation pos(b) - pos(a), shifted by
// the integer cell-offset triple o applied to atom b, per spec.md
// 4.1 step 3: sep = pos(b) - pos(a) + o . cell.
func (c *Cell) SeparationVector(posA, posB Vec3, o IntTriple) Vec3 {
	shift := c.Absolute(Vec3{float64(o[0]), float64(o[1]), float64(o[2])})
	return posB.Add(shift).Sub(posA)
}

// ReciprocalVectors returns the three reciprocal lattice vectors
// b1, b2, b3 (b_i . a_j = 2*pi*delta_ij), used by the Ewald k-space sum.
func (c *Cell) ReciprocalVectors() (Vec3, Vec3, Vec3) {
	a, b, cc := c.Vectors()
	volume := a.Dot(b.Cross(cc))
	scale := 2 * math.Pi / volume
	return b.Cross(cc).Scale(scale), cc.Cross(a).Scale(scale), a.Cross(b).Scale(scale)
}

// Volume returns the unsigned cell volume a . (b x c).
func (c *Cell) Volume() float64 {
	a, b, cc := c.Vectors()
	return math.Abs(a.Dot(b.Cross(cc)))
}

// OptimalSplitting returns, for each axis, the number of subcells whose
// edge is >= maxCutoff, given the cell's extent along that axis
// (measured along the corresponding lattice vector's length, which is
// exact only for an orthogonal cell -- the same simplification gochem's
// own RMSD/geometry helpers make when treating lattice vectors as if
// orthogonal for bookkeeping purposes). Non-periodic axes are forced to
// a single subcell, since the subcell grid is truncated rather than
// wrapped along them (spec.md 4.1 step 1).
func (c *Cell) OptimalSplitting(maxCutoff float64) [3]int {
	var n [3]int
	a, b, cc := c.Vectors()
	lengths := [3]float64{a.Norm(), b.Norm(), cc.Norm()}
	for i := 0; i < 3; i++ {
		if !c.periodic[i] || maxCutoff <= 0 {
			n[i] = 1
			continue
		}
		k := int(math.Floor(lengths[i] / maxCutoff))
		if k < 1 {
			k = 1
		}
		n[i] = k
	}
	return n
}

// DivideCell splits the cell into the subcell grid dimensions given by
// OptimalSplitting, returning for each axis the edge length of one
// subcell along that axis.
func (c *Cell) DivideCell(split [3]int) [3]float64 {
	a, b, cc := c.Vectors()
	lengths := [3]float64{a.Norm(), b.Norm(), cc.Norm()}
	var edges [3]float64
	for i := 0; i < 3; i++ {
		n := split[i]
		if n < 1 {
			n = 1
		}
		edges[i] = lengths[i] / float64(n)
	}
	return edges
}
