/*
 * vec3.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package geom

import "math"

// Vec3 is a single 3D vector: a separation, a force, a direction. Kept
// as a value type (not a view into a gonum Matrix) because the hot
// interaction loop allocates and discards millions of these per step;
// wrapping every one in a *mat.Dense would be needless allocation
// pressure for something that is, in the end, three floats.
type Vec3 [3]float64

// Add returns v+w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }

// Sub returns v-w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v[0] * s, v[1] * s, v[2] * s} }

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }

// Cross returns the cross product v x w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// Norm2 returns the squared Euclidean length of v.
func (v Vec3) Norm2() float64 { return v.Dot(v) }

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Norm2()) }

// Unit returns v normalized to unit length. A degenerate zero vector is
// tolerated: it maps to itself rather than dividing by zero, per
// spec.md 4.5's requirement that a zero separation yield a zero
// direction that downstream kernels must accept.
func (v Vec3) Unit() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return v.Scale(1 / n)
}

// Outer returns the outer product v (x) w as a 3x3 matrix in row-major
// order, used to accumulate r (x) F stress contributions.
func (v Vec3) Outer(w Vec3) [3][3]float64 {
	var m [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = v[i] * w[j]
		}
	}
	return m
}

// Voigt is the six-component Voigt encoding (xx, yy, zz, yz, xz, xy) of a
// symmetric stress tensor, used everywhere spec.md requires stress
// output.
type Voigt [6]float64

// AddOuter accumulates the symmetrized outer product r (x) f into the
// receiver in Voigt order, matching spec.md's stress accumulation rule
// "r_ij (x) F_j" summed tuple by tuple.
func (s *Voigt) AddOuter(r, f Vec3) {
	s[0] += r[0] * f[0]
	s[1] += r[1] * f[1]
	s[2] += r[2] * f[2]
	s[3] += 0.5 * (r[1]*f[2] + r[2]*f[1])
	s[4] += 0.5 * (r[0]*f[2] + r[2]*f[0])
	s[5] += 0.5 * (r[0]*f[1] + r[1]*f[0])
}

// Add adds w into the receiver componentwise.
func (s *Voigt) Add(w Voigt) {
	for i := range s {
		s[i] += w[i]
	}
}

// IntTriple is an integer offset triple: the count of supercell vectors
// added to a wrapped position to reach a minimum-image neighbor.
type IntTriple [3]int

// Add returns the componentwise sum o+p.
func (o IntTriple) Add(p IntTriple) IntTriple {
	return IntTriple{o[0] + p[0], o[1] + p[1], o[2] + p[2]}
}

// Sub returns the componentwise difference o-p.
func (o IntTriple) Sub(p IntTriple) IntTriple {
	return IntTriple{o[0] - p[0], o[1] - p[1], o[2] - p[2]}
}

// Neg returns the componentwise negation of o.
func (o IntTriple) Neg() IntTriple { return IntTriple{-o[0], -o[1], -o[2]} }

// LexPositive reports whether o is lexicographically positive: the
// first nonzero component is positive. It is used by the canonical-pair
// predicate to break ties when two atoms coincide (i==j) under
// different periodic images.
func (o IntTriple) LexPositive() bool {
	for _, c := range o {
		if c != 0 {
			return c > 0
		}
	}
	return false
}
