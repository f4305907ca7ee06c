/*
 * matrix.go, part of pysic.
 *
 * Adapted from gochem's v3.Matrix (v3/gonum.go): an Nx3 block of row
 * vectors backed by gonum/mat, used here for the supercell's three
 * lattice vectors and their inverse. goChem's Matrix additionally
 * supports arbitrary-N molecular coordinate blocks; this package only
 * needs the fixed 3x3 case, so the type is pared down accordingly.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package geom

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a 3x3 block of row vectors, used for the supercell's lattice
// vectors (and their inverse). Built on gonum/mat the way gochem's v3
// package builds its Nx3 Matrix on mat64/mat.
type Matrix struct {
	*mat.Dense
}

// NewMatrix builds a 3x3 Matrix from nine row-major values (three rows
// of three).
func NewMatrix(data [9]float64) *Matrix {
	return &Matrix{mat.NewDense(3, 3, data[:])}
}

// Zeros3 returns a 3x3 Matrix of zeros.
func Zeros3() *Matrix {
	return &Matrix{mat.NewDense(3, 3, make([]float64, 9))}
}

// Row returns row i as a Vec3.
func (M *Matrix) Row(i int) Vec3 {
	return Vec3{M.At(i, 0), M.At(i, 1), M.At(i, 2)}
}

// SetRow sets row i to v.
func (M *Matrix) SetRow(i int, v Vec3) {
	M.Set(i, 0, v[0])
	M.Set(i, 1, v[1])
	M.Set(i, 2, v[2])
}

// Inverse returns the matrix inverse, or an error if the matrix is
// singular (a degenerate cell).
func (M *Matrix) Inverse() (*Matrix, error) {
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(M.Dense); err != nil {
		return nil, fmt.Errorf("geom: singular cell matrix: %w", err)
	}
	return &Matrix{inv}, nil
}

// RowVecMul returns v*M, treating v as a row vector multiplying M from
// the left: out[j] = sum_i v[i]*M[i][j]. Used to convert fractional
// (lattice-relative) coordinates to absolute ones via the cell matrix
// (whose rows are the lattice vectors), and back via its inverse.
func (M *Matrix) RowVecMul(v Vec3) Vec3 {
	var out Vec3
	for j := 0; j < 3; j++ {
		out[j] = v[0]*M.At(0, j) + v[1]*M.At(1, j) + v[2]*M.At(2, j)
	}
	return out
}
