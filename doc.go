/*
 * doc.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 */

// Package pysic evaluates short-range one-, two-, three- and four-body
// interatomic potentials modulated by bond-order factors, plus an
// optional Ewald long-range add-on, over a periodic (or partially
// periodic) collection of atoms. It is the evaluation engine only: the
// catalog of concrete functional forms lives in the sibling catalog
// package, and the long-range kernel in the sibling ewald package. This
// package owns the neighbor model, the bond-order factor cache, and the
// nested interaction loop that ties them together.
package pysic
