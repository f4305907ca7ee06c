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

// Package geom provides the cell geometry primitives the interaction
// engine treats as external collaborators: lattice vectors and their
// inverse, minimum-image separation under periodic boundaries, coordinate
// wrapping, and the subcell-splitting arithmetic used to size a spatial
// partition to a cutoff.
package geom
