/*
 * doc.go, part of pysic/ewald.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

// Package ewald implements pysic.EwaldKernel as a direct (brute-force,
// no neighbor-list reuse) Ewald summation over Gaussian-smeared point
// charges: a real-space erfc-screened Coulomb sum, a reciprocal-space
// structure-factor sum, and the per-atom self-energy correction,
// following the standard Allen & Tildesley / Frenkel & Smit split
// (SPEC_FULL.md 4.6). It is the single external long-range collaborator
// pysic.CoreState calls through the pysic.EwaldKernel interface.
package ewald
