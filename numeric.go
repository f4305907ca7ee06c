/*
 * numeric.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

import "math"

// isNonFinite reports whether x is NaN or +/-Inf, per spec.md 7's
// numerical error kind: "a kernel returns non-finite".
func isNonFinite(x float64) bool { return math.IsNaN(x) || math.IsInf(x, 0) }

func checkFinite2(c []float64) error {
	for _, v := range c {
		if isNonFinite(v) {
			return newError(KindNumerical, "bond order factor kernel returned a non-finite value")
		}
	}
	if len(c) != 2 {
		return newError(KindInternal, "2-body bond order factor kernel returned %d values, want 2", len(c))
	}
	return nil
}

func checkFiniteN(c []float64) error {
	for _, v := range c {
		if isNonFinite(v) {
			return newError(KindNumerical, "bond order factor kernel returned a non-finite value")
		}
	}
	return nil
}
