/*
 * coordination.go, part of pysic/catalog.
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

// Coordination is the "neighbors" bond order factor: a per-pair
// coordination-counting contribution, 1 inside cutoff-margin, 0
// beyond cutoff, cosine-tapered in between. params = [cutoff, margin],
// per spec.md 8's S4 scenario ("BOF neighbors with cutoff 1.5, margin
// 0.5"). Both atoms of the pair get the same contribution added to
// their raw sum.
type Coordination struct{}

func coordinationTaper(r, cutoff, margin float64) (f, df float64) {
	inner := cutoff - margin
	switch {
	case r <= inner:
		return 1, 0
	case r >= cutoff:
		return 0, 0
	default:
		x := math.Pi * (r - inner) / margin
		f = 0.5 * (1 + math.Cos(x))
		df = -0.5 * math.Pi / margin * math.Sin(x)
		return f, df
	}
}

func (Coordination) EvaluateBondOrderFactor(t pysic.Tuple, params []float64) ([]float64, error) {
	f, _ := coordinationTaper(t.Distances[0], params[0], params[1])
	return []float64{f, f}, nil
}

// EvaluateBondOrderGradient returns d(S_center)/dr for the atom at
// centerSlot in {0,1} and its pair partner, plus the Voigt virial of
// that gradient contribution.
func (Coordination) EvaluateBondOrderGradient(t pysic.Tuple, params []float64, centerSlot int) ([]geom.Vec3, geom.Voigt, error) {
	r := t.Distances[0]
	_, df := coordinationTaper(r, params[0], params[1])
	direction := t.Separations[0].Unit()

	// t.Atoms[0]-t.Atoms[1] separation points from atom 0 to atom 1
	// (pysic/loop.go's canonical-pair tuple convention); the gradient
	// of the sum w.r.t. atom 1 is df*direction, w.r.t. atom 0 is its
	// negation, regardless of which one is the differentiated center.
	g1 := direction.Scale(df)
	g0 := g1.Scale(-1)

	var virial geom.Voigt
	// Only the center's own force-conjugate pair contributes a virial
	// term here; the caller (pysic's rawSumGradient) sums this across
	// every tuple touching the center, matching spec.md 4.4's "tuple's
	// contribution to the Voigt virial of that gradient".
	if centerSlot == 0 {
		virial.AddOuter(t.Separations[0], g1)
	} else {
		virial.AddOuter(t.Separations[0].Scale(-1), g0)
	}
	return []geom.Vec3{g0, g1}, virial, nil
}
