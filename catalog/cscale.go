/*
 * cscale.go, part of pysic/catalog.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package catalog

import (
	"math"

	"github.com/bobot51/pysic/geom"
)

// CScale is the "c_scale" post-processor: b = eps*deltaN/(1+exp(gamma*
// deltaN)) with deltaN = sum - targetN, params = [eps, targetN, C,
// gamma]. C is carried through unused by this reduced form (spec.md 8's
// S4 literally specifies the formula without it) but kept in the
// parameter vector so records from a richer caller still parse.
type CScale struct{}

func cscaleDeltaN(sum float64, params []float64) (eps, deltaN, gamma float64) {
	eps, targetN, gamma := params[0], params[1], params[3]
	return eps, sum - targetN, gamma
}

func (CScale) PostProcessFactor(sum float64, params []float64) (float64, error) {
	eps, deltaN, gamma := cscaleDeltaN(sum, params)
	return eps * deltaN / (1 + math.Exp(gamma*deltaN)), nil
}

func (CScale) PostProcessGradient(sum float64, sumGradient geom.Vec3, params []float64) (geom.Vec3, error) {
	eps, deltaN, gamma := cscaleDeltaN(sum, params)
	denom := 1 + math.Exp(gamma*deltaN)
	// d/dsum [eps*deltaN/(1+exp(gamma*deltaN))], deltaN = sum - targetN
	// so d(deltaN)/d(sum) = 1.
	dfdsum := eps * (1/denom - deltaN*gamma*math.Exp(gamma*deltaN)/(denom*denom))
	return sumGradient.Scale(dfdsum), nil
}
