/*
 * constant.go, part of pysic/catalog.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package catalog

import (
	"github.com/bobot51/pysic"
	"github.com/bobot51/pysic/geom"
)

// Constant is the simplest 1-body potential: a flat per-atom energy
// offset, params = [value]. Used by spec.md 8's S1 scenario.
type Constant struct{}

func (Constant) EvaluateEnergy(t pysic.Tuple, params []float64) (float64, error) {
	return params[0], nil
}

func (Constant) EvaluateForces(t pysic.Tuple, params []float64) ([]geom.Vec3, error) {
	return []geom.Vec3{{}}, nil
}

func (Constant) EvaluateElectronegativity(t pysic.Tuple, params []float64) ([]float64, error) {
	return []float64{0}, nil
}
