/*
 * interfaces.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

import "github.com/bobot51/pysic/geom"

// Tuple describes an n-body interacting group (n in 1..4) exactly as
// the interaction loop assembles it: the atoms themselves, in the
// target-filter order named by spec.md 4.3/4.5 (e.g. a bond-bending
// triplet (j, i, k) keeps that literal order, so OriginalTargets
// filtering against an asymmetric form still lines up position by
// position), plus CenterSlot marking which position is the "center"
// atom bonds are measured from. Separations and Distances are always
// relative to the center (spec.md 4.4: "for atom-1-centered triplets
// the two separations r_12, r_13 are both measured from the center
// outward"), one entry per non-center atom in Atoms order. External
// catalog code never constructs a Tuple itself -- the loop does, and
// passes it by value into the evaluator.
type Tuple struct {
	Atoms       []*Atom
	CenterSlot  int         // 0-based index into Atoms of the center atom
	Separations []geom.Vec3 // len == len(Atoms)-1, minimum-image, center -> each other atom in Atoms order (skipping CenterSlot)
	Distances   []float64   // len == len(Atoms)-1
}

// NBody returns the arity of the tuple (1, 2, 3 or 4).
func (t Tuple) NBody() int { return len(t.Atoms) }

// Center returns the tuple's center atom.
func (t Tuple) Center() *Atom { return t.Atoms[t.CenterSlot] }

// PotentialForm is the interface the closed catalog of potential
// functional forms (spec.md's evaluate_energy / evaluate_forces /
// evaluate_electronegativity) must implement. The core never
// implements the math of any single form; it only calls through this
// interface with a Tuple and a record's parameter vector.
type PotentialForm interface {
	// EvaluateEnergy returns the scalar energy contribution of the tuple.
	EvaluateEnergy(t Tuple, params []float64) (float64, error)
	// EvaluateForces returns one force vector per atom in the tuple, in
	// the same order as t.Atoms, and is only ever called in the force
	// path (so implementations can assume forces, not energy, are
	// wanted).
	EvaluateForces(t Tuple, params []float64) ([]geom.Vec3, error)
	// EvaluateElectronegativity returns one -dE/dq contribution per atom
	// in the tuple, in the same order as t.Atoms.
	EvaluateElectronegativity(t Tuple, params []float64) ([]float64, error)
}

// Smoothening is spec.md's smoothening_factor / smoothening_gradient
// pair: a function that decays a short-range interaction smoothly from
// 1 to 0 between a soft and a hard cutoff. A nil Smoothening (no soft
// cutoff registered) means "always 1, zero gradient", per spec.md 4.5.
type Smoothening interface {
	Factor(distance, soft, hard float64) float64
	Gradient(distance, soft, hard float64) float64
}

// BOFForm is the interface the closed catalog of bond-order-factor
// functional forms (evaluate_bond_order_factor /
// evaluate_bond_order_gradient) must implement.
type BOFForm interface {
	// EvaluateBondOrderFactor returns one raw-sum contribution per atom
	// in the tuple, in the same order as t.Atoms -- e.g. a pair term
	// returns a 2-vector added to S_i and S_j respectively (spec.md
	// 4.3).
	EvaluateBondOrderFactor(t Tuple, params []float64) ([]float64, error)
	// EvaluateBondOrderGradient returns, for the atom at position
	// centerSlot in the tuple (0-based; spec.md's slot is 1-based), the
	// gradient of that atom's raw sum with respect to a displacement of
	// every atom in the tuple, plus the tuple's contribution to the
	// Voigt virial of that gradient.
	EvaluateBondOrderGradient(t Tuple, params []float64, centerSlot int) ([]geom.Vec3, geom.Voigt, error)
}

// PostProcessor is spec.md's post_process_bond_order_factor /
// post_process_bond_order_gradient: the per-atom scaling function
// f_i(S_i) = b_i that a BOF record may optionally apply to its group's
// raw sum.
type PostProcessor interface {
	PostProcessFactor(sum float64, params []float64) (float64, error)
	PostProcessGradient(sum float64, sumGradient geom.Vec3, params []float64) (geom.Vec3, error)
}

// EwaldKernel is the single external long-range collaborator spec.md
// 4.6 describes: one call per observable over the full atom set.
type EwaldKernel interface {
	CalculateEwaldEnergy(atoms []*Atom, cell *geom.Cell, realCutoff float64, kCutoffs [3]int, sigma, epsilon0 float64, scaler []float64) (float64, error)
	CalculateEwaldForces(atoms []*Atom, cell *geom.Cell, realCutoff float64, kCutoffs [3]int, sigma, epsilon0 float64, scaler []float64) ([]geom.Vec3, geom.Voigt, error)
	CalculateEwaldElectronegativities(atoms []*Atom, cell *geom.Cell, realCutoff float64, kCutoffs [3]int, sigma, epsilon0 float64, scaler []float64) ([]float64, error)
}
