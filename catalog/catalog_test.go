/*
 * catalog_test.go, part of pysic/catalog.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package catalog

import (
	"math"
	"testing"

	"github.com/bobot51/pysic"
	"github.com/bobot51/pysic/geom"
)

func sep(a, b geom.Vec3) geom.Vec3 { return b.Sub(a) }

// S2, spec.md 8: Lennard-Jones dimer at r=sigma has zero energy.
func TestLennardJonesZeroAtSigma(t *testing.T) {
	tup := pysic.Tuple{
		Atoms:       []*pysic.Atom{pysic.NewAtom(1, "X", 0, 1), pysic.NewAtom(2, "X", 0, 1)},
		CenterSlot:  0,
		Separations: []geom.Vec3{{1, 0, 0}},
		Distances:   []float64{1},
	}
	e, err := LennardJones{}.EvaluateEnergy(tup, []float64{1.0, 1.0})
	if err != nil {
		t.Fatalf("evaluate_energy: %v", err)
	}
	if math.Abs(e) > 1e-12 {
		t.Fatalf("energy = %v, want 0", e)
	}
}

// S3, spec.md 8: bond-bending trimer (0,0,0)-(1,0,0)-(1,1,0), center
// atom 2, theta0=pi/2 -- theta is exactly pi/2 here, so energy is 0
// and (unlike S2) the force on every atom is genuinely zero too, since
// the potential sits exactly at its minimum.
func TestBondBendingRightAngle(t *testing.T) {
	center := geom.Vec3{1, 0, 0}
	a, b := geom.Vec3{0, 0, 0}, geom.Vec3{1, 1, 0}
	tup := pysic.Tuple{
		Atoms:       []*pysic.Atom{pysic.NewAtom(1, "X", 0, 1), pysic.NewAtom(2, "X", 0, 1), pysic.NewAtom(3, "X", 0, 1)},
		CenterSlot:  1,
		Separations: []geom.Vec3{sep(center, a), sep(center, b)},
		Distances:   []float64{1, 1},
	}
	params := []float64{1.0, math.Pi / 2}
	e, err := BondBending{}.EvaluateEnergy(tup, params)
	if err != nil {
		t.Fatalf("evaluate_energy: %v", err)
	}
	if math.Abs(e) > 1e-12 {
		t.Fatalf("energy = %v, want 0", e)
	}
	forces, err := BondBending{}.EvaluateForces(tup, params)
	if err != nil {
		t.Fatalf("evaluate_forces: %v", err)
	}
	for i, f := range forces {
		if f.Norm() > 1e-10 {
			t.Fatalf("force[%d] = %v, want zero", i, f)
		}
	}
}

// S5, spec.md 8: planar all-trans dihedral chain, phi=pi, theta0=0,
// k=1 gives energy 0.5*(cos(pi)-1)^2 = 2.0.
func TestDihedralTransChain(t *testing.T) {
	a0 := geom.Vec3{0, 0, 0}
	a1 := geom.Vec3{1, 0, 0}
	a2 := geom.Vec3{1, 1, 0}
	a3 := geom.Vec3{2, 1, 0}
	tup := pysic.Tuple{
		Atoms:      []*pysic.Atom{pysic.NewAtom(1, "X", 0, 1), pysic.NewAtom(2, "X", 0, 1), pysic.NewAtom(3, "X", 0, 1), pysic.NewAtom(4, "X", 0, 1)},
		CenterSlot: 0,
		Separations: []geom.Vec3{
			sep(a0, a1),
			sep(a0, a2),
			sep(a0, a3),
		},
		Distances: []float64{1, math.Sqrt2, math.Sqrt(5)},
	}
	params := []float64{1.0, 0.0}
	e, err := Dihedral{}.EvaluateEnergy(tup, params)
	if err != nil {
		t.Fatalf("evaluate_energy: %v", err)
	}
	want := 0.5 * math.Pow(math.Cos(math.Pi)-1, 2)
	if math.Abs(e-want) > 1e-9 {
		t.Fatalf("energy = %v, want %v", e, want)
	}

	forces, err := Dihedral{}.EvaluateForces(tup, params)
	if err != nil {
		t.Fatalf("evaluate_forces: %v", err)
	}
	var total geom.Vec3
	for _, f := range forces {
		total = total.Add(f)
	}
	if total.Norm() > 1e-8 {
		t.Fatalf("net force %v, want zero", total)
	}
}

// S4, spec.md 8: a Cu atom coordinated by 4 O neighbors at unit
// distance, BOF "neighbors" cutoff 1.5 margin 0.5 (so every neighbor
// contributes a full 1.0), target coordination N=4 -- deltaN=0 means
// the c_scale post-processed factor (and its gradient) must vanish.
func TestCoordinationAndCScaleAtTarget(t *testing.T) {
	f, df := coordinationTaper(1.0, 1.5, 0.5)
	if f != 1 || df != 0 {
		t.Fatalf("taper(1.0) = (%v,%v), want (1,0) -- inside the cutoff-margin plateau", f, df)
	}

	sum := 4.0 // four neighbors, each contributing exactly 1
	params := []float64{1.0, 4.0, 1.0, 1.0}
	b, err := CScale{}.PostProcessFactor(sum, params)
	if err != nil {
		t.Fatalf("post_process_factor: %v", err)
	}
	if math.Abs(b) > 1e-12 {
		t.Fatalf("b = %v, want 0 at deltaN=0", b)
	}

	grad, err := CScale{}.PostProcessGradient(sum, geom.Vec3{1, 0, 0}, params)
	if err != nil {
		t.Fatalf("post_process_gradient: %v", err)
	}
	// At deltaN=0, dfdsum = eps*(1/2 - 0) = eps/2, not zero -- the
	// factor's *value* vanishes at the target coordination but its
	// slope does not, so this only checks the gradient is finite and
	// points along sumGradient.
	if math.IsNaN(grad[0]) || math.IsInf(grad[0], 0) {
		t.Fatalf("gradient = %v, want finite", grad)
	}
}

// S4 end to end, spec.md 8: a Cu atom at the origin with 4 O neighbors
// at unit distance along +-x, +-y. The "neighbors" BOF (cutoff 1.5,
// margin 0.5) sums to exactly 4, "c_scale" post-processes that to
// deltaN=0 against a target coordination of 4, and a group-modulated
// constant 1-body potential on Cu is scaled by the resulting factor --
// so both the energy and the force correction term it drives through
// CoreState.FactorGradient must vanish, exercising the whole
// AddBondOrderFactor/AssignBondOrderFactorIndices/FillBondOrderStorage
// pipeline (bofcache.go, bof_fill.go, bof_gradient.go) rather than the
// catalog forms in isolation.
func TestCoordinationScaledConstantEndToEnd(t *testing.T) {
	cs := pysic.NewCoreState(1)
	Register(cs)

	if err := cs.CreateCell(geom.Vec3{10, 0, 0}, geom.Vec3{0, 10, 0}, geom.Vec3{0, 0, 10}, [3]bool{false, false, false}); err != nil {
		t.Fatalf("create_cell: %v", err)
	}
	cs.GenerateAtoms(
		[]string{"Cu", "O", "O", "O", "O"},
		[]int{0, 0, 0, 0, 0},
		[]float64{63.5, 16, 16, 16, 16},
	)
	if err := cs.UpdateCoordinates([]geom.Vec3{
		{0, 0, 0},
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
	}); err != nil {
		t.Fatalf("update_coordinates: %v", err)
	}

	const group = 1
	cs.BOFs.AllocateBondOrderFactors(2)
	if _, err := cs.BOFs.AddBondOrderFactor(
		TagCoordination,
		[]pysic.TargetFilter{{Elements: []string{"Cu"}}, {Elements: []string{"O"}}},
		pysic.BOFParams{TwoBody: []float64{1.5, 0.5}},
		1.5, 0, group, false, nil,
	); err != nil {
		t.Fatalf("add_bond_order_factor (neighbors): %v", err)
	}
	if _, err := cs.BOFs.AddBondOrderFactor(
		TagCScale,
		[]pysic.TargetFilter{{Elements: []string{"Cu"}}},
		pysic.BOFParams{},
		1.0, 0, group, true, []float64{1.0, 4.0, 1.0, 1.0},
	); err != nil {
		t.Fatalf("add_bond_order_factor (c_scale): %v", err)
	}

	cs.Potentials.AllocatePotentials(1)
	if _, err := cs.Potentials.AddPotential(
		TagConstant,
		[]pysic.TargetFilter{{Elements: []string{"Cu"}}},
		[]float64{1.0}, 1.0, 0, group, true,
	); err != nil {
		t.Fatalf("add_potential: %v", err)
	}

	cs.AssignPotentialIndices()
	cs.AssignBondOrderFactorIndices()

	// Only Cu's neighbor list is populated: canonical pairs are picked
	// by atom-index order (pick in neighbor.go), so walking Cu (index
	// 1) against its four higher-indexed O neighbors already yields
	// every (Cu, O) pair exactly once without needing the O atoms to
	// list Cu back.
	if err := cs.CreateNeighborList(1, []int{2, 3, 4, 5}, []geom.IntTriple{{}, {}, {}, {}}); err != nil {
		t.Fatalf("create_neighbor_list: %v", err)
	}

	if err := cs.AllocateBondOrderStorage(5, 1, 4); err != nil {
		t.Fatalf("allocate_bond_order_storage: %v", err)
	}
	if err := cs.FillBondOrderStorage(); err != nil {
		t.Fatalf("fill_bond_order_storage: %v", err)
	}

	e, err := cs.CalculateEnergy()
	if err != nil {
		t.Fatalf("calculate_energy: %v", err)
	}
	if math.Abs(e) > 1e-9 {
		t.Fatalf("energy = %v, want 0 at deltaN=0", e)
	}

	forces, stress, err := cs.CalculateForces()
	if err != nil {
		t.Fatalf("calculate_forces: %v", err)
	}
	for i, f := range forces {
		if f.Norm() > 1e-9 {
			t.Fatalf("force[%d] = %v, want zero (v=1 scaled by a vanishing factor)", i, f)
		}
	}
	for i, s := range stress {
		if math.Abs(s) > 1e-9 {
			t.Fatalf("stress[%d] = %v, want zero", i, s)
		}
	}
}
