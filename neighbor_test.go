package pysic

import (
	"testing"

	"github.com/bobot51/pysic/geom"
)

func cubicCell(t *testing.T, edge float64, periodic [3]bool) *geom.Cell {
	t.Helper()
	cell, err := geom.NewCell(geom.Vec3{edge, 0, 0}, geom.Vec3{0, edge, 0}, geom.Vec3{0, 0, edge}, periodic)
	if err != nil {
		t.Fatalf("cubicCell: %v", err)
	}
	return cell
}

func TestBuildNeighborListsSymmetric(t *testing.T) {
	cell := cubicCell(t, 10, [3]bool{true, true, true})
	a := NewAtom(1, "Si", 0, 28.0)
	a.Position = geom.Vec3{0, 0, 0}
	b := NewAtom(2, "Si", 0, 28.0)
	b.Position = geom.Vec3{2, 0, 0}
	atoms := []*Atom{a, b}
	cutoffs := []float64{3.0, 3.0}

	if err := BuildNeighborLists(atoms, cell, 3.0, cutoffs); err != nil {
		t.Fatalf("BuildNeighborLists: %v", err)
	}

	found := false
	for _, n := range a.Neighbors {
		if n.Neighbor == b.Index {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected atom 1 to see atom 2 as a neighbor")
	}
	found = false
	for _, n := range b.Neighbors {
		if n.Neighbor == a.Index {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected atom 2 to see atom 1 as a neighbor")
	}
}

func TestBuildNeighborListsOutsideCutoffExcluded(t *testing.T) {
	cell := cubicCell(t, 20, [3]bool{true, true, true})
	a := NewAtom(1, "O", 0, 16.0)
	a.Position = geom.Vec3{0, 0, 0}
	b := NewAtom(2, "O", 0, 16.0)
	b.Position = geom.Vec3{8, 0, 0}
	atoms := []*Atom{a, b}
	cutoffs := []float64{2.0, 2.0}

	if err := BuildNeighborLists(atoms, cell, 2.0, cutoffs); err != nil {
		t.Fatalf("BuildNeighborLists: %v", err)
	}
	if len(a.Neighbors) != 0 {
		t.Fatalf("expected no neighbors within cutoff, got %v", a.Neighbors)
	}
}

func TestPickCanonicalPair(t *testing.T) {
	if !pick(1, 2, geom.IntTriple{}) {
		t.Fatalf("expected (1,2,0) to be canonical")
	}
	if pick(2, 1, geom.IntTriple{}) {
		t.Fatalf("expected (2,1,0) not to be canonical")
	}
	if !pick(3, 3, geom.IntTriple{1, 0, 0}) {
		t.Fatalf("expected self-image with positive offset to be canonical")
	}
	if pick(3, 3, geom.IntTriple{-1, 0, 0}) {
		t.Fatalf("expected self-image with negative offset not to be canonical")
	}
}
