/*
 * cell_test.go, part of pysic.
 */

package geom

import (
	"math"
	"testing"
)

func TestCellWrapping(Te *testing.T) {
	c, err := NewCell(Vec3{10, 0, 0}, Vec3{0, 10, 0}, Vec3{0, 0, 10}, [3]bool{true, true, true})
	if err != nil {
		Te.Fatal(err)
	}
	wrapped, off := c.WrappedCoordinates(Vec3{12, -3, 5})
	want := Vec3{2, 7, 5}
	for i := range want {
		if math.Abs(wrapped[i]-want[i]) > 1e-9 {
			Te.Errorf("wrapped[%d] = %v, want %v", i, wrapped[i], want[i])
		}
	}
	wantOff := IntTriple{1, -1, 0}
	if off != wantOff {
		Te.Errorf("offset = %v, want %v", off, wantOff)
	}
}

func TestSeparationVectorMinimumImage(Te *testing.T) {
	c, err := NewCell(Vec3{10, 0, 0}, Vec3{0, 10, 0}, Vec3{0, 0, 10}, [3]bool{true, true, true})
	if err != nil {
		Te.Fatal(err)
	}
	a := Vec3{0.5, 0, 0}
	b := Vec3{9.5, 0, 0}
	// Direct separation is 9, but under minimum image with offset -1 on x
	// it should come back as -1 (b is really "behind" a by one unit).
	sep := c.SeparationVector(a, b, IntTriple{-1, 0, 0})
	if math.Abs(sep[0]-(-1)) > 1e-9 {
		Te.Errorf("sep.x = %v, want -1", sep[0])
	}
}

func TestOptimalSplittingNonPeriodicAxis(Te *testing.T) {
	c, err := NewCell(Vec3{10, 0, 0}, Vec3{0, 10, 0}, Vec3{0, 0, 10}, [3]bool{true, true, false})
	if err != nil {
		Te.Fatal(err)
	}
	split := c.OptimalSplitting(3.0)
	if split[2] != 1 {
		Te.Errorf("non-periodic axis should force a single subcell, got %d", split[2])
	}
	if split[0] < 1 || split[1] < 1 {
		Te.Errorf("periodic axes should split into at least one subcell, got %v", split)
	}
}
