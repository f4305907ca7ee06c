/*
 * main.go, part of pysicdump.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

// Command pysicdump assembles a small cubic lattice of alternating
// +1/-1 ions bound by a Lennard-Jones short-range potential plus an
// optional Ewald long-range term, evaluates energy, forces and
// electronegativities once, and prints the result -- a smoke-test
// harness for the engine, in the spirit of rmera-ree's flag-driven
// single-purpose main.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/bobot51/pysic"
	"github.com/bobot51/pysic/catalog"
	"github.com/bobot51/pysic/ewald"
	"github.com/bobot51/pysic/geom"
)

func fatal(err error, info string) {
	if err != nil {
		log.Fatalf("%s: %v", info, err)
	}
}

func main() {
	n := flag.Int("n", 2, "ions per edge of the cubic lattice (n^3 atoms total)")
	spacing := flag.Float64("spacing", 1.5, "lattice spacing between neighboring ions")
	cutoff := flag.Float64("cutoff", 5.0, "hard cutoff for the short-range Lennard-Jones term")
	soft := flag.Float64("soft", 4.0, "soft cutoff where the smoothening taper begins")
	ranks := flag.Int("ranks", 1, "number of parallel reducer ranks")
	deterministic := flag.Bool("deterministic", false, "use Kahan-compensated reduction across ranks")
	withEwald := flag.Bool("ewald", true, "add the long-range Ewald term")
	dumpDir := flag.String("dump", "", "directory for the per-step debug dump; empty disables it")
	timingPlot := flag.String("timing-plot", "", "path to save a plot of reduceLoop's per-step wall-clock timings; empty disables it")
	flag.Parse()

	cs := pysic.NewCoreState(*ranks)
	cs.DeterministicReduce = *deterministic
	catalog.Register(cs)

	edge := float64(*n) * *spacing
	err := cs.CreateCell(geom.Vec3{edge, 0, 0}, geom.Vec3{0, edge, 0}, geom.Vec3{0, 0, edge}, [3]bool{true, true, true})
	fatal(err, "create_cell")

	natoms := *n * *n * *n
	elements := make([]string, natoms)
	tags := make([]int, natoms)
	masses := make([]float64, natoms)
	positions := make([]geom.Vec3, natoms)
	charges := make([]float64, natoms)
	idx := 0
	for x := 0; x < *n; x++ {
		for y := 0; y < *n; y++ {
			for z := 0; z < *n; z++ {
				sign := 1.0
				if (x+y+z)%2 == 1 {
					sign = -1.0
				}
				if sign > 0 {
					elements[idx] = "Na"
				} else {
					elements[idx] = "Cl"
				}
				tags[idx] = 0
				masses[idx] = 22.99
				positions[idx] = geom.Vec3{float64(x) * *spacing, float64(y) * *spacing, float64(z) * *spacing}
				charges[idx] = sign
				idx++
			}
		}
	}
	cs.GenerateAtoms(elements, tags, masses)
	fatal(cs.UpdateCoordinates(positions), "update_coordinates")
	fatal(cs.UpdateCharges(charges), "update_charges")

	fatal(cs.CreateSpacePartitioning(*cutoff), "create_space_partitioning")
	cutoffs := make([]float64, natoms)
	for i := range cutoffs {
		cutoffs[i] = *cutoff
	}
	fatal(cs.BuildNeighborLists(cutoffs), "build_neighbor_lists")

	cs.Potentials.AllocatePotentials(1)
	_, err = cs.Potentials.AddPotential(
		catalog.TagLennardJones,
		[]pysic.TargetFilter{{}, {}},
		[]float64{1.0, 1.0},
		*cutoff, *soft, 0, false,
	)
	fatal(err, "add_potential")
	cs.AssignPotentialIndices()
	cs.AssignBondOrderFactorIndices()

	if *withEwald {
		scaler := make([]float64, natoms)
		for i := range scaler {
			scaler[i] = 1.0
		}
		cs.SetEwaldParameters(ewald.DirectKernel{}, *cutoff, [3]int{5, 5, 5}, 1.0, 1.0, scaler)
	}

	if *dumpDir != "" {
		cs.DumpEnabled = true
		cs.DumpDir = *dumpDir
	}

	energy, err := cs.CalculateEnergy()
	fatal(err, "calculate_energy")
	forces, stress, err := cs.CalculateForces()
	fatal(err, "calculate_forces")
	chi, err := cs.CalculateElectronegativities()
	fatal(err, "calculate_electronegativities")

	fmt.Printf("atoms: %d\n", natoms)
	fmt.Printf("energy: %.6f\n", energy)
	fmt.Printf("stress (voigt): %v\n", stress)
	for i, f := range forces {
		fmt.Printf("atom %3d  force %v  chi %.6f\n", i+1, f, chi[i])
	}

	if *timingPlot != "" {
		fatal(catalog.DumpTimingPlot(&cs.Stats, *timingPlot), "dump_timing_plot")
	}
}
