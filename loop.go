/*
 * loop.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

import "github.com/bobot51/pysic/geom"

// CalcKind selects which observable the interaction loop accumulates,
// per spec.md 4.5's "one driver with a calculation-type selector".
type CalcKind int

const (
	CalcEnergy CalcKind = iota
	CalcForces
	CalcElectronegativity
)

// accumulator carries the running totals the loop fills, and is
// shared across the outer-atom partition each rank owns (spec.md 4.7):
// one accumulator per rank, summed by the reducer afterward.
type accumulator struct {
	energy float64
	forces []geom.Vec3 // nil unless kind == CalcForces
	chi    []float64   // nil unless kind == CalcElectronegativity
	stress geom.Voigt
}

func newAccumulator(kind CalcKind, nAtoms int) *accumulator {
	a := &accumulator{}
	switch kind {
	case CalcForces:
		a.forces = make([]geom.Vec3, nAtoms)
	case CalcElectronegativity:
		a.chi = make([]float64, nAtoms)
	}
	return a
}

func (a *accumulator) addForce(atomIndex int, f geom.Vec3) {
	if a.forces != nil {
		a.forces[atomIndex-1] = a.forces[atomIndex-1].Add(f)
	}
}

func (a *accumulator) addChi(atomIndex int, c float64) {
	if a.chi != nil {
		a.chi[atomIndex-1] += c
	}
}

func (a *accumulator) merge(b *accumulator) {
	a.energy += b.energy
	for i := range a.forces {
		a.forces[i] = a.forces[i].Add(b.forces[i])
	}
	for i := range a.chi {
		a.chi[i] += b.chi[i]
	}
	a.stress.Add(b.stress)
}

// validateForEvaluation implements spec.md 7's "state" error kind:
// evaluation attempted with no atoms, no cell, or no indices assigned.
func (cs *CoreState) validateForEvaluation() error {
	if len(cs.Atoms) == 0 {
		return newError(KindState, "no atoms generated")
	}
	if cs.Cell == nil {
		return newError(KindState, "no cell created")
	}
	for _, a := range cs.Atoms {
		if a.PotentialIndices == nil && a.BOFIndices == nil && len(cs.Potentials.Records) > 0 {
			return newError(KindState, "potential/bond order factor indices not assigned")
		}
	}
	return nil
}

// CalculateEnergy is spec.md 6's calculate_energy.
func (cs *CoreState) CalculateEnergy() (float64, error) {
	acc, err := cs.runObservable(CalcEnergy)
	if err != nil {
		return 0, err
	}
	return acc.energy, nil
}

// CalculateForces is spec.md 6's calculate_forces -> (3xN forces, 6-vector stress).
func (cs *CoreState) CalculateForces() ([]geom.Vec3, geom.Voigt, error) {
	acc, err := cs.runObservable(CalcForces)
	if err != nil {
		return nil, geom.Voigt{}, err
	}
	return acc.forces, acc.stress, nil
}

// CalculateElectronegativities is spec.md 6's calculate_electronegativities -> N-vector.
func (cs *CoreState) CalculateElectronegativities() ([]float64, error) {
	acc, err := cs.runObservable(CalcElectronegativity)
	if err != nil {
		return nil, err
	}
	return acc.chi, nil
}

// runObservable implements spec.md 3's Lifecycle steps 1 and 3-6 for
// one evaluation: rebuild the neighbor lists (with the cutoffs of the
// last BuildNeighborLists call) if the geometry changed since then,
// fill the BOF cache, run the (rank-parallel) interaction loop, reduce,
// and add the Ewald contribution if enabled. The accumulation phase is
// not recoverable (spec.md 7): any failure invalidates the whole
// step's result, and once every rank has finished the error of the
// lowest-numbered failing rank is returned.
func (cs *CoreState) runObservable(kind CalcKind) (*accumulator, error) {
	if err := cs.validateForEvaluation(); err != nil {
		return nil, err
	}
	if cs.geometryDirty && cs.cutoffs != nil {
		if err := cs.BuildNeighborLists(cs.cutoffs); err != nil {
			return nil, errDecorate(err, "runObservable")
		}
	}
	if cs.Cache != nil {
		cs.Cache.EmptyStorage()
		if err := cs.FillBondOrderStorage(); err != nil {
			return nil, errDecorate(err, "runObservable")
		}
	}

	acc, err := cs.reduceLoop(kind)
	if err != nil {
		return nil, err
	}

	if cs.EwaldEnabled && cs.Ewald != nil {
		if err := cs.addEwald(kind, acc); err != nil {
			return nil, err
		}
	}

	if cs.DumpEnabled {
		cs.writeDebugDump(acc)
	}
	return acc, nil
}

// runLoopForAtoms runs the per-atom interaction loop (spec.md 4.5)
// over exactly the atoms in owned, accumulating into acc. Used both by
// the single-rank path and by each of the parallel reducer's
// goroutines (spec.md 4.7: "each rank reads all atoms/neighbors but
// accumulates only for owned atoms").
func (cs *CoreState) runLoopForAtoms(kind CalcKind, owned []*Atom, acc *accumulator) error {
	for _, i := range owned {
		if cs.Cancel != nil && cs.Cancel() {
			return newError(KindState, "calculation step cancelled")
		}
		if cs.Cache != nil {
			cs.Cache.EmptyGradientStorage(0)
		}

		if err := oneBodyContribution(cs, i, kind, acc); err != nil {
			return err
		}

		manyBodiesFound := false
		fourBodyEnabled := false
		for _, pair := range canonicalPairsOf(cs, i) {
			if cs.Cache != nil {
				cs.Cache.EmptyGradientStorage(2)
			}
			found, err := twoBodyContribution(cs, pair, kind, acc)
			if err != nil {
				return err
			}
			manyBodiesFound = manyBodiesFound || found

			if manyBodiesFound {
				enableFour, err := threeBodyContribution(cs, pair, kind, acc)
				if err != nil {
					return err
				}
				fourBodyEnabled = fourBodyEnabled || enableFour
			}
			if fourBodyEnabled {
				if err := fourBodyContribution(cs, pair, kind, acc); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
