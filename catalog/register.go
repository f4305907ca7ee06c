/*
 * register.go, part of pysic/catalog.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package catalog

import "github.com/bobot51/pysic"

// Tags used to register and reference catalog forms.
const (
	TagConstant     = "constant"
	TagLennardJones = "lennard_jones"
	TagBondBending  = "bond_bending"
	TagDihedral     = "dihedral"
	TagCoordination = "neighbors"
	TagCScale       = "c_scale"
)

// Register installs every form this package implements, plus the
// cosine-taper smoothening, into state -- the one hook by which the
// closed catalog of functional forms (spec.md's Out-of-scope boundary)
// reaches a *pysic.CoreState.
func Register(state *pysic.CoreState) {
	state.RegisterPotentialForm(TagConstant, Constant{})
	state.RegisterPotentialForm(TagLennardJones, LennardJones{})
	state.RegisterPotentialForm(TagBondBending, BondBending{})
	state.RegisterPotentialForm(TagDihedral, Dihedral{})

	state.RegisterBOFForm(TagCoordination, Coordination{})

	state.RegisterPostProcessor(TagCScale, CScale{})

	state.SetSmoothening(CosineTaper{})
}
