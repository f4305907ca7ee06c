/*
 * doc.go, part of pysic/catalog.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

// Package catalog is the closed catalog of concrete functional forms
// (spec.md's Out-of-scope boundary: the core evaluates forms by tag,
// never implements their math). Register wires every form this
// package knows about, plus the single smoothening implementation,
// into a *pysic.CoreState.
package catalog
