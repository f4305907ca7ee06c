/*
 * dump.go, part of pysic.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package pysic

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/zstd"

	"github.com/bobot51/pysic/geom"
)

// NeighborRecord is one entry of a DumpRecord's sorted neighbor list.
type NeighborRecord struct {
	Index    int
	Distance float64
}

// DumpRecord is SPEC_FULL.md 6's debug-dump record: one per atom,
// holding enough to human-inspect a single evaluation step without
// re-running it.
type DumpRecord struct {
	Index     int
	Element   string
	Position  geom.Vec3
	Force     geom.Vec3
	Neighbors []NeighborRecord
}

// writeDebugDump implements SPEC_FULL.md 4.8: a best-effort,
// non-fatal debug artifact written once per evaluation step when
// CoreState.DumpEnabled is set. Grounded on gochem traj/stf.NewWriter:
// same header map[string]string + zstd.NewWriter convention, applied
// to a flat per-atom record instead of a trajectory frame.
func (cs *CoreState) writeDebugDump(acc *accumulator) {
	cs.dumpStep++
	dir := cs.DumpDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, fmt.Sprintf("dump_%d_%d.txt", 0, cs.dumpStep))

	f, err := os.Create(path)
	if err != nil {
		log.Printf("pysic: debug dump: %v", err)
		return
	}
	defer f.Close()

	w, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		log.Printf("pysic: debug dump: %v", err)
		return
	}
	defer w.Close()

	header := map[string]string{"natoms": fmt.Sprintf("%d", len(cs.Atoms)), "step": fmt.Sprintf("%d", cs.dumpStep)}
	for k, v := range header {
		fmt.Fprintf(w, "%s=%s\n", k, v)
	}

	for _, a := range cs.Atoms {
		rec := cs.dumpRecordFor(a, acc)
		fmt.Fprintf(w, "atom %d %s %g %g %g %g %g %g\n",
			rec.Index, rec.Element,
			rec.Position[0], rec.Position[1], rec.Position[2],
			rec.Force[0], rec.Force[1], rec.Force[2])
		for _, n := range rec.Neighbors {
			fmt.Fprintf(w, "  neighbor %d %g\n", n.Index, n.Distance)
		}
	}
}

func (cs *CoreState) dumpRecordFor(a *Atom, acc *accumulator) DumpRecord {
	rec := DumpRecord{Index: a.Index, Element: a.Element, Position: a.Position}
	if acc != nil && acc.forces != nil {
		rec.Force = acc.forces[a.Index-1]
	}
	for _, n := range a.Neighbors {
		j := cs.atomByIndex(n.Neighbor)
		if j == nil {
			continue
		}
		sep := cs.Cell.SeparationVector(a.Position, j.Position, n.Offset)
		rec.Neighbors = append(rec.Neighbors, NeighborRecord{Index: j.Index, Distance: sep.Norm()})
	}
	sort.Slice(rec.Neighbors, func(i, k int) bool { return rec.Neighbors[i].Distance < rec.Neighbors[k].Distance })
	return rec
}
