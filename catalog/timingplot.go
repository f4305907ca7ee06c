/*
 * timingplot.go, part of pysic/catalog.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 */

package catalog

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/bobot51/pysic"
)

// DumpTimingPlot renders the wall-clock series a parallel reducer
// collects into ReduceStats (SPEC_FULL.md 4.9), in the idiom of
// gochem chemplot's RamaPlotParts: a titled, labeled plot.Plot with
// one line series, saved to path.
func DumpTimingPlot(stats *pysic.ReduceStats, path string) error {
	p := plot.New()
	p.Title.Text = "pysic step timings"
	p.X.Label.Text = "step"
	p.Y.Label.Text = "wall-clock (ms)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(stats.StepDurations))
	for i, d := range stats.StepDurations {
		pts[i].X = float64(i + 1)
		pts[i].Y = float64(d.Microseconds()) / 1000.0
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	p.Add(line, points)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
