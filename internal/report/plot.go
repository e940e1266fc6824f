// Package report renders fitness curves of finished runs.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"bitga/internal/experiment"
)

// FitnessCurve saves a PNG of mean and best fitness per generation of res.
func FitnessCurve(path string, res experiment.Result) error {
	if len(res.History) == 0 {
		return errors.New("run has no history")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Run %d (seed %d)", res.Run, res.Seed)
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	meanPts := make(plotter.XYs, len(res.History))
	bestPts := make(plotter.XYs, len(res.History))
	for i, snap := range res.History {
		meanPts[i].X = float64(snap.Generation)
		meanPts[i].Y = snap.MeanFitness
		bestPts[i].X = float64(snap.Generation)
		bestPts[i].Y = snap.BestFitness
	}

	meanLine, err := plotter.NewLine(meanPts)
	if err != nil {
		return err
	}
	bestLine, err := plotter.NewLine(bestPts)
	if err != nil {
		return err
	}
	bestLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(plotter.NewGrid(), meanLine, bestLine)
	p.Legend.Add("mean", meanLine)
	p.Legend.Add("best", bestLine)
	p.Legend.Top = false

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
