package sample

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveQualityPlot writes the per-cycle mean quality of both mates as a
// line plot. The output format follows the file extension (.png, .pdf,
// .svg).
func (q QC) SaveQualityPlot(file string) error {
	pl := plot.New()
	pl.Title.Text = "Mean base quality per cycle"
	pl.X.Label.Text = "Cycle"
	pl.Y.Label.Text = "Phred quality"
	pl.Y.Min = 0

	fwd, err := plotter.NewLine(cyclePoints(q.CycleMeanFwd))
	if err != nil {
		return errors.Wrap(err, "plotting forward qualities")
	}
	fwd.LineStyle.Color = color.RGBA{B: 200, A: 255}

	rev, err := plotter.NewLine(cyclePoints(q.CycleMeanRev))
	if err != nil {
		return errors.Wrap(err, "plotting reverse qualities")
	}
	rev.LineStyle.Color = color.RGBA{R: 200, A: 255}

	pl.Add(fwd, rev)
	pl.Legend.Add("R1", fwd)
	pl.Legend.Add("R2", rev)

	if err = pl.Save(18*vg.Centimeter, 9*vg.Centimeter, file); err != nil {
		return errors.Wrapf(err, "saving quality plot %s", file)
	}
	return nil
}

func cyclePoints(means []float64) plotter.XYs {
	pts := make(plotter.XYs, len(means))
	for i := range means {
		pts[i].X = float64(i + 1)
		pts[i].Y = means[i]
	}
	return pts
}
