package report

import (
	gomath "math"

	"github.com/ericlagergren/decimal"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/dora-network/series-convergence/analysis"
	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/estimate"
	"github.com/dora-network/series-convergence/math"
)

var logContext = decimal.Context{Precision: 34, RoundingMode: decimal.ToNearestEven}

func log10(x *decimal.Big) (float64, error) {
	ln, err := math.Ln(logContext, x)
	if err != nil {
		return 0, err
	}
	return ln / gomath.Ln10, nil
}

// PlotLogLog saves a chart of log10 δ(n) against log10 n to path; the image format follows
// the extension (.png, .svg, .pdf). With a bound, the line log10 C - p·log10 n is drawn too.
// Axes are in log10 units so residuals below the float64 range still plot.
func PlotLogLog(path string, results []analysis.Result, bound *estimate.Bound) error {
	if len(results) == 0 {
		return errors.ErrNoSamples
	}

	pts := make(plotter.XYs, 0, len(results))
	for _, r := range results {
		y, err := log10(r.Residual)
		if err != nil {
			return errors.AtSample(r.N, "plot", err)
		}
		pts = append(pts, plotter.XY{X: gomath.Log10(float64(r.N)), Y: y})
	}

	p := plot.New()
	p.Title.Text = "residual"
	p.X.Label.Text = "log10 n"
	p.Y.Label.Text = "log10 δ(n)"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(errors.InternalError, err, "residual points")
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(errors.InternalError, err, "residual line")
	}
	p.Add(scatter, line)
	p.Legend.Add("δ(n)", line, scatter)

	if bound != nil && bound.C != nil {
		c, err := log10(bound.C)
		if err != nil {
			return errors.Wrap(errors.InvalidArgumentError, err, "bound constant")
		}
		edge := plotter.XYs{
			{X: pts[0].X, Y: c - bound.P*pts[0].X},
			{X: pts[len(pts)-1].X, Y: c - bound.P*pts[len(pts)-1].X},
		}
		bl, err := plotter.NewLine(edge)
		if err != nil {
			return errors.Wrap(errors.InternalError, err, "bound line")
		}
		bl.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(bl)
		p.Legend.Add("C/n^p", bl)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(errors.InternalError, err, "save plot "+path)
	}
	return nil
}
