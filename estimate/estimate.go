// Package estimate turns a residual sweep into an empirical convergence order and an upper
// bound constant C with δ(n) <= C/n^p over the sampled points.
package estimate

import (
	"strconv"

	"github.com/ericlagergren/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/dora-network/series-convergence/analysis"
	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/math"
)

// logContext is the precision logarithms are taken at before they are narrowed to float64.
var logContext = decimal.Context{Precision: 34, RoundingMode: decimal.ToNearestEven}

// Estimate is the least-squares line through (ln n, ln δ(n)).
// EstimatedExponent is the order the correction adds on top of the main series:
// -Slope - baseline.
type Estimate struct {
	Slope             float64 `json:"slope"`
	Intercept         float64 `json:"intercept"`
	EstimatedExponent float64 `json:"estimated_exponent"`
	RSquared          float64 `json:"r_squared"`
	Samples           int     `json:"samples"`
}

// EstimateConvergenceOrder fits ln δ against ln n. It needs at least two results and every
// residual must be strictly positive; a zero residual is reported, not replaced by an epsilon.
func EstimateConvergenceOrder(results []analysis.Result, baselineOrder float64) (Estimate, error) {
	if len(results) < 2 {
		return Estimate{}, errors.ErrTooFewSamples
	}

	xs := make([]float64, len(results))
	ys := make([]float64, len(results))
	for i, r := range results {
		if r.Residual == nil || !math.IsPositive(r.Residual) {
			return Estimate{}, errors.AtSample(r.N, "log fit", errors.ErrNonPositiveResidual)
		}
		lnN, err := math.Ln(logContext, math.Uint(r.N))
		if err != nil {
			return Estimate{}, errors.AtSample(r.N, "log fit", err)
		}
		lnDelta, err := math.Ln(logContext, r.Residual)
		if err != nil {
			return Estimate{}, errors.AtSample(r.N, "log fit", err)
		}
		xs[i], ys[i] = lnN, lnDelta
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if err := math.ValidFloat64(slope); err != nil {
		return Estimate{}, errors.Wrap(errors.InvalidArgumentError, err, "log-log fit is degenerate")
	}
	rSquared := stat.RSquared(xs, ys, nil, intercept, slope)

	return Estimate{
		Slope:             slope,
		Intercept:         intercept,
		EstimatedExponent: -slope - baselineOrder,
		RSquared:          rSquared,
		Samples:           len(results),
	}, nil
}

// Bound is the smallest C with δ(n) <= C/n^p on every sampled n, and the n attaining it.
type Bound struct {
	C *decimal.Big
	N uint64
	P float64
}

// BoundConstant returns max_i δ(n_i)·n_i^p. The product is taken at the precision of the
// residuals themselves.
func BoundConstant(results []analysis.Result, p float64) (Bound, error) {
	if len(results) == 0 {
		return Bound{}, errors.ErrNoSamples
	}
	if err := math.ValidFloat64(p); err != nil {
		return Bound{}, errors.Wrap(errors.InvalidArgumentError, err, "bound order")
	}
	exponent, err := math.ValidBig(strconv.FormatFloat(p, 'g', -1, 64))
	if err != nil {
		return Bound{}, err
	}

	var best Bound
	for _, r := range results {
		if r.Residual == nil {
			return Bound{}, errors.AtSample(r.N, "bound", errors.ErrInvalidInput)
		}
		ctx := decimal.Context{Precision: max(r.Residual.Precision(), logContext.Precision), RoundingMode: decimal.ToNearestEven}
		scale, err := math.PowReal(ctx, math.Uint(r.N), exponent)
		if err != nil {
			return Bound{}, errors.AtSample(r.N, "bound", err)
		}
		c := ctx.Mul(scale, scale, r.Residual)
		if best.C == nil || math.GT(c, best.C) {
			best = Bound{C: c, N: r.N, P: p}
		}
	}
	return best, nil
}
