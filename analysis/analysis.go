// Package analysis sweeps a structured approximation over a set of sample points and
// measures, for each n, how far it is from the true constant.
package analysis

import (
	stdmath "math"
	"time"

	"github.com/ericlagergren/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/math"
	"github.com/dora-network/series-convergence/precision"
	"github.com/dora-network/series-convergence/reference"
	"github.com/dora-network/series-convergence/series"
	"github.com/dora-network/series-convergence/validation"
)

// mainTailTolerance is the relative disagreement between the summed and the integrated
// remainder of the main series above which a sample is logged.
const mainTailTolerance = 1e-9

// Result is the measurement at one sample point. Scaled holds δ(n)·n^k keyed by k.
// MainTail is limit - S(n) of the uncorrected main series, from quadrature. Structure is nil
// when the correction is zero at n.
type Result struct {
	N              uint64
	Approx         *decimal.Big
	Residual       *decimal.Big
	Scaled         map[int]*decimal.Big
	MatchingDigits int
	MainTail       float64
	Structure      *Structure
}

type Analyzer struct {
	cfg     precision.Config
	options options
}

func New(cfg precision.Config, opts ...Option) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := applyOptions(opts...)
	for _, k := range o.orders {
		if k < 0 {
			return nil, errors.InvalidArgument("scaled residual order %d must not be negative", k)
		}
	}
	return &Analyzer{cfg: cfg, options: o}, nil
}

// Orders returns the scaled residual orders every Result carries.
func (a *Analyzer) Orders() []int {
	return append([]int(nil), a.options.orders...)
}

// SeriesFor returns the main series that converges to c.
func SeriesFor(c reference.Constant) (series.MainSeries, error) {
	switch c {
	case reference.Pi:
		return series.Leibniz, nil
	case reference.Zeta2:
		return series.Basel, nil
	default:
		return 0, errors.Configuration("no main series for constant %d", int(c))
	}
}

// Analyze evaluates the main series of constant, corrected as spec describes, at every
// sample.
func (a *Analyzer) Analyze(samples []uint64, spec series.Spec, constant reference.Constant) ([]Result, error) {
	s, err := SeriesFor(constant)
	if err != nil {
		return nil, err
	}
	approximator, err := series.NewApproximator(s, spec)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeWith(samples, approximator, constant)
}

// AnalyzeWith evaluates approximator at every sample and returns the results in sample
// order. If any sample fails no results are returned; the error is the *errors.SampleError
// of the smallest failing n.
func (a *Analyzer) AnalyzeWith(
	samples []uint64,
	approximator series.Approximator,
	constant reference.Constant,
) ([]Result, error) {
	if err := a.validate(samples); err != nil {
		return nil, err
	}
	ref, err := a.options.provider.Value(constant, a.cfg)
	if err != nil {
		return nil, err
	}

	a.options.logger.Debug().
		Str("approximator", approximator.String()).
		Str("constant", constant.String()).
		Int("samples", len(samples)).
		Uint("digits", a.cfg.Digits).
		Msg("starting sweep")

	results := make([]Result, len(samples))
	if a.options.workers <= 1 {
		for i, n := range samples {
			r, err := a.evaluate(n, approximator, ref)
			if err != nil {
				return nil, errors.AtSample(n, approximator.String(), err)
			}
			results[i] = r
		}
		return results, nil
	}

	errs := make([]error, len(samples))
	g := new(errgroup.Group)
	g.SetLimit(a.options.workers)
	for i, n := range samples {
		g.Go(func() error {
			results[i], errs[i] = a.evaluate(n, approximator, ref)
			return nil
		})
	}
	_ = g.Wait()
	for i, err := range errs {
		if err != nil {
			return nil, errors.AtSample(samples[i], approximator.String(), err)
		}
	}
	return results, nil
}

func (a *Analyzer) validate(samples []uint64) error {
	if err := validation.ValidateAscending(samples); err != nil {
		return err
	}
	if samples[0] == 0 {
		return errors.ErrZeroTerms
	}
	limits := a.options.limits
	if limits.MaxSamples > 0 && len(samples) > limits.MaxSamples {
		return errors.InvalidArgument("%d samples requested, at most %d are allowed", len(samples), limits.MaxSamples)
	}
	if last := samples[len(samples)-1]; limits.MaxN > 0 && last > limits.MaxN {
		return errors.InvalidArgument("sample n=%d exceeds the limit of %d", last, limits.MaxN)
	}
	return nil
}

func (a *Analyzer) evaluate(n uint64, approximator series.Approximator, ref *decimal.Big) (Result, error) {
	start := time.Now()
	parts, err := approximator.Evaluate(n, a.cfg)
	if err != nil {
		a.options.observer.SampleFailed(n, err)
		return Result{}, err
	}
	approx := parts.Approx

	ctx := a.cfg.Context()
	mainTail := approximator.Series.TailIntegral(n)
	a.checkMainTail(n, mainTail, math.Sub(ctx, ref, parts.Sum))

	residual := math.Abs(math.Sub(ctx, ref, approx))
	x := math.Uint(n)
	scaled := make(map[int]*decimal.Big, len(a.options.orders))
	for _, k := range a.options.orders {
		scaled[k] = math.Mul(ctx, residual, math.PowUint(ctx, x, uint64(k)))
	}

	if !a.cfg.Covers(residual) {
		a.options.logger.Warn().
			Uint64("n", n).
			Str("residual", residual.String()).
			Uint("digits", a.cfg.Digits).
			Msg("residual is at the working precision floor, increase digits")
	}
	a.options.observer.SampleEvaluated(n, time.Since(start))

	return Result{
		N:              n,
		Approx:         approx,
		Residual:       residual,
		Scaled:         scaled,
		MatchingDigits: matchingDigits(ref, approx, a.cfg),
		MainTail:       mainTail,
		Structure:      NewStructure(ctx, parts.Correction, approximator.Series.Scale()),
	}, nil
}

// checkMainTail logs when the summed remainder of the main series disagrees with its
// integral form.
func (a *Analyzer) checkMainTail(n uint64, integrated float64, summed *decimal.Big) {
	f, err := math.Float64(summed)
	if err != nil {
		return
	}
	// the summed value is only good to the last few working digits.
	floor := stdmath.Pow10(2 - int(a.cfg.Digits))
	if stdmath.Abs(f-integrated) <= max(mainTailTolerance*stdmath.Abs(integrated), floor) {
		return
	}
	a.options.logger.Warn().
		Uint64("n", n).
		Float64("summed", f).
		Float64("integrated", integrated).
		Msg("main series remainder disagrees with its integral")
}

func matchingDigits(ref, approx *decimal.Big, cfg precision.Config) int {
	if ref.Sign() != approx.Sign() || math.IntegerDigits(ref) != math.IntegerDigits(approx) {
		return 0
	}
	digits := int(cfg.Digits) - len(math.IntegerDigits(ref))
	if math.EQ(ref, approx) {
		return max(digits, 0)
	}
	return MatchingDigits(math.FractionalDigits(ref, digits), math.FractionalDigits(approx, digits))
}

// MatchingDigits returns how many leading digits the fractional digit strings ref and
// approx share, comparing up to the length of the shorter one.
func MatchingDigits(ref, approx string) int {
	return math.CommonPrefix(ref, approx)
}
