// Package search brute-forces small Machin-like corrections Σ a_i·arctan(1/c_i) over a
// bounded grid, looking for the combination that brings a main series closest to its limit
// at a fixed n. It is an offline tuning aid and shares nothing with the analysis path beyond
// the series and reference packages.
package search

import (
	"github.com/ericlagergren/decimal"
	"github.com/rs/zerolog"

	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/math"
	"github.com/dora-network/series-convergence/precision"
	"github.com/dora-network/series-convergence/reference"
	"github.com/dora-network/series-convergence/series"
)

const DefaultMaxCandidates = 1_000_000

// Grid bounds the search. Coefficients range over [CoefficientMin, CoefficientMax] without
// zero; each combination uses Terms distinct denominators from
// [DenominatorMin, DenominatorMax] in increasing order.
type Grid struct {
	CoefficientMin int64  `mapstructure:"coefficient_min" json:"coefficient_min"`
	CoefficientMax int64  `mapstructure:"coefficient_max" json:"coefficient_max"`
	DenominatorMin int64  `mapstructure:"denominator_min" json:"denominator_min"`
	DenominatorMax int64  `mapstructure:"denominator_max" json:"denominator_max"`
	Terms          int    `mapstructure:"terms" json:"terms"`
	N              uint64 `mapstructure:"n" json:"n"`
	MaxCandidates  int    `mapstructure:"max_candidates" json:"max_candidates"`
}

// Best is the winning combination and the residual it leaves at Grid.N.
type Best struct {
	Terms     []series.Term `json:"terms"`
	Residual  *decimal.Big  `json:"residual"`
	Evaluated int           `json:"evaluated"`
}

// DefaultGrid is the grid the CLI searches when no bounds are given.
func DefaultGrid() Grid {
	return Grid{
		CoefficientMin: -4,
		CoefficientMax: 4,
		DenominatorMin: 2,
		DenominatorMax: 40,
		Terms:          2,
		N:              1,
		MaxCandidates:  DefaultMaxCandidates,
	}
}

// coefficientCount counts the non-zero integers in [CoefficientMin, CoefficientMax]
// without walking the range.
func (g Grid) coefficientCount() (uint64, error) {
	if g.CoefficientMin > g.CoefficientMax {
		return 0, nil
	}
	count, err := math.CheckedAddU64(uint64(g.CoefficientMax)-uint64(g.CoefficientMin), 1)
	if err != nil {
		return 0, err
	}
	if g.CoefficientMin <= 0 && g.CoefficientMax >= 0 {
		count--
	}
	return count, nil
}

// coefficients materialises the coefficient range. Only call it on a validated grid.
func (g Grid) coefficients() []int64 {
	var out []int64
	for _, a := range span(g.CoefficientMin, g.CoefficientMax) {
		if a != 0 {
			out = append(out, a)
		}
	}
	return out
}

// span lists [lo, hi] without stepping past hi, so hi may be math.MaxInt64.
func span(lo, hi int64) []int64 {
	out := make([]int64, 0, uint64(hi)-uint64(lo)+1)
	for v := lo; ; v++ {
		out = append(out, v)
		if v == hi {
			return out
		}
	}
}

// Candidates returns the number of combinations g enumerates.
func (g Grid) Candidates() (int, error) {
	coefficients, err := g.coefficientCount()
	if err != nil {
		return 0, err
	}
	if g.Terms < 1 || g.DenominatorMin > g.DenominatorMax {
		return 0, nil
	}
	denominators, err := math.CheckedAddU64(uint64(g.DenominatorMax)-uint64(g.DenominatorMin), 1)
	if err != nil {
		return 0, err
	}
	if uint64(g.Terms) > denominators {
		return 0, nil
	}

	// C(denominators, terms) · coefficients^terms
	total := uint64(1)
	for i := uint64(0); i < uint64(g.Terms); i++ {
		if total, err = math.CheckedMulU64(total, denominators-i); err != nil {
			return 0, err
		}
		total /= i + 1
	}
	for i := 0; i < g.Terms && coefficients != 1; i++ {
		if total, err = math.CheckedMulU64(total, coefficients); err != nil {
			return 0, err
		}
	}
	if total > uint64(1<<62) {
		return 0, math.ErrOverflowMul
	}
	return int(total), nil
}

func (g Grid) Validate() error {
	if g.N == 0 {
		return errors.ErrZeroTerms
	}
	if g.Terms < 1 {
		return errors.InvalidArgument("terms must be at least 1, got %d", g.Terms)
	}
	if g.CoefficientMin > g.CoefficientMax {
		return errors.InvalidArgument("coefficient range [%d, %d] is empty", g.CoefficientMin, g.CoefficientMax)
	}
	if g.CoefficientMin == 0 && g.CoefficientMax == 0 {
		return errors.InvalidArgument("coefficient range [%d, %d] holds only zero", g.CoefficientMin, g.CoefficientMax)
	}
	if g.DenominatorMin < 1 || g.DenominatorMin > g.DenominatorMax {
		return errors.InvalidArgument("denominator range [%d, %d] must be positive and non-empty",
			g.DenominatorMin, g.DenominatorMax)
	}
	if int64(g.Terms) > g.DenominatorMax-g.DenominatorMin+1 {
		return errors.InvalidArgument("%d terms need at least as many denominators", g.Terms)
	}
	limit := g.MaxCandidates
	if limit <= 0 {
		limit = DefaultMaxCandidates
	}
	count, err := g.Candidates()
	if err != nil || count > limit {
		return errors.InvalidArgument("grid holds more than %d candidates", limit)
	}
	return nil
}

type options struct {
	logger zerolog.Logger
}

type Option func(options) options

// WithLogger sets the logger to use for the search.
func WithLogger(logger zerolog.Logger) Option {
	return func(o options) options {
		o.logger = logger
		return o
	}
}

// Search evaluates every combination in grid and returns the one minimising
// |constant - (Sum(N) + φ)|. Ties keep the first combination in enumeration order:
// denominators ascending, then coefficients ascending.
func Search(
	grid Grid,
	constant reference.Constant,
	main series.MainSeries,
	cfg precision.Config,
	opts ...Option,
) (Best, error) {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		o = opt(o)
	}
	if err := cfg.Validate(); err != nil {
		return Best{}, err
	}
	if err := grid.Validate(); err != nil {
		return Best{}, err
	}

	ref, err := reference.Value(constant, cfg)
	if err != nil {
		return Best{}, err
	}
	sum, err := main.Sum(grid.N, cfg)
	if err != nil {
		return Best{}, err
	}
	ctx := cfg.Context()
	target := math.Sub(ctx, ref, sum)

	// arctan(1/c) is shared by every candidate using c.
	pool := span(grid.DenominatorMin, grid.DenominatorMax)
	atans := make(map[int64]*decimal.Big, len(pool))
	for _, c := range pool {
		z := math.Ratio(ctx, 1, c)
		atans[c] = ctx.Atan(z, z)
	}

	s := &searcher{
		ctx:          ctx,
		target:       target,
		atans:        atans,
		pool:         pool,
		coefficients: grid.coefficients(),
		denominators: make([]int64, grid.Terms),
		chosen:       make([]int64, grid.Terms),
		terms:        make([]*decimal.Big, grid.Terms),
	}
	for i := range s.terms {
		s.terms[i] = new(decimal.Big)
	}
	s.denominatorsFrom(0, 0)

	o.logger.Debug().
		Int("evaluated", s.evaluated).
		Str("residual", s.best.String()).
		Msg("grid search finished")

	return Best{Terms: s.bestTerms, Residual: s.best, Evaluated: s.evaluated}, nil
}

type searcher struct {
	ctx          decimal.Context
	target       *decimal.Big
	atans        map[int64]*decimal.Big
	pool         []int64
	coefficients []int64

	denominators []int64
	chosen       []int64
	terms        []*decimal.Big

	best      *decimal.Big
	bestTerms []series.Term
	evaluated int
}

func (s *searcher) denominatorsFrom(pos, from int) {
	if pos == len(s.denominators) {
		s.coefficientsFrom(0)
		return
	}
	for i := from; i < len(s.pool); i++ {
		s.denominators[pos] = s.pool[i]
		s.denominatorsFrom(pos+1, i+1)
	}
}

func (s *searcher) coefficientsFrom(pos int) {
	if pos == len(s.chosen) {
		s.evaluate()
		return
	}
	for _, a := range s.coefficients {
		s.chosen[pos] = a
		s.coefficientsFrom(pos + 1)
	}
}

func (s *searcher) evaluate() {
	s.evaluated++
	for i, c := range s.denominators {
		s.ctx.Mul(s.terms[i], s.atans[c], math.New(s.chosen[i]))
	}
	residual := math.Abs(math.Sub(s.ctx, s.target, math.Sum(s.ctx, s.terms...)))
	if s.best != nil && !math.LT(residual, s.best) {
		return
	}
	s.best = residual
	s.bestTerms = make([]series.Term, len(s.denominators))
	for i, c := range s.denominators {
		s.bestTerms[i] = series.Term{Coefficient: s.chosen[i], Numerator: 1, Denominator: c}
	}
}
