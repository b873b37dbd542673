// Package series computes structured approximations ρ(n) = S(n) + φ(n): a slowly convergent
// main series S plus a correction φ meant to cancel its leading error.
package series

import (
	"github.com/ericlagergren/decimal"

	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/precision"
)

type Approximator struct {
	Series     MainSeries
	Correction Correction
}

// NewApproximator builds an Approximator from the configuration form of a correction.
func NewApproximator(s MainSeries, spec Spec) (Approximator, error) {
	c, err := spec.Correction()
	if err != nil {
		return Approximator{}, err
	}
	return Approximator{Series: s, Correction: c}, nil
}

func (a Approximator) correction() Correction {
	if a.Correction == nil {
		return None{}
	}
	return a.Correction
}

// Parts is ρ(n) together with the two terms it is made of.
type Parts struct {
	Sum        *decimal.Big
	Correction *decimal.Big
	Approx     *decimal.Big
}

// Evaluate returns S(n), φ(n) and ρ(n) at cfg's precision. n must be at least 1.
func (a Approximator) Evaluate(n uint64, cfg precision.Config) (Parts, error) {
	if err := cfg.Validate(); err != nil {
		return Parts{}, err
	}
	if n == 0 {
		return Parts{}, errors.ErrZeroTerms
	}
	sum, err := a.Series.Sum(n, cfg)
	if err != nil {
		return Parts{}, err
	}
	phi, err := a.correction().Evaluate(n, cfg)
	if err != nil {
		return Parts{}, err
	}
	ctx := cfg.Context()
	return Parts{Sum: sum, Correction: phi, Approx: ctx.Add(new(decimal.Big), sum, phi)}, nil
}

// Approximate returns ρ(n) at cfg's precision. n must be at least 1.
func (a Approximator) Approximate(n uint64, cfg precision.Config) (*decimal.Big, error) {
	p, err := a.Evaluate(n, cfg)
	if err != nil {
		return nil, err
	}
	return p.Approx, nil
}

func (a Approximator) String() string {
	return a.Series.String() + " + " + a.correction().String()
}

// Approximate returns ρ(n) for the Leibniz series corrected as spec describes.
func Approximate(n uint64, spec Spec, cfg precision.Config) (*decimal.Big, error) {
	a, err := NewApproximator(Leibniz, spec)
	if err != nil {
		return nil, err
	}
	return a.Approximate(n, cfg)
}
