package series

import (
	"github.com/ericlagergren/decimal"

	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/math"
	"github.com/dora-network/series-convergence/precision"
)

// ScaledMachin is φ·n^(-p) where φ is a FixedMachin value. A nil Exponent means p = 1.
type ScaledMachin struct {
	Base     FixedMachin
	Exponent *decimal.Big
}

func (s ScaledMachin) exponent() *decimal.Big {
	if s.Exponent == nil {
		return math.New(1)
	}
	return s.Exponent
}

func (s ScaledMachin) Evaluate(n uint64, cfg precision.Config) (*decimal.Big, error) {
	if n == 0 {
		return nil, errors.ErrZeroTerms
	}
	phi, err := s.Base.Evaluate(n, cfg)
	if err != nil {
		return nil, err
	}

	ctx := cfg.Context()
	scale, err := math.PowReal(ctx, math.Uint(n), s.exponent())
	if err != nil {
		return nil, err
	}
	return ctx.Quo(phi, phi, scale), nil
}

func (s ScaledMachin) String() string {
	return "scaled-machin[" + s.Base.String() + " · n^-" + s.exponent().String() + "]"
}
