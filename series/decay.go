package series

import (
	"strings"

	"github.com/ericlagergren/decimal"

	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/math"
	"github.com/dora-network/series-convergence/precision"
	"github.com/dora-network/series-convergence/reference"
)

// DecayMode names the weight w(n) a NamedDecayMode scales its Machin value by.
type DecayMode int

const (
	// Harmonic is w(n) = 1/n.
	Harmonic DecayMode = iota
	// InverseSquare is w(n) = 1/n².
	InverseSquare
	// AlphaPi is w(n) = 4/(π·n); with Machin's formula as base the correction becomes 1/n.
	AlphaPi
)

func (m DecayMode) String() string {
	switch m {
	case Harmonic:
		return "harmonic"
	case InverseSquare:
		return "inverse-square"
	case AlphaPi:
		return "alpha-pi"
	default:
		return "unspecified"
	}
}

func ParseDecayMode(s string) (DecayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "harmonic":
		return Harmonic, nil
	case "inverse-square":
		return InverseSquare, nil
	case "alpha-pi":
		return AlphaPi, nil
	default:
		return 0, errors.Configuration("unknown decay mode %q", s)
	}
}

// NamedDecayMode is φ·w(n)^s where φ is a FixedMachin value. A nil Exponent means s = 1.
type NamedDecayMode struct {
	Mode     DecayMode
	Base     FixedMachin
	Exponent *decimal.Big
}

func (d NamedDecayMode) exponent() *decimal.Big {
	if d.Exponent == nil {
		return math.New(1)
	}
	return d.Exponent
}

func (d NamedDecayMode) weight(n uint64, cfg precision.Config) (*decimal.Big, error) {
	ctx := cfg.Context()
	x := math.Uint(n)
	switch d.Mode {
	case Harmonic:
		return ctx.Quo(x, math.New(1), x), nil
	case InverseSquare:
		ctx.Mul(x, x, x)
		return ctx.Quo(x, math.New(1), x), nil
	case AlphaPi:
		pi, err := reference.Value(reference.Pi, cfg)
		if err != nil {
			return nil, err
		}
		ctx.Mul(x, x, pi)
		return ctx.Quo(x, math.New(4), x), nil
	default:
		return nil, errors.Configuration("unknown decay mode %d", int(d.Mode))
	}
}

func (d NamedDecayMode) Evaluate(n uint64, cfg precision.Config) (*decimal.Big, error) {
	if n == 0 {
		return nil, errors.ErrZeroTerms
	}
	phi, err := d.Base.Evaluate(n, cfg)
	if err != nil {
		return nil, err
	}
	w, err := d.weight(n, cfg)
	if err != nil {
		return nil, err
	}

	ctx := cfg.Context()
	w, err = math.PowReal(ctx, w, d.exponent())
	if err != nil {
		return nil, err
	}
	return ctx.Mul(phi, phi, w), nil
}

func (d NamedDecayMode) String() string {
	return "decay[" + d.Mode.String() + " " + d.Base.String() + " ^" + d.exponent().String() + "]"
}
