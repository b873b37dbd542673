package series

import (
	"strings"

	"github.com/ericlagergren/decimal"

	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/math"
	"github.com/dora-network/series-convergence/precision"
)

// MainSeries is the slowly convergent partial sum a correction is added to.
type MainSeries int

const (
	// Leibniz is 4·Σ_{k=0}^{n-1} (-1)^k/(2k+1), converging to π.
	Leibniz MainSeries = iota
	// Basel is Σ_{k=1}^{n} 1/k², converging to ζ(2).
	Basel
)

func (s MainSeries) String() string {
	switch s {
	case Leibniz:
		return "leibniz"
	case Basel:
		return "basel"
	default:
		return "unspecified"
	}
}

func ParseMainSeries(s string) (MainSeries, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "leibniz":
		return Leibniz, nil
	case "basel":
		return Basel, nil
	default:
		return 0, errors.Configuration("unknown main series %q", s)
	}
}

// BaselineOrder is the convergence order the plain series already has. Both series miss
// their limit by O(1/n).
func (s MainSeries) BaselineOrder() float64 {
	return 1
}

// Scale is the factor every term of s carries: 4 for Leibniz, 1 for Basel.
func (s MainSeries) Scale() int64 {
	if s == Leibniz {
		return 4
	}
	return 1
}

// Sum returns the n-term partial sum of s.
func (s MainSeries) Sum(n uint64, cfg precision.Config) (*decimal.Big, error) {
	switch s {
	case Leibniz:
		return LeibnizSum(n, cfg)
	case Basel:
		return BaselSum(n, cfg)
	default:
		return nil, errors.Configuration("unknown main series %d", int(s))
	}
}

// LeibnizSum returns 4·Σ_{k=0}^{n-1} (-1)^k/(2k+1) at cfg's precision. The terms are added
// with compensation so the result differs from the true partial sum only in the last digit,
// independent of n. n = 0 is the empty sum.
func LeibnizSum(n uint64, cfg precision.Config) (*decimal.Big, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if n == 0 {
		return new(decimal.Big), nil
	}
	if _, err := math.CheckedOddU64(n - 1); err != nil {
		return nil, err
	}

	ctx := cfg.Context()
	four, minusFour := math.New(4), math.New(-4)
	acc := math.NewAccumulator(ctx)
	term := new(decimal.Big)
	for k := uint64(0); k < n; k++ {
		numerator := four
		if k%2 == 1 {
			numerator = minusFour
		}
		ctx.Quo(term, numerator, math.Uint(2*k+1))
		acc.Add(term)
	}
	return acc.Sum(), nil
}

// BaselSum returns Σ_{k=1}^{n} 1/k² at cfg's precision, compensated.
func BaselSum(n uint64, cfg precision.Config) (*decimal.Big, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if n == 0 {
		return new(decimal.Big), nil
	}
	if _, err := math.CheckedMulU64(n, n); err != nil {
		return nil, err
	}

	ctx := cfg.Context()
	one := math.New(1)
	acc := math.NewAccumulator(ctx)
	term := new(decimal.Big)
	// smallest terms first keeps the running sum and the compensation closer in magnitude.
	for k := n; k >= 1; k-- {
		ctx.Quo(term, one, math.Uint(k*k))
		acc.Add(term)
	}
	return acc.Sum(), nil
}
