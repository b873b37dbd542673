package series

import (
	"fmt"
	"strings"

	"github.com/ericlagergren/decimal"

	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/math"
	"github.com/dora-network/series-convergence/precision"
)

// Correction is the additive term φ(n) that is meant to cancel the leading error of a main
// series. Implementations are immutable values.
type Correction interface {
	Evaluate(n uint64, cfg precision.Config) (*decimal.Big, error)
	String() string
}

// None is the zero correction; approximating with it yields the plain main series.
type None struct{}

func (None) Evaluate(_ uint64, cfg precision.Config) (*decimal.Big, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return new(decimal.Big), nil
}

func (None) String() string {
	return "none"
}

// Term is a·arctan(b/c).
type Term struct {
	Coefficient int64 `mapstructure:"coefficient" json:"coefficient"`
	Numerator   int64 `mapstructure:"numerator" json:"numerator"`
	Denominator int64 `mapstructure:"denominator" json:"denominator"`
}

// MachinTerms returns Machin's formula 4·arctan(1/5) - arctan(1/239), the default correction
// of the experiments.
func MachinTerms() []Term {
	return []Term{
		{Coefficient: 4, Numerator: 1, Denominator: 5},
		{Coefficient: -1, Numerator: 1, Denominator: 239},
	}
}

func (t Term) Validate() error {
	if t.Denominator == 0 {
		return errors.ErrZeroDenominator
	}
	return nil
}

// Evaluate returns a·arctan(b/c) at ctx's precision.
func (t Term) Evaluate(ctx decimal.Context) (*decimal.Big, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	z := math.Ratio(ctx, t.Numerator, t.Denominator)
	ctx.Atan(z, z)
	return ctx.Mul(z, z, math.New(t.Coefficient)), nil
}

func (t Term) String() string {
	return fmt.Sprintf("%d·atan(%d/%d)", t.Coefficient, t.Numerator, t.Denominator)
}

// FixedMachin is Σ a_i·arctan(b_i/c_i). With Cutoff > 0 only the first min(n, Cutoff)
// terms contribute, otherwise the value does not depend on n.
type FixedMachin struct {
	Terms  []Term
	Cutoff int
}

func (f FixedMachin) Evaluate(n uint64, cfg precision.Config) (*decimal.Big, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(f.Terms) == 0 {
		return nil, errors.ErrEmptyMachin
	}
	if f.Cutoff < 0 {
		return nil, errors.InvalidArgument("modal cutoff %d must not be negative", f.Cutoff)
	}

	terms := f.Terms
	if f.Cutoff > 0 {
		k := min(uint64(f.Cutoff), n, uint64(len(terms)))
		terms = terms[:k]
	}

	ctx := cfg.Context()
	acc := math.NewAccumulator(ctx)
	for _, t := range terms {
		v, err := t.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		acc.Add(v)
	}
	return acc.Sum(), nil
}

func (f FixedMachin) String() string {
	parts := make([]string, len(f.Terms))
	for i, t := range f.Terms {
		parts[i] = t.String()
	}
	s := "fixed-machin[" + strings.Join(parts, " + ") + "]"
	if f.Cutoff > 0 {
		s += fmt.Sprintf(" cutoff=%d", f.Cutoff)
	}
	return s
}
