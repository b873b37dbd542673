package series

import (
	"fmt"
	"strings"

	"github.com/ericlagergren/decimal"

	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/math"
	"github.com/dora-network/series-convergence/precision"
)

// TailFamily selects the closed-form asymptotic expansion used by AsymptoticTail.
type TailFamily int

const (
	// LeibnizEuler is (-1)^n Σ_{j<order} E_{2j}/(4^j n^{2j+1}), the expansion of π - L_n.
	LeibnizEuler TailFamily = iota
	// Madhava is 4(-1)^n·n/(4n²+1).
	Madhava
	// BaselEulerMaclaurin is 1/n - 1/(2n²) + Σ_{j=1}^{order} B_{2j}/n^{2j+1}, the expansion of
	// ζ(2) - Σ_{k≤n} 1/k².
	BaselEulerMaclaurin
)

const (
	defaultLeibnizOrder = 4
	defaultBaselOrder   = 2
)

// eulerNumbers holds E_0, E_2, E_4, ...
var eulerNumbers = []int64{
	1,
	-1,
	5,
	-61,
	1385,
	-50521,
	2702765,
	-199360981,
	19391512145,
	-2404879675441,
	370371188237525,
}

// bernoulliNumbers holds B_2, B_4, ... as numerator/denominator pairs.
var bernoulliNumbers = [][2]int64{
	{1, 6},
	{-1, 30},
	{1, 42},
	{-1, 30},
	{5, 66},
	{-691, 2730},
	{7, 6},
	{-3617, 510},
	{43867, 798},
	{-174611, 330},
}

func (f TailFamily) String() string {
	switch f {
	case LeibnizEuler:
		return "leibniz-euler"
	case Madhava:
		return "madhava"
	case BaselEulerMaclaurin:
		return "basel-euler-maclaurin"
	default:
		return "unspecified"
	}
}

func ParseTailFamily(s string) (TailFamily, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "leibniz-euler":
		return LeibnizEuler, nil
	case "madhava":
		return Madhava, nil
	case "basel-euler-maclaurin":
		return BaselEulerMaclaurin, nil
	default:
		return 0, errors.Configuration("unknown tail family %q", s)
	}
}

// MaxOrder is the largest order the built-in coefficient table of f supports.
func (f TailFamily) MaxOrder() int {
	switch f {
	case LeibnizEuler:
		return len(eulerNumbers)
	case BaselEulerMaclaurin:
		return len(bernoulliNumbers)
	default:
		return 0
	}
}

// AsymptoticTail approximates the missing tail of a main series by a truncated asymptotic
// expansion. Order 0 selects the family default; Madhava ignores Order.
type AsymptoticTail struct {
	Family TailFamily
	Order  int
}

func (a AsymptoticTail) order() int {
	if a.Order != 0 {
		return a.Order
	}
	switch a.Family {
	case LeibnizEuler:
		return defaultLeibnizOrder
	case BaselEulerMaclaurin:
		return defaultBaselOrder
	default:
		return 0
	}
}

func (a AsymptoticTail) Validate() error {
	if a.Family == Madhava {
		return nil
	}
	order := a.order()
	if order < 0 || order > a.Family.MaxOrder() {
		return errors.InvalidArgument(
			"%s tail supports orders 1..%d, got %d", a.Family, a.Family.MaxOrder(), order,
		)
	}
	return nil
}

func (a AsymptoticTail) Evaluate(n uint64, cfg precision.Config) (*decimal.Big, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errors.ErrZeroTerms
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	ctx := cfg.Context()
	switch a.Family {
	case LeibnizEuler:
		return leibnizTail(ctx, n, a.order()), nil
	case Madhava:
		return madhavaTail(ctx, n), nil
	case BaselEulerMaclaurin:
		return baselTail(ctx, n, a.order()), nil
	default:
		return nil, errors.Configuration("unknown tail family %d", int(a.Family))
	}
}

func (a AsymptoticTail) String() string {
	if a.Family == Madhava {
		return "asymptotic-tail[madhava]"
	}
	return fmt.Sprintf("asymptotic-tail[%s order=%d]", a.Family, a.order())
}

func leibnizTail(ctx decimal.Context, n uint64, order int) *decimal.Big {
	x := math.Uint(n)
	x2 := ctx.Mul(new(decimal.Big), x, x)
	four := math.New(4)

	acc := math.NewAccumulator(ctx)
	// denominator runs through 4^j·n^{2j+1}.
	den := math.Copy(x)
	term := new(decimal.Big)
	for j := 0; j < order; j++ {
		ctx.Quo(term, math.New(eulerNumbers[j]), den)
		acc.Add(term)
		ctx.Mul(den, den, x2)
		ctx.Mul(den, den, four)
	}
	sum := acc.Sum()
	if math.AlternatingSign(n) < 0 {
		return math.Neg(sum)
	}
	return sum
}

func madhavaTail(ctx decimal.Context, n uint64) *decimal.Big {
	x := math.Uint(n)
	num := ctx.Mul(new(decimal.Big), x, math.New(4))
	den := ctx.Mul(new(decimal.Big), x, x)
	ctx.Mul(den, den, math.New(4))
	ctx.Add(den, den, math.New(1))
	ctx.Quo(num, num, den)
	if math.AlternatingSign(n) < 0 {
		return math.Neg(num)
	}
	return num
}

func baselTail(ctx decimal.Context, n uint64, order int) *decimal.Big {
	x := math.Uint(n)
	x2 := ctx.Mul(new(decimal.Big), x, x)
	one := math.New(1)

	acc := math.NewAccumulator(ctx)
	acc.Add(ctx.Quo(new(decimal.Big), one, x))
	acc.Add(ctx.Quo(new(decimal.Big), math.New(-1), ctx.Mul(new(decimal.Big), x2, math.New(2))))

	// power runs through n^{2j+1}.
	power := ctx.Mul(new(decimal.Big), x2, x)
	term := new(decimal.Big)
	for j := 0; j < order; j++ {
		b := bernoulliNumbers[j]
		ctx.Mul(term, math.New(b[1]), power)
		ctx.Quo(term, math.New(b[0]), term)
		acc.Add(term)
		ctx.Mul(power, power, x2)
	}
	return acc.Sum()
}
