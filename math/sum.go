package math

import "github.com/ericlagergren/decimal"

// Accumulator sums decimals with Neumaier compensation: the rounding error of every
// addition is carried in a separate term and folded back in by Sum. Long alternating
// sums therefore lose no more than a couple of ulps regardless of the number of terms.
type Accumulator struct {
	ctx  decimal.Context
	sum  *decimal.Big
	comp *decimal.Big
}

func NewAccumulator(ctx decimal.Context) *Accumulator {
	return &Accumulator{
		ctx:  ctx,
		sum:  new(decimal.Big),
		comp: new(decimal.Big),
	}
}

// Add adds x to the running sum.
func (a *Accumulator) Add(x *decimal.Big) {
	t := a.ctx.Add(new(decimal.Big), a.sum, x)
	lost := new(decimal.Big)
	if CmpAbs(a.sum, x) >= 0 {
		a.ctx.Sub(lost, a.sum, t)
		a.ctx.Add(lost, lost, x)
	} else {
		a.ctx.Sub(lost, x, t)
		a.ctx.Add(lost, lost, a.sum)
	}
	a.ctx.Add(a.comp, a.comp, lost)
	a.sum = t
}

// Sum returns the compensated total.
func (a *Accumulator) Sum() *decimal.Big {
	return a.ctx.Add(new(decimal.Big), a.sum, a.comp)
}

// Sum adds xs with compensation.
func Sum(ctx decimal.Context, xs ...*decimal.Big) *decimal.Big {
	acc := NewAccumulator(ctx)
	for _, x := range xs {
		acc.Add(x)
	}
	return acc.Sum()
}
