package math

import (
	"github.com/ericlagergren/decimal"
)

/*
	This file is designed to simplify decimal.Context syntax.

	Before:
		ctx.Add(z, x, y)
		sum := ctx.Add(new(decimal.Big), x, y)
		ctx.Add(sum, sum, w)

	After:
		sum := math.Add(ctx, x, y, w)

	Every helper returns a fresh value; operands are never mutated.
	The context carries the precision, there is no package level precision.
*/

// New returns the integer v as a decimal.
func New(v int64) *decimal.Big {
	return decimal.New(v, 0)
}

// Uint returns the unsigned integer v as a decimal.
func Uint(v uint64) *decimal.Big {
	return new(decimal.Big).SetUint64(v)
}

// Copy returns an exact copy of x.
func Copy(x *decimal.Big) *decimal.Big {
	return new(decimal.Big).Copy(x)
}

// Add any amount of decimals together
func Add(ctx decimal.Context, xs ...*decimal.Big) *decimal.Big {
	sum := new(decimal.Big)
	for _, x := range xs {
		ctx.Add(sum, sum, x)
	}
	return sum
}

// Sub any amount of decimals from an initial value
func Sub(ctx decimal.Context, x *decimal.Big, ys ...*decimal.Big) *decimal.Big {
	diff := Copy(x)
	for _, y := range ys {
		ctx.Sub(diff, diff, y)
	}
	return diff
}

// Mul any amount of decimals together
func Mul(ctx decimal.Context, xs ...*decimal.Big) *decimal.Big {
	product := New(1)
	for _, x := range xs {
		ctx.Mul(product, product, x)
	}
	return product
}

// Quo divides an initial decimal by any amount of decimals
// note that Quo(ctx, a, b, c) = a / (b*c)
func Quo(ctx decimal.Context, x *decimal.Big, ys ...*decimal.Big) *decimal.Big {
	quo := Copy(x)
	for _, y := range ys {
		ctx.Quo(quo, quo, y)
	}
	return quo
}

// Ratio returns num/den rounded to the context precision.
func Ratio(ctx decimal.Context, num, den int64) *decimal.Big {
	return ctx.Quo(new(decimal.Big), New(num), New(den))
}

// Neg returns -x exactly.
func Neg(x *decimal.Big) *decimal.Big {
	exact := decimal.Context{Precision: x.Precision() + 1}
	return exact.Sub(new(decimal.Big), new(decimal.Big), x)
}

// Abs returns |x| exactly.
func Abs(x *decimal.Big) *decimal.Big {
	if x.Sign() < 0 {
		return Neg(x)
	}
	return Copy(x)
}

// CmpAbs compares |x| and |y|.
func CmpAbs(x, y *decimal.Big) int {
	return Abs(x).Cmp(Abs(y))
}

// PowUint raises x to the k-th power by repeated squaring.
func PowUint(ctx decimal.Context, x *decimal.Big, k uint64) *decimal.Big {
	result := New(1)
	base := Copy(x)
	for k > 0 {
		if k&1 == 1 {
			ctx.Mul(result, result, base)
		}
		k >>= 1
		if k > 0 {
			ctx.Mul(base, base, base)
		}
	}
	return result
}

// AlternatingSign returns (-1)^k.
func AlternatingSign(k uint64) int64 {
	if k%2 == 0 {
		return 1
	}
	return -1
}
