package math

import (
	"github.com/ericlagergren/decimal"

	"github.com/dora-network/series-convergence/errors"
)

// Ln returns ln(x) as a float64. The logarithm is taken in the decimal backend, so x may be
// far below the smallest float64 and still produce a usable result.
func Ln(ctx decimal.Context, x *decimal.Big) (float64, error) {
	if !IsPositive(x) {
		return 0, errors.ErrNonPositiveResidual
	}
	return Float64(ctx.Log(new(decimal.Big), x))
}

// PowReal returns x^p for x > 0. Integer exponents use exact repeated squaring,
// anything else goes through exp(p·ln x).
func PowReal(ctx decimal.Context, x, p *decimal.Big) (*decimal.Big, error) {
	if !IsPositive(x) {
		return nil, errors.InvalidArgument("base %v must be positive", x)
	}
	if p.IsInt() {
		k, ok := p.Int64()
		if ok {
			if k >= 0 {
				return PowUint(ctx, x, uint64(k)), nil
			}
			return ctx.Quo(new(decimal.Big), New(1), PowUint(ctx, x, uint64(-k))), nil
		}
	}
	lnx := ctx.Log(new(decimal.Big), x)
	return ctx.Exp(new(decimal.Big), ctx.Mul(lnx, lnx, p)), nil
}
