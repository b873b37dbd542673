package math

import (
	"math"

	"github.com/ericlagergren/decimal"

	"github.com/dora-network/series-convergence/errors"
)

func IsPositive(x *decimal.Big) bool {
	return x != nil && x.Sign() > 0
}

func IsZero(x *decimal.Big) bool {
	return x != nil && x.Sign() == 0
}

func LT(x, y *decimal.Big) bool {
	return x != nil && y != nil && x.Cmp(y) == -1
}

func EQ(x, y *decimal.Big) bool {
	return x != nil && y != nil && x.Cmp(y) == 0
}

func GT(x, y *decimal.Big) bool {
	return x != nil && y != nil && x.Cmp(y) == 1
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x *decimal.Big) bool {
	return x != nil && x.IsFinite()
}

// ValidBig validates if the value is a valid finite decimal.
func ValidBig(value string) (*decimal.Big, error) {
	v, ok := new(decimal.Big).SetString(value)
	if !ok || !v.IsFinite() {
		return nil, errors.InvalidArgument("%s is not a valid decimal", value)
	}
	return v, nil
}

// ValidFloat64 validates if the value is neither NaN nor infinite.
func ValidFloat64(value float64) error {
	if math.IsNaN(value) {
		return errors.InvalidArgument("float64 was NaN")
	}
	if math.IsInf(value, 0) {
		return errors.InvalidArgument("float64 was infinite")
	}
	return nil
}

// Float64 converts x to the nearest float64. Values outside the float64 range are an error
// rather than a silent 0 or ±Inf.
func Float64(x *decimal.Big) (float64, error) {
	if !IsFinite(x) {
		return 0, errors.InvalidArgument("%v is not finite", x)
	}
	f, _ := x.Float64()
	if err := ValidFloat64(f); err != nil {
		return 0, err
	}
	if f == 0 && !IsZero(x) {
		return 0, errors.InvalidArgument("%v underflows float64", x)
	}
	return f, nil
}
