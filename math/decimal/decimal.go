// Package decimal holds helpers for the small, exact decimals read from flags and config
// (exponents, coefficients) and their conversion into the arbitrary-precision backend.
package decimal

import (
	bigdecimal "github.com/ericlagergren/decimal"
	"github.com/govalues/decimal"

	"github.com/dora-network/series-convergence/errors"
)

// Parse parses s into an exact decimal, mapping parse failures to InvalidArgument.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.Parse(s)
	if err != nil {
		return decimal.Decimal{}, errors.Wrap(errors.InvalidArgumentError, err, "invalid decimal "+s)
	}
	return d, nil
}

// ToBig converts d into the arbitrary-precision backend. The conversion is exact.
func ToBig(d decimal.Decimal) *bigdecimal.Big {
	v, ok := new(bigdecimal.Big).SetString(d.String())
	if !ok {
		// d.String() is always a plain decimal literal.
		panic("decimal: cannot convert " + d.String())
	}
	return v
}
