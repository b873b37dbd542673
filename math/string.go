package math

import (
	"math/big"
	"strings"

	"github.com/ericlagergren/decimal"
)

// FractionalDigits returns the first `digits` decimal digits after the decimal point of |x|,
// truncated (not rounded). Values whose fractional part is shorter are padded with zeros.
func FractionalDigits(x *decimal.Big, digits int) string {
	if digits <= 0 || !IsFinite(x) {
		return ""
	}
	ax := Abs(x)
	// ax * 10^digits is exact: the coefficient is unchanged, only the scale moves.
	exact := decimal.Context{Precision: ax.Precision() + 1}
	shifted := exact.Mul(new(decimal.Big), ax, decimal.New(1, -digits))
	s := shifted.Int(new(big.Int)).String()
	if len(s) < digits {
		return strings.Repeat("0", digits-len(s)) + s
	}
	return s[len(s)-digits:]
}

// CommonPrefix returns the number of leading characters a and b share, comparing up to the
// length of the shorter string.
func CommonPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// IntegerDigits returns the integer part of |x| in decimal, truncated toward zero.
func IntegerDigits(x *decimal.Big) string {
	if !IsFinite(x) {
		return ""
	}
	return Abs(x).Int(new(big.Int)).String()
}
