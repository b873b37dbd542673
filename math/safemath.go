package math

import (
	"math/bits"

	"github.com/dora-network/series-convergence/errors"
)

var (
	ErrOverflowAdd = errors.New(errors.InvalidArgumentError, "integer overflow in addition")
	ErrOverflowMul = errors.New(errors.InvalidArgumentError, "integer overflow in multiplication")
)

// CheckedAddU64 adds two uint64's together, returning an error in the event of an overflow.
func CheckedAddU64(a, b uint64) (uint64, error) {
	sum, carryOut := bits.Add64(a, b, 0)
	if carryOut == 1 {
		return 0, ErrOverflowAdd
	}
	return sum, nil
}

// CheckedMulU64 multiplies two uint64's together, returning an error in the event
// of an overflow.
func CheckedMulU64(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi > 0 {
		return 0, ErrOverflowMul
	}
	return lo, nil
}

// CheckedOddU64 returns 2k+1, the k-th odd number, or an error if it does not fit a uint64.
func CheckedOddU64(k uint64) (uint64, error) {
	twice, err := CheckedMulU64(2, k)
	if err != nil {
		return 0, err
	}
	return CheckedAddU64(twice, 1)
}
