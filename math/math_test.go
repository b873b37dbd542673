package math_test

import (
	"testing"

	"github.com/ericlagergren/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/math"
)

var ctx50 = decimal.Context{Precision: 50, RoundingMode: decimal.ToNearestEven}

func mustBig(t *testing.T, s string) *decimal.Big {
	t.Helper()
	v, ok := new(decimal.Big).SetString(s)
	require.True(t, ok, s)
	return v
}

func TestValidBig(t *testing.T) {
	tcs := []struct {
		title  string
		value  string
		expErr bool
	}{
		{"valid: integer", "12300231", false},
		{"valid: fraction", "3.14159265358979323846264338327950288", false},
		{"valid: exponent", "2.5E-40", false},
		{"invalid: letters", "12300231sdas", true},
		{"invalid: comma", "12300231,3223", true},
		{"invalid: infinity", "Inf", true},
	}

	for _, tc := range tcs {
		t.Run(
			tc.title, func(t *testing.T) {
				_, err := math.ValidBig(tc.value)
				if tc.expErr {
					require.Error(t, err)
					assert.True(t, errors.Is(err, errors.InvalidArgumentError))
					return
				}
				require.NoError(t, err)
			},
		)
	}
}

func TestArithmetic(t *testing.T) {
	t.Run(
		"add sub mul quo", func(t *testing.T) {
			sum := math.Add(ctx50, math.New(1), math.New(2), math.New(3))
			assert.True(t, math.EQ(sum, math.New(6)))

			diff := math.Sub(ctx50, math.New(10), math.New(3), math.New(2))
			assert.True(t, math.EQ(diff, math.New(5)))

			product := math.Mul(ctx50, math.New(2), math.New(3), math.New(7))
			assert.True(t, math.EQ(product, math.New(42)))

			quo := math.Quo(ctx50, math.New(42), math.New(2), math.New(3))
			assert.True(t, math.EQ(quo, math.New(7)))
		},
	)

	t.Run(
		"operands are not mutated", func(t *testing.T) {
			x := math.New(5)
			_ = math.Add(ctx50, x, math.New(1))
			_ = math.Sub(ctx50, x, math.New(1))
			assert.True(t, math.EQ(x, math.New(5)))
		},
	)

	t.Run(
		"ratio", func(t *testing.T) {
			third := math.Ratio(ctx50, 1, 3)
			assert.Equal(t, "33333333333333333333", math.FractionalDigits(third, 20))
		},
	)

	t.Run(
		"neg and abs", func(t *testing.T) {
			x := mustBig(t, "-2.75")
			assert.True(t, math.EQ(math.Abs(x), mustBig(t, "2.75")))
			assert.True(t, math.EQ(math.Neg(x), mustBig(t, "2.75")))
			assert.Equal(t, 0, math.CmpAbs(x, mustBig(t, "2.75")))
			assert.Equal(t, 1, math.CmpAbs(x, math.New(1)))
		},
	)

	t.Run(
		"pow uint", func(t *testing.T) {
			assert.True(t, math.EQ(math.PowUint(ctx50, math.New(10), 7), math.New(10_000_000)))
			assert.True(t, math.EQ(math.PowUint(ctx50, math.New(3), 0), math.New(1)))
			assert.True(t, math.EQ(math.PowUint(ctx50, math.New(2), 10), math.New(1024)))
		},
	)

	t.Run(
		"alternating sign", func(t *testing.T) {
			assert.Equal(t, int64(1), math.AlternatingSign(0))
			assert.Equal(t, int64(-1), math.AlternatingSign(1))
			assert.Equal(t, int64(1), math.AlternatingSign(1000))
		},
	)
}

func TestAccumulator(t *testing.T) {
	// 1/3 added three times must come back to exactly one at the working precision.
	third := math.Ratio(ctx50, 1, 3)
	acc := math.NewAccumulator(ctx50)
	for i := 0; i < 3; i++ {
		acc.Add(third)
	}
	diff := math.Abs(math.Sub(ctx50, acc.Sum(), math.New(1)))
	assert.True(t, math.LT(diff, mustBig(t, "1E-48")), diff.String())

	// small contributions survive being added to, then cancelled from, a large value.
	small := mustBig(t, "1E-30")
	xs := []*decimal.Big{mustBig(t, "1E+25")}
	for i := 0; i < 1000; i++ {
		xs = append(xs, small)
	}
	xs = append(xs, mustBig(t, "-1E+25"))
	got := math.Sum(decimal.Context{Precision: 40}, xs...)
	assert.True(t, math.EQ(got, mustBig(t, "1E-27")), got.String())
}

func TestFractionalDigits(t *testing.T) {
	tcs := []struct {
		value  string
		digits int
		exp    string
	}{
		{"3.14159265", 8, "14159265"},
		{"3.14159265", 4, "1415"},
		{"-3.14159265", 4, "1415"},
		{"3.1", 4, "1000"},
		{"0.00042", 6, "000420"},
		{"12", 3, "000"},
		{"3.5", 0, ""},
	}

	for _, tc := range tcs {
		t.Run(
			tc.value, func(t *testing.T) {
				assert.Equal(t, tc.exp, math.FractionalDigits(mustBig(t, tc.value), tc.digits))
			},
		)
	}
}

func TestIntegerDigits(t *testing.T) {
	assert.Equal(t, "3", math.IntegerDigits(mustBig(t, "3.99")))
	assert.Equal(t, "12", math.IntegerDigits(mustBig(t, "-12.5")))
	assert.Equal(t, "0", math.IntegerDigits(mustBig(t, "0.001")))
}

func TestCommonPrefix(t *testing.T) {
	assert.Equal(t, 6, math.CommonPrefix("14159265", "14159200"))
	assert.Equal(t, 3, math.CommonPrefix("141", "14159"))
	assert.Equal(t, 0, math.CommonPrefix("9", "1"))
	assert.Equal(t, 0, math.CommonPrefix("", "1"))
}

func TestLn(t *testing.T) {
	f, err := math.Ln(ctx50, math.New(1))
	require.NoError(t, err)
	assert.Equal(t, 0.0, f)

	// far below the float64 range.
	f, err = math.Ln(ctx50, mustBig(t, "1E-400"))
	require.NoError(t, err)
	assert.InDelta(t, -921.034037197618, f, 1e-9)

	_, err = math.Ln(ctx50, math.New(0))
	require.ErrorIs(t, err, errors.ErrNonPositiveResidual)
	_, err = math.Ln(ctx50, math.New(-2))
	require.ErrorIs(t, err, errors.ErrNonPositiveResidual)
}

func TestPowReal(t *testing.T) {
	v, err := math.PowReal(ctx50, math.New(10), math.New(3))
	require.NoError(t, err)
	assert.True(t, math.EQ(v, math.New(1000)))

	v, err = math.PowReal(ctx50, math.New(10), math.New(-2))
	require.NoError(t, err)
	assert.True(t, math.EQ(v, mustBig(t, "0.01")))

	v, err = math.PowReal(ctx50, math.New(4), mustBig(t, "0.5"))
	require.NoError(t, err)
	diff := math.Abs(math.Sub(ctx50, v, math.New(2)))
	assert.True(t, math.LT(diff, mustBig(t, "1E-45")), v.String())

	_, err = math.PowReal(ctx50, math.New(0), math.New(2))
	require.Error(t, err)
}

func TestCheckedU64(t *testing.T) {
	v, err := math.CheckedOddU64(10)
	require.NoError(t, err)
	assert.Equal(t, uint64(21), v)

	_, err = math.CheckedOddU64(1 << 63)
	require.ErrorIs(t, err, math.ErrOverflowMul)

	_, err = math.CheckedAddU64(^uint64(0), 1)
	require.ErrorIs(t, err, math.ErrOverflowAdd)
}
