package precision_test

import (
	"testing"

	"github.com/ericlagergren/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/precision"
)

func TestValidate(t *testing.T) {
	tcs := []struct {
		title   string
		digits  uint
		expType errors.ErrorType
	}{
		{"valid: default", precision.DefaultDigits, ""},
		{"valid: max", precision.MaxDigits, ""},
		{"invalid: zero", 0, errors.InvalidArgumentError},
		{"invalid: above backend limit", precision.MaxDigits + 1, errors.PrecisionErr},
	}

	for _, tc := range tcs {
		t.Run(
			tc.title, func(t *testing.T) {
				_, err := precision.New(tc.digits)
				if tc.expType == "" {
					require.NoError(t, err)
					return
				}
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.expType))
			},
		)
	}
}

func TestContext(t *testing.T) {
	cfg := precision.DefaultConfig()
	ctx := cfg.Context()
	assert.Equal(t, precision.DefaultDigits, ctx.Precision)
	assert.Equal(t, decimal.ToNearestEven, ctx.RoundingMode)
	assert.Equal(t, uint(precision.DefaultDigits+precision.GuardDigits), cfg.WithGuard(precision.GuardDigits).Digits)
}

func TestCovers(t *testing.T) {
	cfg := precision.Config{Digits: 50}
	tcs := []struct {
		residual string
		exp      bool
	}{
		{"1E-10", true},
		{"2.5E-45", true},
		{"9.9E-46", false},
		{"1E-60", false},
		{"0", false},
	}

	for _, tc := range tcs {
		t.Run(
			tc.residual, func(t *testing.T) {
				v, ok := new(decimal.Big).SetString(tc.residual)
				require.True(t, ok)
				assert.Equal(t, tc.exp, cfg.Covers(v))
			},
		)
	}
}
