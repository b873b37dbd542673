package reference_test

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/precision"
	"github.com/dora-network/series-convergence/reference"
)

const (
	pi60      = "3.14159265358979323846264338327950288419716939937510582097494"
	zeta2At40 = "1.644934066848226436472415166646025189218"
)

func TestValue(t *testing.T) {
	tcs := []struct {
		name     string
		constant reference.Constant
		digits   uint
		exp      string
	}{
		{"pi 30 digits", reference.Pi, 30, pi60[:31]},
		{"pi 60 digits", reference.Pi, 60, pi60},
		{"zeta2 40 digits", reference.Zeta2, 40, zeta2At40},
	}

	for _, tc := range tcs {
		t.Run(
			tc.name, func(t *testing.T) {
				v, err := reference.Value(tc.constant, precision.Config{Digits: tc.digits})
				require.NoError(t, err)
				assert.Equal(t, tc.exp, v.String())
			},
		)
	}
}

func TestValueIsPrefixConsistent(t *testing.T) {
	long, err := reference.Value(reference.Pi, precision.Config{Digits: 60})
	require.NoError(t, err)
	short, err := reference.Value(reference.Pi, precision.Config{Digits: 30})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(long.String(), short.String()), "%s vs %s", long, short)
}

func TestValueErrors(t *testing.T) {
	_, err := reference.Value(reference.Pi, precision.Config{Digits: precision.MaxDigits + 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.PrecisionErr))

	_, err = reference.Value(reference.Pi, precision.Config{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.InvalidArgumentError))

	_, err = reference.Value(reference.Constant(42), precision.DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ConfigurationErr))
}

func TestParseConstant(t *testing.T) {
	c, err := reference.ParseConstant("PI")
	require.NoError(t, err)
	assert.Equal(t, reference.Pi, c)

	c, err = reference.ParseConstant("zeta(2)")
	require.NoError(t, err)
	assert.Equal(t, reference.Zeta2, c)
	assert.Equal(t, "zeta2", c.String())

	_, err = reference.ParseConstant("e")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ConfigurationErr))
}

func TestProvider(t *testing.T) {
	p := reference.NewProvider(zerolog.Nop())
	cfg := precision.Config{Digits: 40}

	first, err := p.Value(reference.Pi, cfg)
	require.NoError(t, err)
	// mutating a returned value must not leak into the cache.
	first.SetUint64(7)

	second, err := p.Value(reference.Pi, cfg)
	require.NoError(t, err)
	assert.Equal(t, pi60[:41], second.String())

	hits, misses := p.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)

	_, err = p.Value(reference.Pi, precision.Config{Digits: precision.MaxDigits + 1})
	assert.True(t, errors.Is(err, errors.PrecisionErr))
}
