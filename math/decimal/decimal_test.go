package decimal_test

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dora-network/series-convergence/errors"
	mdecimal "github.com/dora-network/series-convergence/math/decimal"
)

func TestToBig(t *testing.T) {
	tcs := []struct {
		name string
		in   decimal.Decimal
		exp  string
	}{
		{name: "integer", in: decimal.MustParse("2"), exp: "2"},
		{name: "trailing zeros kept", in: decimal.MustParse("1.500"), exp: "1.500"},
		{name: "negative", in: decimal.MustParse("-0.0001"), exp: "-0.0001"},
	}
	for _, tc := range tcs {
		t.Run(
			tc.name, func(t *testing.T) {
				assert.Equal(t, tc.exp, mdecimal.ToBig(tc.in).String())
			},
		)
	}
}

func TestParseAndConvert(t *testing.T) {
	d, err := mdecimal.Parse("-1.25")
	require.NoError(t, err)
	big := mdecimal.ToBig(d)
	assert.Equal(t, -1, big.Sign())
	f, _ := big.Float64()
	assert.Equal(t, -1.25, f)

	_, err = mdecimal.Parse("one")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.InvalidArgumentError))
}
