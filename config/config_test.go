package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dora-network/series-convergence/config"
	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/reference"
	"github.com/dora-network/series-convergence/search"
	"github.com/dora-network/series-convergence/series"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "pi", cfg.Constant)
	assert.Equal(t, uint(50), cfg.Precision.Digits)
	assert.Equal(t, []uint64{10, 100, 1000, 10000}, cfg.Samples)
	assert.Equal(t, series.ModeFixedMachin, cfg.Correction.Mode)
	assert.Equal(t, series.MachinTerms(), cfg.Correction.Terms)
	assert.Equal(t, []int{1, 2, 3, 5, 7}, cfg.Analysis.Orders)
	assert.Equal(t, uint64(10_000_000), cfg.Analysis.Limits.MaxN)
	assert.Equal(t, config.FormatTable, cfg.Output.Format)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, search.DefaultGrid(), cfg.Search)
	require.NoError(t, cfg.Search.Validate())

	constant, s, err := cfg.ConstantAndSeries()
	require.NoError(t, err)
	assert.Equal(t, reference.Pi, constant)
	assert.Equal(t, series.Leibniz, s)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "convergence.yaml")
	contents := `
constant: zeta2
precision:
  digits: 80
samples: [10, 20, 40]
correction:
  mode: asymptotic-tail
  tail: basel-euler-maclaurin
  order: 3
analysis:
  workers: 4
  orders: [7, 9]
output:
  format: json
metrics:
  enabled: true
  hold: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := config.Load(config.New(), path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, uint(80), cfg.Precision.Digits)
	assert.Equal(t, []uint64{10, 20, 40}, cfg.Samples)
	assert.Equal(t, series.ModeAsymptoticTail, cfg.Correction.Mode)
	assert.Equal(t, 3, cfg.Correction.Order)
	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, []int{7, 9}, cfg.Analysis.Orders)
	assert.Equal(t, 30*time.Second, cfg.Metrics.Hold)

	constant, s, err := cfg.ConstantAndSeries()
	require.NoError(t, err)
	assert.Equal(t, reference.Zeta2, constant)
	assert.Equal(t, series.Basel, s)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("CONVERGENCE_PRECISION_DIGITS", "120")
	t.Setenv("CONVERGENCE_CORRECTION_MODE", "none")

	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	assert.Equal(t, uint(120), cfg.Precision.Digits)
	assert.Equal(t, series.ModeNone, cfg.Correction.Mode)
}

func TestValidate(t *testing.T) {
	base, err := config.Load(config.New(), "")
	require.NoError(t, err)

	tcs := []struct {
		title   string
		modify  func(c config.Config) config.Config
		errType errors.ErrorType
	}{
		{"zero digits", func(c config.Config) config.Config { c.Precision.Digits = 0; return c }, errors.InvalidArgumentError},
		{"too many digits", func(c config.Config) config.Config { c.Precision.Digits = 20_000; return c }, errors.PrecisionErr},
		{"unknown constant", func(c config.Config) config.Config { c.Constant = "e"; return c }, errors.ConfigurationErr},
		{"unknown series", func(c config.Config) config.Config { c.Series = "wallis"; return c }, errors.ConfigurationErr},
		{"unknown mode", func(c config.Config) config.Config { c.Correction.Mode = "quartic"; return c }, errors.ConfigurationErr},
		{"unknown format", func(c config.Config) config.Config { c.Output.Format = "xml"; return c }, errors.ConfigurationErr},
		{"negative workers", func(c config.Config) config.Config { c.Analysis.Workers = -1; return c }, errors.InvalidArgumentError},
		{
			"negative decay exponent",
			func(c config.Config) config.Config {
				c.Correction = series.Spec{Mode: series.ModeDecay, Decay: "harmonic", Exponent: "-1"}
				return c
			},
			errors.InvalidArgumentError,
		},
	}

	for _, tc := range tcs {
		t.Run(
			tc.title, func(t *testing.T) {
				err := tc.modify(base).Validate()
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.errType), err.Error())
			},
		)
	}

	t.Run(
		"missing file", func(t *testing.T) {
			_, err := config.Load(config.New(), filepath.Join(t.TempDir(), "nope.yaml"))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ConfigurationErr))
		},
	)
}
