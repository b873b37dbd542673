// Package config loads the settings of the convergence binary. Values come from, in
// increasing priority: defaults, an optional config file (YAML, TOML or JSON), CONVERGENCE_*
// environment variables and command line flags bound by the caller.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/dora-network/series-convergence/analysis"
	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/metrics"
	"github.com/dora-network/series-convergence/precision"
	"github.com/dora-network/series-convergence/reference"
	"github.com/dora-network/series-convergence/search"
	"github.com/dora-network/series-convergence/series"
)

const EnvPrefix = "CONVERGENCE"

const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

type Analysis struct {
	Orders     []int           `mapstructure:"orders"`
	Workers    int             `mapstructure:"workers"`
	Limits     analysis.Limits `mapstructure:"limits"`
	Baseline   float64         `mapstructure:"baseline"`
	BoundOrder float64         `mapstructure:"bound_order"`
}

type Output struct {
	Format string `mapstructure:"format"`
	Plot   string `mapstructure:"plot"`
}

type Log struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

type Config struct {
	Constant   string           `mapstructure:"constant"`
	Series     string           `mapstructure:"series"`
	Precision  precision.Config `mapstructure:"precision"`
	Samples    []uint64         `mapstructure:"samples"`
	Correction series.Spec      `mapstructure:"correction"`
	Analysis   Analysis         `mapstructure:"analysis"`
	Output     Output           `mapstructure:"output"`
	Search     search.Grid      `mapstructure:"search"`
	Metrics    metrics.Config   `mapstructure:"metrics"`
	Log        Log              `mapstructure:"log"`
}

// SetDefaults registers every key with its default, which also makes every key visible to
// environment lookups.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("constant", reference.Pi.String())
	v.SetDefault("series", "")
	v.SetDefault("precision.digits", precision.DefaultDigits)
	v.SetDefault("samples", []uint64{10, 100, 1000, 10000})

	spec := series.DefaultSpec()
	v.SetDefault("correction.mode", string(spec.Mode))
	v.SetDefault("correction.terms", spec.Terms)
	v.SetDefault("correction.cutoff", 0)
	v.SetDefault("correction.exponent", "")
	v.SetDefault("correction.tail", "")
	v.SetDefault("correction.order", 0)
	v.SetDefault("correction.decay", "")

	limits := analysis.DefaultLimits()
	v.SetDefault("analysis.orders", analysis.DefaultOrders)
	v.SetDefault("analysis.workers", 1)
	v.SetDefault("analysis.limits.max_n", limits.MaxN)
	v.SetDefault("analysis.limits.max_samples", limits.MaxSamples)
	v.SetDefault("analysis.baseline", 1.0)
	v.SetDefault("analysis.bound_order", 0.0)

	v.SetDefault("output.format", FormatTable)
	v.SetDefault("output.plot", "")

	grid := search.DefaultGrid()
	v.SetDefault("search.coefficient_min", grid.CoefficientMin)
	v.SetDefault("search.coefficient_max", grid.CoefficientMax)
	v.SetDefault("search.denominator_min", grid.DenominatorMin)
	v.SetDefault("search.denominator_max", grid.DenominatorMax)
	v.SetDefault("search.terms", grid.Terms)
	v.SetDefault("search.n", grid.N)
	v.SetDefault("search.max_candidates", grid.MaxCandidates)

	m := metrics.DefaultConfig()
	v.SetDefault("metrics.enabled", m.Enabled)
	v.SetDefault("metrics.path", m.Path)
	v.SetDefault("metrics.host", m.Host)
	v.SetDefault("metrics.port", m.Port)
	v.SetDefault("metrics.http_timeout", m.HttpTimeout)
	v.SetDefault("metrics.http_header_timeout", m.HttpHeaderTimeout)
	v.SetDefault("metrics.hold", m.Hold)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.console", false)
}

// New returns a viper instance with defaults and environment lookups configured.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path into v when path is not empty and decodes the result.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrap(errors.ConfigurationErr, err, "read config "+path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.ConfigurationErr, err, "decode config")
	}
	return cfg, nil
}

// Validate checks the settings a sweep depends on. Samples are validated by the analyzer.
func (c Config) Validate() error {
	if err := c.Precision.Validate(); err != nil {
		return err
	}
	if _, err := reference.ParseConstant(c.Constant); err != nil {
		return err
	}
	if _, err := series.ParseMainSeries(c.Series); err != nil {
		return err
	}
	if _, err := c.Correction.Correction(); err != nil {
		return err
	}
	switch c.Output.Format {
	case FormatTable, FormatCSV, FormatJSON:
	default:
		return errors.Configuration("unknown output format %q", c.Output.Format)
	}
	if c.Analysis.Workers < 0 {
		return errors.InvalidArgument("workers must not be negative, got %d", c.Analysis.Workers)
	}
	return nil
}

// ConstantAndSeries resolves the constant and the main series converging to it. An empty
// series setting picks the natural one for the constant.
func (c Config) ConstantAndSeries() (reference.Constant, series.MainSeries, error) {
	constant, err := reference.ParseConstant(c.Constant)
	if err != nil {
		return 0, 0, err
	}
	if strings.TrimSpace(c.Series) == "" {
		s, err := analysis.SeriesFor(constant)
		return constant, s, err
	}
	s, err := series.ParseMainSeries(c.Series)
	return constant, s, err
}
