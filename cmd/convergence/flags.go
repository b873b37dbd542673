package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dora-network/series-convergence/config"
	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/logger"
)

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagConstant = "constant"
	flagSeries   = "series"
	flagDigits   = "digits"
)

// bindings maps viper keys to the flags overriding them.
type bindings map[string]string

func addCommonFlags(flags *pflag.FlagSet) {
	flags.String(flagConstant, "pi", "constant to approximate (pi, zeta2)")
	flags.String(flagSeries, "", "main series (leibniz, basel); defaults to the one converging to --constant")
	flags.Uint(flagDigits, 50, "significant decimal digits for every high-precision operation")
}

var commonBindings = bindings{
	"constant":         flagConstant,
	"series":           flagSeries,
	"precision.digits": flagDigits,
	"log.level":        flagLogLevel,
}

// load builds the configuration for cmd: defaults, then the --config file, then
// CONVERGENCE_* variables, then every flag the user set explicitly.
func load(cmd *cobra.Command, extra bindings) (config.Config, error) {
	v := config.New()
	for _, b := range []bindings{commonBindings, extra} {
		for key, name := range b {
			f := cmd.Flags().Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return config.Config{}, errors.Wrap(errors.InternalError, err, "bind flag "+name)
			}
		}
	}

	path, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return config.Config{}, errors.Wrap(errors.InternalError, err, "config flag")
	}
	return config.Load(v, path)
}

// newLogger builds the logger cfg describes and makes it the global one, tagged with the
// command name, so main reports failures through it.
func newLogger(cfg config.Config, command string) (zerolog.Logger, error) {
	log, err := logger.New(cfg.Log.Level, cfg.Log.File, cfg.Log.Console)
	if err != nil {
		return zerolog.Nop(), err
	}
	logger.SetGlobal(log)
	logger.AddFieldsToGlobal(map[string]any{"command": command})
	return *logger.Global(), nil
}
