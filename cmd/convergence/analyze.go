package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dora-network/series-convergence/analysis"
	"github.com/dora-network/series-convergence/config"
	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/estimate"
	"github.com/dora-network/series-convergence/metrics"
	"github.com/dora-network/series-convergence/reference"
	"github.com/dora-network/series-convergence/report"
	"github.com/dora-network/series-convergence/series"
	"github.com/dora-network/series-convergence/validation"
)

const (
	flagSamples    = "samples"
	flagMode       = "mode"
	flagTerm       = "term"
	flagCutoff     = "cutoff"
	flagExponent   = "exponent"
	flagTail       = "tail"
	flagOrder      = "order"
	flagDecay      = "decay"
	flagOrders     = "orders"
	flagBaseline   = "baseline"
	flagBoundOrder = "bound-order"
	flagWorkers    = "workers"
	flagFormat     = "format"
	flagPlot       = "plot"
	flagMetrics    = "metrics"
)

var analyzeBindings = bindings{
	"correction.mode":      flagMode,
	"correction.cutoff":    flagCutoff,
	"correction.tail":      flagTail,
	"correction.order":     flagOrder,
	"correction.decay":     flagDecay,
	"analysis.orders":      flagOrders,
	"analysis.baseline":    flagBaseline,
	"analysis.bound_order": flagBoundOrder,
	"analysis.workers":     flagWorkers,
	"output.format":        flagFormat,
	"output.plot":          flagPlot,
	"metrics.enabled":      flagMetrics,
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Sweep an approximation over sample points and report residuals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd, analyzeBindings)
			if err != nil {
				return err
			}
			if err := applyAnalyzeOverrides(cmd, &cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			log, err := newLogger(cfg, cmd.Name())
			if err != nil {
				return err
			}
			return runAnalyze(cmd.OutOrStdout(), cfg, log)
		},
	}

	flags := cmd.Flags()
	addCommonFlags(flags)
	flags.StringSlice(flagSamples, nil, "sample points n, strictly increasing (default 10,100,1000,10000)")
	flags.String(flagMode, "fixed-machin", "correction: none, fixed-machin, scaled-machin, asymptotic-tail, decay")
	flags.StringArray(flagTerm, nil, "Machin term a:b/c meaning a·arctan(b/c), repeatable (default Machin's formula)")
	flags.Int(flagCutoff, 0, "use only the first min(n, cutoff) Machin terms; 0 uses all")
	flags.String(flagExponent, "", "exponent p of n^-p (scaled-machin) or of w(n)^p (decay); default 1")
	flags.String(flagTail, "", "asymptotic tail: leibniz-euler, madhava, basel-euler-maclaurin")
	flags.Int(flagOrder, 0, "number of asymptotic tail terms; 0 picks the family default")
	flags.String(flagDecay, "", "decay weight: harmonic, inverse-square, alpha-pi")
	flags.IntSlice(flagOrders, analysis.DefaultOrders, "orders k of the scaled residuals δ(n)·n^k")
	flags.Float64(flagBaseline, 1, "convergence order of the uncorrected main series")
	flags.Float64(flagBoundOrder, 0, "report the smallest C with δ(n) <= C/n^p for this p; 0 skips it")
	flags.Int(flagWorkers, 1, "samples evaluated concurrently")
	flags.String(flagFormat, config.FormatTable, "output format: table, csv, json")
	flags.String(flagPlot, "", "write a log-log residual chart to this file (.png, .svg, .pdf)")
	flags.Bool(flagMetrics, false, "serve prometheus metrics while running")
	return cmd
}

// applyAnalyzeOverrides handles the flags that need parsing before they can replace a
// config value.
func applyAnalyzeOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed(flagSamples) {
		raw, err := flags.GetStringSlice(flagSamples)
		if err != nil {
			return errors.Wrap(errors.InvalidArgumentError, err, flagSamples)
		}
		if cfg.Samples, err = validation.ParseSamples(raw); err != nil {
			return err
		}
	}
	if flags.Changed(flagTerm) {
		raw, err := flags.GetStringArray(flagTerm)
		if err != nil {
			return errors.Wrap(errors.InvalidArgumentError, err, flagTerm)
		}
		terms := make([]series.Term, len(raw))
		for i, s := range raw {
			a, b, c, err := validation.ParseTriple(s)
			if err != nil {
				return err
			}
			terms[i] = series.Term{Coefficient: a, Numerator: b, Denominator: c}
		}
		cfg.Correction.Terms = terms
	}
	if flags.Changed(flagExponent) {
		raw, err := flags.GetString(flagExponent)
		if err != nil {
			return errors.Wrap(errors.InvalidArgumentError, err, flagExponent)
		}
		p, err := validation.ParseExponent(raw)
		if err != nil {
			return err
		}
		cfg.Correction.Exponent = p.String()
	}
	return nil
}

func runAnalyze(out io.Writer, cfg config.Config, log zerolog.Logger) error {
	constant, mainSeries, err := cfg.ConstantAndSeries()
	if err != nil {
		return err
	}
	approximator, err := series.NewApproximator(mainSeries, cfg.Correction)
	if err != nil {
		return err
	}

	instr := metrics.NewSweepInstrumentation("convergence")
	svr, err := metrics.StartMetricsServer(cfg.Metrics, instr, log, getVersion())
	if err != nil {
		return err
	}
	recorder := metrics.NewRecorder(instr, approximator.Correction.String())
	provider := reference.NewProvider(log)

	analyzer, err := analysis.New(cfg.Precision,
		analysis.WithOrders(cfg.Analysis.Orders...),
		analysis.WithWorkers(cfg.Analysis.Workers),
		analysis.WithLimits(cfg.Analysis.Limits),
		analysis.WithObserver(recorder),
		analysis.WithLogger(log),
		analysis.WithProvider(provider),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := analyzer.AnalyzeWith(cfg.Samples, approximator, constant)
	recorder.CacheStats(provider.Stats())
	if err != nil {
		return err
	}
	log.Info().
		Str("approximator", approximator.String()).
		Int("samples", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("sweep finished")

	var est *estimate.Estimate
	if len(results) >= 2 {
		e, err := estimate.EstimateConvergenceOrder(results, cfg.Analysis.Baseline)
		if err != nil {
			// an exact hit leaves a zero residual; the sweep itself is still worth reporting.
			log.Warn().Err(err).Msg("convergence order not estimated")
		} else {
			est = &e
		}
	}

	var bound *estimate.Bound
	if cfg.Analysis.BoundOrder > 0 {
		b, err := estimate.BoundConstant(results, cfg.Analysis.BoundOrder)
		if err != nil {
			return err
		}
		bound = &b
	}

	if err := write(out, cfg, constant, approximator, results, analyzer.Orders(), est, bound); err != nil {
		return err
	}
	if cfg.Output.Plot != "" {
		if err := report.PlotLogLog(cfg.Output.Plot, results, bound); err != nil {
			return err
		}
		log.Info().Str("path", cfg.Output.Plot).Msg("chart written")
	}

	if svr != nil {
		if cfg.Metrics.Hold > 0 {
			log.Info().Dur("hold", cfg.Metrics.Hold).Str("addr", svr.Addr()).Msg("keeping metrics server up for scraping")
			time.Sleep(cfg.Metrics.Hold)
		}
		return svr.Stop()
	}
	return nil
}

func write(
	out io.Writer,
	cfg config.Config,
	constant reference.Constant,
	approximator series.Approximator,
	results []analysis.Result,
	orders []int,
	est *estimate.Estimate,
	bound *estimate.Bound,
) error {
	switch cfg.Output.Format {
	case config.FormatCSV:
		return report.WriteCSV(out, results, orders)
	case config.FormatJSON:
		summary := report.NewSummary(
			constant.String(),
			approximator.Series.String(),
			approximator.Correction.String(),
			cfg.Precision.Digits,
			results,
			est,
			bound,
		)
		return report.WriteJSON(out, summary)
	default:
		if _, err := fmt.Fprintf(out, "%s ≈ %s (%d digits)\n", constant, approximator, cfg.Precision.Digits); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, report.Table(results, orders)); err != nil {
			return err
		}
		if est != nil {
			if _, err := fmt.Fprintf(out, "slope %.4f  intercept %.4f  exponent %.4f  R² %.6f\n",
				est.Slope, est.Intercept, est.EstimatedExponent, est.RSquared); err != nil {
				return err
			}
		}
		if bound != nil {
			if _, err := fmt.Fprintf(out, "C = %s at n=%d (p=%g)\n",
				report.Sci(bound.C, report.SignificantDigits), bound.N, bound.P); err != nil {
				return err
			}
		}
		return nil
	}
}
