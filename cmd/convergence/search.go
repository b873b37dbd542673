package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dora-network/series-convergence/report"
	"github.com/dora-network/series-convergence/search"
)

const (
	flagCoefMin       = "coef-min"
	flagCoefMax       = "coef-max"
	flagDenMin        = "den-min"
	flagDenMax        = "den-max"
	flagTerms         = "terms"
	flagN             = "n"
	flagMaxCandidates = "max-candidates"
)

var searchBindings = bindings{
	"search.coefficient_min": flagCoefMin,
	"search.coefficient_max": flagCoefMax,
	"search.denominator_min": flagDenMin,
	"search.denominator_max": flagDenMax,
	"search.terms":           flagTerms,
	"search.n":               flagN,
	"search.max_candidates":  flagMaxCandidates,
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Brute-force the Machin-like correction that best fits the main series at n",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd, searchBindings)
			if err != nil {
				return err
			}
			if err := cfg.Precision.Validate(); err != nil {
				return err
			}
			log, err := newLogger(cfg, cmd.Name())
			if err != nil {
				return err
			}
			constant, mainSeries, err := cfg.ConstantAndSeries()
			if err != nil {
				return err
			}

			best, err := search.Search(cfg.Search, constant, mainSeries, cfg.Precision, search.WithLogger(log))
			if err != nil {
				return err
			}

			terms := make([]string, len(best.Terms))
			for i, t := range best.Terms {
				terms[i] = fmt.Sprintf("%d:%d/%d", t.Coefficient, t.Numerator, t.Denominator)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "best %s  residual %s  evaluated %d\n",
				strings.Join(terms, " "), report.Sci(best.Residual, report.SignificantDigits), best.Evaluated)
			return err
		},
	}

	grid := search.DefaultGrid()
	flags := cmd.Flags()
	addCommonFlags(flags)
	flags.Int64(flagCoefMin, grid.CoefficientMin, "smallest coefficient a")
	flags.Int64(flagCoefMax, grid.CoefficientMax, "largest coefficient a")
	flags.Int64(flagDenMin, grid.DenominatorMin, "smallest denominator c")
	flags.Int64(flagDenMax, grid.DenominatorMax, "largest denominator c")
	flags.Int(flagTerms, grid.Terms, "number of arctan terms per candidate")
	flags.Uint64(flagN, grid.N, "number of main series terms the correction is fitted at")
	flags.Int(flagMaxCandidates, grid.MaxCandidates, "refuse grids with more candidates than this")
	return cmd
}
