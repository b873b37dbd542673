package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/logger"
)

var longHelp = strings.TrimSpace(`
Numerical experiments on structured series approximations to π and ζ(2).

A slowly convergent main series (Leibniz for π, Basel for ζ(2)) is combined with a
correction term. For every sample n the tool reports the residual against the true
constant, scaled residuals δ(n)·n^k, the number of matching digits, and an empirical
convergence order from a log-log fit.
`)

var exampleUsage = strings.TrimSpace(`
  convergence analyze --samples 10,100,1000 --mode asymptotic-tail --tail madhava
  convergence analyze --constant zeta2 --mode asymptotic-tail --tail basel-euler-maclaurin --order 2
  convergence analyze --config experiment.yaml --format json --plot residual.png
  convergence reference --constant pi --digits 100
  convergence search --coef-min -4 --coef-max 4 --den-min 2 --den-max 40 --terms 2
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "convergence",
		Short:         "Measure how fast structured series approximations converge",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().String(flagConfig, "", "config file (yaml, toml or json)")
	root.PersistentFlags().String(flagLogLevel, "", "log level (debug, info, warn, error)")

	root.AddCommand(newAnalyzeCmd(), newReferenceCmd(), newSearchCmd())
	return root
}

func main() {
	err := newRootCmd(os.Stdout).Execute()
	if err != nil {
		// the environment logger when the command failed before building its own.
		logger.Global().Error().Err(err).Str("type", string(errors.TypeOf(err))).Msg("command failed")
	}
	if closeErr := logger.Close(); closeErr != nil {
		fmt.Fprintln(os.Stderr, "closing logs:", closeErr)
	}
	if err != nil {
		os.Exit(1)
	}
}
