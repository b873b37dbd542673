package main

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dora-network/series-convergence/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestReferenceCmd(t *testing.T) {
	out, err := execute(t, "reference", "--constant", "pi", "--digits", "20")
	require.NoError(t, err)
	assert.Equal(t, "3.1415926535897932384\n", out)

	_, err = execute(t, "reference", "--constant", "e")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ConfigurationErr))
}

func TestAnalyzeCmd(t *testing.T) {
	t.Run(
		"csv", func(t *testing.T) {
			out, err := execute(t, "analyze",
				"--samples", "10,20,40",
				"--mode", "asymptotic-tail",
				"--tail", "madhava",
				"--orders", "1,5",
				"--digits", "40",
				"--format", "csv",
			)
			require.NoError(t, err)
			records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
			require.NoError(t, err)
			require.Len(t, records, 4)
			assert.Equal(t, []string{
				"n", "approx", "residual", "residual_n^1", "residual_n^5",
				"matching_digits", "main_tail", "alpha", "k_over_alpha",
			}, records[0])
			assert.Equal(t, "40", records[3][0])
		},
	)

	t.Run(
		"json with terms, bound and plot", func(t *testing.T) {
			plot := filepath.Join(t.TempDir(), "residual.png")
			out, err := execute(t, "analyze",
				"--samples", "10,100",
				"--mode", "scaled-machin",
				"--term", "4:1/5",
				"--term", "-1:239",
				"--exponent", "2",
				"--bound-order", "1",
				"--format", "json",
				"--plot", plot,
			)
			require.NoError(t, err)
			assert.Contains(t, out, `"correction": "scaled-machin[fixed-machin[4·atan(1/5) + -1·atan(1/239)] · n^-2]"`)
			assert.Contains(t, out, `"bound"`)
			assert.FileExists(t, plot)
		},
	)

	t.Run(
		"table", func(t *testing.T) {
			out, err := execute(t, "analyze", "--samples", "10,100", "--mode", "none")
			require.NoError(t, err)
			assert.Contains(t, out, "pi ≈ leibniz + none")
			assert.Contains(t, out, "slope")
		},
	)

	t.Run(
		"bad samples", func(t *testing.T) {
			_, err := execute(t, "analyze", "--samples", "100,10")
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.InvalidArgumentError))
		},
	)

	t.Run(
		"unknown mode", func(t *testing.T) {
			_, err := execute(t, "analyze", "--samples", "10", "--mode", "cubic")
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ConfigurationErr))
		},
	)
}

func TestSearchCmd(t *testing.T) {
	t.Run(
		"explicit grid", func(t *testing.T) {
			out, err := execute(t, "search",
				"--coef-min", "-1", "--coef-max", "1",
				"--den-min", "1", "--den-max", "3",
				"--terms", "1", "--n", "1",
				"--digits", "30",
			)
			require.NoError(t, err)
			assert.Contains(t, out, "best -1:1/1")
			assert.Contains(t, out, "evaluated 6")
		},
	)

	t.Run(
		"defaults", func(t *testing.T) {
			out, err := execute(t, "search", "--digits", "20")
			require.NoError(t, err)
			// C(39, 2) · 8²
			assert.Contains(t, out, "evaluated 47424")
		},
	)

	t.Run(
		"grid over the candidate limit", func(t *testing.T) {
			_, err := execute(t, "search", "--den-max", "250")
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.InvalidArgumentError))
		},
	)
}
