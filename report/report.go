// Package report renders sweep results: CSV and JSON for further processing, a terminal table
// for reading, and a log-log chart of the residuals.
package report

import (
	"encoding/csv"
	"io"
	"slices"
	"strconv"

	"github.com/ericlagergren/decimal"
	json "github.com/goccy/go-json"

	"github.com/dora-network/series-convergence/analysis"
	"github.com/dora-network/series-convergence/errors"
	"github.com/dora-network/series-convergence/estimate"
	"github.com/dora-network/series-convergence/math"
)

// SignificantDigits is how many digits residuals are shown with in tables and charts.
const SignificantDigits = 8

// Sci returns x rounded to digits significant digits. x is not modified.
func Sci(x *decimal.Big, digits int) string {
	if x == nil {
		return ""
	}
	ctx := decimal.Context{Precision: digits, RoundingMode: decimal.ToNearestEven}
	return ctx.Round(math.Copy(x)).String()
}

func scaledHeader(k int) string {
	return "residual_n^" + strconv.Itoa(k)
}

func sortedOrders(orders []int) []int {
	out := slices.Clone(orders)
	slices.Sort(out)
	return out
}

// WriteCSV writes one row per result with the columns
// n, approx, residual, residual_n^k for each k in orders, matching_digits, main_tail, alpha,
// k_over_alpha. Values are written at full precision; alpha and k_over_alpha are empty when
// the correction vanishes.
func WriteCSV(w io.Writer, results []analysis.Result, orders []int) error {
	orders = sortedOrders(orders)
	cw := csv.NewWriter(w)

	header := []string{"n", "approx", "residual"}
	for _, k := range orders {
		header = append(header, scaledHeader(k))
	}
	header = append(header, "matching_digits", "main_tail", "alpha", "k_over_alpha")
	if err := cw.Write(header); err != nil {
		return errors.Wrap(errors.InternalError, err, "write csv header")
	}

	for _, r := range results {
		row := []string{strconv.FormatUint(r.N, 10), r.Approx.String(), r.Residual.String()}
		for _, k := range orders {
			v, ok := r.Scaled[k]
			if !ok {
				return errors.AtSample(r.N, "csv", errors.InvalidArgument("no scaled residual of order %d", k))
			}
			row = append(row, v.String())
		}
		row = append(row, strconv.Itoa(r.MatchingDigits), formatFloat(r.MainTail))
		if r.Structure != nil {
			row = append(row, r.Structure.Alpha.String(), r.Structure.KOverAlpha.String())
		} else {
			row = append(row, "", "")
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(errors.InternalError, err, "write csv row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(errors.InternalError, err, "flush csv")
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Sample is the JSON form of analysis.Result. Decimals are strings so no digit is lost.
type Sample struct {
	N              uint64            `json:"n"`
	Approx         string            `json:"approx"`
	Residual       string            `json:"residual"`
	Scaled         map[string]string `json:"scaled"`
	MatchingDigits int               `json:"matching_digits"`
	MainTail       float64           `json:"main_tail"`
	Structure      *Structure        `json:"structure,omitempty"`
}

// Structure is the JSON form of analysis.Structure.
type Structure struct {
	Alpha      string `json:"alpha"`
	Density    string `json:"density"`
	Entropy    string `json:"entropy"`
	K          string `json:"k"`
	KOverAlpha string `json:"k_over_alpha"`
}

type Bound struct {
	C string  `json:"c"`
	N uint64  `json:"n"`
	P float64 `json:"p"`
}

// Summary is everything a sweep produced.
type Summary struct {
	Constant   string             `json:"constant"`
	Series     string             `json:"series"`
	Correction string             `json:"correction"`
	Digits     uint               `json:"digits"`
	Samples    []Sample           `json:"samples"`
	Estimate   *estimate.Estimate `json:"estimate,omitempty"`
	Bound      *Bound             `json:"bound,omitempty"`
}

// NewSummary converts results into their JSON form. est and bound may be nil.
func NewSummary(
	constant, series, correction string,
	digits uint,
	results []analysis.Result,
	est *estimate.Estimate,
	bound *estimate.Bound,
) Summary {
	s := Summary{
		Constant:   constant,
		Series:     series,
		Correction: correction,
		Digits:     digits,
		Samples:    make([]Sample, len(results)),
		Estimate:   est,
	}
	for i, r := range results {
		scaled := make(map[string]string, len(r.Scaled))
		for k, v := range r.Scaled {
			scaled[strconv.Itoa(k)] = v.String()
		}
		s.Samples[i] = Sample{
			N:              r.N,
			Approx:         r.Approx.String(),
			Residual:       r.Residual.String(),
			Scaled:         scaled,
			MatchingDigits: r.MatchingDigits,
			MainTail:       r.MainTail,
		}
		if st := r.Structure; st != nil {
			s.Samples[i].Structure = &Structure{
				Alpha:      st.Alpha.String(),
				Density:    st.Density.String(),
				Entropy:    st.Entropy.String(),
				K:          st.K.String(),
				KOverAlpha: st.KOverAlpha.String(),
			}
		}
	}
	if bound != nil && bound.C != nil {
		s.Bound = &Bound{C: bound.C.String(), N: bound.N, P: bound.P}
	}
	return s
}

// WriteJSON writes summary as indented JSON.
func WriteJSON(w io.Writer, summary Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return errors.Wrap(errors.InternalError, err, "encode json summary")
	}
	return nil
}
