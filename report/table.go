package report

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dora-network/series-convergence/analysis"
)

var (
	colorPrimary = lipgloss.Color("#8B5CF6")
	colorMuted   = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// Table renders results for a terminal. Approximations are cut to 20 significant digits and
// residuals to SignificantDigits; use WriteCSV for full precision.
func Table(results []analysis.Result, orders []int) string {
	orders = sortedOrders(orders)

	headers := []string{"n", "approx", "residual"}
	for _, k := range orders {
		headers = append(headers, "δ·n^"+strconv.Itoa(k))
	}
	headers = append(headers, "digits", "K/α")

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		row := []string{strconv.FormatUint(r.N, 10), Sci(r.Approx, 20), Sci(r.Residual, SignificantDigits)}
		for _, k := range orders {
			row = append(row, Sci(r.Scaled[k], SignificantDigits))
		}
		row = append(row, strconv.Itoa(r.MatchingDigits))
		if r.Structure != nil {
			row = append(row, Sci(r.Structure.KOverAlpha, SignificantDigits))
		} else {
			row = append(row, "")
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}
