package tca

import (
	"fmt"
	"math"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormattedRow is one report row rendered to fixed-width strings.
type FormattedRow struct {
	Metric Metric
	Maker  string
	Taker  string
	Total  string
	Desc   string
}

// FormattedReport preserves the registry's row order.
type FormattedReport struct {
	Title string
	Rows  []FormattedRow
}

// FormatReport converts every numeric cell to its fixed-width string per the
// metric's format category. With dropIncomplete set, rows with any missing or
// NaN cell are removed; otherwise missing cells render empty.
func FormatReport(r *Report, dropIncomplete bool) *FormattedReport {
	out := &FormattedReport{Title: r.Title}

	for _, def := range definitions {
		if def.Format == FormatLabel {
			out.Rows = append(out.Rows, FormattedRow{
				Metric: def.Name,
				Desc:   r.Title,
			})
			continue
		}

		row := FormattedRow{Metric: def.Name, Desc: def.Desc}
		complete := true

		cells := []struct {
			col Column
			dst *string
		}{
			{r.Maker, &row.Maker},
			{r.Taker, &row.Taker},
			{r.Total, &row.Total},
		}
		for _, c := range cells {
			v, ok := c.col[def.Name]
			if !ok || math.IsNaN(v) {
				complete = false
				continue
			}
			*c.dst = formatValue(def.Format, v)
		}

		if dropIncomplete && !complete {
			continue
		}
		out.Rows = append(out.Rows, row)
	}

	return out
}

var printer = message.NewPrinter(language.English)

func formatValue(cat FormatCategory, v float64) string {
	switch cat {
	case FormatComma:
		return fmt.Sprintf("%10s", printer.Sprintf("%.0f", v))
	case FormatPrice:
		return fmt.Sprintf("%10.2f", v)
	case FormatPercent:
		return fmt.Sprintf("%10s", fmt.Sprintf("%.0f%%", v*100))
	case FormatPercent2:
		return fmt.Sprintf("%10s", fmt.Sprintf("%.2f%%", v*100))
	}

	return ""
}

// String renders the formatted report as a terminal table.
func (r *Report) String() string {
	display := &strings.Builder{}

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"", "Maker", "Taker", "Total", "Desc"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetColumnSeparator("")
	table.SetBorder(false)

	for _, row := range FormatReport(r, true).Rows {
		table.Append([]string{string(row.Metric), row.Maker, row.Taker, row.Total, row.Desc})
	}

	table.Render()
	return display.String()
}
