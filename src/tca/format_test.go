package tca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simondyates/SpiderRock/src/models"
)

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "     1,234", formatValue(FormatComma, 1234.4))
	assert.Equal(t, "      5.10", formatValue(FormatPrice, 5.1))
	assert.Equal(t, "       50%", formatValue(FormatPercent, 0.5))
	assert.Equal(t, "    12.34%", formatValue(FormatPercent2, 0.1234))
}

func TestFormatReport(t *testing.T) {
	fills := []models.Fill{
		stockFill("c1", models.SideBuy, models.RoleTaker, 10.00, 5, 9.90, 10.10),
	}

	report, err := Compute(fills, Options{})
	require.NoError(t, err)

	t.Run("drops rows with missing cells", func(t *testing.T) {
		formatted := FormatReport(report, true)

		seen := map[Metric]FormattedRow{}
		for _, row := range formatted.Rows {
			seen[row.Metric] = row
		}

		// Base metrics survive, delta and qwap families do not exist for a
		// zero-delta order without references.
		assert.Contains(t, seen, MetricExecPx)
		assert.NotContains(t, seen, MetricSlipQwapPx)
		assert.NotContains(t, seen, MetricExecDTheoArrMidPx)

		assert.Equal(t, "     10.00", seen[MetricExecPx].Total)
		// The zeroed Maker partition formats as a literal zero.
		assert.Equal(t, "      0.00", seen[MetricExecPx].Maker)
	})

	t.Run("label row carries the order title", func(t *testing.T) {
		formatted := FormatReport(report, true)

		require.NotEmpty(t, formatted.Rows)
		first := formatted.Rows[0]
		assert.Equal(t, MetricOrder, first.Metric)
		assert.Equal(t, report.Title, first.Desc)
		assert.Empty(t, first.Total)
	})

	t.Run("keeps incomplete rows when not dropping", func(t *testing.T) {
		formatted := FormatReport(report, false)

		seen := map[Metric]FormattedRow{}
		for _, row := range formatted.Rows {
			seen[row.Metric] = row
		}

		require.Contains(t, seen, MetricSlipQwapPx)
		assert.Empty(t, seen[MetricSlipQwapPx].Total)
		// The zeroed partitions still render.
		assert.Equal(t, "      0.00", seen[MetricSlipQwapPx].Maker)
	})

	t.Run("row order follows the registry", func(t *testing.T) {
		formatted := FormatReport(report, false)
		require.Equal(t, len(Definitions()), len(formatted.Rows))

		for i, def := range Definitions() {
			assert.Equal(t, def.Name, formatted.Rows[i].Metric)
		}
	})
}

func TestReportString(t *testing.T) {
	fills := []models.Fill{
		stockFill("c1", models.SideBuy, models.RoleTaker, 10.00, 5, 9.90, 10.10),
	}

	report, err := Compute(fills, Options{})
	require.NoError(t, err)

	rendered := report.String()

	assert.Contains(t, rendered, "MAKER")
	assert.Contains(t, rendered, "TAKER")
	assert.Contains(t, rendered, "TOTAL")
	assert.Contains(t, rendered, string(MetricExecPx))
	assert.Contains(t, rendered, "10.00")
	assert.Contains(t, rendered, report.Title)
	// Rendering drops the incomplete families, same as the CSV output.
	assert.NotContains(t, rendered, string(MetricSlipQwapPx))
}
