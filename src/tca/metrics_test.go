package tca

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simondyates/SpiderRock/src/models"
)

func stockFill(clOrdID string, side models.Side, role models.LiquidityRole, px, qty, bid, ask float64) models.Fill {
	return models.Fill{
		ClOrdID:    clOrdID,
		ChildSize:  qty,
		SecType:    models.SecTypeStock,
		OrderSide:  side,
		MakerTaker: role,
		Price:      px,
		Quantity:   qty,
		Bid:        bid,
		Ask:        ask,
		ParentBid:  10.00,
		ParentAsk:  10.10,
	}
}

func f64(v float64) *float64 { return &v }

func TestCompute(t *testing.T) {
	t.Run("round trip stock order", func(t *testing.T) {
		fills := []models.Fill{
			stockFill("c1", models.SideBuy, models.RoleTaker, 10.00, 5, 9.90, 10.10),
		}

		report, err := Compute(fills, Options{})
		require.NoError(t, err)

		exec, ok := report.Cell("Total", MetricExecPx)
		require.True(t, ok)
		assert.InDelta(t, 10.00, exec, 1e-9)

		slip, ok := report.Cell("Total", MetricSlipArrMidPx)
		require.True(t, ok)
		assert.InDelta(t, 0.05, slip, 1e-9)

		usd, ok := report.Cell("Total", MetricSlipArrMidUSD)
		require.True(t, ok)
		assert.InDelta(t, 0.25, usd, 1e-9)

		spread, ok := report.Cell("Total", MetricAvgFillPctSpread)
		require.True(t, ok)
		assert.InDelta(t, 0.5, spread, 1e-9)
	})

	t.Run("empty order is rejected", func(t *testing.T) {
		_, err := Compute(nil, Options{})
		assert.ErrorIs(t, err, models.ErrNoFills)

		bust := stockFill("c1", models.SideBuy, models.RoleTaker, 10.00, 0, 9.90, 10.10)
		_, err = Compute([]models.Fill{bust}, Options{})
		assert.ErrorIs(t, err, models.ErrNoFills)
	})

	t.Run("sign convention", func(t *testing.T) {
		// Buy below arrival mid is favorable.
		buy := []models.Fill{stockFill("c1", models.SideBuy, models.RoleTaker, 10.00, 5, 9.90, 10.10)}
		report, err := Compute(buy, Options{})
		require.NoError(t, err)
		slip, _ := report.Cell("Total", MetricSlipArrMidPx)
		assert.Greater(t, slip, 0.0)

		// Sell above arrival mid is favorable.
		sell := []models.Fill{stockFill("c1", models.SideSell, models.RoleTaker, 10.08, 5, 10.00, 10.10)}
		report, err = Compute(sell, Options{})
		require.NoError(t, err)
		slip, _ = report.Cell("Total", MetricSlipArrMidPx)
		assert.Greater(t, slip, 0.0)

		// Sell below arrival mid is adverse.
		sell = []models.Fill{stockFill("c1", models.SideSell, models.RoleTaker, 10.00, 5, 9.90, 10.10)}
		report, err = Compute(sell, Options{})
		require.NoError(t, err)
		slip, _ = report.Cell("Total", MetricSlipArrMidPx)
		assert.Less(t, slip, 0.0)
	})

	t.Run("weighted average identity", func(t *testing.T) {
		fills := []models.Fill{
			stockFill("c1", models.SideBuy, models.RoleTaker, 10.00, 5, 9.90, 10.10),
			stockFill("c2", models.SideBuy, models.RoleMaker, 10.20, 15, 10.10, 10.30),
		}

		report, err := Compute(fills, Options{})
		require.NoError(t, err)

		exec, _ := report.Cell("Total", MetricExecPx)
		assert.InDelta(t, (10.00*5+10.20*15)/20, exec, 1e-9)

		makerExec, _ := report.Cell("Maker", MetricExecPx)
		assert.InDelta(t, 10.20, makerExec, 1e-9)

		ctr, _ := report.Cell("Total", MetricFilledCtr)
		assert.Equal(t, 20.0, ctr)

		children, _ := report.Cell("Total", MetricChildOrders)
		assert.Equal(t, 2.0, children)
	})

	t.Run("empty partition is zeroed not NaN", func(t *testing.T) {
		fills := []models.Fill{
			stockFill("c1", models.SideBuy, models.RoleTaker, 10.00, 5, 9.90, 10.10),
		}

		report, err := Compute(fills, Options{})
		require.NoError(t, err)

		for _, def := range Definitions() {
			if def.Format == FormatLabel {
				continue
			}
			v, ok := report.Cell("Maker", def.Name)
			require.True(t, ok, "metric %s missing from zeroed column", def.Name)
			assert.Equal(t, 0.0, v, "metric %s", def.Name)
		}
	})

	t.Run("zero delta reduction", func(t *testing.T) {
		fills := []models.Fill{
			stockFill("c1", models.SideBuy, models.RoleTaker, 10.00, 5, 9.90, 10.10),
		}

		report, err := Compute(fills, Options{Qwap: f64(10.02)})
		require.NoError(t, err)

		_, ok := report.Cell("Total", MetricSlipQwapPx)
		assert.True(t, ok)

		for _, name := range []Metric{
			MetricSlipArrMarkPx,
			MetricTheoUMid,
			MetricExecDTheoArrMidPx,
			MetricExecDTheoVol,
			MetricDTheoSlipArrMidVol,
			MetricExecDActArrMidPx,
			MetricArrivalMidVol,
		} {
			_, ok := report.Cell("Total", name)
			assert.False(t, ok, "metric %s should be absent for a zero-delta order", name)
		}
	})

	t.Run("qwap slippage", func(t *testing.T) {
		fills := []models.Fill{
			stockFill("c1", models.SideBuy, models.RoleTaker, 10.00, 5, 9.90, 10.10),
		}

		report, err := Compute(fills, Options{Qwap: f64(10.04)})
		require.NoError(t, err)

		slip, ok := report.Cell("Total", MetricSlipQwapPx)
		require.True(t, ok)
		assert.InDelta(t, 0.04, slip, 1e-9)

		usd, _ := report.Cell("Total", MetricSlipQwapUSD)
		assert.InDelta(t, 0.20, usd, 1e-9)
	})

	t.Run("option multiplier", func(t *testing.T) {
		fills := []models.Fill{optionFill(5.60, 5, 100.95, 101.05)}

		report, err := Compute(fills, Options{})
		require.NoError(t, err)

		px, _ := report.Cell("Total", MetricSlipArrMidPx)
		usd, _ := report.Cell("Total", MetricSlipArrMidUSD)
		assert.InDelta(t, px*5*100, usd, 1e-9)
	})

	t.Run("theoretical hedge family", func(t *testing.T) {
		fills := []models.Fill{optionFill(5.60, 5, 100.95, 101.05)}

		report, err := Compute(fills, Options{})
		require.NoError(t, err)

		theoUMid, ok := report.Cell("Total", MetricTheoUMid)
		require.True(t, ok)
		assert.InDelta(t, 101.0, theoUMid, 1e-9)

		// 5.60 - 0.5 * (101 - 100)
		adjExec, _ := report.Cell("Total", MetricExecDTheoArrMidPx)
		assert.InDelta(t, 5.10, adjExec, 1e-9)

		// side * (5.00 - 5.10)
		slip, _ := report.Cell("Total", MetricDTheoSlipArrMidPx)
		assert.InDelta(t, -0.10, slip, 1e-9)

		// Slippage in vol space is the raw price delta scaled by vega.
		slipVol, _ := report.Cell("Total", MetricDTheoSlipArrMidVol)
		assert.InDelta(t, -0.01, slipVol, 1e-9)

		// The absolute exec vol level goes through the anchored slope.
		execVol, _ := report.Cell("Total", MetricExecDTheoVol)
		assert.InDelta(t, 0.20, execVol, 1e-9)
	})

	t.Run("actual hedge family", func(t *testing.T) {
		fills := []models.Fill{optionFill(5.60, 5, 100.95, 101.05)}

		report, err := Compute(fills, Options{ActSlipPct: f64(0.01)})
		require.NoError(t, err)

		// Anchored to the first fill's underlying mid, not order arrival.
		actUMid, ok := report.Cell("Total", MetricActUMid)
		require.True(t, ok)
		assert.InDelta(t, 101.0*1.01, actUMid, 1e-9)

		adjExec, _ := report.Cell("Total", MetricExecDActArrMidPx)
		assert.InDelta(t, 5.60-0.5*(101.0*1.01-100.0), adjExec, 1e-9)
	})

	t.Run("qwap and actual hedge together", func(t *testing.T) {
		fills := []models.Fill{optionFill(5.60, 5, 100.95, 101.05)}

		report, err := Compute(fills, Options{
			Qwap:       f64(5.30),
			QwapU:      f64(100.50),
			ActSlipPct: f64(0.01),
		})
		require.NoError(t, err)

		adjExec, ok := report.Cell("Total", MetricExecDActQwapPx)
		require.True(t, ok)
		assert.InDelta(t, 5.60-0.5*(101.0*1.01-100.50), adjExec, 1e-9)

		_, ok = report.Cell("Total", MetricQwapVol)
		assert.True(t, ok)
	})

	t.Run("degenerate spread yields NaN for that metric only", func(t *testing.T) {
		fills := []models.Fill{
			stockFill("c1", models.SideBuy, models.RoleTaker, 10.00, 5, 10.00, 10.00),
		}

		report, err := Compute(fills, Options{})
		require.NoError(t, err)

		spread, ok := report.Cell("Total", MetricAvgFillPctSpread)
		require.True(t, ok)
		assert.True(t, math.IsNaN(spread))

		exec, _ := report.Cell("Total", MetricExecPx)
		assert.InDelta(t, 10.00, exec, 1e-9)
	})
}
