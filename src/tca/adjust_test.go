package tca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simondyates/SpiderRock/src/models"
)

func optionFill(px, qty, uBid, uAsk float64) models.Fill {
	return models.Fill{
		ClOrdID:    "child-1",
		ChildSize:  10,
		SecType:    models.SecTypeOption,
		OrderSide:  models.SideBuy,
		MakerTaker: models.RoleTaker,
		Price:      px,
		Quantity:   qty,
		Bid:        px - 0.05,
		Ask:        px + 0.05,
		Mark:       px,
		UBid:       uBid,
		UAsk:       uAsk,
		Vol:        0.20,
		Delta:      0.5,
		Vega:       0.10,
		ParentBid:  4.95,
		ParentAsk:  5.05,
		ParentMark: 5.02,
		ParentUBid: 99.95,
		ParentUAsk: 100.05,
	}
}

func TestAdjust(t *testing.T) {
	t.Run("delta adjustment projects price to arrival underlying", func(t *testing.T) {
		fills := []models.Fill{optionFill(5.60, 5, 100.95, 101.05)}
		ctx, err := models.NewOrderContext(fills)
		require.NoError(t, err)
		assert.Equal(t, 100.0, ctx.ArrivalUMid)

		adj := Adjust(fills, ctx)
		require.NotNil(t, adj)

		// 5.60 - 0.5 * (101.00 - 100.00)
		assert.InDelta(t, 5.10, adj.Price[0], 1e-9)
		assert.InDelta(t, 101.0, adj.UMid[0], 1e-9)
		assert.InDelta(t, 5.05, adj.Bid[0], 1e-9)
		assert.InDelta(t, 5.15, adj.Ask[0], 1e-9)
		assert.InDelta(t, 5.10, adj.Mark[0], 1e-9)
	})

	t.Run("vol slope anchored at first fill", func(t *testing.T) {
		fills := []models.Fill{
			optionFill(5.60, 5, 100.95, 101.05),
			optionFill(5.70, 5, 100.95, 101.05),
		}
		ctx, err := models.NewOrderContext(fills)
		require.NoError(t, err)
		assert.Equal(t, 5.0, ctx.ArrivalMid)

		adj := Adjust(fills, ctx)
		require.NotNil(t, adj)

		// 0.20 + (5.00 - 5.10) / (100 * 0.10)
		assert.InDelta(t, 0.19, adj.ArrivalMidVol, 1e-9)
		// The same slope converts every adjusted level, it is not re-anchored
		// at the second fill.
		assert.InDelta(t, 0.20, adj.PriceVol[0], 1e-9)
		assert.InDelta(t, 0.21, adj.PriceVol[1], 1e-9)
	})

	t.Run("arrival mark vol uses the mark reference", func(t *testing.T) {
		fills := []models.Fill{optionFill(5.60, 5, 100.95, 101.05)}
		ctx, err := models.NewOrderContext(fills)
		require.NoError(t, err)

		adj := Adjust(fills, ctx)
		require.NotNil(t, adj)

		// 0.20 + (5.02 - 5.10) / (100 * 0.10)
		assert.InDelta(t, 0.192, adj.ArrivalMarkVol, 1e-9)
	})

	t.Run("zero delta skips adjustment", func(t *testing.T) {
		fill := optionFill(10.00, 5, 99.95, 100.05)
		fill.SecType = models.SecTypeStock
		fill.Delta = 0
		fill.Vega = 0

		ctx, err := models.NewOrderContext([]models.Fill{fill})
		require.NoError(t, err)

		assert.Nil(t, Adjust([]models.Fill{fill}, ctx))
	})

	t.Run("nonpositive fills are excluded from the series", func(t *testing.T) {
		bust := optionFill(5.00, 0, 100.95, 101.05)
		fills := []models.Fill{optionFill(5.60, 5, 100.95, 101.05), bust}

		ctx, err := models.NewOrderContext(fills)
		require.NoError(t, err)

		adj := Adjust(fills, ctx)
		require.NotNil(t, adj)
		assert.Len(t, adj.Price, 1)
	})
}
