package tca

import (
	"github.com/simondyates/SpiderRock/src/models"
)

// Adjusted holds the delta-hedge-neutralized view of an order's fills. Every
// observed price is projected back to what it would have been had the
// underlying stayed at its arrival level, then translated to vol space with a
// single vega slope anchored at the first fill.
//
// The slices are parallel to the positive-quantity fill sequence passed to
// Adjust.
type Adjusted struct {
	ArrivalMidVol  float64
	ArrivalMarkVol float64

	UMid  []float64
	Price []float64
	Bid   []float64
	Ask   []float64
	Mark  []float64

	PriceVol []float64
	BidVol   []float64
	AskVol   []float64
	MarkVol  []float64
}

// Adjust computes the delta-adjusted price and vol series for an order.
// Returns nil when the order carries no delta (pure stock): stock orders have
// no adjusted view and downstream code computes a reduced metric set.
//
// Precondition: all fills trade a single contract. The first fill's delta and
// vega are applied to every row; the layer does not detect violations.
func Adjust(fills []models.Fill, ctx models.OrderContext) *Adjusted {
	if ctx.Delta == 0 {
		return nil
	}

	fills = models.PositiveFills(fills)
	if len(fills) == 0 {
		return nil
	}

	n := len(fills)
	adj := &Adjusted{
		UMid:     make([]float64, n),
		Price:    make([]float64, n),
		Bid:      make([]float64, n),
		Ask:      make([]float64, n),
		Mark:     make([]float64, n),
		PriceVol: make([]float64, n),
		BidVol:   make([]float64, n),
		AskVol:   make([]float64, n),
		MarkVol:  make([]float64, n),
	}

	for i, f := range fills {
		uMid := f.UMid()
		shift := ctx.Delta * (uMid - ctx.ArrivalUMid)

		adj.UMid[i] = uMid
		adj.Price[i] = f.Price - shift
		adj.Bid[i] = f.Bid - shift
		adj.Ask[i] = f.Ask - shift
		adj.Mark[i] = f.Mark - shift
	}

	// Anchor a single linear price/vol slope at the first fill. One vol point
	// moves the price by 100 * vega; the slope is not recomputed per fill.
	vegaPts := 100 * ctx.Vega
	firstVol := fills[0].Vol
	firstAdjPx := adj.Price[0]
	adj.ArrivalMidVol = firstVol + (ctx.ArrivalMid-firstAdjPx)/vegaPts
	adj.ArrivalMarkVol = firstVol + (ctx.ArrivalMark-firstAdjPx)/vegaPts

	for i := range fills {
		adj.PriceVol[i] = adj.vol(adj.Price[i], ctx)
		adj.BidVol[i] = adj.vol(adj.Bid[i], ctx)
		adj.AskVol[i] = adj.vol(adj.Ask[i], ctx)
		adj.MarkVol[i] = adj.vol(adj.Mark[i], ctx)
	}

	return adj
}

// vol translates an absolute delta-adjusted price level to an implied vol
// using the arrival-mid anchor.
func (a *Adjusted) vol(px float64, ctx models.OrderContext) float64 {
	return a.ArrivalMidVol + (px-ctx.ArrivalMid)/(100*ctx.Vega)
}
