package models

import "errors"

// ErrNoFills is returned when an order has no positive-quantity fills, which
// leaves no way to establish side, multiplier or arrival context.
var ErrNoFills = errors.New("order has no positive-quantity fills")

// OrderContext holds the per-order constants established at parent order
// creation. The greeks are taken from the first positive-quantity fill: the
// caller must ensure the order trades a single contract, the context does not
// detect violations.
type OrderContext struct {
	Side        Side
	SecType     SecType
	ArrivalMid  float64
	ArrivalMark float64
	ArrivalUMid float64
	Delta       float64
	Vega        float64
}

// NewOrderContext derives the order constants from a fill set. When the
// parent arrival quote (or mark) is degenerate, the first fill's quote
// substitutes for it.
func NewOrderContext(fills []Fill) (OrderContext, error) {
	fills = PositiveFills(fills)
	if len(fills) == 0 {
		return OrderContext{}, ErrNoFills
	}

	first := fills[0]

	ctx := OrderContext{
		Side:    first.OrderSide,
		SecType: first.SecType,
		Delta:   first.Delta,
		Vega:    first.Vega,
	}

	if first.ParentBid > 0 {
		ctx.ArrivalMid = (first.ParentBid + first.ParentAsk) / 2
	} else {
		ctx.ArrivalMid = (first.Bid + first.Ask) / 2
	}

	if first.ParentMark > 0 {
		ctx.ArrivalMark = first.ParentMark
		ctx.ArrivalUMid = (first.ParentUBid + first.ParentUAsk) / 2
	} else {
		ctx.ArrivalMark = first.Mark
		ctx.ArrivalUMid = first.UMid()
	}

	return ctx, nil
}
