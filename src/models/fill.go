package models

import "time"

type Side string

const (
	SideBuy  Side = "Buy"
	SideSell Side = "Sell"
)

// Sign returns +1 for buys and -1 for sells. Every slippage figure is
// oriented so that side * (reference - execution) > 0 means the execution
// beat the reference.
func (s Side) Sign() float64 {
	if s == SideBuy {
		return 1
	}

	return -1
}

type SecType string

const (
	SecTypeOption SecType = "Option"
	SecTypeStock  SecType = "Stock"
)

// Multiplier returns the contract multiplier used for USD conversions.
func (s SecType) Multiplier() float64 {
	if s == SecTypeOption {
		return 100
	}

	return 1
}

type LiquidityRole string

const (
	RoleMaker LiquidityRole = "Maker"
	RoleTaker LiquidityRole = "Taker"
)

type ExecShape string

const (
	ExecShapeSingle   ExecShape = "Single"
	ExecShapeMultiLeg ExecShape = "MLegLeg"
)

// Fill is one execution event from the venue's parent execution table. The
// parent* fields repeat the parent order context on every row, exactly as the
// venue reports them.
type Fill struct {
	ParentNumber     int64
	BaseParentNumber int64
	RiskGroupID      int64
	ClOrdID          string
	SecKey           SecurityKey
	SecType          SecType
	OrderSide        Side
	ExecShape        ExecShape
	ChildSize        float64
	MakerTaker       LiquidityRole

	TransactDttm time.Time
	Price        float64
	Quantity     float64
	Bid          float64
	Ask          float64
	Mark         float64
	UBid         float64
	UAsk         float64
	Vol          float64
	Delta        float64
	Vega         float64

	ParentDttm time.Time
	ParentBid  float64
	ParentAsk  float64
	ParentMark float64
	ParentUBid float64
	ParentUAsk float64
}

// UMid is the underlying mid quote at fill time.
func (f Fill) UMid() float64 {
	return (f.UBid + f.UAsk) / 2
}

// PositiveFills drops nonpositive-quantity rows, which are accounting no-ops
// (busts, corrections) and must not enter any aggregation.
func PositiveFills(fills []Fill) []Fill {
	out := make([]Fill, 0, len(fills))
	for _, f := range fills {
		if f.Quantity > 0 {
			out = append(out, f)
		}
	}

	return out
}
