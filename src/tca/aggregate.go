package tca

import (
	"fmt"
	"math"
	"strings"
)

// Consolidate combines the per-leg reports of a multi-leg package into one
// table, dispatching on each metric's combine policy:
//
//   - CombineSignedSum: leg value * (+/- filled quantity by leg side), summed
//   - CombineSum: leg value * filled quantity, no sign flip
//   - CombineMax: elementwise maximum across legs
//   - CombineLabel: excluded from numeric combination
//
// Summed figures are then divided by the smallest nonzero filled quantity
// across legs, so the consolidated value reads as a multiple of the
// structure's unit size. Legs are expected to have been computed with the
// same option set (QWAP disabled, since QWAP is leg-specific).
func Consolidate(legs []*Report) (*Report, error) {
	if len(legs) == 0 {
		return nil, fmt.Errorf("tca.Consolidate: no legs")
	}

	minQty := math.Inf(1)
	var titles []string
	for _, leg := range legs {
		qty := leg.Total[MetricFilledCtr]
		if qty > 0 && qty < minQty {
			minQty = qty
		}
		titles = append(titles, leg.Title)
	}
	if math.IsInf(minQty, 1) {
		return nil, fmt.Errorf("tca.Consolidate: no leg has filled quantity")
	}

	out := &Report{
		Title: strings.Join(titles, " "),
		Side:  legs[0].Side,
		Maker: Column{},
		Taker: Column{},
		Total: Column{},
	}

	columns := []struct {
		dst Column
		src func(*Report) Column
	}{
		{out.Maker, func(r *Report) Column { return r.Maker }},
		{out.Taker, func(r *Report) Column { return r.Taker }},
		{out.Total, func(r *Report) Column { return r.Total }},
	}

	for _, def := range definitions {
		if def.Combine == CombineLabel {
			continue
		}

		for _, c := range columns {
			acc := 0.0
			present := true

			for _, leg := range legs {
				v, ok := c.src(leg)[def.Name]
				if !ok {
					present = false
					break
				}

				switch def.Combine {
				case CombineMax:
					acc = math.Max(acc, v)
				case CombineSum:
					acc += v * leg.Total[MetricFilledCtr]
				default:
					acc += v * leg.Total[MetricFilledCtr] * leg.Side.Sign()
				}
			}

			if !present {
				continue
			}
			if def.Combine != CombineMax {
				acc /= minQty
			}
			c.dst[def.Name] = acc
		}
	}

	return out, nil
}
