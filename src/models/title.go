package models

import "fmt"

// OrderTitle builds the descriptive title for an order's fill set, e.g.
// "Buy 250 AAPL 20240119 185 C 20240117". It is used both as a display label
// and as the output file name for single orders.
func OrderTitle(fills []Fill) (string, error) {
	fills = PositiveFills(fills)
	if len(fills) == 0 {
		return "", ErrNoFills
	}

	first := fills[0]

	total := 0.0
	for _, f := range fills {
		total += f.Quantity
	}

	return fmt.Sprintf("%s %.0f %s %s", first.OrderSide, total, first.SecKey.Name(), first.ParentDttm.Format("20060102")), nil
}
