package models

import (
	"fmt"
	"math"
)

// SecurityKey identifies a listed instrument. For stocks only Ticker is set;
// for options the expiration, strike and right complete the key.
type SecurityKey struct {
	Ticker string
	Year   int
	Month  int
	Day    int
	Strike float64
	Right  string
}

// IsOption reports whether the key carries an expiration.
func (k SecurityKey) IsOption() bool {
	return k.Month > 0
}

// Name returns the display name for the instrument, e.g.
// "AAPL 20240119 185 C". Integral strikes drop the decimals.
func (k SecurityKey) Name() string {
	if !k.IsOption() {
		return k.Ticker
	}

	strike := fmt.Sprintf("%.2f", k.Strike)
	if k.Strike == math.Trunc(k.Strike) {
		strike = fmt.Sprintf("%.0f", k.Strike)
	}

	return fmt.Sprintf("%s %d%02d%02d %s %s", k.Ticker, k.Year, k.Month, k.Day, strike, k.Right)
}
