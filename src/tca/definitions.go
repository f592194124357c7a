package tca

// Metric names the rows of a TCA report. The registry below fixes their
// display order, format category, description and multi-leg combine policy.
type Metric string

const (
	MetricOrder              Metric = "Order"
	MetricArrivalMid         Metric = "Arrival Mid"
	MetricArrivalMark        Metric = "Arrival Mark"
	MetricArrivalUMid        Metric = "Arrival U Mid"
	MetricArrivalMidVol      Metric = "Arrival Mid Vol"
	MetricArrivalMarkVol     Metric = "Arrival Mark Vol"
	MetricQwap               Metric = "Qwap"
	MetricQwapU              Metric = "Qwap U"
	MetricQwapVol            Metric = "Qwap Vol"
	MetricDelta              Metric = "Delta"
	MetricVega               Metric = "Vega"
	MetricChildOrders        Metric = "Child Orders"
	MetricAvgChildSize       Metric = "Avg Child Size"
	MetricFilledCtr          Metric = "Filled Ctr"
	MetricCtrFillRate        Metric = "Ctr Fill Rate"
	MetricAvgFillPctSpread   Metric = "Avg Fill Pct Spread"
	MetricExecPx             Metric = "Exec Px"
	MetricPxRange            Metric = "Px Range"
	MetricSlipArrMidPx       Metric = "Slip Arr Mid Px"
	MetricSlipArrMidUSD      Metric = "Slip Arr Mid USD"
	MetricSlipArrMarkPx      Metric = "Slip Arr Mark Px"
	MetricSlipArrMarkUSD     Metric = "Slip Arr Mark USD"
	MetricSlipQwapPx         Metric = "Slip Qwap Px"
	MetricSlipQwapUSD        Metric = "Slip Qwap USD"
	MetricTheoUMid           Metric = "Theo U Mid"
	MetricExecDTheoArrMidPx  Metric = "Exec DTheo Arr Mid Px"
	MetricDTheoPxRange       Metric = "DTheo Px Range"
	MetricDTheoSlipArrMidPx  Metric = "DTheo Slip Arr Mid Px"
	MetricDTheoSlipArrMidUSD Metric = "DTheo Slip Arr Mid USD"
	MetricDTheoSlipArrMarkPx Metric = "DTheo Slip Arr Mark Px"
	MetricDTheoSlipArrMarkUSD Metric = "DTheo Slip Arr Mark USD"
	MetricExecDTheoQwapPx    Metric = "Exec DTheo Qwap Px"
	MetricDTheoSlipQwapPx    Metric = "DTheo Slip Qwap Px"
	MetricDTheoSlipQwapUSD   Metric = "DTheo Slip Qwap USD"
	MetricExecDTheoVol       Metric = "Exec DTheo Vol"
	MetricDTheoVolRange      Metric = "DTheo Vol Range"
	MetricDTheoSlipArrMidVol Metric = "DTheo Slip Arr Mid Vol"
	MetricDTheoSlipArrMarkVol Metric = "DTheo Slip Arr Mark Vol"
	MetricDTheoSlipQwapVol   Metric = "DTheo Slip Qwap Vol"
	MetricActUMid            Metric = "Act U Mid"
	MetricExecDActArrMidPx   Metric = "Exec DAct Arr Mid Px"
	MetricDActSlipArrMidPx   Metric = "DAct Slip Arr Mid Px"
	MetricDActSlipArrMidUSD  Metric = "DAct Slip Arr Mid USD"
	MetricDActSlipArrMarkPx  Metric = "DAct Slip Arr Mark Px"
	MetricDActSlipArrMarkUSD Metric = "DAct Slip Arr Mark USD"
	MetricExecDActQwapPx     Metric = "Exec DAct Qwap Px"
	MetricDActSlipQwapPx     Metric = "DAct Slip Qwap Px"
	MetricDActSlipQwapUSD    Metric = "DAct Slip Qwap USD"
	MetricExecDActVol        Metric = "Exec DAct Vol"
	MetricDActSlipArrMidVol  Metric = "DAct Slip Arr Mid Vol"
	MetricDActSlipArrMarkVol Metric = "DAct Slip Arr Mark Vol"
	MetricDActSlipQwapVol    Metric = "DAct Slip Qwap Vol"
)

// FormatCategory selects the fixed-width rendering of a metric value.
type FormatCategory int

const (
	// FormatLabel marks a pure string row excluded from numeric handling.
	FormatLabel FormatCategory = iota
	// FormatComma renders an integer with thousands separators.
	FormatComma
	// FormatPrice renders a 2-decimal price.
	FormatPrice
	// FormatPercent renders an integer percent.
	FormatPercent
	// FormatPercent2 renders a 2-decimal percent.
	FormatPercent2
)

// CombinePolicy decides how a metric rolls up across the legs of a package.
type CombinePolicy int

const (
	// CombineSignedSum weights each leg by +/- filled quantity by leg side,
	// then normalizes by the smallest nonzero leg quantity.
	CombineSignedSum CombinePolicy = iota
	// CombineSum weights by filled quantity without the side sign; used for
	// slippage figures which are already side-adjusted.
	CombineSum
	// CombineMax takes the elementwise maximum across legs.
	CombineMax
	// CombineLabel marks the string row carrying the concatenated leg titles.
	CombineLabel
)

// Definition is one row of the metric registry.
type Definition struct {
	Name    Metric
	Format  FormatCategory
	Combine CombinePolicy
	Desc    string
}

var definitions = []Definition{
	{MetricOrder, FormatLabel, CombineLabel, ""},
	{MetricArrivalMid, FormatPrice, CombineSignedSum, "Mid at first available time"},
	{MetricArrivalMark, FormatPrice, CombineSignedSum, "SR Mark at first available time"},
	{MetricArrivalUMid, FormatPrice, CombineMax, "Mid of underlying at first available time"},
	{MetricArrivalMidVol, FormatPercent2, CombineSignedSum, "Implied volatility of Arrival Mid at Arrival U Mid"},
	{MetricArrivalMarkVol, FormatPercent2, CombineSignedSum, "Implied volatility of Arrival Mark at Arrival U Mid"},
	{MetricQwap, FormatPrice, CombineSignedSum, "SR-calculated Qwap (or Vwap for a stock only order)"},
	{MetricQwapU, FormatPrice, CombineSignedSum, "SR-calculated Qwap for underlying price"},
	{MetricQwapVol, FormatPercent2, CombineSignedSum, "Implied volatility of Qwap at Qwap U"},
	{MetricDelta, FormatPercent, CombineSignedSum, "Option Contract Delta"},
	{MetricVega, FormatPrice, CombineSignedSum, "Option Contract Vega"},
	{MetricChildOrders, FormatComma, CombineMax, "Number of child orders which had fills"},
	{MetricAvgChildSize, FormatComma, CombineMax, "Avg size of child orders which had fills"},
	{MetricFilledCtr, FormatComma, CombineMax, "Total number of contracts filled"},
	{MetricCtrFillRate, FormatPercent, CombineMax, "Filled Contracts divided by total size sent by child orders which had fills"},
	{MetricAvgFillPctSpread, FormatPercent2, CombineSignedSum, "0% means fill is on bid at fill time; 100% means offer"},
	{MetricExecPx, FormatPrice, CombineSignedSum, "Average filled price"},
	{MetricPxRange, FormatPrice, CombineMax, "High minus low fill price"},
	{MetricSlipArrMidPx, FormatPrice, CombineSum, "Amount by which Exec Px was more favorable than mid at order creation"},
	{MetricSlipArrMidUSD, FormatComma, CombineSum, "Above  * contracts filled * contract multiplier"},
	{MetricSlipArrMarkPx, FormatPrice, CombineSum, "Amount by which Exec Px was more favorable than SR mark at order creation"},
	{MetricSlipArrMarkUSD, FormatComma, CombineSum, "Above  * contracts filled * contract multiplier"},
	{MetricSlipQwapPx, FormatPrice, CombineSignedSum, "Amount by which Exec Px was more favorable than Qwap"},
	{MetricSlipQwapUSD, FormatComma, CombineSignedSum, "Above  * contracts filled * contract multiplier"},
	{MetricTheoUMid, FormatPrice, CombineMax, "Average underlying price if hedging mid-market each fill time"},
	{MetricExecDTheoArrMidPx, FormatPrice, CombineSignedSum, "Exec Px delta-adjusted from Theo U Mid to Arrival Mid"},
	{MetricDTheoPxRange, FormatPrice, CombineMax, "High minus low delta-adjusted fill price"},
	{MetricDTheoSlipArrMidPx, FormatPrice, CombineSum, "Amount by which Exec DTheo Arr Mid Px was more favorable than Arrival Mid"},
	{MetricDTheoSlipArrMidUSD, FormatComma, CombineSum, "Above  * contracts filled * contract multiplier"},
	{MetricDTheoSlipArrMarkPx, FormatPrice, CombineSum, "Amount by which Exec DTheo Arr Mid Px was more favorable than Arrival Mark"},
	{MetricDTheoSlipArrMarkUSD, FormatComma, CombineSum, "Above  * contracts filled * contract multiplier"},
	{MetricExecDTheoQwapPx, FormatPrice, CombineSignedSum, "Exec Px delta-adjusted from Theo U Mid to Qwap U"},
	{MetricDTheoSlipQwapPx, FormatPrice, CombineSignedSum, "Amount by which Exec DTheo Qwap Px was more favorable than Qwap"},
	{MetricDTheoSlipQwapUSD, FormatComma, CombineSignedSum, "Above  * contracts filled * contract multiplier"},
	{MetricExecDTheoVol, FormatPercent2, CombineSignedSum, "Implied volatility of Exec DTheo Arr Mid Px at Arrival Mid"},
	{MetricDTheoVolRange, FormatPercent2, CombineMax, "High minus low vol"},
	{MetricDTheoSlipArrMidVol, FormatPercent2, CombineSum, "Implied volatility of DTheo Slip Arr Mid Px at Arrival Mid"},
	{MetricDTheoSlipArrMarkVol, FormatPercent2, CombineSum, "Implied volatility of DTheo Slip Arr Mark Px at Arrival Mid"},
	{MetricDTheoSlipQwapVol, FormatPercent2, CombineSignedSum, "Implied volatility of DTheo Slip Qwap Px at Qwap U"},
	{MetricActUMid, FormatPrice, CombineMax, "Actual average underlying price from executed hedge"},
	{MetricExecDActArrMidPx, FormatPrice, CombineSignedSum, "Exec Px delta-adjusted from Act U Mid to Arrival Mid"},
	{MetricDActSlipArrMidPx, FormatPrice, CombineSum, "Amount by which Exec DAct Arr Mid Px was more favorable than Arrival Mid"},
	{MetricDActSlipArrMidUSD, FormatComma, CombineSum, "Above  * contracts filled * contract multiplier"},
	{MetricDActSlipArrMarkPx, FormatPrice, CombineSum, "Amount by which Exec DAct Arr Mid Px was more favorable than Arrival Mark"},
	{MetricDActSlipArrMarkUSD, FormatComma, CombineSum, "Above  * contracts filled * contract multiplier"},
	{MetricExecDActQwapPx, FormatPrice, CombineSignedSum, "Exec Px delta-adjusted from Act U Mid to Qwap U"},
	{MetricDActSlipQwapPx, FormatPrice, CombineSignedSum, "Amount by which Exec DAct Qwap Px was more favorable than Qwap"},
	{MetricDActSlipQwapUSD, FormatComma, CombineSignedSum, "Above  * contracts filled * contract multiplier"},
	{MetricExecDActVol, FormatPercent2, CombineSignedSum, "Implied volatility of Exec DAct Arr Mid Px at Arrival Mid"},
	{MetricDActSlipArrMidVol, FormatPercent2, CombineSum, "Implied volatility of DAct Slip Arr Mid Px at Arrival Mid"},
	{MetricDActSlipArrMarkVol, FormatPercent2, CombineSum, "Implied volatility of DAct Slip Arr Mark Px at Arrival Mid"},
	{MetricDActSlipQwapVol, FormatPercent2, CombineSignedSum, "Implied volatility of DAct Slip Qwap Px at Qwap U"},
}

// Definitions returns the ordered metric registry. The slice is a copy, the
// registry itself is never mutated after init.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}
