package tca

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/simondyates/SpiderRock/src/models"
)

// Options carries the external benchmark references for a single order. All
// fields are optional: a nil field deterministically narrows the computed
// metric set, it is not an error.
type Options struct {
	// Qwap is the venue-calculated quote-weighted average price for the
	// instrument (Vwap for a stock-only order).
	Qwap *float64
	// QwapU is the quote-weighted average price of the underlying.
	QwapU *float64
	// ActSlipPct is the realized hedge slippage, expressed as the fractional
	// deviation of the average hedge execution price from the underlying mid
	// at hedge order arrival.
	ActSlipPct *float64
}

// Column maps metric name to value for one liquidity partition. A missing key
// means the metric's preconditions were not met for this order.
type Column map[Metric]float64

// Report is the TCA results table for one order: each metric row carries a
// Maker, Taker and Total cell plus a fixed description from the registry.
type Report struct {
	Title string
	Side  models.Side

	Maker Column
	Taker Column
	Total Column
}

// Cell returns one value from the named column.
func (r *Report) Cell(col string, name Metric) (float64, bool) {
	var c Column
	switch col {
	case "Maker":
		c = r.Maker
	case "Taker":
		c = r.Taker
	case "Total":
		c = r.Total
	default:
		return 0, false
	}

	v, ok := c[name]
	return v, ok
}

// capability gates the metric families per the orthogonal flags
// {delta, qwap, actual hedge}. The act families additionally require delta:
// hedge slippage is meaningless without optionality.
type capability struct {
	delta bool
	qwap  bool
	qwapU bool
	act   bool
}

type metricGroup int

const (
	groupBase metricGroup = iota
	groupQwap
	groupDelta
	groupDeltaQwap
	groupDeltaAct
	groupDeltaActQwap
)

// groups maps the flag combination to the metric groups to compute.
func (c capability) groups() []metricGroup {
	out := []metricGroup{groupBase}
	if c.qwap {
		out = append(out, groupQwap)
	}
	if c.delta {
		out = append(out, groupDelta)
	}
	if c.delta && c.qwap && c.qwapU {
		out = append(out, groupDeltaQwap)
	}
	if c.delta && c.act {
		out = append(out, groupDeltaAct)
	}
	if c.delta && c.act && c.qwap && c.qwapU {
		out = append(out, groupDeltaActQwap)
	}

	return out
}

// row pairs a fill with its delta-adjusted view.
type row struct {
	fill   models.Fill
	uMid   float64
	dPrice float64
}

// partition caches the aggregates shared between metric groups for one
// Maker/Taker/Total slice of the order.
type partition struct {
	rows      []row
	filledCtr float64
	execPx    float64
	theoUMid  float64
}

type engine struct {
	ctx     models.OrderContext
	opts    Options
	caps    capability
	adj     *Adjusted
	qwapVol float64
	actUMid float64
}

// Compute produces the TCA report for a single order (or a single leg of a
// package). Fills must belong to one underlying, one side and, for options,
// one contract; nonpositive-quantity rows are dropped first. An order with no
// positive-quantity fills is rejected.
func Compute(fills []models.Fill, opts Options) (*Report, error) {
	fills = models.PositiveFills(fills)

	ctx, err := models.NewOrderContext(fills)
	if err != nil {
		return nil, fmt.Errorf("tca.Compute: %w", err)
	}

	title, err := models.OrderTitle(fills)
	if err != nil {
		return nil, fmt.Errorf("tca.Compute: %w", err)
	}

	e := &engine{
		ctx:  ctx,
		opts: opts,
		caps: capability{
			delta: ctx.Delta != 0,
			qwap:  opts.Qwap != nil,
			qwapU: opts.QwapU != nil,
			act:   opts.ActSlipPct != nil,
		},
		adj: Adjust(fills, ctx),
	}

	rows := make([]row, len(fills))
	for i, f := range fills {
		rows[i] = row{fill: f}
		if e.adj != nil {
			rows[i].uMid = e.adj.UMid[i]
			rows[i].dPrice = e.adj.Price[i]
		}
	}

	if e.caps.delta && e.caps.qwap && e.caps.qwapU {
		e.qwapVol = e.adj.ArrivalMidVol +
			(*opts.Qwap-ctx.Delta*(*opts.QwapU-ctx.ArrivalUMid)-ctx.ArrivalMid)/(100*ctx.Vega)
	}
	if e.caps.delta && e.caps.act {
		// Anchored to the underlying mid at the first option fill rather than
		// order arrival: the hedge fill follows the option fill.
		e.actUMid = rows[0].uMid * (1 + *opts.ActSlipPct)
	}

	report := &Report{
		Title: title,
		Side:  ctx.Side,
		Maker: Column{},
		Taker: Column{},
		Total: Column{},
	}

	for _, col := range []Column{report.Maker, report.Taker, report.Total} {
		e.setContextMetrics(col)
	}

	makerRows := filterRows(rows, models.RoleMaker)
	takerRows := filterRows(rows, models.RoleTaker)

	if err := e.populateOrZero(report.Maker, makerRows); err != nil {
		return nil, fmt.Errorf("tca.Compute: maker partition: %w", err)
	}
	if err := e.populateOrZero(report.Taker, takerRows); err != nil {
		return nil, fmt.Errorf("tca.Compute: taker partition: %w", err)
	}
	if err := e.populateOrZero(report.Total, rows); err != nil {
		return nil, fmt.Errorf("tca.Compute: total partition: %w", err)
	}

	return report, nil
}

func filterRows(rows []row, role models.LiquidityRole) []row {
	out := make([]row, 0, len(rows))
	for _, r := range rows {
		if r.fill.MakerTaker == role {
			out = append(out, r)
		}
	}

	return out
}

// setContextMetrics writes the per-order constants into a column. These hold
// the same value across Maker, Taker and Total.
func (e *engine) setContextMetrics(col Column) {
	col[MetricArrivalMid] = e.ctx.ArrivalMid

	if e.caps.qwap {
		col[MetricQwap] = *e.opts.Qwap
		if e.opts.QwapU != nil {
			col[MetricQwapU] = *e.opts.QwapU
		}
	}

	if e.caps.delta {
		col[MetricDelta] = e.ctx.Delta
		col[MetricVega] = e.ctx.Vega
		col[MetricArrivalMark] = e.ctx.ArrivalMark
		col[MetricArrivalUMid] = e.ctx.ArrivalUMid
		col[MetricArrivalMidVol] = e.adj.ArrivalMidVol
		col[MetricArrivalMarkVol] = e.adj.ArrivalMarkVol

		if e.caps.qwap && e.caps.qwapU {
			col[MetricQwapVol] = e.qwapVol
		}
		if e.caps.act {
			col[MetricActUMid] = e.actUMid
		}
	}
}

// populateOrZero fills a column from its partition, or zeroes every numeric
// metric when the partition has nothing filled. Zeroing avoids dividing by a
// zero quantity; the column reads as literal 0, never NaN.
func (e *engine) populateOrZero(col Column, rows []row) error {
	total := 0.0
	for _, r := range rows {
		total += r.fill.Quantity
	}

	if total <= 0 {
		for _, def := range definitions {
			if def.Format == FormatLabel {
				continue
			}
			col[def.Name] = 0
		}
		return nil
	}

	p := &partition{rows: rows, filledCtr: total}
	for _, g := range e.caps.groups() {
		if err := e.computeGroup(g, p, col); err != nil {
			return err
		}
	}

	return nil
}

func (e *engine) computeGroup(g metricGroup, p *partition, col Column) error {
	switch g {
	case groupBase:
		return e.computeBase(p, col)
	case groupQwap:
		e.computeQwap(p, col)
	case groupDelta:
		return e.computeDelta(p, col)
	case groupDeltaQwap:
		e.computeDeltaQwap(p, col)
	case groupDeltaAct:
		e.computeDeltaAct(p, col)
	case groupDeltaActQwap:
		e.computeDeltaActQwap(p, col)
	}

	return nil
}

// computeBase calculates the unconditional metric family.
func (e *engine) computeBase(p *partition, col Column) error {
	// Distinct child orders, each contributing its first observed requested
	// size.
	childSizes := map[string]float64{}
	var childIDs []string
	for _, r := range p.rows {
		if _, seen := childSizes[r.fill.ClOrdID]; !seen {
			childIDs = append(childIDs, r.fill.ClOrdID)
			childSizes[r.fill.ClOrdID] = r.fill.ChildSize
		}
	}

	childOrders := float64(len(childIDs))
	sentSize := 0.0
	for _, id := range childIDs {
		sentSize += childSizes[id]
	}
	avgChildSize := sentSize / childOrders

	var prices []float64
	sumPxQty := 0.0
	sumSpreadQty := 0.0
	for _, r := range p.rows {
		f := r.fill
		prices = append(prices, f.Price)
		sumPxQty += f.Price * f.Quantity
		sumSpreadQty += (f.Price - f.Bid) / (f.Ask - f.Bid) * f.Quantity
	}

	p.execPx = sumPxQty / p.filledCtr

	maxPx, err := stats.Max(prices)
	if err != nil {
		return fmt.Errorf("failed to calculate max fill price: %v", err)
	}
	minPx, err := stats.Min(prices)
	if err != nil {
		return fmt.Errorf("failed to calculate min fill price: %v", err)
	}

	side := e.ctx.Side.Sign()
	mult := e.ctx.SecType.Multiplier()
	slipArrMidPx := side * (e.ctx.ArrivalMid - p.execPx)

	col[MetricChildOrders] = childOrders
	col[MetricAvgChildSize] = avgChildSize
	col[MetricFilledCtr] = p.filledCtr
	col[MetricCtrFillRate] = p.filledCtr / (childOrders * avgChildSize)
	col[MetricAvgFillPctSpread] = sumSpreadQty / p.filledCtr
	col[MetricExecPx] = p.execPx
	col[MetricPxRange] = maxPx - minPx
	col[MetricSlipArrMidPx] = slipArrMidPx
	col[MetricSlipArrMidUSD] = slipArrMidPx * p.filledCtr * mult

	return nil
}

// computeQwap calculates the QWAP slippage family (no delta required).
func (e *engine) computeQwap(p *partition, col Column) {
	side := e.ctx.Side.Sign()
	mult := e.ctx.SecType.Multiplier()

	slipQwapPx := side * (*e.opts.Qwap - p.execPx)
	col[MetricSlipQwapPx] = slipQwapPx
	col[MetricSlipQwapUSD] = slipQwapPx * p.filledCtr * mult
}

// computeDelta calculates the theoretical delta-adjusted family. The hedge is
// theoretical in that it assumes mid-market execution at each fill time.
func (e *engine) computeDelta(p *partition, col Column) error {
	side := e.ctx.Side.Sign()
	mult := e.ctx.SecType.Multiplier()
	vegaPts := 100 * e.ctx.Vega

	slipArrMarkPx := side * (e.ctx.ArrivalMark - p.execPx)

	sumUMidQty := 0.0
	var dPrices []float64
	for _, r := range p.rows {
		sumUMidQty += r.uMid * r.fill.Quantity
		dPrices = append(dPrices, r.dPrice)
	}
	p.theoUMid = sumUMidQty / p.filledCtr

	maxDPx, err := stats.Max(dPrices)
	if err != nil {
		return fmt.Errorf("failed to calculate max adjusted price: %v", err)
	}
	minDPx, err := stats.Min(dPrices)
	if err != nil {
		return fmt.Errorf("failed to calculate min adjusted price: %v", err)
	}

	execDTheoArrMidPx := p.execPx - e.ctx.Delta*(p.theoUMid-e.ctx.ArrivalUMid)
	dTheoPxRange := maxDPx - minDPx
	dTheoSlipArrMidPx := side * (e.ctx.ArrivalMid - execDTheoArrMidPx)
	dTheoSlipArrMarkPx := side * (e.ctx.ArrivalMark - execDTheoArrMidPx)

	col[MetricSlipArrMarkPx] = slipArrMarkPx
	col[MetricSlipArrMarkUSD] = slipArrMarkPx * p.filledCtr * mult
	col[MetricTheoUMid] = p.theoUMid
	col[MetricExecDTheoArrMidPx] = execDTheoArrMidPx
	col[MetricDTheoPxRange] = dTheoPxRange
	col[MetricDTheoSlipArrMidPx] = dTheoSlipArrMidPx
	col[MetricDTheoSlipArrMidUSD] = dTheoSlipArrMidPx * p.filledCtr * mult
	col[MetricDTheoSlipArrMarkPx] = dTheoSlipArrMarkPx
	col[MetricDTheoSlipArrMarkUSD] = dTheoSlipArrMarkPx * p.filledCtr * mult

	// Absolute vol levels go through the anchored slope; slippage differences
	// are the raw price delta scaled by vega.
	col[MetricExecDTheoVol] = e.adj.ArrivalMidVol + (execDTheoArrMidPx-e.ctx.ArrivalMid)/vegaPts
	col[MetricDTheoVolRange] = dTheoPxRange / vegaPts
	col[MetricDTheoSlipArrMidVol] = dTheoSlipArrMidPx / vegaPts
	col[MetricDTheoSlipArrMarkVol] = dTheoSlipArrMarkPx / vegaPts

	return nil
}

// computeDeltaQwap re-references the delta-adjusted execution to the QWAP
// underlying level.
func (e *engine) computeDeltaQwap(p *partition, col Column) {
	side := e.ctx.Side.Sign()
	mult := e.ctx.SecType.Multiplier()
	vegaPts := 100 * e.ctx.Vega

	execDTheoQwapPx := p.execPx - e.ctx.Delta*(p.theoUMid-*e.opts.QwapU)
	dTheoSlipQwapPx := side * (*e.opts.Qwap - execDTheoQwapPx)

	col[MetricExecDTheoQwapPx] = execDTheoQwapPx
	col[MetricDTheoSlipQwapPx] = dTheoSlipQwapPx
	col[MetricDTheoSlipQwapUSD] = dTheoSlipQwapPx * p.filledCtr * mult
	col[MetricDTheoSlipQwapVol] = dTheoSlipQwapPx / vegaPts
}

// computeDeltaAct mirrors the Theo family with the realized hedge level in
// place of the theoretical volume-weighted mid.
func (e *engine) computeDeltaAct(p *partition, col Column) {
	side := e.ctx.Side.Sign()
	mult := e.ctx.SecType.Multiplier()
	vegaPts := 100 * e.ctx.Vega

	execDActArrMidPx := p.execPx - e.ctx.Delta*(e.actUMid-e.ctx.ArrivalUMid)
	dActSlipArrMidPx := side * (e.ctx.ArrivalMid - execDActArrMidPx)
	dActSlipArrMarkPx := side * (e.ctx.ArrivalMark - execDActArrMidPx)

	col[MetricExecDActArrMidPx] = execDActArrMidPx
	col[MetricDActSlipArrMidPx] = dActSlipArrMidPx
	col[MetricDActSlipArrMidUSD] = dActSlipArrMidPx * p.filledCtr * mult
	col[MetricDActSlipArrMarkPx] = dActSlipArrMarkPx
	col[MetricDActSlipArrMarkUSD] = dActSlipArrMarkPx * p.filledCtr * mult
	col[MetricExecDActVol] = e.adj.ArrivalMidVol + (execDActArrMidPx-e.ctx.ArrivalMid)/vegaPts
	col[MetricDActSlipArrMidVol] = dActSlipArrMidPx / vegaPts
	col[MetricDActSlipArrMarkVol] = dActSlipArrMarkPx / vegaPts
}

func (e *engine) computeDeltaActQwap(p *partition, col Column) {
	side := e.ctx.Side.Sign()
	mult := e.ctx.SecType.Multiplier()
	vegaPts := 100 * e.ctx.Vega

	execDActQwapPx := p.execPx - e.ctx.Delta*(e.actUMid-*e.opts.QwapU)
	dActSlipQwapPx := side * (*e.opts.Qwap - execDActQwapPx)

	col[MetricExecDActQwapPx] = execDActQwapPx
	col[MetricDActSlipQwapPx] = dActSlipQwapPx
	col[MetricDActSlipQwapUSD] = dActSlipQwapPx * p.filledCtr * mult
	col[MetricDActSlipQwapVol] = dActSlipQwapPx / vegaPts
}
