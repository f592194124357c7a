package services

import (
	"fmt"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/simondyates/SpiderRock/src/models"
	"github.com/simondyates/SpiderRock/src/tca"
)

// Processor runs the day batch: it walks every parent order in a day's trade
// snapshot, pairs option orders with their delta-hedge executions and QWAP
// references, and writes one TCA report per order (plus per-leg and
// consolidated reports for multi-leg packages).
type Processor struct {
	loader        *TradeLoader
	fillDataDir   string
	tcaDir        string
	lookaheadDays int
}

func NewProcessor(loader *TradeLoader, fillDataDir, tcaDir string, lookaheadDays int) *Processor {
	return &Processor{
		loader:        loader,
		fillDataDir:   fillDataDir,
		tcaDir:        tcaDir,
		lookaheadDays: lookaheadDays,
	}
}

// ProcessDay processes every risk group traded on dt and returns the number
// of report files written. A day with no trade snapshot rows is not an error.
func (p *Processor) ProcessDay(dt time.Time) (int, error) {
	tradeFile := filepath.Join(p.fillDataDir, fmt.Sprintf("Trades%s.csv", dt.Format("20060102")))
	fills, err := p.loader.LoadTrades(tradeFile)
	if err != nil {
		return 0, fmt.Errorf("ProcessDay: %w", err)
	}

	if len(fills) == 0 {
		log.Infof("no fills for %s", dt.Format("20060102"))
		return 0, nil
	}

	states, err := FindBrokerState(p.fillDataDir, dt, p.lookaheadDays)
	if err != nil {
		return 0, fmt.Errorf("ProcessDay: %w", err)
	}

	written := 0
	groupIDs, groups := groupFills(fills, func(f models.Fill) int64 { return f.RiskGroupID })

	for _, grp := range groupIDs {
		parentIDs, parents := groupFills(groups[grp], func(f models.Fill) int64 { return f.BaseParentNumber })

		var optParents, stockParents []int64
		for _, id := range parentIDs {
			if parents[id][0].SecType == models.SecTypeOption {
				optParents = append(optParents, id)
			} else {
				stockParents = append(stockParents, id)
			}
		}

		if len(optParents) > 0 {
			actSlip := hedgeSlippage(stockParents, parents)

			for _, parent := range optParents {
				pf := parents[parent]

				var n int
				var err error
				switch pf[0].ExecShape {
				case models.ExecShapeMultiLeg:
					n, err = p.processMultiLeg(dt, parent, pf, actSlip)
				case models.ExecShapeSingle:
					n, err = p.processSingle(parent, pf, states, actSlip)
				default:
					log.Warnf("skipping parent %d: unrecognized exec shape %q", parent, pf[0].ExecShape)
					continue
				}
				if err != nil {
					log.Warnf("skipping parent %d: %v", parent, err)
					continue
				}
				written += n
			}
			continue
		}

		// Stock-only group: VWAP is the better benchmark for a pure stock
		// order, the broker state carries it in place of QWAP.
		for _, parent := range stockParents {
			opts := tca.Options{}
			if state, ok := states[parent]; ok {
				vwap := state.VwapMark
				opts.Qwap = &vwap
			}

			report, err := tca.Compute(parents[parent], opts)
			if err != nil {
				log.Warnf("skipping parent %d: %v", parent, err)
				continue
			}

			log.Debugf("parent %d:\n%v", parent, report)

			fName := fmt.Sprintf("%s %d.csv", dt.Format("20060102"), parent%100000)
			if err := WriteReportCSV(filepath.Join(p.tcaDir, fName), tca.FormatReport(report, true)); err != nil {
				return written, fmt.Errorf("ProcessDay: %w", err)
			}
			written++
		}
	}

	return written, nil
}

func (p *Processor) processSingle(parent int64, fills []models.Fill, states map[int64]BrokerState, actSlip *float64) (int, error) {
	opts := tca.Options{ActSlipPct: actSlip}
	if state, ok := states[parent]; ok {
		qwap, qwapU := state.QwapMark, state.QwapUMark
		opts.Qwap = &qwap
		opts.QwapU = &qwapU
	}

	report, err := tca.Compute(fills, opts)
	if err != nil {
		return 0, err
	}

	log.Debugf("parent %d:\n%v", parent, report)

	path := filepath.Join(p.tcaDir, report.Title+".csv")
	if err := WriteReportCSV(path, tca.FormatReport(report, true)); err != nil {
		return 0, err
	}

	return 1, nil
}

func (p *Processor) processMultiLeg(dt time.Time, parent int64, fills []models.Fill, actSlip *float64) (int, error) {
	// QWAP is leg-specific and not meaningful pre-aggregation, so the per-leg
	// computations run without it.
	legNames, legs := groupFillsByName(fills)

	written := 0
	var reports []*tca.Report
	for i, name := range legNames {
		report, err := tca.Compute(legs[name], tca.Options{ActSlipPct: actSlip})
		if err != nil {
			return written, fmt.Errorf("leg %s: %w", name, err)
		}
		reports = append(reports, report)

		fName := fmt.Sprintf("%s %d-%d.csv", dt.Format("20060102"), parent%100000, i+1)
		if err := WriteReportCSV(filepath.Join(p.tcaDir, fName), tca.FormatReport(report, true)); err != nil {
			return written, err
		}
		written++
	}

	consolidated, err := tca.Consolidate(reports)
	if err != nil {
		return written, err
	}

	log.Debugf("parent %d consolidated:\n%v", parent, consolidated)

	fName := fmt.Sprintf("%s %d-Cons.csv", dt.Format("20060102"), parent%100000)
	if err := WriteReportCSV(filepath.Join(p.tcaDir, fName), tca.FormatReport(consolidated, true)); err != nil {
		return written, err
	}

	return written + 1, nil
}

// hedgeSlippage derives the realized hedge slippage fraction from the risk
// group's first stock parent: the deviation of the hedge's average fill price
// from the underlying mid at hedge order arrival. Nil when the group carries
// no usable hedge.
func hedgeSlippage(stockParents []int64, parents map[int64][]models.Fill) *float64 {
	if len(stockParents) == 0 {
		return nil
	}

	hedges := parents[stockParents[0]]
	first := hedges[0]
	arrMid := (first.ParentBid + first.ParentAsk) / 2

	sumPxQty, sumQty := 0.0, 0.0
	for _, h := range hedges {
		sumPxQty += h.Price * h.Quantity
		sumQty += h.Quantity
	}

	if arrMid <= 0 || sumQty <= 0 {
		return nil
	}

	slip := (sumPxQty/sumQty - arrMid) / arrMid
	return &slip
}

// groupFills partitions fills by key, preserving first-encounter order of the
// keys and file order within each group.
func groupFills(fills []models.Fill, key func(models.Fill) int64) ([]int64, map[int64][]models.Fill) {
	var order []int64
	groups := map[int64][]models.Fill{}

	for _, f := range fills {
		k := key(f)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], f)
	}

	return order, groups
}

// groupFillsByName partitions a package's fills into legs by instrument name.
func groupFillsByName(fills []models.Fill) ([]string, map[string][]models.Fill) {
	var order []string
	groups := map[string][]models.Fill{}

	for _, f := range fills {
		k := f.SecKey.Name()
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], f)
	}

	return order, groups
}
