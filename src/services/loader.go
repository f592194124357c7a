package services

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/simondyates/SpiderRock/src/models"
)

// The venue reports timestamps as naive strings in its own timezone; the
// desk works in New York time. Microsecond side-columns are added in when
// the snapshot carries them.
const venueTimeLayout = "2006-01-02 15:04:05"

// TradeLoader reads day snapshot CSVs from the venue's execution tables into
// domain records.
type TradeLoader struct {
	venue *time.Location
	local *time.Location
}

func NewTradeLoader(venueTZ, localTZ string) (*TradeLoader, error) {
	venue, err := time.LoadLocation(venueTZ)
	if err != nil {
		return nil, fmt.Errorf("NewTradeLoader: failed to load venue timezone: %w", err)
	}

	local, err := time.LoadLocation(localTZ)
	if err != nil {
		return nil, fmt.Errorf("NewTradeLoader: failed to load local timezone: %w", err)
	}

	return &TradeLoader{venue: venue, local: local}, nil
}

// fillRecord mirrors the snapshot's column names. The execution table carries
// 244 columns; only the ones the analysis needs are mapped, gocsv ignores the
// rest.
type fillRecord struct {
	ParentNumber     int64   `csv:"parentNumber"`
	BaseParentNumber int64   `csv:"baseParentNumber"`
	RiskGroupID      int64   `csv:"riskGroupId"`
	ClOrdID          string  `csv:"clOrdId"`
	SecKeyTk         string  `csv:"secKey_tk"`
	SecKeyYr         int     `csv:"secKey_yr"`
	SecKeyMn         int     `csv:"secKey_mn"`
	SecKeyDy         int     `csv:"secKey_dy"`
	SecKeyXx         float64 `csv:"secKey_xx"`
	SecKeyCp         string  `csv:"secKey_cp"`
	SecType          string  `csv:"secType"`
	OrderSide        string  `csv:"orderSide"`
	ExecShape        string  `csv:"execShape"`
	ChildSize        float64 `csv:"childSize"`
	ChildMakerTaker  string  `csv:"childMakerTaker"`

	FillTransactDttm   string  `csv:"fillTransactDttm"`
	FillTransactDttmUs float64 `csv:"fillTransactDttm_us"`
	FillPrice          float64 `csv:"fillPrice"`
	FillQuantity       float64 `csv:"fillQuantity"`
	FillBid            float64 `csv:"fillBid"`
	FillAsk            float64 `csv:"fillAsk"`
	FillMark           float64 `csv:"fillMark"`
	FillUBid           float64 `csv:"fillUBid"`
	FillUAsk           float64 `csv:"fillUAsk"`
	FillVol            float64 `csv:"fillVol"`
	FillDe             float64 `csv:"fillDe"`
	FillVe             float64 `csv:"fillVe"`

	ParentDttm   string  `csv:"parentDttm"`
	ParentDttmUs float64 `csv:"parentDttm_us"`
	ParentBid    float64 `csv:"parentBid"`
	ParentAsk    float64 `csv:"parentAsk"`
	ParentMark   float64 `csv:"parentMark"`
	ParentUBid   float64 `csv:"parentUBid"`
	ParentUAsk   float64 `csv:"parentUAsk"`
}

// LoadTrades reads one day's execution snapshot. Rows keep their file order,
// which the engine relies on for first-fill anchoring.
func (l *TradeLoader) LoadTrades(path string) ([]models.Fill, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadTrades: failed to open file: %w", err)
	}
	defer f.Close()

	var records []fillRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("LoadTrades: failed to unmarshal CSV: %v", err)
	}

	fills := make([]models.Fill, 0, len(records))
	for i, rec := range records {
		fill, err := l.toFill(rec)
		if err != nil {
			return nil, fmt.Errorf("LoadTrades: row %d: %w", i, err)
		}
		fills = append(fills, fill)
	}

	return fills, nil
}

func (l *TradeLoader) toFill(rec fillRecord) (models.Fill, error) {
	transact, err := l.parseDttm(rec.FillTransactDttm, rec.FillTransactDttmUs)
	if err != nil {
		return models.Fill{}, fmt.Errorf("failed to parse fillTransactDttm: %w", err)
	}

	parentDttm, err := l.parseDttm(rec.ParentDttm, rec.ParentDttmUs)
	if err != nil {
		return models.Fill{}, fmt.Errorf("failed to parse parentDttm: %w", err)
	}

	return models.Fill{
		ParentNumber:     rec.ParentNumber,
		BaseParentNumber: rec.BaseParentNumber,
		RiskGroupID:      rec.RiskGroupID,
		ClOrdID:          rec.ClOrdID,
		SecKey: models.SecurityKey{
			Ticker: rec.SecKeyTk,
			Year:   rec.SecKeyYr,
			Month:  rec.SecKeyMn,
			Day:    rec.SecKeyDy,
			Strike: roundPenny(rec.SecKeyXx),
			Right:  rec.SecKeyCp,
		},
		SecType:      models.SecType(rec.SecType),
		OrderSide:    models.Side(rec.OrderSide),
		ExecShape:    models.ExecShape(rec.ExecShape),
		ChildSize:    rec.ChildSize,
		MakerTaker:   models.LiquidityRole(rec.ChildMakerTaker),
		TransactDttm: transact,
		Price:        roundPenny(rec.FillPrice),
		Quantity:     rec.FillQuantity,
		Bid:          roundPenny(rec.FillBid),
		Ask:          roundPenny(rec.FillAsk),
		Mark:         rec.FillMark,
		UBid:         roundPenny(rec.FillUBid),
		UAsk:         roundPenny(rec.FillUAsk),
		Vol:          rec.FillVol,
		Delta:        rec.FillDe,
		Vega:         rec.FillVe,
		ParentDttm:   parentDttm,
		ParentBid:    roundPenny(rec.ParentBid),
		ParentAsk:    roundPenny(rec.ParentAsk),
		ParentMark:   rec.ParentMark,
		ParentUBid:   roundPenny(rec.ParentUBid),
		ParentUAsk:   roundPenny(rec.ParentUAsk),
	}, nil
}

func (l *TradeLoader) parseDttm(s string, micros float64) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	t, err := time.ParseInLocation(venueTimeLayout, s, l.venue)
	if err != nil {
		return time.Time{}, err
	}

	return t.In(l.local).Add(time.Duration(micros) * time.Microsecond), nil
}

// roundPenny removes the float noise the venue feed leaves on penny prices.
// Marks and vols stay untouched, they are genuinely sub-penny.
func roundPenny(x float64) float64 {
	return math.Round(x*100) / 100
}

// BrokerState is one row of the broker-state snapshot carrying the venue's
// externally computed benchmark prices for a parent order.
type BrokerState struct {
	BaseParentNumber int64   `csv:"baseParentNumber"`
	QwapMark         float64 `csv:"brokerQwapMark"`
	QwapUMark        float64 `csv:"brokerQwapUMark"`
	VwapMark         float64 `csv:"brokerVwapMark"`
}

// LoadBrokerState reads a broker-state snapshot keyed by parent number. The
// first row per parent wins.
func LoadBrokerState(path string) (map[int64]BrokerState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadBrokerState: failed to open file: %w", err)
	}
	defer f.Close()

	var records []BrokerState
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("LoadBrokerState: failed to unmarshal CSV: %v", err)
	}

	states := make(map[int64]BrokerState, len(records))
	for _, rec := range records {
		if _, ok := states[rec.BaseParentNumber]; !ok {
			states[rec.BaseParentNumber] = rec
		}
	}

	return states, nil
}
