package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/simondyates/SpiderRock/src/models"
	"github.com/simondyates/SpiderRock/src/tca"
)

// TimelinePoint is one fill on an order's execution timeline, in raw price,
// delta-adjusted price or vol terms depending on the series.
type TimelinePoint struct {
	TransactDttm time.Time `csv:"fillTransactDttm"`
	Side         string    `csv:"orderSide"`
	Bid          float64   `csv:"fillBid"`
	Ask          float64   `csv:"fillAsk"`
	Mark         float64   `csv:"fillMark"`
	Price        float64   `csv:"fillPrice"`
	Quantity     float64   `csv:"fillQuantity"`
	CumQuantity  float64   `csv:"cumQuantity"`
}

// Timeline holds the chart-ready series for one order. DeltaAdjusted and Vol
// are nil for zero-delta (stock) orders.
type Timeline struct {
	Title         string
	Raw           []TimelinePoint
	DeltaAdjusted []TimelinePoint
	Vol           []TimelinePoint
}

// BuildTimeline prepares the fill series consumed by external charting:
// raw quotes and prices, their delta-adjusted projection back to the arrival
// underlying level, and the vol translation of the adjusted series, each with
// a running filled quantity.
func BuildTimeline(fills []models.Fill) (*Timeline, error) {
	fills = models.PositiveFills(fills)

	ctx, err := models.NewOrderContext(fills)
	if err != nil {
		return nil, fmt.Errorf("BuildTimeline: %w", err)
	}

	title, err := models.OrderTitle(fills)
	if err != nil {
		return nil, fmt.Errorf("BuildTimeline: %w", err)
	}

	tl := &Timeline{Title: title}

	cum := 0.0
	for _, f := range fills {
		cum += f.Quantity
		tl.Raw = append(tl.Raw, TimelinePoint{
			TransactDttm: f.TransactDttm,
			Side:         string(f.OrderSide),
			Bid:          f.Bid,
			Ask:          f.Ask,
			Mark:         f.Mark,
			Price:        f.Price,
			Quantity:     f.Quantity,
			CumQuantity:  cum,
		})
	}

	adj := tca.Adjust(fills, ctx)
	if adj == nil {
		return tl, nil
	}

	for i, p := range tl.Raw {
		dadj := p
		dadj.Bid = adj.Bid[i]
		dadj.Ask = adj.Ask[i]
		dadj.Mark = adj.Mark[i]
		dadj.Price = adj.Price[i]
		tl.DeltaAdjusted = append(tl.DeltaAdjusted, dadj)

		vol := p
		vol.Bid = adj.BidVol[i]
		vol.Ask = adj.AskVol[i]
		vol.Mark = adj.MarkVol[i]
		vol.Price = adj.PriceVol[i]
		tl.Vol = append(tl.Vol, vol)
	}

	return tl, nil
}

// ExportTimeline writes each series of the timeline to its own CSV in outDir
// and returns the file paths written.
func ExportTimeline(outDir string, tl *Timeline) ([]string, error) {
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("ExportTimeline: failed to create directory: %w", err)
		}
	}

	series := []struct {
		suffix string
		points []TimelinePoint
	}{
		{"raw", tl.Raw},
		{"dadj", tl.DeltaAdjusted},
		{"vol", tl.Vol},
	}

	var written []string
	for _, s := range series {
		if len(s.points) == 0 {
			continue
		}

		path := filepath.Join(outDir, fmt.Sprintf("%s %s.csv", tl.Title, s.suffix))
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("ExportTimeline: failed to create file: %w", err)
		}

		if err := gocsv.MarshalFile(&s.points, f); err != nil {
			f.Close()
			return nil, fmt.Errorf("ExportTimeline: failed to write %s: %v", path, err)
		}

		f.Close()
		written = append(written, path)
	}

	return written, nil
}
