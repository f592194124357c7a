package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simondyates/SpiderRock/src/tca"
)

// WriteReportCSV persists a formatted report in the venue-interchange layout:
// an unnamed metric column followed by Maker, Taker, Total and Desc.
func WriteReportCSV(path string, report *tca.FormattedReport) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("WriteReportCSV: failed to create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("WriteReportCSV: failed to create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"", "Maker", "Taker", "Total", "Desc"}); err != nil {
		return fmt.Errorf("WriteReportCSV: failed to write header: %w", err)
	}

	for _, row := range report.Rows {
		if err := w.Write([]string{string(row.Metric), row.Maker, row.Taker, row.Total, row.Desc}); err != nil {
			return fmt.Errorf("WriteReportCSV: failed to write row %s: %w", row.Metric, err)
		}
	}

	return nil
}
