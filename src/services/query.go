package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
)

// The venue exposes its trade tables over MySQL. Each dump query pulls one
// account's rows from one table into a dated snapshot CSV that the day
// processor consumes offline.
var snapshotQueries = []struct {
	query      string
	filePrefix string
}{
	{"SELECT * FROM srtrade009.msgsrparentexecution WHERE accnt = ?", "Trades"},
	{"SELECT * FROM srtrade.msgsrparentbrkrstate WHERE accnt = ?", "BrkrState"},
	{"SELECT * FROM srtrade.msgsrparentbrkrdetail WHERE accnt = ?", "BrkrDetail"},
}

// DumpTables snapshots the venue's execution, broker-state and broker-detail
// tables for one account into outDir, named by today's date. Returns the
// files written.
func DumpTables(ctx context.Context, db *sqlx.DB, accnt, outDir string) ([]string, error) {
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("DumpTables: failed to create directory: %w", err)
		}
	}

	date := time.Now().Format("20060102")

	var written []string
	for _, q := range snapshotQueries {
		path := filepath.Join(outDir, fmt.Sprintf("%s%s.csv", q.filePrefix, date))
		n, err := dumpQuery(ctx, db, q.query, accnt, path)
		if err != nil {
			return written, fmt.Errorf("DumpTables: %s: %w", q.filePrefix, err)
		}

		log.Infof("wrote %d rows to %s", n, path)
		written = append(written, path)
	}

	return written, nil
}

func dumpQuery(ctx context.Context, db *sqlx.DB, query, accnt, path string) (int, error) {
	rows, err := db.QueryxContext(ctx, query, accnt)
	if err != nil {
		return 0, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return 0, fmt.Errorf("failed to read columns: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(cols); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	n := 0
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return n, fmt.Errorf("failed to scan row: %w", err)
		}

		record := make([]string, len(vals))
		for i, v := range vals {
			switch t := v.(type) {
			case nil:
				record[i] = ""
			case []byte:
				record[i] = string(t)
			default:
				record[i] = fmt.Sprintf("%v", t)
			}
		}

		if err := w.Write(record); err != nil {
			return n, fmt.Errorf("failed to write row: %w", err)
		}
		n++
	}

	return n, rows.Err()
}
