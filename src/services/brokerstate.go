package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// FindBrokerState locates the first broker-state snapshot on or after the
// trade date and loads it. The snapshot for a trade date is typically written
// the next morning, so a few days are scanned. A missing snapshot is a normal
// condition and returns nil: the caller computes without QWAP references.
func FindBrokerState(dir string, dt time.Time, lookaheadDays int) (map[int64]BrokerState, error) {
	for i := 0; i <= lookaheadDays; i++ {
		path := filepath.Join(dir, fmt.Sprintf("BrkrState%s.csv", dt.AddDate(0, 0, i).Format("20060102")))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		states, err := LoadBrokerState(path)
		if err != nil {
			return nil, fmt.Errorf("FindBrokerState: %w", err)
		}

		log.Infof("using broker state snapshot %s", path)
		return states, nil
	}

	log.Warnf("no broker state snapshot found for %s", dt.Format("20060102"))
	return nil, nil
}
