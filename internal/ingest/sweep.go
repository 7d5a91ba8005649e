package ingest

import (
	"context"
	"database/sql"
	"log"
	"time"

	"seekwatch-engine/internal/store"
)

// SweepPolicy decides whether rows unseen for a while get deactivated at the
// end of a batch. Absence from one scrape window does not prove a posting
// was removed (pagination limits hide listings too), so sweeping is opt-in
// config, disabled by default; deactivation then stays a manual, explicit
// step (`engine sweep`).
type SweepPolicy struct {
	Enabled      bool
	LookbackDays int
}

// Sweep deactivates active rows whose last_seen predates the lookback
// horizon measured from batchStart. Rows the current batch touched carry
// last_seen >= batchStart and are never swept. Returns the number of rows
// deactivated.
func Sweep(ctx context.Context, db *sql.DB, p SweepPolicy, batchStart time.Time) (int64, error) {
	if !p.Enabled {
		return 0, nil
	}
	days := p.LookbackDays
	if days <= 0 {
		days = 7
	}

	cutoff := batchStart.AddDate(0, 0, -days)
	n, err := store.DeactivateUnseen(ctx, db, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("[sweep] deactivated %d jobs unseen since %s", n, cutoff.UTC().Format(time.RFC3339))
	}
	return n, nil
}
