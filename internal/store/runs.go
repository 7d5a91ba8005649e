package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Run is the audit record for one ingestion batch.
type Run struct {
	ID          string // uuid
	Started     time.Time
	Finished    time.Time
	Candidates  int
	Created     int
	Updated     int
	Fuzzy       int // updates that relied on the content heuristic
	Failed      int
	Deactivated int64
}

func RecordRun(ctx context.Context, db *sql.DB, r Run) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO ingest_runs (id, started_at, finished_at, candidates, created, updated, fuzzy, failed, deactivated)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		r.ID, fmtTime(r.Started), fmtTime(r.Finished),
		r.Candidates, r.Created, r.Updated, r.Fuzzy, r.Failed, r.Deactivated,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// LastRuns returns the most recent ingest runs, newest first.
func LastRuns(ctx context.Context, db *sql.DB, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, started_at, finished_at, candidates, created, updated, fuzzy, failed, deactivated
FROM ingest_runs
ORDER BY started_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, fmt.Errorf("last runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.Candidates, &r.Created, &r.Updated, &r.Fuzzy, &r.Failed, &r.Deactivated); err != nil {
			return nil, err
		}
		r.Started, _ = time.Parse(time.RFC3339, started)
		r.Finished, _ = time.Parse(time.RFC3339, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}
