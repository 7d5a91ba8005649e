package ingest

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"seekwatch-engine/internal/domain"
	"seekwatch-engine/internal/match"
)

// Summary is what one batch run reports (and what gets written to
// ingest_runs).
type Summary struct {
	RunID      string
	Started    time.Time
	Finished   time.Time
	Candidates int
	Created    int
	Updated    int
	// Fuzzy counts updates that matched via the content heuristic rather
	// than the URL — operators watch this number, it is the weaker signal.
	Fuzzy       int
	Failed      int
	Deactivated int64
}

// ProcessBatch merges candidates one at a time, in source order. A failing
// candidate is logged and counted, and the batch moves on: every candidate
// that completed is already durable, so partial batches are safe. Between
// candidates the context is honored for clean aborts.
func (e *Engine) ProcessBatch(ctx context.Context, candidates <-chan domain.Candidate, now time.Time) Summary {
	sum := Summary{
		RunID:   uuid.NewString(),
		Started: now,
	}

	for c := range candidates {
		if ctx.Err() != nil {
			log.Printf("[ingest] aborting batch: %v", ctx.Err())
			break
		}
		sum.Candidates++

		outcome, via, err := e.Merge(ctx, c, now)
		if err != nil {
			sum.Failed++
			log.Printf("[ingest] merge failed title=%q url=%q: %v", c.Title, c.URL, err)
			continue
		}

		switch outcome {
		case OutcomeCreated:
			sum.Created++
			log.Printf("[ingest] new job title=%q company=%q", c.Title, c.Company)
		case OutcomeUpdated:
			sum.Updated++
			if via == match.StrategyContent {
				sum.Fuzzy++
				log.Printf("[ingest] heuristic match (different or missing url) title=%q company=%q", c.Title, c.Company)
			}
		}
	}

	sum.Finished = time.Now().UTC()
	return sum
}
