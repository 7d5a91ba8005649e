package match

import (
	"context"

	"seekwatch-engine/internal/domain"
	"seekwatch-engine/internal/normalize"
	"seekwatch-engine/internal/store"
)

const StrategyContent = "content"

// ContentStrategy catches re-posted listings that came back under a new URL:
// title, company and location must all be equal (case/whitespace folded) and
// the first PrefixLen characters of the description must match. Partial
// agreement is not a match.
//
// When several rows qualify, the most recently seen one wins (last_seen
// DESC, id DESC) so the choice is deterministic across runs.
type ContentStrategy struct {
	PrefixLen int
}

func (ContentStrategy) Name() string { return StrategyContent }

func (s ContentStrategy) Find(ctx context.Context, q store.Querier, c domain.Candidate) (*store.Job, error) {
	// Empty fields would make the equality test vacuous and match wildly
	// unrelated rows, so all three must be present.
	if c.Title == "" || c.Company == "" || c.Location == "" {
		return nil, nil
	}

	// Stored rows were cleaned at ingest time; clean the candidate side too
	// so stray whitespace doesn't defeat the equality (case folding happens
	// in SQL via COLLATE NOCASE).
	rows, err := store.FindByContent(ctx, q,
		normalize.CleanText(c.Title),
		normalize.CleanText(c.Company),
		normalize.CleanText(c.Location))
	if err != nil {
		return nil, err
	}

	n := s.PrefixLen
	if n <= 0 {
		n = 200
	}
	want := normalize.DescriptionPrefix(c.Description, n)
	for i := range rows {
		if normalize.DescriptionPrefix(rows[i].Description, n) == want {
			return &rows[i], nil
		}
	}
	return nil, nil
}
