package match

import (
	"context"
	"strings"

	"seekwatch-engine/internal/domain"
	"seekwatch-engine/internal/store"
)

const StrategyURL = "url"

// URLStrategy matches on the source URL alone. A hit is authoritative even
// when every other field differs — the source edits listings in place — and
// inactive rows match too, so a re-observed posting reactivates instead of
// duplicating.
type URLStrategy struct{}

func (URLStrategy) Name() string { return StrategyURL }

func (URLStrategy) Find(ctx context.Context, q store.Querier, c domain.Candidate) (*store.Job, error) {
	if strings.TrimSpace(c.URL) == "" {
		return nil, nil
	}
	return store.GetByURL(ctx, q, c.URL)
}
