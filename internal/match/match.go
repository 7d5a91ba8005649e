// Package match decides whether a scraped candidate is the same real-world
// posting as a row already in the store.
//
// Resolution is two-tier: an exact URL hit wins outright; only when the URL
// is missing or unknown does the fuzzy content heuristic run. Each tier is a
// Strategy, so a different similarity function can replace the content
// heuristic without the merge engine noticing.
package match

import (
	"context"
	"fmt"

	"seekwatch-engine/internal/domain"
	"seekwatch-engine/internal/store"
)

// Strategy is one way of locating an existing row for a candidate. Find
// returns nil when the strategy has no match; the resolver then tries the
// next one.
type Strategy interface {
	Name() string
	Find(ctx context.Context, q store.Querier, c domain.Candidate) (*store.Job, error)
}

// Resolution is the resolver's verdict. Job is nil on no match; Strategy
// names the tier that matched, so callers can count heuristic matches
// separately from URL matches.
type Resolution struct {
	Job      *store.Job
	Strategy string
}

func (r Resolution) Matched() bool { return r.Job != nil }

type Resolver struct {
	strategies []Strategy
}

func NewResolver(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// Default is the production resolver: exact URL, then content with a
// 200-char description prefix.
func Default() *Resolver {
	return NewResolver(URLStrategy{}, ContentStrategy{PrefixLen: 200})
}

// Resolve tries each strategy in order and stops at the first hit.
func (r *Resolver) Resolve(ctx context.Context, q store.Querier, c domain.Candidate) (Resolution, error) {
	for _, s := range r.strategies {
		j, err := s.Find(ctx, q, c)
		if err != nil {
			return Resolution{}, fmt.Errorf("resolve via %s: %w", s.Name(), err)
		}
		if j != nil {
			return Resolution{Job: j, Strategy: s.Name()}, nil
		}
	}
	return Resolution{}, nil
}
