// Package ingest merges scraped candidates into the store: one insert or one
// update per candidate, never both, never a duplicate row.
package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"seekwatch-engine/internal/domain"
	"seekwatch-engine/internal/match"
	"seekwatch-engine/internal/store"
)

type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
)

// Engine applies resolver verdicts to the store.
type Engine struct {
	DB       *sql.DB
	Resolver *match.Resolver

	// RefreshFields controls the update path: when true (the default config),
	// an observed candidate overwrites the stored descriptive fields so
	// source-side edits are captured. first_seen and triage_status are never
	// touched either way.
	RefreshFields bool
}

// Merge reconciles one candidate. Resolve and write happen inside a single
// transaction, so a concurrent writer cannot slip a duplicate row between
// the check and the act.
func (e *Engine) Merge(ctx context.Context, c domain.Candidate, now time.Time) (Outcome, string, error) {
	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", "", fmt.Errorf("begin merge tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := e.Resolver.Resolve(ctx, tx, c)
	if err != nil {
		return "", "", err
	}

	if res.Matched() {
		if err := e.applyUpdate(ctx, tx, res.Job, c, now); err != nil {
			return "", "", err
		}
		return OutcomeUpdated, res.Strategy, tx.Commit()
	}

	_, err = store.Insert(ctx, tx, c, now)
	if err == nil {
		return OutcomeCreated, "", tx.Commit()
	}
	if !isUniqueViolation(err) {
		return "", "", err
	}

	// Two candidates in one batch carried the same URL (source-side page
	// duplicate). The row exists now, so re-resolve and take the update path
	// instead of failing the candidate.
	res, rerr := e.Resolver.Resolve(ctx, tx, c)
	if rerr != nil {
		return "", "", fmt.Errorf("re-resolve after url collision: %w", rerr)
	}
	if !res.Matched() {
		return "", "", fmt.Errorf("url collision but no row resolves: %w", err)
	}
	if err := e.applyUpdate(ctx, tx, res.Job, c, now); err != nil {
		return "", "", err
	}
	return OutcomeUpdated, res.Strategy, tx.Commit()
}

// applyUpdate bumps lifecycle and, per policy, refreshes descriptive fields.
func (e *Engine) applyUpdate(ctx context.Context, q store.Querier, existing *store.Job, c domain.Candidate, now time.Time) error {
	// Re-observation must be a legal lifecycle transition (it reactivates
	// swept rows). Update/Touch below write the resulting active state.
	if _, err := domain.Next(domain.StateFor(existing.IsActive), domain.EventObserved); err != nil {
		return err
	}

	if !e.RefreshFields {
		return store.Touch(ctx, q, existing.ID, now)
	}

	j := *existing
	// A candidate that omits a field does not erase what we already know.
	setIf(&j.Title, c.Title)
	setIf(&j.Company, c.Company)
	setIf(&j.Location, c.Location)
	setIf(&j.Region, c.Region)
	setIf(&j.Salary, c.Salary)
	setIf(&j.DateListed, c.DateListed)
	setIf(&j.JobType, c.JobType)

	// The source truncates card descriptions; never replace a full
	// description with a shorter snippet.
	if len(c.Description) > len(j.Description) {
		j.Description = c.Description
	}

	// On a content match the stored row may lack a URL; adopt the
	// candidate's. An existing URL stays — it is the identity key.
	if j.URL == "" {
		j.URL = c.URL
	}

	return store.Update(ctx, q, j, now)
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
