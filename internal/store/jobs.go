package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"seekwatch-engine/internal/domain"
)

// Job is one stored listing row. String fields use "" for NULL.
type Job struct {
	ID           int64
	URL          string
	Title        string
	Company      string
	Location     string
	Region       string
	Salary       string
	DateListed   string
	JobType      string
	Description  string
	FirstSeen    time.Time
	LastSeen     time.Time
	IsActive     bool
	TriageStatus domain.TriageStatus
}

const jobCols = `id, url, title, company, location, region, salary, date_listed, job_type, description, first_seen, last_seen, is_active, triage_status`

// ns maps "" to NULL on write so optional fields stay nullable in the schema.
func ns(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func fmtTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func scanJob(row interface{ Scan(dest ...any) error }) (*Job, error) {
	var j Job
	var url, title, company, location, region sql.NullString
	var salary, dateListed, jobType, description, triage sql.NullString
	var firstSeen, lastSeen string
	var active int
	err := row.Scan(&j.ID, &url, &title, &company, &location, &region,
		&salary, &dateListed, &jobType, &description,
		&firstSeen, &lastSeen, &active, &triage)
	if err != nil {
		return nil, err
	}
	j.URL = url.String
	j.Title = title.String
	j.Company = company.String
	j.Location = location.String
	j.Region = region.String
	j.Salary = salary.String
	j.DateListed = dateListed.String
	j.JobType = jobType.String
	j.Description = description.String
	j.FirstSeen, _ = time.Parse(time.RFC3339, firstSeen)
	j.LastSeen, _ = time.Parse(time.RFC3339, lastSeen)
	j.IsActive = active != 0
	j.TriageStatus = domain.TriageStatus(triage.String)
	return &j, nil
}

// GetByURL returns the row carrying url, active or not, or nil when absent.
func GetByURL(ctx context.Context, q Querier, url string) (*Job, error) {
	if strings.TrimSpace(url) == "" {
		return nil, nil
	}
	row := q.QueryRowContext(ctx, `
SELECT `+jobCols+`
FROM jobs
WHERE url = ?
LIMIT 1;`, url)

	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get by url: %w", err)
	}
	return j, nil
}

// FindByContent returns rows whose title, company and location equal the
// given values ignoring case, newest last_seen first (id breaks ties so the
// order is total). Description comparison is the caller's job.
func FindByContent(ctx context.Context, q Querier, title, company, location string) ([]Job, error) {
	rows, err := q.QueryContext(ctx, `
SELECT `+jobCols+`
FROM jobs
WHERE title = ? COLLATE NOCASE
  AND company = ? COLLATE NOCASE
  AND location = ? COLLATE NOCASE
ORDER BY last_seen DESC, id DESC;`, title, company, location)
	if err != nil {
		return nil, fmt.Errorf("find by content: %w", err)
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *j)
	}
	return out, rows.Err()
}

// Insert creates a new row with first_seen = last_seen = now and a NULL
// triage_status. Returns the generated id.
func Insert(ctx context.Context, q Querier, c domain.Candidate, now time.Time) (int64, error) {
	ts := fmtTime(now)
	res, err := q.ExecContext(ctx, `
INSERT INTO jobs (url, title, company, location, region, salary, date_listed, job_type, description, first_seen, last_seen, is_active)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1);`,
		ns(c.URL), ns(c.Title), ns(c.Company), ns(c.Location), ns(c.Region),
		ns(c.Salary), ns(c.DateListed), ns(c.JobType), ns(c.Description), ts, ts,
	)
	if err != nil {
		return 0, fmt.Errorf("insert job: %w", err)
	}
	return res.LastInsertId()
}

// Update rewrites a row's descriptive fields and bumps last_seen/is_active.
// id, first_seen and triage_status are never written here: the first two are
// immutable, the last is owned by the triage UI.
func Update(ctx context.Context, q Querier, j Job, now time.Time) error {
	_, err := q.ExecContext(ctx, `
UPDATE jobs
SET url = ?, title = ?, company = ?, location = ?, region = ?,
    salary = ?, date_listed = ?, job_type = ?, description = ?,
    last_seen = ?, is_active = 1
WHERE id = ?;`,
		ns(j.URL), ns(j.Title), ns(j.Company), ns(j.Location), ns(j.Region),
		ns(j.Salary), ns(j.DateListed), ns(j.JobType), ns(j.Description),
		fmtTime(now), j.ID,
	)
	if err != nil {
		return fmt.Errorf("update job %d: %w", j.ID, err)
	}
	return nil
}

// Touch bumps last_seen/is_active only, leaving every descriptive field as
// stored. Used when field refresh is disabled in config.
func Touch(ctx context.Context, q Querier, id int64, now time.Time) error {
	_, err := q.ExecContext(ctx, `
UPDATE jobs SET last_seen = ?, is_active = 1 WHERE id = ?;`, fmtTime(now), id)
	if err != nil {
		return fmt.Errorf("touch job %d: %w", id, err)
	}
	return nil
}

// SetTriageStatus is the write surface for the external triage UI. The
// ingest core never calls it.
func SetTriageStatus(ctx context.Context, q Querier, id int64, status domain.TriageStatus) error {
	res, err := q.ExecContext(ctx, `
UPDATE jobs SET triage_status = ? WHERE id = ?;`, ns(string(status)), id)
	if err != nil {
		return fmt.Errorf("set triage on job %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("set triage: no job with id %d", id)
	}
	return nil
}

// DeactivateUnseen flips is_active off for active rows last seen before
// cutoff. Rows touched by the current batch have last_seen >= batch start,
// so any cutoff at or before that never claws them back.
func DeactivateUnseen(ctx context.Context, q Querier, cutoff time.Time) (int64, error) {
	res, err := q.ExecContext(ctx, `
UPDATE jobs SET is_active = 0
WHERE is_active = 1 AND last_seen < ?;`, fmtTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("deactivate unseen: %w", err)
	}
	return res.RowsAffected()
}

// BackfillRegions recomputes the region column for rows missing one, using
// the given mapper. Returns how many rows were updated.
func BackfillRegions(ctx context.Context, db *sql.DB, mapper func(location string) string) (int64, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, location FROM jobs
WHERE (region IS NULL OR region = '') AND location IS NOT NULL AND location != '';`)
	if err != nil {
		return 0, fmt.Errorf("backfill regions: %w", err)
	}
	defer rows.Close()

	type pending struct {
		id     int64
		region string
	}
	var todo []pending
	for rows.Next() {
		var id int64
		var location string
		if err := rows.Scan(&id, &location); err != nil {
			return 0, err
		}
		todo = append(todo, pending{id: id, region: mapper(location)})
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	var n int64
	for _, p := range todo {
		if p.region == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, `UPDATE jobs SET region = ? WHERE id = ?;`, p.region, p.id); err != nil {
			return n, fmt.Errorf("backfill region for job %d: %w", p.id, err)
		}
		n++
	}
	return n, nil
}
