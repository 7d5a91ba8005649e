package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ListOpts narrows the listing queries the export tooling runs.
type ListOpts struct {
	Days       int    // only rows first seen within the last N days; 0 = all
	Keyword    string // substring of title, company or description
	Region     string // canonical region name
	Triage     string // "yes" | "gsv" | "no" | "untagged" | "" (any)
	ActiveOnly bool
	Limit      int
}

// ListJobs returns stored rows newest-first, filtered per opts.
func ListJobs(ctx context.Context, db *sql.DB, opts ListOpts, now time.Time) ([]Job, error) {
	if opts.Limit <= 0 {
		opts.Limit = 200
	}

	where := "WHERE 1=1"
	var args []any

	if opts.Days > 0 {
		where += " AND first_seen >= ?"
		args = append(args, fmtTime(now.AddDate(0, 0, -opts.Days)))
	}
	if opts.Keyword != "" {
		where += " AND (title LIKE ? OR company LIKE ? OR description LIKE ?)"
		kw := "%" + opts.Keyword + "%"
		args = append(args, kw, kw, kw)
	}
	if opts.Region != "" {
		where += " AND region = ?"
		args = append(args, opts.Region)
	}
	switch opts.Triage {
	case "":
		// any
	case "untagged":
		where += " AND (triage_status IS NULL OR triage_status = '')"
	default:
		where += " AND triage_status = ?"
		args = append(args, opts.Triage)
	}
	if opts.ActiveOnly {
		where += " AND is_active = 1"
	}

	query := fmt.Sprintf(`
SELECT `+jobCols+`
FROM jobs
%s
ORDER BY first_seen DESC, id DESC
LIMIT ?;`, where)
	args = append(args, opts.Limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
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

type CountRow struct {
	Name  string
	Count int
}

type Stats struct {
	Total        int
	Active       int
	NewToday     int
	LastSevenDay int
	TopCompanies []CountRow
	TopRegions   []CountRow
}

// GetStats summarizes the table for the stats command. now is injected so
// "today" is well-defined in tests.
func GetStats(ctx context.Context, db *sql.DB, now time.Time) (Stats, error) {
	var s Stats

	count := func(query string, args ...any) (int, error) {
		var n int
		err := db.QueryRowContext(ctx, query, args...).Scan(&n)
		return n, err
	}

	var err error
	if s.Total, err = count(`SELECT COUNT(*) FROM jobs;`); err != nil {
		return s, fmt.Errorf("stats total: %w", err)
	}
	if s.Active, err = count(`SELECT COUNT(*) FROM jobs WHERE is_active = 1;`); err != nil {
		return s, fmt.Errorf("stats active: %w", err)
	}

	dayStart := now.UTC().Truncate(24 * time.Hour)
	if s.NewToday, err = count(`SELECT COUNT(*) FROM jobs WHERE first_seen >= ?;`, fmtTime(dayStart)); err != nil {
		return s, fmt.Errorf("stats new today: %w", err)
	}
	if s.LastSevenDay, err = count(`SELECT COUNT(*) FROM jobs WHERE first_seen >= ?;`, fmtTime(now.AddDate(0, 0, -7))); err != nil {
		return s, fmt.Errorf("stats last 7d: %w", err)
	}

	top := func(col string) ([]CountRow, error) {
		rows, err := db.QueryContext(ctx, fmt.Sprintf(`
SELECT %s, COUNT(*) AS n
FROM jobs
WHERE %s IS NOT NULL AND %s != ''
GROUP BY %s
ORDER BY n DESC
LIMIT 10;`, col, col, col, col))
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		var out []CountRow
		for rows.Next() {
			var r CountRow
			if err := rows.Scan(&r.Name, &r.Count); err != nil {
				return nil, err
			}
			out = append(out, r)
		}
		return out, rows.Err()
	}

	if s.TopCompanies, err = top("company"); err != nil {
		return s, fmt.Errorf("stats companies: %w", err)
	}
	if s.TopRegions, err = top("region"); err != nil {
		return s, fmt.Errorf("stats regions: %w", err)
	}
	return s, nil
}
