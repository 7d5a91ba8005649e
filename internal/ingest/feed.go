package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"seekwatch-engine/internal/domain"
	"seekwatch-engine/internal/normalize"
)

// RawCandidate is the wire shape the scraping layer hands over: one JSON
// object per line, fields optional, listed_date still in source form
// ("6 hours ago", "today", or an absolute date).
type RawCandidate struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	ListedDate  string `json:"listed_date"`
	JobType     string `json:"job_type"`
	Description string `json:"description"`
}

// Normalize cleans the raw fields and resolves the listed date against the
// injected reference instant, producing the candidate the resolver works on.
func (r RawCandidate) Normalize(ref time.Time, loc *time.Location) domain.Candidate {
	location := normalize.CleanText(r.Location)
	return domain.Candidate{
		URL:         normalize.CleanText(r.URL),
		Title:       normalize.CleanText(r.Title),
		Company:     normalize.CleanText(r.Company),
		Location:    location,
		Region:      normalize.Region(location),
		Salary:      normalize.CleanText(r.Salary),
		DateListed:  normalize.ListedDate(r.ListedDate, ref, loc),
		JobType:     normalize.CleanText(r.JobType),
		Description: normalize.CleanText(r.Description),
	}
}

// DecodeFeed reads JSONL candidates from rd into out, closing out when the
// input ends. Malformed lines are logged and skipped — one broken record
// must not sink the batch. Runs as the producer side of an errgroup while
// ProcessBatch consumes.
func DecodeFeed(ctx context.Context, rd io.Reader, ref time.Time, loc *time.Location, out chan<- domain.Candidate) error {
	defer close(out)

	sc := bufio.NewScanner(rd)
	// full job descriptions can be large
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}

		var rc RawCandidate
		if err := json.Unmarshal(raw, &rc); err != nil {
			log.Printf("[feed] skipping malformed line %d: %v", line, err)
			continue
		}

		select {
		case out <- rc.Normalize(ref, loc):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read feed: %w", err)
	}
	return nil
}
