package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"seekwatch-engine/internal/domain"
	"seekwatch-engine/internal/ingest"
	"seekwatch-engine/internal/match"
	"seekwatch-engine/internal/store"
)

var (
	flagInput string
	flagNow   string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Merge a scraped candidate feed (JSONL on stdin or --input) into the store",
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&flagInput, "input", "-", "candidate feed file, or - for stdin")
	ingestCmd.Flags().StringVar(&flagNow, "now", "", "reference instant (RFC3339) for date normalization; defaults to wall clock")
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	// Cron has no overlap guarantee; the lock file serializes runs so two
	// ingests never interleave writes.
	lock := flock.New(filepath.Join(dataDir(), "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another ingest run holds %s", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	now := time.Now()
	if flagNow != "" {
		now, err = time.Parse(time.RFC3339, flagNow)
		if err != nil {
			return fmt.Errorf("bad --now value: %w", err)
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	var in io.ReadCloser = os.Stdin
	if flagInput != "-" {
		in, err = os.Open(flagInput)
		if err != nil {
			return fmt.Errorf("open feed: %w", err)
		}
		defer in.Close()
	}

	eng := &ingest.Engine{
		DB: db.Pool,
		Resolver: match.NewResolver(
			match.URLStrategy{},
			match.ContentStrategy{PrefixLen: cfg.Ingest.DescriptionPrefixLen},
		),
		RefreshFields: cfg.Ingest.RefreshFields,
	}

	ctx := cmd.Context()
	candidates := make(chan domain.Candidate, 64)

	var sum ingest.Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ingest.DecodeFeed(gctx, in, now, loc, candidates)
	})
	g.Go(func() error {
		sum = eng.ProcessBatch(gctx, candidates, now)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	policy := ingest.SweepPolicy{Enabled: cfg.Sweep.Enabled, LookbackDays: cfg.Sweep.LookbackDays}
	sum.Deactivated, err = ingest.Sweep(ctx, db.Pool, policy, now)
	if err != nil {
		log.Printf("[sweep] error: %v", err)
	}

	if err := store.RecordRun(ctx, db.Pool, store.Run{
		ID:          sum.RunID,
		Started:     sum.Started,
		Finished:    sum.Finished,
		Candidates:  sum.Candidates,
		Created:     sum.Created,
		Updated:     sum.Updated,
		Fuzzy:       sum.Fuzzy,
		Failed:      sum.Failed,
		Deactivated: sum.Deactivated,
	}); err != nil {
		log.Printf("[ingest] could not record run: %v", err)
	}

	log.Printf("[ingest] run=%s candidates=%d created=%d updated=%d fuzzy=%d failed=%d deactivated=%d",
		sum.RunID, sum.Candidates, sum.Created, sum.Updated, sum.Fuzzy, sum.Failed, sum.Deactivated)

	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d candidates failed", sum.Failed, sum.Candidates)
	}
	return nil
}
