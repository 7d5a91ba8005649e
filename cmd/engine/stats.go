package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"seekwatch-engine/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print store statistics and recent ingest runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, db, err := setup()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := cmd.Context()
		s, err := store.GetStats(ctx, db.Pool, time.Now())
		if err != nil {
			return err
		}

		fmt.Printf("jobs:        %d total, %d active\n", s.Total, s.Active)
		fmt.Printf("first seen:  %d today, %d in the last 7 days\n", s.NewToday, s.LastSevenDay)

		if len(s.TopCompanies) > 0 {
			fmt.Println("top companies:")
			for _, c := range s.TopCompanies {
				fmt.Printf("  %4d  %s\n", c.Count, c.Name)
			}
		}
		if len(s.TopRegions) > 0 {
			fmt.Println("top regions:")
			for _, r := range s.TopRegions {
				fmt.Printf("  %4d  %s\n", r.Count, r.Name)
			}
		}

		runs, err := store.LastRuns(ctx, db.Pool, 5)
		if err != nil {
			return err
		}
		if len(runs) > 0 {
			fmt.Println("recent ingest runs:")
			for _, r := range runs {
				fmt.Printf("  %s  %s  candidates=%d created=%d updated=%d fuzzy=%d failed=%d deactivated=%d\n",
					r.Started.Format(time.RFC3339), r.ID[:8],
					r.Candidates, r.Created, r.Updated, r.Fuzzy, r.Failed, r.Deactivated)
			}
		}
		return nil
	},
}
