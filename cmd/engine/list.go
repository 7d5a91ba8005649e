package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"seekwatch-engine/internal/store"
)

var (
	flagListDays   int
	flagListKw     string
	flagListRegion string
	flagListTriage string
	flagListActive bool
	flagListLimit  int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stored jobs, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, db, err := setup()
		if err != nil {
			return err
		}
		defer db.Close()

		jobs, err := store.ListJobs(cmd.Context(), db.Pool, store.ListOpts{
			Days:       flagListDays,
			Keyword:    flagListKw,
			Region:     flagListRegion,
			Triage:     flagListTriage,
			ActiveOnly: flagListActive,
			Limit:      flagListLimit,
		}, time.Now())
		if err != nil {
			return err
		}

		for _, j := range jobs {
			status := "active"
			if !j.IsActive {
				status = "inactive"
			}
			tag := string(j.TriageStatus)
			if tag == "" {
				tag = "-"
			}
			fmt.Printf("%6d  %-8s  %-3s  %-10s  %s | %s | %s\n",
				j.ID, status, tag, j.FirstSeen.Format("02/01/2006"),
				j.Title, j.Company, j.Location)
		}
		fmt.Printf("%d jobs\n", len(jobs))
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&flagListDays, "days", 0, "only jobs first seen in the last N days")
	listCmd.Flags().StringVar(&flagListKw, "keyword", "", "substring filter on title, company or description")
	listCmd.Flags().StringVar(&flagListRegion, "region", "", "filter by canonical region")
	listCmd.Flags().StringVar(&flagListTriage, "triage", "", "filter by triage status (yes|gsv|no|untagged)")
	listCmd.Flags().BoolVar(&flagListActive, "active", false, "only active jobs")
	listCmd.Flags().IntVar(&flagListLimit, "limit", 200, "maximum rows to print")
}
