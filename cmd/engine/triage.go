package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"seekwatch-engine/internal/domain"
	"seekwatch-engine/internal/store"
)

// triage is the thin CLI stand-in for the review UI's write surface. The
// ingest core itself never writes this column.
var triageCmd = &cobra.Command{
	Use:   "triage <job-id> <yes|gsv|no|clear>",
	Short: "Tag a stored job with a triage status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad job id %q", args[0])
		}

		raw := args[1]
		if raw == "clear" {
			raw = ""
		}
		status, err := domain.ParseTriageStatus(raw)
		if err != nil {
			return err
		}

		_, db, err := setup()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.SetTriageStatus(cmd.Context(), db.Pool, id, status); err != nil {
			return err
		}
		log.Printf("[triage] job=%d status=%q", id, status)
		return nil
	},
}
