package main

import (
	"log"

	"github.com/spf13/cobra"

	"seekwatch-engine/internal/normalize"
	"seekwatch-engine/internal/store"
)

// Rows ingested before the region column existed (or imported from old
// exports) have no region; recompute it from the stored location.
var backfillRegionsCmd = &cobra.Command{
	Use:   "backfill-regions",
	Short: "Fill in the region column for jobs missing one",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, db, err := setup()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := store.BackfillRegions(cmd.Context(), db.Pool, normalize.Region)
		if err != nil {
			return err
		}
		log.Printf("[backfill] regions set on %d jobs", n)
		return nil
	},
}
