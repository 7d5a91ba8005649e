package main

import (
	"log"
	"time"

	"github.com/spf13/cobra"

	"seekwatch-engine/internal/ingest"
)

var flagLookbackDays int

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Deactivate jobs not observed within the lookback window",
	Long: `Deactivates active jobs whose last_seen is older than the lookback window.
This is the explicit, operator-driven path; automatic sweeping after each
ingest stays off unless sweep.enabled is set in config.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, db, err := setup()
		if err != nil {
			return err
		}
		defer db.Close()

		days := flagLookbackDays
		if days <= 0 {
			days = cfg.Sweep.LookbackDays
		}

		// explicit invocation overrides the enabled flag
		policy := ingest.SweepPolicy{Enabled: true, LookbackDays: days}
		n, err := ingest.Sweep(cmd.Context(), db.Pool, policy, time.Now())
		if err != nil {
			return err
		}
		log.Printf("[sweep] done, deactivated=%d (lookback=%dd)", n, days)
		return nil
	},
}

func init() {
	sweepCmd.Flags().IntVar(&flagLookbackDays, "lookback-days", 0, "override sweep.lookback_days from config")
}
