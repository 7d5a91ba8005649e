package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"seekwatch-engine/internal/config"
	"seekwatch-engine/internal/store"
)

var flagDataDir string

var rootCmd = &cobra.Command{
	Use:           "engine",
	Short:         "Merges scraped job-listing feeds into the local store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("[engine] %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "engine data directory (default $SEEKWATCH_DATA_DIR or .)")
	rootCmd.AddCommand(ingestCmd, sweepCmd, listCmd, statsCmd, triageCmd, backfillRegionsCmd)
}

func dataDir() string {
	if flagDataDir != "" {
		return flagDataDir
	}
	if d := os.Getenv("SEEKWATCH_DATA_DIR"); d != "" {
		return d
	}
	return "."
}

// setup loads (bootstrapping if needed) the config and opens the migrated
// store. Callers own closing the DB.
func setup() (config.Config, *store.DB, error) {
	dir := dataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return config.Config{}, nil, err
	}

	cfgPath, err := config.EnsureUserConfig(dir)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("config bootstrap: %w", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("config load (%s): %w", cfgPath, err)
	}

	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !res.OK() {
		return config.Config{}, nil, fmt.Errorf("invalid config (%s): %v", cfgPath, res.Errors)
	}

	db, err := store.Open(filepath.Join(dir, "seekwatch.db"))
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("open store: %w", err)
	}
	if err := store.Migrate(db.Pool); err != nil {
		_ = db.Close()
		return config.Config{}, nil, fmt.Errorf("migrate store: %w", err)
	}
	return cfg, db, nil
}
