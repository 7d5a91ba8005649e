// engine/internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Ingest struct {
		// Timezone relative dates ("6 hours ago") resolve in.
		Timezone string `yaml:"timezone"`
		// How much of the description the fuzzy matcher compares.
		DescriptionPrefixLen int `yaml:"description_prefix_len"`
		// Overwrite stored descriptive fields when a listing is re-observed.
		RefreshFields bool `yaml:"refresh_fields"`
	} `yaml:"ingest"`

	Sweep struct {
		// Deactivating unseen rows is a heuristic (absence from a scrape
		// window is not proof of removal), so it ships disabled.
		Enabled      bool `yaml:"enabled"`
		LookbackDays int  `yaml:"lookback_days"`
	} `yaml:"sweep"`
}

func Default() Config {
	var cfg Config
	cfg.App.DataDir = "."
	cfg.Ingest.Timezone = "Pacific/Auckland"
	cfg.Ingest.DescriptionPrefixLen = 200
	cfg.Ingest.RefreshFields = true
	cfg.Sweep.Enabled = false
	cfg.Sweep.LookbackDays = 7
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
