package config

import (
	"fmt"
	"time"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills gaps with defaults and checks the rest.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	def := Default()

	if out.App.DataDir == "" {
		out.App.DataDir = def.App.DataDir
	}

	// ---- ingest ----

	if out.Ingest.Timezone == "" {
		out.Ingest.Timezone = def.Ingest.Timezone
	}
	if _, err := time.LoadLocation(out.Ingest.Timezone); err != nil {
		res.addErr("ingest.timezone %q is not a valid IANA zone", out.Ingest.Timezone)
	}

	if out.Ingest.DescriptionPrefixLen == 0 {
		out.Ingest.DescriptionPrefixLen = def.Ingest.DescriptionPrefixLen
	}
	if out.Ingest.DescriptionPrefixLen < 0 {
		res.addErr("ingest.description_prefix_len must be >= 0")
	} else if out.Ingest.DescriptionPrefixLen < 50 {
		res.addWarn("ingest.description_prefix_len is very short (%d); fuzzy matching may over-merge distinct postings.", out.Ingest.DescriptionPrefixLen)
	}

	// ---- sweep ----

	if out.Sweep.LookbackDays == 0 {
		out.Sweep.LookbackDays = def.Sweep.LookbackDays
	}
	if out.Sweep.LookbackDays < 0 {
		res.addErr("sweep.lookback_days must be > 0")
	}
	if out.Sweep.Enabled && out.Sweep.LookbackDays < 2 {
		res.addWarn("sweep.lookback_days=%d deactivates jobs missed by a single scrape window; pagination gaps will flap records.", out.Sweep.LookbackDays)
	}

	return out, res
}

// Location resolves the configured ingest timezone. Call only after
// validation has passed.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Ingest.Timezone)
}
