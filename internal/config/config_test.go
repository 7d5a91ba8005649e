package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAndValidate_Defaults(t *testing.T) {
	got, res := NormalizeAndValidate(Config{})
	require.True(t, res.OK(), "errors: %v", res.Errors)

	assert.Equal(t, ".", got.App.DataDir)
	assert.Equal(t, "Pacific/Auckland", got.Ingest.Timezone)
	assert.Equal(t, 200, got.Ingest.DescriptionPrefixLen)
	assert.Equal(t, 7, got.Sweep.LookbackDays)
	assert.False(t, got.Sweep.Enabled, "sweeping ships off")
}

func TestNormalizeAndValidate_BadTimezone(t *testing.T) {
	cfg := Default()
	cfg.Ingest.Timezone = "Middle/Earth"
	_, res := NormalizeAndValidate(cfg)
	require.False(t, res.OK())
	assert.Contains(t, res.Errors[0], "Middle/Earth")
}

func TestNormalizeAndValidate_Warnings(t *testing.T) {
	cfg := Default()
	cfg.Ingest.DescriptionPrefixLen = 10
	cfg.Sweep.Enabled = true
	cfg.Sweep.LookbackDays = 1
	_, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK(), "warnings are not errors")
	assert.Len(t, res.Warnings, 2)
}

func TestNormalizeAndValidate_NegativeValues(t *testing.T) {
	cfg := Default()
	cfg.Ingest.DescriptionPrefixLen = -1
	cfg.Sweep.LookbackDays = -3
	_, res := NormalizeAndValidate(cfg)
	assert.Len(t, res.Errors, 2)
}

func TestSaveAtomic_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := Default()
	cfg.Ingest.Timezone = "UTC"
	cfg.Sweep.Enabled = true
	require.NoError(t, SaveAtomic(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "UTC", got.Ingest.Timezone)
	assert.True(t, got.Sweep.Enabled)

	// second save keeps the previous file as .bak
	cfg.Sweep.Enabled = false
	require.NoError(t, SaveAtomic(path, cfg))
	_, err = os.Stat(path + ".bak")
	assert.NoError(t, err)
}

func TestSaveAtomic_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	cfg.Ingest.Timezone = "Nowhere/Nothing"
	assert.Error(t, SaveAtomic(path, cfg))
}

func TestEnsureUserConfig(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), path)

	// first run materializes the defaults
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), got)

	// a user edit survives the next boot
	edited := Default()
	edited.Ingest.RefreshFields = false
	require.NoError(t, SaveAtomic(path, edited))

	_, err = EnsureUserConfig(dir)
	require.NoError(t, err)
	got, err = Load(path)
	require.NoError(t, err)
	assert.False(t, got.Ingest.RefreshFields)
}
