package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Timer.SweepIntervalSec)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	assert.Equal(t, 1024, cfg.AI.MaxTokens)
	assert.Equal(t, "993", cfg.Intake.Port)
	assert.True(t, cfg.Intake.TLS)
	assert.Equal(t, 20, cfg.Intake.FetchLimit)
	assert.Empty(t, cfg.DatabasePath)
}

func TestLoadConfigOverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
database_path: /tmp/board.db
timer:
  sweep_interval_sec: 15
intake:
  host: imap.agency.io
  username: requests@agency.io
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/board.db", cfg.DatabasePath)
	assert.Equal(t, 15, cfg.Timer.SweepIntervalSec)
	assert.Equal(t, "imap.agency.io", cfg.Intake.Host)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, "993", cfg.Intake.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := &AppConfig{
		DatabasePath: "/data/board.db",
		Timer:        TimerConfig{SweepIntervalSec: 30},
		AI:           AIConfig{Model: "gemini-2.5-flash", MaxTokens: 512},
		Intake:       IntakeConfig{Host: "imap.agency.io", Port: "143", FetchLimit: 5},
		Display:      DisplayConfig{Theme: "default"},
	}
	require.NoError(t, SaveConfig(path, cfg))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/board.db", got.DatabasePath)
	assert.Equal(t, 30, got.Timer.SweepIntervalSec)
	assert.Equal(t, 512, got.AI.MaxTokens)
	assert.Equal(t, "143", got.Intake.Port)
	assert.Equal(t, 5, got.Intake.FetchLimit)
}
