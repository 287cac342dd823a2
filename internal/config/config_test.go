package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("Missing file should yield defaults (-want +got):\n%s", diff)
	}
}

func TestConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Timing.InactivityWindow = "7s"
	cfg.Storage.DatabasePath = "elsewhere/pad.db"
	cfg.Logging.DebugMode = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 7*time.Second, loaded.GetInactivityWindow())
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CODEPAD_DB", "/tmp/override.db")
	t.Setenv("CODEPAD_DEBUG", "1")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/override.db", cfg.Storage.DatabasePath)
	assert.True(t, cfg.Logging.DebugMode)
}

func TestConfig_BadDurationFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timing.SaveDebounce = "not-a-duration"
	cfg.Timing.ExclamationTTL = "-5s"

	assert.Equal(t, 500*time.Millisecond, cfg.GetSaveDebounce())
	assert.Equal(t, 3*time.Second, cfg.GetExclamationTTL())
}
