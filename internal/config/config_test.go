package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "_data", cfg.Paths.DataDir)
	assert.True(t, cfg.Engine.Strict)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("FX_PATHS_DATA_DIR", "/tmp/fxdata")
	t.Setenv("FX_ENGINE_END_DATE", "2025-03-01")
	t.Setenv("FX_PROVIDER_SKIP_PULL", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/fxdata", cfg.Paths.DataDir)
	assert.Equal(t, "2025-03-01", cfg.Engine.EndDate)
	assert.True(t, cfg.Provider.SkipPull)
	// Untouched fields keep their defaults.
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_FileOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "paths:\n  data_dir: /srv/fx/_data\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("FX_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/fx/_data", cfg.Paths.DataDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0644))
	t.Setenv("FX_CONFIG_FILE", path)
	t.Setenv("FX_LOGGING_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_InvalidEndDateFails(t *testing.T) {
	t.Setenv("FX_ENGINE_END_DATE", "03/01/2025")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestConfig_EndDate(t *testing.T) {
	cfg := Default()

	got, err := cfg.EndDate()
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	cfg.Engine.EndDate = "2025-03-01"
	got, err = cfg.EndDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestPaths(t *testing.T) {
	p := NewPaths("/data", "/out")

	assert.Equal(t, filepath.Join("/data", "fx_spot_rates.csv"), p.SpotSnapshot())
	assert.Equal(t, filepath.Join("/data", "fx_interest_rates.csv"), p.RateSnapshot())
	assert.Equal(t, filepath.Join("/data", "fx_returns.csv"), p.ReturnsSnapshot())
	assert.Equal(t, filepath.Join("/data", "ftsfr_fx_returns.csv"), p.StandardizedSnapshot())
	assert.Equal(t, filepath.Join("/out", "fx_cumulative_returns.html"), p.OutputPath(ChartHTMLFile))
}

func TestPaths_EnsureDirectories(t *testing.T) {
	base := t.TempDir()
	p := NewPaths(filepath.Join(base, "_data"), filepath.Join(base, "_output"))

	require.NoError(t, p.EnsureDirectories())

	for _, dir := range []string{p.DataDir, p.OutputDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
