package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "loan-refinance", cfg.App.Name)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, DefaultExportPath, cfg.Export.Path)
	assert.Equal(t, DefaultExportSheet, cfg.Export.Sheet)
	assert.Equal(t, DefaultPreviewRows, cfg.Export.PreviewRows)
	assert.Equal(t, 0.01, cfg.Solver.Seed)
	assert.Equal(t, 1e-9, cfg.Solver.Tolerance)
	assert.Equal(t, 100, cfg.Solver.MaxIterations)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
export:
  path: /tmp/out/refin.xlsx
  preview_rows: 4
solver:
  max_iterations: 50
redis:
  address: localhost:6379
  ttl: 10m
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/tmp/out/refin.xlsx", cfg.Export.Path)
	assert.Equal(t, DefaultExportSheet, cfg.Export.Sheet)
	assert.Equal(t, 4, cfg.Export.PreviewRows)
	assert.Equal(t, 50, cfg.Solver.MaxIterations)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("EXPORT_PATH", "custom.xlsx")
	t.Setenv("REDIS_ADDRESS", "cache:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "custom.xlsx", cfg.Export.Path)
	assert.Equal(t, "cache:6379", cfg.Redis.Address)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EXPORT_SHEET=Simulacao\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("EXPORT_SHEET") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Simulacao", cfg.Export.Sheet)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown log level", "logging:\n  level: verbose\n"},
		{"sheet name too long", "export:\n  sheet: " + "abcdefghijklmnopqrstuvwxyz0123456789\n"},
		{"seed out of range", "solver:\n  seed: 1.5\n"},
		{"zero iterations", "solver:\n  max_iterations: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
