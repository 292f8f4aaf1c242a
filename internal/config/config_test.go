package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mcsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, BackendCSV, cfg.Log.Backend)
	assert.Equal(t, DefaultLogPath, cfg.Log.Path)
	assert.Nil(t, cfg.Seed)
	assert.Equal(t, DefaultPoints, cfg.DefaultPoints)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
log:
  backend: sqlite
  path: /tmp/pi.db
seed: 42
default_points: 5000
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Log.Backend)
	assert.Equal(t, "/tmp/pi.db", cfg.Log.Path)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
	assert.Equal(t, 5000, cfg.DefaultPoints)
}

func TestLoad_BackendDefaultPath(t *testing.T) {
	path := writeConfig(t, "log:\n  backend: sqlite\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSQLitePath, cfg.Log.Path)
	assert.Equal(t, DefaultPoints, cfg.DefaultPoints)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(writeConfig(t, "sede: 42\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"bad backend", "log:\n  backend: postgres\n", "log.backend"},
		{"negative points", "default_points: -1\n", "default_points"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadOptional(writeConfig(t, "default_points: 7\n"))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.DefaultPoints)
}
