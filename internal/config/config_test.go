package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, StorageFile, cfg.Storage.Driver)
	assert.Equal(t, "./resume-data", cfg.Storage.Dir)
	assert.Equal(t, time.Second, cfg.Autosave.Debounce)
	assert.Equal(t, 5*time.Second, cfg.Autosave.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.Render.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.AI.BaseURL)
}

func TestLoad_YAMLAndEnv(t *testing.T) {
	path := writeYAML(t, `
server:
  port: 9090
storage:
  driver: postgres
database:
  dsn: "postgres://u:p@localhost:5432/resume"
autosave:
  debounce: "250ms"
render:
  margin_mm: 8
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 250*time.Millisecond, cfg.Autosave.Debounce)
	assert.Equal(t, 8.0, cfg.Render.MarginMM)
	assert.Equal(t, "debug", cfg.Log.Level, "env overrides yaml")
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", StorageMemory)
	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadFile(writeYAML(t, "storage:\n  driver: s3\n"))
	assert.ErrorContains(t, err, "config:")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Storage:  StorageConfig{Driver: StorageFile, Dir: "/tmp/resume"},
			Autosave: AutosaveConfig{Debounce: time.Second},
		}
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"memory driver", func(c *Config) { c.Storage.Driver = StorageMemory }, false},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "s3" }, true},
		{"file without dir", func(c *Config) { c.Storage.Dir = "" }, true},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = StoragePostgres }, true},
		{"zero debounce", func(c *Config) { c.Autosave.Debounce = 0 }, true},
		{"negative margin", func(c *Config) { c.Render.MarginMM = -1 }, true},
		{"relative ai url", func(c *Config) { c.AI.BaseURL = "ai-service" }, true},
		{"ai url", func(c *Config) { c.AI.BaseURL = "http://ai-service:8000" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
