package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, 60, cfg.History.Capacity)
	assert.True(t, cfg.Clusters.Enabled)
	assert.Equal(t, 30, cfg.Clusters.Window)
	assert.Equal(t, 3, cfg.Clusters.K)
	assert.Equal(t, 11, cfg.Clusters.MinSamples)
	assert.True(t, cfg.Clusters.StableLabels)
	assert.Equal(t, 5, cfg.Recommend.MinSamples)
	assert.Equal(t, 70.0, cfg.Recommend.CPUThreshold)
	assert.Equal(t, 75.0, cfg.Recommend.MemoryThreshold)
	assert.True(t, cfg.UI.Mouse)
	assert.Equal(t, "auto", cfg.UI.Color)

	require.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)

	content := `
version: 1
interval: 2s
history:
  capacity: 120
clusters:
  enabled: false
  window: 40
  k: 4
recommend:
  cpu_threshold: 60
ui:
  mouse: false
  log_file: /tmp/sysdash.log
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Interval)
	assert.Equal(t, 120, cfg.History.Capacity)
	assert.False(t, cfg.Clusters.Enabled)
	assert.Equal(t, 40, cfg.Clusters.Window)
	assert.Equal(t, 4, cfg.Clusters.K)
	assert.Equal(t, 60.0, cfg.Recommend.CPUThreshold)
	assert.False(t, cfg.UI.Mouse)
	assert.Equal(t, "/tmp/sysdash.log", cfg.UI.LogFile)

	// unspecified keys keep their defaults
	assert.Equal(t, 11, cfg.Clusters.MinSamples)
	assert.Equal(t, 75.0, cfg.Recommend.MemoryThreshold)
	assert.Equal(t, "auto", cfg.UI.Color)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SYSDASH_INTERVAL", "500ms")
	t.Setenv("SYSDASH_CLUSTERS_K", "5")
	t.Setenv("SYSDASH_RECOMMEND_MEMORY_THRESHOLD", "90")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.Interval)
	assert.Equal(t, 5, cfg.Clusters.K)
	assert.Equal(t, 90.0, cfg.Recommend.MemoryThreshold)
	assert.Equal(t, 60, cfg.History.Capacity)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("interval: [oops\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o644))

		got, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("HOME", t.TempDir())
		t.Chdir(dir)
		require.NoError(t, os.WriteFile(ConfigFileName, []byte("version: 1\n"), 0o644))

		got, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, ConfigFileName), got)
	})

	t.Run("global config", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Chdir(t.TempDir())

		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		require.NoError(t, os.MkdirAll(filepath.Dir(global), 0o755))
		require.NoError(t, os.WriteFile(global, []byte("version: 1\n"), 0o644))

		got, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, global, got)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Chdir(t.TempDir())

		got, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestLoadOrDefault_NoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Interval = 3 * time.Second
	cfg.Clusters.K = 4
	cfg.UI.Mouse = false
	require.NoError(t, Save(cfg, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "interval: 3s")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"future version", func(c *Config) { c.Version = 99 }, "from the future"},
		{"interval too short", func(c *Config) { c.Interval = 10 * time.Millisecond }, "too short"},
		{"tiny history", func(c *Config) { c.History.Capacity = 1 }, "History capacity"},
		{"k too small", func(c *Config) { c.Clusters.K = 1 }, "clusters.k"},
		{"k too large", func(c *Config) { c.Clusters.K = 7 }, "clusters.k"},
		{"window below k", func(c *Config) { c.Clusters.Window = 2 }, "smaller than clusters.k"},
		{"window beyond history", func(c *Config) { c.Clusters.Window = 61 }, "exceeds history.capacity"},
		{"min samples below k", func(c *Config) { c.Clusters.MinSamples = 2 }, "min_samples"},
		{"min samples beyond history", func(c *Config) { c.Clusters.MinSamples = 61 }, "never run"},
		{"recommend min zero", func(c *Config) { c.Recommend.MinSamples = 0 }, "recommend.min_samples"},
		{"cpu threshold out of range", func(c *Config) { c.Recommend.CPUThreshold = 120 }, "recommend.cpu_threshold"},
		{"memory threshold negative", func(c *Config) { c.Recommend.MemoryThreshold = -1 }, "recommend.memory_threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
