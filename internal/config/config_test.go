package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

func TestDefaults(t *testing.T) {
	setup(t)
	require.NoError(t, Init(""))

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.RemoteEnabled())
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "notes_app_items_v1", cfg.Storage.Key)
	assert.Empty(t, cfg.Storage.Dir)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2, cfg.API.Retries)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestConfigFile(t *testing.T) {
	setup(t)
	path := filepath.Join(t.TempDir(), "jot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://notes.example.com/api
  timeout: 3s
storage:
  driver: sqlite
logging:
  level: debug
`), 0o644))

	require.NoError(t, Init(path))
	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.RemoteEnabled())
	assert.Equal(t, "https://notes.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestDefaultConfigFileLocation(t *testing.T) {
	setup(t)
	require.NoError(t, os.MkdirAll(ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(ConfigFile(), []byte("storage:\n  driver: memory\n"), 0o644))

	require.NoError(t, Init(""))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestDataDir(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	assert.Equal(t, filepath.Join(data, "jot"), DataDir())

	t.Setenv("XDG_CONFIG_HOME", data)
	assert.Equal(t, filepath.Join(data, "jot", "config.yaml"), ConfigFile())
}

func TestMissingExplicitFile(t *testing.T) {
	setup(t)
	err := Init(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	setup(t)
	t.Setenv("JOT_API_BASE_URL", "http://localhost:8080")
	t.Setenv("JOT_STORAGE_DRIVER", "memory")
	t.Setenv("JOT_API_RETRIES", "5")

	require.NoError(t, Init(""))
	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.RemoteEnabled())
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 5, cfg.API.Retries)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown driver", func(c *Config) { c.Storage.Driver = "redis" }, "storage.driver"},
		{"empty key", func(c *Config) { c.Storage.Key = "" }, "storage.key"},
		{"key with slash", func(c *Config) { c.Storage.Key = "a/b" }, "storage.key"},
		{"key with backslash", func(c *Config) { c.Storage.Key = `a\b` }, "storage.key"},
		{"key escaping dir", func(c *Config) { c.Storage.Key = ".." }, "storage.key"},
		{"negative retries", func(c *Config) { c.API.Retries = -1 }, "api.retries"},
		{"negative timeout", func(c *Config) { c.API.Timeout = -time.Second }, "api.timeout"},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://example.com" }, "api.base_url"},
		{"relative url", func(c *Config) { c.API.BaseURL = "/notes" }, "api.base_url"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.Validate()
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}

	assert.Empty(t, Default().Validate())
}

func TestValidationErrors_Error(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = "redis"
	cfg.Logging.Level = "loud"

	errs := cfg.Validate()
	require.Len(t, errs, 2)
	assert.Contains(t, errs.Error(), "2 validation errors")
	assert.Contains(t, errs.Error(), "storage.driver")
}

func TestLoad_Invalid(t *testing.T) {
	setup(t)
	t.Setenv("JOT_STORAGE_DRIVER", "redis")
	require.NoError(t, Init(""))

	_, err := Load()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "storage.driver", verrs[0].Field)
}
