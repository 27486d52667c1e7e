// Package config loads jot settings from the config file, JOT_* environment
// variables and command-line flags through viper.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete jot configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api" json:"api"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage" json:"storage"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`
}

// APIConfig controls the remote backend.
type APIConfig struct {
	// BaseURL enables remote mode when non-empty.
	BaseURL string `mapstructure:"base_url" yaml:"base_url" json:"base_url"`

	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`

	// Retries is the number of extra attempts for list requests.
	Retries int `mapstructure:"retries" yaml:"retries" json:"retries"`
}

// StorageConfig controls the local backend.
type StorageConfig struct {
	// Driver is one of "file", "sqlite" or "memory".
	Driver string `mapstructure:"driver" yaml:"driver" json:"driver"`

	// Dir is the storage directory. Empty means the nearest .jot directory
	// above the working directory, falling back to DataDir.
	Dir string `mapstructure:"dir" yaml:"dir" json:"dir"`

	// Key is the name the notes collection is stored under.
	Key string `mapstructure:"key" yaml:"key" json:"key"`
}

// LoggingConfig controls the CLI log output.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level" json:"level"`
}

// RemoteEnabled reports whether the remote backend is selected.
func (c *Config) RemoteEnabled() bool {
	return strings.TrimSpace(c.API.BaseURL) != ""
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Timeout: 10 * time.Second,
			Retries: 2,
		},
		Storage: StorageConfig{
			Driver: "file",
			Key:    "notes_app_items_v1",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// SetDefaults registers default values with viper.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("api.base_url", defaults.API.BaseURL)
	viper.SetDefault("api.timeout", defaults.API.Timeout)
	viper.SetDefault("api.retries", defaults.API.Retries)

	viper.SetDefault("storage.driver", defaults.Storage.Driver)
	viper.SetDefault("storage.dir", defaults.Storage.Dir)
	viper.SetDefault("storage.key", defaults.Storage.Key)

	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Init prepares viper: defaults, config file lookup and JOT_* environment
// variables. An explicit cfgFile must exist; the default file is optional.
func Init(cfgFile string) error {
	SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("JOT")
	// JOT_API_BASE_URL for api.base_url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// Load reads the configuration from viper into a Config struct and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "jot")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jot"
	}
	return filepath.Join(home, ".config", "jot")
}

// ConfigFile returns the path to the default config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir returns the default directory for local storage.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "jot")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jot"
	}
	return filepath.Join(home, ".local", "share", "jot")
}
