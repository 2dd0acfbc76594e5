// Package config loads themekit configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/uamas/themekit/internal/logging"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DefaultStorageKey is the key the theme configuration is persisted under.
const DefaultStorageKey = "uamas_theme_config"

const envPrefix = "THEMEKIT"

// Config is the top-level configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	CSS     CSSConfig     `mapstructure:"css" yaml:"css"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-" yaml:"-"`
}

// StorageConfig selects where the theme configuration is persisted.
type StorageConfig struct {
	// Backend is one of file, sqlite or memory.
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the JSON file used by the file backend.
	Path string `mapstructure:"path" yaml:"path"`

	// Database is the SQLite file used by the sqlite backend. It also
	// holds the theme history log.
	Database string `mapstructure:"database" yaml:"database"`

	// Key is the storage key for the theme configuration.
	Key string `mapstructure:"key" yaml:"key"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSSConfig controls stylesheet export.
type CSSConfig struct {
	// Output is the default path for `themekit css`; empty writes to stdout.
	Output string `mapstructure:"output" yaml:"output"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	dataDir := DataDir()
	return &Config{
		Storage: StorageConfig{
			Backend:  BackendFile,
			Path:     filepath.Join(dataDir, "theme.json"),
			Database: filepath.Join(dataDir, "themekit.db"),
			Key:      DefaultStorageKey,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: string(logging.FormatText),
		},
	}
}

// Load reads configuration from path, or from the default config directory
// when path is empty. THEMEKIT_* environment variables override file values,
// e.g. THEMEKIT_STORAGE_BACKEND=sqlite.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(ConfigDir())
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Storage.Database = expandHome(cfg.Storage.Database)
	cfg.CSS.Output = expandHome(cfg.CSS.Output)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("storage.database", cfg.Storage.Database)
	v.SetDefault("storage.key", cfg.Storage.Key)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("css.output", cfg.CSS.Output)
}

// Validate checks the configuration for unsupported values.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile:
		if strings.TrimSpace(c.Storage.Path) == "" {
			return errors.New("storage.path is required for the file backend")
		}
	case BackendSQLite:
		if strings.TrimSpace(c.Storage.Database) == "" {
			return errors.New("storage.database is required for the sqlite backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (want file, sqlite or memory)", c.Storage.Backend)
	}

	if strings.TrimSpace(c.Storage.Key) == "" {
		return errors.New("storage.key is required")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch logging.Format(c.Logging.Format) {
	case logging.FormatText, logging.FormatJSON, "":
	default:
		return fmt.Errorf("unknown logging format %q", c.Logging.Format)
	}
	return nil
}

// ConfigDir returns the directory searched for config.yaml.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "themekit")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config", "themekit")
	}
	return ".themekit"
}

// DataDir returns the default directory for persisted state.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "themekit")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "share", "themekit")
	}
	return ".themekit"
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
