package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jacksmith/todo/internal/kv"
	"github.com/jacksmith/todo/internal/model"
)

const (
	// todoDir is the directory holding config and data.
	todoDir = ".todo"
	// configFile is the name of the config file within .todo/.
	configFile = "config.yaml"
	// envPrefix prefixes environment overrides, e.g. TODO_BACKEND.
	envPrefix = "TODO"
)

// Supported backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// Default configuration values.
const (
	DefaultBackend   = BackendFile
	DefaultDataDir   = "data"
	DefaultFormat    = model.FormatJSON
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config keys as they appear in config.yaml.
const (
	keyBackend   = "backend"
	keyDataDir   = "data_dir"
	keyDSN       = "dsn"
	keyKey       = "key"
	keyFormat    = "format"
	keyLogLevel  = "log_level"
	keyLogFormat = "log_format"
)

// Config represents .todo/config.yaml. Every value may be overridden by a
// TODO_-prefixed environment variable (TODO_BACKEND, TODO_DATA_DIR, ...).
type Config struct {
	// Backend selects the slot store: file, sqlite, mysql, or memory.
	Backend string `yaml:"backend"`

	// DataDir holds slot files and the sqlite database. Relative paths are
	// resolved against .todo/.
	DataDir string `yaml:"data_dir"`

	// DSN is the mysql connection string. For sqlite it overrides the
	// database path; it is ignored by other backends.
	DSN string `yaml:"dsn,omitempty"`

	// Key is the slot name holding the task collection.
	Key string `yaml:"key"`

	// Format is the persisted encoding: json, yaml, or toml.
	Format string `yaml:"format"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Backend:   DefaultBackend,
		DataDir:   DefaultDataDir,
		Key:       DefaultKey,
		Format:    DefaultFormat,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Validate checks that the Config names known backends and formats.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	case BackendMySQL:
		if c.DSN == "" {
			return fmt.Errorf("backend %q requires dsn", c.Backend)
		}
	default:
		return fmt.Errorf("unknown backend %q (expected file, sqlite, mysql, or memory)", c.Backend)
	}
	if _, err := model.CodecFor(c.Format); err != nil {
		return err
	}
	return kv.ValidateKey(c.Key)
}

// ConfigPath returns the path to the config file under root.
func ConfigPath(root string) string {
	return filepath.Join(root, todoDir, configFile)
}

// LoadConfig loads .todo/config.yaml under root, merging it over defaults and
// applying environment overrides. A missing config file yields defaults.
// DataDir is returned as an absolute path.
func LoadConfig(root string) (*Config, error) {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault(keyBackend, defaults.Backend)
	v.SetDefault(keyDataDir, defaults.DataDir)
	v.SetDefault(keyDSN, "")
	v.SetDefault(keyKey, defaults.Key)
	v.SetDefault(keyFormat, defaults.Format)
	v.SetDefault(keyLogLevel, defaults.LogLevel)
	v.SetDefault(keyLogFormat, defaults.LogFormat)

	path := ConfigPath(root)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
	}

	cfg := &Config{
		Backend:   strings.ToLower(v.GetString(keyBackend)),
		DataDir:   v.GetString(keyDataDir),
		DSN:       v.GetString(keyDSN),
		Key:       v.GetString(keyKey),
		Format:    strings.ToLower(v.GetString(keyFormat)),
		LogLevel:  v.GetString(keyLogLevel),
		LogFormat: v.GetString(keyLogFormat),
	}

	if !filepath.IsAbs(cfg.DataDir) {
		abs, err := filepath.Abs(filepath.Join(root, todoDir, cfg.DataDir))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve data_dir: %w", err)
		}
		cfg.DataDir = abs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
