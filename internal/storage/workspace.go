package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/jacksmith/todo/internal/kv"
	"github.com/jacksmith/todo/internal/model"
)

// sqliteFile is the database file name inside DataDir.
const sqliteFile = "todo.db"

// Init creates .todo/ under root with a default config.yaml.
// Returns error if .todo/ already exists.
func Init(root string) (*Config, error) {
	dirPath := filepath.Join(root, todoDir)

	if _, err := os.Stat(dirPath); err == nil {
		return nil, fmt.Errorf(".todo/ directory already exists in %s", root)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for .todo/: %w", err)
	}

	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .todo/: %w", err)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		os.RemoveAll(dirPath)
		return nil, fmt.Errorf("failed to write config.yaml: %w", err)
	}

	return LoadConfig(root)
}

// Exists reports whether root contains a .todo/ directory.
func Exists(root string) bool {
	info, err := os.Stat(filepath.Join(root, todoDir))
	return err == nil && info.IsDir()
}

// OpenStore opens the slot store selected by cfg.
func OpenStore(ctx context.Context, cfg *Config) (kv.Store, error) {
	switch cfg.Backend {
	case BackendFile:
		return kv.OpenDir(cfg.DataDir, "."+cfg.Format)
	case BackendSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
			dsn = filepath.Join(cfg.DataDir, sqliteFile)
		}
		return kv.OpenSQL(ctx, kv.DialectSQLite, dsn)
	case BackendMySQL:
		return kv.OpenSQL(ctx, kv.DialectMySQL, cfg.DSN)
	case BackendMemory:
		return kv.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// Open opens the configured store and wraps it in a SlotBackend.
// The caller must Close the returned backend.
func Open(ctx context.Context, cfg *Config, logger *log.Logger, opts ...Option) (*SlotBackend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	codec, err := model.CodecFor(cfg.Format)
	if err != nil {
		return nil, err
	}

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	base := []Option{WithKey(cfg.Key), WithCodec(codec)}
	if logger != nil {
		base = append(base, WithLogger(logger))
	}
	return NewSlotBackend(store, append(base, opts...)...), nil
}
