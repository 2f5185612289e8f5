package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Dialect selects the SQL driver and statements used by an SQL store.
type Dialect string

// Supported dialects.
const (
	DialectSQLite Dialect = "sqlite"
	DialectMySQL  Dialect = "mysql"
)

type dialectSQL struct {
	driver string
	schema string
	upsert string
}

var dialects = map[Dialect]dialectSQL{
	DialectSQLite: {
		driver: "sqlite",
		schema: `CREATE TABLE IF NOT EXISTS slots (
    slot_key   TEXT PRIMARY KEY,
    value      BLOB NOT NULL,
    updated_at INTEGER NOT NULL
)`,
		upsert: `INSERT INTO slots (slot_key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(slot_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	},
	DialectMySQL: {
		driver: "mysql",
		schema: `CREATE TABLE IF NOT EXISTS slots (
    slot_key   VARCHAR(191) PRIMARY KEY,
    value      LONGBLOB NOT NULL,
    updated_at BIGINT NOT NULL
)`,
		upsert: `INSERT INTO slots (slot_key, value, updated_at) VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)`,
	},
}

// ParseDialect returns the dialect named s.
func ParseDialect(s string) (Dialect, error) {
	d := Dialect(strings.ToLower(s))
	if _, ok := dialects[d]; !ok {
		return "", fmt.Errorf("unknown SQL dialect %q", s)
	}
	return d, nil
}

// NormalizeMySQLDSN validates a go-sql-driver DSN and returns it in canonical form.
func NormalizeMySQLDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	if cfg.DBName == "" {
		return "", fmt.Errorf("invalid mysql dsn: database name is required")
	}
	return cfg.FormatDSN(), nil
}

// SQL is a Store backed by a single "slots" table.
type SQL struct {
	mu      sync.RWMutex
	db      *sql.DB
	dialect Dialect
	upsert  string
	closed  bool
}

// OpenSQL connects to the database, verifies the connection, and creates the
// slots table if it does not exist. For sqlite the dsn is a file path.
func OpenSQL(ctx context.Context, dialect Dialect, dsn string) (*SQL, error) {
	d, ok := dialects[dialect]
	if !ok {
		return nil, fmt.Errorf("unknown SQL dialect %q", dialect)
	}
	if dialect == DialectMySQL {
		normalized, err := NormalizeMySQLDSN(dsn)
		if err != nil {
			return nil, err
		}
		dsn = normalized
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		// One writer at a time avoids SQLITE_BUSY between pooled connections.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect %s: %w", dialect, err)
	}
	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}

	return &SQL{db: db, dialect: dialect, upsert: d.upsert}, nil
}

// Dialect returns the dialect the store was opened with.
func (s *SQL) Dialect() Dialect {
	return s.dialect
}

// Get implements Store.
func (s *SQL) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, false, ErrClosed
	}
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE slot_key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query slot %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements Store.
func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}
	if value == nil {
		value = []byte{}
	}
	if _, err := s.db.ExecContext(ctx, s.upsert, key, value, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

// Remove implements Store.
func (s *SQL) Remove(ctx context.Context, key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM slots WHERE slot_key = ?", key); err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

// Close implements Store. It is idempotent.
func (s *SQL) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
