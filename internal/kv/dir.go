package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Dir is a Store that keeps each key in its own file under a directory.
// Writes go through a temp file, fsync, and rename so a crash never leaves
// a half-written value behind.
type Dir struct {
	mu     sync.RWMutex
	root   string
	ext    string
	closed bool
}

// OpenDir returns a Dir rooted at dir, creating the directory if needed.
// ext is appended to each key to form the file name (e.g. ".json").
func OpenDir(dir, ext string) (*Dir, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Dir{root: dir, ext: ext}, nil
}

// Root returns the directory holding the files.
func (d *Dir) Root() string {
	return d.root
}

// Path returns the file path used for key.
func (d *Dir) Path(key string) string {
	return filepath.Join(d.root, key+d.ext)
}

// Get implements Store.
func (d *Dir) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return nil, false, ErrClosed
	}
	data, err := os.ReadFile(d.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Set implements Store.
func (d *Dir) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateKey(key); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	return writeAtomic(d.Path(key), value)
}

// Remove implements Store.
func (d *Dir) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateKey(key); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if err := os.Remove(d.Path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Close implements Store. It is idempotent.
func (d *Dir) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// writeAtomic writes data to path using the temp-file, fsync, rename pattern.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".slot-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
