// Package kv provides the named-slot stores that hold persisted task data.
//
// A Store is an explicitly opened handle: callers construct one, pass it to
// the storage layer, and Close it when done. Implementations are safe for
// concurrent use, but a read followed by a write is not atomic.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store errors.
var (
	ErrClosed     = errors.New("store is closed")
	ErrInvalidKey = errors.New("invalid key")
)

// Store is a durable key-value store of opaque byte values.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases the store. Later calls return ErrClosed.
	Close() error
}

// ValidateKey checks that key can be used as a slot name in every store.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key must not be empty", ErrInvalidKey)
	}
	if key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
