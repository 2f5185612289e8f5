package model

import (
	"strings"

	"github.com/google/uuid"
)

// ShortIDLen is the number of leading characters shown for an ID.
const ShortIDLen = 8

// NewID returns a fresh random task ID (UUID v4).
func NewID() string {
	return uuid.NewString()
}

// ShortID returns the display form of an ID.
func ShortID(id string) string {
	if len(id) <= ShortIDLen {
		return id
	}
	return id[:ShortIDLen]
}

// HasIDPrefix reports whether id starts with prefix, ignoring case.
func HasIDPrefix(id, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(id), strings.ToLower(prefix))
}
