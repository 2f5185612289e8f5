package ops

import (
	"strings"
	"unicode/utf8"

	"github.com/jacksmith/todo/internal/model"
)

// NormalizeTitle trims surrounding whitespace from a task title.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

// ValidateTitle checks that a task title is valid UTF-8 and not empty or
// whitespace-only.
func ValidateTitle(title string) error {
	if !utf8.ValidString(title) {
		return &model.ValidationError{Field: "title", Message: "must be valid UTF-8"}
	}
	if NormalizeTitle(title) == "" {
		return &model.ValidationError{Field: "title", Message: "must not be empty"}
	}
	return nil
}
