package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacksmith/todo/internal/model"
)

// ErrAmbiguousID is returned when a prefix matches more than one task.
var ErrAmbiguousID = errors.New("ambiguous task id")

// AmbiguousIDError lists the ids a prefix matched.
type AmbiguousIDError struct {
	Prefix  string
	Matches []string
}

func (e *AmbiguousIDError) Error() string {
	short := make([]string, len(e.Matches))
	for i, id := range e.Matches {
		short[i] = model.ShortID(id)
	}
	return fmt.Sprintf("ambiguous task id %q matches: %s", e.Prefix, strings.Join(short, ", "))
}

func (e *AmbiguousIDError) Is(target error) bool {
	return target == ErrAmbiguousID
}

// ResolveID finds the unique task whose id starts with prefix.
// An exact id match always wins. Matching ignores case.
func ResolveID(prefix string, tasks []model.Task) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", &model.ValidationError{Field: "id", Message: "must not be empty"}
	}

	var matches []string
	for _, t := range tasks {
		if strings.EqualFold(t.ID, prefix) {
			return t.ID, nil
		}
		if model.HasIDPrefix(t.ID, prefix) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", &model.NotFoundError{ID: prefix}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousIDError{Prefix: prefix, Matches: matches}
	}
}
