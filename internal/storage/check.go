package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jacksmith/todo/internal/model"
)

var _ Backend = (*SlotBackend)(nil)

// IssueType classifies a problem found by Inspect.
type IssueType string

const (
	IssueCorrupted   IssueType = "corrupted"
	IssueDuplicateID IssueType = "duplicate_id"
	IssueEmptyTitle  IssueType = "empty_title"
)

// Issue is a single integrity problem in the stored collection.
type Issue struct {
	Type    IssueType `json:"type"`
	TaskID  string    `json:"taskId,omitempty"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	if i.TaskID == "" {
		return fmt.Sprintf("%s: %s", i.Type, i.Message)
	}
	return fmt.Sprintf("%s: %s - %s", i.TaskID, i.Type, i.Message)
}

// Report summarizes the state of the slot without modifying it.
type Report struct {
	Key     string  `json:"key"`
	Format  string  `json:"format"`
	Present bool    `json:"present"`
	Bytes   int     `json:"bytes"`
	Tasks   int     `json:"tasks"`
	Issues  []Issue `json:"issues"`
}

// Corrupted reports whether the slot failed to decode.
func (r *Report) Corrupted() bool {
	for _, i := range r.Issues {
		if i.Type == IssueCorrupted {
			return true
		}
	}
	return false
}

// Inspect decodes the slot and checks the stored invariants. Unlike Load it
// never resets a corrupted slot, so it is safe to run before deciding what to do.
func (b *SlotBackend) Inspect(ctx context.Context) (*Report, error) {
	raw, ok, err := b.store.Get(ctx, b.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.key, err)
	}

	report := &Report{Key: b.key, Format: b.codec.Name(), Present: ok, Bytes: len(raw)}
	if !ok || len(bytes.TrimSpace(raw)) == 0 {
		return report, nil
	}

	tasks, err := b.codec.Decode(raw)
	if err != nil {
		if !errors.Is(err, model.ErrCorruptedState) {
			return nil, err
		}
		report.Issues = append(report.Issues, Issue{Type: IssueCorrupted, Message: err.Error()})
		return report, nil
	}
	report.Tasks = len(tasks)

	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			report.Issues = append(report.Issues, Issue{
				Type:    IssueDuplicateID,
				TaskID:  t.ID,
				Message: "id appears more than once",
			})
		}
		seen[t.ID] = true

		if strings.TrimSpace(t.Title) == "" {
			report.Issues = append(report.Issues, Issue{
				Type:    IssueEmptyTitle,
				TaskID:  t.ID,
				Message: "title is empty",
			})
		}
	}
	return report, nil
}
