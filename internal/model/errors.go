package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for task operations. Typed errors below match these
// with errors.Is.
var (
	ErrNotFound       = errors.New("task not found")
	ErrConflict       = errors.New("task already exists")
	ErrValidation     = errors.New("invalid task")
	ErrCorruptedState = errors.New("corrupted task data")
)

// NotFoundError indicates no task has the given ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %q not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError indicates a task with the same ID is already stored.
type ConflictError struct {
	ID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("task %q already exists", e.ID)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ValidationError indicates input was rejected before anything was persisted.
type ValidationError struct {
	Field   string // the field that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// CorruptedStateError indicates persisted data could not be decoded.
type CorruptedStateError struct {
	Format string // codec that failed
	Err    error
}

func (e *CorruptedStateError) Error() string {
	return fmt.Sprintf("corrupted task data (%s): %v", e.Format, e.Err)
}

func (e *CorruptedStateError) Unwrap() error {
	return e.Err
}

func (e *CorruptedStateError) Is(target error) bool {
	return target == ErrCorruptedState
}
