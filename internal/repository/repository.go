// Package repository adapts a storage.Backend to the operations the service
// layer needs. It holds no state of its own.
package repository

import (
	"context"
	"errors"

	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/storage"
)

// Repository forwards task operations to a storage backend.
type Repository struct {
	backend storage.Backend
}

// New returns a Repository over backend.
func New(backend storage.Backend) *Repository {
	return &Repository{backend: backend}
}

// GetAll returns every task in stored order.
func (r *Repository) GetAll(ctx context.Context) ([]model.Task, error) {
	return r.backend.GetAll(ctx)
}

// GetByID returns the task with id, or nil if no such task exists.
func (r *Repository) GetByID(ctx context.Context, id string) (*model.Task, error) {
	task, err := r.backend.Get(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Create stores task and returns the updated collection.
func (r *Repository) Create(ctx context.Context, task model.Task) ([]model.Task, error) {
	return r.backend.Add(ctx, task)
}

// Toggle persists task's completion flag and returns the updated collection.
func (r *Repository) Toggle(ctx context.Context, task model.Task) ([]model.Task, error) {
	return r.backend.UpdateStatus(ctx, task)
}

// Remove deletes the task with id and returns the updated collection.
func (r *Repository) Remove(ctx context.Context, id string) ([]model.Task, error) {
	return r.backend.Delete(ctx, id)
}

// Search returns tasks whose title contains text, ignoring case.
func (r *Repository) Search(ctx context.Context, text string) ([]model.Task, error) {
	return r.backend.Search(ctx, text)
}
