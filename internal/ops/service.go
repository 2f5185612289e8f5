// Package ops implements the task operations behind every todo command.
//
// The Service holds no task state. Each call reads through its Store and
// returns the collection as the store reports it after the change.
package ops

import (
	"context"
	"time"

	"github.com/jacksmith/todo/internal/model"
)

// Service validates input and applies task operations to a Store.
type Service struct {
	store Store
	now   func() time.Time
	newID func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator sets the function used to mint task IDs.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// NewService returns a Service backed by store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		newID: model.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetTodos returns every task, newest first by creation time.
func (s *Service) GetTodos(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return model.SortByCreatedDesc(tasks), nil
}

// Create adds a task with the trimmed title and returns the collection in
// stored order. An empty title is rejected with a *model.ValidationError and
// nothing is written.
func (s *Service) Create(ctx context.Context, title string) ([]model.Task, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}

	task := model.Task{
		ID:        s.newID(),
		Title:     NormalizeTitle(title),
		Completed: false,
		CreatedAt: s.now().UnixMilli(),
	}
	return s.store.Create(ctx, task)
}

// Toggle flips the completion state of the task with id. found is false, with
// a nil error and nil collection, when no such task exists.
func (s *Service) Toggle(ctx context.Context, id string) (tasks []model.Task, found bool, err error) {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if task == nil {
		return nil, false, nil
	}

	task.Toggle()
	tasks, err = s.store.Toggle(ctx, *task)
	if err != nil {
		return nil, false, err
	}
	return tasks, true, nil
}

// Delete removes the task with id. Deleting a missing task is not an error.
func (s *Service) Delete(ctx context.Context, id string) ([]model.Task, error) {
	return s.store.Remove(ctx, id)
}

// Search returns tasks whose title contains the trimmed text, ignoring case.
func (s *Service) Search(ctx context.Context, text string) ([]model.Task, error) {
	return s.store.Search(ctx, NormalizeTitle(text))
}
