package ops

import (
	"context"

	"github.com/jacksmith/todo/internal/model"
)

// Store defines the persistence interface required by the service.
// The concrete implementation is repository.Repository.
type Store interface {
	GetAll(ctx context.Context) ([]model.Task, error)
	GetByID(ctx context.Context, id string) (*model.Task, error)
	Create(ctx context.Context, task model.Task) ([]model.Task, error)
	Toggle(ctx context.Context, task model.Task) ([]model.Task, error)
	Remove(ctx context.Context, id string) ([]model.Task, error)
	Search(ctx context.Context, text string) ([]model.Task, error)
}
