package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksmith/todo/internal/kv"
	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/storage"
)

// stubBackend returns canned errors for Get.
type stubBackend struct {
	storage.Backend
	getErr error
}

func (s *stubBackend) Get(ctx context.Context, id string) (model.Task, error) {
	return model.Task{}, s.getErr
}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	b := storage.NewSlotBackend(kv.NewMemory())
	t.Cleanup(func() { b.Close() })
	return New(b)
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.Create(ctx, model.Task{ID: "a", Title: "found", CreatedAt: 1})
	require.NoError(t, err)

	t.Run("present", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "a")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "found", got.Title)
	})

	t.Run("absent is nil without error", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "missing")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("other errors propagate", func(t *testing.T) {
		boom := errors.New("connection reset")
		r := New(&stubBackend{getErr: boom})
		got, err := r.GetByID(ctx, "a")
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, got)
	})
}

func TestForwarding(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	tasks, err := repo.Create(ctx, model.Task{ID: "a", Title: "Buy milk", CreatedAt: 1})
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	tasks, err = repo.Create(ctx, model.Task{ID: "b", Title: "Walk dog", CreatedAt: 2})
	require.NoError(t, err)
	assert.Equal(t, "b", tasks[0].ID)

	_, err = repo.Create(ctx, model.Task{ID: "a", Title: "dup"})
	assert.True(t, errors.Is(err, model.ErrConflict))

	tasks, err = repo.Toggle(ctx, model.Task{ID: "a", Completed: true})
	require.NoError(t, err)
	assert.True(t, tasks[1].Completed)

	_, err = repo.Toggle(ctx, model.Task{ID: "zz", Completed: true})
	assert.True(t, errors.Is(err, model.ErrNotFound))

	found, err := repo.Search(ctx, "MILK")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "a", found[0].ID)

	tasks, err = repo.Remove(ctx, "a")
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, tasks, all)
}
