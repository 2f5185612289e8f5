package ops

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacksmith/todo/internal/kv"
	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/repository"
	"github.com/jacksmith/todo/internal/storage"
)

// fakeClock advances one second on every call.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

// sequentialIDs returns id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func setupTestService(t *testing.T, opts ...Option) (*Service, *storage.SlotBackend) {
	t.Helper()
	backend := storage.NewSlotBackend(kv.NewMemory())
	t.Cleanup(func() { backend.Close() })

	clock := &fakeClock{t: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	base := []Option{WithClock(clock.Now), WithIDGenerator(sequentialIDs())}
	return NewService(repository.New(backend), append(base, opts...)...), backend
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("trims title and sets defaults", func(t *testing.T) {
		svc, _ := setupTestService(t)
		tasks, err := svc.Create(ctx, "  Buy milk  ")
		require.NoError(t, err)
		require.Len(t, tasks, 1)

		got := tasks[0]
		assert.Equal(t, "id-1", got.ID)
		assert.Equal(t, "Buy milk", got.Title)
		assert.False(t, got.Completed)
		assert.Equal(t, time.Date(2026, 10, 19, 9, 0, 1, 0, time.UTC).UnixMilli(), got.CreatedAt)
	})

	t.Run("returns stored order", func(t *testing.T) {
		svc, _ := setupTestService(t)
		_, err := svc.Create(ctx, "first")
		require.NoError(t, err)
		tasks, err := svc.Create(ctx, "second")
		require.NoError(t, err)
		assert.Equal(t, []string{"second", "first"}, titles(tasks))
	})

	t.Run("empty titles are rejected and nothing is stored", func(t *testing.T) {
		svc, backend := setupTestService(t)
		for _, title := range []string{"", "   ", "\t\n"} {
			_, err := svc.Create(ctx, title)
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrValidation))

			var ve *model.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "title", ve.Field)
		}

		all, err := backend.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("invalid UTF-8 title is rejected and nothing is stored", func(t *testing.T) {
		svc, backend := setupTestService(t)
		_, err := svc.Create(ctx, "caf\xe9")
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrValidation))

		all, err := backend.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("invalid UTF-8 title leaves a toml slot readable", func(t *testing.T) {
		codec, err := model.CodecFor(model.FormatTOML)
		require.NoError(t, err)
		backend := storage.NewSlotBackend(kv.NewMemory(), storage.WithCodec(codec))
		t.Cleanup(func() { backend.Close() })
		svc := NewService(repository.New(backend), WithIDGenerator(sequentialIDs()))

		_, err = svc.Create(ctx, "Buy milk")
		require.NoError(t, err)
		_, err = svc.Create(ctx, "Walk dog")
		require.NoError(t, err)

		_, err = svc.Create(ctx, "caf\xe9")
		assert.True(t, errors.Is(err, model.ErrValidation))

		snap, err := backend.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, storage.LoadOK, snap.State)
		assert.Equal(t, []string{"Walk dog", "Buy milk"}, titles(snap.Tasks))
	})

	t.Run("duplicate id surfaces conflict", func(t *testing.T) {
		svc, backend := setupTestService(t, WithIDGenerator(func() string { return "same" }))
		_, err := svc.Create(ctx, "one")
		require.NoError(t, err)

		_, err = svc.Create(ctx, "two")
		assert.True(t, errors.Is(err, model.ErrConflict))

		all, err := backend.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"one"}, titles(all))
	})

	t.Run("default generator yields distinct ids", func(t *testing.T) {
		backend := storage.NewSlotBackend(kv.NewMemory())
		defer backend.Close()
		svc := NewService(repository.New(backend))

		_, err := svc.Create(ctx, "a")
		require.NoError(t, err)
		tasks, err := svc.Create(ctx, "b")
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.NotEqual(t, tasks[0].ID, tasks[1].ID)
	})
}

func TestGetTodos(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewSlotBackend(kv.NewMemory())
	defer backend.Close()

	// Stored order deliberately disagrees with createdAt.
	for _, tk := range []model.Task{
		{ID: "mid", Title: "mid", CreatedAt: 200},
		{ID: "old", Title: "old", CreatedAt: 100},
		{ID: "new", Title: "new", CreatedAt: 300},
		{ID: "tie", Title: "tie", CreatedAt: 200},
	} {
		_, err := backend.Add(ctx, tk)
		require.NoError(t, err)
	}

	svc := NewService(repository.New(backend))
	tasks, err := svc.GetTodos(ctx)
	require.NoError(t, err)
	// Stored order is tie, new, old, mid; the sort is stable on ties.
	assert.Equal(t, []string{"new", "tie", "mid", "old"}, titles(tasks))

	t.Run("empty store", func(t *testing.T) {
		svc, _ := setupTestService(t)
		tasks, err := svc.GetTodos(ctx)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("twice restores original state", func(t *testing.T) {
		svc, backend := setupTestService(t)
		_, err := svc.Create(ctx, "Buy milk")
		require.NoError(t, err)
		before, err := backend.Get(ctx, "id-1")
		require.NoError(t, err)

		tasks, found, err := svc.Toggle(ctx, "id-1")
		require.NoError(t, err)
		require.True(t, found)
		assert.True(t, tasks[0].Completed)

		tasks, found, err = svc.Toggle(ctx, "id-1")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, before, tasks[0])
	})

	t.Run("missing id is absent, not an error", func(t *testing.T) {
		svc, backend := setupTestService(t)
		_, err := svc.Create(ctx, "keep")
		require.NoError(t, err)

		tasks, found, err := svc.Toggle(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, tasks)

		all, err := backend.GetAll(ctx)
		require.NoError(t, err)
		assert.False(t, all[0].Completed)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestService(t)
	_, err := svc.Create(ctx, "a")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "b")
	require.NoError(t, err)

	first, err := svc.Delete(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, titles(first))

	second, err := svc.Delete(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestService(t)
	for _, title := range []string{"Buy milk", "Walk dog", "buy bread"} {
		_, err := svc.Create(ctx, title)
		require.NoError(t, err)
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"buy", []string{"buy bread", "Buy milk"}},
		{"  BUY ", []string{"buy bread", "Buy milk"}},
		{"dog", []string{"Walk dog"}},
		{"", []string{"buy bread", "Walk dog", "Buy milk"}},
		{"cat", []string{}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.query), func(t *testing.T) {
			got, err := svc.Search(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestBuyMilkScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestService(t)

	_, err := svc.Create(ctx, "Buy milk")
	require.NoError(t, err)

	todos, err := svc.GetTodos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Buy milk", todos[0].Title)
	assert.False(t, todos[0].Completed)
	id := todos[0].ID

	_, found, err := svc.Toggle(ctx, id)
	require.NoError(t, err)
	require.True(t, found)

	todos, err = svc.GetTodos(ctx)
	require.NoError(t, err)
	assert.True(t, todos[0].Completed)

	found2, err := svc.Search(ctx, "MILK")
	require.NoError(t, err)
	assert.Len(t, found2, 1)

	_, err = svc.Delete(ctx, id)
	require.NoError(t, err)
	todos, err = svc.GetTodos(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestCorruptedStoreReadsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, storage.DefaultKey, []byte("{broken")))

	recovered := 0
	backend := storage.NewSlotBackend(store, storage.WithRecoveryHook(func(storage.RecoveryEvent) { recovered++ }))
	defer backend.Close()
	svc := NewService(repository.New(backend))

	todos, err := svc.GetTodos(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
	assert.Equal(t, 1, recovered)

	tasks, err := svc.Create(ctx, "fresh start")
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestListAndStats(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestService(t)
	for _, title := range []string{"a", "b", "c"} {
		_, err := svc.Create(ctx, title)
		require.NoError(t, err)
	}
	_, _, err := svc.Toggle(ctx, "id-2")
	require.NoError(t, err)

	all, err := svc.List(ctx, TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, titles(all))

	done, err := svc.List(ctx, TaskFilter{State: model.TaskStateCompleted})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, titles(done))

	pending, err := svc.List(ctx, TaskFilter{State: model.TaskStatePending})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, titles(pending))

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 3, Completed: 1, Pending: 2}, st)
}

func TestRunCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("healthy", func(t *testing.T) {
		backend := storage.NewSlotBackend(kv.NewMemory())
		defer backend.Close()
		_, err := backend.Add(ctx, model.Task{ID: "a", Title: "ok"})
		require.NoError(t, err)

		result, err := RunCheck(ctx, backend, true)
		require.NoError(t, err)
		assert.True(t, result.Healthy())
		assert.False(t, result.Reset)
	})

	t.Run("corrupted without reset keeps data", func(t *testing.T) {
		store := kv.NewMemory()
		require.NoError(t, store.Set(ctx, storage.DefaultKey, []byte("nope")))
		backend := storage.NewSlotBackend(store)
		defer backend.Close()

		result, err := RunCheck(ctx, backend, false)
		require.NoError(t, err)
		assert.False(t, result.Healthy())
		assert.False(t, result.Reset)
		assert.Equal(t, 1, store.Keys())
	})

	t.Run("corrupted with reset clears the slot", func(t *testing.T) {
		store := kv.NewMemory()
		require.NoError(t, store.Set(ctx, storage.DefaultKey, []byte("nope")))
		backend := storage.NewSlotBackend(store)
		defer backend.Close()

		result, err := RunCheck(ctx, backend, true)
		require.NoError(t, err)
		assert.True(t, result.Reset)
		assert.Equal(t, 0, store.Keys())
	})
}

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle("x"))
	err := ValidateTitle("  ")
	require.Error(t, err)
	assert.Equal(t, "invalid title: must not be empty", err.Error())

	err = ValidateTitle("caf\xe9")
	require.Error(t, err)
	assert.Equal(t, "invalid title: must be valid UTF-8", err.Error())
	assert.NoError(t, ValidateTitle("café ✓"))
}

func titles(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}
