// Package storage persists the task collection in a single named slot.
//
// Every mutating call reads the whole collection, changes it in memory, and
// writes the whole collection back. Nothing is cached between calls, and two
// overlapping mutations may lose one update (last write wins).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/jacksmith/todo/internal/kv"
	"github.com/jacksmith/todo/internal/logging"
	"github.com/jacksmith/todo/internal/model"
)

// DefaultKey is the slot that holds the task collection.
const DefaultKey = "todos"

// Backend is the persistence contract for the task collection.
// Mutations return the full updated collection in stored order.
type Backend interface {
	// Get returns the task with id, or a *model.NotFoundError.
	Get(ctx context.Context, id string) (model.Task, error)

	// GetAll returns the collection in stored order.
	GetAll(ctx context.Context) ([]model.Task, error)

	// Add inserts task at the front. Returns a *model.ConflictError if the
	// ID is already stored.
	Add(ctx context.Context, task model.Task) ([]model.Task, error)

	// UpdateStatus copies task.Completed onto the stored task with the same
	// ID, leaving its other fields untouched. Returns a *model.NotFoundError
	// if the ID is not stored.
	UpdateStatus(ctx context.Context, task model.Task) ([]model.Task, error)

	// Delete removes the task with id. A missing id is not an error.
	Delete(ctx context.Context, id string) ([]model.Task, error)

	// Search returns tasks whose title contains text, ignoring case.
	Search(ctx context.Context, text string) ([]model.Task, error)
}

// LoadState describes what a read found in the slot.
type LoadState int

const (
	LoadEmpty     LoadState = iota // slot absent or blank
	LoadOK                         // slot decoded
	LoadRecovered                  // slot was corrupted and has been reset
)

func (s LoadState) String() string {
	switch s {
	case LoadEmpty:
		return "empty"
	case LoadOK:
		return "ok"
	case LoadRecovered:
		return "recovered"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// Snapshot is the result of reading the slot.
type Snapshot struct {
	Tasks []model.Task
	State LoadState
}

// RecoveryEvent describes a corrupted slot that was discarded.
type RecoveryEvent struct {
	Key  string
	Size int   // bytes discarded
	Err  error // the decode failure
}

// SlotBackend implements Backend on top of a kv.Store.
type SlotBackend struct {
	store     kv.Store
	codec     model.Codec
	key       string
	logger    *log.Logger
	onRecover func(RecoveryEvent)
}

// Option configures a SlotBackend.
type Option func(*SlotBackend)

// WithKey sets the slot name. The default is DefaultKey.
func WithKey(key string) Option {
	return func(b *SlotBackend) { b.key = key }
}

// WithCodec sets the persisted encoding. The default is JSON.
func WithCodec(c model.Codec) Option {
	return func(b *SlotBackend) { b.codec = c }
}

// WithLogger sets the logger used for recovery warnings.
func WithLogger(l *log.Logger) Option {
	return func(b *SlotBackend) { b.logger = l }
}

// WithRecoveryHook registers fn to be called each time a corrupted slot is reset.
func WithRecoveryHook(fn func(RecoveryEvent)) Option {
	return func(b *SlotBackend) { b.onRecover = fn }
}

// NewSlotBackend returns a backend storing tasks in store.
// The backend takes ownership of store; Close closes it.
func NewSlotBackend(store kv.Store, opts ...Option) *SlotBackend {
	jsonCodec, _ := model.CodecFor(model.FormatJSON)
	b := &SlotBackend{
		store:  store,
		codec:  jsonCodec,
		key:    DefaultKey,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Key returns the slot name.
func (b *SlotBackend) Key() string {
	return b.key
}

// Codec returns the persisted encoding.
func (b *SlotBackend) Codec() model.Codec {
	return b.codec
}

// Close releases the underlying store.
func (b *SlotBackend) Close() error {
	return b.store.Close()
}

// Load reads and decodes the slot. Corrupted content is logged, removed from
// the store, and reported as LoadRecovered with an empty collection; it is
// never returned as an error.
func (b *SlotBackend) Load(ctx context.Context) (Snapshot, error) {
	raw, ok, err := b.store.Get(ctx, b.key)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read %s: %w", b.key, err)
	}
	if !ok || len(bytes.TrimSpace(raw)) == 0 {
		return Snapshot{Tasks: []model.Task{}, State: LoadEmpty}, nil
	}

	tasks, err := b.codec.Decode(raw)
	if err == nil {
		return Snapshot{Tasks: tasks, State: LoadOK}, nil
	}
	if !errors.Is(err, model.ErrCorruptedState) {
		return Snapshot{}, err
	}

	b.logger.Warn("corrupted task data, resetting", "key", b.key, "bytes", len(raw), "err", err)
	if rmErr := b.store.Remove(ctx, b.key); rmErr != nil {
		b.logger.Error("failed to remove corrupted task data", "key", b.key, "err", rmErr)
	}
	if b.onRecover != nil {
		b.onRecover(RecoveryEvent{Key: b.key, Size: len(raw), Err: err})
	}
	return Snapshot{Tasks: []model.Task{}, State: LoadRecovered}, nil
}

func (b *SlotBackend) read(ctx context.Context) ([]model.Task, error) {
	snap, err := b.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Tasks, nil
}

func (b *SlotBackend) write(ctx context.Context, tasks []model.Task) error {
	data, err := b.codec.Encode(tasks)
	if err != nil {
		return err
	}
	if err := b.store.Set(ctx, b.key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", b.key, err)
	}
	return nil
}

// Get implements Backend.
func (b *SlotBackend) Get(ctx context.Context, id string) (model.Task, error) {
	tasks, err := b.read(ctx)
	if err != nil {
		return model.Task{}, err
	}
	i := model.IndexOf(tasks, id)
	if i < 0 {
		return model.Task{}, &model.NotFoundError{ID: id}
	}
	return tasks[i], nil
}

// GetAll implements Backend.
func (b *SlotBackend) GetAll(ctx context.Context) ([]model.Task, error) {
	return b.read(ctx)
}

// Add implements Backend.
func (b *SlotBackend) Add(ctx context.Context, task model.Task) ([]model.Task, error) {
	tasks, err := b.read(ctx)
	if err != nil {
		return nil, err
	}
	if model.IndexOf(tasks, task.ID) >= 0 {
		return nil, &model.ConflictError{ID: task.ID}
	}

	tasks = append([]model.Task{task}, tasks...)
	if err := b.write(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateStatus implements Backend.
func (b *SlotBackend) UpdateStatus(ctx context.Context, task model.Task) ([]model.Task, error) {
	tasks, err := b.read(ctx)
	if err != nil {
		return nil, err
	}
	i := model.IndexOf(tasks, task.ID)
	if i < 0 {
		return nil, &model.NotFoundError{ID: task.ID}
	}

	tasks[i].Completed = task.Completed
	if err := b.write(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Delete implements Backend.
func (b *SlotBackend) Delete(ctx context.Context, id string) ([]model.Task, error) {
	tasks, err := b.read(ctx)
	if err != nil {
		return nil, err
	}

	kept := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if err := b.write(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Search implements Backend.
func (b *SlotBackend) Search(ctx context.Context, text string) ([]model.Task, error) {
	tasks, err := b.read(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]model.Task, 0)
	for i := range tasks {
		if tasks[i].MatchesTitle(text) {
			matches = append(matches, tasks[i])
		}
	}
	return matches, nil
}

// Reset removes the slot, leaving an empty collection.
func (b *SlotBackend) Reset(ctx context.Context) error {
	if err := b.store.Remove(ctx, b.key); err != nil {
		return fmt.Errorf("failed to reset %s: %w", b.key, err)
	}
	return nil
}
