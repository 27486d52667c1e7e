// Package local implements core.Repository on top of a key-value store.
//
// The whole collection lives under a single key as a JSON array. Reads are
// fail-soft: a missing, unreadable or malformed entry is an empty collection.
// Writes are best effort: a failed write is logged and discarded, so memory
// and storage may diverge until the next successful write.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/jot/pkg/adapters/kv"
	"github.com/aretw0/jot/pkg/core"
)

// DefaultKey is the store key holding the note collection.
const DefaultKey = "notes_app_items_v1"

// Config holds the configuration for the local repository.
type Config struct {
	Store  kv.Store
	Key    string // Defaults to DefaultKey.
	Logger *slog.Logger
	Now    func() time.Time // Defaults to time.Now.
	NewID  func() string    // Defaults to NewID.
}

// Repository implements core.Repository using a kv.Store.
type Repository struct {
	mu     sync.Mutex
	store  kv.Store
	key    string
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	readFailures  int
	writeFailures int
}

// NewRepository creates a new store-backed repository.
func NewRepository(config Config) *Repository {
	r := &Repository{
		store:  config.Store,
		key:    config.Key,
		logger: config.Logger,
		now:    config.Now,
		newID:  config.NewID,
	}
	if r.key == "" {
		r.key = DefaultKey
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.newID == nil {
		r.newID = NewID
	}
	return r
}

// List returns the persisted notes in storage order. It never fails.
func (r *Repository) List(ctx context.Context) ([]core.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read(ctx), nil
}

// Create persists a new note at the head of the collection.
func (r *Repository) Create(ctx context.Context, d core.Draft) (core.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.read(ctx)
	now := r.now().UTC()
	n := core.Note{
		ID:        r.newID(),
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	updated := make([]core.Note, 0, len(items)+1)
	updated = append(updated, n)
	updated = append(updated, items...)
	r.write(ctx, updated)

	return n, nil
}

// Update merges p onto the note identified by id. Unknown ids return
// (nil, nil) and leave the stored collection untouched.
func (r *Repository) Update(ctx context.Context, id string, p core.Patch) (*core.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.read(ctx)
	for i, n := range items {
		if n.ID != id {
			continue
		}
		merged := p.Apply(n)
		merged.UpdatedAt = r.after(n.Touched())
		items[i] = merged
		r.write(ctx, items)
		return &merged, nil
	}
	return nil, nil
}

// Remove deletes the note identified by id. Absent ids are a no-op.
func (r *Repository) Remove(ctx context.Context, id string) (core.Ack, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.read(ctx)
	kept := make([]core.Note, 0, len(items))
	for _, n := range items {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) != len(items) {
		r.write(ctx, kept)
	}
	return core.Ack{ID: id}, nil
}

// Watch implements core.Watchable when the store can report changes.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	w, ok := r.store.(kv.Watcher)
	if !ok {
		return nil, core.ErrWatchUnsupported
	}
	changes, err := w.Watch(ctx, r.key)
	if err != nil {
		return nil, err
	}

	events := make(chan core.Event)
	go func() {
		defer close(events)
		for range changes {
			select {
			case events <- core.Event{Type: core.EventModify, Timestamp: r.now().Unix()}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

// Close releases the underlying store.
func (r *Repository) Close() error {
	return r.store.Close()
}

// after returns the current time, or one nanosecond past prev when the clock
// has not advanced, so UpdatedAt strictly increases on every update.
func (r *Repository) after(prev time.Time) time.Time {
	now := r.now().UTC()
	if !now.After(prev) {
		return prev.Add(time.Nanosecond)
	}
	return now
}

func (r *Repository) read(ctx context.Context) []core.Note {
	data, err := r.store.Get(ctx, r.key)
	if errors.Is(err, kv.ErrNotFound) || (err == nil && len(data) == 0) {
		return []core.Note{}
	}
	if err != nil {
		r.readFailed(err)
		return []core.Note{}
	}

	var items []core.Note
	if err := json.Unmarshal(data, &items); err != nil {
		r.readFailed(err)
		return []core.Note{}
	}
	if items == nil {
		// JSON null
		return []core.Note{}
	}
	return items
}

func (r *Repository) readFailed(err error) {
	r.readFailures++
	r.logger.Warn("notes storage unreadable, using empty collection",
		"error", &core.StorageReadError{Key: r.key, Err: err})
}

// write persists items. An empty collection drops the key, which reads
// back as empty.
func (r *Repository) write(ctx context.Context, items []core.Note) {
	var err error
	if len(items) == 0 {
		err = r.store.Delete(ctx, r.key)
	} else {
		var data []byte
		if data, err = json.Marshal(items); err == nil {
			err = r.store.Set(ctx, r.key, data)
		}
	}
	if err != nil {
		r.writeFailures++
		r.logger.Warn("notes storage write discarded",
			"error", &core.StorageWriteError{Key: r.key, Err: err})
	}
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Key           string `json:"key"`
	ReadFailures  int    `json:"read_failures"`
	WriteFailures int    `json:"write_failures"`
	Store         any    `json:"store,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := RepositoryState{
		Key:           r.key,
		ReadFailures:  r.readFailures,
		WriteFailures: r.writeFailures,
	}
	if intro, ok := r.store.(introspection.Introspectable); ok {
		state.Store = intro.State()
	}
	return state
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return core.BackendLocal
}

var (
	_ core.Repository              = (*Repository)(nil)
	_ core.Watchable               = (*Repository)(nil)
	_ introspection.Introspectable = (*Repository)(nil)
	_ introspection.Component      = (*Repository)(nil)
)
