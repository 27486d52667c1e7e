// Package view holds the notes view state and the transitions that keep it
// consistent with the notes service.
//
// The controller caches the last fetched collection, tracks the editing
// target, and replays every successful mutation onto its cache instead of
// re-fetching. Each transition is one service call followed by one state
// update; the state is never partially applied.
package view

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/jot/pkg/core"
)

// NotesService is the subset of the notes service the controller drives.
// *core.Service and every core.Repository satisfy it.
type NotesService interface {
	List(ctx context.Context) ([]core.Note, error)
	Create(ctx context.Context, d core.Draft) (core.Note, error)
	Update(ctx context.Context, id string, p core.Patch) (*core.Note, error)
	Remove(ctx context.Context, id string) (core.Ack, error)
}

// State is a snapshot of the view state.
type State struct {
	Notes   []core.Note
	Editing *core.Note // nil: no editor; empty ID: new-note template.
	Loading bool
	Theme   Theme
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for the controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithTheme sets the initial theme.
func WithTheme(t Theme) Option {
	return func(c *Controller) {
		c.theme = t
	}
}

const maxFetchAttempts = 3

// Controller mediates between the notes service and the presentation.
type Controller struct {
	svc    NotesService
	logger *slog.Logger

	mu      sync.Mutex
	notes   []core.Note
	editing *core.Note
	loading bool
	theme   Theme
	closed  bool
	loadGen uint64 // bumped by Load
	version uint64 // bumped whenever notes is replaced

	sorted []core.Note // recency order of notes; nil when stale
}

// New creates a controller over svc.
func New(svc NotesService, opts ...Option) *Controller {
	c := &Controller{
		svc:   svc,
		notes: []core.Note{},
		theme: ThemeLight,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Load performs the initial fetch. The result is discarded when the
// controller is closed, ctx is cancelled, or a newer Load started meanwhile.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.loadGen++
	gen := c.loadGen
	c.loading = true
	c.mu.Unlock()

	return c.fetch(ctx, gen, true)
}

// Refresh re-fetches the collection without touching the loading flag.
// It is discarded when a Load starts meanwhile.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	gen := c.loadGen
	c.mu.Unlock()

	return c.fetch(ctx, gen, false)
}

// fetch lists the collection and installs it. A mutation applied while List
// was in flight makes the listed snapshot older than the cache, so List is
// called again, up to maxFetchAttempts times.
func (c *Controller) fetch(ctx context.Context, gen uint64, load bool) error {
	for attempt := 1; ; attempt++ {
		c.mu.Lock()
		version := c.version
		c.mu.Unlock()

		notes, err := c.svc.List(ctx)

		c.mu.Lock()
		if c.closed || gen != c.loadGen {
			c.logger.Debug("discarding superseded fetch", "closed", c.closed)
			c.mu.Unlock()
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		raced := c.version != version
		if err == nil && raced && attempt < maxFetchAttempts {
			c.mu.Unlock()
			continue
		}

		if load {
			c.loading = false
		}
		switch {
		case err != nil:
		case raced:
			c.logger.Debug("keeping cache newer than listed notes", "attempts", attempt)
		default:
			c.setNotes(cloneNotes(notes))
			// The note being edited may have disappeared underneath us.
			if c.editing != nil && c.editing.ID != "" && indexOf(c.notes, c.editing.ID) < 0 {
				c.editing = nil
			}
		}
		c.mu.Unlock()
		return err
	}
}

// Close tears the controller down. Pending loads complete without effect.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// StartCreate opens the editor on an empty template.
func (c *Controller) StartCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = &core.Note{}
}

// StartEdit opens the editor on an existing note.
func (c *Controller) StartEdit(n core.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = &n
}

// Cancel closes the editor.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = nil
}

// Save persists the editor content. A blank title is rejected before any
// service call. Creating keeps the editor open on a fresh template;
// updating closes it.
func (c *Controller) Save(ctx context.Context, title, content string) (core.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return core.Note{}, core.ErrEmptyTitle
	}

	c.mu.Lock()
	var target core.Note
	opened := c.editing != nil
	if opened {
		target = *c.editing
	}
	c.mu.Unlock()

	if target.ID == "" {
		return c.create(ctx, title, content, opened)
	}
	return c.update(ctx, target.ID, title, content)
}

// create persists a new note. The editor ends on a fresh template unless it
// was closed or moved to another note while the call was in flight.
func (c *Controller) create(ctx context.Context, title, content string, opened bool) (core.Note, error) {
	created, err := c.svc.Create(ctx, core.Draft{Title: title, Content: content})
	if err != nil {
		return core.Note{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	notes := make([]core.Note, 0, len(c.notes)+1)
	notes = append(notes, created)
	notes = append(notes, c.notes...)
	c.setNotes(notes)
	switch {
	case c.editing == nil && !opened:
		c.editing = &core.Note{}
	case c.editing != nil && c.editing.ID == "":
		c.editing = &core.Note{}
	}

	c.logger.Debug("note created", "id", created.ID)
	return created, nil
}

func (c *Controller) update(ctx context.Context, id, title, content string) (core.Note, error) {
	updated, err := c.svc.Update(ctx, id, core.Patch{Title: &title, Content: &content})
	if err != nil {
		return core.Note{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if updated == nil {
		// The backend no longer has it; drop the stale cache entry.
		c.setNotes(withoutID(c.notes, id))
		if c.editing != nil && c.editing.ID == id {
			c.editing = nil
		}
		c.logger.Debug("update target vanished", "id", id)
		return core.Note{}, core.ErrNotFound
	}

	notes := slices.Clone(c.notes)
	if i := indexOf(notes, updated.ID); i >= 0 {
		notes[i] = *updated
	}
	c.setNotes(notes)
	if c.editing != nil && c.editing.ID == id {
		c.editing = nil
	}

	c.logger.Debug("note updated", "id", updated.ID)
	return *updated, nil
}

// Delete removes a note and closes the editor if it targeted that note.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if _, err := c.svc.Remove(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setNotes(withoutID(c.notes, id))
	if c.editing != nil && c.editing.ID == id {
		c.editing = nil
	}

	c.logger.Debug("note deleted", "id", id)
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func (c *Controller) ToggleTheme() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.theme = c.theme.Toggle()
	return c.theme
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Notes:   cloneNotes(c.notes),
		Loading: c.loading,
		Theme:   c.theme,
	}
	if c.editing != nil {
		e := *c.editing
		s.Editing = &e
	}
	return s
}

// Find looks up a note in the current collection.
func (c *Controller) Find(id string) (core.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := indexOf(c.notes, id); i >= 0 {
		return c.notes[i], true
	}
	return core.Note{}, false
}

// Sorted returns the notes ordered by recency, most recent first. The result
// is recomputed only when the collection changes; callers must not modify it.
func (c *Controller) Sorted() []core.Note {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sorted == nil {
		c.sorted = SortByRecency(c.notes)
	}
	return c.sorted
}

// setNotes installs a new collection. Every mutation goes through a fresh
// slice so snapshots handed out earlier are never modified.
func (c *Controller) setNotes(notes []core.Note) {
	c.notes = notes
	c.sorted = nil
	c.version++
}

func indexOf(notes []core.Note, id string) int {
	return slices.IndexFunc(notes, func(n core.Note) bool { return n.ID == id })
}

func withoutID(notes []core.Note, id string) []core.Note {
	out := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

func cloneNotes(notes []core.Note) []core.Note {
	if notes == nil {
		return []core.Note{}
	}
	return slices.Clone(notes)
}
