package jot

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/adapters/kv"
	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/view"
)

// Version exposes the version of the library.
// See version.go for the implementation using go:embed.

// --- Types ---

// Note is a public alias for the note entity.
type Note = core.Note

// Draft is a public alias for the create input.
type Draft = core.Draft

// Patch is a public alias for the update input.
type Patch = core.Patch

// Service is a public alias for the notes service.
type Service = core.Service

// Controller is a public alias for the view-state controller.
type Controller = view.Controller

// --- Configuration ---

// Option defines a functional option for configuring the notes service.
type Option = platform.Option

// WithAPIBase selects the remote backend rooted at base.
func WithAPIBase(base string) Option {
	return platform.WithAPIBase(base)
}

// WithTimeout sets the per-request timeout of the remote backend.
func WithTimeout(d time.Duration) Option {
	return platform.WithTimeout(d)
}

// WithRetries sets how many times a failed list request is retried.
func WithRetries(n int) Option {
	return platform.WithRetries(n)
}

// WithHTTPClient replaces the HTTP client of the remote backend.
func WithHTTPClient(c *http.Client) Option {
	return platform.WithHTTPClient(c)
}

// WithStorage selects the key-value driver of the local backend.
func WithStorage(driver string) Option {
	return platform.WithStorage(driver)
}

// WithDataDir sets the directory of the local backend.
func WithDataDir(dir string) Option {
	return platform.WithDataDir(dir)
}

// WithStorageKey sets the key the collection is stored under.
func WithStorageKey(key string) Option {
	return platform.WithStorageKey(key)
}

// WithStore injects the key-value store of the local backend.
func WithStore(s kv.Store) Option {
	return platform.WithStore(s)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom backend.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// --- Factory ---

// New creates the notes service, selecting the backend once.
func New(opts ...Option) (*core.Service, error) {
	return platform.New(opts...)
}

// Init selects and returns the backend without the service wrapper.
func Init(opts ...Option) (core.Repository, error) {
	return platform.Init(opts...)
}

// NewController creates a view-state controller over svc.
func NewController(svc view.NotesService, opts ...view.Option) *view.Controller {
	return view.New(svc, opts...)
}
