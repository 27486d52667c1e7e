package platform

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/jot/pkg/adapters/kv"
	"github.com/aretw0/jot/pkg/core"
)

// options holds the internal configuration for the notes service.
type options struct {
	repository core.Repository
	store      kv.Store
	logger     *slog.Logger

	apiBase    string
	timeout    time.Duration
	retries    int
	httpClient *http.Client

	driver  string
	dataDir string
	key     string
}

// Option defines a functional option for configuring the notes service.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		driver:  kv.DriverFile,
		retries: -1,
	}
}

// WithAPIBase selects the remote backend rooted at base.
// An empty base keeps the local backend.
func WithAPIBase(base string) Option {
	return func(o *options) {
		o.apiBase = base
	}
}

// WithTimeout sets the per-request timeout of the remote backend.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithRetries sets how many times a failed list request is retried.
func WithRetries(n int) Option {
	return func(o *options) {
		o.retries = n
	}
}

// WithHTTPClient replaces the HTTP client of the remote backend.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithStorage selects the key-value driver of the local backend
// ("file", "sqlite" or "memory").
func WithStorage(driver string) Option {
	return func(o *options) {
		o.driver = driver
	}
}

// WithDataDir sets the directory of the local backend. Without it the nearest
// .jot directory is used, falling back to the user data directory.
func WithDataDir(dir string) Option {
	return func(o *options) {
		o.dataDir = dir
	}
}

// WithStorageKey sets the key the collection is stored under.
func WithStorageKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithStore injects the key-value store of the local backend.
func WithStore(s kv.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithLogger sets the logger for the service and its backend.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom backend (e.g. a mock).
// If provided, backend selection is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}
