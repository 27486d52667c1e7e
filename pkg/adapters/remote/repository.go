// Package remote implements core.Repository against a notes HTTP API.
//
// The API exposes GET/POST {base}/notes and PUT/DELETE {base}/notes/{id}.
// Any non-2xx answer surfaces as a *core.TransportError, with one deliberate
// exception: 404 on PUT yields (nil, nil) and 404 on DELETE yields an Ack.
// These are the not-found results the local backend gives, so callers see
// the same outcome for a missing note whichever backend is configured.
// A 404 on GET or POST is still a *core.TransportError.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/introspection"
	"github.com/sethvargo/go-retry"

	"github.com/aretw0/jot/pkg/core"
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultRetries = 2

	// maxErrorBody caps how much of an error response is kept in TransportError.
	maxErrorBody = 512
)

// Config holds the configuration for the remote repository.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client  // Defaults to a client with Timeout.
	Timeout    time.Duration // Per-request timeout. Defaults to DefaultTimeout.
	Retries    int           // Extra attempts for reads. Negative disables retries.
	Backoff    time.Duration // Initial retry backoff. Defaults to 100ms.
	Logger     *slog.Logger
}

// Repository implements core.Repository over HTTP.
type Repository struct {
	base    *url.URL
	client  *http.Client
	retries int
	backoff time.Duration
	logger  *slog.Logger
}

// NewRepository validates the base URL and returns a remote repository.
func NewRepository(config Config) (*Repository, error) {
	raw := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("remote: base URL is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("remote: invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("remote: unsupported scheme %q", base.Scheme)
	}

	r := &Repository{
		base:    base,
		client:  config.HTTPClient,
		retries: config.Retries,
		backoff: config.Backoff,
		logger:  config.Logger,
	}
	if r.client == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		r.client = &http.Client{Timeout: timeout}
	}
	if r.retries < 0 {
		r.retries = 0
	}
	if r.backoff <= 0 {
		r.backoff = 100 * time.Millisecond
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r, nil
}

// List fetches every note. Network errors and 5xx answers are retried.
func (r *Repository) List(ctx context.Context) ([]core.Note, error) {
	var notes []core.Note

	backoff := retry.WithMaxRetries(uint64(r.retries), retry.NewExponential(r.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		notes = nil
		_, err := r.do(ctx, "list", http.MethodGet, r.endpoint(), nil, &notes)
		var te *core.TransportError
		if errors.As(err, &te) && te.Temporary() {
			r.logger.Debug("retrying list", "error", err)
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []core.Note{}
	}
	return notes, nil
}

// Create posts a draft; the server assigns id and timestamps.
func (r *Repository) Create(ctx context.Context, d core.Draft) (core.Note, error) {
	var n core.Note
	if _, err := r.do(ctx, "create", http.MethodPost, r.endpoint(), d, &n); err != nil {
		return core.Note{}, err
	}
	return n, nil
}

// Update sends the patch. A 404 answer is the not-found signal (nil, nil).
func (r *Repository) Update(ctx context.Context, id string, p core.Patch) (*core.Note, error) {
	var n core.Note
	status, err := r.do(ctx, "update", http.MethodPut, r.endpoint(id), p, &n)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Remove deletes the note. A 404 answer is treated as already removed.
func (r *Repository) Remove(ctx context.Context, id string) (core.Ack, error) {
	var ack core.Ack
	status, err := r.do(ctx, "remove", http.MethodDelete, r.endpoint(id), nil, &ack)
	if status == http.StatusNotFound {
		return core.Ack{ID: id}, nil
	}
	if err != nil {
		return core.Ack{}, err
	}
	if ack.ID == "" {
		ack.ID = id
	}
	return ack, nil
}

func (r *Repository) endpoint(id ...string) string {
	u := *r.base
	u.Path = strings.TrimRight(u.Path, "/") + "/notes"
	u.RawPath = ""
	if len(id) > 0 {
		u.RawPath = strings.TrimRight(r.base.EscapedPath(), "/") + "/notes/" + url.PathEscape(id[0])
		u.Path += "/" + id[0]
	}
	return u.String()
}

// do performs one request. It returns the status code (zero without a
// response) and decodes a 2xx body into out when out is non-nil and the body
// is not empty.
func (r *Repository) do(ctx context.Context, op, method, target string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return 0, &core.TransportError{Op: op, Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	r.logger.Debug("remote request", "op", op, "method", method, "url", target,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, &core.TransportError{
			Op:         op,
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &core.TransportError{Op: op, Method: method, URL: target, StatusCode: resp.StatusCode, Err: err}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, &core.TransportError{
			Op:         op,
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return resp.StatusCode, nil
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	BaseURL string `json:"base_url"`
	Timeout string `json:"timeout"`
	Retries int    `json:"retries"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	return RepositoryState{
		BaseURL: r.base.String(),
		Timeout: r.client.Timeout.String(),
		Retries: r.retries,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return core.BackendRemote
}

var (
	_ core.Repository              = (*Repository)(nil)
	_ introspection.Introspectable = (*Repository)(nil)
	_ introspection.Component      = (*Repository)(nil)
)
