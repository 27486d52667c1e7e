package core

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/introspection"
)

// Backend names reported by Service.Backend.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Service is the notes service handed to callers. It wraps the repository
// strategy chosen at startup so callers never depend on the backend type.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// List returns every persisted note. The order is unspecified.
func (s *Service) List(ctx context.Context) ([]Note, error) {
	notes, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Debug("list failed", "backend", s.Backend(), "error", err)
		return nil, err
	}
	if notes == nil {
		notes = []Note{}
	}
	s.logger.Debug("listed notes", "backend", s.Backend(), "count", len(notes))
	return notes, nil
}

// Create persists a new note.
func (s *Service) Create(ctx context.Context, d Draft) (Note, error) {
	n, err := s.repo.Create(ctx, d)
	if err != nil {
		s.logger.Debug("create failed", "backend", s.Backend(), "error", err)
		return Note{}, err
	}
	s.logger.Debug("created note", "id", n.ID)
	return n, nil
}

// Update merges p onto the note identified by id. A nil note means not found.
func (s *Service) Update(ctx context.Context, id string, p Patch) (*Note, error) {
	n, err := s.repo.Update(ctx, id, p)
	if err != nil {
		s.logger.Debug("update failed", "backend", s.Backend(), "id", id, "error", err)
		return nil, err
	}
	if n == nil {
		s.logger.Debug("update target not found", "id", id)
		return nil, nil
	}
	s.logger.Debug("updated note", "id", id)
	return n, nil
}

// Remove deletes the note identified by id.
func (s *Service) Remove(ctx context.Context, id string) (Ack, error) {
	ack, err := s.repo.Remove(ctx, id)
	if err != nil {
		s.logger.Debug("remove failed", "backend", s.Backend(), "id", id, "error", err)
		return Ack{}, err
	}
	s.logger.Debug("removed note", "id", id)
	return ack, nil
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx)
}

// Backend returns the component type of the repository ("local", "remote", ...).
func (s *Service) Backend() string {
	if comp, ok := s.repo.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return "repository"
}

// Remote reports whether notes are persisted through the remote API.
func (s *Service) Remote() bool {
	return s.Backend() == BackendRemote
}

// Close releases the repository resources, if it holds any.
func (s *Service) Close() error {
	if c, ok := s.repo.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
