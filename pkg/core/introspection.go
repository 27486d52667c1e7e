package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Backend    string `json:"backend"`
	Remote     bool   `json:"remote"`
	Watchable  bool   `json:"watchable"`
	Repository any    `json:"repository,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	_, watchable := s.repo.(Watchable)

	state := ServiceState{
		Backend:   s.Backend(),
		Remote:    s.Remote(),
		Watchable: watchable,
	}
	if intro, ok := s.repo.(introspection.Introspectable); ok {
		state.Repository = intro.State()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
