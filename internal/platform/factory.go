package platform

import (
	"github.com/aretw0/jot/pkg/core"
)

// New selects the backend and wraps it in the notes service.
//
//	svc, err := jot.New(jot.WithAPIBase("https://notes.example.com/api"))
func New(opts ...Option) (*core.Service, error) {
	repo, err := Init(opts...)
	if err != nil {
		return nil, err
	}

	// We also need to parse options here to get the logger for wiring
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return core.NewService(repo, o.logger), nil
}
