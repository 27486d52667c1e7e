package platform

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/jot/internal/config"
	"github.com/aretw0/jot/pkg/adapters/kv"
	"github.com/aretw0/jot/pkg/adapters/local"
	"github.com/aretw0/jot/pkg/adapters/remote"
	"github.com/aretw0/jot/pkg/core"
)

// Init selects the backend once: remote when an API base is configured,
// local otherwise. It returns the configured core.Repository.
func Init(opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	// 1. Check for injected repository
	if o.repository != nil {
		return o.repository, nil
	}

	// 2. Initialize based on backend
	if o.apiBase != "" {
		return initRemote(o)
	}
	return initLocal(o)
}

func initRemote(o *options) (core.Repository, error) {
	retries := o.retries
	if retries < 0 {
		retries = remote.DefaultRetries
	}
	repo, err := remote.NewRepository(remote.Config{
		BaseURL:    o.apiBase,
		HTTPClient: o.httpClient,
		Timeout:    o.timeout,
		Retries:    retries,
		Logger:     o.logger.With("backend", core.BackendRemote),
	})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func initLocal(o *options) (core.Repository, error) {
	store := o.store
	if store == nil {
		dir := o.dataDir
		if dir == "" && o.driver != kv.DriverMemory {
			dir = ResolveDataDir()
		}
		var err error
		store, err = kv.Open(o.driver, dir, o.logger)
		if err != nil {
			return nil, fmt.Errorf("open %s storage: %w", o.driver, err)
		}
	}

	return local.NewRepository(local.Config{
		Store:  store,
		Key:    o.key,
		Logger: o.logger.With("backend", core.BackendLocal),
	}), nil
}

// ResolveDataDir returns the nearest .jot directory above the working
// directory, or the user data directory when there is none.
func ResolveDataDir() string {
	if wd, err := os.Getwd(); err == nil {
		if root, err := FindRoot(wd); err == nil {
			return filepath.Join(root, ProjectDir)
		}
	}
	return config.DataDir()
}
