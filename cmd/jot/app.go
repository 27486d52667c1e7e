package main

import (
	"context"
	"log/slog"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/view"
)

// openService builds the notes service from the loaded configuration.
func openService() (*core.Service, error) {
	return jot.New(
		jot.WithAPIBase(cfg.API.BaseURL),
		jot.WithTimeout(cfg.API.Timeout),
		jot.WithRetries(cfg.API.Retries),
		jot.WithStorage(cfg.Storage.Driver),
		jot.WithDataDir(cfg.Storage.Dir),
		jot.WithStorageKey(cfg.Storage.Key),
		jot.WithLogger(slog.Default()),
	)
}

// openController builds the service and a controller holding the loaded
// collection. Callers must close the returned service.
func openController(ctx context.Context) (*core.Service, *view.Controller, error) {
	svc, err := openService()
	if err != nil {
		return nil, nil, err
	}
	ctl := jot.NewController(svc, view.WithLogger(slog.Default()))
	if err := ctl.Load(ctx); err != nil {
		_ = svc.Close()
		return nil, nil, err
	}
	return svc, ctl, nil
}
