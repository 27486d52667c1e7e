// Package jot is the composition root of the jot notes application.
//
// It connects the core contract (pkg/core) with the storage strategies
// (pkg/adapters) and exposes the view-state controller (pkg/view).
//
// Backends:
//
//   - **Local**: the whole collection is stored as one JSON array under a
//     single key of a key-value store (file, SQLite or memory). Reads are
//     fail-soft and writes are best effort.
//   - **Remote**: a notes HTTP API at a configured base URL. Transport
//     failures surface as *core.TransportError.
//
// The backend is selected once: a non-empty API base selects remote mode.
// Callers never branch on it.
//
// Usage:
//
//	svc, err := jot.New(jot.WithDataDir("./notes"), jot.WithStorage("sqlite"))
//	if err != nil {
//		return err
//	}
//	defer svc.Close()
//
//	ctl := jot.NewController(svc)
//	if err := ctl.Load(ctx); err != nil {
//		return err
//	}
//	ctl.StartCreate()
//	note, err := ctl.Save(ctx, "Groceries", "milk, eggs")
package jot
