// Package kv provides the key-value stores backing the local notes repository.
//
// Every store holds opaque byte values under short string keys, the same
// shape as a browser's local storage. The file store is the default; the
// SQLite store keeps everything in a single database file; the memory store
// is used for tests and dry runs.
package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is a minimal key-value persistence layer.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the resources held by the store.
	Close() error
}

// Watcher is implemented by stores that can report changes made by other processes.
type Watcher interface {
	// Watch sends on the returned channel each time key changes.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, key string) (<-chan struct{}, error)
}

// Driver names accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Drivers lists the supported driver names.
func Drivers() []string {
	return []string{DriverFile, DriverSQLite, DriverMemory}
}

// Open creates the store for driver rooted at dir.
func Open(driver, dir string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	switch driver {
	case "", DriverFile:
		s, err := NewFileStore(dir, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverSQLite:
		s, err := OpenSQLite(dir, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", driver)
	}
}

// ValidateKey rejects keys that cannot be mapped safely to a file name.
func ValidateKey(key string) error {
	if key == "" {
		return errors.New("kv: empty key")
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("kv: invalid key %q", key)
	}
	return nil
}
