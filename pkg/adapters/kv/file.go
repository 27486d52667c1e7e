package kv

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/introspection"
)

// FileStore keeps one JSON file per key inside a directory.
type FileStore struct {
	dir      string
	debounce time.Duration
	logger   *slog.Logger
}

// NewFileStore creates the directory if needed and returns a store rooted at it.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{
		dir:      abs,
		debounce: 50 * time.Millisecond,
		logger:   logger,
	}, nil
}

// Dir returns the absolute directory of the store.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file backing key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeFileAtomic(s.Path(key), value, 0644)
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := os.Remove(s.Path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// FileStoreState exposes internal state for observability.
type FileStoreState struct {
	Driver   string `json:"driver"`
	Dir      string `json:"dir"`
	Debounce string `json:"debounce"`
}

// State implements introspection.Introspectable.
func (s *FileStore) State() any {
	return FileStoreState{
		Driver:   DriverFile,
		Dir:      s.dir,
		Debounce: s.debounce.String(),
	}
}

// ComponentType implements introspection.Component.
func (s *FileStore) ComponentType() string { return "kv-file" }

var (
	_ Store                        = (*FileStore)(nil)
	_ Watcher                      = (*FileStore)(nil)
	_ introspection.Introspectable = (*FileStore)(nil)
	_ introspection.Component      = (*FileStore)(nil)
)
