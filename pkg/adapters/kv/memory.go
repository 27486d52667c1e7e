package kv

import (
	"context"
	"sync"

	"github.com/aretw0/introspection"
)

// MemoryStore is a map-backed Store. FailReads injects errors into Get;
// FailWrites into Set and Delete.
type MemoryStore struct {
	mu         sync.RWMutex
	data       map[string][]byte
	FailReads  error
	FailWrites error
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.FailReads != nil {
		return nil, s.FailReads
	}
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites != nil {
		return s.FailWrites
	}
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// State implements introspection.Introspectable.
func (s *MemoryStore) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{
		"driver": DriverMemory,
		"keys":   len(s.data),
	}
}

// ComponentType implements introspection.Component.
func (s *MemoryStore) ComponentType() string { return "kv-memory" }

var (
	_ Store                        = (*MemoryStore)(nil)
	_ introspection.Introspectable = (*MemoryStore)(nil)
	_ introspection.Component      = (*MemoryStore)(nil)
)
