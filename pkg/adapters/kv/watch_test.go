package kv_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/jot/pkg/adapters/kv"
)

func TestFileStore_Watch(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, err := kv.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := s.Watch(ctx, "notes")
	require.NoError(t, err)

	// External writer: plain os.WriteFile, as another process would do.
	require.NoError(t, os.WriteFile(s.Path("notes"), []byte("[]"), 0644))

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change notification")
	}

	// Our own atomic writes are reported too.
	require.NoError(t, s.Set(ctx, "notes", []byte(`[{"id":"x"}]`)))

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change notification after Set")
	}

	cancel()

	select {
	case _, ok := <-changes:
		for ok {
			_, ok = <-changes
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected channel to close after cancel")
	}
}

func TestFileStore_Watch_InvalidKey(t *testing.T) {
	s, err := kv.NewFileStore(t.TempDir(), nil)
	require.NoError(t, err)

	_, err = s.Watch(context.Background(), "../x")
	require.Error(t, err)
}
