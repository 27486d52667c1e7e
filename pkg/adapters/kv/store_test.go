package kv_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/adapters/kv"
)

func openStores(t *testing.T) map[string]kv.Store {
	t.Helper()

	stores := make(map[string]kv.Store)
	for _, driver := range kv.Drivers() {
		s, err := kv.Open(driver, filepath.Join(t.TempDir(), driver), nil)
		require.NoError(t, err, "open %s", driver)
		t.Cleanup(func() { _ = s.Close() })
		stores[driver] = s
	}
	return stores
}

func TestStore_Contract(t *testing.T) {
	ctx := context.Background()

	for driver, s := range openStores(t) {
		t.Run(driver, func(t *testing.T) {
			_, err := s.Get(ctx, "missing")
			assert.ErrorIs(t, err, kv.ErrNotFound)

			require.NoError(t, s.Set(ctx, "items", []byte(`[1]`)))
			got, err := s.Get(ctx, "items")
			require.NoError(t, err)
			assert.Equal(t, `[1]`, string(got))

			require.NoError(t, s.Set(ctx, "items", []byte(`[1,2]`)))
			got, err = s.Get(ctx, "items")
			require.NoError(t, err)
			assert.Equal(t, `[1,2]`, string(got))

			require.NoError(t, s.Delete(ctx, "items"))
			require.NoError(t, s.Delete(ctx, "items"), "deleting twice must not fail")
			_, err = s.Get(ctx, "items")
			assert.ErrorIs(t, err, kv.ErrNotFound)
		})
	}
}

func TestStore_InvalidKeys(t *testing.T) {
	ctx := context.Background()

	for driver, s := range openStores(t) {
		t.Run(driver, func(t *testing.T) {
			for _, key := range []string{"", "../escape", "a/b", `a\b`} {
				assert.Error(t, s.Set(ctx, key, []byte("x")), "key %q", key)
			}
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := kv.Open("etcd", t.TempDir(), nil)
	assert.Error(t, err)
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	s, err := kv.NewFileStore(dir, nil)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "notes", []byte("[]")))

	data, err := os.ReadFile(filepath.Join(dir, "notes.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestSQLiteStore_Persists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := kv.OpenSQLite(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "notes", []byte(`["a"]`)))
	require.NoError(t, s.Close())

	reopened, err := kv.OpenSQLite(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, `["a"]`, string(got))

	state, ok := reopened.State().(kv.SQLiteStoreState)
	require.True(t, ok)
	assert.Equal(t, 1, state.Keys)
}

func TestMemoryStore_FaultInjection(t *testing.T) {
	ctx := context.Background()
	s := kv.NewMemoryStore()
	boom := errors.New("quota exceeded")

	s.FailWrites = boom
	assert.ErrorIs(t, s.Set(ctx, "k", []byte("v")), boom)

	s.FailWrites = nil
	require.NoError(t, s.Set(ctx, "k", []byte("v")))

	s.FailReads = boom
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, boom)
}
