package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockcli/internal/config"
	"stockcli/internal/errors"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := OpenSQLite(filepath.Join(dir, "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		BackendJSON:   NewJSONStore(filepath.Join(dir, ".sync_state.json"), nil, nil),
		BackendSQLite: sqlite,
	}
}

func TestStore_GetPut(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 1, 5, 8, 0, 0, 0, time.UTC)

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(ctx, "stock")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Put(ctx, "stock", Entry{Signature: "aaa", RunID: "r1", UpdatedAt: at}))
			require.NoError(t, store.Put(ctx, "dump", Entry{Signature: "bbb", UpdatedAt: at}))
			require.NoError(t, store.Put(ctx, "stock", Entry{Signature: "ccc", RunID: "r2", UpdatedAt: at}))

			e, ok, err := store.Get(ctx, "stock")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "ccc", e.Signature)
			assert.Equal(t, "r2", e.RunID)
			assert.True(t, at.Equal(e.UpdatedAt))

			e, ok, err = store.Get(ctx, "dump")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "bbb", e.Signature)
		})
	}
}

func TestJSONStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", ".sync_state.json")

	require.NoError(t, NewJSONStore(path, nil, nil).Put(ctx, "stock", Entry{Signature: "abc"}))

	e, ok, err := NewJSONStore(path, nil, nil).Get(ctx, "stock")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", e.Signature)
}

func TestJSONStore_CorruptFileIsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".sync_state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store := NewJSONStore(path, nil, nil)
	_, ok, err := store.Get(ctx, "stock")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "stock", Entry{Signature: "x"}))
	e, ok, err := store.Get(ctx, "stock")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", e.Signature)
}

func TestJSONStore_NullFileIsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".sync_state.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0644))

	store := NewJSONStore(path, nil, nil)
	_, ok, err := store.Get(ctx, "stock")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "stock", Entry{Signature: "abc"}))
	e, ok, err := store.Get(ctx, "stock")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", e.Signature)
}

func TestSQLiteStore_History(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "state.db"))
	require.NoError(t, err)
	defer store.Close()

	for _, sig := range []string{"s1", "s2", "s3"} {
		require.NoError(t, store.Put(ctx, "stock", Entry{Signature: sig, UpdatedAt: time.Now()}))
	}
	require.NoError(t, store.Put(ctx, "dump", Entry{Signature: "d1", UpdatedAt: time.Now()}))

	all, err := store.History(ctx, "stock", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "s3", all[0].Signature)
	assert.Equal(t, "s1", all[2].Signature)

	last, err := store.History(ctx, "stock", 1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "s3", last[0].Signature)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(config.StateConfig{Disabled: true}, filepath.Join(dir, "x"), nil)
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = Open(config.StateConfig{Backend: BackendJSON}, filepath.Join(dir, "s.json"), nil)
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, s)

	s, err = Open(config.StateConfig{Backend: BackendSQLite}, filepath.Join(dir, "s.db"), nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(config.StateConfig{Backend: "redis"}, dir, nil)
	assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
}
