package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/timedeck/internal/config"
)

// stores returns one instance of every store backed by a temp directory.
func stores(t *testing.T) map[string]Store {
	t.Helper()

	dir := t.TempDir()

	file, err := Open(config.Storage{Driver: config.StorageFile, Path: filepath.Join(dir, "state.json")})
	require.NoError(t, err)

	db, err := Open(config.Storage{Driver: config.StorageSQLite, Path: filepath.Join(dir, "state.db")})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, file.Close())
		require.NoError(t, db.Close())
	})

	return map[string]Store{"file": file, "sqlite": db, "memory": NewMemoryStore()}
}

// TestStore_GetPut exercises the shared contract of every store.
func TestStore_GetPut(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "alarms")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put(ctx, "alarms", []byte(`[{"id":1}]`)))
			require.NoError(t, s.Put(ctx, "timerSound", []byte(`"data:,x"`)))
			require.NoError(t, s.Put(ctx, "alarms", []byte(`[]`)))

			got, err := s.Get(ctx, "alarms")
			require.NoError(t, err)
			require.JSONEq(t, `[]`, string(got))

			got, err = s.Get(ctx, "timerSound")
			require.NoError(t, err)
			require.JSONEq(t, `"data:,x"`, string(got))
		})
	}
}

// TestFileStore_PersistsAcrossInstances reads back a document written by another instance.
func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	require.NoError(t, NewFileStore(path).Put(ctx, "worldClockSettings", []byte(`{"is24Hour":true}`)))

	got, err := NewFileStore(path).Get(ctx, "worldClockSettings")
	require.NoError(t, err)
	require.JSONEq(t, `{"is24Hour":true}`, string(got))

	_, err = os.Stat(path + ".tmp")
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestStore_CreatesMissingDirectory verifies both disk stores create the parent directories of their path.
func TestStore_CreatesMissingDirectory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()

	file := NewFileStore(filepath.Join(root, "state", "nested", "state.json"))
	require.NoError(t, file.Put(ctx, "alarms", []byte(`[]`)))

	got, err := file.Get(ctx, "alarms")
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(got))

	db, err := NewSQLiteStore(filepath.Join(root, "db", "nested", "state.db"))
	require.NoError(t, err)

	defer func() { require.NoError(t, db.Close()) }()

	require.NoError(t, db.Put(ctx, "alarms", []byte(`[]`)))
}

// TestFileStore_Corrupt reports decode errors and recovers on the next write.
func TestFileStore_Corrupt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), config.DefaultFilePermissions))

	s := NewFileStore(path)

	_, err := s.Get(ctx, "alarms")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)

	require.Error(t, s.Put(ctx, "alarms", []byte("{bad")))
	require.NoError(t, s.Put(ctx, "alarms", []byte(`[]`)))

	got, err := s.Get(ctx, "alarms")
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(got))
}

// TestSQLiteStore_Memory works against an in-memory database.
func TestSQLiteStore_Memory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)

	defer func() { require.NoError(t, s.Close()) }()

	require.NoError(t, s.Put(ctx, "k", []byte("v")))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)
}

// TestOpen_UnknownDriver rejects unsupported drivers.
func TestOpen_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(config.Storage{Driver: "redis"})
	require.Error(t, err)
}

// TestMemoryStore_Keys lists written keys.
func TestMemoryStore_Keys(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	require.NoError(t, s.Put(context.Background(), "b", []byte("1")))
	require.NoError(t, s.Put(context.Background(), "a", []byte("2")))
	require.Equal(t, []string{"a", "b"}, s.Keys())
}
