package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), config.ClientDB{
		DSN: filepath.Join(t.TempDir(), "local.db"),
	}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	return db
}

type kvFactory struct {
	name string
	open func(t *testing.T) KeyValueStore
}

func kvFactories() []kvFactory {
	return []kvFactory{
		{name: "memory", open: func(t *testing.T) KeyValueStore {
			return NewMemoryStore()
		}},
		{name: "bolt", open: func(t *testing.T) KeyValueStore {
			s, err := NewBoltStore(filepath.Join(t.TempDir(), "state", "state.db"))
			require.NoError(t, err)
			return s
		}},
		{name: "sqlite", open: func(t *testing.T) KeyValueStore {
			return NewSQLiteStore(newTestDB(t))
		}},
	}
}

// ── contract ──────────────────────────────────────────────────────────────────

func TestKeyValueStore_Contract(t *testing.T) {
	for _, f := range kvFactories() {
		t.Run(f.name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("get missing", func(t *testing.T) {
				kv := f.open(t)
				defer kv.Close()

				_, err := kv.Get(ctx, "nope")
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("set get overwrite", func(t *testing.T) {
				kv := f.open(t)
				defer kv.Close()

				require.NoError(t, kv.Set(ctx, "a", []byte("1")))
				require.NoError(t, kv.Set(ctx, "a", []byte("2")))

				v, err := kv.Get(ctx, "a")
				require.NoError(t, err)
				assert.Equal(t, []byte("2"), v)
			})

			t.Run("delete", func(t *testing.T) {
				kv := f.open(t)
				defer kv.Close()

				require.NoError(t, kv.Set(ctx, "a", []byte("1")))
				require.NoError(t, kv.Delete(ctx, "a"))
				require.NoError(t, kv.Delete(ctx, "a"))

				_, err := kv.Get(ctx, "a")
				assert.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("list by prefix sorted", func(t *testing.T) {
				kv := f.open(t)
				defer kv.Close()

				require.NoError(t, kv.Set(ctx, "conflicts/b", []byte("b")))
				require.NoError(t, kv.Set(ctx, "conflicts/a", []byte("a")))
				require.NoError(t, kv.Set(ctx, "conflictsX", []byte("x")))
				require.NoError(t, kv.Set(ctx, "meta/last", []byte("m")))

				entries, err := kv.List(ctx, "conflicts/")
				require.NoError(t, err)
				require.Len(t, entries, 2)
				assert.Equal(t, "conflicts/a", entries[0].Key)
				assert.Equal(t, []byte("a"), entries[0].Value)
				assert.Equal(t, "conflicts/b", entries[1].Key)
			})

			t.Run("like wildcards are literal", func(t *testing.T) {
				kv := f.open(t)
				defer kv.Close()

				require.NoError(t, kv.Set(ctx, "pending_changes/x", []byte("1")))
				require.NoError(t, kv.Set(ctx, "pendingXchanges/y", []byte("2")))

				entries, err := kv.List(ctx, "pending_changes/")
				require.NoError(t, err)
				require.Len(t, entries, 1)
				assert.Equal(t, "pending_changes/x", entries[0].Key)
			})

			t.Run("empty key", func(t *testing.T) {
				kv := f.open(t)
				defer kv.Close()

				assert.ErrorIs(t, kv.Set(ctx, "", []byte("1")), ErrEmptyKey)
				_, err := kv.Get(ctx, "")
				assert.ErrorIs(t, err, ErrEmptyKey)
				assert.ErrorIs(t, kv.Delete(ctx, ""), ErrEmptyKey)
			})

			t.Run("closed", func(t *testing.T) {
				kv := f.open(t)
				require.NoError(t, kv.Close())

				assert.ErrorIs(t, kv.Set(ctx, "a", []byte("1")), ErrStorageClosed)
				_, err := kv.Get(ctx, "a")
				assert.ErrorIs(t, err, ErrStorageClosed)
				_, err = kv.List(ctx, "")
				assert.ErrorIs(t, err, ErrStorageClosed)
			})
		})
	}
}

// TestMemoryStore_ValuesAreCopied verifies callers cannot mutate stored bytes.
func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()

	in := []byte("abc")
	require.NoError(t, kv.Set(ctx, "k", in))
	in[0] = 'X'

	out, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	out[0] = 'Y'
	again, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

// TestBoltStore_PersistsAcrossReopen verifies durability of the bbolt backend.
func TestBoltStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := NewBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "meta/last_sync_at", []byte(`"2026-01-01T00:00:00Z"`)))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	s, err = NewBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get(ctx, "meta/last_sync_at")
	require.NoError(t, err)
	assert.Equal(t, `"2026-01-01T00:00:00Z"`, string(v))
}

func TestNewBoltStore_InvalidPath(t *testing.T) {
	s, err := NewBoltStore(string([]byte{0}))
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `pending\_changes/50\%\\`, escapeLike(`pending_changes/50%\`))
}
