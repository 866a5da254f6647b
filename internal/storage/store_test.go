package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract exercises the behavior every backend shares
func storeContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing slot", func(t *testing.T) {
		_, err := store.Read(ctx, "farmGame")
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("write then read", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "farmGame", []byte(`{"version":2}`)))
		data, err := store.Read(ctx, "farmGame")
		require.NoError(t, err)
		assert.Equal(t, `{"version":2}`, string(data))
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "farmGame", []byte("first")))
		require.NoError(t, store.Write(ctx, "farmGame", []byte("second")))
		data, err := store.Read(ctx, "farmGame")
		require.NoError(t, err)
		assert.Equal(t, "second", string(data))
	})

	t.Run("slots are independent", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "farmGame", []byte("live")))
		require.NoError(t, store.Write(ctx, "farmGameBackup", []byte("backup")))

		require.NoError(t, store.Delete(ctx, "farmGame"))
		_, err := store.Read(ctx, "farmGame")
		assert.ErrorIs(t, err, ErrSlotNotFound)

		data, err := store.Read(ctx, "farmGameBackup")
		require.NoError(t, err)
		assert.Equal(t, "backup", string(data))
	})

	t.Run("delete missing slot", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "neverWritten"))
	})

	t.Run("invalid slot", func(t *testing.T) {
		assert.ErrorIs(t, store.Write(ctx, "../escape", []byte("x")), ErrInvalidSlot)
		_, err := store.Read(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	storeContract(t, store)
}

func TestMemoryStore_CopiesData(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, store.Write(ctx, "slot", buf))
	buf[0] = 'z'

	data, err := store.Read(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "saves"))
	require.NoError(t, err)
	defer store.Close()
	storeContract(t, store)
}

func TestFileStore_OneFilePerSlot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Write(context.Background(), "farmGame", []byte("{}")))
	assert.FileExists(t, filepath.Join(dir, "farmGame.json"))
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "farm.db"))
	require.NoError(t, err)
	defer store.Close()
	storeContract(t, store)
	assert.NoError(t, Ping(context.Background(), store))
}

func TestPing_StoresWithoutConnection(t *testing.T) {
	assert.NoError(t, Ping(context.Background(), NewMemoryStore()))
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "farm.db")

	store, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Write(ctx, "farmGame", []byte("persisted")))
	require.NoError(t, store.Close())

	reopened, err := OpenSQLite(ctx, path)
	require.NoError(t, err, "migrations must be re-runnable")
	defer reopened.Close()

	data, err := reopened.Read(ctx, "farmGame")
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(data))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default is memory", cfg: Config{}},
		{name: "memory", cfg: Config{Driver: DriverMemory}},
		{name: "file", cfg: Config{Driver: DriverFile, DataDir: t.TempDir()}},
		{name: "sqlite", cfg: Config{Driver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "open.db")}},
		{name: "unknown", cfg: Config{Driver: "redis"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(ctx, tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, store.Close())
		})
	}
}

func TestValidateSlot(t *testing.T) {
	assert.NoError(t, ValidateSlot("farmGame"))
	assert.NoError(t, ValidateSlot("farm-game_2"))
	assert.ErrorIs(t, ValidateSlot(""), ErrInvalidSlot)
	assert.ErrorIs(t, ValidateSlot("a/b"), ErrInvalidSlot)
	assert.ErrorIs(t, ValidateSlot("with space"), ErrInvalidSlot)
}
