package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/idlefarm/internal/config"
	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/event"
	"github.com/osse101/idlefarm/internal/game"
	"github.com/osse101/idlefarm/internal/save"
	"github.com/osse101/idlefarm/internal/storage"
	"github.com/osse101/idlefarm/internal/testing/leaktest"
)

type fakeStream struct{}

func (fakeStream) Broadcast(string, any) bool { return true }

type brokenStore struct {
	*storage.MemoryStore
}

func (brokenStore) Read(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func fixedClock() game.Option {
	return game.WithClock(func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) })
}

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Environment:      "test",
		ServiceName:      "idlefarm",
		StorageDriver:    storage.DriverMemory,
		TickInterval:     10 * time.Millisecond,
		AutoSaveInterval: 20 * time.Millisecond,
		ProgressInterval: 10 * time.Millisecond,
		Workers:          1,
		JobQueueSize:     4,
	}
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2026-01-%02d_00-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o600))

	cleanupLogs(dir, 9)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 10)
	_, err = os.Stat(filepath.Join(dir, fmt.Sprintf(LogFileNamePattern, "2026-01-01_00-00-00")))
	assert.True(t, os.IsNotExist(err), "oldest log should be gone")
	_, err = os.Stat(filepath.Join(dir, fmt.Sprintf(LogFileNamePattern, "2026-01-12_00-00-00")))
	assert.NoError(t, err, "newest log should stay")
}

func TestSetupLogger_WritesSessionFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := testConfig()
	cfg.LogDir = filepath.Join(t.TempDir(), "logs")

	f, err := SetupLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, f)
	defer f.Close()

	slog.Info("hello from the farm")

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), LogMsgStartingIdleFarm)
	assert.Contains(t, string(data), "hello from the farm")
}

func TestSetupLogger_StdoutOnly(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	f, err := SetupLogger(testConfig())
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestRegisterEventHandlers(t *testing.T) {
	bus := InitializeEventSystem()

	require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{EventBus: bus, Stream: fakeStream{}}))
	assert.Equal(t, 2, bus.ListenerCount(event.CropHarvested))
	assert.Equal(t, 1, bus.ListenerCount(event.GameSaved), "only metrics cares about saves")

	err := RegisterEventHandlers(EventHandlerDependencies{EventBus: bus})
	assert.ErrorIs(t, err, event.ErrDuplicateSubscription)
}

func TestOpenStore(t *testing.T) {
	cfg := testConfig()
	store, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStore{}, store)

	cfg.StorageDriver = "floppy"
	_, err = OpenStore(context.Background(), cfg)
	assert.ErrorContains(t, err, ErrMsgFailedOpenStore)
}

func TestSession_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("new farm", func(t *testing.T) {
		s := NewSession(event.NewMemoryBus(), storage.NewMemoryStore(), fixedClock())
		require.NoError(t, s.Restore(ctx))
		assert.False(t, s.Saves.RecoveryPending())
	})

	t.Run("existing save", func(t *testing.T) {
		store := storage.NewMemoryStore()
		first := NewSession(event.NewMemoryBus(), store, fixedClock())
		require.NoError(t, first.Game.Plant(ctx, domain.GridFarm, 0, "corn"))
		require.NoError(t, first.Saves.Save(ctx))

		second := NewSession(event.NewMemoryBus(), store, fixedClock())
		require.NoError(t, second.Restore(ctx))
		tile := second.Game.Snapshot().Farm.Tiles[0]
		assert.Equal(t, "corn", tile.SpeciesID)
		assert.True(t, tile.PlantedAt.Equal(first.Game.Snapshot().Farm.Tiles[0].PlantedAt))
	})

	t.Run("corrupt save waits for recovery", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Write(ctx, save.SlotMain, []byte("{not json")))

		s := NewSession(event.NewMemoryBus(), store, fixedClock())
		require.NoError(t, s.Restore(ctx))
		assert.True(t, s.Saves.RecoveryPending())
	})

	t.Run("storage failure", func(t *testing.T) {
		s := NewSession(event.NewMemoryBus(), brokenStore{storage.NewMemoryStore()}, fixedClock())
		err := s.Restore(ctx)
		assert.ErrorIs(t, err, domain.ErrStorage)
		assert.ErrorContains(t, err, ErrMsgFailedRestoreGame)
	})
}

func TestGracefulShutdown_FinalSave(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	s := NewSession(event.NewMemoryBus(), store, fixedClock())
	require.NoError(t, s.Game.Plant(ctx, domain.GridFarm, 0, "corn"))

	GracefulShutdown(ctx, ShutdownComponents{Session: s, Store: store})

	_, err := store.Read(ctx, save.SlotMain)
	assert.NoError(t, err)
}

func TestGracefulShutdown_KeepsCorruptSave(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	corrupt := []byte("{not json")
	require.NoError(t, store.Write(ctx, save.SlotMain, corrupt))

	s := NewSession(event.NewMemoryBus(), store, fixedClock())
	require.NoError(t, s.Restore(ctx))

	GracefulShutdown(ctx, ShutdownComponents{Session: s, Store: store})

	data, err := store.Read(ctx, save.SlotMain)
	require.NoError(t, err)
	assert.Equal(t, corrupt, data)
}

func TestStartBackgroundJobs(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	ctx := context.Background()
	store := storage.NewMemoryStore()
	s := NewSession(event.NewMemoryBus(), store, fixedClock())

	jobs := StartBackgroundJobs(testConfig(), s, nil)

	assert.Eventually(t, func() bool {
		_, err := store.Read(ctx, save.SlotMain)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond, "auto-save should write the main slot")

	jobs.Stop()
	checker.Check(1)
}
