// Package storage persists opaque save payloads under named slots.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/idlefarm/internal/database"
)

var (
	// ErrSlotNotFound is returned by Read when nothing was written to the slot
	ErrSlotNotFound = errors.New(ErrMsgSlotNotFound)
	// ErrInvalidSlot rejects slot names that cannot be used as keys or file names
	ErrInvalidSlot = errors.New(ErrMsgInvalidSlot)
)

// Store reads and writes whole slots. Delete of a missing slot is not an error.
type Store interface {
	Read(ctx context.Context, slot string) ([]byte, error)
	Write(ctx context.Context, slot string, data []byte) error
	Delete(ctx context.Context, slot string) error
	Close() error
}

// Config selects and parameterizes a backend
type Config struct {
	Driver          string
	DataDir         string
	SQLitePath      string
	DatabaseURL     string
	MaxConns        int
	MaxConnIdleTime time.Duration
	MaxConnLifetime time.Duration
}

// Open builds the store named by cfg.Driver, running migrations for SQL backends
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Driver {
	case DriverMemory, "":
		store = NewMemoryStore()
	case DriverFile:
		store, err = NewFileStore(cfg.DataDir)
	case DriverSQLite:
		store, err = OpenSQLite(ctx, cfg.SQLitePath)
	case DriverPostgres:
		store, err = openPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	slog.Default().Info(LogMsgStoreOpened, "driver", cfg.Driver)
	return store, nil
}

func openPostgres(ctx context.Context, cfg Config) (Store, error) {
	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = DefaultMaxConns
	}
	idle := cfg.MaxConnIdleTime
	if idle <= 0 {
		idle = DefaultMaxConnIdleTime
	}
	life := cfg.MaxConnLifetime
	if life <= 0 {
		life = DefaultMaxConnLifetime
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, maxConns, idle, life)
	if err != nil {
		return nil, err
	}
	store, err := NewPostgresStore(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	store.ownsPool = true
	return store, nil
}

// ValidateSlot accepts names made of letters, digits, '-' and '_'
func ValidateSlot(slot string) error {
	if slot == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSlot)
	}
	for _, r := range slot {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
		}
	}
	return nil
}

// Pinger is implemented by stores backed by a database connection
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks the backend behind s. Stores without a connection are always reachable.
func Ping(ctx context.Context, s Store) error {
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
