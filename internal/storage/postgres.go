package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresStore keeps slots in a save_slots table
type PostgresStore struct {
	pool     *pgxpool.Pool
	ownsPool bool
}

// NewPostgresStore migrates the schema through a database/sql view of pool.
// The caller keeps ownership of pool.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := migrate(ctx, db, goose.DialectPostgres, "migrations/postgres"); err != nil {
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Read(ctx context.Context, slot string) ([]byte, error) {
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}
	var data []byte
	err := s.pool.QueryRow(ctx, postgresReadQuery, slot).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToReadSlot, slot, err)
	}
	return data, nil
}

func (s *PostgresStore) Write(ctx context.Context, slot string, data []byte) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, postgresWriteQuery, slot, data); err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToWriteSlot, slot, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, slot string) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, postgresDeleteQuery, slot); err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToDelete, slot, err)
	}
	return nil
}

// Close releases the pool only when Open created it
func (s *PostgresStore) Close() error {
	if s.ownsPool {
		s.pool.Close()
	}
	return nil
}

// Ping checks the pool can reach the server
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
