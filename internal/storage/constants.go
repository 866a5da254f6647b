package storage

import "time"

// Drivers accepted by Open
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// FileExtension is appended to slot names by FileStore
const FileExtension = ".json"

// SQLite connection parameters
const (
	SQLiteDriverName = "sqlite"
	SQLiteDSNParams  = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
)

// Postgres pool defaults used when Config leaves them unset
const (
	DefaultMaxConns        = 5
	DefaultMaxConnIdleTime = 5 * time.Minute
	DefaultMaxConnLifetime = 30 * time.Minute
)

// Error messages
const (
	ErrMsgSlotNotFound      = "save slot not found"
	ErrMsgInvalidSlot       = "invalid slot name"
	ErrMsgUnknownDriver     = "unknown storage driver"
	ErrMsgFailedToOpenDB    = "failed to open database"
	ErrMsgFailedToPingDB    = "failed to ping database"
	ErrMsgFailedToMigrate   = "failed to apply migrations"
	ErrMsgFailedToReadSlot  = "failed to read slot"
	ErrMsgFailedToWriteSlot = "failed to write slot"
	ErrMsgFailedToDelete    = "failed to delete slot"
)

// Log messages
const (
	LogMsgStoreOpened       = "Save store opened"
	LogMsgMigrationsApplied = "Storage migrations applied"
)

// Queries shared by the SQL stores, written with positional placeholders
const (
	sqliteReadQuery   = `SELECT data FROM save_slots WHERE slot = ?`
	sqliteWriteQuery  = `INSERT INTO save_slots (slot, data, updated_at) VALUES (?, ?, ?) ON CONFLICT (slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
	sqliteDeleteQuery = `DELETE FROM save_slots WHERE slot = ?`

	postgresReadQuery   = `SELECT data FROM save_slots WHERE slot = $1`
	postgresWriteQuery  = `INSERT INTO save_slots (slot, data, updated_at) VALUES ($1, $2, NOW()) ON CONFLICT (slot) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	postgresDeleteQuery = `DELETE FROM save_slots WHERE slot = $1`
)
