package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Tile errors
	ErrMsgTileLocked     = "tile is locked"
	ErrMsgTileOccupied   = "tile is occupied"
	ErrMsgTileNotReady   = "tile is not ready to harvest"
	ErrMsgTileOutOfRange = "tile index out of range"

	// Species errors
	ErrMsgInvalidSpecies = "invalid species"
	ErrMsgSpeciesLocked  = "species is locked"

	// Grid errors
	ErrMsgInvalidGrid     = "invalid grid"
	ErrMsgGridFull        = "all tiles are already unlocked"
	ErrMsgOrchardLocked   = "orchard is locked"
	ErrMsgAlreadyUnlocked = "already unlocked"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// Save errors
	ErrMsgCorruptSave          = "save data is corrupted"
	ErrMsgUnsupportedVersion   = "save version is not supported"
	ErrMsgNoSave               = "no save found"
	ErrMsgNoBackup             = "no backup found"
	ErrMsgConfirmationRequired = "confirmation required to overwrite current save"
	ErrMsgStorage              = "storage failure"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrTileLocked     = errors.New(ErrMsgTileLocked)
	ErrTileOccupied   = errors.New(ErrMsgTileOccupied)
	ErrTileNotReady   = errors.New(ErrMsgTileNotReady)
	ErrTileOutOfRange = errors.New(ErrMsgTileOutOfRange)

	ErrInvalidSpecies = errors.New(ErrMsgInvalidSpecies)
	ErrSpeciesLocked  = errors.New(ErrMsgSpeciesLocked)

	ErrInvalidGrid     = errors.New(ErrMsgInvalidGrid)
	ErrGridFull        = errors.New(ErrMsgGridFull)
	ErrOrchardLocked   = errors.New(ErrMsgOrchardLocked)
	ErrAlreadyUnlocked = errors.New(ErrMsgAlreadyUnlocked)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// ErrCorruptSave covers unparsable data and records missing mandatory fields
	ErrCorruptSave = errors.New(ErrMsgCorruptSave)

	// ErrUnsupportedVersion is returned for records written by a newer schema
	ErrUnsupportedVersion = errors.New(ErrMsgUnsupportedVersion)

	ErrNoSave               = errors.New(ErrMsgNoSave)
	ErrNoBackup             = errors.New(ErrMsgNoBackup)
	ErrConfirmationRequired = errors.New(ErrMsgConfirmationRequired)

	// ErrStorage marks failures of the persistence backend, never of the data itself
	ErrStorage = errors.New(ErrMsgStorage)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
