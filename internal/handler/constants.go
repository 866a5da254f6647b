package handler

import "time"

// Generic HTTP error messages for client responses.
// Internal error details never reach the client.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidGridParam      = "Unknown grid"
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnknownError          = "Unknown error"
)

// User-facing messages for domain errors
const (
	ErrMsgTileLockedUser       = "That tile is locked. Unlock more tiles first."
	ErrMsgTileOccupiedUser     = "Something is already growing there"
	ErrMsgTileNotReadyUser     = "Not ready to harvest yet"
	ErrMsgTileOutOfRangeUser   = "No such tile"
	ErrMsgInvalidSpeciesUser   = "Unknown crop or tree"
	ErrMsgSpeciesLockedUser    = "Reach a higher level or buy the sapling first"
	ErrMsgInvalidGridUser      = "Unknown grid"
	ErrMsgGridFullUser         = "All tiles are already unlocked"
	ErrMsgOrchardLockedUser    = "Unlock the orchard first"
	ErrMsgAlreadyUnlockedUser  = "Already unlocked"
	ErrMsgNotEnoughCoinsUser   = "Not enough coins"
	ErrMsgCorruptSaveUser      = "Save data is corrupted"
	ErrMsgNewerVersionUser     = "Save data is from a newer version of the game"
	ErrMsgNoSaveUser           = "No saved game found"
	ErrMsgNoBackupUser         = "No backup save found"
	ErrMsgConfirmRequiredUser  = "This will overwrite your current game. Send confirm=true to continue."
	ErrMsgStorageUser          = "Saving is unavailable right now. Please try again."
	ErrMsgInvalidInputUser     = "Invalid request. Please check your inputs."
	ErrMsgRecoveryRequiredUser = "Your save could not be loaded. Choose a recovery option."
)

// Success messages
const (
	MsgSaved        = "Game saved"
	MsgPlanted      = "Planted"
	MsgRemoved      = "Tile cleared"
	MsgSelected     = "Selection updated"
	MsgUnlocked     = "Unlocked"
	MsgRecovered    = "Recovery complete"
	MsgOrchardReady = "The orchard is open"
)

// Health
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgStorageDown    = "storage unavailable"
	ReadinessTimeout        = 2 * time.Second
)

// URL parameters
const (
	ParamGrid = "grid"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgRequestDecoded   = "Request decoded"
	LogMsgValidationFailed = "Request validation failed"
	LogMsgServiceError     = "Request failed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgReadinessFailed  = "Readiness check failed"
)
