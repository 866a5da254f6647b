package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to a new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingIdleFarm    = "Starting idlefarm"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
)

// =============================================================================
// Event System
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgStreamBridgeRegistered     = "Event stream bridge registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedRegisterStream       = "failed to register event stream bridge"
)

// =============================================================================
// Storage and Game Session
// =============================================================================

const (
	LogMsgOpeningStore      = "Opening save store"
	LogMsgNewGame           = "No save found, starting a new farm"
	LogMsgRecoveryRequired  = "Save could not be loaded, waiting for a recovery choice"
	LogMsgWelcomeBack       = "Game restored"
	ErrMsgFailedOpenStore   = "failed to open save store"
	ErrMsgFailedRestoreGame = "failed to restore game"
)

// =============================================================================
// Background Jobs
// =============================================================================

const (
	LogMsgBackgroundJobsStarted = "Background jobs started"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgFinalSaveFailed      = "Final save failed"
	LogMsgFinalSaveSkipped     = "Final save skipped, recovery pending"
	LogMsgFinalSaveWritten     = "Final save written"
	LogMsgStoreCloseFailed     = "Save store close failed"
)
