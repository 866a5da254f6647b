package worker

import "time"

// Log messages
const (
	LogMsgWorkerJobFailed    = "Worker job failed"
	LogMsgJobQueueFull       = "Job queue full, skipping run"
	LogMsgAutoSaveFailed     = "Auto-save failed"
	LogMsgAutoSaveSkipped    = "Auto-save skipped, recovery pending"
	LogMsgPoolStopped        = "Worker pool stopped"
	LogMsgJobTimeoutExceeded = "Job exceeded its timeout"
)

// DefaultJobTimeout bounds a single job run
const DefaultJobTimeout = 10 * time.Second

// Job names, used for logging and metrics labels
const (
	JobNameTick     = "tick"
	JobNameAutoSave = "autosave"
	JobNameProgress = "progress"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
