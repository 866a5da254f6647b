package scheduler

const (
	LogMsgJobScheduled    = "Job scheduled"
	LogMsgInvalidInterval = "Ignoring job with non-positive interval"
)
