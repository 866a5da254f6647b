package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Log message constants
const (
	LogMsgDuplicateSubscription = "Duplicate event subscription ignored"
	LogMsgHandlerFailed         = "Event handler failed"
	LogMsgHandlerPanicked       = "Event handler panicked"
	LogMsgBlankEventType        = "Event with blank type ignored"
)

// Error messages
const (
	ErrMsgDuplicateSubscription = "handler already subscribed"
	ErrMsgInvalidSubscription   = "invalid subscription"
	ErrMsgHandlerPanic          = "handler panic"
)
