package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel.
	// Progress frames arrive every 100ms, so a stalled client drops them quickly.
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// KeepaliveInterval is how often to send keepalive pings
const KeepaliveInterval = 30 * time.Second

// Event types sent to clients
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
	EventTypeHarvested = "harvested"
	EventTypeLeveledUp = "leveledUp"
	EventTypeUnlocked  = "unlocked"
	EventTypeLoaded    = "loaded"
	EventTypeProgress  = "progress"
)

// TypesQueryParam filters a connection to a comma separated list of event types
const TypesQueryParam = "types"

// subscriberKey identifies the bridge's bus subscriptions
const subscriberKey = "sse"

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscribed         = "SSE subscriber registered for event types"
	LogMsgBadPayload         = "Unexpected event payload"
)

// ErrMsgStreamingUnsupported is returned when the response writer cannot flush
const ErrMsgStreamingUnsupported = "SSE not supported"
