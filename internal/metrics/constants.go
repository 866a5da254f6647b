package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Game metric names
const (
	MetricNameHarvests    = "farm_harvests_total"
	MetricNameCoinsEarned = "farm_coins_earned_total"
	MetricNameCoinsSpent  = "farm_coins_spent_total"
	MetricNameXPEarned    = "farm_xp_earned_total"
	MetricNameUnlocks     = "farm_unlocks_total"
	MetricNamePlayerLevel = "farm_player_level"
	MetricNameSaves       = "farm_saves_total"
	MetricNameLoads       = "farm_loads_total"
)

// Background metric names
const (
	MetricNameJobDuration = "worker_job_duration_seconds"
	MetricNameJobErrors   = "worker_job_errors_total"
	MetricNameSSEClients  = "sse_clients"
	MetricNameSSEDropped  = "sse_events_dropped_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Game metric help text
const (
	HelpTextHarvests    = "Total number of harvested tiles"
	HelpTextCoinsEarned = "Total coins earned from harvests"
	HelpTextCoinsSpent  = "Total coins spent on unlocks"
	HelpTextXPEarned    = "Total experience earned from harvests"
	HelpTextUnlocks     = "Total number of tile, orchard and sapling unlocks"
	HelpTextPlayerLevel = "Current player level"
	HelpTextSaves       = "Total number of successful saves"
	HelpTextLoads       = "Total number of successful loads"
)

// Background metric help text
const (
	HelpTextJobDuration = "Background job run time in seconds"
	HelpTextJobErrors   = "Total number of failed background job runs"
	HelpTextSSEClients  = "Current number of connected event stream clients"
	HelpTextSSEDropped  = "Total number of stream events dropped because the hub was saturated"
)

// Label names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelGrid    = "grid"
	LabelSpecies = "species"
	LabelKind    = "kind"
	LabelJob     = "job"
	LabelKey     = "key"
)

// UnmatchedRoute labels requests chi could not route
const UnmatchedRoute = "unmatched"

// collectorKey identifies the collector's bus subscriptions
const collectorKey = "metrics"

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration in seconds
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// JobLatencyBuckets covers sub-millisecond ticks up to slow database saves
var JobLatencyBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5}

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Unexpected event payload for metrics"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
