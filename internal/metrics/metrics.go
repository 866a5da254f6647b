// Package metrics exposes Prometheus collectors for HTTP traffic, game
// activity and background jobs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType, LabelKey},
	)
)

// Game Metrics
var (
	Harvests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHarvests,
			Help: HelpTextHarvests,
		},
		[]string{LabelGrid, LabelSpecies},
	)

	CoinsEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsEarned,
			Help: HelpTextCoinsEarned,
		},
	)

	CoinsSpent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsSpent,
			Help: HelpTextCoinsSpent,
		},
		[]string{LabelKind},
	)

	XPEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameXPEarned,
			Help: HelpTextXPEarned,
		},
	)

	Unlocks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUnlocks,
			Help: HelpTextUnlocks,
		},
		[]string{LabelKind},
	)

	PlayerLevel = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNamePlayerLevel,
			Help: HelpTextPlayerLevel,
		},
	)

	Saves = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSaves,
			Help: HelpTextSaves,
		},
	)

	Loads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLoads,
			Help: HelpTextLoads,
		},
	)
)

// Background Metrics
var (
	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameJobDuration,
			Help:    HelpTextJobDuration,
			Buckets: JobLatencyBuckets,
		},
		[]string{LabelJob},
	)

	JobErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobErrors,
			Help: HelpTextJobErrors,
		},
		[]string{LabelJob},
	)

	SSEClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEClients,
			Help: HelpTextSSEClients,
		},
	)

	SSEDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSSEDropped,
			Help: HelpTextSSEDropped,
		},
		[]string{LabelType},
	)
)

// ObserveJob records one worker job run; its signature matches worker.Observer
func ObserveJob(name string, elapsed time.Duration, err error) {
	JobDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	if err != nil {
		JobErrors.WithLabelValues(name).Inc()
	}
}

// RecordSSEDrop counts a dropped stream event; pass it to sse.WithDropHook
func RecordSSEDrop(eventType string) {
	SSEDropped.WithLabelValues(eventType).Inc()
}

// SetSSEClients tracks connected stream clients; pass it to sse.WithClientCountHook
func SetSSEClients(count int) {
	SSEClients.Set(float64(count))
}
