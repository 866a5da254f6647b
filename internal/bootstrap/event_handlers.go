package bootstrap

import (
	"fmt"

	"github.com/osse101/idlefarm/internal/event"
	"github.com/osse101/idlefarm/internal/logger"
	"github.com/osse101/idlefarm/internal/metrics"
	"github.com/osse101/idlefarm/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	Stream   sse.Broadcaster
}

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (counters and gauges for game events)
// - Stream bridge (forwards game events to SSE clients), when Stream is set
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	logger.Info(LogMsgMetricsCollectorRegistered)

	if deps.Stream != nil {
		if err := sse.NewSubscriber(deps.Stream, deps.EventBus).Subscribe(); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedRegisterStream, err)
		}
		logger.Info(LogMsgStreamBridgeRegistered)
	}

	return nil
}
