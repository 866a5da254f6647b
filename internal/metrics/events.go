package metrics

import (
	"context"

	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/event"
	"github.com/osse101/idlefarm/internal/logger"
)

// HandlerErrorSource is a bus that reports failing handlers
type HandlerErrorSource interface {
	OnHandlerError(hook event.ErrorHook)
}

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every game event. When the bus can report handler
// failures they are counted too.
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.CropHarvested,
		event.TreeHarvested,
		event.PlayerLeveledUp,
		event.TileUnlocked,
		event.OrchardUnlocked,
		event.SaplingUnlocked,
		event.GameSaved,
		event.GameLoaded,
	}

	for _, eventType := range eventTypes {
		if err := bus.Subscribe(eventType, collectorKey, e.HandleEvent); err != nil {
			return err
		}
	}

	if src, ok := bus.(HandlerErrorSource); ok {
		src.OnHandlerError(func(eventType event.Type, key string, _ error) {
			EventHandlerErrors.WithLabelValues(string(eventType), key).Inc()
		})
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.CropHarvested, event.TreeHarvested:
		p, err := event.DecodePayload[domain.HarvestedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		Harvests.WithLabelValues(string(p.Grid), p.SpeciesID).Inc()
		CoinsEarned.Add(float64(p.Value))
		XPEarned.Add(float64(p.XP))

	case event.PlayerLeveledUp:
		p, err := event.DecodePayload[domain.LeveledUpPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		PlayerLevel.Set(float64(p.NewLevel))

	case event.TileUnlocked, event.OrchardUnlocked, event.SaplingUnlocked:
		p, err := event.DecodePayload[domain.UnlockedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		Unlocks.WithLabelValues(string(evt.Type)).Inc()
		CoinsSpent.WithLabelValues(string(evt.Type)).Add(float64(p.Cost))

	case event.GameSaved:
		Saves.Inc()

	case event.GameLoaded:
		Loads.Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
