package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/event"
)

// Broadcaster is the part of Hub the subscriber needs
type Broadcaster interface {
	Broadcast(eventType string, payload any) bool
}

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub Broadcaster
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub Broadcaster, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe registers the bridge handlers
func (s *Subscriber) Subscribe() error {
	handlers := map[event.Type]event.Handler{
		event.CropHarvested:   s.handleHarvested,
		event.TreeHarvested:   s.handleHarvested,
		event.PlayerLeveledUp: s.handleLeveledUp,
		event.TileUnlocked:    s.handleUnlocked,
		event.OrchardUnlocked: s.handleUnlocked,
		event.SaplingUnlocked: s.handleUnlocked,
		event.GameLoaded:      s.handleLoaded,
	}

	types := make([]string, 0, len(handlers))
	for eventType, handler := range handlers {
		if err := s.bus.Subscribe(eventType, subscriberKey, handler); err != nil {
			return err
		}
		types = append(types, string(eventType))
	}

	slog.Info(LogMsgSubscribed, "types", types)
	return nil
}

func (s *Subscriber) handleHarvested(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.HarvestedPayload](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgBadPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.send(EventTypeHarvested, HarvestedPayload{
		Grid:      p.Grid,
		TileIndex: p.TileIndex,
		SpeciesID: p.SpeciesID,
		Value:     p.Value,
		XP:        p.XP,
	})
	return nil
}

func (s *Subscriber) handleLeveledUp(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.LeveledUpPayload](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgBadPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.send(EventTypeLeveledUp, LeveledUpPayload{Level: p.NewLevel, XPToNext: p.XPToNext})
	return nil
}

func (s *Subscriber) handleUnlocked(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.UnlockedPayload](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgBadPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.send(EventTypeUnlocked, UnlockedPayload{
		Kind:      string(evt.Type),
		Grid:      p.Grid,
		SpeciesID: p.SpeciesID,
		Cost:      p.Cost,
		Unlocked:  p.Unlocked,
	})
	return nil
}

func (s *Subscriber) handleLoaded(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.SaveEventPayload](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgBadPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.send(EventTypeLoaded, LoadedPayload{ReadyCrops: p.ReadyCrops, ReadyTrees: p.ReadyTrees})
	return nil
}

func (s *Subscriber) send(eventType string, payload any) {
	if !s.hub.Broadcast(eventType, payload) {
		slog.Warn(LogMsgEventDropped, "event_type", eventType)
		return
	}
	slog.Debug(LogMsgEventBroadcast, "event_type", eventType)
}
