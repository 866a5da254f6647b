package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/logger"
)

// Type represents the type of an event
type Type string

// Game event types
const (
	CropHarvested   Type = domain.EventTypeCropHarvested
	TreeHarvested   Type = domain.EventTypeTreeHarvested
	PlayerLeveledUp Type = domain.EventTypePlayerLeveledUp
	TileUnlocked    Type = domain.EventTypeTileUnlocked
	OrchardUnlocked Type = domain.EventTypeOrchardUnlocked
	SaplingUnlocked Type = domain.EventTypeSaplingUnlocked
	GameSaved       Type = domain.EventTypeGameSaved
	GameLoaded      Type = domain.EventTypeGameLoaded
)

var (
	ErrDuplicateSubscription = errors.New(ErrMsgDuplicateSubscription)
	ErrInvalidSubscription   = errors.New(ErrMsgInvalidSubscription)
	ErrHandlerPanic          = errors.New(ErrMsgHandlerPanic)
)

// Event represents a generic event in the system
type Event struct {
	Version   string    `json:"version"` // Event schema version (e.g., "1.0")
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// New stamps an event with the schema version and a fresh id
func New(eventType Type, payload any, at time.Time) Event {
	return Event{
		Version:   EventSchemaVersion,
		ID:        uuid.NewString(),
		Type:      eventType,
		Payload:   payload,
		Timestamp: at,
	}
}

// NewHarvestedEvent builds crop.harvested or tree.harvested depending on the grid
func NewHarvestedEvent(payload domain.HarvestedPayload, at time.Time) Event {
	eventType := CropHarvested
	if payload.Grid == domain.GridOrchard {
		eventType = TreeHarvested
	}
	payload.Timestamp = at.Unix()
	return New(eventType, payload, at)
}

// NewLeveledUpEvent builds player.leveled_up
func NewLeveledUpEvent(newLevel int, xpToNext int64, at time.Time) Event {
	return New(PlayerLeveledUp, domain.LeveledUpPayload{
		NewLevel:  newLevel,
		XPToNext:  xpToNext,
		Timestamp: at.Unix(),
	}, at)
}

// NewUnlockedEvent builds one of the unlock events
func NewUnlockedEvent(eventType Type, payload domain.UnlockedPayload, at time.Time) Event {
	payload.Timestamp = at.Unix()
	return New(eventType, payload, at)
}

// NewSaveEvent builds game.saved or game.loaded
func NewSaveEvent(eventType Type, payload domain.SaveEventPayload, at time.Time) Event {
	payload.Timestamp = at.Unix()
	return New(eventType, payload, at)
}

// DecodePayload returns the payload as T, converting through JSON when the
// event did not originate from the in-process bus
func DecodePayload[T any](payload any) (T, error) {
	if v, ok := payload.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(payload)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// ErrorHook observes handler failures, e.g. for metrics
type ErrorHook func(eventType Type, key string, err error)

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, key string, handler Handler) error
}

type subscription struct {
	key     string
	handler Handler
}

// MemoryBus is an in-memory, synchronous implementation of Bus.
// Handlers are keyed so the same listener cannot be registered twice.
type MemoryBus struct {
	handlers map[Type][]subscription
	mu       sync.RWMutex
	onError  ErrorHook
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]subscription),
	}
}

// OnHandlerError installs a hook called for every failed or panicking handler
func (b *MemoryBus) OnHandlerError(hook ErrorHook) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onError = hook
}

// Subscribe registers handler under key for eventType. A key already
// registered for the type is rejected and the existing handler is kept.
func (b *MemoryBus) Subscribe(eventType Type, key string, handler Handler) error {
	if eventType == "" || key == "" || handler == nil {
		return fmt.Errorf("%w: type %q key %q", ErrInvalidSubscription, eventType, key)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.handlers[eventType] {
		if sub.key == key {
			logger.FromContext(context.Background()).Warn(LogMsgDuplicateSubscription, "event_type", eventType, "key", key)
			return fmt.Errorf("%w: %s on %s", ErrDuplicateSubscription, key, eventType)
		}
	}
	b.handlers[eventType] = append(b.handlers[eventType], subscription{key: key, handler: handler})
	return nil
}

// Unsubscribe removes the handler registered under key, if any
func (b *MemoryBus) Unsubscribe(eventType Type, key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, sub := range subs {
		if sub.key != key {
			continue
		}
		// rebuild instead of shifting in place; Publish may hold the old slice
		next := make([]subscription, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(b.handlers, eventType)
		} else {
			b.handlers[eventType] = next
		}
		return true
	}
	return false
}

// ClearType removes every handler of one event type
func (b *MemoryBus) ClearType(eventType Type) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handlers, eventType)
}

// Clear removes every handler
func (b *MemoryBus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[Type][]subscription)
}

// ListenerCount returns how many handlers are registered for eventType
func (b *MemoryBus) ListenerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// RegisteredTypes lists event types with at least one handler
func (b *MemoryBus) RegisteredTypes() []Type {
	b.mu.RLock()
	defer b.mu.RUnlock()

	types := make([]Type, 0, len(b.handlers))
	for t := range b.handlers {
		types = append(types, t)
	}
	return types
}

// Publish delivers event to its handlers synchronously, in subscription order.
// Every handler runs even when earlier ones fail or panic. Failures are
// logged and passed to the error hook, never returned to the publisher.
// Events without handlers are dropped silently.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	if event.Type == "" {
		logger.FromContext(ctx).Debug(LogMsgBlankEventType)
		return nil
	}

	b.mu.RLock()
	subs := b.handlers[event.Type]
	hook := b.onError
	b.mu.RUnlock()

	for _, sub := range subs {
		if err := b.dispatch(ctx, sub, event); err != nil {
			logger.FromContext(ctx).Error(LogMsgHandlerFailed, "event_type", event.Type, "key", sub.key, "error", err)
			if hook != nil {
				hook(event.Type, sub.key, err)
			}
		}
	}
	return nil
}

func (b *MemoryBus) dispatch(ctx context.Context, sub subscription, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgHandlerPanicked, "event_type", event.Type, "key", sub.key, "panic", r)
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return sub.handler(ctx, event)
}
