package bootstrap

import (
	"github.com/osse101/idlefarm/internal/event"
	"github.com/osse101/idlefarm/internal/logger"
)

// InitializeEventSystem creates the in-process event bus. Listeners are
// attached separately by RegisterEventHandlers.
func InitializeEventSystem() *event.MemoryBus {
	bus := event.NewMemoryBus()
	logger.Info(LogMsgEventSystemInitialized)
	return bus
}
