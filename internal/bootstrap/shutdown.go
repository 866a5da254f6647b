package bootstrap

import (
	"context"

	"github.com/osse101/idlefarm/internal/logger"
	"github.com/osse101/idlefarm/internal/server"
	"github.com/osse101/idlefarm/internal/sse"
	"github.com/osse101/idlefarm/internal/storage"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server  *server.Server
	Hub     *sse.Hub
	Jobs    *BackgroundJobs
	Session *Session
	Store   storage.Store
}

// GracefulShutdown stops components in order:
// 1. Event stream hub (ends long-lived SSE responses so the server can drain)
// 2. HTTP server (stop accepting new requests)
// 3. Background jobs (no tick or auto-save races the final save)
// 4. Final save, unless a corrupt slot is waiting on recovery
// 5. Save store
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	logger.Info(LogMsgShuttingDownServer)

	if components.Hub != nil {
		components.Hub.Stop()
	}

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			logger.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Jobs != nil {
		components.Jobs.Stop()
	}

	if s := components.Session; s != nil {
		if s.Saves.RecoveryPending() {
			logger.Warn(LogMsgFinalSaveSkipped)
		} else if err := s.Saves.Save(ctx); err != nil {
			logger.Error(LogMsgFinalSaveFailed, "error", err)
		} else {
			logger.Info(LogMsgFinalSaveWritten)
		}
	}

	if components.Store != nil {
		if err := components.Store.Close(); err != nil {
			logger.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}

	logger.Info(LogMsgServerStopped)
}
