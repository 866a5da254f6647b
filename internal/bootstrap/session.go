package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/idlefarm/internal/catalog"
	"github.com/osse101/idlefarm/internal/config"
	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/event"
	"github.com/osse101/idlefarm/internal/game"
	"github.com/osse101/idlefarm/internal/logger"
	"github.com/osse101/idlefarm/internal/save"
	"github.com/osse101/idlefarm/internal/storage"
)

// OpenStore opens the save store selected by cfg.StorageDriver
func OpenStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	logger.Info(LogMsgOpeningStore, "driver", cfg.StorageDriver)
	store, err := storage.Open(ctx, cfg.Storage())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
	}
	return store, nil
}

// Session is the live farm and the service that persists it
type Session struct {
	Game  *game.Game
	Saves *save.Service
}

// NewSession builds a fresh game on the default catalog, publishing to bus
func NewSession(bus event.Bus, store storage.Store, opts ...game.Option) *Session {
	opts = append([]game.Option{game.WithPublisher(bus)}, opts...)
	g := game.New(catalog.Default(), opts...)
	return &Session{
		Game:  g,
		Saves: save.NewService(g, store, save.WithPublisher(bus)),
	}
}

// Restore loads the main slot into the session. A missing save starts a new
// farm and a corrupt one leaves defaults in place with recovery pending; only
// storage failures are returned.
func (s *Session) Restore(ctx context.Context) error {
	report, err := s.Saves.Load(ctx)

	var recovery *save.RecoveryRequiredError
	switch {
	case err == nil:
		logger.Info(LogMsgWelcomeBack,
			"ready_crops", report.ReadyCrops,
			"ready_trees", report.ReadyTrees,
			"message", report.WelcomeMessage())
		return nil
	case errors.Is(err, domain.ErrNoSave):
		logger.Info(LogMsgNewGame)
		return nil
	case errors.As(err, &recovery):
		logger.Warn(LogMsgRecoveryRequired, "error", recovery.Cause, "options", recovery.Options)
		return nil
	default:
		return fmt.Errorf("%s: %w", ErrMsgFailedRestoreGame, err)
	}
}
