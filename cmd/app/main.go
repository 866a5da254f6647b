package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/idlefarm/internal/bootstrap"
	"github.com/osse101/idlefarm/internal/config"
	"github.com/osse101/idlefarm/internal/logger"
	"github.com/osse101/idlefarm/internal/metrics"
	"github.com/osse101/idlefarm/internal/server"
	"github.com/osse101/idlefarm/internal/sse"
)

// @title idlefarm API
// @version 1.0
// @description Idle farming game: plant, grow, harvest and save.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "idlefarm: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}

	bus := bootstrap.InitializeEventSystem()
	hub := sse.NewHub(
		sse.WithDropHook(metrics.RecordSSEDrop),
		sse.WithClientCountHook(metrics.SetSSEClients),
	)
	hub.Start()

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{EventBus: bus, Stream: hub}); err != nil {
		hub.Stop()
		_ = store.Close()
		return err
	}

	session := bootstrap.NewSession(bus, store)
	if err := session.Restore(ctx); err != nil {
		hub.Stop()
		_ = store.Close()
		return err
	}

	jobs := bootstrap.StartBackgroundJobs(cfg, session, hub)

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Version:        cfg.Version,
	}, server.Dependencies{
		Game:     session.Game,
		Saves:    session.Saves,
		Store:    store,
		Hub:      hub,
		Snapshot: func() any { return session.Game.Progress() },
	})

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("server failed: %w", err)
			logger.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:  srv,
		Hub:     hub,
		Jobs:    jobs,
		Session: session,
		Store:   store,
	})

	return runErr
}
