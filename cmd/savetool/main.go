// Command savetool inspects and repairs the idlefarm save slots offline.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/osse101/idlefarm/internal/bootstrap"
	"github.com/osse101/idlefarm/internal/config"
	"github.com/osse101/idlefarm/internal/event"
	"github.com/osse101/idlefarm/internal/logger"
)

func main() {
	registry := DefaultRegistry()

	if len(os.Args) < 2 {
		registry.PrintHelp(os.Stderr)
		os.Exit(1)
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		PrintError(os.Stderr, "Unknown command: %s", os.Args[1])
		registry.PrintHelp(os.Stderr)
		os.Exit(1)
	}

	if err := run(cmd, os.Args[2:]); err != nil {
		PrintError(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

func run(cmd Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	// stdout carries exports, so logs go to stderr
	logger.InitLoggerWithWriter(cfg.Logger(), os.Stderr)

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	tb := &Toolbox{
		Session: bootstrap.NewSession(event.NewMemoryBus(), store),
		In:      os.Stdin,
		Out:     os.Stdout,
	}
	return cmd.Run(ctx, tb, args)
}
