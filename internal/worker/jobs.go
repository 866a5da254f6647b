package worker

import (
	"context"

	"github.com/osse101/idlefarm/internal/game"
	"github.com/osse101/idlefarm/internal/logger"
)

// Ticker advances growth and cooldown timers
type Ticker interface {
	Tick(ctx context.Context) int
}

// Saver persists the game
type Saver interface {
	Save(ctx context.Context) error
}

// RecoveryAware savers report a corrupt main slot still waiting on the
// player; auto-save leaves that slot alone until recovery runs.
type RecoveryAware interface {
	RecoveryPending() bool
}

// ProgressSource renders per-tile progress
type ProgressSource interface {
	Progress() game.ProgressView
}

// Broadcaster pushes a payload to connected clients
type Broadcaster interface {
	Broadcast(eventType string, payload any) bool
	ClientCount() int
}

// TickJob flips tiles whose timers have elapsed into their next state
type TickJob struct {
	game Ticker
}

// NewTickJob creates a tick job
func NewTickJob(g Ticker) *TickJob {
	return &TickJob{game: g}
}

func (j *TickJob) Name() string { return JobNameTick }

func (j *TickJob) Process(ctx context.Context) error {
	j.game.Tick(ctx)
	return nil
}

// AutoSaveJob writes the main save slot
type AutoSaveJob struct {
	saver Saver
}

// NewAutoSaveJob creates an auto-save job
func NewAutoSaveJob(s Saver) *AutoSaveJob {
	return &AutoSaveJob{saver: s}
}

func (j *AutoSaveJob) Name() string { return JobNameAutoSave }

func (j *AutoSaveJob) Process(ctx context.Context) error {
	if ra, ok := j.saver.(RecoveryAware); ok && ra.RecoveryPending() {
		logger.FromContext(ctx).Debug(LogMsgAutoSaveSkipped)
		return nil
	}
	if err := j.saver.Save(ctx); err != nil {
		logger.FromContext(ctx).Warn(LogMsgAutoSaveFailed, "error", err)
		return err
	}
	return nil
}

// ProgressBroadcastJob sends tile progress to stream clients
type ProgressBroadcastJob struct {
	source    ProgressSource
	hub       Broadcaster
	eventType string
}

// NewProgressBroadcastJob creates a progress job publishing eventType frames
func NewProgressBroadcastJob(source ProgressSource, hub Broadcaster, eventType string) *ProgressBroadcastJob {
	return &ProgressBroadcastJob{source: source, hub: hub, eventType: eventType}
}

func (j *ProgressBroadcastJob) Name() string { return JobNameProgress }

// Process skips rendering when nobody is listening
func (j *ProgressBroadcastJob) Process(_ context.Context) error {
	if j.hub.ClientCount() == 0 {
		return nil
	}
	j.hub.Broadcast(j.eventType, j.source.Progress())
	return nil
}
