package bootstrap

import (
	"github.com/osse101/idlefarm/internal/config"
	"github.com/osse101/idlefarm/internal/logger"
	"github.com/osse101/idlefarm/internal/metrics"
	"github.com/osse101/idlefarm/internal/scheduler"
	"github.com/osse101/idlefarm/internal/sse"
	"github.com/osse101/idlefarm/internal/worker"
)

// BackgroundJobs owns the worker pool and the tickers feeding it
type BackgroundJobs struct {
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
}

// StartBackgroundJobs schedules the tick, auto-save and progress jobs
func StartBackgroundJobs(cfg *config.Config, session *Session, hub worker.Broadcaster) *BackgroundJobs {
	pool := worker.NewPool(cfg.Workers, cfg.JobQueueSize, worker.WithObserver(metrics.ObserveJob))
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.TickInterval, worker.NewTickJob(session.Game))
	sched.Schedule(cfg.AutoSaveInterval, worker.NewAutoSaveJob(session.Saves))
	if hub != nil {
		sched.Schedule(cfg.ProgressInterval, worker.NewProgressBroadcastJob(session.Game, hub, sse.EventTypeProgress))
	}

	logger.Info(LogMsgBackgroundJobsStarted,
		"workers", cfg.Workers,
		"tick_interval", cfg.TickInterval,
		"autosave_interval", cfg.AutoSaveInterval,
		"progress_interval", cfg.ProgressInterval)

	return &BackgroundJobs{Pool: pool, Scheduler: sched}
}

// Stop halts the tickers, then drains the pool
func (b *BackgroundJobs) Stop() {
	b.Scheduler.Stop()
	b.Pool.Stop()
}
