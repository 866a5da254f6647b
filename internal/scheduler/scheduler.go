// Package scheduler enqueues recurring jobs onto the worker pool.
package scheduler

import (
	"sync"
	"time"

	"github.com/osse101/idlefarm/internal/logger"
	"github.com/osse101/idlefarm/internal/worker"
)

// Enqueuer accepts jobs without blocking
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule runs job every interval until Stop. A run is skipped when the
// pool queue is full.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	if interval <= 0 {
		logger.Warn(LogMsgInvalidInterval, "job", worker.JobName(job), "interval", interval)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !s.pool.TryEnqueue(job) {
					logger.Debug(worker.LogMsgJobQueueFull, "job", worker.JobName(job))
				}
			case <-s.quit:
				return
			}
		}
	}()
	logger.Debug(LogMsgJobScheduled, "job", worker.JobName(job), "interval", interval)
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		s.wg.Wait()
	})
}
