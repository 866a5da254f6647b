// Package worker runs the game's background jobs: the ready-state tick,
// periodic auto-save and progress broadcasts.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/osse101/idlefarm/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// Named jobs report their name to logs and the observer
type Named interface {
	Name() string
}

// Observer is told about every finished job
type Observer func(name string, elapsed time.Duration, err error)

// Pool represents a worker pool
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once

	timeout  time.Duration
	observer Observer
}

// PoolOption configures a Pool
type PoolOption func(*Pool)

// WithJobTimeout sets the per-job context deadline
func WithJobTimeout(d time.Duration) PoolOption {
	return func(p *Pool) { p.timeout = d }
}

// WithObserver installs a hook for job metrics
func WithObserver(fn Observer) PoolOption {
	return func(p *Pool) { p.observer = fn }
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int, opts ...PoolOption) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
		timeout:  DefaultJobTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			return
		}
	}
}

func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	name := JobName(job)
	start := time.Now()
	err := job.Process(ctx)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		logger.FromContext(ctx).Warn(LogMsgJobTimeoutExceeded, "job", name, "timeout", p.timeout)
	case err != nil:
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "job", name, "error", err)
	}
	if p.observer != nil {
		p.observer(name, elapsed, err)
	}
}

// Enqueue adds a job to the queue, blocking while it is full. Returns false
// once the pool is stopped.
func (p *Pool) Enqueue(job Job) bool {
	select {
	case p.jobQueue <- job:
		return true
	case <-p.quit:
		return false
	}
}

// TryEnqueue adds a job only if there is room in the queue
func (p *Pool) TryEnqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}

	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// Stop stops the workers and waits for them to finish. Queued jobs that
// have not started are dropped.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
		p.wg.Wait()
		logger.Debug(LogMsgPoolStopped, "workers", p.workers)
	})
}

// JobName returns the job's name, or "job" for anonymous jobs
func JobName(job Job) string {
	if n, ok := job.(Named); ok {
		return n.Name()
	}
	return "job"
}
