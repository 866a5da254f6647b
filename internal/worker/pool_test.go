package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/idlefarm/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
	err      error
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return j.err
}

type blockingJob struct {
	started chan struct{}
	release chan struct{}
}

func (j *blockingJob) Name() string { return "blocking" }

func (j *blockingJob) Process(ctx context.Context) error {
	close(j.started)
	select {
	case <-j.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestPool(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()

	job := &testJob{executed: &executed}
	require.True(t, pool.Enqueue(job))
	require.True(t, pool.Enqueue(job))

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&executed) == TestExpectedJobCount
	}, time.Second, 5*time.Millisecond)

	pool.Stop()
	checker.Check(0)
}

func TestPool_ObserverSeesNamesAndErrors(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]error{}

	pool := NewPool(1, TestQueueSize, WithObserver(func(name string, _ time.Duration, err error) {
		mu.Lock()
		defer mu.Unlock()
		seen[name] = err
	}))
	pool.Start()
	defer pool.Stop()

	var executed int32
	boom := errors.New("boom")
	pool.Enqueue(&testJob{executed: &executed, err: boom})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.ErrorIs(t, seen["job"], boom)
}

func TestPool_JobTimeout(t *testing.T) {
	errs := make(chan error, 1)
	pool := NewPool(1, 1, WithJobTimeout(20*time.Millisecond), WithObserver(func(_ string, _ time.Duration, err error) {
		errs <- err
	}))
	pool.Start()
	defer pool.Stop()

	pool.Enqueue(&blockingJob{started: make(chan struct{}), release: make(chan struct{})})

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("job never timed out")
	}
}

func TestPool_TryEnqueueWhenFull(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()

	job := &blockingJob{started: make(chan struct{}), release: make(chan struct{})}
	require.True(t, pool.TryEnqueue(job))
	<-job.started

	var executed int32
	assert.True(t, pool.TryEnqueue(&testJob{executed: &executed}))
	assert.False(t, pool.TryEnqueue(&testJob{executed: &executed}))

	close(job.release)
	pool.Stop()
}

func TestPool_StoppedRejectsJobs(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()
	pool.Stop()
	pool.Stop()

	var executed int32
	assert.False(t, pool.Enqueue(&testJob{executed: &executed}))
	assert.False(t, pool.TryEnqueue(&testJob{executed: &executed}))
}

func TestNewPool_ClampsWorkers(t *testing.T) {
	pool := NewPool(0, 1)
	assert.Equal(t, 1, pool.workers)
}
