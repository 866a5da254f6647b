package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/idlefarm/internal/game"
)

type mockTicker struct{ mock.Mock }

func (m *mockTicker) Tick(ctx context.Context) int {
	return m.Called(ctx).Int(0)
}

type mockSaver struct{ mock.Mock }

func (m *mockSaver) Save(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockHub struct{ mock.Mock }

func (m *mockHub) Broadcast(eventType string, payload any) bool {
	return m.Called(eventType, payload).Bool(0)
}

func (m *mockHub) ClientCount() int {
	return m.Called().Int(0)
}

type staticProgress struct{ view game.ProgressView }

func (s staticProgress) Progress() game.ProgressView { return s.view }

func TestTickJob(t *testing.T) {
	ticker := &mockTicker{}
	ticker.On("Tick", mock.Anything).Return(3).Once()

	job := NewTickJob(ticker)
	assert.Equal(t, JobNameTick, JobName(job))
	assert.NoError(t, job.Process(context.Background()))
	ticker.AssertExpectations(t)
}

func TestAutoSaveJob(t *testing.T) {
	saver := &mockSaver{}
	saver.On("Save", mock.Anything).Return(nil).Once()
	assert.NoError(t, NewAutoSaveJob(saver).Process(context.Background()))

	boom := errors.New("disk full")
	saver.On("Save", mock.Anything).Return(boom).Once()
	assert.ErrorIs(t, NewAutoSaveJob(saver).Process(context.Background()), boom)

	saver.AssertExpectations(t)
}

type recoveringSaver struct {
	mockSaver
	pending bool
}

func (s *recoveringSaver) RecoveryPending() bool { return s.pending }

func TestAutoSaveJob_SkipsWhileRecoveryPending(t *testing.T) {
	saver := &recoveringSaver{pending: true}
	assert.NoError(t, NewAutoSaveJob(saver).Process(context.Background()))
	saver.AssertNotCalled(t, "Save", mock.Anything)

	saver.pending = false
	saver.On("Save", mock.Anything).Return(nil).Once()
	assert.NoError(t, NewAutoSaveJob(saver).Process(context.Background()))
	saver.AssertExpectations(t)
}

func TestProgressBroadcastJob(t *testing.T) {
	view := game.ProgressView{Farm: []game.TileView{{Index: 0}}}

	t.Run("no clients", func(t *testing.T) {
		hub := &mockHub{}
		hub.On("ClientCount").Return(0)

		assert.NoError(t, NewProgressBroadcastJob(staticProgress{view}, hub, "progress").Process(context.Background()))
		hub.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
	})

	t.Run("broadcasts", func(t *testing.T) {
		hub := &mockHub{}
		hub.On("ClientCount").Return(2)
		hub.On("Broadcast", "progress", view).Return(true).Once()

		job := NewProgressBroadcastJob(staticProgress{view}, hub, "progress")
		assert.Equal(t, JobNameProgress, JobName(job))
		assert.NoError(t, job.Process(context.Background()))
		hub.AssertExpectations(t)
	})
}
