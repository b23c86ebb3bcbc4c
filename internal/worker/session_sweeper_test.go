package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSweeper struct {
	mock.Mock
	calls chan struct{}
}

func (m *MockSweeper) SweepExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	select {
	case m.calls <- struct{}{}:
	default:
	}
	return args.Get(0).(int64), args.Error(1)
}

func waitForCalls(t *testing.T, calls <-chan struct{}, n int) {
	t.Helper()
	timeout := time.After(time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-calls:
		case <-timeout:
			t.Fatalf("timeout waiting for sweep %d", i+1)
		}
	}
}

func TestSessionSweeper_RunsOnStartAndOnTick(t *testing.T) {
	sweeper := &MockSweeper{calls: make(chan struct{}, 10)}
	sweeper.On("SweepExpired", mock.Anything).Return(int64(2), nil)

	w := NewSessionSweeper(sweeper, 10*time.Millisecond)
	w.Start()
	waitForCalls(t, sweeper.calls, 3)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Shutdown(ctx))

	sweeper.AssertExpectations(t)
}

func TestSessionSweeper_KeepsRunningAfterErrors(t *testing.T) {
	sweeper := &MockSweeper{calls: make(chan struct{}, 10)}
	sweeper.On("SweepExpired", mock.Anything).Return(int64(0), errors.New("connection refused"))

	w := NewSessionSweeper(sweeper, 10*time.Millisecond)
	w.Start()
	waitForCalls(t, sweeper.calls, 2)

	require.NoError(t, w.Shutdown(context.Background()))
}

func TestSessionSweeper_ShutdownIsIdempotent(t *testing.T) {
	sweeper := &MockSweeper{calls: make(chan struct{}, 1)}
	sweeper.On("SweepExpired", mock.Anything).Return(int64(0), nil).Maybe()

	w := NewSessionSweeper(sweeper, time.Hour)
	w.Start()

	assert.NoError(t, w.Shutdown(context.Background()))
	assert.NoError(t, w.Shutdown(context.Background()))
}

func TestNewSessionSweeper_DefaultInterval(t *testing.T) {
	w := NewSessionSweeper(&MockSweeper{}, 0)

	assert.Equal(t, DefaultSweepInterval, w.interval)
}
