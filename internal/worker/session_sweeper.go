package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/devaliuz/Epic-Charaktersheet/internal/logger"
)

// Sweeper removes expired records and reports how many were deleted.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// SessionSweeper periodically deletes expired auth sessions
type SessionSweeper struct {
	BaseWorker
	sweeper  Sweeper
	interval time.Duration
}

// NewSessionSweeper creates a new session sweeper
func NewSessionSweeper(sweeper Sweeper, interval time.Duration) *SessionSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	w := &SessionSweeper{sweeper: sweeper, interval: interval}
	w.init()
	return w
}

// Start runs one sweep immediately and then one per interval until Shutdown.
func (w *SessionSweeper) Start() {
	slog.Info(LogMsgSweeperStarting, "interval", w.interval)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.sweep()
		for {
			select {
			case <-ticker.C:
				w.sweep()
			case <-w.shutdown:
				return
			}
		}
	}()
}

func (w *SessionSweeper) sweep() {
	ctx := context.Background()
	if _, err := w.sweeper.SweepExpired(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgSweepFailed, "error", err)
	}
}

// Shutdown stops the ticker and waits for a running sweep to finish
func (w *SessionSweeper) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx, sessionSweeperName)
}
