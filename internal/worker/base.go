package worker

import (
	"context"
	"sync"

	"github.com/devaliuz/Epic-Charaktersheet/internal/logger"
)

// BaseWorker provides the shutdown handshake shared by background workers
type BaseWorker struct {
	shutdown chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

func (w *BaseWorker) init() {
	if w.shutdown == nil {
		w.shutdown = make(chan struct{})
	}
}

func (w *BaseWorker) shutdownInternal(ctx context.Context, workerName string) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShuttingDown, "worker", workerName)

	w.once.Do(func() { close(w.shutdown) })

	// Wait for in-flight runs
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgShutdownComplete, "worker", workerName)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgShutdownTimeout, "worker", workerName)
		return ctx.Err()
	}
}
