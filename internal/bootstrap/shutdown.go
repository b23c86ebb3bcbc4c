package bootstrap

import (
	"context"
	"log/slog"

	"github.com/devaliuz/Epic-Charaktersheet/internal/database"
	"github.com/devaliuz/Epic-Charaktersheet/internal/server"
	"github.com/devaliuz/Epic-Charaktersheet/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server         *server.Server
	SessionSweeper *worker.SessionSweeper
	DBPool         database.Pool
}

// GracefulShutdown stops the components in order:
// 1. HTTP server (stop accepting new requests, drain in-flight ones)
// 2. Background workers
// 3. Database pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.SessionSweeper != nil {
		if err := components.SessionSweeper.Shutdown(ctx); err != nil {
			slog.Error(LogMsgSweeperShutdownFail, "error", err)
		}
	}

	if components.DBPool != nil {
		slog.Info(LogMsgClosingDatabase)
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
