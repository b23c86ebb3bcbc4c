package worker

import "time"

// DefaultSweepInterval is used when the configured interval is not positive.
const DefaultSweepInterval = 15 * time.Minute

// ============================================================================
// Log Messages - Lifecycle
// ============================================================================

const (
	LogMsgShuttingDown     = "Shutting down worker"
	LogMsgShutdownComplete = "Worker shutdown complete"
	LogMsgShutdownTimeout  = "Worker shutdown timeout"
)

// ============================================================================
// Log Messages - Session Sweeper
// ============================================================================

const (
	LogMsgSweeperStarting = "Starting auth session sweeper"
	LogMsgSweepFailed     = "Auth session sweep failed"
)

const sessionSweeperName = "auth session sweeper"
