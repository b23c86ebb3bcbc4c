package session

// Error messages
const (
	ErrMsgStartSessionFailed      = "failed to start session: %w"
	ErrMsgEndSessionFailed        = "failed to end session: %w"
	ErrMsgCreateSnapshotFailed    = "failed to create snapshot: %w"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgEncodeCharacterFailed   = "failed to encode character: %w"
	ErrMsgListSessionsFailed      = "failed to list sessions: %w"
	ErrMsgGetSessionFailed        = "failed to get session: %w"
)

// Log messages
const (
	LogMsgSessionStarted   = "Session started"
	LogMsgSessionEnded     = "Session ended"
	LogMsgSnapshotCreated  = "Snapshot created"
	LogMsgBeginTxFailed    = "Failed to begin transaction"
	LogMsgCommitTxFailed   = "Failed to commit transaction"
	LogMsgStartRolledBack  = "Session start rolled back"
	LogMsgEndRolledBack    = "Session end rolled back"
	LogMsgSnapshotFromData = "Storing client supplied snapshot"
)

// DefaultSessionNamePrefix precedes the start time in generated names.
const DefaultSessionNamePrefix = "Session "

// snapshotIDKey is the aggregate key forced to the character id when a
// client supplies the snapshot body.
const snapshotIDKey = "id"
