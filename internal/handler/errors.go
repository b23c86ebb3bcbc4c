package handler

// Generic HTTP error messages for client responses.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgRequestTooLarge       = "Request body too large"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidIDParam    = "Invalid %s"

	// Character error messages
	ErrMsgIDRequired = "ID required"

	// Session error messages
	ErrMsgCharacterOrSnapshotRequired = "character_id or snapshot_id required"
	ErrMsgCharacterIDRequired         = "character_id required"
	ErrMsgSessionIDRequired           = "session_id required"

	// Auth error messages
	ErrMsgUnknownAction = "Unknown action"

	// Prefixes for unexpected failures; the underlying error text follows.
	ErrMsgStartSessionPrefix   = "Failed to start session"
	ErrMsgEndSessionPrefix     = "Failed to end session"
	ErrMsgCreateSnapshotPrefix = "Failed to create snapshot"
)

// Success messages for API responses
const (
	MsgCharacterCreated = "Character created successfully"
	MsgCharacterUpdated = "Character updated successfully"
	MsgCharacterDeleted = "Character deleted successfully"

	MsgSessionStarted  = "Session started"
	MsgSessionEnded    = "Session ended"
	MsgSnapshotCreated = "Snapshot created"
)

// Query parameter and action names
const (
	ParamID             = "id"
	ParamCharacterID    = "character_id"
	ParamSnapshotID     = "snapshot_id"
	ParamLatestSnapshot = "latest_snapshot"
	ParamActive         = "active"
	ParamAction         = "action"

	ActionLogin    = "login"
	ActionLogout   = "logout"
	ActionRegister = "register"
	ActionSnapshot = "snapshot"
)
