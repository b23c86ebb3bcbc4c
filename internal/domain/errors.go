package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Auth errors
	ErrMsgUnauthenticated     = "not logged in"
	ErrMsgForbidden           = "no permission for this character"
	ErrMsgAdminRequired       = "only admins may perform this action"
	ErrMsgInvalidCredentials  = "invalid credentials"
	ErrMsgMissingCredentials  = "username and password required"
	ErrMsgUsernameTaken       = "user already exists"
	ErrMsgUserNotFound        = "user not found"
	ErrMsgAuthSessionNotFound = "auth session not found"
	ErrMsgInvalidSessionToken = "invalid session token"

	// Character errors
	ErrMsgCharacterNotFound = "character not found"
	ErrMsgVersionConflict   = "character was modified by another request"

	// Item errors
	ErrMsgItemNameMissing  = "item name missing"
	ErrMsgItemNotFound     = "item not found"
	ErrMsgSkillNameMissing = "skill name missing"

	// Session errors
	ErrMsgSessionNotFound      = "session not found or already ended"
	ErrMsgSessionAlreadyActive = "a session is already active for this character"
	ErrMsgSnapshotNotFound     = "snapshot not found"

	// Input errors
	ErrMsgInvalidPayload = "invalid payload"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Auth errors
	ErrUnauthenticated     = errors.New(ErrMsgUnauthenticated)
	ErrForbidden           = errors.New(ErrMsgForbidden)
	ErrAdminRequired       = errors.New(ErrMsgAdminRequired)
	ErrInvalidCredentials  = errors.New(ErrMsgInvalidCredentials)
	ErrMissingCredentials  = errors.New(ErrMsgMissingCredentials)
	ErrUsernameTaken       = errors.New(ErrMsgUsernameTaken)
	ErrUserNotFound        = errors.New(ErrMsgUserNotFound)
	ErrAuthSessionNotFound = errors.New(ErrMsgAuthSessionNotFound)
	ErrInvalidSessionToken = errors.New(ErrMsgInvalidSessionToken)

	// Character errors
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrVersionConflict   = errors.New(ErrMsgVersionConflict)

	// Item errors
	ErrItemNameMissing  = errors.New(ErrMsgItemNameMissing)
	ErrItemNotFound     = errors.New(ErrMsgItemNotFound)
	ErrSkillNameMissing = errors.New(ErrMsgSkillNameMissing)

	// Session errors
	ErrSessionNotFound      = errors.New(ErrMsgSessionNotFound)
	ErrSessionAlreadyActive = errors.New(ErrMsgSessionAlreadyActive)
	ErrSnapshotNotFound     = errors.New(ErrMsgSnapshotNotFound)

	// Validation errors
	ErrInvalidPayload = errors.New(ErrMsgInvalidPayload)

	// Database errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
