package auth

import "time"

// CookieName is the session cookie set on login.
const CookieName = "charsheet_session"

// Defaults used when Options leaves a field zero.
const (
	DefaultSessionTTL = 24 * time.Hour
	DefaultCacheTTL   = time.Minute
	DefaultCacheSize  = 1024
)

// Error message formats
const (
	ErrMsgHashPasswordFailed   = "failed to hash password: %w"
	ErrMsgCreateSessionFailed  = "failed to create auth session: %w"
	ErrMsgSignTokenFailed      = "failed to sign session token: %w"
	ErrMsgLookupUserFailed     = "failed to look up user: %w"
	ErrMsgCreateUserFailed     = "failed to create user: %w"
	ErrMsgDeleteSessionFailed  = "failed to delete auth session: %w"
	ErrMsgCountUsersFailed     = "failed to count users: %w"
	ErrMsgSweepSessionsFailed  = "failed to sweep auth sessions: %w"
	ErrMsgUnexpectedSigningAlg = "unexpected signing method %v"
)

// Log messages
const (
	LogMsgLoginSucceeded      = "User logged in"
	LogMsgLoginFailed         = "Login failed"
	LogMsgLoggedOut           = "User logged out"
	LogMsgUserRegistered      = "User registered"
	LogMsgRegisterDenied      = "Register denied: admin role required"
	LogMsgTokenRejected       = "Session token rejected"
	LogMsgSessionLookupFailed = "Auth session lookup failed"
	LogMsgDefaultAdminCreated = "Created default admin account, change its password after the first login"
	LogMsgSessionsSwept       = "Expired auth sessions removed"
)
