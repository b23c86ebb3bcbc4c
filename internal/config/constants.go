package config

// Environment names
const (
	EnvDev        = "dev"
	EnvTest       = "test"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// MinSessionSecretBytes is the shortest SESSION_SECRET accepted outside dev.
const MinSessionSecretBytes = 32

// Example values shipped in .env.example
const (
	DefaultBootstrapAdminPassword = "admin123"
	ExampleDBPassword             = "change_this_secure_password"
	ExampleSessionSecret          = "generate_with_openssl_rand_hex_32"
)

// devSessionSecret signs tokens in dev when SESSION_SECRET is unset.
const devSessionSecret = "dev-only-session-secret-change-me-now"

// Error messages
const (
	ErrMsgParseEnv             = "failed to parse environment: %w"
	ErrMsgInvalidPort          = "invalid PORT value: %d"
	ErrMsgSessionSecretMissing = "SESSION_SECRET must be set"
	ErrMsgSessionSecretShort   = "SESSION_SECRET must be at least %d bytes outside dev"
	ErrMsgInvalidEnvironment   = "invalid ENVIRONMENT %q"
	ErrMsgInvalidDBMaxConns    = "DB_MAX_CONNS must be positive"
	ErrMsgInvalidDuration      = "%s must be positive"
)
