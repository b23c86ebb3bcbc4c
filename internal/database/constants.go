package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
)

// Migration Constants
const (
	MigrationsDir     = "migrations"
	MigrationsDialect = "postgres"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString      = "failed to parse connection string"
	ErrMsgFailedToCreatePool           = "failed to create connection pool"
	ErrMsgFailedToPingDatabase         = "failed to ping database"
	ErrMsgFailedToSetDialect           = "failed to set migration dialect"
	ErrMsgFailedToApplyMigrations      = "failed to apply migrations"
	ErrMsgFailedToRollBackMigration    = "failed to roll back migration"
	ErrMsgFailedToReadMigrationVersion = "failed to read migration version"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)
