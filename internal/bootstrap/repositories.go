package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devaliuz/Epic-Charaktersheet/internal/database/postgres"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Characters *postgres.CharacterRepository
	Sessions   *postgres.SessionRepository
	Users      *postgres.UserRepository
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Characters: postgres.NewCharacterRepository(dbPool),
		Sessions:   postgres.NewSessionRepository(dbPool),
		Users:      postgres.NewUserRepository(dbPool),
	}
}
