package repository

import (
	"context"
	"time"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
)

// User defines the interface for user persistence
type User interface {
	CountUsers(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// AuthSession defines the interface for login session persistence
type AuthSession interface {
	CreateAuthSession(ctx context.Context, session domain.AuthSession) error
	GetAuthSession(ctx context.Context, id string) (*domain.AuthSession, error)
	DeleteAuthSession(ctx context.Context, id string) error
	DeleteExpiredAuthSessions(ctx context.Context, now time.Time) (int64, error)
}

// Auth is the persistence used by the auth service
type Auth interface {
	User
	AuthSession
}
