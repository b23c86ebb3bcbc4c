package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devaliuz/Epic-Charaktersheet/internal/database/generated"
	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/repository"
)

var (
	_ repository.User        = (*UserRepository)(nil)
	_ repository.AuthSession = (*UserRepository)(nil)
)

// UserRepository implements repository.User and repository.AuthSession for PostgreSQL
type UserRepository struct {
	q *generated.Queries
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{q: generated.New(db)}
}

func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	n, err := r.q.CountUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountUsers, err)
	}
	return n, nil
}

// CreateUser inserts the user and fills in its id and creation time.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	row, err := r.q.CreateUser(ctx, generated.CreateUserParams{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertUser, err)
	}
	user.ID = row.ID
	user.CreatedAt = row.CreatedAt.Time
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	return mapUser(row, err)
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row, err := r.q.GetUserByUsername(ctx, username)
	return mapUser(row, err)
}

func mapUser(row generated.User, err error) (*domain.User, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}
	return &domain.User{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		Role:         domain.ParseRole(row.Role),
		CreatedAt:    row.CreatedAt.Time,
	}, nil
}

func (r *UserRepository) CreateAuthSession(ctx context.Context, s domain.AuthSession) error {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateAuthSession, err)
	}
	err = r.q.CreateAuthSession(ctx, generated.CreateAuthSessionParams{
		ID:        id,
		UserID:    s.UserID,
		CreatedAt: timeToPgtimetz(s.CreatedAt),
		ExpiresAt: timeToPgtimetz(s.ExpiresAt),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateAuthSession, err)
	}
	return nil
}

// GetAuthSession treats an id that is not a UUID as unknown.
func (r *UserRepository) GetAuthSession(ctx context.Context, id string) (*domain.AuthSession, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrAuthSessionNotFound
	}
	row, err := r.q.GetAuthSession(ctx, sid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAuthSessionNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAuthSession, err)
	}
	return &domain.AuthSession{
		ID:        row.ID.String(),
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt.Time,
		ExpiresAt: row.ExpiresAt.Time,
	}, nil
}

func (r *UserRepository) DeleteAuthSession(ctx context.Context, id string) error {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	if err := r.q.DeleteAuthSession(ctx, sid); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteAuthSession, err)
	}
	return nil
}

// DeleteExpiredAuthSessions removes sessions that expired at or before now.
func (r *UserRepository) DeleteExpiredAuthSessions(ctx context.Context, now time.Time) (int64, error) {
	n, err := r.q.DeleteExpiredAuthSessions(ctx, timeToPgtimetz(now))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToSweepAuthSessions, err)
	}
	return n, nil
}
