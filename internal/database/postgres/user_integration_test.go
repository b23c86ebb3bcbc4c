package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
)

func TestUserRepository_Integration(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)

	u := createTestUser(t, repo, "alice")
	assert.NotZero(t, u.ID)

	t.Run("duplicate username", func(t *testing.T) {
		err := repo.CreateUser(ctx, &domain.User{Username: "alice", PasswordHash: "x", Role: domain.RoleUser})
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	t.Run("lookup", func(t *testing.T) {
		byName, err := repo.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byName.ID)
		assert.Equal(t, "hash", byName.PasswordHash)

		_, err = repo.GetUserByID(ctx, 999999)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		n, err := repo.CountUsers(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(1))
	})

	t.Run("auth sessions", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Microsecond)
		live := domain.AuthSession{ID: uuid.NewString(), UserID: u.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
		stale := domain.AuthSession{ID: uuid.NewString(), UserID: u.ID, CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
		require.NoError(t, repo.CreateAuthSession(ctx, live))
		require.NoError(t, repo.CreateAuthSession(ctx, stale))

		got, err := repo.GetAuthSession(ctx, live.ID)
		require.NoError(t, err)
		assert.Equal(t, live.ID, got.ID)
		assert.True(t, live.ExpiresAt.Equal(got.ExpiresAt))

		n, err := repo.DeleteExpiredAuthSessions(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, err = repo.GetAuthSession(ctx, stale.ID)
		assert.ErrorIs(t, err, domain.ErrAuthSessionNotFound)

		require.NoError(t, repo.DeleteAuthSession(ctx, live.ID))
		_, err = repo.GetAuthSession(ctx, live.ID)
		assert.ErrorIs(t, err, domain.ErrAuthSessionNotFound)
	})

	t.Run("malformed session id", func(t *testing.T) {
		_, err := repo.GetAuthSession(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrAuthSessionNotFound)
		assert.NoError(t, repo.DeleteAuthSession(ctx, "not-a-uuid"))
		assert.Error(t, repo.CreateAuthSession(ctx, domain.AuthSession{ID: "not-a-uuid", UserID: u.ID}))
	})
}
