package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/event"
	"github.com/devaliuz/Epic-Charaktersheet/internal/testing/memstore"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fixture struct {
	store  *memstore.Store
	svc    *service
	clock  time.Time
	events []event.Type
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: memstore.New(),
		clock: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.store.Now = func() time.Time { return f.clock }

	bus := event.NewMemoryBus()
	for _, typ := range []event.Type{event.UserLoggedIn, event.UserLoginFailed, event.UserLoggedOut, event.UserRegistered, event.SessionsSwept} {
		bus.Subscribe(typ, func(ctx context.Context, evt event.Event) error {
			f.events = append(f.events, evt.Type)
			return nil
		})
	}

	f.svc = NewService(f.store, bus, Options{
		Secret:     []byte(testSecret),
		SessionTTL: time.Hour,
		CacheTTL:   time.Minute,
		CacheSize:  16,
	}).(*service)
	f.svc.hashCost = bcrypt.MinCost
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) addUser(t *testing.T, username, password string, role domain.Role) domain.User {
	t.Helper()
	user, err := f.svc.newUser(username, password, role)
	require.NoError(t, err)
	require.NoError(t, f.store.CreateUser(context.Background(), user))
	return *user
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, "mira", "s3cret", domain.RoleUser)

	res, err := f.svc.Login(context.Background(), "mira", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, domain.ActorFromUser(user), res.User)
	assert.Equal(t, f.clock.Add(time.Hour), res.ExpiresAt)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, 1, f.store.AuthSessionCount())
	assert.Equal(t, []event.Type{event.UserLoggedIn}, f.events)

	claims, err := f.svc.signer.parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.userID())
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.NotEmpty(t, claims.SessionID)
}

func TestLogin_Failures(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "mira", "s3cret", domain.RoleUser)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"missing username", "", "s3cret", domain.ErrMissingCredentials},
		{"missing password", "mira", "", domain.ErrMissingCredentials},
		{"unknown user", "nobody", "s3cret", domain.ErrInvalidCredentials},
		{"wrong password", "mira", "guess", domain.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.svc.Login(context.Background(), tt.username, tt.password)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, 0, f.store.AuthSessionCount())
	assert.Equal(t, []event.Type{event.UserLoginFailed, event.UserLoginFailed}, f.events)
}

func TestResolve_RoundTrip(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, "mira", "s3cret", domain.RoleAdmin)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, "mira", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, domain.ActorFromUser(user), f.svc.Resolve(ctx, res.Token))

	// A cold cache falls back to the database.
	f.svc.cache.Invalidate(mustClaims(t, f, res.Token).SessionID)
	assert.Equal(t, domain.ActorFromUser(user), f.svc.Resolve(ctx, res.Token))
	assert.Equal(t, 1, f.svc.cache.Len())
}

func TestResolve_RejectsBadTokens(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "mira", "s3cret", domain.RoleUser)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, "mira", "s3cret")
	require.NoError(t, err)

	forged := NewService(f.store, nil, Options{Secret: []byte("another-secret-another-secret-xx")}).(*service)
	forged.now = f.svc.now
	claims := mustClaims(t, f, res.Token)
	forgedToken, err := forged.signer.sign(domain.AuthSession{
		ID:        claims.SessionID,
		UserID:    claims.userID(),
		CreatedAt: f.clock,
		ExpiresAt: f.clock.Add(time.Hour),
	}, domain.RoleAdmin)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sid": claims.SessionID,
		"sub": claims.Subject,
		"exp": f.clock.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong secret", forgedToken},
		{"alg none", noneToken},
		{"tampered", tamper(res.Token)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, f.svc.Resolve(ctx, tt.token).Authenticated())
		})
	}
}

func TestResolve_ExpiredToken(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "mira", "s3cret", domain.RoleUser)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, "mira", "s3cret")
	require.NoError(t, err)

	f.clock = f.clock.Add(2 * time.Hour)
	assert.False(t, f.svc.Resolve(ctx, res.Token).Authenticated())
}

func TestResolve_CachedActorExpiresWithSessionRow(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, "mira", "s3cret", domain.RoleUser)
	ctx := context.Background()

	session := domain.AuthSession{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: f.clock,
		ExpiresAt: f.clock.Add(10 * time.Minute),
	}
	require.NoError(t, f.store.CreateAuthSession(ctx, session))
	// The token outlives the row it points at.
	token, err := f.svc.signer.sign(domain.AuthSession{
		ID:        session.ID,
		UserID:    user.ID,
		CreatedAt: f.clock,
		ExpiresAt: f.clock.Add(time.Hour),
	}, user.Role)
	require.NoError(t, err)

	require.True(t, f.svc.Resolve(ctx, token).Authenticated())
	require.Equal(t, 1, f.svc.cache.Len())

	f.clock = f.clock.Add(15 * time.Minute)
	assert.False(t, f.svc.Resolve(ctx, token).Authenticated())
	assert.Equal(t, 0, f.svc.cache.Len())
}

func TestResolve_SessionRowGone(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "mira", "s3cret", domain.RoleUser)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, "mira", "s3cret")
	require.NoError(t, err)
	sid := mustClaims(t, f, res.Token).SessionID

	require.NoError(t, f.store.DeleteAuthSession(ctx, sid))
	f.svc.cache.Invalidate(sid)

	assert.False(t, f.svc.Resolve(ctx, res.Token).Authenticated())
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "mira", "s3cret", domain.RoleUser)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, "mira", "s3cret")
	require.NoError(t, err)
	require.True(t, f.svc.Resolve(ctx, res.Token).Authenticated())

	require.NoError(t, f.svc.Logout(ctx, res.Token))

	assert.False(t, f.svc.Resolve(ctx, res.Token).Authenticated())
	assert.Equal(t, 0, f.store.AuthSessionCount())
	assert.Contains(t, f.events, event.UserLoggedOut)

	assert.NoError(t, f.svc.Logout(ctx, res.Token), "logging out twice is harmless")
	assert.NoError(t, f.svc.Logout(ctx, ""))
	assert.NoError(t, f.svc.Logout(ctx, "garbage"))
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	admin := domain.ActorFromUser(f.addUser(t, "root", "pw", domain.RoleAdmin))
	plain := domain.ActorFromUser(f.addUser(t, "mira", "pw", domain.RoleUser))
	ctx := context.Background()

	t.Run("admin creates user with fallback role", func(t *testing.T) {
		id, err := f.svc.Register(ctx, admin, "tobi", "pw", "wizard")
		require.NoError(t, err)
		u, err := f.store.GetUserByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "tobi", u.Username)
		assert.Equal(t, domain.RoleUser, u.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pw")))
	})

	t.Run("admin creates admin", func(t *testing.T) {
		id, err := f.svc.Register(ctx, admin, "dm", "pw", "admin")
		require.NoError(t, err)
		u, err := f.store.GetUserByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, u.Role)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := f.svc.Register(ctx, admin, "mira", "pw", "user")
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := f.svc.Register(ctx, admin, "", "pw", "user")
		assert.ErrorIs(t, err, domain.ErrMissingCredentials)
	})

	t.Run("non admin denied", func(t *testing.T) {
		_, err := f.svc.Register(ctx, plain, "eve", "pw", "admin")
		assert.ErrorIs(t, err, domain.ErrAdminRequired)
		_, err = f.svc.Register(ctx, domain.Actor{}, "eve", "pw", "admin")
		assert.ErrorIs(t, err, domain.ErrAdminRequired)
	})
}

func TestEnsureDefaultAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.EnsureDefaultAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	res, err := f.svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, res.User.IsAdmin())

	created, err = f.svc.EnsureDefaultAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.False(t, created)
	n, err := f.store.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSweepExpired(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "mira", "s3cret", domain.RoleUser)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, "mira", "s3cret")
	require.NoError(t, err)
	f.clock = f.clock.Add(30 * time.Minute)
	_, err = f.svc.Login(ctx, "mira", "s3cret")
	require.NoError(t, err)

	f.clock = f.clock.Add(45 * time.Minute)
	n, err := f.svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, f.store.AuthSessionCount())
	assert.Contains(t, f.events, event.SessionsSwept)
}

func TestActorContext(t *testing.T) {
	actor := domain.Actor{UserID: 4, Username: "mira", Role: domain.RoleUser}

	assert.Equal(t, actor, ActorFromContext(WithActor(context.Background(), actor)))
	assert.False(t, ActorFromContext(context.Background()).Authenticated())
}

// tamper swaps one character in the middle of the signature.
func tamper(token string) string {
	b := []byte(token)
	i := len(b) - 10
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}

func mustClaims(t *testing.T, f *fixture, token string) *sessionClaims {
	t.Helper()
	require.Equal(t, 3, len(strings.Split(token, ".")))
	claims, err := f.svc.signer.parse(token)
	require.NoError(t, err)
	return claims
}
