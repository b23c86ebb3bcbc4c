package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/event"
	"github.com/devaliuz/Epic-Charaktersheet/internal/logger"
	"github.com/devaliuz/Epic-Charaktersheet/internal/repository"
)

// Options configures token signing and the session cache.
type Options struct {
	Secret     []byte
	SessionTTL time.Duration
	CacheTTL   time.Duration
	CacheSize  int
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.Actor
}

// Service defines the interface for authentication
type Service interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Register(ctx context.Context, actor domain.Actor, username, password, role string) (int64, error)
	Resolve(ctx context.Context, token string) domain.Actor
	EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error)
	SweepExpired(ctx context.Context) (int64, error)
}

type service struct {
	repo     repository.Auth
	bus      event.Bus
	signer   tokenSigner
	cache    *sessionCache
	ttl      time.Duration
	hashCost int
	now      func() time.Time
}

// NewService creates a new auth service. bus may be nil.
func NewService(repo repository.Auth, bus event.Bus, opts Options) Service {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	s := &service{
		repo:     repo,
		bus:      bus,
		cache:    newSessionCache(opts.CacheSize, opts.CacheTTL),
		ttl:      opts.SessionTTL,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
	s.signer = tokenSigner{secret: opts.Secret, now: s.clock}
	return s
}

func (s *service) clock() time.Time {
	return s.now()
}

// Login checks the credentials and opens a server-side session.
func (s *service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	log := logger.FromContext(ctx)
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf(ErrMsgLookupUserFailed, err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		log.Warn(LogMsgLoginFailed, "username", username)
		event.Emit(ctx, s.bus, event.NewAuthEvent(event.UserLoginFailed, event.AuthPayloadV1{Username: username}))
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	session := domain.AuthSession{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.CreateAuthSession(ctx, session); err != nil {
		return nil, fmt.Errorf(ErrMsgCreateSessionFailed, err)
	}
	token, err := s.signer.sign(session, user.Role)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSignTokenFailed, err)
	}

	actor := domain.ActorFromUser(*user)
	s.cache.Set(session, actor)

	log.Info(LogMsgLoginSucceeded, "user_id", user.ID, "username", user.Username)
	event.Emit(ctx, s.bus, event.NewAuthEvent(event.UserLoggedIn, event.AuthPayloadV1{UserID: user.ID, Username: user.Username}))
	return &LoginResult{Token: token, ExpiresAt: session.ExpiresAt, User: actor}, nil
}

// Logout ends the session the token points at. Unknown or invalid tokens
// are ignored.
func (s *service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.signer.parse(token)
	if err != nil {
		return nil
	}

	s.cache.Invalidate(claims.SessionID)
	if err := s.repo.DeleteAuthSession(ctx, claims.SessionID); err != nil {
		return fmt.Errorf(ErrMsgDeleteSessionFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgLoggedOut, "user_id", claims.userID())
	event.Emit(ctx, s.bus, event.NewAuthEvent(event.UserLoggedOut, event.AuthPayloadV1{UserID: claims.userID()}))
	return nil
}

// Register creates an account. Only admins may register users; an unknown
// role falls back to "user".
func (s *service) Register(ctx context.Context, actor domain.Actor, username, password, role string) (int64, error) {
	log := logger.FromContext(ctx)
	if !actor.IsAdmin() {
		log.Warn(LogMsgRegisterDenied, "actor_id", actor.UserID)
		return 0, domain.ErrAdminRequired
	}
	if username == "" || password == "" {
		return 0, domain.ErrMissingCredentials
	}

	existing, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return 0, fmt.Errorf(ErrMsgLookupUserFailed, err)
	}
	if existing != nil {
		return 0, domain.ErrUsernameTaken
	}

	user, err := s.newUser(username, password, domain.ParseRole(role))
	if err != nil {
		return 0, err
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return 0, err
		}
		return 0, fmt.Errorf(ErrMsgCreateUserFailed, err)
	}

	log.Info(LogMsgUserRegistered, "user_id", user.ID, "username", user.Username, "role", user.Role)
	event.Emit(ctx, s.bus, event.NewAuthEvent(event.UserRegistered, event.AuthPayloadV1{UserID: user.ID, Username: user.Username}))
	return user.ID, nil
}

// Resolve maps a session token to its actor. Any failure yields the
// anonymous actor.
func (s *service) Resolve(ctx context.Context, token string) domain.Actor {
	if token == "" {
		return domain.Actor{}
	}
	log := logger.FromContext(ctx)

	claims, err := s.signer.parse(token)
	if err != nil {
		log.Debug(LogMsgTokenRejected, "error", err)
		return domain.Actor{}
	}
	now := s.now()
	if actor, ok := s.cache.Get(claims.SessionID, now); ok {
		return actor
	}

	session, err := s.repo.GetAuthSession(ctx, claims.SessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrAuthSessionNotFound) {
			log.Warn(LogMsgSessionLookupFailed, "error", err)
		}
		return domain.Actor{}
	}
	if session.Expired(now) || session.UserID != claims.userID() {
		return domain.Actor{}
	}

	user, err := s.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			log.Warn(LogMsgSessionLookupFailed, "error", err)
		}
		return domain.Actor{}
	}

	actor := domain.ActorFromUser(*user)
	s.cache.Set(*session, actor)
	return actor
}

// EnsureDefaultAdmin creates the bootstrap admin when there are no users
// at all. It reports whether an account was created.
func (s *service) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	n, err := s.repo.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf(ErrMsgCountUsersFailed, err)
	}
	if n > 0 {
		return false, nil
	}

	user, err := s.newUser(username, password, domain.RoleAdmin)
	if err != nil {
		return false, err
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return false, fmt.Errorf(ErrMsgCreateUserFailed, err)
	}
	logger.FromContext(ctx).Warn(LogMsgDefaultAdminCreated, "username", username)
	return true, nil
}

// SweepExpired deletes auth sessions that are past their expiry.
func (s *service) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpiredAuthSessions(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf(ErrMsgSweepSessionsFailed, err)
	}
	if n > 0 {
		logger.FromContext(ctx).Info(LogMsgSessionsSwept, "count", n)
		event.Emit(ctx, s.bus, event.NewAuthEvent(event.SessionsSwept, event.AuthPayloadV1{Count: n}))
	}
	return n, nil
}

func (s *service) newUser(username, password string, role domain.Role) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgHashPasswordFailed, err)
	}
	return &domain.User{Username: username, PasswordHash: string(hash), Role: role}, nil
}
