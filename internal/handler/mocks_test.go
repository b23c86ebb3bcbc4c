package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devaliuz/Epic-Charaktersheet/internal/auth"
	"github.com/devaliuz/Epic-Charaktersheet/internal/character"
	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
)

// MockCharacterService mocks character.Service
type MockCharacterService struct {
	mock.Mock
}

func (m *MockCharacterService) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Character, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterService) List(ctx context.Context, actor domain.Actor) ([]domain.CharacterSummary, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CharacterSummary), args.Error(1)
}

func (m *MockCharacterService) Create(ctx context.Context, actor domain.Actor, in domain.CharacterInput) (int64, error) {
	args := m.Called(ctx, actor, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCharacterService) Update(ctx context.Context, actor domain.Actor, id int64, in domain.CharacterInput) error {
	args := m.Called(ctx, actor, id, in)
	return args.Error(0)
}

func (m *MockCharacterService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockCharacterService) AuditItems(ctx context.Context, actor domain.Actor, characterID int64) (*character.AuditReport, error) {
	args := m.Called(ctx, actor, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*character.AuditReport), args.Error(1)
}

// MockSessionService mocks session.Service
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Start(ctx context.Context, actor domain.Actor, characterID int64, name string) (int64, error) {
	args := m.Called(ctx, actor, characterID, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionService) End(ctx context.Context, actor domain.Actor, sessionID int64, notes *string) error {
	args := m.Called(ctx, actor, sessionID, notes)
	return args.Error(0)
}

func (m *MockSessionService) CreateManualSnapshot(ctx context.Context, actor domain.Actor, characterID int64, data json.RawMessage) (int64, error) {
	args := m.Called(ctx, actor, characterID, data)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionService) GetSnapshot(ctx context.Context, actor domain.Actor, snapshotID int64) (*domain.Snapshot, error) {
	args := m.Called(ctx, actor, snapshotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockSessionService) LatestSnapshot(ctx context.Context, actor domain.Actor, characterID int64) (*domain.Snapshot, error) {
	args := m.Called(ctx, actor, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockSessionService) List(ctx context.Context, actor domain.Actor, characterID int64) ([]domain.SessionListEntry, error) {
	args := m.Called(ctx, actor, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SessionListEntry), args.Error(1)
}

func (m *MockSessionService) Active(ctx context.Context, actor domain.Actor, characterID int64) (*domain.ActiveSession, error) {
	args := m.Called(ctx, actor, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActiveSession), args.Error(1)
}

// MockAuthService mocks auth.Service
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*auth.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) Register(ctx context.Context, actor domain.Actor, username, password, role string) (int64, error) {
	args := m.Called(ctx, actor, username, password, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuthService) Resolve(ctx context.Context, token string) domain.Actor {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Actor)
}

func (m *MockAuthService) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	args := m.Called(ctx, username, password)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthService) SweepExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var (
	testOwner = domain.Actor{UserID: 7, Username: "mira", Role: domain.RoleUser}
	testAdmin = domain.Actor{UserID: 1, Username: "admin", Role: domain.RoleAdmin}
)

// newRequest builds a request carrying the given actor. An empty body
// string sends no body.
func newRequest(method, target, body string, actor domain.Actor) *http.Request {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	return req.WithContext(auth.WithActor(req.Context(), actor))
}

// withURLParam sets a chi route parameter as the router would.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}
