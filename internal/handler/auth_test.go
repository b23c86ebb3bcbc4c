package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devaliuz/Epic-Charaktersheet/internal/auth"
	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
)

func TestAuthHandler_HandleCurrent(t *testing.T) {
	h := NewAuthHandler(&MockAuthService{}, false)

	rec := httptest.NewRecorder()
	h.HandleCurrent(rec, newRequest(http.MethodGet, "/auth", "", testOwner))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7,"username":"mira","role":"user"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.HandleCurrent(rec, newRequest(http.MethodGet, "/auth", "", domain.Actor{}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null\n", rec.Body.String())
}

func TestAuthHandler_Login(t *testing.T) {
	expires := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("sets the session cookie", func(t *testing.T) {
		svc := &MockAuthService{}
		svc.On("Login", mock.Anything, "mira", "s3cret").Return(&auth.LoginResult{
			Token:     "signed.token.value",
			ExpiresAt: expires,
			User:      testOwner,
		}, nil)
		h := NewAuthHandler(svc, true)

		rec := httptest.NewRecorder()
		h.HandleAction(rec, newRequest(http.MethodPost, "/auth?action=login", `{"username":"mira","password":"s3cret"}`, domain.Actor{}))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"user":{"id":7,"username":"mira","role":"user"}}`, rec.Body.String())

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.CookieName, cookies[0].Name)
		assert.Equal(t, "signed.token.value", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
		svc.AssertExpectations(t)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := &MockAuthService{}
		svc.On("Login", mock.Anything, "mira", "nope").Return(nil, domain.ErrInvalidCredentials)
		h := NewAuthHandler(svc, false)

		rec := httptest.NewRecorder()
		h.HandleAction(rec, newRequest(http.MethodPost, "/auth?action=login", `{"username":"mira","password":"nope"}`, domain.Actor{}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, domain.ErrMsgInvalidCredentials, decodeBody(t, rec)["error"])
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := &MockAuthService{}
		svc.On("Login", mock.Anything, "mira", "").Return(nil, domain.ErrMissingCredentials)
		h := NewAuthHandler(svc, false)

		rec := httptest.NewRecorder()
		h.HandleAction(rec, newRequest(http.MethodPost, "/auth?action=login", `{"username":"mira"}`, domain.Actor{}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, domain.ErrMsgMissingCredentials, decodeBody(t, rec)["error"])
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &MockAuthService{}
	svc.On("Logout", mock.Anything, "signed.token.value").Return(nil)
	svc.On("Logout", mock.Anything, "").Return(nil)
	h := NewAuthHandler(svc, false)

	req := newRequest(http.MethodPost, "/auth?action=logout", "", testOwner)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "signed.token.value"})
	rec := httptest.NewRecorder()
	h.HandleAction(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)

	rec = httptest.NewRecorder()
	h.HandleAction(rec, newRequest(http.MethodPost, "/auth?action=logout", "", domain.Actor{}))
	assert.Equal(t, http.StatusOK, rec.Code, "logging out without a session still succeeds")

	svc.AssertExpectations(t)
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		actor      domain.Actor
		body       string
		setupMock  func(m *MockAuthService)
		wantStatus int
		wantBody   string
	}{
		{
			name:  "admin registers user",
			actor: testAdmin,
			body:  `{"username":"tobi","password":"pw","role":"user"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Register", mock.Anything, testAdmin, "tobi", "pw", "user").Return(int64(5), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"id":5}`,
		},
		{
			name:       "non admin",
			actor:      testOwner,
			body:       `{"username":"tobi","password":"pw"}`,
			setupMock:  func(m *MockAuthService) {},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"` + domain.ErrMsgAdminRequired + `"}`,
		},
		{
			name:       "anonymous",
			actor:      domain.Actor{},
			body:       `{"username":"tobi","password":"pw"}`,
			setupMock:  func(m *MockAuthService) {},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"` + domain.ErrMsgAdminRequired + `"}`,
		},
		{
			name:       "missing password",
			actor:      testAdmin,
			body:       `{"username":"tobi"}`,
			setupMock:  func(m *MockAuthService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"` + ErrMsgInvalidRequestSummary + `","fields":{"password":"This field is required"}}`,
		},
		{
			name:       "username with spaces",
			actor:      testAdmin,
			body:       `{"username":"to bi","password":"pw"}`,
			setupMock:  func(m *MockAuthService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"` + ErrMsgInvalidRequestSummary + `","fields":{"username":"Must not contain spaces or control characters"}}`,
		},
		{
			name:  "duplicate",
			actor: testAdmin,
			body:  `{"username":"mira","password":"pw"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Register", mock.Anything, testAdmin, "mira", "pw", "").Return(int64(0), domain.ErrUsernameTaken)
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"` + domain.ErrMsgUsernameTaken + `"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAuthService{}
			tt.setupMock(svc)
			h := NewAuthHandler(svc, false)

			rec := httptest.NewRecorder()
			h.HandleAction(rec, newRequest(http.MethodPost, "/auth?action=register", tt.body, tt.actor))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_UnknownAction(t *testing.T) {
	h := NewAuthHandler(&MockAuthService{}, false)

	for _, target := range []string{"/auth", "/auth?action=reset"} {
		rec := httptest.NewRecorder()
		h.HandleAction(rec, newRequest(http.MethodPost, target, `{}`, testAdmin))

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, ErrMsgUnknownAction, decodeBody(t, rec)["error"])
	}
}
