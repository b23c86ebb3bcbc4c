package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devaliuz/Epic-Charaktersheet/internal/auth"
	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
)

type stubResolver map[string]domain.Actor

func (s stubResolver) Resolve(ctx context.Context, token string) domain.Actor {
	return s[token]
}

func TestSessionMiddleware(t *testing.T) {
	mira := domain.Actor{UserID: 7, Username: "mira", Role: domain.RoleUser}
	resolver := stubResolver{"good": mira}

	tests := []struct {
		name        string
		setup       func(r *http.Request)
		wantActor   domain.Actor
		wantFailure int
	}{
		{"no token", func(r *http.Request) {}, domain.Actor{}, 0},
		{"valid cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "good"})
		}, mira, 0},
		{"valid bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, mira, 0},
		{"rejected token", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "stale"})
		}, domain.Actor{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := NewSuspiciousActivityDetector()
			var got domain.Actor
			h := SessionMiddleware(resolver, nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = auth.ActorFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/characters", nil)
			req.RemoteAddr = "10.0.0.9:5555"
			tt.setup(req)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code, "anonymous requests are not blocked here")
			assert.Equal(t, tt.wantActor, got)
			detector.mu.Lock()
			assert.Equal(t, tt.wantFailure, detector.failedAuthByIP["10.0.0.9"])
			detector.mu.Unlock()
		})
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		trusted    []string
		want       string
	}{
		{"direct", "203.0.113.5:1000", "", nil, "203.0.113.5"},
		{"untrusted proxy header ignored", "203.0.113.5:1000", "198.51.100.1", nil, "203.0.113.5"},
		{"trusted proxy", "10.0.0.1:1000", "198.51.100.1, 192.0.2.7", []string{"10.0.0.1"}, "192.0.2.7"},
		{"unparseable remote", "garbage", "", nil, "garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, extractIP(req, tt.trusted))
		})
	}
}
