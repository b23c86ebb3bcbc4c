package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantOrigin string
		wantStatus int
		wantNext   bool
	}{
		{"reflects any origin by default", nil, http.MethodGet, "http://sheet.local", "http://sheet.local", http.StatusTeapot, true},
		{"allow list match", []string{"https://dnd.example.com/"}, http.MethodGet, "https://dnd.example.com", "https://dnd.example.com", http.StatusTeapot, true},
		{"allow list miss", []string{"https://dnd.example.com"}, http.MethodGet, "https://evil.example", "", http.StatusTeapot, true},
		{"no origin", nil, http.MethodGet, "", "", http.StatusTeapot, true},
		{"preflight short-circuits", nil, http.MethodOptions, "http://sheet.local", "http://sheet.local", http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := CORSMiddleware(tt.allowed)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusTeapot)
			}))

			req := httptest.NewRequest(tt.method, "/api/v1/characters", nil)
			if tt.origin != "" {
				req.Header.Set(HeaderOrigin, tt.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, called)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get(HeaderAllowOrigin))
			assert.Equal(t, HeaderOrigin, rec.Header().Get(HeaderVary))
			if tt.wantOrigin != "" {
				assert.Equal(t, "true", rec.Header().Get(HeaderAllowCredentials))
				assert.Equal(t, CORSAllowedMethods, rec.Header().Get(HeaderAllowMethods))
				assert.Equal(t, CORSAllowedHeaders, rec.Header().Get(HeaderAllowHeaders))
			}
		})
	}
}
