package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devaliuz/Epic-Charaktersheet/internal/auth"
	"github.com/devaliuz/Epic-Charaktersheet/internal/character"
	"github.com/devaliuz/Epic-Charaktersheet/internal/event"
	"github.com/devaliuz/Epic-Charaktersheet/internal/handler"
	"github.com/devaliuz/Epic-Charaktersheet/internal/session"
	"github.com/devaliuz/Epic-Charaktersheet/internal/testing/memstore"
)

type fakePool struct{ err error }

func (p fakePool) Ping(ctx context.Context) error { return p.err }
func (p fakePool) Close()                         {}

type apiClient struct {
	t      *testing.T
	router http.Handler
	cookie *http.Cookie
}

func newAPIClient(t *testing.T, pool fakePool) *apiClient {
	t.Helper()
	store := memstore.New()
	bus := event.NewMemoryBus()

	authSvc := auth.NewService(store, bus, auth.Options{Secret: []byte("router-test-secret-router-test-secret")})
	created, err := authSvc.EnsureDefaultAdmin(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.True(t, created)

	router := NewRouter(Options{}, pool, Services{
		Characters: character.NewService(store, bus),
		Sessions:   session.NewService(store.Sessions(), bus),
		Auth:       authSvc,
	})
	return &apiClient{t: t, router: router}
}

func (c *apiClient) do(method, target, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	return rec
}

func (c *apiClient) login() {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/api/v1/auth?action=login", `{"username":"admin","password":"admin123"}`)
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == auth.CookieName {
			c.cookie = ck
		}
	}
	require.NotNil(c.t, c.cookie)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func TestRouter_CharacterSessionFlow(t *testing.T) {
	c := newAPIClient(t, fakePool{})
	c.login()

	rec := c.do(http.MethodGet, "/api/v1/auth", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", decode(t, rec)["username"])

	rec = c.do(http.MethodPost, "/api/v1/characters", `{"name":"Ilse","level":"2","money":{"gold":10}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := int64(decode(t, rec)["id"].(float64))

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/characters/%d", id), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ilse", decode(t, rec)["name"])

	rec = c.do(http.MethodPut, fmt.Sprintf("/api/v1/characters?id=%d", id), `{"money":{"gold":"25"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = c.do(http.MethodPost, "/api/v1/sessions", fmt.Sprintf(`{"character_id":%d}`, id))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sessionID := int64(decode(t, rec)["session_id"].(float64))

	rec = c.do(http.MethodPost, "/api/v1/sessions", fmt.Sprintf(`{"character_id":%d}`, id))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/sessions?character_id=%d&active=true", id), "")
	require.Equal(t, http.StatusOK, rec.Code)
	active := decode(t, rec)
	assert.Equal(t, float64(sessionID), active["id"])
	assert.Len(t, active["snapshots"], 1)

	rec = c.do(http.MethodPut, fmt.Sprintf("/api/v1/sessions?id=%d", sessionID), `{"notes":"Goblins"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/sessions?character_id=%d&active=true", id), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null\n", rec.Body.String())

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/sessions?character_id=%d&latest_snapshot=true", id), "")
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode(t, rec)
	assert.Equal(t, "session_end", snap["snapshot_type"])
	money := snap["character_data"].(map[string]interface{})["money"].(map[string]interface{})
	assert.Equal(t, float64(25), money["gold"])

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/admin/items/audit?character_id=%d", id), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["count"])

	rec = c.do(http.MethodDelete, fmt.Sprintf("/api/v1/characters/%d", id), "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/characters?id=%d", id), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_LogoutInvalidatesCookie(t *testing.T) {
	c := newAPIClient(t, fakePool{})
	c.login()
	old := c.cookie

	rec := c.do(http.MethodPost, "/api/v1/auth?action=logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	c.cookie = old
	rec = c.do(http.MethodGet, "/api/v1/auth", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null\n", rec.Body.String())
}

func TestRouter_AnonymousAccess(t *testing.T) {
	c := newAPIClient(t, fakePool{})

	rec := c.do(http.MethodGet, "/api/v1/characters?id=1", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/api/v1/characters", `{"name":"Ilse"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, decode(t, rec)["success"])

	rec = c.do(http.MethodPost, "/api/v1/auth?action=register", `{"username":"eve","password":"pw"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = c.do(http.MethodPost, "/api/v1/auth?action=login", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_SessionsWithoutBody(t *testing.T) {
	c := newAPIClient(t, fakePool{})
	c.login()

	rec := c.do(http.MethodPost, "/api/v1/characters", `{"name":"Ilse"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := int64(decode(t, rec)["id"].(float64))

	rec = c.do(http.MethodPost, fmt.Sprintf("/api/v1/sessions?character_id=%d", id), "{")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, handler.ErrMsgInvalidRequest, decode(t, rec)["error"])
	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/sessions?character_id=%d&active=true", id), "")
	assert.Equal(t, "null\n", rec.Body.String(), "a rejected request must not start a session")

	rec = c.do(http.MethodPost, fmt.Sprintf("/api/v1/sessions?character_id=%d", id), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	started := decode(t, rec)
	assert.Equal(t, true, started["success"])
	sessionID := int64(started["session_id"].(float64))

	rec = c.do(http.MethodPost, fmt.Sprintf("/api/v1/sessions?action=snapshot&character_id=%d", id), "  ")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decode(t, rec)["success"])

	rec = c.do(http.MethodPut, fmt.Sprintf("/api/v1/sessions?id=%d", sessionID), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decode(t, rec)["success"])

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/sessions?character_id=%d", id), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var sessions []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, float64(2), sessions[0]["snapshot_count"], "manual snapshots are not tied to the session")
}

func TestRouter_OutOfRangeIntegersAreBadRequests(t *testing.T) {
	c := newAPIClient(t, fakePool{})
	c.login()

	rec := c.do(http.MethodPost, "/api/v1/characters", `{"name":"Ilse","money":{"gold":10}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id := int64(decode(t, rec)["id"].(float64))

	for _, body := range []string{
		`{"money":{"gold":99999999999}}`,
		`{"stats":{"str":"9223372036854775808"}}`,
		`{"level":2147483648}`,
		`{"inventory":[{"name":"Rope","quantity":-3000000000}]}`,
	} {
		rec = c.do(http.MethodPut, fmt.Sprintf("/api/v1/characters?id=%d", id), body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/characters/%d", id), "")
	require.Equal(t, http.StatusOK, rec.Code)
	sheet := decode(t, rec)
	assert.Equal(t, float64(10), sheet["money"].(map[string]interface{})["gold"])
	assert.Equal(t, float64(1), sheet["level"])
}

func TestRouter_OpsAndErrors(t *testing.T) {
	c := newAPIClient(t, fakePool{err: assert.AnError})

	rec := c.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = c.do(http.MethodGet, "/version", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPatch, "/api/v1/sessions", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)

	rec = c.do(http.MethodGet, "/api/v1/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/api/v1/sessions", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPut, "/api/v1/characters?id=1", `{"name":"`+strings.Repeat("x", MaxRequestBodyBytes)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
