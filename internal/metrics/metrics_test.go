package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devaliuz/Epic-Charaktersheet/internal/event"
)

func TestEventMetricsCollector_CharacterUpdate(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	updates := testutil.ToFloat64(CharacterWrites.WithLabelValues(OperationUpdate))
	created := testutil.ToFloat64(InventoryItems.WithLabelValues(OperationCreate))
	deleted := testutil.ToFloat64(InventoryItems.WithLabelValues(OperationDelete))

	err := bus.Publish(context.Background(), event.NewCharacterEvent(event.CharacterUpdated, event.CharacterPayloadV1{
		CharacterID:  1,
		ItemsCreated: 2,
		ItemsDeleted: 3,
	}))
	require.NoError(t, err)

	assert.Equal(t, updates+1, testutil.ToFloat64(CharacterWrites.WithLabelValues(OperationUpdate)))
	assert.Equal(t, created+2, testutil.ToFloat64(InventoryItems.WithLabelValues(OperationCreate)))
	assert.Equal(t, deleted+3, testutil.ToFloat64(InventoryItems.WithLabelValues(OperationDelete)))
}

func TestEventMetricsCollector_SessionsAndAuth(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))
	ctx := context.Background()

	started := testutil.ToFloat64(SessionsStarted)
	manual := testutil.ToFloat64(SnapshotsCreated.WithLabelValues("manual"))
	failures := testutil.ToFloat64(LoginAttempts.WithLabelValues(ResultFailure))
	swept := testutil.ToFloat64(AuthSessionsSwept)

	require.NoError(t, bus.Publish(ctx, event.NewSessionEvent(event.SessionStarted, 1, 2)))
	require.NoError(t, bus.Publish(ctx, event.NewSnapshotCreatedEvent(5, 2, "manual")))
	require.NoError(t, bus.Publish(ctx, event.NewAuthEvent(event.UserLoginFailed, event.AuthPayloadV1{Username: "x"})))
	require.NoError(t, bus.Publish(ctx, event.NewAuthEvent(event.SessionsSwept, event.AuthPayloadV1{Count: 4})))

	assert.Equal(t, started+1, testutil.ToFloat64(SessionsStarted))
	assert.Equal(t, manual+1, testutil.ToFloat64(SnapshotsCreated.WithLabelValues("manual")))
	assert.Equal(t, failures+1, testutil.ToFloat64(LoginAttempts.WithLabelValues(ResultFailure)))
	assert.Equal(t, swept+4, testutil.ToFloat64(AuthSessionsSwept))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/characters/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/characters/{id}", "404"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/characters/42", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/characters/{id}", "404")))
}
