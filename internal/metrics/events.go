package metrics

import (
	"context"

	"github.com/devaliuz/Epic-Charaktersheet/internal/event"
	"github.com/devaliuz/Epic-Charaktersheet/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.CharacterCreated:
		CharacterWrites.WithLabelValues(OperationCreate).Inc()
		recordInventory(evt)
	case event.CharacterUpdated:
		CharacterWrites.WithLabelValues(OperationUpdate).Inc()
		recordInventory(evt)
	case event.CharacterDeleted:
		CharacterWrites.WithLabelValues(OperationDelete).Inc()

	case event.SessionStarted:
		SessionsStarted.Inc()
	case event.SessionEnded:
		SessionsEnded.Inc()
	case event.SnapshotCreated:
		payload, ok := evt.Payload.(event.SnapshotPayloadV1)
		if !ok {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
			return nil
		}
		SnapshotsCreated.WithLabelValues(payload.SnapshotType).Inc()

	case event.UserLoggedIn:
		LoginAttempts.WithLabelValues(ResultSuccess).Inc()
	case event.UserLoginFailed:
		LoginAttempts.WithLabelValues(ResultFailure).Inc()
	case event.UserLoggedOut:
		Logouts.Inc()
	case event.UserRegistered:
		UsersRegistered.Inc()
	case event.SessionsSwept:
		if payload, ok := evt.Payload.(event.AuthPayloadV1); ok {
			AuthSessionsSwept.Add(float64(payload.Count))
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func recordInventory(evt event.Event) {
	payload, ok := evt.Payload.(event.CharacterPayloadV1)
	if !ok {
		return
	}
	InventoryItems.WithLabelValues(OperationCreate).Add(float64(payload.ItemsCreated))
	InventoryItems.WithLabelValues(OperationUpdate).Add(float64(payload.ItemsUpdated))
	InventoryItems.WithLabelValues(OperationDelete).Add(float64(payload.ItemsDeleted))
}
