package event

import (
	"context"
	"fmt"
	"sync"
)

// Type represents the type of an event
type Type string

// Event represents a domain event raised after a successful write
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Character sheet event types
const (
	CharacterCreated Type = "character.created"
	CharacterUpdated Type = "character.updated"
	CharacterDeleted Type = "character.deleted"

	SessionStarted  Type = "session.started"
	SessionEnded    Type = "session.ended"
	SnapshotCreated Type = "snapshot.created"

	UserLoggedIn    Type = "auth.login"
	UserLoginFailed Type = "auth.login_failed"
	UserLoggedOut   Type = "auth.logout"
	UserRegistered  Type = "auth.registered"
	SessionsSwept   Type = "auth.sessions_swept"
)

// AllTypes lists every event type the services publish.
var AllTypes = []Type{
	CharacterCreated, CharacterUpdated, CharacterDeleted,
	SessionStarted, SessionEnded, SnapshotCreated,
	UserLoggedIn, UserLoginFailed, UserLoggedOut, UserRegistered, SessionsSwept,
}

// CharacterPayloadV1 is the typed payload for character events
type CharacterPayloadV1 struct {
	CharacterID int64 `json:"character_id"`
	ActorID     int64 `json:"actor_id"`
	// ItemsCreated, ItemsUpdated and ItemsDeleted are set when the write
	// reconciled the inventory.
	ItemsCreated int   `json:"items_created,omitempty"`
	ItemsUpdated int   `json:"items_updated,omitempty"`
	ItemsDeleted int64 `json:"items_deleted,omitempty"`
}

// SessionPayloadV1 is the typed payload for session events
type SessionPayloadV1 struct {
	SessionID   int64 `json:"session_id"`
	CharacterID int64 `json:"character_id"`
}

// SnapshotPayloadV1 is the typed payload for snapshot events
type SnapshotPayloadV1 struct {
	SnapshotID   int64  `json:"snapshot_id"`
	CharacterID  int64  `json:"character_id"`
	SnapshotType string `json:"snapshot_type"`
}

// AuthPayloadV1 is the typed payload for auth events
type AuthPayloadV1 struct {
	UserID   int64  `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Count    int64  `json:"count,omitempty"`
}

// NewCharacterEvent creates a character event
func NewCharacterEvent(t Type, payload CharacterPayloadV1) Event {
	return Event{Version: EventSchemaVersion, Type: t, Payload: payload}
}

// NewSessionEvent creates a session started or ended event
func NewSessionEvent(t Type, sessionID, characterID int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: SessionPayloadV1{SessionID: sessionID, CharacterID: characterID},
	}
}

// NewSnapshotCreatedEvent creates a snapshot event
func NewSnapshotCreatedEvent(snapshotID, characterID int64, snapshotType string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SnapshotCreated,
		Payload: SnapshotPayloadV1{
			SnapshotID:   snapshotID,
			CharacterID:  characterID,
			SnapshotType: snapshotType,
		},
	}
}

// NewAuthEvent creates an auth event
func NewAuthEvent(t Type, payload AuthPayloadV1) Event {
	return Event{Version: EventSchemaVersion, Type: t, Payload: payload}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of the event type synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
