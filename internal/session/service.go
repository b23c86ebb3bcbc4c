package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/devaliuz/Epic-Charaktersheet/internal/character"
	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/event"
	"github.com/devaliuz/Epic-Charaktersheet/internal/logger"
	"github.com/devaliuz/Epic-Charaktersheet/internal/repository"
)

// Service defines the interface for play sessions and snapshots
type Service interface {
	Start(ctx context.Context, actor domain.Actor, characterID int64, name string) (int64, error)
	End(ctx context.Context, actor domain.Actor, sessionID int64, notes *string) error
	CreateManualSnapshot(ctx context.Context, actor domain.Actor, characterID int64, data json.RawMessage) (int64, error)
	GetSnapshot(ctx context.Context, actor domain.Actor, snapshotID int64) (*domain.Snapshot, error)
	LatestSnapshot(ctx context.Context, actor domain.Actor, characterID int64) (*domain.Snapshot, error)
	List(ctx context.Context, actor domain.Actor, characterID int64) ([]domain.SessionListEntry, error)
	Active(ctx context.Context, actor domain.Actor, characterID int64) (*domain.ActiveSession, error)
}

type service struct {
	repo repository.Session
	gate *character.AccessGate
	bus  event.Bus
	now  func() time.Time
}

// NewService creates a new session service. bus may be nil.
func NewService(repo repository.Session, bus event.Bus) Service {
	return &service{
		repo: repo,
		gate: character.NewAccessGate(repo),
		bus:  bus,
		now:  time.Now,
	}
}

// Start opens a session and stores the session_start snapshot in the same
// transaction. A blank name becomes "Session YYYY-MM-DD HH:MM".
func (s *service) Start(ctx context.Context, actor domain.Actor, characterID int64, name string) (int64, error) {
	log := logger.FromContext(ctx)
	if err := s.gate.Check(ctx, actor, characterID); err != nil {
		return 0, err
	}
	if name == "" {
		name = DefaultSessionNamePrefix + s.now().Format(domain.SessionNameLayout)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error(LogMsgBeginTxFailed, "error", err)
		return 0, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	open, err := tx.GetOpenSession(ctx, characterID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgStartSessionFailed, err)
	}
	if open != nil {
		return 0, domain.ErrSessionAlreadyActive
	}

	sessionID, err := tx.InsertSession(ctx, characterID, name)
	if err != nil {
		log.Warn(LogMsgStartRolledBack, "character_id", characterID, "error", err)
		return 0, fmt.Errorf(ErrMsgStartSessionFailed, err)
	}
	snapshotID, err := snapshotFromStore(ctx, tx, &sessionID, characterID, domain.SnapshotSessionStart)
	if err != nil {
		log.Warn(LogMsgStartRolledBack, "character_id", characterID, "error", err)
		return 0, fmt.Errorf(ErrMsgStartSessionFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(LogMsgCommitTxFailed, "error", err)
		return 0, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Info(LogMsgSessionStarted, "session_id", sessionID, "character_id", characterID)
	event.Emit(ctx, s.bus, event.NewSessionEvent(event.SessionStarted, sessionID, characterID))
	event.Emit(ctx, s.bus, event.NewSnapshotCreatedEvent(snapshotID, characterID, string(domain.SnapshotSessionStart)))
	return sessionID, nil
}

// End closes an open session after storing its session_end snapshot. A nil
// notes keeps whatever notes the session already has.
func (s *service) End(ctx context.Context, actor domain.Actor, sessionID int64, notes *string) error {
	log := logger.FromContext(ctx)
	if !actor.Authenticated() {
		return domain.ErrUnauthenticated
	}

	open, err := s.repo.GetOpenSessionByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf(ErrMsgGetSessionFailed, err)
	}
	if open == nil {
		return domain.ErrSessionNotFound
	}
	if err := s.gate.Check(ctx, actor, open.CharacterID); err != nil {
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error(LogMsgBeginTxFailed, "error", err)
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	snapshotID, err := snapshotFromStore(ctx, tx, &sessionID, open.CharacterID, domain.SnapshotSessionEnd)
	if err != nil {
		log.Warn(LogMsgEndRolledBack, "session_id", sessionID, "error", err)
		return fmt.Errorf(ErrMsgEndSessionFailed, err)
	}
	if err := tx.CloseSession(ctx, sessionID, notes); err != nil {
		log.Warn(LogMsgEndRolledBack, "session_id", sessionID, "error", err)
		return fmt.Errorf(ErrMsgEndSessionFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(LogMsgCommitTxFailed, "error", err)
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Info(LogMsgSessionEnded, "session_id", sessionID, "character_id", open.CharacterID)
	event.Emit(ctx, s.bus, event.NewSessionEvent(event.SessionEnded, sessionID, open.CharacterID))
	event.Emit(ctx, s.bus, event.NewSnapshotCreatedEvent(snapshotID, open.CharacterID, string(domain.SnapshotSessionEnd)))
	return nil
}

// CreateManualSnapshot stores a snapshot outside of any session. A
// non-empty JSON object in data is stored as sent, with its "id" forced to
// the character; anything else snapshots the stored aggregate.
func (s *service) CreateManualSnapshot(ctx context.Context, actor domain.Actor, characterID int64, data json.RawMessage) (int64, error) {
	log := logger.FromContext(ctx)
	if err := s.gate.Check(ctx, actor, characterID); err != nil {
		return 0, err
	}

	body, err := clientSnapshot(data, characterID)
	if err != nil {
		return 0, err
	}

	var snapshotID int64
	if body != nil {
		log.Debug(LogMsgSnapshotFromData, "character_id", characterID)
		snapshotID, err = s.repo.InsertSnapshot(ctx, domain.Snapshot{
			CharacterID:   characterID,
			Type:          domain.SnapshotManual,
			CharacterData: body,
		})
	} else {
		snapshotID, err = snapshotFromStore(ctx, s.repo, nil, characterID, domain.SnapshotManual)
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgCreateSnapshotFailed, err)
	}

	log.Info(LogMsgSnapshotCreated, "snapshot_id", snapshotID, "character_id", characterID)
	event.Emit(ctx, s.bus, event.NewSnapshotCreatedEvent(snapshotID, characterID, string(domain.SnapshotManual)))
	return snapshotID, nil
}

func (s *service) GetSnapshot(ctx context.Context, actor domain.Actor, snapshotID int64) (*domain.Snapshot, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	snap, err := s.repo.GetSnapshot(ctx, snapshotID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Check(ctx, actor, snap.CharacterID); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *service) LatestSnapshot(ctx context.Context, actor domain.Actor, characterID int64) (*domain.Snapshot, error) {
	if err := s.gate.Check(ctx, actor, characterID); err != nil {
		return nil, err
	}
	return s.repo.GetLatestSnapshot(ctx, characterID)
}

func (s *service) List(ctx context.Context, actor domain.Actor, characterID int64) ([]domain.SessionListEntry, error) {
	if err := s.gate.Check(ctx, actor, characterID); err != nil {
		return nil, err
	}
	sessions, err := s.repo.ListSessions(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListSessionsFailed, err)
	}
	return sessions, nil
}

// Active returns nil without error when no session is open.
func (s *service) Active(ctx context.Context, actor domain.Actor, characterID int64) (*domain.ActiveSession, error) {
	if err := s.gate.Check(ctx, actor, characterID); err != nil {
		return nil, err
	}
	open, err := s.repo.GetOpenSession(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetSessionFailed, err)
	}
	if open == nil {
		return nil, nil
	}
	snapshots, err := s.repo.ListSnapshotSummaries(ctx, open.ID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetSessionFailed, err)
	}
	return &domain.ActiveSession{Session: *open, Snapshots: snapshots}, nil
}

type snapshotWriter interface {
	repository.CharacterStore
	InsertSnapshot(ctx context.Context, snapshot domain.Snapshot) (int64, error)
}

// snapshotFromStore serializes the aggregate as the store currently sees it.
func snapshotFromStore(ctx context.Context, store snapshotWriter, sessionID *int64, characterID int64, typ domain.SnapshotType) (int64, error) {
	c, err := character.LoadAggregate(ctx, store, characterID)
	if err != nil {
		return 0, err
	}
	body, err := json.Marshal(c)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgEncodeCharacterFailed, err)
	}
	return store.InsertSnapshot(ctx, domain.Snapshot{
		SessionID:     sessionID,
		CharacterID:   characterID,
		Type:          typ,
		CharacterData: body,
	})
}

// clientSnapshot returns the client body with its id rewritten, or nil when
// the body is absent, null, empty or not an object.
func clientSnapshot(data json.RawMessage, characterID int64) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: character_data: %v", domain.ErrInvalidPayload, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	id, err := json.Marshal(characterID)
	if err != nil {
		return nil, err
	}
	fields[snapshotIDKey] = id
	return json.Marshal(fields)
}
