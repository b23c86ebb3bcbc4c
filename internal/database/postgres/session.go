package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/devaliuz/Epic-Charaktersheet/internal/database/generated"
	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/repository"
)

var (
	_ repository.Session   = (*SessionRepository)(nil)
	_ repository.SessionTx = (*sessionTx)(nil)
)

// SessionRepository implements repository.Session for PostgreSQL
type SessionRepository struct {
	characterStore
	sessionStore
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		characterStore: newCharacterStore(pool),
		sessionStore:   sessionStore{q: generated.New(pool)},
		pool:           pool,
	}
}

// BeginTx starts a session transaction
func (r *SessionRepository) BeginTx(ctx context.Context) (repository.SessionTx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &sessionTx{
		pgTx:           pgTx{tx: tx},
		characterStore: newCharacterStore(tx),
		sessionStore:   sessionStore{q: r.sessionStore.q.WithTx(tx)},
	}, nil
}

// ListSessions returns every session of a character, newest first, with its
// snapshot count.
func (r *SessionRepository) ListSessions(ctx context.Context, characterID int64) ([]domain.SessionListEntry, error) {
	rows, err := r.sessionStore.q.ListSessionsWithSnapshotCount(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSessions, err)
	}

	entries := make([]domain.SessionListEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.SessionListEntry{
			Session: mapSession(generated.Session{
				ID:          row.ID,
				CharacterID: row.CharacterID,
				SessionName: row.SessionName,
				StartedAt:   row.StartedAt,
				EndedAt:     row.EndedAt,
				Notes:       row.Notes,
			}),
			SnapshotCount: int(row.SnapshotCount),
		})
	}
	return entries, nil
}

// ListSnapshotSummaries returns the snapshots of a session, oldest first.
func (r *SessionRepository) ListSnapshotSummaries(ctx context.Context, sessionID int64) ([]domain.SnapshotSummary, error) {
	rows, err := r.sessionStore.q.ListSnapshotSummaries(ctx, ptrToInt8(&sessionID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSnapshots, err)
	}

	summaries := make([]domain.SnapshotSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.SnapshotSummary{
			ID:        row.ID,
			Type:      domain.SnapshotType(row.SnapshotType),
			CreatedAt: row.CreatedAt.Time,
		})
	}
	return summaries, nil
}

func (r *SessionRepository) GetSnapshot(ctx context.Context, snapshotID int64) (*domain.Snapshot, error) {
	row, err := r.sessionStore.q.GetSnapshot(ctx, snapshotID)
	return mapSnapshot(row, err)
}

// GetLatestSnapshot returns the most recent snapshot of any type.
func (r *SessionRepository) GetLatestSnapshot(ctx context.Context, characterID int64) (*domain.Snapshot, error) {
	row, err := r.sessionStore.q.GetLatestSnapshot(ctx, characterID)
	return mapSnapshot(row, err)
}

func mapSnapshot(row generated.SessionSnapshot, err error) (*domain.Snapshot, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSnapshot, err)
	}
	return &domain.Snapshot{
		ID:            row.ID,
		SessionID:     int8ToPtr(row.SessionID),
		CharacterID:   row.CharacterID,
		Type:          domain.SnapshotType(row.SnapshotType),
		CharacterData: row.CharacterData,
		CreatedAt:     row.CreatedAt.Time,
	}, nil
}

func mapSession(row generated.Session) domain.Session {
	return domain.Session{
		ID:          row.ID,
		CharacterID: row.CharacterID,
		Name:        textToPtr(row.SessionName),
		StartedAt:   row.StartedAt.Time,
		EndedAt:     pgtimetzToPtr(row.EndedAt),
		Notes:       textToPtr(row.Notes),
	}
}

// sessionStore holds the session queries shared by the pool and transactions.
type sessionStore struct {
	q *generated.Queries
}

// GetOpenSession returns the open session of a character or nil.
func (s sessionStore) GetOpenSession(ctx context.Context, characterID int64) (*domain.Session, error) {
	row, err := s.q.GetOpenSession(ctx, characterID)
	return openSession(row, err)
}

// GetOpenSessionByID returns the session if it exists and is still open, or nil.
func (s sessionStore) GetOpenSessionByID(ctx context.Context, sessionID int64) (*domain.Session, error) {
	row, err := s.q.GetOpenSessionByID(ctx, sessionID)
	return openSession(row, err)
}

func openSession(row generated.Session, err error) (*domain.Session, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSession, err)
	}
	sess := mapSession(row)
	return &sess, nil
}

func (s sessionStore) InsertSnapshot(ctx context.Context, snap domain.Snapshot) (int64, error) {
	id, err := s.q.InsertSnapshot(ctx, generated.InsertSnapshotParams{
		SessionID:     ptrToInt8(snap.SessionID),
		CharacterID:   snap.CharacterID,
		SnapshotType:  string(snap.Type),
		CharacterData: snap.CharacterData,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToInsertSnapshot, err)
	}
	return id, nil
}

// sessionTx implements repository.SessionTx
type sessionTx struct {
	pgTx
	characterStore
	sessionStore
}

func (t *sessionTx) InsertSession(ctx context.Context, characterID int64, name string) (int64, error) {
	id, err := t.sessionStore.q.InsertSession(ctx, generated.InsertSessionParams{
		CharacterID: characterID,
		SessionName: ptrToText(&name),
	})
	if err != nil {
		if code, constraint := pgErrorCode(err); code == PgErrorCodeUniqueViolation && constraint == ConstraintOneOpenSession {
			return 0, domain.ErrSessionAlreadyActive
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToInsertSession, err)
	}
	return id, nil
}

// CloseSession ends an open session. A nil notes keeps the stored notes.
func (t *sessionTx) CloseSession(ctx context.Context, sessionID int64, notes *string) error {
	n, err := t.sessionStore.q.CloseSession(ctx, generated.CloseSessionParams{
		Notes: ptrToText(notes),
		ID:    sessionID,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCloseSession, err)
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
