package repository

import (
	"context"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
)

// Session defines the interface for play session and snapshot persistence
type Session interface {
	CharacterStore
	GetOpenSession(ctx context.Context, characterID int64) (*domain.Session, error)
	GetOpenSessionByID(ctx context.Context, sessionID int64) (*domain.Session, error)
	ListSessions(ctx context.Context, characterID int64) ([]domain.SessionListEntry, error)
	ListSnapshotSummaries(ctx context.Context, sessionID int64) ([]domain.SnapshotSummary, error)
	GetSnapshot(ctx context.Context, snapshotID int64) (*domain.Snapshot, error)
	GetLatestSnapshot(ctx context.Context, characterID int64) (*domain.Snapshot, error)
	InsertSnapshot(ctx context.Context, snapshot domain.Snapshot) (int64, error)
	BeginTx(ctx context.Context) (SessionTx, error)
}

// SessionTx defines the interface for session start/end transactions
type SessionTx interface {
	Tx
	CharacterStore
	GetOpenSession(ctx context.Context, characterID int64) (*domain.Session, error)
	GetOpenSessionByID(ctx context.Context, sessionID int64) (*domain.Session, error)
	InsertSession(ctx context.Context, characterID int64, name string) (int64, error)
	CloseSession(ctx context.Context, sessionID int64, notes *string) error
	InsertSnapshot(ctx context.Context, snapshot domain.Snapshot) (int64, error)
}
