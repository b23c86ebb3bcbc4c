package memstore

import (
	"context"
	"sort"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
)

// ListSessions implements repository.Session.
func (s *Store) ListSessions(ctx context.Context, characterID int64) ([]domain.SessionListEntry, error) {
	entries := []domain.SessionListEntry{}
	s.locked(func(st *state) {
		for _, sess := range st.sessions {
			if sess.CharacterID != characterID {
				continue
			}
			entry := domain.SessionListEntry{Session: sess}
			for _, snap := range st.snapshots {
				if snap.SessionID != nil && *snap.SessionID == sess.ID {
					entry.SnapshotCount++
				}
			}
			entries = append(entries, entry)
		}
	})
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].StartedAt.Equal(entries[j].StartedAt) {
			return entries[i].StartedAt.After(entries[j].StartedAt)
		}
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}

// ListSnapshotSummaries implements repository.Session.
func (s *Store) ListSnapshotSummaries(ctx context.Context, sessionID int64) ([]domain.SnapshotSummary, error) {
	var snaps []domain.Snapshot
	s.locked(func(st *state) {
		for _, snap := range st.snapshots {
			if snap.SessionID != nil && *snap.SessionID == sessionID {
				snaps = append(snaps, snap)
			}
		}
	})
	sortSnapshots(snaps)
	summaries := make([]domain.SnapshotSummary, 0, len(snaps))
	for _, snap := range snaps {
		summaries = append(summaries, domain.SnapshotSummary{ID: snap.ID, Type: snap.Type, CreatedAt: snap.CreatedAt})
	}
	return summaries, nil
}

// GetSnapshot implements repository.Session.
func (s *Store) GetSnapshot(ctx context.Context, snapshotID int64) (snap *domain.Snapshot, err error) {
	s.locked(func(st *state) {
		v, ok := st.snapshots[snapshotID]
		if !ok {
			err = domain.ErrSnapshotNotFound
			return
		}
		snap = &v
	})
	return snap, err
}

// GetLatestSnapshot implements repository.Session.
func (s *Store) GetLatestSnapshot(ctx context.Context, characterID int64) (*domain.Snapshot, error) {
	var snaps []domain.Snapshot
	s.locked(func(st *state) {
		for _, snap := range st.snapshots {
			if snap.CharacterID == characterID {
				snaps = append(snaps, snap)
			}
		}
	})
	if len(snaps) == 0 {
		return nil, domain.ErrSnapshotNotFound
	}
	sortSnapshots(snaps)
	latest := snaps[len(snaps)-1]
	return &latest, nil
}

// sortSnapshots orders oldest first by created_at, then id.
func sortSnapshots(snaps []domain.Snapshot) {
	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].CreatedAt.Equal(snaps[j].CreatedAt) {
			return snaps[i].CreatedAt.Before(snaps[j].CreatedAt)
		}
		return snaps[i].ID < snaps[j].ID
	})
}

// ---- SessionTx ----

func (t *Tx) InsertSession(ctx context.Context, characterID int64, name string) (int64, error) {
	if _, ok := t.st.characters[characterID]; !ok {
		return 0, domain.ErrCharacterNotFound
	}
	if getOpenSession(t.st, characterID) != nil {
		return 0, domain.ErrSessionAlreadyActive
	}
	sess := domain.Session{
		ID:          t.st.nextID(),
		CharacterID: characterID,
		Name:        &name,
		StartedAt:   t.now(),
	}
	t.st.sessions[sess.ID] = sess
	return sess.ID, nil
}

func (t *Tx) CloseSession(ctx context.Context, sessionID int64, notes *string) error {
	sess := getOpenSessionByID(t.st, sessionID)
	if sess == nil {
		return domain.ErrSessionNotFound
	}
	now := t.now()
	sess.EndedAt = &now
	if notes != nil {
		n := *notes
		sess.Notes = &n
	}
	t.st.sessions[sessionID] = *sess
	return nil
}

// SeedSession stores a session as-is, for tests that need closed or
// back-dated sessions.
func (s *Store) SeedSession(sess domain.Session) int64 {
	s.locked(func(st *state) {
		if sess.ID == 0 {
			sess.ID = st.nextID()
		}
		st.sessions[sess.ID] = sess
	})
	return sess.ID
}
