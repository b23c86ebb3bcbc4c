package domain

import (
	"encoding/json"
	"time"
)

// SnapshotType records what produced a snapshot.
type SnapshotType string

const (
	SnapshotSessionStart SnapshotType = "session_start"
	SnapshotSessionEnd   SnapshotType = "session_end"
	SnapshotManual       SnapshotType = "manual"
)

// SessionNameLayout formats the default session name.
const SessionNameLayout = "2006-01-02 15:04"

// Session is a bounded period of play for one character. At most one
// session per character has a nil EndedAt.
type Session struct {
	ID          int64      `json:"id"`
	CharacterID int64      `json:"character_id"`
	Name        *string    `json:"session_name"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`
	Notes       *string    `json:"notes"`
}

// Open reports whether the session has not ended yet.
func (s Session) Open() bool {
	return s.EndedAt == nil
}

// SessionListEntry is a session with the number of snapshots taken in it.
type SessionListEntry struct {
	Session
	SnapshotCount int `json:"snapshot_count"`
}

// ActiveSession is the open session with its snapshot summaries.
type ActiveSession struct {
	Session
	Snapshots []SnapshotSummary `json:"snapshots"`
}

// Snapshot is an immutable copy of the character aggregate.
type Snapshot struct {
	ID            int64           `json:"id"`
	SessionID     *int64          `json:"session_id"`
	CharacterID   int64           `json:"character_id"`
	Type          SnapshotType    `json:"snapshot_type"`
	CharacterData json.RawMessage `json:"character_data"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SnapshotSummary omits the stored aggregate.
type SnapshotSummary struct {
	ID        int64        `json:"id"`
	Type      SnapshotType `json:"snapshot_type"`
	CreatedAt time.Time    `json:"created_at"`
}
