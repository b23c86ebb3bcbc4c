// Package memstore is an in-memory implementation of the repository
// interfaces for service and handler tests. It mirrors the PostgreSQL
// repositories closely enough that services cannot tell them apart:
// cascades, ON DELETE SET NULL, upserts and not-found conventions all
// behave the same. Transactions work on a copy of the state that replaces
// the committed state on Commit.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/repository"
)

var (
	_ repository.Character   = (*Store)(nil)
	_ repository.Session     = sessionView{}
	_ repository.User        = (*Store)(nil)
	_ repository.AuthSession = (*Store)(nil)
	_ repository.CharacterTx = (*Tx)(nil)
	_ repository.SessionTx   = (*Tx)(nil)
)

// errTxClosed carries the same text as pgx.ErrTxClosed so SafeRollback
// treats it as benign.
var errTxClosed = errors.New(domain.ErrMsgTxClosed)

type spellKey struct {
	level  int
	number int
}

type state struct {
	seq int64

	users        map[int64]domain.User
	authSessions map[string]domain.AuthSession

	characters map[int64]domain.Character
	stats      map[int64]domain.Stats
	slots      map[int64]map[domain.SlotType]*int64
	items      map[int64]domain.Item
	spellSlots map[int64]map[spellKey]bool
	money      map[int64]domain.Money
	notes      map[int64]map[domain.NoteType]string
	deathSaves map[int64]domain.DeathSaves
	skills     map[int64][]domain.Skill

	sessions  map[int64]domain.Session
	snapshots map[int64]domain.Snapshot
}

func newState() *state {
	return &state{
		users:        map[int64]domain.User{},
		authSessions: map[string]domain.AuthSession{},
		characters:   map[int64]domain.Character{},
		stats:        map[int64]domain.Stats{},
		slots:        map[int64]map[domain.SlotType]*int64{},
		items:        map[int64]domain.Item{},
		spellSlots:   map[int64]map[spellKey]bool{},
		money:        map[int64]domain.Money{},
		notes:        map[int64]map[domain.NoteType]string{},
		deathSaves:   map[int64]domain.DeathSaves{},
		skills:       map[int64][]domain.Skill{},
		sessions:     map[int64]domain.Session{},
		snapshots:    map[int64]domain.Snapshot{},
	}
}

func (s *state) clone() *state {
	c := newState()
	c.seq = s.seq
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.authSessions {
		c.authSessions[k] = v
	}
	for k, v := range s.characters {
		c.characters[k] = v
	}
	for k, v := range s.stats {
		c.stats[k] = v
	}
	for k, v := range s.slots {
		m := make(map[domain.SlotType]*int64, len(v))
		for slot, id := range v {
			m[slot] = copyID(id)
		}
		c.slots[k] = m
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.spellSlots {
		m := make(map[spellKey]bool, len(v))
		for key, used := range v {
			m[key] = used
		}
		c.spellSlots[k] = m
	}
	for k, v := range s.money {
		c.money[k] = v
	}
	for k, v := range s.notes {
		m := make(map[domain.NoteType]string, len(v))
		for t, content := range v {
			m[t] = content
		}
		c.notes[k] = m
	}
	for k, v := range s.deathSaves {
		c.deathSaves[k] = v
	}
	for k, v := range s.skills {
		c.skills[k] = append([]domain.Skill(nil), v...)
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	for k, v := range s.snapshots {
		c.snapshots[k] = v
	}
	return c
}

func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// Store is the committed state plus the pool-level queries.
type Store struct {
	reads

	mu sync.Mutex
	st *state

	// Now stamps created_at, started_at and friends. Tests may replace it.
	Now func() time.Time

	// FailBeginTx, when set, is returned by every BeginTx call.
	FailBeginTx error
}

// New returns an empty store.
func New() *Store {
	s := &Store{st: newState(), Now: time.Now}
	s.reads = reads{do: s.locked, now: s.now}
	return s
}

func (s *Store) now() time.Time {
	return s.Now()
}

func (s *Store) locked(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

func (s *Store) begin() (*Tx, error) {
	if s.FailBeginTx != nil {
		return nil, s.FailBeginTx
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &Tx{store: s, st: s.st.clone()}
	t.reads = reads{do: func(fn func(st *state)) { fn(t.st) }, now: s.now}
	return t, nil
}

// BeginTx implements repository.Character.
func (s *Store) BeginTx(ctx context.Context) (repository.CharacterTx, error) {
	return s.begin()
}

// BeginSessionTx returns the session flavor of a transaction.
func (s *Store) BeginSessionTx(ctx context.Context) (repository.SessionTx, error) {
	return s.begin()
}

// Sessions adapts the store to repository.Session, whose BeginTx returns a
// different transaction interface than repository.Character's.
func (s *Store) Sessions() repository.Session {
	return sessionView{s}
}

type sessionView struct {
	*Store
}

func (v sessionView) BeginTx(ctx context.Context) (repository.SessionTx, error) {
	return v.Store.BeginSessionTx(ctx)
}

// Tx is an isolated copy of the state.
type Tx struct {
	reads

	store  *Store
	st     *state
	closed bool
}

// Commit publishes the transaction's state.
func (t *Tx) Commit(ctx context.Context) error {
	if t.closed {
		return errTxClosed
	}
	t.closed = true
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.st = t.st
	return nil
}

// Rollback discards the transaction's state.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.closed {
		return errTxClosed
	}
	t.closed = true
	return nil
}

// ---- read model shared by Store and Tx ----

func getCharacter(st *state, id int64) (*domain.Character, error) {
	c, ok := st.characters[id]
	if !ok {
		return nil, domain.ErrCharacterNotFound
	}
	return &c, nil
}

func getOwner(st *state, id int64) (*int64, error) {
	c, ok := st.characters[id]
	if !ok {
		return nil, domain.ErrCharacterNotFound
	}
	return copyID(c.UserID), nil
}

func getStats(st *state, characterID int64) *domain.Stats {
	s, ok := st.stats[characterID]
	if !ok {
		return nil
	}
	return &s
}

func getEquipment(st *state, characterID int64) map[domain.SlotType]*domain.Item {
	equipment := make(map[domain.SlotType]*domain.Item, len(domain.EquipmentSlots))
	for _, slot := range domain.EquipmentSlots {
		equipment[slot] = nil
	}
	for slot, id := range st.slots[characterID] {
		if id == nil {
			continue
		}
		if item, ok := st.items[*id]; ok {
			item := item
			equipment[slot] = &item
		}
	}
	return equipment
}

func equippedIDs(st *state, characterID int64) map[int64]bool {
	ids := map[int64]bool{}
	for _, id := range st.slots[characterID] {
		if id != nil {
			ids[*id] = true
		}
	}
	return ids
}

func characterItems(st *state, characterID int64) []domain.Item {
	items := []domain.Item{}
	for _, item := range st.items {
		if item.CharacterID == characterID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func getInventory(st *state, characterID int64) []domain.Item {
	equipped := equippedIDs(st, characterID)
	items := []domain.Item{}
	for _, item := range characterItems(st, characterID) {
		if !equipped[item.ID] {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
	return items
}

func getSpellSlots(st *state, characterID int64) []bool {
	var numbers []int
	for key := range st.spellSlots[characterID] {
		if key.level == 1 {
			numbers = append(numbers, key.number)
		}
	}
	sort.Ints(numbers)
	slots := make([]bool, 0, len(numbers))
	for _, n := range numbers {
		slots = append(slots, st.spellSlots[characterID][spellKey{level: 1, number: n}])
	}
	return slots
}

func getNotes(st *state, characterID int64) map[domain.NoteType]string {
	notes := make(map[domain.NoteType]string, len(domain.NoteTypes))
	for _, t := range domain.NoteTypes {
		notes[t] = st.notes[characterID][t]
	}
	return notes
}

func getSkills(st *state, characterID int64) []domain.Skill {
	skills := append([]domain.Skill{}, st.skills[characterID]...)
	sort.Slice(skills, func(i, j int) bool { return skills[i].SkillName < skills[j].SkillName })
	return skills
}

func getOpenSession(st *state, characterID int64) *domain.Session {
	var open *domain.Session
	for _, s := range st.sessions {
		if s.CharacterID != characterID || !s.Open() {
			continue
		}
		s := s
		if open == nil || s.StartedAt.After(open.StartedAt) {
			open = &s
		}
	}
	return open
}

func getOpenSessionByID(st *state, sessionID int64) *domain.Session {
	s, ok := st.sessions[sessionID]
	if !ok || !s.Open() {
		return nil
	}
	return &s
}

func insertSnapshot(st *state, snap domain.Snapshot, now time.Time) int64 {
	snap.ID = st.nextID()
	snap.CreatedAt = now
	snap.CharacterData = append([]byte(nil), snap.CharacterData...)
	st.snapshots[snap.ID] = snap
	return snap.ID
}
