package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
)

// reads implements repository.CharacterStore and the session lookups on
// either the committed state or a transaction's copy.
type reads struct {
	do  func(fn func(st *state))
	now func() time.Time
}

func (r reads) GetCharacter(ctx context.Context, id int64) (c *domain.Character, err error) {
	r.do(func(st *state) { c, err = getCharacter(st, id) })
	return c, err
}

func (r reads) GetCharacterOwner(ctx context.Context, id int64) (owner *int64, err error) {
	r.do(func(st *state) { owner, err = getOwner(st, id) })
	return owner, err
}

func (r reads) GetStats(ctx context.Context, characterID int64) (s *domain.Stats, err error) {
	r.do(func(st *state) { s = getStats(st, characterID) })
	return s, nil
}

func (r reads) GetEquipment(ctx context.Context, characterID int64) (m map[domain.SlotType]*domain.Item, err error) {
	r.do(func(st *state) { m = getEquipment(st, characterID) })
	return m, nil
}

func (r reads) GetInventory(ctx context.Context, characterID int64) (items []domain.Item, err error) {
	r.do(func(st *state) { items = getInventory(st, characterID) })
	return items, nil
}

func (r reads) GetSpellSlots(ctx context.Context, characterID int64) (slots []bool, err error) {
	r.do(func(st *state) { slots = getSpellSlots(st, characterID) })
	return slots, nil
}

func (r reads) GetMoney(ctx context.Context, characterID int64) (m *domain.Money, err error) {
	r.do(func(st *state) {
		if v, ok := st.money[characterID]; ok {
			m = &v
		}
	})
	return m, nil
}

func (r reads) GetNotes(ctx context.Context, characterID int64) (notes map[domain.NoteType]string, err error) {
	r.do(func(st *state) { notes = getNotes(st, characterID) })
	return notes, nil
}

func (r reads) GetDeathSaves(ctx context.Context, characterID int64) (d *domain.DeathSaves, err error) {
	r.do(func(st *state) {
		if v, ok := st.deathSaves[characterID]; ok {
			d = &v
		}
	})
	return d, nil
}

func (r reads) GetSkills(ctx context.Context, characterID int64) (skills []domain.Skill, err error) {
	r.do(func(st *state) { skills = getSkills(st, characterID) })
	return skills, nil
}

func (r reads) GetOpenSession(ctx context.Context, characterID int64) (s *domain.Session, err error) {
	r.do(func(st *state) { s = getOpenSession(st, characterID) })
	return s, nil
}

func (r reads) GetOpenSessionByID(ctx context.Context, sessionID int64) (s *domain.Session, err error) {
	r.do(func(st *state) { s = getOpenSessionByID(st, sessionID) })
	return s, nil
}

func (r reads) InsertSnapshot(ctx context.Context, snap domain.Snapshot) (id int64, err error) {
	r.do(func(st *state) {
		if _, ok := st.characters[snap.CharacterID]; !ok {
			err = domain.ErrCharacterNotFound
			return
		}
		id = insertSnapshot(st, snap, r.now())
	})
	return id, err
}

// ListCharacters implements repository.Character.
func (s *Store) ListCharacters(ctx context.Context) ([]domain.CharacterSummary, error) {
	return s.listSummaries(func(c domain.Character) bool { return true }, true), nil
}

// ListCharactersByOwner implements repository.Character.
func (s *Store) ListCharactersByOwner(ctx context.Context, userID int64) ([]domain.CharacterSummary, error) {
	return s.listSummaries(func(c domain.Character) bool {
		return c.UserID != nil && *c.UserID == userID
	}, false), nil
}

func (s *Store) listSummaries(keep func(domain.Character) bool, withOwner bool) []domain.CharacterSummary {
	summaries := []domain.CharacterSummary{}
	s.locked(func(st *state) {
		for _, c := range st.characters {
			if !keep(c) {
				continue
			}
			summary := domain.CharacterSummary{
				ID:           c.ID,
				Name:         c.Name,
				Level:        c.Level,
				Class:        c.Class,
				Race:         c.Race,
				Alignment:    c.Alignment,
				PortraitMode: c.PortraitMode,
			}
			if withOwner {
				summary.UserID = copyID(c.UserID)
			}
			summaries = append(summaries, summary)
		}
	})
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Name != summaries[j].Name {
			return summaries[i].Name < summaries[j].Name
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries
}

// ListItems implements repository.Character.
func (s *Store) ListItems(ctx context.Context, characterID int64) (items []domain.Item, err error) {
	s.locked(func(st *state) { items = characterItems(st, characterID) })
	return items, nil
}

// DeleteCharacter implements repository.Character. Dependent rows go with it.
func (s *Store) DeleteCharacter(ctx context.Context, id int64) (deleted bool, err error) {
	s.locked(func(st *state) {
		if _, ok := st.characters[id]; !ok {
			return
		}
		deleteCharacter(st, id)
		deleted = true
	})
	return deleted, nil
}

func deleteCharacter(st *state, id int64) {
	delete(st.characters, id)
	delete(st.stats, id)
	delete(st.slots, id)
	delete(st.spellSlots, id)
	delete(st.money, id)
	delete(st.notes, id)
	delete(st.deathSaves, id)
	delete(st.skills, id)
	for itemID, item := range st.items {
		if item.CharacterID == id {
			delete(st.items, itemID)
		}
	}
	for sessionID, sess := range st.sessions {
		if sess.CharacterID == id {
			delete(st.sessions, sessionID)
		}
	}
	for snapID, snap := range st.snapshots {
		if snap.CharacterID == id {
			delete(st.snapshots, snapID)
		}
	}
}

// ---- CharacterTx ----

func (t *Tx) InsertCharacter(ctx context.Context, c domain.Character) (int64, error) {
	if c.UserID != nil {
		if _, ok := t.st.users[*c.UserID]; !ok {
			return 0, domain.ErrUserNotFound
		}
	}
	now := t.now()
	c.ID = t.st.nextID()
	c.UserID = copyID(c.UserID)
	c.Version = 1
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Stats, c.Equipment, c.Inventory, c.SpellSlots, c.Notes, c.Skills = nil, nil, nil, nil, nil, nil
	t.st.characters[c.ID] = c
	return c.ID, nil
}

func (t *Tx) UpdateCharacter(ctx context.Context, id int64, patch domain.BasePatch, expectedVersion *int64) error {
	c, ok := t.st.characters[id]
	if !ok {
		return domain.ErrCharacterNotFound
	}
	if expectedVersion != nil && c.Version != *expectedVersion {
		return domain.ErrVersionConflict
	}
	if patch.SetUserID && patch.UserID != nil {
		if _, ok := t.st.users[*patch.UserID]; !ok {
			return domain.ErrUserNotFound
		}
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Level != nil {
		c.Level = *patch.Level
	}
	if patch.Class != nil {
		c.Class = patch.Class
	}
	if patch.Race != nil {
		c.Race = patch.Race
	}
	if patch.Background != nil {
		c.Background = patch.Background
	}
	if patch.Alignment != nil {
		c.Alignment = *patch.Alignment
	}
	if patch.PortraitMode != nil {
		c.PortraitMode = *patch.PortraitMode
	}
	if patch.SetUserID {
		c.UserID = copyID(patch.UserID)
	}
	c.Version++
	c.UpdatedAt = t.now()
	t.st.characters[id] = c
	return nil
}

func (t *Tx) InsertStats(ctx context.Context, characterID int64, stats domain.Stats) error {
	t.st.stats[characterID] = stats
	return nil
}

func (t *Tx) UpdateStats(ctx context.Context, characterID int64, stats domain.Stats) (bool, error) {
	if _, ok := t.st.stats[characterID]; !ok {
		return false, nil
	}
	t.st.stats[characterID] = stats
	return true, nil
}

func (t *Tx) InitEquipmentSlots(ctx context.Context, characterID int64) error {
	slots, ok := t.st.slots[characterID]
	if !ok {
		slots = map[domain.SlotType]*int64{}
		t.st.slots[characterID] = slots
	}
	for _, slot := range domain.EquipmentSlots {
		if _, ok := slots[slot]; !ok {
			slots[slot] = nil
		}
	}
	return nil
}

func (t *Tx) SetEquipmentSlot(ctx context.Context, characterID int64, slot domain.SlotType, itemID *int64) error {
	if itemID != nil {
		if _, ok := t.st.items[*itemID]; !ok {
			return domain.ErrItemNotFound
		}
	}
	slots, ok := t.st.slots[characterID]
	if !ok {
		slots = map[domain.SlotType]*int64{}
		t.st.slots[characterID] = slots
	}
	slots[slot] = copyID(itemID)
	return nil
}

func (t *Tx) GetEquippedItemIDs(ctx context.Context, characterID int64) ([]int64, error) {
	ids := []int64{}
	for id := range equippedIDs(t.st, characterID) {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (t *Tx) GetItem(ctx context.Context, characterID, itemID int64) (*domain.Item, error) {
	item, ok := t.st.items[itemID]
	if !ok || item.CharacterID != characterID {
		return nil, domain.ErrItemNotFound
	}
	return &item, nil
}

func (t *Tx) FindItemByNameAndType(ctx context.Context, characterID int64, name string, itemType domain.ItemType) (*domain.Item, error) {
	for _, item := range characterItems(t.st, characterID) {
		if item.Name == name && item.Type == itemType {
			item := item
			return &item, nil
		}
	}
	return nil, nil
}

func (t *Tx) InsertItem(ctx context.Context, item domain.Item) (int64, error) {
	if _, ok := t.st.characters[item.CharacterID]; !ok {
		return 0, domain.ErrCharacterNotFound
	}
	item.ID = t.st.nextID()
	item.CreatedAt = t.now()
	t.st.items[item.ID] = item
	return item.ID, nil
}

func (t *Tx) UpdateItem(ctx context.Context, item domain.Item) error {
	stored, ok := t.st.items[item.ID]
	if !ok || stored.CharacterID != item.CharacterID {
		return domain.ErrItemNotFound
	}
	item.CreatedAt = stored.CreatedAt
	t.st.items[item.ID] = item
	return nil
}

func (t *Tx) DeleteItemsExcept(ctx context.Context, characterID int64, keep []int64) (int64, error) {
	retain := make(map[int64]bool, len(keep))
	for _, id := range keep {
		retain[id] = true
	}
	var deleted int64
	for id, item := range t.st.items {
		if item.CharacterID != characterID || retain[id] {
			continue
		}
		delete(t.st.items, id)
		deleted++
		// equipment_slots.item_id is ON DELETE SET NULL
		for _, slots := range t.st.slots {
			for slot, itemID := range slots {
				if itemID != nil && *itemID == id {
					slots[slot] = nil
				}
			}
		}
	}
	return deleted, nil
}

func (t *Tx) UpsertSpellSlot(ctx context.Context, characterID int64, level, number int, used bool) error {
	slots, ok := t.st.spellSlots[characterID]
	if !ok {
		slots = map[spellKey]bool{}
		t.st.spellSlots[characterID] = slots
	}
	slots[spellKey{level: level, number: number}] = used
	return nil
}

func (t *Tx) UpsertMoney(ctx context.Context, characterID int64, money domain.Money) error {
	t.st.money[characterID] = money
	return nil
}

func (t *Tx) UpsertNote(ctx context.Context, characterID int64, noteType domain.NoteType, content string) error {
	notes, ok := t.st.notes[characterID]
	if !ok {
		notes = map[domain.NoteType]string{}
		t.st.notes[characterID] = notes
	}
	notes[noteType] = content
	return nil
}

func (t *Tx) UpsertDeathSaves(ctx context.Context, characterID int64, saves domain.DeathSaves) error {
	t.st.deathSaves[characterID] = saves
	return nil
}

func (t *Tx) ReplaceSkills(ctx context.Context, characterID int64, skills []domain.Skill) error {
	byName := map[string]domain.Skill{}
	var order []string
	for _, sk := range skills {
		if _, seen := byName[sk.SkillName]; !seen {
			order = append(order, sk.SkillName)
		}
		byName[sk.SkillName] = sk
	}
	replaced := make([]domain.Skill, 0, len(order))
	for _, name := range order {
		replaced = append(replaced, byName[name])
	}
	t.st.skills[characterID] = replaced
	return nil
}
