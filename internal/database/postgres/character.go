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
	_ repository.Character   = (*CharacterRepository)(nil)
	_ repository.CharacterTx = (*characterTx)(nil)
)

// CharacterRepository implements repository.Character for PostgreSQL
type CharacterRepository struct {
	characterStore
	pool *pgxpool.Pool
}

// NewCharacterRepository creates a new CharacterRepository
func NewCharacterRepository(pool *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{
		characterStore: newCharacterStore(pool),
		pool:           pool,
	}
}

// BeginTx starts a character write transaction
func (r *CharacterRepository) BeginTx(ctx context.Context) (repository.CharacterTx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &characterTx{
		pgTx:           pgTx{tx: tx},
		characterStore: newCharacterStore(tx),
	}, nil
}

const characterSummaryColumns = `id, user_id, name, level, class, race, alignment, portrait_mode`

// ListCharacters returns every character ordered by name, with its owner id.
func (r *CharacterRepository) ListCharacters(ctx context.Context) ([]domain.CharacterSummary, error) {
	return r.listSummaries(ctx, `
		SELECT `+characterSummaryColumns+`
		FROM characters
		ORDER BY name, id`)
}

// ListCharactersByOwner returns the characters owned by userID. The owner
// id is left out of the rows.
func (r *CharacterRepository) ListCharactersByOwner(ctx context.Context, userID int64) ([]domain.CharacterSummary, error) {
	summaries, err := r.listSummaries(ctx, `
		SELECT `+characterSummaryColumns+`
		FROM characters
		WHERE user_id = $1
		ORDER BY name, id`, userID)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].UserID = nil
	}
	return summaries, nil
}

func (r *CharacterRepository) listSummaries(ctx context.Context, query string, args ...any) ([]domain.CharacterSummary, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCharacters, err)
	}
	defer rows.Close()

	summaries := []domain.CharacterSummary{}
	for rows.Next() {
		var s domain.CharacterSummary
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Level, &s.Class, &s.Race, &s.Alignment, &s.PortraitMode); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCharacters, err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCharacters, err)
	}
	return summaries, nil
}

// ListItems returns every item of a character, equipped or not.
func (r *CharacterRepository) ListItems(ctx context.Context, characterID int64) ([]domain.Item, error) {
	return queryItems(ctx, r.pool, `
		SELECT `+itemColumns+`
		FROM items
		WHERE character_id = $1
		ORDER BY id`, characterID)
}

// DeleteCharacter removes the character; dependent rows cascade. It reports
// whether a row was deleted.
func (r *CharacterRepository) DeleteCharacter(ctx context.Context, id int64) (bool, error) {
	n, err := r.q.DeleteCharacter(ctx, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteCharacter, err)
	}
	return n > 0, nil
}

// characterStore implements repository.CharacterStore on the pool or a
// transaction. The aggregate reads that join items stay hand-written on db.
type characterStore struct {
	db generated.DBTX
	q  *generated.Queries
}

func newCharacterStore(db generated.DBTX) characterStore {
	return characterStore{db: db, q: generated.New(db)}
}

func (s characterStore) GetCharacter(ctx context.Context, id int64) (*domain.Character, error) {
	var c domain.Character
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, level, class, race, background, alignment,
		       portrait_mode, version, created_at, updated_at
		FROM characters
		WHERE id = $1`, id).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Level, &c.Class, &c.Race, &c.Background, &c.Alignment,
		&c.PortraitMode, &c.Version, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCharacter, err)
	}
	return &c, nil
}

func (s characterStore) GetCharacterOwner(ctx context.Context, id int64) (*int64, error) {
	owner, err := s.q.GetCharacterOwner(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCharacter, err)
	}
	return int8ToPtr(owner), nil
}

// GetStats returns nil when the character has no stats row.
func (s characterStore) GetStats(ctx context.Context, characterID int64) (*domain.Stats, error) {
	row, err := s.q.GetCharacterStats(ctx, characterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStats, err)
	}
	return &domain.Stats{
		Str:              int(row.Str),
		Dex:              int(row.Dex),
		Con:              int(row.Con),
		Int:              int(row.IntStat),
		Wis:              int(row.Wis),
		Cha:              int(row.Cha),
		CurrentHP:        int(row.CurrentHp),
		MaxHP:            int(row.MaxHp),
		TempHP:           int(row.TempHp),
		ArmorClass:       int(row.ArmorClass),
		ProficiencyBonus: int(row.ProficiencyBonus),
		CurrentXP:        int(row.CurrentXp),
		CurrentBI:        int(row.CurrentBi),
		MaxBI:            int(row.MaxBi),
		CurrentHD:        int(row.CurrentHd),
		MaxHD:            int(row.MaxHd),
	}, nil
}

// GetEquipment returns every slot; empty slots map to nil.
func (s characterStore) GetEquipment(ctx context.Context, characterID int64) (map[domain.SlotType]*domain.Item, error) {
	equipment := make(map[domain.SlotType]*domain.Item, len(domain.EquipmentSlots))
	for _, slot := range domain.EquipmentSlots {
		equipment[slot] = nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT es.slot_type, `+prefixedItemColumns+`
		FROM equipment_slots es
		JOIN items i ON i.id = es.item_id
		WHERE es.character_id = $1`, characterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetEquipment, err)
	}
	defer rows.Close()

	for rows.Next() {
		var slot string
		item, err := scanItem(rows, &slot)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetEquipment, err)
		}
		equipment[domain.SlotType(slot)] = &item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetEquipment, err)
	}
	return equipment, nil
}

// GetInventory returns the unequipped items ordered by category then name.
func (s characterStore) GetInventory(ctx context.Context, characterID int64) ([]domain.Item, error) {
	return queryItems(ctx, s.db, `
		SELECT `+itemColumns+`
		FROM items i
		WHERE i.character_id = $1
		  AND NOT EXISTS (SELECT 1 FROM equipment_slots es WHERE es.item_id = i.id)
		ORDER BY i.category, i.name, i.id`, characterID)
}

// GetSpellSlots returns the used flags of the level 1 slots in slot order.
func (s characterStore) GetSpellSlots(ctx context.Context, characterID int64) ([]bool, error) {
	slots, err := s.q.ListLevelOneSpellSlots(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSpellSlots, err)
	}
	if slots == nil {
		slots = []bool{}
	}
	return slots, nil
}

// GetMoney returns nil when no purse row exists.
func (s characterStore) GetMoney(ctx context.Context, characterID int64) (*domain.Money, error) {
	row, err := s.q.GetMoney(ctx, characterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetMoney, err)
	}
	return &domain.Money{Gold: int(row.Gold), Silver: int(row.Silver), Copper: int(row.Copper)}, nil
}

// GetNotes returns every note panel; missing panels are empty.
func (s characterStore) GetNotes(ctx context.Context, characterID int64) (map[domain.NoteType]string, error) {
	notes := make(map[domain.NoteType]string, len(domain.NoteTypes))
	for _, t := range domain.NoteTypes {
		notes[t] = ""
	}

	rows, err := s.q.ListNotes(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetNotes, err)
	}
	for _, row := range rows {
		notes[domain.NoteType(row.Type)] = row.Content
	}
	return notes, nil
}

// GetDeathSaves returns nil when no row exists.
func (s characterStore) GetDeathSaves(ctx context.Context, characterID int64) (*domain.DeathSaves, error) {
	row, err := s.q.GetDeathSaves(ctx, characterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetDeathSaves, err)
	}
	return &domain.DeathSaves{Successes: int(row.Successes), Failures: int(row.Failures)}, nil
}

func (s characterStore) GetSkills(ctx context.Context, characterID int64) ([]domain.Skill, error) {
	rows, err := s.q.ListSkills(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSkills, err)
	}
	skills := make([]domain.Skill, 0, len(rows))
	for _, row := range rows {
		skills = append(skills, domain.Skill{
			SkillName:  row.SkillName,
			Proficient: row.Proficient,
			Expertise:  row.Expertise,
			Bonus:      int(row.Bonus),
		})
	}
	return skills, nil
}
