package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/devaliuz/Epic-Charaktersheet/internal/database/generated"
	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
)

// characterTx implements repository.CharacterTx
type characterTx struct {
	pgTx
	characterStore
}

func (t *characterTx) InsertCharacter(ctx context.Context, c domain.Character) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `
		INSERT INTO characters (user_id, name, level, class, race, background, alignment, portrait_mode)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		c.UserID, c.Name, c.Level, c.Class, c.Race, c.Background, c.Alignment, c.PortraitMode,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToInsertCharacter, err)
	}
	return id, nil
}

// UpdateCharacter always bumps version and updated_at, even for an empty patch.
func (t *characterTx) UpdateCharacter(ctx context.Context, id int64, patch domain.BasePatch, expectedVersion *int64) error {
	sets := []string{"version = version + 1", "updated_at = NOW()"}
	args := []any{id}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Level != nil {
		add("level", *patch.Level)
	}
	if patch.Class != nil {
		add("class", *patch.Class)
	}
	if patch.Race != nil {
		add("race", *patch.Race)
	}
	if patch.Background != nil {
		add("background", *patch.Background)
	}
	if patch.Alignment != nil {
		add("alignment", *patch.Alignment)
	}
	if patch.PortraitMode != nil {
		add("portrait_mode", *patch.PortraitMode)
	}
	if patch.SetUserID {
		add("user_id", patch.UserID)
	}

	query := "UPDATE characters SET " + strings.Join(sets, ", ") + " WHERE id = $1"
	if expectedVersion != nil {
		args = append(args, *expectedVersion)
		query += fmt.Sprintf(" AND version = $%d", len(args))
	}

	tag, err := t.tx.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateCharacter, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	if _, err := t.GetCharacterOwner(ctx, id); err != nil {
		return err
	}
	return domain.ErrVersionConflict
}

func (t *characterTx) InsertStats(ctx context.Context, characterID int64, st domain.Stats) error {
	err := t.q.InsertCharacterStats(ctx, generated.InsertCharacterStatsParams{
		CharacterID:      characterID,
		Str:              int32(st.Str),
		Dex:              int32(st.Dex),
		Con:              int32(st.Con),
		IntStat:          int32(st.Int),
		Wis:              int32(st.Wis),
		Cha:              int32(st.Cha),
		CurrentHp:        int32(st.CurrentHP),
		MaxHp:            int32(st.MaxHP),
		TempHp:           int32(st.TempHP),
		ArmorClass:       int32(st.ArmorClass),
		ProficiencyBonus: int32(st.ProficiencyBonus),
		CurrentXp:        int32(st.CurrentXP),
		CurrentBi:        int32(st.CurrentBI),
		MaxBi:            int32(st.MaxBI),
		CurrentHd:        int32(st.CurrentHD),
		MaxHd:            int32(st.MaxHD),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveStats, err)
	}
	return nil
}

func (t *characterTx) UpdateStats(ctx context.Context, characterID int64, st domain.Stats) (bool, error) {
	n, err := t.q.UpdateCharacterStats(ctx, generated.UpdateCharacterStatsParams{
		CharacterID:      characterID,
		Str:              int32(st.Str),
		Dex:              int32(st.Dex),
		Con:              int32(st.Con),
		IntStat:          int32(st.Int),
		Wis:              int32(st.Wis),
		Cha:              int32(st.Cha),
		CurrentHp:        int32(st.CurrentHP),
		MaxHp:            int32(st.MaxHP),
		TempHp:           int32(st.TempHP),
		ArmorClass:       int32(st.ArmorClass),
		ProficiencyBonus: int32(st.ProficiencyBonus),
		CurrentXp:        int32(st.CurrentXP),
		CurrentBi:        int32(st.CurrentBI),
		MaxBi:            int32(st.MaxBI),
		CurrentHd:        int32(st.CurrentHD),
		MaxHd:            int32(st.MaxHD),
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToSaveStats, err)
	}
	return n > 0, nil
}

func (t *characterTx) InitEquipmentSlots(ctx context.Context, characterID int64) error {
	for _, slot := range domain.EquipmentSlots {
		err := t.q.InitEquipmentSlot(ctx, generated.InitEquipmentSlotParams{
			CharacterID: characterID,
			SlotType:    string(slot),
		})
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToSaveEquipment, err)
		}
	}
	return nil
}

func (t *characterTx) SetEquipmentSlot(ctx context.Context, characterID int64, slot domain.SlotType, itemID *int64) error {
	err := t.q.SetEquipmentSlot(ctx, generated.SetEquipmentSlotParams{
		CharacterID: characterID,
		SlotType:    string(slot),
		ItemID:      ptrToInt8(itemID),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveEquipment, err)
	}
	return nil
}

func (t *characterTx) GetEquippedItemIDs(ctx context.Context, characterID int64) ([]int64, error) {
	rows, err := t.q.ListEquippedItemIDs(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetEquipment, err)
	}
	ids := make([]int64, 0, len(rows))
	for _, id := range rows {
		if id.Valid {
			ids = append(ids, id.Int64)
		}
	}
	return ids, nil
}

func (t *characterTx) UpsertSpellSlot(ctx context.Context, characterID int64, level, number int, used bool) error {
	err := t.q.UpsertSpellSlot(ctx, generated.UpsertSpellSlotParams{
		CharacterID: characterID,
		SlotLevel:   int32(level),
		SlotNumber:  int32(number),
		Used:        used,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveSpellSlot, err)
	}
	return nil
}

func (t *characterTx) UpsertMoney(ctx context.Context, characterID int64, m domain.Money) error {
	err := t.q.UpsertMoney(ctx, generated.UpsertMoneyParams{
		CharacterID: characterID,
		Gold:        int32(m.Gold),
		Silver:      int32(m.Silver),
		Copper:      int32(m.Copper),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveMoney, err)
	}
	return nil
}

func (t *characterTx) UpsertNote(ctx context.Context, characterID int64, noteType domain.NoteType, content string) error {
	err := t.q.UpsertNote(ctx, generated.UpsertNoteParams{
		CharacterID: characterID,
		Type:        string(noteType),
		Content:     content,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveNote, err)
	}
	return nil
}

func (t *characterTx) UpsertDeathSaves(ctx context.Context, characterID int64, d domain.DeathSaves) error {
	err := t.q.UpsertDeathSaves(ctx, generated.UpsertDeathSavesParams{
		CharacterID: characterID,
		Successes:   int32(d.Successes),
		Failures:    int32(d.Failures),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveDeathSaves, err)
	}
	return nil
}

// ReplaceSkills deletes every skill row and inserts the given set.
func (t *characterTx) ReplaceSkills(ctx context.Context, characterID int64, skills []domain.Skill) error {
	if err := t.q.DeleteSkills(ctx, characterID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToReplaceSkills, err)
	}
	for _, sk := range skills {
		err := t.q.UpsertSkill(ctx, generated.UpsertSkillParams{
			CharacterID: characterID,
			SkillName:   sk.SkillName,
			Proficient:  sk.Proficient,
			Expertise:   sk.Expertise,
			Bonus:       int32(sk.Bonus),
		})
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToReplaceSkills, err)
		}
	}
	return nil
}
