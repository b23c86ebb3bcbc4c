package character

import (
	"context"
	"fmt"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/logger"
	"github.com/devaliuz/Epic-Charaktersheet/internal/repository"
)

func createAggregate(ctx context.Context, tx repository.CharacterTx, ownerID int64, in domain.CharacterInput) (int64, ReconcileResult, error) {
	var res ReconcileResult

	owner := ownerID
	level := in.Level.Or(domain.DefaultLevel)
	id, err := tx.InsertCharacter(ctx, domain.Character{
		UserID:       &owner,
		Name:         in.Name.Or(domain.DefaultCharacterName),
		Level:        level,
		Class:        in.Class.Ptr(),
		Race:         in.Race.Ptr(),
		Background:   in.Background.Ptr(),
		Alignment:    in.Alignment.Or(domain.DefaultAlignment),
		PortraitMode: in.PortraitMode.Or(domain.DefaultPortraitMode),
	})
	if err != nil {
		return 0, res, fmt.Errorf(ErrMsgSaveBaseFailedFmt, err)
	}

	stats := domain.NewCharacterStats()
	if in.Stats != nil {
		stats = in.Stats.Resolve(domain.NewCharacterStats())
	}
	if err := tx.InsertStats(ctx, id, stats); err != nil {
		return 0, res, fmt.Errorf(ErrMsgSaveStatsFailedFmt, err)
	}

	if err := tx.InitEquipmentSlots(ctx, id); err != nil {
		return 0, res, fmt.Errorf(ErrMsgSaveEquipmentFailedFmt, "init", err)
	}

	var money domain.Money
	if in.Money != nil {
		money = in.Money.Money()
	}
	if err := tx.UpsertMoney(ctx, id, money); err != nil {
		return 0, res, fmt.Errorf(ErrMsgSaveMoneyFailedFmt, err)
	}

	switch {
	case in.SpellSlots != nil:
		if err := saveSpellSlots(ctx, tx, id, *in.SpellSlots); err != nil {
			return 0, res, err
		}
	case level >= 1:
		initial := make([]domain.FlexBool, domain.InitialSpellSlots)
		if err := saveSpellSlots(ctx, tx, id, initial); err != nil {
			return 0, res, err
		}
	}

	var saves domain.DeathSaves
	if in.DeathSaves != nil {
		saves = in.DeathSaves.DeathSaves()
	}
	if err := tx.UpsertDeathSaves(ctx, id, saves); err != nil {
		return 0, res, fmt.Errorf(ErrMsgSaveDeathSavesFailedFmt, err)
	}

	if in.Notes != nil {
		if err := saveNotes(ctx, tx, id, *in.Notes); err != nil {
			return 0, res, err
		}
	}
	if in.Equipment != nil {
		if err := saveEquipment(ctx, tx, id, *in.Equipment); err != nil {
			return 0, res, err
		}
	}
	if in.Inventory != nil {
		if res, err = saveInventory(ctx, tx, id, *in.Inventory); err != nil {
			return 0, res, err
		}
	}
	if in.Skills != nil {
		if err := saveSkills(ctx, tx, id, *in.Skills); err != nil {
			return 0, res, err
		}
	}

	return id, res, nil
}

// updateAggregate applies the keys present in the payload. The characters
// row is always touched so its version moves on every save.
func updateAggregate(ctx context.Context, tx repository.CharacterTx, id int64, in domain.CharacterInput) (ReconcileResult, error) {
	var res ReconcileResult

	var expected *int64
	if in.Version.Set {
		v := in.Version.Value
		expected = &v
	}
	if err := tx.UpdateCharacter(ctx, id, in.BasePatch(), expected); err != nil {
		return res, err
	}

	if in.Stats != nil {
		if err := saveStats(ctx, tx, id, *in.Stats); err != nil {
			return res, err
		}
	}
	if in.Equipment != nil {
		if err := saveEquipment(ctx, tx, id, *in.Equipment); err != nil {
			return res, err
		}
	}
	if in.Inventory != nil {
		var err error
		if res, err = saveInventory(ctx, tx, id, *in.Inventory); err != nil {
			return res, err
		}
	}
	if in.SpellSlots != nil {
		if err := saveSpellSlots(ctx, tx, id, *in.SpellSlots); err != nil {
			return res, err
		}
	}
	if in.Money != nil {
		if err := tx.UpsertMoney(ctx, id, in.Money.Money()); err != nil {
			return res, fmt.Errorf(ErrMsgSaveMoneyFailedFmt, err)
		}
	}
	if in.Notes != nil {
		if err := saveNotes(ctx, tx, id, *in.Notes); err != nil {
			return res, err
		}
	}
	if in.DeathSaves != nil {
		if err := tx.UpsertDeathSaves(ctx, id, in.DeathSaves.DeathSaves()); err != nil {
			return res, fmt.Errorf(ErrMsgSaveDeathSavesFailedFmt, err)
		}
	}
	if in.Skills != nil {
		if err := saveSkills(ctx, tx, id, *in.Skills); err != nil {
			return res, err
		}
	}
	return res, nil
}

// saveStats overwrites the stats row, filling missing keys with the update
// defaults. A character without a stats row gets one built from the create
// defaults instead.
func saveStats(ctx context.Context, tx repository.CharacterTx, id int64, in domain.StatsInput) error {
	updated, err := tx.UpdateStats(ctx, id, in.Resolve(domain.StatsUpdateDefaults()))
	if err != nil {
		return fmt.Errorf(ErrMsgSaveStatsFailedFmt, err)
	}
	if updated {
		return nil
	}

	logger.FromContext(ctx).Warn(LogMsgStatsRowRecreated, "character_id", id)
	if err := tx.InsertStats(ctx, id, in.Resolve(domain.NewCharacterStats())); err != nil {
		return fmt.Errorf(ErrMsgSaveStatsFailedFmt, err)
	}
	return nil
}

func saveSpellSlots(ctx context.Context, tx repository.CharacterTx, id int64, slots []domain.FlexBool) error {
	for i, used := range slots {
		if err := tx.UpsertSpellSlot(ctx, id, SpellSlotLevel, i+1, used.Value); err != nil {
			return fmt.Errorf(ErrMsgSaveSpellSlotsFailedFmt, err)
		}
	}
	return nil
}

func saveNotes(ctx context.Context, tx repository.CharacterTx, id int64, in domain.NotesInput) error {
	notes := in.Notes()
	for _, t := range domain.NoteTypes {
		if err := tx.UpsertNote(ctx, id, t, notes[t]); err != nil {
			return fmt.Errorf(ErrMsgSaveNotesFailedFmt, err)
		}
	}
	return nil
}

func saveSkills(ctx context.Context, tx repository.CharacterTx, id int64, in []domain.SkillInput) error {
	skills := make([]domain.Skill, 0, len(in))
	for _, row := range in {
		skill, err := row.Skill()
		if err != nil {
			return err
		}
		skills = append(skills, skill)
	}
	if err := tx.ReplaceSkills(ctx, id, skills); err != nil {
		return fmt.Errorf(ErrMsgSaveSkillsFailedFmt, err)
	}
	return nil
}
