package character

import (
	"context"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/repository"
)

// LoadAggregate assembles the full character from its tables. It works on
// the pool as well as inside a transaction, so snapshots taken while a
// session starts or ends see the same state as the write.
func LoadAggregate(ctx context.Context, store repository.CharacterStore, id int64) (*domain.Character, error) {
	c, err := store.GetCharacter(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.Stats, err = store.GetStats(ctx, id); err != nil {
		return nil, err
	}
	if c.Equipment, err = store.GetEquipment(ctx, id); err != nil {
		return nil, err
	}
	if c.Inventory, err = store.GetInventory(ctx, id); err != nil {
		return nil, err
	}
	if c.SpellSlots, err = store.GetSpellSlots(ctx, id); err != nil {
		return nil, err
	}

	money, err := store.GetMoney(ctx, id)
	if err != nil {
		return nil, err
	}
	if money != nil {
		c.Money = *money
	}

	if c.Notes, err = store.GetNotes(ctx, id); err != nil {
		return nil, err
	}

	saves, err := store.GetDeathSaves(ctx, id)
	if err != nil {
		return nil, err
	}
	if saves != nil {
		c.DeathSaves = *saves
	}

	if c.Skills, err = store.GetSkills(ctx, id); err != nil {
		return nil, err
	}

	normalizeEmpty(c)
	return c, nil
}

// normalizeEmpty makes empty collections encode as [] and {} rather than null.
func normalizeEmpty(c *domain.Character) {
	if c.Equipment == nil {
		c.Equipment = map[domain.SlotType]*domain.Item{}
	}
	for _, slot := range domain.EquipmentSlots {
		if _, ok := c.Equipment[slot]; !ok {
			c.Equipment[slot] = nil
		}
	}
	if c.Inventory == nil {
		c.Inventory = []domain.Item{}
	}
	if c.SpellSlots == nil {
		c.SpellSlots = []bool{}
	}
	if c.Notes == nil {
		c.Notes = map[domain.NoteType]string{}
	}
	if c.Skills == nil {
		c.Skills = []domain.Skill{}
	}
}
