package character

import (
	"context"
	"errors"
	"fmt"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/logger"
	"github.com/devaliuz/Epic-Charaktersheet/internal/repository"
)

// saveEquipment writes all three slots. Slots missing from the payload are
// emptied; an id that does not belong to the character empties the slot.
func saveEquipment(ctx context.Context, tx repository.CharacterTx, characterID int64, in domain.EquipmentInput) error {
	log := logger.FromContext(ctx)

	for _, slot := range domain.EquipmentSlots {
		value, err := in.Slot(slot)
		if err != nil {
			return err
		}

		var itemID *int64
		switch {
		case value.Item != nil:
			id, err := findOrCreateItem(ctx, tx, characterID, *value.Item)
			if err != nil {
				return fmt.Errorf(ErrMsgSaveEquipmentFailedFmt, slot, err)
			}
			itemID = &id
		case value.ItemID > 0:
			owned, err := ownsItem(ctx, tx, characterID, value.ItemID)
			if err != nil {
				return fmt.Errorf(ErrMsgSaveEquipmentFailedFmt, slot, err)
			}
			if owned {
				id := value.ItemID
				itemID = &id
			} else {
				log.Warn(LogMsgEquipmentCleared, "character_id", characterID, "slot", slot, "item_id", value.ItemID)
			}
		}

		if err := tx.SetEquipmentSlot(ctx, characterID, slot, itemID); err != nil {
			return fmt.Errorf(ErrMsgSaveEquipmentFailedFmt, slot, err)
		}
	}
	return nil
}

// findOrCreateItem resolves an equipped item object to a stored item:
// first by id, then by name and normalized type, else a new item is
// created under the equipment category unless the object names another.
// Matched items are patched with the keys the object carries.
func findOrCreateItem(ctx context.Context, tx repository.CharacterTx, characterID int64, in domain.ItemInput) (int64, error) {
	if in.HasID() {
		existing, err := tx.GetItem(ctx, characterID, in.ID.Value)
		switch {
		case err == nil:
			return existing.ID, tx.UpdateItem(ctx, in.Patch(*existing))
		case !errors.Is(err, domain.ErrItemNotFound):
			return 0, err
		}
		logger.FromContext(ctx).Debug(LogMsgUnknownEquipmentID,
			"character_id", characterID, "item_id", in.ID.Value, "name", in.Name.Value)
	}

	itemType, _ := domain.NormalizeItemKind(in.Type.Value, in.Category.Or(domain.CategoryEquipment))
	existing, err := tx.FindItemByNameAndType(ctx, characterID, in.Name.Value, itemType)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID, tx.UpdateItem(ctx, in.Patch(*existing))
	}

	item, err := in.NewItem(characterID, domain.CategoryEquipment)
	if err != nil {
		return 0, err
	}
	return tx.InsertItem(ctx, item)
}

func ownsItem(ctx context.Context, tx repository.CharacterTx, characterID, itemID int64) (bool, error) {
	_, err := tx.GetItem(ctx, characterID, itemID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrItemNotFound):
		return false, nil
	default:
		return false, err
	}
}
