package character

import (
	"context"
	"errors"
	"fmt"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
	"github.com/devaliuz/Epic-Charaktersheet/internal/logger"
	"github.com/devaliuz/Epic-Charaktersheet/internal/repository"
)

// ReconcileResult counts what an inventory save did.
type ReconcileResult struct {
	Created int
	Updated int
	Deleted int64
}

// saveInventory makes the stored items match the payload. Items with an id
// the character owns are patched, everything else is created, and items
// that are neither written nor equipped are deleted. The first bad item
// fails the whole save.
func saveInventory(ctx context.Context, tx repository.CharacterTx, characterID int64, in domain.InventoryInput) (ReconcileResult, error) {
	var res ReconcileResult
	keep := make([]int64, 0, in.Len())

	for _, group := range in.Groups {
		for i, item := range group.Items {
			id, created, err := upsertItem(ctx, tx, characterID, group.Category, item)
			if err != nil {
				return res, fmt.Errorf(ErrMsgSaveInventoryItemFmt, group.Category, i, err)
			}
			if created {
				res.Created++
			} else {
				res.Updated++
			}
			keep = append(keep, id)
		}
	}

	equipped, err := tx.GetEquippedItemIDs(ctx, characterID)
	if err != nil {
		return res, fmt.Errorf(ErrMsgSaveInventoryFailedFmt, err)
	}
	keep = append(keep, equipped...)

	if res.Deleted, err = tx.DeleteItemsExcept(ctx, characterID, keep); err != nil {
		return res, fmt.Errorf(ErrMsgSaveInventoryFailedFmt, err)
	}

	logger.FromContext(ctx).Info(LogMsgInventorySaved,
		"character_id", characterID,
		"created", res.Created,
		"updated", res.Updated,
		"deleted", res.Deleted)
	return res, nil
}

// upsertItem patches the owned item named by in.ID or creates a new one.
// The group category fills in a missing category on both paths.
func upsertItem(ctx context.Context, tx repository.CharacterTx, characterID int64, category string, in domain.ItemInput) (int64, bool, error) {
	if !in.Category.Set {
		in.Category = domain.String(category)
	}

	if in.HasID() {
		existing, err := tx.GetItem(ctx, characterID, in.ID.Value)
		switch {
		case err == nil:
			if err := tx.UpdateItem(ctx, in.Patch(*existing)); err != nil {
				return 0, false, err
			}
			return existing.ID, false, nil
		case !errors.Is(err, domain.ErrItemNotFound):
			return 0, false, err
		}
	}

	item, err := in.NewItem(characterID, category)
	if err != nil {
		return 0, false, err
	}
	id, err := tx.InsertItem(ctx, item)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
