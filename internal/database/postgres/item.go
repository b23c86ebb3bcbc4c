package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/devaliuz/Epic-Charaktersheet/internal/database/generated"
	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
)

var itemColumnNames = []string{
	"id", "character_id", "name", "type", "category", "damage", "to_hit", "range_property",
	"combat_type", "hands", "light", "offhand_damage", "ac", "dex_bonus", "max_dex_bonus",
	"value", "quantity", "properties", "created_at",
}

var (
	itemColumns         = strings.Join(itemColumnNames, ", ")
	prefixedItemColumns = "i." + strings.Join(itemColumnNames, ", i.")
)

// scanItem reads one item row. leading receives any columns selected before
// the item columns.
func scanItem(row pgx.Row, leading ...any) (domain.Item, error) {
	var (
		item       domain.Item
		itemType   string
		properties []byte
	)
	dest := append(leading,
		&item.ID, &item.CharacterID, &item.Name, &itemType, &item.Category, &item.Damage, &item.ToHit, &item.Range,
		&item.CombatType, &item.Hands, &item.Light, &item.OffhandDamage, &item.AC, &item.DexBonus, &item.MaxDexBonus,
		&item.Value, &item.Quantity, &properties, &item.CreatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return domain.Item{}, err
	}
	item.Type = domain.ItemType(itemType)
	if len(properties) > 0 {
		item.Properties = properties
	}
	return item, nil
}

func queryItems(ctx context.Context, q generated.DBTX, query string, args ...any) ([]domain.Item, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	return items, nil
}

func (t *characterTx) GetItem(ctx context.Context, characterID, itemID int64) (*domain.Item, error) {
	item, err := scanItem(t.tx.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE id = $1 AND character_id = $2`, itemID, characterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItem, err)
	}
	return &item, nil
}

// FindItemByNameAndType returns the oldest matching item or nil.
func (t *characterTx) FindItemByNameAndType(ctx context.Context, characterID int64, name string, itemType domain.ItemType) (*domain.Item, error) {
	item, err := scanItem(t.tx.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE character_id = $1 AND name = $2 AND type = $3
		ORDER BY id
		LIMIT 1`, characterID, name, string(itemType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItem, err)
	}
	return &item, nil
}

func (t *characterTx) InsertItem(ctx context.Context, item domain.Item) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `
		INSERT INTO items (character_id, name, type, category, damage, to_hit, range_property,
		                   combat_type, hands, light, offhand_damage, ac, dex_bonus, max_dex_bonus,
		                   value, quantity, properties)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`,
		item.CharacterID, item.Name, string(item.Type), item.Category, item.Damage, item.ToHit, item.Range,
		item.CombatType, item.Hands, item.Light, item.OffhandDamage, item.AC, item.DexBonus, item.MaxDexBonus,
		item.Value, item.Quantity, nullJSON(item.Properties),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToInsertItem, err)
	}
	return id, nil
}

// UpdateItem rewrites every column of a stored item.
func (t *characterTx) UpdateItem(ctx context.Context, item domain.Item) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE items
		SET name = $3, type = $4, category = $5, damage = $6, to_hit = $7, range_property = $8,
		    combat_type = $9, hands = $10, light = $11, offhand_damage = $12, ac = $13,
		    dex_bonus = $14, max_dex_bonus = $15, value = $16, quantity = $17, properties = $18
		WHERE id = $1 AND character_id = $2`,
		item.ID, item.CharacterID, item.Name, string(item.Type), item.Category, item.Damage, item.ToHit, item.Range,
		item.CombatType, item.Hands, item.Light, item.OffhandDamage, item.AC,
		item.DexBonus, item.MaxDexBonus, item.Value, item.Quantity, nullJSON(item.Properties),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateItem, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (t *characterTx) DeleteItemsExcept(ctx context.Context, characterID int64, keep []int64) (int64, error) {
	if keep == nil {
		keep = []int64{}
	}
	tag, err := t.tx.Exec(ctx, `
		DELETE FROM items
		WHERE character_id = $1 AND NOT (id = ANY($2))`, characterID, keep)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteItems, err)
	}
	return tag.RowsAffected(), nil
}
