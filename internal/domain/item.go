package domain

import (
	"encoding/json"
	"time"
)

// ItemType is the mechanical kind of an item.
type ItemType string

const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeArmor      ItemType = "armor"
	ItemTypeConsumable ItemType = "consumable"
	ItemTypeTool       ItemType = "tool"
	ItemTypeTreasure   ItemType = "treasure"
	ItemTypeEquipment  ItemType = "equipment"
)

// Inventory categories as shown by the sheet's inventory tabs.
const (
	CategoryEquipment   = "equipment"
	CategoryConsumables = "consumables"
	CategoryTools       = "tools"
	CategoryTreasure    = "treasure"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeWeapon, ItemTypeArmor, ItemTypeConsumable, ItemTypeTool, ItemTypeTreasure, ItemTypeEquipment:
		return true
	}
	return false
}

// ValidCategory reports whether c is one of the known inventory categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryEquipment, CategoryConsumables, CategoryTools, CategoryTreasure:
		return true
	}
	return false
}

// Item is a single inventory or equipment entry owned by a character.
type Item struct {
	ID            int64           `json:"id"`
	CharacterID   int64           `json:"-"`
	Name          string          `json:"name"`
	Type          ItemType        `json:"type"`
	Category      string          `json:"category"`
	Damage        *string         `json:"damage"`
	ToHit         *string         `json:"toHit"`
	Range         *string         `json:"range"`
	CombatType    *string         `json:"combatType"`
	Hands         *string         `json:"hands"`
	Light         bool            `json:"light"`
	OffhandDamage *string         `json:"offhandDamage"`
	AC            *int            `json:"ac"`
	DexBonus      bool            `json:"dexBonus"`
	MaxDexBonus   *int            `json:"maxDexBonus"`
	Value         *string         `json:"value"`
	Quantity      int             `json:"quantity"`
	Properties    json.RawMessage `json:"properties"`
	CreatedAt     time.Time       `json:"-"`
}

// ItemInput is an item as sent by the sheet. Only keys that carry a value
// are applied when patching an existing item.
type ItemInput struct {
	ID            FlexInt         `json:"id"`
	Name          FlexString      `json:"name"`
	Type          FlexString      `json:"type"`
	Category      FlexString      `json:"category"`
	Damage        FlexString      `json:"damage"`
	ToHit         FlexString      `json:"toHit"`
	Range         FlexString      `json:"range"`
	CombatType    FlexString      `json:"combatType"`
	Hands         FlexString      `json:"hands"`
	Light         FlexBool        `json:"light"`
	OffhandDamage FlexString      `json:"offhandDamage"`
	AC            FlexInt32       `json:"ac"`
	DexBonus      FlexBool        `json:"dexBonus"`
	MaxDexBonus   FlexInt32       `json:"maxDexBonus"`
	Value         FlexString      `json:"value"`
	Quantity      FlexInt32       `json:"quantity"`
	Properties    json.RawMessage `json:"properties"`
}

// HasID reports whether the input references a stored item.
func (in ItemInput) HasID() bool {
	return in.ID.Set && in.ID.Value > 0
}

// NewItem builds a fresh item from the input. defaultCategory applies when
// the input names no category. Type and category are normalized.
func (in ItemInput) NewItem(characterID int64, defaultCategory string) (Item, error) {
	if !in.Name.Set || in.Name.Value == "" {
		return Item{}, ErrItemNameMissing
	}
	itemType, category := NormalizeItemKind(in.Type.Value, in.Category.Or(defaultCategory))
	item := Item{
		CharacterID:   characterID,
		Name:          in.Name.Value,
		Type:          itemType,
		Category:      category,
		Damage:        in.Damage.Ptr(),
		ToHit:         in.ToHit.Ptr(),
		Range:         in.Range.Ptr(),
		CombatType:    in.CombatType.Ptr(),
		Hands:         in.Hands.Ptr(),
		Light:         in.Light.Value,
		OffhandDamage: in.OffhandDamage.Ptr(),
		AC:            in.AC.Ptr(),
		DexBonus:      in.DexBonus.Value,
		MaxDexBonus:   in.MaxDexBonus.Ptr(),
		Value:         in.Value.Ptr(),
		Quantity:      in.Quantity.Or(DefaultItemQuantity),
		Properties:    in.properties(),
	}
	return item, nil
}

// Patch applies the present keys of the input onto a stored item. If either
// type or category changed the pair is normalized again.
func (in ItemInput) Patch(item Item) Item {
	if in.Name.Set && in.Name.Value != "" {
		item.Name = in.Name.Value
	}
	switch {
	case in.Type.Set:
		item.Type, item.Category = NormalizeItemKind(in.Type.Value, in.Category.Or(item.Category))
	case in.Category.Set:
		item.Type, item.Category = NormalizeStoredKind(item.Type, in.Category.Value)
	}
	if in.Quantity.Set {
		item.Quantity = int(in.Quantity.Value)
	}
	patchString(&item.Damage, in.Damage)
	patchString(&item.ToHit, in.ToHit)
	patchString(&item.Range, in.Range)
	patchString(&item.CombatType, in.CombatType)
	patchString(&item.Hands, in.Hands)
	patchString(&item.OffhandDamage, in.OffhandDamage)
	patchString(&item.Value, in.Value)
	if in.Light.Set {
		item.Light = in.Light.Value
	}
	if in.DexBonus.Set {
		item.DexBonus = in.DexBonus.Value
	}
	if in.AC.Set {
		item.AC = in.AC.Ptr()
	}
	if in.MaxDexBonus.Set {
		item.MaxDexBonus = in.MaxDexBonus.Ptr()
	}
	if p := in.properties(); p != nil {
		item.Properties = p
	}
	return item
}

func (in ItemInput) properties() json.RawMessage {
	if len(in.Properties) == 0 || string(in.Properties) == "null" {
		return nil
	}
	return in.Properties
}

func patchString(dst **string, v FlexString) {
	if v.Set {
		*dst = v.Ptr()
	}
}
