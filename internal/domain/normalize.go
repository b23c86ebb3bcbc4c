package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Historical data entry used plural forms for item types and singular forms
// for categories. These tables repair both directions.
var (
	typeTypos = map[string]ItemType{
		"tools":       ItemTypeTool,
		"consumables": ItemTypeConsumable,
		"weapons":     ItemTypeWeapon,
		"treasures":   ItemTypeTreasure,
		"armors":      ItemTypeArmor,
	}
	categoryTypos = map[string]string{
		"tool":       CategoryTools,
		"consumable": CategoryConsumables,
		"treasures":  CategoryTreasure,
		"equipments": CategoryEquipment,
	}
	typeForCategory = map[string]ItemType{
		CategoryTools:       ItemTypeTool,
		CategoryConsumables: ItemTypeConsumable,
		CategoryTreasure:    ItemTypeTreasure,
	}
	categoryForType = map[ItemType]string{
		ItemTypeTool:       CategoryTools,
		ItemTypeConsumable: CategoryConsumables,
		ItemTypeTreasure:   CategoryTreasure,
	}
)

// NormalizeItemKind returns a consistent (type, category) pair.
//
// Type precedence:
//  1. an explicit valid type (plural typos singularized)
//  2. the type implied by the category (tools, consumables, treasure)
//  3. equipment
//
// The category always follows the resolved type: tool, consumable and
// treasure have their own tab, everything else lives under equipment.
func NormalizeItemKind(rawType, rawCategory string) (ItemType, string) {
	t := fold(rawType)
	c := fold(rawCategory)
	if fixed, ok := categoryTypos[c]; ok {
		c = fixed
	}

	itemType := ItemType(t)
	if fixed, ok := typeTypos[t]; ok {
		itemType = fixed
	}
	if !itemType.Valid() {
		itemType = ItemTypeEquipment
		if inferred, ok := typeForCategory[c]; ok {
			itemType = inferred
		}
	}

	if category, ok := categoryForType[itemType]; ok {
		return itemType, category
	}
	return itemType, CategoryEquipment
}

// NormalizeStoredKind normalizes the kind of an already stored item against
// a category. Stored data used "equipment" as the fallback type, so a stored
// generic type yields to the category instead of counting as explicit.
func NormalizeStoredKind(stored ItemType, category string) (ItemType, string) {
	if stored == ItemTypeEquipment {
		return NormalizeItemKind("", category)
	}
	return NormalizeItemKind(string(stored), category)
}

// AuditItem lists the consistency problems of a stored item. An empty result
// means the item is clean.
func AuditItem(item Item) []string {
	var issues []string
	if !item.Type.Valid() {
		issues = append(issues, fmt.Sprintf("invalid type '%s'", item.Type))
	}
	if !ValidCategory(item.Category) {
		issues = append(issues, "missing or invalid category")
	}
	if want, ok := typeForCategory[item.Category]; ok && item.Type != want {
		issues = append(issues, fmt.Sprintf("type '%s' does not match category '%s'", item.Type, item.Category))
	}
	return issues
}

func fold(s string) string {
	// Casers are stateful, so one per call.
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}
