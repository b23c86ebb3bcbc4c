package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeItemKind(t *testing.T) {
	tests := []struct {
		name         string
		rawType      string
		rawCategory  string
		wantType     ItemType
		wantCategory string
	}{
		{"explicit weapon", "weapon", "", ItemTypeWeapon, CategoryEquipment},
		{"explicit armor keeps equipment tab", "armor", "tools", ItemTypeArmor, CategoryEquipment},
		{"plural type typo", "tools", "", ItemTypeTool, CategoryTools},
		{"plural consumables", "Consumables", "", ItemTypeConsumable, CategoryConsumables},
		{"type wins over category", "consumable", "tools", ItemTypeConsumable, CategoryConsumables},
		{"category infers type", "", "tools", ItemTypeTool, CategoryTools},
		{"singular category typo", "", "consumable", ItemTypeConsumable, CategoryConsumables},
		{"explicit equipment beats category", "equipment", "treasure", ItemTypeEquipment, CategoryEquipment},
		{"explicit equipment beats tools category", "equipment", "tools", ItemTypeEquipment, CategoryEquipment},
		{"explicit weapon beats tools category", "weapon", "tools", ItemTypeWeapon, CategoryEquipment},
		{"unknown type falls back to category", "gizmo", "tools", ItemTypeTool, CategoryTools},
		{"unknown everything defaults to equipment", "gizmo", "junk", ItemTypeEquipment, CategoryEquipment},
		{"empty defaults to equipment", "", "", ItemTypeEquipment, CategoryEquipment},
		{"case and space folding", "  TREASURES ", "", ItemTypeTreasure, CategoryTreasure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotCategory := NormalizeItemKind(tt.rawType, tt.rawCategory)
			assert.Equal(t, tt.wantType, gotType)
			assert.Equal(t, tt.wantCategory, gotCategory)
		})
	}
}

func TestAuditItem(t *testing.T) {
	assert.Empty(t, AuditItem(Item{Type: ItemTypeTool, Category: CategoryTools}))
	assert.Empty(t, AuditItem(Item{Type: ItemTypeWeapon, Category: CategoryEquipment}))

	assert.Len(t, AuditItem(Item{Type: "tools", Category: ""}), 2)
	assert.Equal(t,
		[]string{"type 'weapon' does not match category 'tools'"},
		AuditItem(Item{Type: ItemTypeWeapon, Category: CategoryTools}))
}

func TestItemInputPatch_Kind(t *testing.T) {
	tests := []struct {
		name         string
		stored       Item
		patch        ItemInput
		wantType     ItemType
		wantCategory string
	}{
		{
			name:         "category moves generic item",
			stored:       Item{Type: ItemTypeEquipment, Category: CategoryEquipment},
			patch:        ItemInput{Category: String("tools")},
			wantType:     ItemTypeTool,
			wantCategory: CategoryTools,
		},
		{
			name:         "category cannot move weapon",
			stored:       Item{Type: ItemTypeWeapon, Category: CategoryEquipment},
			patch:        ItemInput{Category: String("tools")},
			wantType:     ItemTypeWeapon,
			wantCategory: CategoryEquipment,
		},
		{
			name:         "explicit equipment type wins",
			stored:       Item{Type: ItemTypeTool, Category: CategoryTools},
			patch:        ItemInput{Type: String("equipment"), Category: String("tools")},
			wantType:     ItemTypeEquipment,
			wantCategory: CategoryEquipment,
		},
		{
			name:         "untouched kind",
			stored:       Item{Type: ItemTypeTool, Category: CategoryTools},
			patch:        ItemInput{Quantity: Int32(3)},
			wantType:     ItemTypeTool,
			wantCategory: CategoryTools,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.patch.Patch(tt.stored)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantCategory, got.Category)
		})
	}
}

func TestNormalizeStoredKind(t *testing.T) {
	gotType, gotCategory := NormalizeStoredKind(ItemTypeEquipment, CategoryConsumables)
	assert.Equal(t, ItemTypeConsumable, gotType)
	assert.Equal(t, CategoryConsumables, gotCategory)

	gotType, gotCategory = NormalizeStoredKind(ItemTypeArmor, CategoryTools)
	assert.Equal(t, ItemTypeArmor, gotType)
	assert.Equal(t, CategoryEquipment, gotCategory)
}
