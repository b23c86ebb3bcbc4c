package repository

import (
	"context"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
)

// CharacterStore reads the tables that make up a character aggregate. It is
// implemented both on the pool and inside transactions so the aggregate can
// be loaded consistently while a write is in flight.
type CharacterStore interface {
	GetCharacter(ctx context.Context, id int64) (*domain.Character, error)
	GetCharacterOwner(ctx context.Context, id int64) (*int64, error)
	GetStats(ctx context.Context, characterID int64) (*domain.Stats, error)
	GetEquipment(ctx context.Context, characterID int64) (map[domain.SlotType]*domain.Item, error)
	GetInventory(ctx context.Context, characterID int64) ([]domain.Item, error)
	GetSpellSlots(ctx context.Context, characterID int64) ([]bool, error)
	GetMoney(ctx context.Context, characterID int64) (*domain.Money, error)
	GetNotes(ctx context.Context, characterID int64) (map[domain.NoteType]string, error)
	GetDeathSaves(ctx context.Context, characterID int64) (*domain.DeathSaves, error)
	GetSkills(ctx context.Context, characterID int64) ([]domain.Skill, error)
}

// Character defines the interface for character persistence
type Character interface {
	CharacterStore
	ListCharacters(ctx context.Context) ([]domain.CharacterSummary, error)
	ListCharactersByOwner(ctx context.Context, userID int64) ([]domain.CharacterSummary, error)
	ListItems(ctx context.Context, characterID int64) ([]domain.Item, error)
	DeleteCharacter(ctx context.Context, id int64) (bool, error)
	BeginTx(ctx context.Context) (CharacterTx, error)
}

// CharacterTx defines the interface for character write transactions
type CharacterTx interface {
	Tx
	CharacterStore

	InsertCharacter(ctx context.Context, c domain.Character) (int64, error)
	// UpdateCharacter applies the patch and bumps the version. With a non-nil
	// expectedVersion the row must still carry that version.
	UpdateCharacter(ctx context.Context, id int64, patch domain.BasePatch, expectedVersion *int64) error

	InsertStats(ctx context.Context, characterID int64, stats domain.Stats) error
	// UpdateStats reports false when the character has no stats row.
	UpdateStats(ctx context.Context, characterID int64, stats domain.Stats) (bool, error)

	InitEquipmentSlots(ctx context.Context, characterID int64) error
	SetEquipmentSlot(ctx context.Context, characterID int64, slot domain.SlotType, itemID *int64) error
	GetEquippedItemIDs(ctx context.Context, characterID int64) ([]int64, error)

	GetItem(ctx context.Context, characterID, itemID int64) (*domain.Item, error)
	FindItemByNameAndType(ctx context.Context, characterID int64, name string, itemType domain.ItemType) (*domain.Item, error)
	InsertItem(ctx context.Context, item domain.Item) (int64, error)
	UpdateItem(ctx context.Context, item domain.Item) error
	// DeleteItemsExcept removes every item of the character whose id is not
	// in keep. An empty keep set removes all items.
	DeleteItemsExcept(ctx context.Context, characterID int64, keep []int64) (int64, error)

	UpsertSpellSlot(ctx context.Context, characterID int64, level, number int, used bool) error
	UpsertMoney(ctx context.Context, characterID int64, money domain.Money) error
	UpsertNote(ctx context.Context, characterID int64, noteType domain.NoteType, content string) error
	UpsertDeathSaves(ctx context.Context, characterID int64, saves domain.DeathSaves) error
	ReplaceSkills(ctx context.Context, characterID int64, skills []domain.Skill) error
}
