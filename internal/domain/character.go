package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Character defaults applied on create.
const (
	DefaultCharacterName = "New Character"
	DefaultLevel         = 1
	DefaultAlignment     = "CN"
	DefaultPortraitMode  = "civil"
	DefaultItemQuantity  = 1

	// InitialSpellSlots is the number of level-1 slots a new caster starts with.
	InitialSpellSlots = 2
	MaxDeathSaves     = 3
)

// SlotType names an equipment slot.
type SlotType string

const (
	SlotArmor    SlotType = "armor"
	SlotMainhand SlotType = "mainhand"
	SlotOffhand  SlotType = "offhand"
)

// EquipmentSlots lists every slot in storage order.
var EquipmentSlots = []SlotType{SlotArmor, SlotMainhand, SlotOffhand}

// NoteType names one of the sheet's free-text note panels.
type NoteType string

const (
	NoteAdventure   NoteType = "adventure"
	NoteCharacter   NoteType = "character"
	NotePerformance NoteType = "performance"
)

// NoteTypes lists every note panel.
var NoteTypes = []NoteType{NoteAdventure, NoteCharacter, NotePerformance}

// Character is the full aggregate as served to the sheet and stored in
// snapshots.
type Character struct {
	ID           int64               `json:"id"`
	UserID       *int64              `json:"user_id"`
	Name         string              `json:"name"`
	Level        int                 `json:"level"`
	Class        *string             `json:"class"`
	Race         *string             `json:"race"`
	Background   *string             `json:"background"`
	Alignment    string              `json:"alignment"`
	PortraitMode string              `json:"portrait_mode"`
	Version      int64               `json:"version"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Stats        *Stats              `json:"stats"`
	Equipment    map[SlotType]*Item  `json:"equipment"`
	Inventory    []Item              `json:"inventory"`
	SpellSlots   []bool              `json:"spellSlots"`
	Money        Money               `json:"money"`
	Notes        map[NoteType]string `json:"notes"`
	DeathSaves   DeathSaves          `json:"deathSaves"`
	Skills       []Skill             `json:"skills"`
}

// CharacterSummary is one row of the character list.
type CharacterSummary struct {
	ID           int64   `json:"id"`
	UserID       *int64  `json:"user_id,omitempty"`
	Name         string  `json:"name"`
	Level        int     `json:"level"`
	Class        *string `json:"class"`
	Race         *string `json:"race"`
	Alignment    string  `json:"alignment"`
	PortraitMode string  `json:"portrait_mode"`
}

// Stats holds ability scores and the tracked combat resources.
type Stats struct {
	Str              int `json:"str"`
	Dex              int `json:"dex"`
	Con              int `json:"con"`
	Int              int `json:"int"`
	Wis              int `json:"wis"`
	Cha              int `json:"cha"`
	CurrentHP        int `json:"current_hp"`
	MaxHP            int `json:"max_hp"`
	TempHP           int `json:"temp_hp"`
	ArmorClass       int `json:"armor_class"`
	ProficiencyBonus int `json:"proficiency_bonus"`
	CurrentXP        int `json:"current_xp"`
	CurrentBI        int `json:"current_bi"`
	MaxBI            int `json:"max_bi"`
	CurrentHD        int `json:"current_hd"`
	MaxHD            int `json:"max_hd"`
}

// NewCharacterStats returns the stats of a freshly rolled level 1 character.
func NewCharacterStats() Stats {
	return Stats{
		Str: 8, Dex: 8, Con: 8, Int: 8, Wis: 8, Cha: 8,
		CurrentHP: 9, MaxHP: 9, TempHP: 0,
		ArmorClass: 15, ProficiencyBonus: 2, CurrentXP: 0,
		CurrentBI: 2, MaxBI: 3,
		CurrentHD: 1, MaxHD: 1,
	}
}

// StatsUpdateDefaults fills keys missing from a stats update. They differ
// from the create defaults: an update payload replaces the whole row.
func StatsUpdateDefaults() Stats {
	return Stats{
		Str: 8, Dex: 8, Con: 8, Int: 8, Wis: 8, Cha: 8,
		CurrentHP: 0, MaxHP: 0, TempHP: 0,
		ArmorClass: 10, ProficiencyBonus: 2, CurrentXP: 0,
		CurrentBI: 0, MaxBI: 3,
		CurrentHD: 1, MaxHD: 1,
	}
}

// Money is the coin purse.
type Money struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Copper int `json:"copper"`
}

// DeathSaves are stored as counters and rendered as the list of checked
// boxes, e.g. 2 successes -> [1, 2].
type DeathSaves struct {
	Successes int
	Failures  int
}

// MarshalJSON implements json.Marshaler.
func (d DeathSaves) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Successes []int `json:"successes"`
		Failures  []int `json:"failures"`
	}{
		Successes: markers(d.Successes),
		Failures:  markers(d.Failures),
	})
}

// UnmarshalJSON accepts both the marker lists and plain counters.
func (d *DeathSaves) UnmarshalJSON(data []byte) error {
	var in DeathSavesInput
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*d = in.DeathSaves()
	return nil
}

func markers(n int) []int {
	out := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, i)
	}
	return out
}

// Skill is one proficiency row.
type Skill struct {
	SkillName  string `json:"skill_name"`
	Proficient bool   `json:"proficient"`
	Expertise  bool   `json:"expertise"`
	Bonus      int    `json:"bonus"`
}

// CharacterInput is a create or partial update payload. Keys that are absent
// (or null, except user_id) leave the stored value untouched.
type CharacterInput struct {
	Name         FlexString       `json:"name"`
	Level        FlexInt32        `json:"level"`
	Class        FlexString       `json:"class"`
	Race         FlexString       `json:"race"`
	Background   FlexString       `json:"background"`
	Alignment    FlexString       `json:"alignment"`
	PortraitMode FlexString       `json:"portrait_mode"`
	UserID       NullableID       `json:"user_id"`
	Version      FlexInt          `json:"version"`
	Stats        *StatsInput      `json:"stats"`
	Equipment    *EquipmentInput  `json:"equipment"`
	Inventory    *InventoryInput  `json:"inventory"`
	SpellSlots   *[]FlexBool      `json:"spellSlots"`
	Money        *MoneyInput      `json:"money"`
	Notes        *NotesInput      `json:"notes"`
	DeathSaves   *DeathSavesInput `json:"deathSaves"`
	Skills       *[]SkillInput    `json:"skills"`
}

// BasePatch lists the columns of the characters row to change.
type BasePatch struct {
	Name         *string
	Level        *int
	Class        *string
	Race         *string
	Background   *string
	Alignment    *string
	PortraitMode *string
	SetUserID    bool
	UserID       *int64
}

// BasePatch extracts the characters row changes.
func (in CharacterInput) BasePatch() BasePatch {
	p := BasePatch{
		Name:         in.Name.Ptr(),
		Level:        in.Level.Ptr(),
		Class:        in.Class.Ptr(),
		Race:         in.Race.Ptr(),
		Background:   in.Background.Ptr(),
		Alignment:    in.Alignment.Ptr(),
		PortraitMode: in.PortraitMode.Ptr(),
	}
	if in.UserID.Set {
		p.SetUserID = true
		p.UserID = in.UserID.Ptr()
	}
	return p
}

// StatsInput is a stats payload. The sheet sends "int"; older clients sent
// the column name "int_stat".
type StatsInput struct {
	Str              FlexInt32 `json:"str"`
	Dex              FlexInt32 `json:"dex"`
	Con              FlexInt32 `json:"con"`
	Int              FlexInt32 `json:"int"`
	IntStat          FlexInt32 `json:"int_stat"`
	Wis              FlexInt32 `json:"wis"`
	Cha              FlexInt32 `json:"cha"`
	CurrentHP        FlexInt32 `json:"current_hp"`
	MaxHP            FlexInt32 `json:"max_hp"`
	TempHP           FlexInt32 `json:"temp_hp"`
	ArmorClass       FlexInt32 `json:"armor_class"`
	ProficiencyBonus FlexInt32 `json:"proficiency_bonus"`
	CurrentXP        FlexInt32 `json:"current_xp"`
	CurrentBI        FlexInt32 `json:"current_bi"`
	MaxBI            FlexInt32 `json:"max_bi"`
	CurrentHD        FlexInt32 `json:"current_hd"`
	MaxHD            FlexInt32 `json:"max_hd"`
}

// Resolve fills every key missing from the payload from defaults.
func (in StatsInput) Resolve(defaults Stats) Stats {
	intStat := in.Int
	if !intStat.Set {
		intStat = in.IntStat
	}
	return Stats{
		Str:              in.Str.Or(defaults.Str),
		Dex:              in.Dex.Or(defaults.Dex),
		Con:              in.Con.Or(defaults.Con),
		Int:              intStat.Or(defaults.Int),
		Wis:              in.Wis.Or(defaults.Wis),
		Cha:              in.Cha.Or(defaults.Cha),
		CurrentHP:        in.CurrentHP.Or(defaults.CurrentHP),
		MaxHP:            in.MaxHP.Or(defaults.MaxHP),
		TempHP:           in.TempHP.Or(defaults.TempHP),
		ArmorClass:       in.ArmorClass.Or(defaults.ArmorClass),
		ProficiencyBonus: in.ProficiencyBonus.Or(defaults.ProficiencyBonus),
		CurrentXP:        in.CurrentXP.Or(defaults.CurrentXP),
		CurrentBI:        in.CurrentBI.Or(defaults.CurrentBI),
		MaxBI:            in.MaxBI.Or(defaults.MaxBI),
		CurrentHD:        in.CurrentHD.Or(defaults.CurrentHD),
		MaxHD:            in.MaxHD.Or(defaults.MaxHD),
	}
}

// MoneyInput is a money payload; missing coins count as zero.
type MoneyInput struct {
	Gold   FlexInt32 `json:"gold"`
	Silver FlexInt32 `json:"silver"`
	Copper FlexInt32 `json:"copper"`
}

// Money resolves the payload.
func (in MoneyInput) Money() Money {
	return Money{Gold: in.Gold.Or(0), Silver: in.Silver.Or(0), Copper: in.Copper.Or(0)}
}

// NotesInput is a notes payload; missing panels are saved empty.
type NotesInput struct {
	Adventure   FlexString `json:"adventure"`
	Character   FlexString `json:"character"`
	Performance FlexString `json:"performance"`
}

// Notes resolves the payload into all three panels.
func (in NotesInput) Notes() map[NoteType]string {
	return map[NoteType]string{
		NoteAdventure:   in.Adventure.Or(""),
		NoteCharacter:   in.Character.Or(""),
		NotePerformance: in.Performance.Or(""),
	}
}

// DeathSavesInput is a death-save payload.
type DeathSavesInput struct {
	Successes FlexCount `json:"successes"`
	Failures  FlexCount `json:"failures"`
}

// DeathSaves resolves the payload.
func (in DeathSavesInput) DeathSaves() DeathSaves {
	return DeathSaves{Successes: in.Successes.Value, Failures: in.Failures.Value}
}

// SkillInput is one skill row of a payload.
type SkillInput struct {
	SkillName  FlexString `json:"skill_name"`
	Proficient FlexBool   `json:"proficient"`
	Expertise  FlexBool   `json:"expertise"`
	Bonus      FlexInt32  `json:"bonus"`
}

// Skill resolves the row. A row without a name is rejected.
func (in SkillInput) Skill() (Skill, error) {
	if !in.SkillName.Set || in.SkillName.Value == "" {
		return Skill{}, ErrSkillNameMissing
	}
	return Skill{
		SkillName:  in.SkillName.Value,
		Proficient: in.Proficient.Value,
		Expertise:  in.Expertise.Value,
		Bonus:      in.Bonus.Or(0),
	}, nil
}

// EquipmentInput maps each slot to null, an item id, or an item object.
// Slots missing from the payload are emptied.
type EquipmentInput map[SlotType]json.RawMessage

// SlotValue is a decoded equipment slot value.
type SlotValue struct {
	ItemID int64
	Item   *ItemInput
}

// Slot decodes the value for one slot. A zero SlotValue means "empty".
func (e EquipmentInput) Slot(slot SlotType) (SlotValue, error) {
	raw, ok := e[slot]
	raw = bytes.TrimSpace(raw)
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return SlotValue{}, nil
	}
	if raw[0] == '{' {
		var item ItemInput
		if err := json.Unmarshal(raw, &item); err != nil {
			return SlotValue{}, fmt.Errorf("%w: slot %s: %v", ErrInvalidPayload, slot, err)
		}
		if !item.Name.Set || item.Name.Value == "" {
			return SlotValue{}, nil
		}
		return SlotValue{Item: &item}, nil
	}
	var id FlexInt
	if err := json.Unmarshal(raw, &id); err != nil {
		// Anything else (false, arrays) means the slot is empty.
		return SlotValue{}, nil
	}
	if !id.Set || id.Value <= 0 {
		return SlotValue{}, nil
	}
	return SlotValue{ItemID: id.Value}, nil
}

// InventoryGroup is a set of items sharing a default category.
type InventoryGroup struct {
	Category string
	Items    []ItemInput
}

// InventoryInput accepts either a flat list of items or an object keyed by
// category: {"equipment": [...], "consumables": [...]}.
type InventoryInput struct {
	Groups []InventoryGroup
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *InventoryInput) UnmarshalJSON(data []byte) error {
	in.Groups = nil
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}

	if trimmed[0] == '[' {
		var items []ItemInput
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("%w: inventory: %v", ErrInvalidPayload, err)
		}
		in.Groups = []InventoryGroup{{Category: CategoryEquipment, Items: items}}
		return nil
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return fmt.Errorf("%w: inventory: %v", ErrInvalidPayload, err)
	}
	categories := make([]string, 0, len(keyed))
	for category := range keyed {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		raw := bytes.TrimSpace(keyed[category])
		if len(raw) == 0 || raw[0] != '[' {
			continue
		}
		var items []ItemInput
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("%w: inventory %s: %v", ErrInvalidPayload, category, err)
		}
		in.Groups = append(in.Groups, InventoryGroup{Category: category, Items: items})
	}
	return nil
}

// Len returns the number of items across all groups.
func (in InventoryInput) Len() int {
	n := 0
	for _, g := range in.Groups {
		n += len(g.Items)
	}
	return n
}
