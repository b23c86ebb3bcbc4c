package character

// ==================== Error Messages ====================

// Database operation error messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgLoadCharacterFailed     = "failed to load character: %w"
	ErrMsgListCharactersFailed    = "failed to list characters: %w"
	ErrMsgDeleteCharacterFailed   = "failed to delete character: %w"
	ErrMsgListItemsFailed         = "failed to list items: %w"
)

// Formatted error messages for the aggregate parts
const (
	ErrMsgSaveBaseFailedFmt       = "failed to save character: %w"
	ErrMsgSaveStatsFailedFmt      = "failed to save stats: %w"
	ErrMsgSaveEquipmentFailedFmt  = "failed to save equipment slot %s: %w"
	ErrMsgSaveInventoryItemFmt    = "inventory %s item %d: %w"
	ErrMsgSaveInventoryFailedFmt  = "failed to save inventory: %w"
	ErrMsgSaveSpellSlotsFailedFmt = "failed to save spell slots: %w"
	ErrMsgSaveMoneyFailedFmt      = "failed to save money: %w"
	ErrMsgSaveNotesFailedFmt      = "failed to save notes: %w"
	ErrMsgSaveDeathSavesFailedFmt = "failed to save death saves: %w"
	ErrMsgSaveSkillsFailedFmt     = "failed to save skills: %w"
	ErrMsgFixItemFailedFmt        = "failed to fix item %d: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgBeginTxFailed      = "Failed to begin transaction"
	LogMsgCommitTxFailed     = "Failed to commit transaction"
	LogMsgCharacterCreated   = "Character created"
	LogMsgCharacterUpdated   = "Character updated"
	LogMsgCharacterDeleted   = "Character deleted"
	LogMsgCreateFailed       = "Character create rolled back"
	LogMsgUpdateFailed       = "Character update rolled back"
	LogMsgInventorySaved     = "Inventory reconciled"
	LogMsgStatsRowRecreated  = "Stats row missing, recreated with defaults"
	LogMsgEquipmentCleared   = "Equipment slot referenced a foreign item, slot cleared"
	LogMsgAccessDenied       = "Character access denied"
	LogMsgUserIDIgnored      = "Ignoring user_id change from non-admin"
	LogMsgItemsAudited       = "Items audited"
	LogMsgItemFixed          = "Item normalized"
	LogMsgDeleteOnMissing    = "Delete requested for missing character"
	LogMsgUnknownEquipmentID = "Equipment slot references unknown item"
)

// ==================== Defaults ====================

// SpellSlotLevel is the only slot level the sheet tracks.
const SpellSlotLevel = 1
