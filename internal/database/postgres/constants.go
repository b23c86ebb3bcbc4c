package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeForeignKeyViolation is raised when a referenced row does not exist
	PgErrorCodeForeignKeyViolation = "23503"
)

// Constraint names referenced when mapping unique violations
const (
	ConstraintOneOpenSession = "idx_sessions_one_open_per_character"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Character Operations
const (
	ErrMsgFailedToGetCharacter    = "failed to get character"
	ErrMsgFailedToListCharacters  = "failed to list characters"
	ErrMsgFailedToInsertCharacter = "failed to insert character"
	ErrMsgFailedToUpdateCharacter = "failed to update character"
	ErrMsgFailedToDeleteCharacter = "failed to delete character"
	ErrMsgFailedToGetStats        = "failed to get stats"
	ErrMsgFailedToSaveStats       = "failed to save stats"
	ErrMsgFailedToGetEquipment    = "failed to get equipment"
	ErrMsgFailedToSaveEquipment   = "failed to save equipment slot"
	ErrMsgFailedToGetSpellSlots   = "failed to get spell slots"
	ErrMsgFailedToSaveSpellSlot   = "failed to save spell slot"
	ErrMsgFailedToGetMoney        = "failed to get money"
	ErrMsgFailedToSaveMoney       = "failed to save money"
	ErrMsgFailedToGetNotes        = "failed to get notes"
	ErrMsgFailedToSaveNote        = "failed to save note"
	ErrMsgFailedToGetDeathSaves   = "failed to get death saves"
	ErrMsgFailedToSaveDeathSaves  = "failed to save death saves"
	ErrMsgFailedToGetSkills       = "failed to get skills"
	ErrMsgFailedToReplaceSkills   = "failed to replace skills"
)

// Error Messages - Item Operations
const (
	ErrMsgFailedToGetItem      = "failed to get item"
	ErrMsgFailedToListItems    = "failed to list items"
	ErrMsgFailedToInsertItem   = "failed to insert item"
	ErrMsgFailedToUpdateItem   = "failed to update item"
	ErrMsgFailedToDeleteItems  = "failed to delete items"
	ErrMsgFailedToMarshalProps = "failed to marshal item properties"
)

// Error Messages - Session Operations
const (
	ErrMsgFailedToGetSession     = "failed to get session"
	ErrMsgFailedToListSessions   = "failed to list sessions"
	ErrMsgFailedToInsertSession  = "failed to insert session"
	ErrMsgFailedToCloseSession   = "failed to close session"
	ErrMsgFailedToGetSnapshot    = "failed to get snapshot"
	ErrMsgFailedToListSnapshots  = "failed to list snapshots"
	ErrMsgFailedToInsertSnapshot = "failed to insert snapshot"
)

// Error Messages - User Operations
const (
	ErrMsgFailedToCountUsers        = "failed to count users"
	ErrMsgFailedToInsertUser        = "failed to insert user"
	ErrMsgFailedToGetUser           = "failed to get user"
	ErrMsgFailedToCreateAuthSession = "failed to create auth session"
	ErrMsgFailedToGetAuthSession    = "failed to get auth session"
	ErrMsgFailedToDeleteAuthSession = "failed to delete auth session"
	ErrMsgFailedToSweepAuthSessions = "failed to delete expired auth sessions"
)
