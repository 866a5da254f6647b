package save

// CurrentVersion is the schema version written by Serialize
const CurrentVersion = 2

// Storage slots
const (
	SlotMain   = "farmGame"
	SlotBackup = "farmGameBackup"
)

// legacySaplingDefaults are filled in by the v1 migration. Entries that are not
// known trees are dropped by the sanitizer.
var legacySaplingDefaults = []string{"oak", "apple", "cherry"}

// Save record keys read through the loose map form
const (
	keyVersion          = "version"
	keySavedAt          = "savedAt"
	keyLastSavedAt      = "lastSavedAt"
	keyCoins            = "coins"
	keySelectedCrop     = "selectedCrop"
	keySelectedTree     = "selectedTree"
	keyFarm             = "farm"
	keyTrees            = "trees"
	keyPlayer           = "player"
	keyUnlocked         = "unlocked"
	keyUnlockedTiles    = "unlockedTiles"
	keyTiles            = "tiles"
	keySaplingsUnlocked = "saplingsUnlocked"
	keyUnlockedTrees    = "unlockedTrees"
	keyFarmGrid         = "farmGrid"
	keyState            = "state"
	keyCropID           = "cropId"
	keyPlantedAt        = "plantedAt"
	keyIsCooldown       = "isCooldown"
	keyLevel            = "level"
	keyXP               = "xp"
	keyXPToNext         = "xpToNext"
)

// Recovery choices offered after a corrupt load
const (
	RecoverRestoreBackup = "restore_backup"
	RecoverReset         = "reset"
	RecoverDiscard       = "discard"
)

// Error messages
const (
	ErrMsgParseFailed      = "save is not valid JSON"
	ErrMsgNotAnObject      = "save is not a JSON object"
	ErrMsgBadVersion       = "version is not a number"
	ErrMsgSchemaFailed     = "save failed structural validation"
	ErrMsgDecodeTextFailed = "save text is not valid base64"
	ErrMsgEncodeFailed     = "failed to encode save"
	ErrMsgRecoveryRequired = "save data is corrupted, choose a recovery option"
)

// Log messages
const (
	LogMsgSaved              = "Game saved"
	LogMsgLoaded             = "Game loaded"
	LogMsgNoSave             = "No save found, starting a new game"
	LogMsgCorruptSave        = "Save data is corrupted"
	LogMsgSanitized          = "Save field repaired"
	LogMsgMigrated           = "Save migrated"
	LogMsgBackupWritten      = "Backup written"
	LogMsgImported           = "Save imported"
	LogMsgImportRejected     = "Import rejected"
	LogMsgBackupRestored     = "Backup restored"
	LogMsgResetToDefaults    = "Reset to defaults"
	LogMsgCorruptSaveCleared = "Corrupted save cleared"
)
