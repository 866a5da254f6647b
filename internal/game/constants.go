package game

import "time"

// OrchardUnlockCost is the one-time price of the tree grid
const OrchardUnlockCost = 10000

// Display progress is cached briefly; views poll far more often than tiles change
const (
	ProgressCacheSize = 64
	ProgressCacheTTL  = time.Second
)

// Log messages
const (
	LogMsgPlanted         = "Planted"
	LogMsgHarvested       = "Harvested"
	LogMsgRemoved         = "Tile cleared"
	LogMsgTileUnlocked    = "Tile unlocked"
	LogMsgOrchardUnlocked = "Orchard unlocked"
	LogMsgSaplingUnlocked = "Sapling unlocked"
	LogMsgLeveledUp       = "Player leveled up"
	LogMsgTilesReady      = "Tiles ready to harvest"
	LogMsgPublishFailed   = "Event delivery reported failures"
	LogMsgStateRestored   = "Game state restored"
	LogMsgStateReset      = "Game state reset to defaults"
)

// Error formats
const (
	ErrFmtUnknownSpecies = "%w: '%s'"
	ErrFmtCropLocked     = "%w: %s unlocks at level %d"
	ErrFmtSaplingLocked  = "%w: %s sapling not purchased"
	ErrFmtFunds          = "%w: need %d, have %d"
)
