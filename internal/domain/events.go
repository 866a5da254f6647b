package domain

// Event type constants used for event bus subscriptions and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "crop.harvested")
const (
	// EventTypeCropHarvested is published after a farm tile is harvested
	EventTypeCropHarvested = "crop.harvested"

	// EventTypeTreeHarvested is published after an orchard tile is harvested
	EventTypeTreeHarvested = "tree.harvested"

	// EventTypePlayerLeveledUp is published once per level gained
	EventTypePlayerLeveledUp = "player.leveled_up"

	EventTypeTileUnlocked    = "tile.unlocked"
	EventTypeOrchardUnlocked = "orchard.unlocked"
	EventTypeSaplingUnlocked = "sapling.unlocked"

	EventTypeGameSaved  = "game.saved"
	EventTypeGameLoaded = "game.loaded"
)

// HarvestedPayload is the event payload for crop.harvested and tree.harvested
type HarvestedPayload struct {
	Grid      GridKind `json:"grid"`
	SpeciesID string   `json:"species_id"`
	TileIndex int      `json:"tile_index"`
	Value     int64    `json:"value"`
	XP        int64    `json:"xp"`
	Timestamp int64    `json:"timestamp"`
}

// LeveledUpPayload is the event payload for player.leveled_up
type LeveledUpPayload struct {
	NewLevel  int   `json:"new_level"`
	XPToNext  int64 `json:"xp_to_next"`
	Timestamp int64 `json:"timestamp"`
}

// UnlockedPayload is shared by the tile, orchard and sapling unlock events
type UnlockedPayload struct {
	Grid      GridKind `json:"grid,omitempty"`
	SpeciesID string   `json:"species_id,omitempty"`
	Cost      int64    `json:"cost"`
	Unlocked  int      `json:"unlocked,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// SaveEventPayload is the event payload for game.saved and game.loaded
type SaveEventPayload struct {
	Slot       string `json:"slot"`
	ReadyCrops int    `json:"ready_crops,omitempty"`
	ReadyTrees int    `json:"ready_trees,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}
