package sse

import "github.com/osse101/idlefarm/internal/domain"

// ConnectedPayload is the first message on every stream
type ConnectedPayload struct {
	ClientID string   `json:"clientId"`
	Filters  []string `json:"filters,omitempty"`
}

// HarvestedPayload tells the client which tile paid out
type HarvestedPayload struct {
	Grid      domain.GridKind `json:"grid"`
	TileIndex int             `json:"tileIndex"`
	SpeciesID string          `json:"speciesId"`
	Value     int64           `json:"value"`
	XP        int64           `json:"xp"`
}

// LeveledUpPayload carries the new level
type LeveledUpPayload struct {
	Level    int   `json:"level"`
	XPToNext int64 `json:"xpToNext"`
}

// UnlockedPayload covers tiles, the orchard and saplings
type UnlockedPayload struct {
	Kind      string          `json:"kind"`
	Grid      domain.GridKind `json:"grid"`
	SpeciesID string          `json:"speciesId,omitempty"`
	Cost      int64           `json:"cost"`
	Unlocked  int             `json:"unlocked,omitempty"`
}

// LoadedPayload mirrors the load report so the client can greet the player
type LoadedPayload struct {
	ReadyCrops int `json:"readyCrops"`
	ReadyTrees int `json:"readyTrees"`
}
