// Package save converts game state to and from the versioned save record,
// migrating older layouts and repairing damaged fields on the way in.
package save

import (
	"time"

	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/farm"
	"github.com/osse101/idlefarm/internal/game"
	"github.com/osse101/idlefarm/internal/progression"
)

// TileRecord is one serialized tile. PlantedAt is unix milliseconds, nil when unset.
type TileRecord struct {
	State      domain.TileState `json:"state"`
	CropID     string           `json:"cropId,omitempty"`
	PlantedAt  *int64           `json:"plantedAt"`
	IsCooldown bool             `json:"isCooldown"`
}

// FarmRecord is the crop grid
type FarmRecord struct {
	UnlockedTiles int          `json:"unlockedTiles"`
	Tiles         []TileRecord `json:"tiles"`
}

// TreesRecord is the orchard
type TreesRecord struct {
	Unlocked         bool            `json:"unlocked"`
	UnlockedTiles    int             `json:"unlockedTiles"`
	SaplingsUnlocked map[string]bool `json:"saplingsUnlocked"`
	Tiles            []TileRecord    `json:"tiles"`
}

// Record is the persisted save, version 2 layout
type Record struct {
	Version      int                `json:"version"`
	SavedAt      int64              `json:"savedAt"`
	Coins        int64              `json:"coins"`
	SelectedCrop string             `json:"selectedCrop"`
	SelectedTree string             `json:"selectedTree"`
	Farm         FarmRecord         `json:"farm"`
	Trees        TreesRecord        `json:"trees"`
	Player       progression.Player `json:"player"`
}

// Serialize captures s as a current-version record stamped with now
func Serialize(s game.State, now time.Time) Record {
	saplings := make(map[string]bool, len(s.Saplings))
	for id, unlocked := range s.Saplings {
		saplings[id] = unlocked
	}

	return Record{
		Version:      CurrentVersion,
		SavedAt:      now.UnixMilli(),
		Coins:        s.Coins,
		SelectedCrop: s.SelectedCrop,
		SelectedTree: s.SelectedTree,
		Farm: FarmRecord{
			UnlockedTiles: s.Farm.UnlockedTiles,
			Tiles:         tileRecords(s.Farm.Tiles),
		},
		Trees: TreesRecord{
			Unlocked:         s.OrchardUnlocked,
			UnlockedTiles:    s.Orchard.UnlockedTiles,
			SaplingsUnlocked: saplings,
			Tiles:            tileRecords(s.Orchard.Tiles),
		},
		Player: s.Player,
	}
}

// State rebuilds game state from a sanitized record
func (r Record) State() game.State {
	return game.State{
		Coins:           r.Coins,
		SelectedCrop:    r.SelectedCrop,
		SelectedTree:    r.SelectedTree,
		Farm:            game.GridState{UnlockedTiles: r.Farm.UnlockedTiles, Tiles: tiles(r.Farm.Tiles)},
		Orchard:         game.GridState{UnlockedTiles: r.Trees.UnlockedTiles, Tiles: tiles(r.Trees.Tiles)},
		OrchardUnlocked: r.Trees.Unlocked,
		Saplings:        r.Trees.SaplingsUnlocked,
		Player:          r.Player,
	}
}

func tileRecords(tiles []farm.Tile) []TileRecord {
	out := make([]TileRecord, len(tiles))
	for i, t := range tiles {
		rec := TileRecord{State: t.State, CropID: t.SpeciesID, IsCooldown: t.IsCooldown}
		if rec.State == "" {
			rec.State = domain.TileEmpty
		}
		if !t.PlantedAt.IsZero() {
			ms := t.PlantedAt.UnixMilli()
			rec.PlantedAt = &ms
		}
		out[i] = rec
	}
	return out
}

func tiles(records []TileRecord) []farm.Tile {
	out := make([]farm.Tile, len(records))
	for i, rec := range records {
		t := farm.Tile{State: rec.State, SpeciesID: rec.CropID, IsCooldown: rec.IsCooldown}
		if rec.PlantedAt != nil {
			t.PlantedAt = time.UnixMilli(*rec.PlantedAt).UTC()
		}
		out[i] = t
	}
	return out
}
