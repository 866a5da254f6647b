package farm

import (
	"fmt"
	"time"

	"github.com/osse101/idlefarm/internal/domain"
)

// Species is the catalog view a grid needs
type Species interface {
	Timing
	IsValidFor(id string, category domain.Category) bool
	IsTree(id string) bool
	Value(id string) int64
	XPFor(id string) int64
}

// Wallet is debited when a tile is unlocked
type Wallet interface {
	Spend(amount int64) error
}

// HarvestOutcome is what a successful harvest yields
type HarvestOutcome struct {
	Grid      domain.GridKind
	TileIndex int
	SpeciesID string
	Value     int64
	XP        int64
}

// Grid is a fixed-size set of tiles of which the first UnlockedTiles are usable
type Grid struct {
	kind     domain.GridKind
	tiles    []Tile
	unlocked int
	cost     CostFunc
	species  Species
}

// NewGrid creates a grid with one unlocked tile
func NewGrid(kind domain.GridKind, maxTiles int, cost CostFunc, species Species) *Grid {
	tiles := make([]Tile, maxTiles)
	for i := range tiles {
		tiles[i] = NewTile()
	}
	return &Grid{
		kind:     kind,
		tiles:    tiles,
		unlocked: 1,
		cost:     cost,
		species:  species,
	}
}

// NewFarmGrid creates the 5x5 crop grid
func NewFarmGrid(species Species) *Grid {
	return NewGrid(domain.GridFarm, MaxFarmTiles, FarmUnlockCost, species)
}

// NewOrchardGrid creates the 3x3 tree grid
func NewOrchardGrid(species Species) *Grid {
	return NewGrid(domain.GridOrchard, MaxOrchardTiles, OrchardUnlockCost, species)
}

func (g *Grid) Kind() domain.GridKind { return g.kind }
func (g *Grid) MaxTiles() int         { return len(g.tiles) }
func (g *Grid) UnlockedTiles() int    { return g.unlocked }

// Tile returns a copy of the tile at index
func (g *Grid) Tile(index int) (Tile, error) {
	if index < 0 || index >= len(g.tiles) {
		return Tile{}, fmt.Errorf(ErrFmtIndex, domain.ErrTileOutOfRange, index, len(g.tiles))
	}
	return g.tiles[index], nil
}

// Tiles returns a copy of every tile, locked ones included
func (g *Grid) Tiles() []Tile {
	out := make([]Tile, len(g.tiles))
	copy(out, g.tiles)
	return out
}

func (g *Grid) unlockedTile(index int) (*Tile, error) {
	if index < 0 || index >= len(g.tiles) {
		return nil, fmt.Errorf(ErrFmtIndex, domain.ErrTileOutOfRange, index, len(g.tiles))
	}
	if index >= g.unlocked {
		return nil, fmt.Errorf(ErrFmtLocked, domain.ErrTileLocked, index, g.unlocked)
	}
	return &g.tiles[index], nil
}

// PlantAt plants speciesID on an unlocked, empty tile
func (g *Grid) PlantAt(index int, speciesID string, now time.Time) error {
	tile, err := g.unlockedTile(index)
	if err != nil {
		return err
	}
	if !g.species.IsValidFor(speciesID, g.kind.Category()) {
		return fmt.Errorf(ErrFmtSpecies, domain.ErrInvalidSpecies, speciesID, g.kind)
	}
	return tile.Plant(speciesID, now)
}

// HarvestAt collects a ready tile. The caller credits value and XP.
func (g *Grid) HarvestAt(index int, now time.Time) (HarvestOutcome, error) {
	tile, err := g.unlockedTile(index)
	if err != nil {
		return HarvestOutcome{}, err
	}
	if !tile.IsReady() || tile.SpeciesID == "" {
		return HarvestOutcome{}, fmt.Errorf(ErrFmtNotReady, domain.ErrTileNotReady, index, tile.State)
	}

	outcome := HarvestOutcome{
		Grid:      g.kind,
		TileIndex: index,
		SpeciesID: tile.SpeciesID,
		Value:     g.species.Value(tile.SpeciesID),
		XP:        g.species.XPFor(tile.SpeciesID),
	}
	// trees regrow in place; crops leave the tile empty
	if err := tile.Harvest(g.species.IsTree(tile.SpeciesID), now); err != nil {
		return HarvestOutcome{}, err
	}
	return outcome, nil
}

// RemoveAt clears an unlocked tile in any state, yielding nothing
func (g *Grid) RemoveAt(index int) error {
	tile, err := g.unlockedTile(index)
	if err != nil {
		return err
	}
	tile.Clear()
	return nil
}

// UnlockCost is the price of the next tile
func (g *Grid) UnlockCost() int64 {
	return g.cost(g.unlocked)
}

// IsFull reports whether every tile is unlocked
func (g *Grid) IsFull() bool {
	return g.unlocked >= len(g.tiles)
}

// CanUnlock reports whether balance covers the next tile
func (g *Grid) CanUnlock(balance int64) bool {
	return !g.IsFull() && balance >= g.UnlockCost()
}

// Unlock debits the next tile's cost from w and extends the usable area
func (g *Grid) Unlock(w Wallet) (int64, error) {
	if g.IsFull() {
		return 0, fmt.Errorf(ErrFmtUnlockCap, domain.ErrGridFull, g.kind, g.unlocked, len(g.tiles))
	}
	cost := g.UnlockCost()
	if err := w.Spend(cost); err != nil {
		return 0, err
	}
	g.unlocked++
	return cost, nil
}

// Tick evaluates growth on every unlocked tile and returns the indices that became ready
func (g *Grid) Tick(now time.Time) []int {
	var ready []int
	for i := 0; i < g.unlocked; i++ {
		if g.tiles[i].EvaluateGrowth(now, g.species) {
			ready = append(ready, i)
		}
	}
	return ready
}

// CountReady counts ready tiles
func (g *Grid) CountReady() int {
	n := 0
	for i := range g.tiles {
		if g.tiles[i].IsReady() {
			n++
		}
	}
	return n
}

// Restore replaces the grid contents, clamping unlocked to [1, max] and
// padding or truncating tiles to the grid size
func (g *Grid) Restore(unlocked int, tiles []Tile) {
	g.unlocked = min(max(unlocked, 1), len(g.tiles))
	for i := range g.tiles {
		if i < len(tiles) {
			g.tiles[i] = tiles[i]
		} else {
			g.tiles[i] = NewTile()
		}
	}
}

// Reset returns the grid to its new-game layout
func (g *Grid) Reset() {
	g.Restore(1, nil)
}
