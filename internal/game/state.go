package game

import (
	"context"
	"maps"

	"github.com/osse101/idlefarm/internal/catalog"
	"github.com/osse101/idlefarm/internal/farm"
	"github.com/osse101/idlefarm/internal/logger"
	"github.com/osse101/idlefarm/internal/progression"
)

// GridState is the persisted shape of one grid
type GridState struct {
	UnlockedTiles int
	Tiles         []farm.Tile
}

// State is a detached copy of everything a save captures
type State struct {
	Coins           int64
	SelectedCrop    string
	SelectedTree    string
	Farm            GridState
	Orchard         GridState
	OrchardUnlocked bool
	Saplings        map[string]bool
	Player          progression.Player
}

// Snapshot copies the current state
func (g *Game) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	return State{
		Coins:           g.wallet.Balance(),
		SelectedCrop:    g.selectedCrop,
		SelectedTree:    g.selectedTree,
		Farm:            GridState{UnlockedTiles: g.farm.UnlockedTiles(), Tiles: g.farm.Tiles()},
		Orchard:         GridState{UnlockedTiles: g.orchard.UnlockedTiles(), Tiles: g.orchard.Tiles()},
		OrchardUnlocked: g.orchardUnlocked,
		Saplings:        maps.Clone(g.saplings),
		Player:          g.player,
	}
}

// Restore replaces the live state with s. The caller is expected to have
// sanitized s; grid sizes and player bounds are enforced here regardless.
func (g *Game) Restore(ctx context.Context, s State) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.wallet = Wallet{coins: max(s.Coins, 0)}
	g.selectedCrop = s.SelectedCrop
	if !g.catalog.IsCrop(g.selectedCrop) {
		g.selectedCrop = catalog.DefaultCropID
	}
	g.selectedTree = s.SelectedTree
	if !g.catalog.IsTree(g.selectedTree) {
		g.selectedTree = catalog.DefaultTreeID
	}
	g.farm.Restore(s.Farm.UnlockedTiles, s.Farm.Tiles)
	g.orchard.Restore(s.Orchard.UnlockedTiles, s.Orchard.Tiles)
	g.orchardUnlocked = s.OrchardUnlocked

	g.saplings = defaultSaplings(g.catalog)
	for id, unlocked := range s.Saplings {
		if _, known := g.saplings[id]; known {
			g.saplings[id] = unlocked
		}
	}

	g.player = s.Player
	g.player.Normalize()
	g.progress.Purge()

	logger.FromContext(ctx).Info(LogMsgStateRestored, "coins", g.wallet.Balance(), "level", g.player.Level)
}

// Reset returns the game to a new-game state
func (g *Game) Reset(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.resetLocked()
	logger.FromContext(ctx).Info(LogMsgStateReset)
}
