package game

import (
	"time"

	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/farm"
	"github.com/osse101/idlefarm/internal/progression"
	"github.com/osse101/idlefarm/internal/utils"
)

// TileView is the render-ready state of one tile
type TileView struct {
	Index       int                `json:"index"`
	Locked      bool               `json:"locked"`
	State       domain.TileState   `json:"state"`
	SpeciesID   string             `json:"speciesId,omitempty"`
	Icon        string             `json:"icon,omitempty"`
	Rarity      domain.Rarity      `json:"rarity,omitempty"`
	Phase       domain.GrowthPhase `json:"phase,omitempty"`
	RemainingMs int64              `json:"remainingMs"`
	Remaining   string             `json:"remaining,omitempty"`
	Progress    float64            `json:"progress"`
}

// GridView describes a grid and its next unlock
type GridView struct {
	Kind          domain.GridKind `json:"kind"`
	Locked        bool            `json:"locked"`
	UnlockedTiles int             `json:"unlockedTiles"`
	MaxTiles      int             `json:"maxTiles"`
	Full          bool            `json:"full"`
	UnlockCost    int64           `json:"unlockCost"`
	CanUnlock     bool            `json:"canUnlock"`
	Tiles         []TileView      `json:"tiles"`
}

// SpeciesView is a catalog entry annotated with the player's access to it
type SpeciesView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    domain.Category `json:"category"`
	Icon        string          `json:"icon"`
	Rarity      string          `json:"rarity"`
	GrowTimeMs  int64           `json:"growTimeMs"`
	CooldownMs  int64           `json:"cooldownMs,omitempty"`
	Value       int64           `json:"value"`
	XP          int64           `json:"xp"`
	UnlockLevel int             `json:"unlockLevel,omitempty"`
	UnlockCost  int64           `json:"unlockCost,omitempty"`
	Unlocked    bool            `json:"unlocked"`
	Affordable  bool            `json:"affordable"`
}

// View is everything a client needs to draw the game
type View struct {
	Coins             int64              `json:"coins"`
	CoinsDisplay      string             `json:"coinsDisplay"`
	Player            progression.Player `json:"player"`
	SelectedCrop      string             `json:"selectedCrop"`
	SelectedTree      string             `json:"selectedTree"`
	OrchardUnlocked   bool               `json:"orchardUnlocked"`
	OrchardUnlockCost int64              `json:"orchardUnlockCost"`
	Farm              GridView           `json:"farm"`
	Orchard           GridView           `json:"orchard"`
	Crops             []SpeciesView      `json:"crops"`
	Trees             []SpeciesView      `json:"trees"`
}

// ProgressView is the lightweight per-tick payload pushed to clients
type ProgressView struct {
	Farm    []TileView `json:"farm"`
	Orchard []TileView `json:"orchard"`
}

// View renders the full game state at the current time
func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	balance := g.wallet.Balance()

	return View{
		Coins:             balance,
		CoinsDisplay:      utils.FormatCoins(balance),
		Player:            g.player,
		SelectedCrop:      g.selectedCrop,
		SelectedTree:      g.selectedTree,
		OrchardUnlocked:   g.orchardUnlocked,
		OrchardUnlockCost: OrchardUnlockCost,
		Farm:              g.gridView(g.farm, false, now, balance),
		Orchard:           g.gridView(g.orchard, !g.orchardUnlocked, now, balance),
		Crops:             g.speciesViews(domain.CategoryCrop, balance),
		Trees:             g.speciesViews(domain.CategoryTree, balance),
	}
}

// Progress renders only the tiles, for frequent polling
func (g *Game) Progress() ProgressView {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	return ProgressView{
		Farm:    g.tileViews(g.farm, now),
		Orchard: g.tileViews(g.orchard, now),
	}
}

func (g *Game) gridView(grid *farm.Grid, locked bool, now time.Time, balance int64) GridView {
	return GridView{
		Kind:          grid.Kind(),
		Locked:        locked,
		UnlockedTiles: grid.UnlockedTiles(),
		MaxTiles:      grid.MaxTiles(),
		Full:          grid.IsFull(),
		UnlockCost:    grid.UnlockCost(),
		CanUnlock:     !locked && grid.CanUnlock(balance),
		Tiles:         g.tileViews(grid, now),
	}
}

func (g *Game) tileViews(grid *farm.Grid, now time.Time) []TileView {
	tiles := grid.Tiles()
	views := make([]TileView, len(tiles))
	for i := range tiles {
		views[i] = g.tileView(grid.Kind(), i, &tiles[i], i >= grid.UnlockedTiles(), now)
	}
	return views
}

func (g *Game) tileView(kind domain.GridKind, index int, tile *farm.Tile, locked bool, now time.Time) TileView {
	view := TileView{
		Index:  index,
		Locked: locked,
		State:  tile.State,
	}
	if tile.IsEmpty() {
		view.State = domain.TileEmpty
		return view
	}

	view.SpeciesID = tile.SpeciesID
	view.Icon = g.catalog.Icon(tile.SpeciesID)
	if species, ok := g.catalog.Get(tile.SpeciesID); ok {
		view.Rarity = species.Rarity
	}
	view.Phase = tile.Phase()

	remaining := tile.Remaining(now, g.catalog)
	view.RemainingMs = remaining.Milliseconds()
	if tile.IsGrowing() {
		view.Remaining = utils.FormatTimeRemaining(remaining)
	}
	view.Progress = g.cachedProgress(kind, index, tile, now)
	if tile.IsReady() {
		view.Progress = 1
	}
	return view
}

// cachedProgress smooths repeated renders; entries are dropped on any tile change
func (g *Game) cachedProgress(kind domain.GridKind, index int, tile *farm.Tile, now time.Time) float64 {
	if !tile.IsGrowing() {
		return 0
	}
	key := progressKey{kind, index}
	if p, ok := g.progress.Get(key); ok {
		return p
	}
	p := tile.Progress(now, g.catalog)
	g.progress.Add(key, p)
	return p
}

func (g *Game) speciesViews(category domain.Category, balance int64) []SpeciesView {
	var list []domain.Species
	if category == domain.CategoryTree {
		list = g.catalog.Trees()
	} else {
		list = g.catalog.Crops()
	}

	views := make([]SpeciesView, 0, len(list))
	for _, s := range list {
		v := SpeciesView{
			ID:          s.ID,
			Name:        s.Name,
			Category:    s.Category,
			Icon:        s.Icon,
			Rarity:      utils.TitleCase(string(s.Rarity)),
			GrowTimeMs:  s.GrowTime.Milliseconds(),
			CooldownMs:  s.Cooldown.Milliseconds(),
			Value:       s.Value,
			XP:          g.catalog.XPFor(s.ID),
			UnlockLevel: s.UnlockLevel,
			UnlockCost:  s.UnlockCost,
		}
		if s.IsTree() {
			v.Unlocked = g.saplings[s.ID]
			v.Affordable = !v.Unlocked && balance >= s.UnlockCost
		} else {
			v.Unlocked = g.player.Unlocks(s.UnlockLevel)
		}
		views = append(views, v)
	}
	return views
}
