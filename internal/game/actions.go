package game

import (
	"context"
	"fmt"

	"github.com/osse101/idlefarm/internal/catalog"
	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/event"
	"github.com/osse101/idlefarm/internal/farm"
	"github.com/osse101/idlefarm/internal/logger"
	"github.com/osse101/idlefarm/internal/progression"
)

// Plant puts speciesID on tile index of the given grid. Crops must be
// unlocked by level, trees by purchasing their sapling.
func (g *Game) Plant(ctx context.Context, kind domain.GridKind, index int, speciesID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	grid, err := g.grid(kind)
	if err != nil {
		return err
	}
	if err := g.checkPlantable(kind, speciesID); err != nil {
		return err
	}
	if err := grid.PlantAt(index, speciesID, g.now()); err != nil {
		return err
	}

	g.progress.Remove(progressKey{kind, index})
	logger.FromContext(ctx).Debug(LogMsgPlanted, "grid", kind, "index", index, "species", speciesID)
	return nil
}

// PlantSelected plants the grid's currently selected species
func (g *Game) PlantSelected(ctx context.Context, kind domain.GridKind, index int) error {
	g.mu.Lock()
	speciesID := g.selectedCrop
	if kind == domain.GridOrchard {
		speciesID = g.selectedTree
	}
	g.mu.Unlock()

	return g.Plant(ctx, kind, index, speciesID)
}

func (g *Game) checkPlantable(kind domain.GridKind, speciesID string) error {
	species, ok := g.catalog.Get(speciesID)
	if !ok || species.Category != kind.Category() {
		return fmt.Errorf(ErrFmtUnknownSpecies, domain.ErrInvalidSpecies, speciesID)
	}
	if species.IsTree() {
		if !g.saplings[speciesID] {
			return fmt.Errorf(ErrFmtSaplingLocked, domain.ErrSpeciesLocked, speciesID)
		}
		return nil
	}
	if !g.player.Unlocks(species.UnlockLevel) {
		return fmt.Errorf(ErrFmtCropLocked, domain.ErrSpeciesLocked, speciesID, species.UnlockLevel)
	}
	return nil
}

// Harvest collects a ready tile, credits its value and XP, and publishes the
// harvest followed by one event per level gained
func (g *Game) Harvest(ctx context.Context, kind domain.GridKind, index int) (farm.HarvestOutcome, error) {
	events, outcome, err := g.harvestLocked(ctx, kind, index)
	if err != nil {
		return farm.HarvestOutcome{}, err
	}
	g.publish(ctx, events)
	return outcome, nil
}

func (g *Game) harvestLocked(ctx context.Context, kind domain.GridKind, index int) ([]event.Event, farm.HarvestOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	grid, err := g.grid(kind)
	if err != nil {
		return nil, farm.HarvestOutcome{}, err
	}
	now := g.now()
	// a tile whose time has come is harvestable even before the next tick
	if tile, err := grid.Tile(index); err == nil && tile.IsGrowing() {
		grid.Tick(now)
	}

	outcome, err := grid.HarvestAt(index, now)
	if err != nil {
		return nil, farm.HarvestOutcome{}, err
	}
	g.progress.Remove(progressKey{kind, index})

	g.wallet.Earn(outcome.Value)
	levels := g.player.GainXP(outcome.XP)

	log := logger.FromContext(ctx)
	log.Info(LogMsgHarvested, "grid", kind, "index", index, "species", outcome.SpeciesID,
		"value", outcome.Value, "xp", outcome.XP, "coins", g.wallet.Balance())

	events := []event.Event{event.NewHarvestedEvent(domain.HarvestedPayload{
		Grid:      kind,
		SpeciesID: outcome.SpeciesID,
		TileIndex: index,
		Value:     outcome.Value,
		XP:        outcome.XP,
	}, now)}
	for _, level := range levels {
		log.Info(LogMsgLeveledUp, "level", level)
		events = append(events, event.NewLeveledUpEvent(level, progression.XPForLevel(level), now))
	}
	return events, outcome, nil
}

// Remove clears a tile with the shovel. Nothing is refunded.
func (g *Game) Remove(ctx context.Context, kind domain.GridKind, index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	grid, err := g.grid(kind)
	if err != nil {
		return err
	}
	if err := grid.RemoveAt(index); err != nil {
		return err
	}

	g.progress.Remove(progressKey{kind, index})
	logger.FromContext(ctx).Debug(LogMsgRemoved, "grid", kind, "index", index)
	return nil
}

// UnlockTile buys the next tile of a grid and returns what it cost
func (g *Game) UnlockTile(ctx context.Context, kind domain.GridKind) (int64, error) {
	g.mu.Lock()
	grid, err := g.grid(kind)
	if err != nil {
		g.mu.Unlock()
		return 0, err
	}
	cost, err := grid.Unlock(&g.wallet)
	if err != nil {
		g.mu.Unlock()
		return 0, err
	}
	unlocked := grid.UnlockedTiles()
	now := g.now()
	g.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgTileUnlocked, "grid", kind, "cost", cost, "unlocked", unlocked)
	g.publish(ctx, []event.Event{event.NewUnlockedEvent(event.TileUnlocked, domain.UnlockedPayload{
		Grid:     kind,
		Cost:     cost,
		Unlocked: unlocked,
	}, now)})
	return cost, nil
}

// UnlockOrchard buys access to the tree grid, which comes with an oak sapling
func (g *Game) UnlockOrchard(ctx context.Context) error {
	g.mu.Lock()
	if g.orchardUnlocked {
		g.mu.Unlock()
		return fmt.Errorf("%w: orchard", domain.ErrAlreadyUnlocked)
	}
	if err := g.wallet.Spend(OrchardUnlockCost); err != nil {
		g.mu.Unlock()
		return err
	}
	g.orchardUnlocked = true
	if g.catalog.IsTree(catalog.DefaultTreeID) {
		g.saplings[catalog.DefaultTreeID] = true
	}
	now := g.now()
	g.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgOrchardUnlocked, "cost", OrchardUnlockCost)
	g.publish(ctx, []event.Event{event.NewUnlockedEvent(event.OrchardUnlocked, domain.UnlockedPayload{
		Grid: domain.GridOrchard,
		Cost: OrchardUnlockCost,
	}, now)})
	return nil
}

// UnlockSapling buys the right to plant treeID
func (g *Game) UnlockSapling(ctx context.Context, treeID string) error {
	g.mu.Lock()
	if !g.orchardUnlocked {
		g.mu.Unlock()
		return domain.ErrOrchardLocked
	}
	tree, ok := g.catalog.Get(treeID)
	if !ok || !tree.IsTree() {
		g.mu.Unlock()
		return fmt.Errorf(ErrFmtUnknownSpecies, domain.ErrInvalidSpecies, treeID)
	}
	if g.saplings[treeID] {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s sapling", domain.ErrAlreadyUnlocked, treeID)
	}
	if err := g.wallet.Spend(tree.UnlockCost); err != nil {
		g.mu.Unlock()
		return err
	}
	g.saplings[treeID] = true
	now := g.now()
	g.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgSaplingUnlocked, "tree", treeID, "cost", tree.UnlockCost)
	g.publish(ctx, []event.Event{event.NewUnlockedEvent(event.SaplingUnlocked, domain.UnlockedPayload{
		Grid:      domain.GridOrchard,
		SpeciesID: treeID,
		Cost:      tree.UnlockCost,
	}, now)})
	return nil
}

// SelectCrop sets the crop used by PlantSelected on the farm
func (g *Game) SelectCrop(speciesID string) error {
	if !g.catalog.IsCrop(speciesID) {
		return fmt.Errorf(ErrFmtUnknownSpecies, domain.ErrInvalidSpecies, speciesID)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.selectedCrop = speciesID
	return nil
}

// SelectTree sets the tree used by PlantSelected in the orchard
func (g *Game) SelectTree(speciesID string) error {
	if !g.catalog.IsTree(speciesID) {
		return fmt.Errorf(ErrFmtUnknownSpecies, domain.ErrInvalidSpecies, speciesID)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.selectedTree = speciesID
	return nil
}

// Tick evaluates growth on both grids and returns how many tiles became ready
func (g *Game) Tick(ctx context.Context) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	ready := len(g.farm.Tick(now)) + len(g.orchard.Tick(now))
	if ready > 0 {
		logger.FromContext(ctx).Debug(LogMsgTilesReady, "count", ready)
	}
	return ready
}

// ReadyCounts returns how many crops and trees are waiting to be harvested
func (g *Game) ReadyCounts() (crops, trees int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.farm.CountReady(), g.orchard.CountReady()
}

// Balance returns the current coin balance
func (g *Game) Balance() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.wallet.Balance()
}
