package farm

import (
	"fmt"
	"time"

	"github.com/osse101/idlefarm/internal/domain"
)

// Timing resolves how long a species needs to grow. Trees regrow on their cooldown.
type Timing interface {
	GrowTime(id string) time.Duration
	CooldownTime(id string) time.Duration
}

// Tile is one grid cell moving through empty -> growing -> ready.
// A growing tile always has a SpeciesID and a non-zero PlantedAt.
type Tile struct {
	State      domain.TileState
	SpeciesID  string
	PlantedAt  time.Time
	IsCooldown bool
}

// NewTile returns an empty tile
func NewTile() Tile {
	return Tile{State: domain.TileEmpty}
}

func (t *Tile) IsEmpty() bool   { return t.State == domain.TileEmpty || t.State == "" }
func (t *Tile) IsGrowing() bool { return t.State == domain.TileGrowing }
func (t *Tile) IsReady() bool   { return t.State == domain.TileReady }

// Phase reports whether a growing tile is on its first growth or a regrowth
func (t *Tile) Phase() domain.GrowthPhase {
	if !t.IsGrowing() {
		return domain.PhaseNone
	}
	if t.IsCooldown {
		return domain.PhaseCooldown
	}
	return domain.PhaseInitial
}

// Plant starts growing speciesID. Only empty tiles accept a plant.
func (t *Tile) Plant(speciesID string, now time.Time) error {
	if !t.IsEmpty() {
		return fmt.Errorf("%w: state %s", domain.ErrTileOccupied, t.State)
	}
	if speciesID == "" {
		return fmt.Errorf("%w: blank species id", domain.ErrInvalidSpecies)
	}

	t.State = domain.TileGrowing
	t.SpeciesID = speciesID
	t.PlantedAt = now
	t.IsCooldown = false
	return nil
}

// RequiredTime is the growth duration of the current phase
func (t *Tile) RequiredTime(timing Timing) time.Duration {
	if t.SpeciesID == "" {
		return 0
	}
	if t.IsCooldown {
		return timing.CooldownTime(t.SpeciesID)
	}
	return timing.GrowTime(t.SpeciesID)
}

func (t *Tile) elapsed(now time.Time) time.Duration {
	// a clock behind plantedAt counts as no progress
	if elapsed := now.Sub(t.PlantedAt); elapsed > 0 {
		return elapsed
	}
	return 0
}

// EvaluateGrowth moves a growing tile to ready once its phase has elapsed.
// Safe to call repeatedly; returns true only on the transition.
func (t *Tile) EvaluateGrowth(now time.Time, timing Timing) bool {
	if !t.IsGrowing() || t.SpeciesID == "" || t.PlantedAt.IsZero() {
		return false
	}
	if t.elapsed(now) < t.RequiredTime(timing) {
		return false
	}

	t.State = domain.TileReady
	t.IsCooldown = false
	return true
}

// Harvest resets a ready tile. Crops go back to empty; regrowing species
// re-enter growth on their cooldown starting at now.
func (t *Tile) Harvest(regrows bool, now time.Time) error {
	if !t.IsReady() {
		return fmt.Errorf("%w: state %s", domain.ErrTileNotReady, t.State)
	}

	if regrows {
		t.State = domain.TileGrowing
		t.PlantedAt = now
		t.IsCooldown = true
		return nil
	}

	t.Clear()
	return nil
}

// Clear forces the tile back to empty without any reward
func (t *Tile) Clear() {
	*t = NewTile()
}

// Remaining is the time left in the current phase, zero when not growing
func (t *Tile) Remaining(now time.Time, timing Timing) time.Duration {
	if !t.IsGrowing() {
		return 0
	}
	remaining := t.RequiredTime(timing) - t.elapsed(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Progress is the completed fraction of the current phase in [0, 1]
func (t *Tile) Progress(now time.Time, timing Timing) float64 {
	if !t.IsGrowing() || t.PlantedAt.IsZero() {
		return 0
	}
	required := t.RequiredTime(timing)
	if required <= 0 {
		return 0
	}

	progress := float64(t.elapsed(now)) / float64(required)
	if progress > 1 {
		return 1
	}
	return progress
}
