package save

import (
	"math"

	"github.com/osse101/idlefarm/internal/catalog"
	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/farm"
	"github.com/osse101/idlefarm/internal/progression"
)

// Repair describes one field the sanitizer had to replace
type Repair struct {
	Field  string
	Reason string
}

// sanitizer turns a migrated, schema-valid map into a Record whose values are
// all in range, collecting what it repaired
type sanitizer struct {
	catalog *catalog.Catalog
	repairs []Repair
}

func (s *sanitizer) repair(field, reason string) {
	s.repairs = append(s.repairs, Repair{Field: field, Reason: reason})
}

// Sanitize repairs a migrated record: negative or non-numeric coins become 0,
// unknown selections fall back to the defaults, player and unlock counters are
// clamped, and tiles that cannot be valid are emptied
func Sanitize(raw map[string]any, cat *catalog.Catalog) (Record, []Repair) {
	s := &sanitizer{catalog: cat}

	rec := Record{
		Version: CurrentVersion,
		SavedAt: s.savedAt(raw),
		Coins:   s.coins(raw),
	}

	rec.SelectedCrop, _ = raw[keySelectedCrop].(string)
	if !cat.IsCrop(rec.SelectedCrop) {
		s.repair(keySelectedCrop, "unknown crop '"+rec.SelectedCrop+"'")
		rec.SelectedCrop = catalog.DefaultCropID
	}
	rec.SelectedTree, _ = raw[keySelectedTree].(string)
	if !cat.IsTree(rec.SelectedTree) {
		s.repair(keySelectedTree, "unknown tree '"+rec.SelectedTree+"'")
		rec.SelectedTree = catalog.DefaultTreeID
	}

	rec.Player = s.player(object(raw, keyPlayer))

	farmRaw := object(raw, keyFarm)
	rec.Farm = FarmRecord{
		UnlockedTiles: s.unlockedTiles(keyFarm, farmRaw, farm.MaxFarmTiles),
		Tiles:         s.tiles(keyFarm, farmRaw, farm.MaxFarmTiles, domain.CategoryCrop),
	}

	treesRaw := object(raw, keyTrees)
	unlocked, _ := treesRaw[keyUnlocked].(bool)
	rec.Trees = TreesRecord{
		Unlocked:         unlocked,
		UnlockedTiles:    s.unlockedTiles(keyTrees, treesRaw, farm.MaxOrchardTiles),
		SaplingsUnlocked: s.saplings(treesRaw),
		Tiles:            s.tiles(keyTrees, treesRaw, farm.MaxOrchardTiles, domain.CategoryTree),
	}

	return rec, s.repairs
}

func (s *sanitizer) savedAt(raw map[string]any) int64 {
	for _, key := range []string{keySavedAt, keyLastSavedAt} {
		if v, ok := raw[key].(float64); ok && v > 0 {
			return toInt64(v)
		}
	}
	return 0
}

func (s *sanitizer) coins(raw map[string]any) int64 {
	v, ok := raw[keyCoins].(float64)
	if !ok || v < 0 || math.IsNaN(v) {
		s.repair(keyCoins, "not a non-negative number")
		return 0
	}
	return toInt64(v)
}

func (s *sanitizer) player(raw map[string]any) progression.Player {
	p := progression.NewPlayer()

	if v, ok := raw[keyLevel].(float64); ok && v >= progression.StartingLevel {
		p.Level = int(min(v, math.MaxInt32))
	} else {
		s.repair("player.level", "below 1 or missing")
	}
	if v, ok := raw[keyXP].(float64); ok && v >= 0 {
		p.XP = toInt64(v)
	} else {
		s.repair("player.xp", "negative or missing")
		p.XP = 0
	}
	if v, ok := raw[keyXPToNext].(float64); ok && v >= progression.MinXPToNext {
		p.XPToNext = toInt64(v)
	} else {
		s.repair("player.xpToNext", "below minimum or missing")
		p.XPToNext = progression.MinXPToNext
	}

	p.Normalize()
	return p
}

func (s *sanitizer) unlockedTiles(grid string, raw map[string]any, maxTiles int) int {
	v, ok := raw[keyUnlockedTiles].(float64)
	if !ok || v < 1 {
		if raw != nil {
			s.repair(grid+".unlockedTiles", "below 1 or missing")
		}
		return 1
	}
	if v > float64(maxTiles) {
		s.repair(grid+".unlockedTiles", "above grid size")
		return maxTiles
	}
	return int(v)
}

func (s *sanitizer) saplings(raw map[string]any) map[string]bool {
	stored, _ := raw[keySaplingsUnlocked].(map[string]any)

	saplings := make(map[string]bool)
	for _, tree := range s.catalog.Trees() {
		unlocked, _ := stored[tree.ID].(bool)
		saplings[tree.ID] = unlocked
	}
	return saplings
}

// tiles pads or truncates the stored list to size, emptying any tile that
// does not hold a plantable species of the grid's category
func (s *sanitizer) tiles(grid string, raw map[string]any, size int, category domain.Category) []TileRecord {
	stored, ok := raw[keyTiles].([]any)
	if !ok && raw != nil && raw[keyTiles] != nil {
		s.repair(grid+".tiles", "not an array")
	}

	out := make([]TileRecord, size)
	for i := range out {
		out[i] = TileRecord{State: domain.TileEmpty}
		if i < len(stored) {
			out[i] = s.tile(grid, stored[i], category)
		}
	}
	return out
}

func (s *sanitizer) tile(grid string, v any, category domain.Category) TileRecord {
	empty := TileRecord{State: domain.TileEmpty}

	raw, ok := v.(map[string]any)
	if !ok {
		return empty
	}
	state, _ := raw[keyState].(string)
	tileState := domain.TileState(state)
	if tileState == "" || tileState == domain.TileEmpty {
		return empty
	}
	if !tileState.Valid() {
		s.repair(grid+".tiles", "invalid state '"+state+"'")
		return empty
	}

	speciesID, _ := raw[keyCropID].(string)
	if !s.catalog.IsValidFor(speciesID, category) {
		s.repair(grid+".tiles", "unknown species '"+speciesID+"'")
		return empty
	}

	rec := TileRecord{State: tileState, CropID: speciesID}
	if ms, ok := raw[keyPlantedAt].(float64); ok && ms > 0 {
		at := toInt64(ms)
		rec.PlantedAt = &at
	}
	if tileState == domain.TileGrowing && rec.PlantedAt == nil {
		s.repair(grid+".tiles", "growing tile without plantedAt")
		return empty
	}
	if category == domain.CategoryTree && tileState == domain.TileGrowing {
		rec.IsCooldown, _ = raw[keyIsCooldown].(bool)
	}
	return rec
}

func object(raw map[string]any, key string) map[string]any {
	m, _ := raw[key].(map[string]any)
	return m
}

func toInt64(v float64) int64 {
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Floor(v))
}
