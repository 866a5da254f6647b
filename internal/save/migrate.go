package save

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/osse101/idlefarm/internal/domain"
)

// Migrate brings a decoded record up to CurrentVersion in place. A missing,
// zero or empty version is treated as version 1; numeric strings such as "2"
// are read as numbers. Records newer than CurrentVersion are
// rejected with ErrUnsupportedVersion; current records are returned unchanged.
func Migrate(raw map[string]any) (map[string]any, error) {
	version, err := versionOf(raw)
	if err != nil {
		return nil, err
	}
	if version > CurrentVersion {
		return nil, fmt.Errorf("%w: save version %v, supported %d", domain.ErrUnsupportedVersion, version, CurrentVersion)
	}

	if version < 2 {
		migrateV1(raw)
	}
	raw[keyVersion] = float64(CurrentVersion)
	return raw, nil
}

func versionOf(raw map[string]any) (float64, error) {
	switch v := raw[keyVersion].(type) {
	case nil:
		return 1, nil
	case bool:
		if !v {
			return 1, nil
		}
	case float64:
		if v == 0 {
			return 1, nil
		}
		return v, nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 1, nil
		}
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			if n == 0 {
				return 1, nil
			}
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", domain.ErrCorruptSave, ErrMsgBadVersion)
}

// migrateV1 converts the unlockedTrees list into the saplingsUnlocked map and
// folds the top-level farmGrid layout into farm
func migrateV1(raw map[string]any) {
	trees, ok := raw[keyTrees].(map[string]any)
	if !ok {
		trees = map[string]any{keyUnlocked: false}
		raw[keyTrees] = trees
	}

	saplings, ok := trees[keySaplingsUnlocked].(map[string]any)
	if !ok {
		saplings = make(map[string]any)
		trees[keySaplingsUnlocked] = saplings
	}

	if list, ok := trees[keyUnlockedTrees].([]any); ok {
		for _, item := range list {
			if id, ok := item.(string); ok {
				saplings[id] = true
			}
		}
	}
	delete(trees, keyUnlockedTrees)

	for _, id := range legacySaplingDefaults {
		if _, ok := saplings[id]; !ok {
			saplings[id] = false
		}
	}

	if _, hasFarm := raw[keyFarm]; !hasFarm {
		if grid, ok := raw[keyFarmGrid]; ok {
			farm := map[string]any{keyTiles: grid}
			if unlocked, ok := raw[keyUnlockedTiles]; ok {
				farm[keyUnlockedTiles] = unlocked
			}
			raw[keyFarm] = farm
		}
	}
	delete(raw, keyFarmGrid)
	delete(raw, keyUnlockedTiles)
}
