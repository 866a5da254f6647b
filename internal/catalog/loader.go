package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/idlefarm/internal/domain"
	"github.com/osse101/idlefarm/internal/validation"
)

//go:embed data/species.json
var defaultSpeciesJSON []byte

// Config represents the JSON species configuration
type Config struct {
	Version     string `json:"version"`
	Description string `json:"description"`

	Crops []CropDef `json:"crops"`
	Trees []TreeDef `json:"trees"`
}

// CropDef is a single crop definition. Durations use time.ParseDuration syntax.
type CropDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	GrowTime    string `json:"grow_time"`
	Value       int64  `json:"value"`
	Icon        string `json:"icon"`
	Rarity      string `json:"rarity"`
	UnlockLevel int    `json:"unlock_level"`
}

// TreeDef is a single tree definition; the coin value is derived, not configured
type TreeDef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	GrowTime   string `json:"grow_time"`
	Cooldown   string `json:"cooldown"`
	Icon       string `json:"icon"`
	Rarity     string `json:"rarity"`
	UnlockCost int64  `json:"unlock_cost"`
}

// Load validates data against the species schema and builds a catalog from it
func Load(data []byte, schemas validation.SchemaValidator) (*Catalog, error) {
	if err := schemas.ValidateBytes(data, validation.SpeciesSchema); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSpecies, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfig, err)
	}

	species := make([]domain.Species, 0, len(cfg.Crops)+len(cfg.Trees))
	for _, def := range cfg.Crops {
		grow, err := parseDuration("grow_time", def.ID, def.GrowTime)
		if err != nil {
			return nil, err
		}
		species = append(species, domain.Species{
			ID:          def.ID,
			Name:        def.Name,
			Category:    domain.CategoryCrop,
			GrowTime:    grow,
			Value:       def.Value,
			Icon:        def.Icon,
			Rarity:      domain.Rarity(def.Rarity),
			UnlockLevel: def.UnlockLevel,
		})
	}
	for _, def := range cfg.Trees {
		grow, err := parseDuration("grow_time", def.ID, def.GrowTime)
		if err != nil {
			return nil, err
		}
		cooldown, err := parseDuration("cooldown", def.ID, def.Cooldown)
		if err != nil {
			return nil, err
		}
		rarity := domain.Rarity(def.Rarity)
		species = append(species, domain.Species{
			ID:         def.ID,
			Name:       def.Name,
			Category:   domain.CategoryTree,
			GrowTime:   grow,
			Cooldown:   cooldown,
			Value:      TreeValue(grow, rarity),
			Icon:       def.Icon,
			Rarity:     rarity,
			UnlockCost: def.UnlockCost,
		})
	}

	return New(species...)
}

func parseDuration(field, id, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgParseDuration, field, id, err)
	}
	return d, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the game's built-in catalog
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(defaultSpeciesJSON, validation.NewEmbeddedValidator())
		if err != nil {
			// the embedded data is covered by tests
			panic(fmt.Sprintf("invalid built-in species catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
