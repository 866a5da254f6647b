// Package catalog holds the immutable tables of plantable species.
package catalog

import (
	"fmt"
	"time"

	"github.com/osse101/idlefarm/internal/domain"
)

// Catalog is a read-only lookup of species, iterated in insertion order
type Catalog struct {
	byID  map[string]domain.Species
	order []string
}

// New builds a catalog from species definitions, keeping their order
func New(species ...domain.Species) (*Catalog, error) {
	c := &Catalog{
		byID:  make(map[string]domain.Species, len(species)),
		order: make([]string, 0, len(species)),
	}

	for _, s := range species {
		if err := validateSpecies(s); err != nil {
			return nil, err
		}
		if _, exists := c.byID[s.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate id '%s'", domain.ErrInvalidSpecies, s.ID)
		}
		c.byID[s.ID] = s
		c.order = append(c.order, s.ID)
	}

	return c, nil
}

func validateSpecies(s domain.Species) error {
	if s.ID == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidSpecies, ErrMsgBlankID)
	}
	if s.Category != domain.CategoryCrop && s.Category != domain.CategoryTree {
		return fmt.Errorf("%w: %s '%s' for %s", domain.ErrInvalidSpecies, ErrMsgInvalidCategory, s.Category, s.ID)
	}
	if !s.Rarity.Valid() {
		return fmt.Errorf("%w: %s '%s' for %s", domain.ErrInvalidSpecies, ErrMsgInvalidRarity, s.Rarity, s.ID)
	}
	if s.GrowTime < 0 || s.Cooldown < 0 {
		return fmt.Errorf("%w: %s (%s)", domain.ErrInvalidSpecies, ErrMsgNegativeDuration, s.ID)
	}
	return nil
}

// Get returns the species for id
func (c *Catalog) Get(id string) (domain.Species, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// IsValid reports whether id names any species
func (c *Catalog) IsValid(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// IsCrop reports whether id names a crop
func (c *Catalog) IsCrop(id string) bool {
	s, ok := c.byID[id]
	return ok && s.Category == domain.CategoryCrop
}

// IsTree reports whether id names a tree
func (c *Catalog) IsTree(id string) bool {
	s, ok := c.byID[id]
	return ok && s.Category == domain.CategoryTree
}

// IsValidFor reports whether id can be planted in a grid of the given category
func (c *Catalog) IsValidFor(id string, category domain.Category) bool {
	s, ok := c.byID[id]
	return ok && s.Category == category
}

// GrowTime is the initial growth duration, 0 for unknown ids
func (c *Catalog) GrowTime(id string) time.Duration {
	return c.byID[id].GrowTime
}

// CooldownTime is the regrowth duration after a tree harvest, 0 for crops and unknown ids
func (c *Catalog) CooldownTime(id string) time.Duration {
	s := c.byID[id]
	if s.Category != domain.CategoryTree {
		return 0
	}
	return s.Cooldown
}

// Value is the coin reward for harvesting id
func (c *Catalog) Value(id string) int64 {
	return c.byID[id].Value
}

// Icon returns the display glyph for id
func (c *Catalog) Icon(id string) string {
	if s, ok := c.byID[id]; ok && s.Icon != "" {
		return s.Icon
	}
	return DefaultIcon
}

// XPFor returns the XP awarded for harvesting id
func (c *Catalog) XPFor(id string) int64 {
	s, ok := c.byID[id]
	if !ok {
		return 0
	}
	if s.IsTree() {
		return TreeXP(s.GrowTime, s.Rarity)
	}
	return CropXP(s.GrowTime, s.Rarity)
}

// All returns every species in insertion order
func (c *Catalog) All() []domain.Species {
	out := make([]domain.Species, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Crops returns the crops in insertion order
func (c *Catalog) Crops() []domain.Species {
	return c.filter(domain.CategoryCrop)
}

// Trees returns the trees in insertion order
func (c *Catalog) Trees() []domain.Species {
	return c.filter(domain.CategoryTree)
}

func (c *Catalog) filter(category domain.Category) []domain.Species {
	var out []domain.Species
	for _, id := range c.order {
		if s := c.byID[id]; s.Category == category {
			out = append(out, s)
		}
	}
	return out
}
