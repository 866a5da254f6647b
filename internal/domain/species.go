package domain

import "time"

// Category distinguishes plantable species by the grid they grow on
type Category string

const (
	CategoryCrop Category = "crop"
	CategoryTree Category = "tree"
)

// Rarity tiers scale the XP a species awards on harvest
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// Valid reports whether r is one of the known rarity tiers
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary, RarityMythic:
		return true
	}
	return false
}

// GridKind names one of the two plantable areas
type GridKind string

const (
	GridFarm    GridKind = "farm"
	GridOrchard GridKind = "orchard"
)

// Category returns the species category the grid accepts
func (k GridKind) Category() Category {
	if k == GridOrchard {
		return CategoryTree
	}
	return CategoryCrop
}

// Valid reports whether k is a known grid
func (k GridKind) Valid() bool {
	return k == GridFarm || k == GridOrchard
}

// Species is an immutable catalog entry describing something that can be planted
type Species struct {
	ID          string
	Name        string
	Category    Category
	GrowTime    time.Duration
	Cooldown    time.Duration // trees only
	Value       int64
	Icon        string
	Rarity      Rarity
	UnlockLevel int   // crops only
	UnlockCost  int64 // trees only
}

// IsTree reports whether the species regrows after harvest
func (s Species) IsTree() bool {
	return s.Category == CategoryTree
}
