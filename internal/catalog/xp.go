package catalog

import (
	"math"
	"time"

	"github.com/osse101/idlefarm/internal/domain"
)

var rarityMultipliers = map[domain.Rarity]float64{
	domain.RarityCommon:    1.2,
	domain.RarityUncommon:  1.5,
	domain.RarityRare:      2.5,
	domain.RarityEpic:      5,
	domain.RarityLegendary: 7,
	domain.RarityMythic:    12,
}

// RarityMultiplier returns the XP multiplier of a rarity tier, 0 for unknown tiers
func RarityMultiplier(r domain.Rarity) float64 {
	return rarityMultipliers[r]
}

// CropXP is floor(log2(minutes + 1) * 5 * rarityMultiplier)
func CropXP(growTime time.Duration, rarity domain.Rarity) int64 {
	minutes := growTime.Minutes()
	if minutes < 0 {
		minutes = 0
	}
	return int64(math.Floor(math.Log2(minutes+1) * BaseXPPerLog2Minute * RarityMultiplier(rarity)))
}

// TreeXP applies the tree bonus on top of the crop formula
func TreeXP(growTime time.Duration, rarity domain.Rarity) int64 {
	return int64(math.Floor(float64(CropXP(growTime, rarity)) * TreeXPMultiplier))
}

// TreeValue derives a tree's coin value from its initial grow time and rarity
func TreeValue(growTime time.Duration, rarity domain.Rarity) int64 {
	base := math.Pow(growTime.Minutes(), TreeValueExponent)
	return int64(math.Floor(base * TreeValueMultiplier * RarityMultiplier(rarity)))
}
