package farm

import "math"

// CostFunc returns the price of the next tile given how many are already unlocked
type CostFunc func(unlocked int) int64

// FarmUnlockCost is floor(75 * n^1.9)
func FarmUnlockCost(unlocked int) int64 {
	return curve(FarmUnlockBase, FarmUnlockExponent, unlocked)
}

// OrchardUnlockCost is floor(500 * n^2.2)
func OrchardUnlockCost(unlocked int) int64 {
	return curve(OrchardUnlockBase, OrchardUnlockExponent, unlocked)
}

func curve(base, exponent float64, n int) int64 {
	return int64(math.Floor(base * math.Pow(float64(n), exponent)))
}
