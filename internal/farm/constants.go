package farm

// Grid dimensions
const (
	FarmSize    = 5
	OrchardSize = 3

	MaxFarmTiles    = FarmSize * FarmSize
	MaxOrchardTiles = OrchardSize * OrchardSize
)

// Unlock cost curves: floor(base * unlocked^exponent)
const (
	FarmUnlockBase        = 75.0
	FarmUnlockExponent    = 1.9
	OrchardUnlockBase     = 500.0
	OrchardUnlockExponent = 2.2
)

// Error formats
const (
	ErrFmtIndex     = "%w: index %d (max %d)"
	ErrFmtLocked    = "%w: index %d (unlocked %d)"
	ErrFmtSpecies   = "%w: '%s' cannot grow in %s"
	ErrFmtNotReady  = "%w: tile %d is %s"
	ErrFmtUnlockCap = "%w: %s has %d of %d tiles"
)
