package progression

// Level curve: xpForLevel(level) = floor(BaseXP * GrowthRate^(level-1))
const (
	BaseXP     = 100.0
	GrowthRate = 1.2

	StartingLevel = 1
	MinXPToNext   = 100
)
