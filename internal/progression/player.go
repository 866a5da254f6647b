// Package progression tracks player level and experience.
package progression

import "math"

// Player holds level progress. After every mutation 0 <= XP < XPToNext.
type Player struct {
	Level    int   `json:"level"`
	XP       int64 `json:"xp"`
	XPToNext int64 `json:"xpToNext"`
}

// NewPlayer returns a level 1 player with no experience
func NewPlayer() Player {
	return Player{Level: StartingLevel, XP: 0, XPToNext: XPForLevel(StartingLevel)}
}

// XPForLevel returns the experience needed to advance past level
func XPForLevel(level int) int64 {
	if level < StartingLevel {
		level = StartingLevel
	}
	xp := math.Floor(BaseXP * math.Pow(GrowthRate, float64(level-1)))
	if xp >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(xp)
}

// GainXP adds amount and resolves every level-up it causes, carrying the
// excess forward. Returns the new levels reached, in order.
func (p *Player) GainXP(amount int64) []int {
	if amount <= 0 {
		return nil
	}

	p.XP += amount
	return p.resolveOverflow()
}

func (p *Player) resolveOverflow() []int {
	var levels []int
	for p.XP >= p.XPToNext {
		p.XP -= p.XPToNext
		p.Level++
		p.XPToNext = XPForLevel(p.Level)
		levels = append(levels, p.Level)
	}
	return levels
}

// Normalize repairs restored values: level >= 1, xp >= 0, xpToNext >= 100,
// then settles any stored overflow without reporting level-ups
func (p *Player) Normalize() {
	if p.Level < StartingLevel {
		p.Level = StartingLevel
	}
	if p.XP < 0 {
		p.XP = 0
	}
	if p.XPToNext < MinXPToNext {
		p.XPToNext = MinXPToNext
	}
	p.resolveOverflow()
}

// Unlocks reports whether the player has reached unlockLevel
func (p *Player) Unlocks(unlockLevel int) bool {
	return p.Level >= unlockLevel
}
