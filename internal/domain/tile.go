package domain

// TileState is the lifecycle position of a single grid cell
type TileState string

const (
	TileEmpty   TileState = "empty"
	TileGrowing TileState = "growing"
	TileReady   TileState = "ready"
)

// Valid reports whether s is a known tile state
func (s TileState) Valid() bool {
	return s == TileEmpty || s == TileGrowing || s == TileReady
}

// GrowthPhase distinguishes the first growth of a tree from its regrowth
type GrowthPhase string

const (
	PhaseNone     GrowthPhase = ""
	PhaseInitial  GrowthPhase = "initial"
	PhaseCooldown GrowthPhase = "cooldown"
)
