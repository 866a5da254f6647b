package catalog

// XP and value balancing
const (
	BaseXPPerLog2Minute = 5.0
	TreeXPMultiplier    = 1.25
	TreeValueMultiplier = 1.35
	TreeValueExponent   = 0.9
)

// DefaultIcon is shown for ids the catalog does not know
const DefaultIcon = "🌱"

// Default selections for a new game and for sanitized saves
const (
	DefaultCropID = "corn"
	DefaultTreeID = "oak"
)

// Error messages
const (
	ErrMsgBlankID          = "species id must not be blank"
	ErrMsgInvalidCategory  = "invalid category"
	ErrMsgInvalidRarity    = "invalid rarity"
	ErrMsgNegativeDuration = "durations must not be negative"
	ErrMsgParseDuration    = "failed to parse %s for %s: %w"
	ErrMsgParseConfig      = "failed to parse species config: %w"
)
