package utils

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReadyLabel is shown instead of a countdown once nothing remains
const ReadyLabel = "Ready!"

// FormatTimeRemaining renders a countdown with its two most significant units,
// e.g. "2d 3h", "4h 10m", "5m 2s", "9s". Partial seconds round up.
func FormatTimeRemaining(d time.Duration) string {
	if d <= 0 {
		return ReadyLabel
	}

	total := int64(math.Ceil(d.Seconds()))
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatCoins renders an amount with thousands separators
func FormatCoins(amount int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", amount)
}

// TitleCase capitalizes labels such as rarity names for display
func TitleCase(s string) string {
	// casers keep state, so one per call
	return cases.Title(language.English).String(s)
}
