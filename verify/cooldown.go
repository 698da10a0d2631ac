package verify

import (
	"fmt"
	"time"

	"github.com/agegate-bot/agegate/verify/statestore"
)

// DefaultCooldown is the window during which a twice-declined user cannot
// re-initiate verification.
const DefaultCooldown = 24 * time.Hour

// Cooldown is enforced only once a user has this many consecutive declines.
const cooldownDeclineThreshold = 2

// CooldownRemaining reports how much of the cooldown window is left for the
// user, or zero when no cooldown applies (fewer than two declines, never
// declined, or window already elapsed).
func CooldownRemaining(state statestore.UserState, window time.Duration, now time.Time) time.Duration {
	if state.DeclineCount < cooldownDeclineThreshold || state.LastDeclineAt.IsZero() {
		return 0
	}
	remaining := window - now.Sub(state.LastDeclineAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FormatRemaining renders a duration as whole hours and minutes,
// floor-truncated, eg "23h 30m".
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
