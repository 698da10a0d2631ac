package verify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agegate-bot/agegate/verify/statestore"
)

func TestCooldownRemaining(t *testing.T) {
	assert := assert.New(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// never declined
	assert.Equal(time.Duration(0), CooldownRemaining(statestore.UserState{}, DefaultCooldown, now))

	// a single decline never triggers the cooldown
	one := statestore.UserState{DeclineCount: 1, LastDeclineAt: now.Add(-time.Minute)}
	assert.Equal(time.Duration(0), CooldownRemaining(one, DefaultCooldown, now))

	// two declines, mid-window
	two := statestore.UserState{DeclineCount: 2, LastDeclineAt: now.Add(-30 * time.Minute)}
	assert.Equal(23*time.Hour+30*time.Minute, CooldownRemaining(two, DefaultCooldown, now))

	// window fully elapsed
	old := statestore.UserState{DeclineCount: 3, LastDeclineAt: now.Add(-25 * time.Hour)}
	assert.Equal(time.Duration(0), CooldownRemaining(old, DefaultCooldown, now))
}

func TestFormatRemaining(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("23h 30m", FormatRemaining(23*time.Hour+30*time.Minute))
	assert.Equal("0h 0m", FormatRemaining(0))
	assert.Equal("0h 0m", FormatRemaining(-time.Hour))
	// seconds are floor-truncated, never rounded up
	assert.Equal("1h 59m", FormatRemaining(time.Hour+59*time.Minute+59*time.Second))
	assert.Equal("24h 0m", FormatRemaining(24*time.Hour))
}
