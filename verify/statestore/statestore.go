package statestore

import (
	"context"
	"time"
)

// UserState tracks one user's position in the verification workflow. The
// zero value describes a user who has never interacted with the bot, so
// stores return it for unknown keys instead of an error.
type UserState struct {
	// True after the user has sent their one proof message for the current
	// request cycle; blocks further submissions until staff resolve it.
	PendingSubmission bool `json:"pending_submission"`
	// Number of consecutive declines since the last cooldown reset or
	// acceptance.
	DeclineCount int `json:"decline_count"`
	// When the most recent decline happened. Zero means never declined.
	LastDeclineAt time.Time `json:"last_decline_at"`
	// True immediately after a decline, until the user re-initiates
	// verification; blocks direct-message submissions in the interim.
	LockedAfterDecline bool `json:"locked_after_decline"`
	// Message reference of the outstanding review-channel post for this
	// user, if any. Empty means no live review message.
	ReviewMessageRef string `json:"review_message_ref"`
}

type StateStore interface {
	Get(ctx context.Context, userID string) (UserState, error)
	Put(ctx context.Context, userID string, state UserState) error
	Delete(ctx context.Context, userID string) error
}
