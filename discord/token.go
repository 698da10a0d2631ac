// Package discord adapts the Discord gateway to the verification workflow
// engine: it turns interactions and direct messages into engine events and
// fulfills the engine's outbound-action contract.
package discord

import (
	"fmt"
	"strings"
)

// VerifyButtonID is the custom ID of the verify-channel button. It carries
// no target user; the actor is the target.
const VerifyButtonID = "verify_request"

// custom ID of the text input inside the decline modal
const declineReasonInputID = "decline_reason"

// Action discriminates the review controls.
type Action string

const (
	ActionAccept       Action = "accept"
	ActionDecline      Action = "decline"
	ActionDeclineModal Action = "declineModal"
)

// Token correlates a review-control interaction with its target user. It is
// round-tripped through component custom IDs and validated at the gateway
// boundary before anything reaches the engine.
type Token struct {
	Action Action
	UserID string
}

func (t Token) CustomID() string {
	return string(t.Action) + "_" + t.UserID
}

// ParseToken parses and validates a component custom ID.
func ParseToken(customID string) (Token, error) {
	kind, userID, ok := strings.Cut(customID, "_")
	if !ok || userID == "" {
		return Token{}, fmt.Errorf("malformed correlation token: %q", customID)
	}
	action := Action(kind)
	switch action {
	case ActionAccept, ActionDecline, ActionDeclineModal:
	default:
		return Token{}, fmt.Errorf("unknown token action: %q", kind)
	}
	// discord snowflakes are numeric
	for _, r := range userID {
		if r < '0' || r > '9' {
			return Token{}, fmt.Errorf("malformed user id in token: %q", customID)
		}
	}
	return Token{Action: action, UserID: userID}, nil
}
