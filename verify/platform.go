package verify

import (
	"context"
)

// ReviewArtifact is the staff-facing rendering request for a user's
// submitted proof. The platform adapter decides how to present it (embed,
// card, plain text); the engine only decides its content.
type ReviewArtifact struct {
	Title   string
	UserID  string
	UserTag string
	// Free-text statement the user sent alongside (or instead of) files.
	Statement string
	// First image attachment, shown inline.
	ImageURL string
	// First video attachment, linked rather than embedded.
	VideoURL string
	// Any remaining attachment links.
	AttachmentURLs []string
}

// Platform is the collaborator contract fulfilled by the chat-platform
// adapter. All methods are synchronous from the engine's point of view;
// the engine decides per call site whether a failure aborts the transition
// or is merely logged.
type Platform interface {
	// SendDirectMessage delivers a private message to the user. Failure is
	// normal (users can block DMs) and never aborts a transition.
	SendDirectMessage(ctx context.Context, userID, text string) error
	// PostReview publishes a review artifact with Accept/Decline controls
	// to the staff review channel and returns a reference to the posted
	// message.
	PostReview(ctx context.Context, artifact ReviewArtifact) (string, error)
	// DeleteReviewMessage removes a previously posted review message.
	DeleteReviewMessage(ctx context.Context, ref string) error
	// AssignRole grants the configured restricted role. Implementations
	// validate their own preconditions (role exists, permission, hierarchy,
	// target membership) and return a staff-readable error on failure.
	AssignRole(ctx context.Context, userID string) error
	// Announce posts a plain message to the staff review channel.
	Announce(ctx context.Context, text string) error
	// Mention renders a user reference in the platform's mention syntax.
	Mention(userID string) string
}

// Responder delivers acknowledgments for the single interaction that
// triggered an event. Every user-initiated action gets exactly one
// acknowledgment through it, never silence.
type Responder interface {
	// Reply sends an ephemeral text reply, visible only to the actor.
	Reply(ctx context.Context, text string) error
	// Acknowledge confirms receipt without any visible reply.
	Acknowledge(ctx context.Context) error
	// ShowDeclineForm presents the decline reason-capture form, correlated
	// to the target user. Must be the first response to the interaction.
	ShowDeclineForm(ctx context.Context, userID string) error
}
