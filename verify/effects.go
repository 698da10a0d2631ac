package verify

// DirectMessage is a queued best-effort private notification.
type DirectMessage struct {
	UserID string
	Text   string
	// Delivered as a visible interaction reply if the DM fails. Empty means
	// the failure is only logged.
	Fallback string
}

// Mutable container for all the outbound actions an event handler requests.
// Handlers enqueue during decision logic; the engine applies everything
// after the state transition has been persisted.
type Effects struct {
	// Ephemeral replies to the acting interaction.
	Replies []string
	// Present the decline reason-capture form to the acting staff member.
	ShowDeclineForm bool
	// Review messages to delete, by stored reference.
	DeleteRefs []string
	// Review artifact to post. At most one per event.
	ReviewPost *ReviewArtifact
	// Plain messages for the staff review channel.
	Announcements []string
	// Private notifications, applied last.
	DirectMessages []DirectMessage
}

func (e *Effects) Reply(text string) {
	e.Replies = append(e.Replies, text)
}

func (e *Effects) SendDM(userID, text string) {
	e.DirectMessages = append(e.DirectMessages, DirectMessage{UserID: userID, Text: text})
}

// SendDMWithFallback queues a DM whose delivery failure substitutes a
// visible interaction reply instead of being swallowed.
func (e *Effects) SendDMWithFallback(userID, text, fallback string) {
	e.DirectMessages = append(e.DirectMessages, DirectMessage{UserID: userID, Text: text, Fallback: fallback})
}

func (e *Effects) PostReview(artifact ReviewArtifact) {
	e.ReviewPost = &artifact
}

func (e *Effects) DeleteMessage(ref string) {
	e.DeleteRefs = append(e.DeleteRefs, ref)
}

func (e *Effects) Announce(text string) {
	e.Announcements = append(e.Announcements, text)
}
