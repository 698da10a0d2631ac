package verify

// Attachment is a file the user included with their proof submission.
type Attachment struct {
	URL         string
	ContentType string
}

// VerifyRequestEvent is a user clicking the verify button in the server.
type VerifyRequestEvent struct {
	UserID string
	// True when the adapter observed the user already holding the
	// restricted role.
	RoleHolder bool
	Responder  Responder
}

// SubmissionEvent is a direct message received from a user.
type SubmissionEvent struct {
	UserID      string
	UserTag     string
	Content     string
	Attachments []Attachment
}

// AcceptEvent is a staff member clicking Accept on a review message.
type AcceptEvent struct {
	UserID  string
	StaffID string
	// Reference of the message the button was clicked on, used as a
	// fallback when no review ref is stored for the user.
	MessageRef string
	Responder  Responder
}

// DeclineStartEvent is a staff member clicking Decline on a review message.
// No decline is recorded until the reason form comes back.
type DeclineStartEvent struct {
	UserID    string
	Responder Responder
}

// DeclineSubmitEvent is a staff member submitting the decline reason form.
type DeclineSubmitEvent struct {
	UserID    string
	StaffID   string
	Reason    string
	Responder Responder
}
