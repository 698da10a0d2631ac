package verify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agegate-bot/agegate/verify/statestore"
)

// CapturePlatform records outbound actions without delivering anything.
// Intentionally exported, for use in other packages' tests.
type CapturePlatform struct {
	DMs           []DirectMessage
	Reviews       []ReviewArtifact
	Deleted       []string
	Announcements []string
	RolesAssigned []string

	// Failure injection.
	FailDM        bool
	FailReview    bool
	AssignRoleErr error
}

var _ Platform = (*CapturePlatform)(nil)

func (p *CapturePlatform) SendDirectMessage(ctx context.Context, userID, text string) error {
	if p.FailDM {
		return fmt.Errorf("cannot send messages to this user")
	}
	p.DMs = append(p.DMs, DirectMessage{UserID: userID, Text: text})
	return nil
}

func (p *CapturePlatform) PostReview(ctx context.Context, artifact ReviewArtifact) (string, error) {
	if p.FailReview {
		return "", fmt.Errorf("review channel unavailable")
	}
	p.Reviews = append(p.Reviews, artifact)
	return fmt.Sprintf("review-%d", len(p.Reviews)), nil
}

func (p *CapturePlatform) DeleteReviewMessage(ctx context.Context, ref string) error {
	p.Deleted = append(p.Deleted, ref)
	return nil
}

func (p *CapturePlatform) AssignRole(ctx context.Context, userID string) error {
	if p.AssignRoleErr != nil {
		return p.AssignRoleErr
	}
	p.RolesAssigned = append(p.RolesAssigned, userID)
	return nil
}

func (p *CapturePlatform) Announce(ctx context.Context, text string) error {
	p.Announcements = append(p.Announcements, text)
	return nil
}

func (p *CapturePlatform) Mention(userID string) string {
	return "<@" + userID + ">"
}

// CaptureResponder records interaction acknowledgments.
type CaptureResponder struct {
	Replies      []string
	Acknowledged bool
	DeclineForms []string
}

var _ Responder = (*CaptureResponder)(nil)

func (r *CaptureResponder) Reply(ctx context.Context, text string) error {
	r.Replies = append(r.Replies, text)
	return nil
}

func (r *CaptureResponder) Acknowledge(ctx context.Context) error {
	r.Acknowledged = true
	return nil
}

func (r *CaptureResponder) ShowDeclineForm(ctx context.Context, userID string) error {
	r.DeclineForms = append(r.DeclineForms, userID)
	return nil
}

// EngineTestFixture returns an engine wired to an in-memory store and a
// capturing platform.
func EngineTestFixture() (*Engine, *CapturePlatform) {
	platform := &CapturePlatform{}
	engine := &Engine{
		Logger:   slog.Default(),
		Store:    statestore.NewMemStateStore(),
		Platform: platform,
	}
	return engine, platform
}
