package verify

import (
	"context"
	"log/slog"

	"github.com/agegate-bot/agegate/verify/statestore"
)

// Context is the per-event processing context handed to decision logic.
type Context struct {
	// Actual golang "context.Context", for timeouts etc
	Ctx context.Context
	// slog logger handle, with event-specific structured fields pre-populated
	Logger *slog.Logger
	// Target user of the event (not necessarily the actor: for staff
	// verdicts this is the user under review).
	UserID string
	// Workflow state for the target user, loaded at dispatch. Decision
	// logic mutates this copy and persists it via saveState before any
	// outbound action that could race with a follow-up event.
	State statestore.UserState

	engine    *Engine
	effects   *Effects
	responder Responder
}

func newContext(ctx context.Context, eng *Engine, kind, userID string, r Responder) (*Context, error) {
	state, err := eng.Store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Context{
		Ctx:       ctx,
		Logger:    eng.Logger.With("user", userID, "event", kind),
		UserID:    userID,
		State:     state,
		engine:    eng,
		effects:   &Effects{},
		responder: r,
	}, nil
}

// saveState persists the context's (possibly mutated) state record.
func (c *Context) saveState() error {
	return c.engine.Store.Put(c.Ctx, c.UserID, c.State)
}

// clearState removes the user's state record entirely.
func (c *Context) clearState() error {
	c.State = statestore.UserState{}
	return c.engine.Store.Delete(c.Ctx, c.UserID)
}

// enqueue effects (indirect) ======

func (c *Context) Reply(text string) {
	c.effects.Reply(text)
}

func (c *Context) ShowDeclineForm() {
	c.effects.ShowDeclineForm = true
}

func (c *Context) SendDM(userID, text string) {
	c.effects.SendDM(userID, text)
}

func (c *Context) SendDMWithFallback(userID, text, fallback string) {
	c.effects.SendDMWithFallback(userID, text, fallback)
}

func (c *Context) PostReview(artifact ReviewArtifact) {
	c.effects.PostReview(artifact)
}

func (c *Context) DeleteMessage(ref string) {
	c.effects.DeleteMessage(ref)
}

func (c *Context) Announce(text string) {
	c.effects.Announce(text)
}
