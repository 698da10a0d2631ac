package verify

import (
	"context"
	"log/slog"
	"time"

	"github.com/agegate-bot/agegate/verify/statestore"
)

// Engine is the runtime for the verification workflow: it receives platform
// events, decides state transitions, and requests outbound actions.
//
// Logger, Store and Platform must all be non-nil before any event is
// processed.
type Engine struct {
	Logger   *slog.Logger
	Store    statestore.StateStore
	Platform Platform
	// Optional staff notifications (Slack incoming webhook).
	Notifier *SlackNotifier
	// Cooldown window after repeated declines. Zero means DefaultCooldown.
	Cooldown time.Duration
	// Clock override for tests. Nil means time.Now.
	Now func() time.Time
}

const genericErrorReply = "An error occurred handling that interaction."

func (eng *Engine) ProcessVerifyRequest(ctx context.Context, evt VerifyRequestEvent) error {
	return eng.run(ctx, "verify_request", evt.UserID, evt.Responder, func(c *Context) error {
		return eng.handleVerifyRequest(c, evt)
	})
}

func (eng *Engine) ProcessSubmission(ctx context.Context, evt SubmissionEvent) error {
	return eng.run(ctx, "submission", evt.UserID, nil, func(c *Context) error {
		return eng.handleSubmission(c, evt)
	})
}

func (eng *Engine) ProcessAccept(ctx context.Context, evt AcceptEvent) error {
	return eng.run(ctx, "accept", evt.UserID, evt.Responder, func(c *Context) error {
		return eng.handleAccept(c, evt)
	})
}

func (eng *Engine) ProcessDeclineStart(ctx context.Context, evt DeclineStartEvent) error {
	return eng.run(ctx, "decline_start", evt.UserID, evt.Responder, func(c *Context) error {
		return eng.handleDeclineStart(c, evt)
	})
}

func (eng *Engine) ProcessDeclineSubmit(ctx context.Context, evt DeclineSubmitEvent) error {
	return eng.run(ctx, "decline_submit", evt.UserID, evt.Responder, func(c *Context) error {
		return eng.handleDeclineSubmit(c, evt)
	})
}

// run is the common dispatch boundary: load state into a fresh context, run
// the decision logic, then apply the accumulated effects. Internal failures
// (including panics) are logged and surfaced as a single generic reply so
// no user action goes silently unanswered.
func (eng *Engine) run(ctx context.Context, kind, userID string, r Responder, fn func(*Context) error) error {
	start := time.Now()
	defer func() {
		eventProcessDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}()
	eventProcessCount.WithLabelValues(kind).Inc()

	// similar to an HTTP server, we want to recover any panics from event handling
	defer func() {
		if rec := recover(); rec != nil {
			eng.Logger.Error("event execution exception", "err", rec, "user", userID, "type", kind)
			eventErrorCount.WithLabelValues(kind).Inc()
			eng.replyGenericError(ctx, userID, r)
		}
	}()

	c, err := newContext(ctx, eng, kind, userID, r)
	if err != nil {
		eng.Logger.Error("loading user state failed", "err", err, "user", userID, "type", kind)
		eventErrorCount.WithLabelValues(kind).Inc()
		eng.replyGenericError(ctx, userID, r)
		return err
	}

	if err := fn(c); err != nil {
		c.Logger.Error("event handling failed", "err", err)
		eventErrorCount.WithLabelValues(kind).Inc()
		eng.replyGenericError(ctx, userID, r)
		return err
	}

	eng.applyEffects(c)
	return nil
}

// replyGenericError acknowledges a failed action through the interaction
// when possible, falling back to a best-effort DM for message-driven events.
func (eng *Engine) replyGenericError(ctx context.Context, userID string, r Responder) {
	if r != nil {
		if err := r.Reply(ctx, genericErrorReply); err != nil {
			eng.Logger.Error("failed to deliver error reply", "err", err)
		}
		return
	}
	if err := eng.Platform.SendDirectMessage(ctx, userID, genericErrorReply); err != nil {
		eng.Logger.Error("failed to deliver error DM", "err", err, "user", userID)
	}
}

func (eng *Engine) window() time.Duration {
	if eng.Cooldown > 0 {
		return eng.Cooldown
	}
	return DefaultCooldown
}

func (eng *Engine) now() time.Time {
	if eng.Now != nil {
		return eng.Now()
	}
	return time.Now()
}

func (eng *Engine) notify(ctx context.Context, msg string) {
	if eng.Notifier == nil {
		return
	}
	if err := eng.Notifier.SendMsg(ctx, msg); err != nil {
		eng.Logger.Error("sending slack webhook", "err", err)
	}
}
