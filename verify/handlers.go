package verify

import (
	"fmt"
	"time"
)

const dmInstructions = "✨ **NSFW Age Verification** ✨\n\n" +
	"🔞 Please confirm you are **18+** by replying with:\n\n" +
	"• A short statement (Telling about reason to give you the role)\n" +
	"• Or evidence like a **Video/Photo**\n" +
	"• Or a **Government ID** (with all crucial info hidden)\n\n" +
	"🛡️ Moderators will carefully review your request."

// handleVerifyRequest starts (or restarts) a verification cycle, enforcing
// the decline cooldown first.
func (eng *Engine) handleVerifyRequest(c *Context, evt VerifyRequestEvent) error {
	if evt.RoleHolder {
		c.Reply("You are already verified.")
		return nil
	}

	if remaining := CooldownRemaining(c.State, eng.window(), eng.now()); remaining > 0 {
		cooldownRejectCount.Inc()
		c.Reply(fmt.Sprintf("You must wait %s before trying again.", FormatRemaining(remaining)))
		return nil
	}
	if c.State.DeclineCount >= cooldownDeclineThreshold {
		// cooldown fully elapsed: the slate is wiped
		c.State.DeclineCount = 0
		c.State.LastDeclineAt = time.Time{}
	}

	// fresh cycle: both gates open
	c.State.PendingSubmission = false
	c.State.LockedAfterDecline = false
	if err := c.saveState(); err != nil {
		return fmt.Errorf("persisting user state: %w", err)
	}

	c.Reply("Your verification request has been submitted. Please check your DMs.")
	c.SendDMWithFallback(evt.UserID, dmInstructions,
		"Unable to DM you. Please enable DMs to continue.")
	return nil
}

// handleSubmission processes a direct message as proof for the current
// request cycle. At most one submission per cycle is forwarded to staff.
func (eng *Engine) handleSubmission(c *Context, evt SubmissionEvent) error {
	if c.State.LockedAfterDecline {
		c.SendDM(evt.UserID, "Your last request was declined. Please click Verify again in the server to start a new request.")
		return nil
	}
	if c.State.PendingSubmission {
		c.SendDM(evt.UserID, "You have already submitted your proof for this request. Please wait for staff review.")
		return nil
	}

	// Flag the submission before the review post goes out, so a rapid
	// second DM is rejected rather than double-processed.
	c.State.PendingSubmission = true
	if err := c.saveState(); err != nil {
		return fmt.Errorf("persisting user state: %w", err)
	}

	c.PostReview(BuildReviewArtifact(evt))
	return nil
}

// handleAccept grants the role and closes out the user's workflow state.
// Role assignment is fatal-to-transition, so it runs before any state
// mutation; its failure is relayed to the acting staff member verbatim.
func (eng *Engine) handleAccept(c *Context, evt AcceptEvent) error {
	if err := eng.Platform.AssignRole(c.Ctx, evt.UserID); err != nil {
		c.Logger.Warn("role assignment refused", "err", err, "staff", evt.StaffID)
		c.Reply(err.Error())
		return nil
	}

	ref := c.State.ReviewMessageRef
	if ref == "" {
		ref = evt.MessageRef
	}
	if err := c.clearState(); err != nil {
		return fmt.Errorf("clearing user state: %w", err)
	}
	reviewVerdictCount.WithLabelValues("accept").Inc()

	if ref != "" {
		c.DeleteMessage(ref)
	}
	c.Announce(fmt.Sprintf("🔞💦 %s has been successfully verified and provided the NSFW role!",
		eng.Platform.Mention(evt.UserID)))
	c.SendDM(evt.UserID, "✅ Your request was accepted. You now have access to NSFW channels.")
	eng.notify(c.Ctx, slackAcceptBody(evt.UserID, evt.StaffID))
	return nil
}

// handleDeclineStart only requests the reason-capture form; nothing is
// recorded until the reason comes back.
func (eng *Engine) handleDeclineStart(c *Context, evt DeclineStartEvent) error {
	c.ShowDeclineForm()
	return nil
}

// handleDeclineSubmit records the decline, locks the user out of the DM
// path, and notifies both staff and the declined user.
func (eng *Engine) handleDeclineSubmit(c *Context, evt DeclineSubmitEvent) error {
	c.State.DeclineCount++
	c.State.LastDeclineAt = eng.now()
	c.State.LockedAfterDecline = true
	c.State.PendingSubmission = false
	ref := c.State.ReviewMessageRef
	c.State.ReviewMessageRef = ""
	if err := c.saveState(); err != nil {
		return fmt.Errorf("persisting user state: %w", err)
	}
	reviewVerdictCount.WithLabelValues("decline").Inc()

	c.Reply("Decline recorded.")
	if ref != "" {
		c.DeleteMessage(ref)
	}
	c.Announce(fmt.Sprintf("❌ Request from %s has been declined.\n**Reason:** %s",
		eng.Platform.Mention(evt.UserID), evt.Reason))

	if c.State.DeclineCount == 1 {
		c.SendDM(evt.UserID, fmt.Sprintf("❌ Your request was declined. Reason: %s\nYou may submit a new request immediately by clicking Verify again.", evt.Reason))
	} else {
		c.SendDM(evt.UserID, fmt.Sprintf("❌ Your request was declined again. Reason: %s\nYou must wait 24 hours before trying again.", evt.Reason))
	}
	eng.notify(c.Ctx, slackDeclineBody(evt.UserID, evt.StaffID, evt.Reason, c.State.DeclineCount))
	return nil
}
