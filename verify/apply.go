package verify

// applyEffects executes the outbound actions a handler enqueued. The state
// transition has already been persisted by this point; everything here is
// delivery, and each action carries its own failure policy:
//
//   - interaction replies, deletions, announcements: best-effort, logged
//   - review post: on failure the pending-submission flag is rolled back so
//     the user can resend, on success the message ref is recorded
//   - direct messages: best-effort, with an optional visible fallback reply
func (eng *Engine) applyEffects(c *Context) {
	eff := c.effects

	for _, text := range eff.Replies {
		if c.responder == nil {
			c.Logger.Warn("interaction reply requested without a responder")
			break
		}
		if err := c.responder.Reply(c.Ctx, text); err != nil {
			c.Logger.Error("failed to deliver interaction reply", "err", err)
		}
	}

	if eff.ShowDeclineForm && c.responder != nil {
		if err := c.responder.ShowDeclineForm(c.Ctx, c.UserID); err != nil {
			c.Logger.Error("failed to show decline form", "err", err)
		}
	}

	for _, ref := range eff.DeleteRefs {
		if err := eng.Platform.DeleteReviewMessage(c.Ctx, ref); err != nil {
			c.Logger.Error("failed to delete review message", "err", err, "ref", ref)
		}
	}

	if eff.ReviewPost != nil {
		ref, err := eng.Platform.PostReview(c.Ctx, *eff.ReviewPost)
		if err != nil {
			c.Logger.Error("failed to forward submission to review channel", "err", err)
			c.State.PendingSubmission = false
			if perr := c.saveState(); perr != nil {
				c.Logger.Error("failed to roll back pending submission", "err", perr)
			}
		} else {
			reviewPostCount.Inc()
			c.State.ReviewMessageRef = ref
			if perr := c.saveState(); perr != nil {
				c.Logger.Error("failed to record review message ref", "err", perr, "ref", ref)
			}
			eng.notify(c.Ctx, slackReviewBody(*eff.ReviewPost))
		}
	}

	for _, text := range eff.Announcements {
		if err := eng.Platform.Announce(c.Ctx, text); err != nil {
			c.Logger.Error("failed to post announcement", "err", err)
		}
	}

	for _, dm := range eff.DirectMessages {
		if err := eng.Platform.SendDirectMessage(c.Ctx, dm.UserID, dm.Text); err != nil {
			dmFailureCount.Inc()
			c.Logger.Info("direct message delivery failed", "err", err, "target", dm.UserID)
			if dm.Fallback != "" && c.responder != nil {
				if rerr := c.responder.Reply(c.Ctx, dm.Fallback); rerr != nil {
					c.Logger.Error("failed to deliver DM fallback reply", "err", rerr)
				}
			}
		}
	}
}
