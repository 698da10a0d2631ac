package discord

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/agegate-bot/agegate/verify"
)

var errAlreadyResponded = errors.New("interaction already acknowledged")

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	switch i.Type {
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		if data.CustomID == VerifyButtonID {
			b.onVerifyRequest(ctx, i)
			return
		}
		token, err := ParseToken(data.CustomID)
		if err != nil {
			b.Logger.Warn("ignoring component with invalid token", "err", err)
			return
		}
		switch token.Action {
		case ActionAccept:
			b.onAccept(ctx, i, token)
		case ActionDecline:
			b.onDeclineStart(ctx, i, token)
		}
	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		token, err := ParseToken(data.CustomID)
		if err != nil || token.Action != ActionDeclineModal {
			b.Logger.Warn("ignoring modal with invalid token", "err", err, "custom_id", data.CustomID)
			return
		}
		b.onDeclineSubmit(ctx, i, token, data)
	}
}

func (b *Bot) onVerifyRequest(ctx context.Context, i *discordgo.InteractionCreate) {
	r := b.responder(i)
	if i.Member == nil || i.Member.User == nil {
		// verify button only lives in the guild channel; a bare interaction
		// means member data did not come through
		if err := r.Reply(ctx, "Could not fetch your member data. Try again later."); err != nil {
			b.Logger.Error("failed to deliver reply", "err", err)
		}
		return
	}

	evt := verify.VerifyRequestEvent{
		UserID:     i.Member.User.ID,
		RoleHolder: slices.Contains(i.Member.Roles, b.Config.RoleID),
		Responder:  r,
	}
	if err := b.Engine.ProcessVerifyRequest(ctx, evt); err != nil {
		b.Logger.Error("verify request processing failed", "err", err, "user", evt.UserID)
	}
}

func (b *Bot) onAccept(ctx context.Context, i *discordgo.InteractionCreate, token Token) {
	r := b.responder(i)
	// acknowledge the click immediately; verdict feedback arrives as
	// follow-ups
	if err := r.Acknowledge(ctx); err != nil {
		b.Logger.Error("failed to acknowledge accept", "err", err)
	}

	evt := verify.AcceptEvent{
		UserID:     token.UserID,
		StaffID:    actorID(i),
		MessageRef: i.Message.ID,
		Responder:  r,
	}
	if err := b.Engine.ProcessAccept(ctx, evt); err != nil {
		b.Logger.Error("accept processing failed", "err", err, "user", evt.UserID)
	}
}

func (b *Bot) onDeclineStart(ctx context.Context, i *discordgo.InteractionCreate, token Token) {
	// no acknowledgment here: the modal must be the first response
	evt := verify.DeclineStartEvent{
		UserID:    token.UserID,
		Responder: b.responder(i),
	}
	if err := b.Engine.ProcessDeclineStart(ctx, evt); err != nil {
		b.Logger.Error("decline start processing failed", "err", err, "user", evt.UserID)
	}
}

func (b *Bot) onDeclineSubmit(ctx context.Context, i *discordgo.InteractionCreate, token Token, data discordgo.ModalSubmitInteractionData) {
	evt := verify.DeclineSubmitEvent{
		UserID:    token.UserID,
		StaffID:   actorID(i),
		Reason:    modalInputValue(data, declineReasonInputID),
		Responder: b.responder(i),
	}
	if err := b.Engine.ProcessDeclineSubmit(ctx, evt); err != nil {
		b.Logger.Error("decline submit processing failed", "err", err, "user", evt.UserID)
	}
}

func actorID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func modalInputValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range ar.Components {
			if input, ok := comp.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}

// interactionResponder delivers engine acknowledgments for one interaction,
// switching to follow-up messages once the initial response is spent.
type interactionResponder struct {
	bot *Bot
	i   *discordgo.InteractionCreate

	mu        sync.Mutex
	responded bool
}

var _ verify.Responder = (*interactionResponder)(nil)

func (b *Bot) responder(i *discordgo.InteractionCreate) *interactionResponder {
	return &interactionResponder{bot: b, i: i}
}

func (r *interactionResponder) Reply(ctx context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.responded {
		_, err := r.bot.Session.FollowupMessageCreate(r.i.Interaction, true, &discordgo.WebhookParams{
			Content: text,
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		return err
	}
	err := r.bot.Session.InteractionRespond(r.i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: text,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err == nil {
		r.responded = true
	}
	return err
}

func (r *interactionResponder) Acknowledge(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.responded {
		return nil
	}
	err := r.bot.Session.InteractionRespond(r.i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err == nil {
		r.responded = true
	}
	return err
}

func (r *interactionResponder) ShowDeclineForm(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.responded {
		return errAlreadyResponded
	}
	err := r.bot.Session.InteractionRespond(r.i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: Token{Action: ActionDeclineModal, UserID: userID}.CustomID(),
			Title:    "Decline Reason",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID: declineReasonInputID,
							Label:    "Enter reason for decline",
							Style:    discordgo.TextInputParagraph,
							Required: true,
						},
					},
				},
			},
		},
	})
	if err == nil {
		r.responded = true
	}
	return err
}
