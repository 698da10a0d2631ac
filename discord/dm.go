package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/agegate-bot/agegate/verify"
)

// handleMessage forwards direct messages to the engine as proof
// submissions. Guild messages and bot messages are ignored.
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if m.GuildID != "" {
		return
	}

	var attachments []verify.Attachment
	for _, a := range m.Attachments {
		attachments = append(attachments, verify.Attachment{
			URL:         a.URL,
			ContentType: a.ContentType,
		})
	}

	evt := verify.SubmissionEvent{
		UserID:      m.Author.ID,
		UserTag:     m.Author.String(),
		Content:     m.Content,
		Attachments: attachments,
	}
	if err := b.Engine.ProcessSubmission(context.Background(), evt); err != nil {
		b.Logger.Error("submission processing failed", "err", err, "user", evt.UserID)
	}
}
