package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/agegate-bot/agegate/verify"
)

const (
	verifyPromptColor = 0x5865F2
	reviewEmbedColor  = 0xFFA500
)

// renderReview turns a review artifact into the staff-channel message:
// embed with the requester's identity and statement, the first image shown
// inline, the first video linked in a field, leftover attachment links in
// the message body, and the Accept/Decline controls.
func renderReview(artifact verify.ReviewArtifact) *discordgo.MessageSend {
	var desc strings.Builder
	fmt.Fprintf(&desc, "User: <@%s> (%s)\n", artifact.UserID, artifact.UserTag)
	fmt.Fprintf(&desc, "ID: %s\n", artifact.UserID)
	if artifact.Statement != "" {
		fmt.Fprintf(&desc, "Statement: %q\n", artifact.Statement)
	}
	if artifact.ImageURL != "" || artifact.VideoURL != "" || len(artifact.AttachmentURLs) > 0 {
		desc.WriteString("Attachment included below.")
	}

	embed := &discordgo.MessageEmbed{
		Title:       artifact.Title,
		Description: desc.String(),
		Color:       reviewEmbedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Click Accept to assign the NSFW role, or Decline to deny.",
		},
	}
	if artifact.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: artifact.ImageURL}
	}
	if artifact.VideoURL != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Video Proof",
			Value: fmt.Sprintf("[Click to view video](%s)", artifact.VideoURL),
		})
	}

	return &discordgo.MessageSend{
		Content:    strings.Join(artifact.AttachmentURLs, "\n"),
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{reviewButtonRow(artifact.UserID)},
	}
}

func reviewButtonRow(userID string) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Accept",
				Style:    discordgo.SuccessButton,
				CustomID: Token{Action: ActionAccept, UserID: userID}.CustomID(),
			},
			discordgo.Button{
				Label:    "Decline",
				Style:    discordgo.DangerButton,
				CustomID: Token{Action: ActionDecline, UserID: userID}.CustomID(),
			},
		},
	}
}
