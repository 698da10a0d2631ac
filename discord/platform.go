package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/agegate-bot/agegate/verify"
)

var _ verify.Platform = (*Bot)(nil)

func (b *Bot) SendDirectMessage(ctx context.Context, userID, text string) error {
	ch, err := b.Session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("opening DM channel: %w", err)
	}
	if _, err := b.Session.ChannelMessageSend(ch.ID, text); err != nil {
		return fmt.Errorf("sending DM: %w", err)
	}
	return nil
}

func (b *Bot) PostReview(ctx context.Context, artifact verify.ReviewArtifact) (string, error) {
	msg, err := b.Session.ChannelMessageSendComplex(b.Config.ReviewChannelID, renderReview(artifact))
	if err != nil {
		return "", fmt.Errorf("posting to review channel: %w", err)
	}
	return msg.ID, nil
}

func (b *Bot) DeleteReviewMessage(ctx context.Context, ref string) error {
	return b.Session.ChannelMessageDelete(b.Config.ReviewChannelID, ref)
}

func (b *Bot) Announce(ctx context.Context, text string) error {
	_, err := b.Session.ChannelMessageSend(b.Config.ReviewChannelID, text)
	return err
}

func (b *Bot) Mention(userID string) string {
	return "<@" + userID + ">"
}

// AssignRole grants the restricted role, validating the accept
// preconditions first. Error messages are staff-facing: the engine relays
// them verbatim as the verdict feedback.
func (b *Bot) AssignRole(ctx context.Context, userID string) error {
	guildID := b.guild()
	if guildID == "" {
		return errors.New("Guild not resolved yet. Try again in a moment.")
	}

	roles, err := b.Session.GuildRoles(guildID)
	if err != nil {
		return fmt.Errorf("Could not fetch guild roles: %v", err)
	}
	var target *discordgo.Role
	for _, role := range roles {
		if role.ID == b.Config.RoleID {
			target = role
			break
		}
	}
	if target == nil {
		return errors.New("NSFW role not found. Check the configured role ID.")
	}

	me, err := b.Session.GuildMember(guildID, b.Session.State.User.ID)
	if err != nil {
		return fmt.Errorf("Could not fetch my own member data: %v", err)
	}
	var topPosition int
	var canManage bool
	for _, roleID := range me.Roles {
		for _, role := range roles {
			if role.ID != roleID {
				continue
			}
			if role.Position > topPosition {
				topPosition = role.Position
			}
			if role.Permissions&(discordgo.PermissionManageRoles|discordgo.PermissionAdministrator) != 0 {
				canManage = true
			}
		}
	}
	if !canManage {
		return errors.New("I need the Manage Roles permission to assign the NSFW role.")
	}
	if target.Position >= topPosition {
		return errors.New("Move the NSFW role below my top role in Server Settings → Roles.")
	}

	if _, err := b.Session.GuildMember(guildID, userID); err != nil {
		return errors.New("Could not fetch the target member.")
	}

	if err := b.Session.GuildMemberRoleAdd(guildID, userID, b.Config.RoleID); err != nil {
		return fmt.Errorf("Failed to assign role: %v", err)
	}
	return nil
}
