package discord

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/agegate-bot/agegate/verify"
)

type Config struct {
	VerifyChannelID string
	ReviewChannelID string
	// Restricted role granted on acceptance.
	RoleID string
}

// Bot owns the gateway session and implements verify.Platform against it.
type Bot struct {
	Session *discordgo.Session
	Engine  *verify.Engine
	Logger  *slog.Logger
	Config  Config

	mu      sync.RWMutex
	guildID string
}

func New(token string, engine *verify.Engine, logger *slog.Logger, config Config) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMembers |
		discordgo.IntentGuildMessages |
		discordgo.IntentDirectMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		Session: session,
		Engine:  engine,
		Logger:  logger,
		Config:  config,
	}
	session.AddHandler(b.handleReady)
	session.AddHandler(b.handleInteraction)
	session.AddHandler(b.handleMessage)
	return b, nil
}

func (b *Bot) Open() error {
	return b.Session.Open()
}

func (b *Bot) Close() error {
	return b.Session.Close()
}

// handleReady resolves the guild from the review channel and posts the
// verify prompt.
func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	b.Logger.Info("logged in", "user", r.User.String())

	ch, err := s.Channel(b.Config.ReviewChannelID)
	if err != nil {
		b.Logger.Error("review channel not found, check the configured channel ID", "err", err, "channel", b.Config.ReviewChannelID)
	} else {
		b.setGuildID(ch.GuildID)
	}

	if err := b.postVerifyPrompt(); err != nil {
		b.Logger.Error("failed to send verify message", "err", err, "channel", b.Config.VerifyChannelID)
	}
}

func (b *Bot) postVerifyPrompt() error {
	embed := &discordgo.MessageEmbed{
		Title: "NSFW Age Verification",
		Description: "Click the button below to request NSFW access.\n\n" +
			"You will be asked to confirm via DM, and our staff will review your request.",
		Color: verifyPromptColor,
	}
	_, err := b.Session.ChannelMessageSendComplex(b.Config.VerifyChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Verify age for NSFW",
						Style:    discordgo.PrimaryButton,
						CustomID: VerifyButtonID,
					},
				},
			},
		},
	})
	return err
}

func (b *Bot) setGuildID(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.guildID = id
}

func (b *Bot) guild() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.guildID
}
