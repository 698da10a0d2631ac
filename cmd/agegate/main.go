package main

import (
	"log/slog"
	"os"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	cli "github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "agegate",
		Usage:   "discord age verification daemon",
		Version: versioninfo.Short(),
	}

	app.Commands = []*cli.Command{
		runCmd,
	}

	return app.Run(args)
}

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "run the service",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "discord-token",
			Usage:    "bot token for the discord gateway",
			Required: true,
			EnvVars:  []string{"DISCORD_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "verify-channel-id",
			Usage:   "channel where the verify prompt is posted",
			EnvVars: []string{"VERIFY_CHANNEL_ID"},
		},
		&cli.StringFlag{
			Name:    "review-channel-id",
			Usage:   "staff channel where submissions are reviewed",
			EnvVars: []string{"REVIEW_CHANNEL_ID"},
		},
		&cli.StringFlag{
			Name:    "nsfw-role-id",
			Usage:   "role granted on accept",
			EnvVars: []string{"NSFW_ROLE_ID"},
		},
		&cli.StringFlag{
			Name:    "bind",
			Usage:   "IP or address, and port, to listen on for HTTP APIs",
			Value:   ":3000",
			EnvVars: []string{"AGEGATE_BIND"},
		},
		&cli.StringFlag{
			Name:    "redis-url",
			Usage:   "redis connection URL for persistent verification state; if empty, uses in-memory",
			EnvVars: []string{"REDIS_URL"},
		},
		&cli.StringFlag{
			Name:    "slack-webhook-url",
			Usage:   "webhook URL for staff notifications",
			EnvVars: []string{"SLACK_WEBHOOK_URL"},
		},
	},
	Action: func(cctx *cli.Context) error {
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		slog.SetDefault(logger)

		srv, err := NewServer(logger, Config{
			DiscordToken:    cctx.String("discord-token"),
			VerifyChannelID: cctx.String("verify-channel-id"),
			ReviewChannelID: cctx.String("review-channel-id"),
			RoleID:          cctx.String("nsfw-role-id"),
			Bind:            cctx.String("bind"),
			RedisURL:        cctx.String("redis-url"),
			SlackWebhookURL: cctx.String("slack-webhook-url"),
		})
		if err != nil {
			return err
		}
		return srv.Run()
	},
}
