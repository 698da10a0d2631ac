package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"

	"github.com/agegate-bot/agegate/discord"
	"github.com/agegate-bot/agegate/verify"
	"github.com/agegate-bot/agegate/verify/statestore"
)

type Config struct {
	DiscordToken    string
	VerifyChannelID string
	ReviewChannelID string
	RoleID          string
	Bind            string
	RedisURL        string
	SlackWebhookURL string
}

type Server struct {
	logger *slog.Logger
	echo   *echo.Echo
	httpd  *http.Server
	bot    *discord.Bot
	engine *verify.Engine
}

func NewServer(logger *slog.Logger, config Config) (*Server, error) {

	var store statestore.StateStore
	if config.RedisURL != "" {
		rs, err := statestore.NewRedisStateStore(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis state store: %w", err)
		}
		store = rs
	} else {
		logger.Info("using in-memory state store; state will not survive restarts")
		store = statestore.NewMemStateStore()
	}

	eng := &verify.Engine{
		Logger:   logger,
		Store:    store,
		Cooldown: verify.DefaultCooldown,
	}
	if config.SlackWebhookURL != "" {
		eng.Notifier = &verify.SlackNotifier{WebhookURL: config.SlackWebhookURL}
	}

	bot, err := discord.New(config.DiscordToken, eng, logger, discord.Config{
		VerifyChannelID: config.VerifyChannelID,
		ReviewChannelID: config.ReviewChannelID,
		RoleID:          config.RoleID,
	})
	if err != nil {
		return nil, err
	}
	eng.Platform = bot

	e := echo.New()
	e.HideBanner = true
	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())
	e.Use(echoprometheus.NewMiddleware("agegate"))

	srv := &Server{
		logger: logger,
		echo:   e,
		bot:    bot,
		engine: eng,
	}
	srv.httpd = &http.Server{
		Handler:      srv,
		Addr:         config.Bind,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  30 * time.Second,
	}

	e.GET("/", srv.HandleIndex)
	e.GET("/_health", srv.HandleHealthCheck)
	e.GET("/metrics", echoprometheus.NewHandler())

	return srv, nil
}

// Run connects the gateway, starts the HTTP listener, and blocks until an
// exit signal arrives.
func (srv *Server) Run() error {
	if err := srv.bot.Open(); err != nil {
		return fmt.Errorf("opening discord gateway: %w", err)
	}
	defer func() {
		if err := srv.bot.Close(); err != nil {
			srv.logger.Error("discord session close error", "err", err)
		}
	}()

	srv.logger.Info("starting server", "bind", srv.httpd.Addr)
	go func() {
		if err := srv.httpd.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				srv.logger.Error("HTTP server shutting down unexpectedly", "err", err)
			}
		}
	}()

	quit := make(chan struct{})
	exitSignals := make(chan os.Signal, 1)
	signal.Notify(exitSignals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-exitSignals
		srv.logger.Info("received OS exit signal", "signal", sig)

		if err := srv.Shutdown(); err != nil {
			srv.logger.Error("HTTP server shutdown error", "err", err)
		}

		close(quit)
	}()
	<-quit
	srv.logger.Info("graceful shutdown complete")
	return nil
}

type GenericStatus struct {
	Daemon  string `json:"daemon"`
	Status  string `json:"status"`
	Message string `json:"msg,omitempty"`
}

func (srv *Server) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	srv.echo.ServeHTTP(rw, req)
}

func (srv *Server) Shutdown() error {
	srv.logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.httpd.Shutdown(ctx)
}

func (srv *Server) HandleIndex(c echo.Context) error {
	return c.String(http.StatusOK, "Bot is running!")
}

func (srv *Server) HandleHealthCheck(c echo.Context) error {
	return c.JSON(200, GenericStatus{Status: "ok", Daemon: "agegate"})
}
