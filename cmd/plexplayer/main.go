package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clambin/plexplayer/internal/adapter"
	"github.com/clambin/plexplayer/internal/api"
	"github.com/clambin/plexplayer/internal/config"
	"github.com/clambin/plexplayer/internal/hub"
	"github.com/clambin/plexplayer/mediaplayer"
	"github.com/clambin/plexplayer/plex"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"golang.org/x/time/rate"
)

var configPath = flag.String("config", "/etc/plexplayer/config.yaml", "configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(afero.NewOsFs(), *configPath)
	if err != nil {
		slog.Error("failed to load configuration", "path", *configPath, "err", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err = run(ctx, cfg, logger); err != nil {
		logger.Error("plexplayer failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	identity := plex.DefaultClientIdentity()
	if cfg.Plex.ClientIdentifier != "" {
		identity.Identifier = cfg.Plex.ClientIdentifier
	}
	if cfg.Plex.DeviceName != "" {
		identity.DeviceName = cfg.Plex.DeviceName
	}
	client := plex.New(cfg.Plex.URL,
		plex.WithToken(cfg.Plex.Token),
		plex.WithClientIdentity(identity),
		plex.WithHTTPClient(&http.Client{Timeout: cfg.Plex.Timeout}),
	)
	server := adapter.New(client,
		adapter.WithLogger(logger.With("component", "library")),
		adapter.WithCacheExpiration(cfg.Plex.LibraryCache),
	)

	h := hub.New(client, server,
		hub.WithLogger(logger.With("component", "hub")),
		hub.WithPollInterval(cfg.Players.PollInterval),
		hub.WithPlayerOptions(
			mediaplayer.WithLogger(logger.With("component", "player")),
			mediaplayer.WithEpisodeArt(cfg.Players.UseEpisodeArt),
			mediaplayer.WithShowAllControls(cfg.Players.ShowAllControls),
		),
	)

	gin.SetMode(gin.ReleaseMode)
	httpServer := &http.Server{
		Addr: cfg.Server.Address,
		Handler: api.NewRouter(h, api.Config{
			RateLimit:      rate.Limit(cfg.Server.RateLimitPerSec),
			RateLimitBurst: cfg.Server.RateLimitBurst,
			CacheTTL:       cfg.Server.CacheTTL,
			CommandTimeout: cfg.Players.CommandTimeout,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Logger:         logger.With("component", "api"),
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "address", cfg.Server.Address)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		_ = h.Run(ctx)
	}()

	logger.Info("plexplayer started", "server", cfg.Plex.URL)
	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}
	<-hubDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("plexplayer stopped")
	return nil
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	level, _ := cfg.SlogLevel()
	opts := slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, &opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &opts))
}
