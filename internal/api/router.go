package api

import (
	"log/slog"
	"time"

	"github.com/clambin/plexplayer/internal/mw"
	"github.com/clambin/plexplayer/mediaplayer"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Config configures the router.
type Config struct {
	// RateLimit and RateLimitBurst limit the requests per client.
	RateLimit      rate.Limit
	RateLimitBurst int
	// CacheTTL is how long GET responses are cached. Zero disables the cache.
	CacheTTL time.Duration
	// CommandTimeout is the timeout for commands sent to a player.
	CommandTimeout time.Duration
	// AllowedOrigins enables CORS for the given origins.
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter creates and configures a new Gin router.
func NewRouter(players Players, cfg Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestLogger(logger))
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}
	timeout := cfg.CommandTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	handler := NewHandler(players, timeout, logger)
	cacheStore := cache.New(cfg.CacheTTL, 10*time.Minute)

	api := r.Group("/api")
	api.Use(mw.RateLimiter(cfg.RateLimit, cfg.RateLimitBurst), mw.Cache(cacheStore, cfg.CacheTTL), mw.Invalidate(cacheStore))
	{
		api.GET("/players", handler.GetPlayers)
		api.GET("/players/:id", handler.GetPlayer)

		api.POST("/players/:id/play", handler.command("play", (*mediaplayer.Player).Play))
		api.POST("/players/:id/pause", handler.command("pause", (*mediaplayer.Player).Pause))
		api.POST("/players/:id/stop", handler.command("stop", (*mediaplayer.Player).Stop))
		api.POST("/players/:id/next", handler.command("next", (*mediaplayer.Player).NextTrack))
		api.POST("/players/:id/previous", handler.command("previous", (*mediaplayer.Player).PreviousTrack))
		api.POST("/players/:id/turn_off", handler.command("turn_off", (*mediaplayer.Player).TurnOff))
		api.POST("/players/:id/volume", handler.SetVolume)
		api.POST("/players/:id/mute", handler.Mute)
		api.POST("/players/:id/play_media", handler.PlayMedia)
	}

	return r
}
