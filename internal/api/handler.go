package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/clambin/plexplayer/internal/hub"
	"github.com/clambin/plexplayer/mediaplayer"
	"github.com/gin-gonic/gin"
)

// Players gives access to the players of a Plex Media Server.
type Players interface {
	Players() []mediaplayer.Status
	Player(id string) (mediaplayer.Status, error)
	Do(id string, f func(*mediaplayer.Player) error) error
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	players Players
	logger  *slog.Logger
	timeout time.Duration
}

// NewHandler creates a new API handler. Commands sent to a player time out after timeout.
func NewHandler(players Players, timeout time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		players: players,
		logger:  logger,
		timeout: timeout,
	}
}

// GetPlayers handles the GET /api/players request.
func (h *Handler) GetPlayers(c *gin.Context) {
	c.JSON(http.StatusOK, h.players.Players())
}

// GetPlayer handles the GET /api/players/:id request.
func (h *Handler) GetPlayer(c *gin.Context) {
	status, err := h.players.Player(c.Param("id"))
	if err != nil {
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// command returns a handler that sends a command, without parameters, to the player.
func (h *Handler) command(name string, f func(*mediaplayer.Player, context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.do(c, name, func(ctx context.Context, p *mediaplayer.Player) error { return f(p, ctx) })
	}
}

type volumeRequest struct {
	VolumeLevel *float64 `json:"volume_level" binding:"required,gte=0,lte=1"`
}

// SetVolume handles the POST /api/players/:id/volume request.
func (h *Handler) SetVolume(c *gin.Context) {
	var req volumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	h.do(c, "volume", func(ctx context.Context, p *mediaplayer.Player) error { return p.SetVolume(ctx, *req.VolumeLevel) })
}

type muteRequest struct {
	Mute *bool `json:"mute" binding:"required"`
}

// Mute handles the POST /api/players/:id/mute request.
func (h *Handler) Mute(c *gin.Context) {
	var req muteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	h.do(c, "mute", func(ctx context.Context, p *mediaplayer.Player) error { return p.Mute(ctx, *req.Mute) })
}

type playMediaRequest struct {
	MediaType string `json:"media_type" binding:"required"`
	MediaID   string `json:"media_id" binding:"required"`
}

// PlayMedia handles the POST /api/players/:id/play_media request.
func (h *Handler) PlayMedia(c *gin.Context) {
	var req playMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	h.do(c, "play_media", func(ctx context.Context, p *mediaplayer.Player) error {
		return p.PlayMedia(ctx, mediaplayer.PlayMediaType(req.MediaType), req.MediaID)
	})
}

// do runs f with the requested player and returns the player's status.
func (h *Handler) do(c *gin.Context, name string, f func(context.Context, *mediaplayer.Player) error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	var status mediaplayer.Status
	err := h.players.Do(c.Param("id"), func(p *mediaplayer.Player) error {
		if err := f(ctx, p); err != nil {
			return err
		}
		status = p.Status()
		return nil
	})
	if err != nil {
		h.logger.Warn("command failed", "command", name, "player", c.Param("id"), "err", err)
		h.abort(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) abort(c *gin.Context, err error) {
	switch {
	case errors.Is(err, hub.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "player not found"})
	case errors.Is(err, mediaplayer.ErrInvalidMediaRequest):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
