package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/clambin/plexplayer/internal/api"
	"github.com/clambin/plexplayer/internal/hub"
	"github.com/clambin/plexplayer/mediaplayer"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var _ api.Players = &fakePlayers{}

type fakePlayers struct {
	err    error
	player *mediaplayer.Player
	calls  int
}

func (f *fakePlayers) Players() []mediaplayer.Status {
	return []mediaplayer.Status{f.player.Status()}
}

func (f *fakePlayers) Player(id string) (mediaplayer.Status, error) {
	if id != f.player.MachineIdentifier() {
		return mediaplayer.Status{}, fmt.Errorf("%q: %w", id, hub.ErrNotFound)
	}
	return f.player.Status(), nil
}

func (f *fakePlayers) Do(id string, fn func(*mediaplayer.Player) error) error {
	if id != f.player.MachineIdentifier() {
		return fmt.Errorf("%q: %w", id, hub.ErrNotFound)
	}
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(f.player)
}

func newRouter(players api.Players) *gin.Engine {
	return api.NewRouter(players, api.Config{RateLimit: rate.Inf, RateLimitBurst: 1, CommandTimeout: time.Second})
}

func TestHandler_GetPlayers(t *testing.T) {
	r := newRouter(&fakePlayers{player: mediaplayer.New("client-1", nil, nil)})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/players", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"machine_identifier":"client-1"`)
	assert.Contains(t, w.Body.String(), `"state":"off"`)
}

func TestHandler_GetPlayer(t *testing.T) {
	r := newRouter(&fakePlayers{player: mediaplayer.New("client-1", nil, nil)})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/players/client-1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"machine_identifier":"client-1"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/players/client-9", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"player not found"}`, w.Body.String())
}

func TestHandler_Commands(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		err      error
		wantCode int
		wantCall bool
	}{
		{name: "play", path: "/api/players/client-1/play", wantCode: http.StatusOK, wantCall: true},
		{name: "pause", path: "/api/players/client-1/pause", wantCode: http.StatusOK, wantCall: true},
		{name: "stop", path: "/api/players/client-1/stop", wantCode: http.StatusOK, wantCall: true},
		{name: "next", path: "/api/players/client-1/next", wantCode: http.StatusOK, wantCall: true},
		{name: "previous", path: "/api/players/client-1/previous", wantCode: http.StatusOK, wantCall: true},
		{name: "turn off", path: "/api/players/client-1/turn_off", wantCode: http.StatusOK, wantCall: true},
		{name: "unknown player", path: "/api/players/client-9/play", wantCode: http.StatusNotFound},
		{name: "command failed", path: "/api/players/client-1/play", err: errors.New("connection refused"), wantCode: http.StatusBadGateway, wantCall: true},
		{name: "volume", path: "/api/players/client-1/volume", body: `{"volume_level":0.5}`, wantCode: http.StatusOK, wantCall: true},
		{name: "volume zero", path: "/api/players/client-1/volume", body: `{"volume_level":0}`, wantCode: http.StatusOK, wantCall: true},
		{name: "volume too high", path: "/api/players/client-1/volume", body: `{"volume_level":1.5}`, wantCode: http.StatusBadRequest},
		{name: "volume missing", path: "/api/players/client-1/volume", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "mute", path: "/api/players/client-1/mute", body: `{"mute":false}`, wantCode: http.StatusOK, wantCall: true},
		{name: "mute invalid", path: "/api/players/client-1/mute", body: `{"mute":"yes"}`, wantCode: http.StatusBadRequest},
		{name: "play media", path: "/api/players/client-1/play_media", body: `{"media_type":"VIDEO","media_id":"{\"library_name\":\"Movies\",\"video_name\":\"Movie X\"}"}`, wantCode: http.StatusOK, wantCall: true},
		{name: "play media missing id", path: "/api/players/client-1/play_media", body: `{"media_type":"VIDEO"}`, wantCode: http.StatusBadRequest},
		{name: "play media invalid request", path: "/api/players/client-1/play_media", body: `{"media_type":"VIDEO","media_id":"x"}`, err: fmt.Errorf("%w: media id", mediaplayer.ErrInvalidMediaRequest), wantCode: http.StatusBadRequest, wantCall: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := fakePlayers{player: mediaplayer.New("client-1", nil, nil), err: tt.err}
			r := newRouter(&players)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantCall, players.calls > 0)
		})
	}
}

func TestRouter_RateLimit(t *testing.T) {
	r := api.NewRouter(&fakePlayers{player: mediaplayer.New("client-1", nil, nil)}, api.Config{RateLimit: rate.Every(time.Hour), RateLimitBurst: 1})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/players", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/players", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRouter_CORS(t *testing.T) {
	r := api.NewRouter(&fakePlayers{player: mediaplayer.New("client-1", nil, nil)}, api.Config{
		RateLimit:      rate.Inf,
		RateLimitBurst: 1,
		AllowedOrigins: []string{"http://dashboard.local"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/players", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://dashboard.local", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/players", nil)
	req.Header.Set("Origin", "http://elsewhere.local")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
