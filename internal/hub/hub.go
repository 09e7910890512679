// Package hub keeps the players of a Plex Media Server up to date.
//
// The Hub polls the server's connected clients and active sessions, creates a player for every machine
// identifier it sees, and hands each player its latest device and session. Players request an early poll
// after each command they send.
package hub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/clambin/plexplayer/internal/adapter"
	"github.com/clambin/plexplayer/mediaplayer"
	"github.com/clambin/plexplayer/plex"
	"golang.org/x/time/rate"
)

// ErrNotFound is returned for an unknown player.
var ErrNotFound = errors.New("player not found")

// PlexClient reports the players connected to a Plex Media Server and their sessions.
type PlexClient interface {
	GetDevices(ctx context.Context) ([]plex.Device, error)
	GetSessions(ctx context.Context) ([]plex.Session, error)
}

var _ mediaplayer.Refresher = &Hub{}

// Hub maintains one mediaplayer.Player per Plex client.
type Hub struct {
	client        PlexClient
	server        *adapter.Server
	logger        *slog.Logger
	limiter       *rate.Limiter
	refresh       chan struct{}
	players       map[string]*entry
	playerOptions []mediaplayer.Option
	interval      time.Duration
	lock          sync.RWMutex
}

// entry serializes all access to a player: refreshes from the poll loop and commands from the API.
type entry struct {
	player *mediaplayer.Player
	lock   sync.Mutex
}

type Option func(*Hub)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) {
		h.logger = logger
	}
}

// WithPollInterval sets how often the server is polled.
func WithPollInterval(interval time.Duration) Option {
	return func(h *Hub) {
		h.interval = interval
	}
}

// WithRefreshLimit limits how often a player's refresh request can trigger a poll.
func WithRefreshLimit(limit rate.Limit, burst int) Option {
	return func(h *Hub) {
		h.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithPlayerOptions sets the options for each new player.
func WithPlayerOptions(opts ...mediaplayer.Option) Option {
	return func(h *Hub) {
		h.playerOptions = append(h.playerOptions, opts...)
	}
}

func New(client PlexClient, server *adapter.Server, opts ...Option) *Hub {
	h := Hub{
		client:   client,
		server:   server,
		logger:   slog.New(slog.DiscardHandler),
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
		refresh:  make(chan struct{}, 1),
		players:  make(map[string]*entry),
		interval: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(&h)
	}
	return &h
}

// Run polls the server until the context is canceled.
func (h *Hub) Run(ctx context.Context) error {
	h.logger.Debug("hub started", "interval", h.interval)
	defer h.logger.Debug("hub stopped")

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		if err := h.Poll(ctx); err != nil && ctx.Err() == nil {
			h.logger.Error("failed to poll server", "err", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-h.refresh:
			if err := h.limiter.Wait(ctx); err != nil {
				return nil
			}
		}
	}
}

// RequestRefresh schedules an early poll. Requests made before the poll starts are coalesced. It never blocks.
func (h *Hub) RequestRefresh() {
	select {
	case h.refresh <- struct{}{}:
	default:
	}
}

type update struct {
	device  mediaplayer.DeviceHandle
	session mediaplayer.SessionHandle
}

// Poll gets the server's clients and sessions and refreshes all players.
//
// Players that are no longer connected, and have no session, are refreshed without a device, which marks them unavailable.
func (h *Hub) Poll(ctx context.Context) error {
	devices, err := h.client.GetDevices(ctx)
	if err != nil {
		return fmt.Errorf("clients: %w", err)
	}
	sessions, err := h.client.GetSessions(ctx)
	if err != nil {
		return fmt.Errorf("sessions: %w", err)
	}

	sessionsByPlayer := make(map[string]plex.Session, len(sessions))
	for _, session := range sessions {
		id := session.Player.MachineIdentifier
		if _, ok := sessionsByPlayer[id]; id != "" && !ok {
			sessionsByPlayer[id] = session
		}
	}

	updates := make(map[string]update, len(devices)+len(sessions))
	for _, device := range devices {
		var u update
		session, ok := sessionsByPlayer[device.MachineIdentifier]
		if ok {
			u.session = h.server.Session(session)
		}
		u.device = h.server.Device(device, session.Player.State)
		updates[device.MachineIdentifier] = u
	}
	for id, session := range sessionsByPlayer {
		if _, ok := updates[id]; !ok {
			updates[id] = update{device: h.server.SessionDevice(session.Player), session: h.server.Session(session)}
		}
	}

	for id, u := range updates {
		h.apply(h.getOrCreate(id), u)
	}

	h.lock.RLock()
	defer h.lock.RUnlock()
	for id, e := range h.players {
		if _, ok := updates[id]; !ok {
			h.apply(e, update{})
		}
	}
	return nil
}

func (h *Hub) getOrCreate(id string) *entry {
	h.lock.Lock()
	defer h.lock.Unlock()
	e, ok := h.players[id]
	if !ok {
		e = &entry{player: mediaplayer.New(id, h.server, h, h.playerOptions...)}
		h.players[id] = e
		h.logger.Info("new player found", "machineIdentifier", id)
	}
	return e
}

func (h *Hub) apply(e *entry, u update) {
	e.lock.Lock()
	defer e.lock.Unlock()
	before := e.player.State()
	e.player.Refresh(u.device, u.session)
	if after := e.player.State(); after != before {
		h.logger.Debug("player state changed", "name", e.player.Name(), "from", before, "to", after)
	}
}

// Players returns the status of all players, ordered by name.
func (h *Hub) Players() []mediaplayer.Status {
	h.lock.RLock()
	defer h.lock.RUnlock()
	statuses := make([]mediaplayer.Status, 0, len(h.players))
	for _, e := range h.players {
		e.lock.Lock()
		statuses = append(statuses, e.player.Status())
		e.lock.Unlock()
	}
	slices.SortFunc(statuses, func(a, b mediaplayer.Status) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.MachineIdentifier, b.MachineIdentifier)
	})
	return statuses
}

// Player returns the status of the player with the given machine identifier.
func (h *Hub) Player(id string) (mediaplayer.Status, error) {
	var status mediaplayer.Status
	err := h.Do(id, func(p *mediaplayer.Player) error {
		status = p.Status()
		return nil
	})
	return status, err
}

// Do calls f with the player with the given machine identifier. No other access to the player happens while f runs.
func (h *Hub) Do(id string, f func(*mediaplayer.Player) error) error {
	h.lock.RLock()
	e, ok := h.players[id]
	h.lock.RUnlock()
	if !ok {
		return fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	return f(e.player)
}
