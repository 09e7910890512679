// Package adapter presents the objects of the plex client as the handles used by mediaplayer.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/clambin/plexplayer/mediaplayer"
	"github.com/clambin/plexplayer/plex"
	"github.com/patrickmn/go-cache"
)

// ErrNotFound is returned when a library section, item or playlist doesn't exist.
var ErrNotFound = errors.New("not found")

const (
	identityKey = "identity"
	sectionsKey = "sections"
)

var _ mediaplayer.Library = &Server{}

// Server gives access to the library of a Plex Media Server and creates the handles for its sessions and players.
type Server struct {
	client *plex.Client
	cache  *cache.Cache
	logger *slog.Logger
}

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithCacheExpiration sets how long the list of library sections is cached.
func WithCacheExpiration(expiration time.Duration) Option {
	return func(s *Server) {
		s.cache = cache.New(expiration, 2*expiration)
	}
}

func New(client *plex.Client, opts ...Option) *Server {
	s := Server{
		client: client,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &s
}

// ServerID returns the machine identifier of the Plex Media Server.
func (s *Server) ServerID(ctx context.Context) (string, error) {
	if id, ok := s.cache.Get(identityKey); ok {
		return id.(string), nil
	}
	identity, err := s.client.GetIdentity(ctx)
	if err != nil {
		return "", fmt.Errorf("identity: %w", err)
	}
	s.cache.Set(identityKey, identity.MachineIdentifier, cache.NoExpiration)
	return identity.MachineIdentifier, nil
}

// Section returns the library section with the given title.
func (s *Server) Section(ctx context.Context, name string) (mediaplayer.LibrarySection, error) {
	libraries, err := s.libraries(ctx)
	if err != nil {
		return nil, err
	}
	for _, library := range libraries {
		if library.Title == name {
			return &Section{server: s, library: library}, nil
		}
	}
	return nil, fmt.Errorf("library %q: %w", name, ErrNotFound)
}

func (s *Server) libraries(ctx context.Context) ([]plex.Library, error) {
	if libraries, ok := s.cache.Get(sectionsKey); ok {
		return libraries.([]plex.Library), nil
	}
	libraries, err := s.client.GetLibraries(ctx)
	if err != nil {
		return nil, fmt.Errorf("libraries: %w", err)
	}
	s.logger.Debug("library sections loaded", "count", len(libraries))
	s.cache.SetDefault(sectionsKey, libraries)
	return libraries, nil
}

// Playlist returns the playlist with the given title.
func (s *Server) Playlist(ctx context.Context, name string) (mediaplayer.MediaItem, error) {
	playlists, err := s.client.GetPlaylists(ctx)
	if err != nil {
		return nil, fmt.Errorf("playlists: %w", err)
	}
	for _, playlist := range playlists {
		if playlist.Title == name {
			return &Item{server: s, metadata: playlist}, nil
		}
	}
	return nil, fmt.Errorf("playlist %q: %w", name, ErrNotFound)
}

// CreatePlayQueue creates a play queue on the server for the item. item must be created by this Server.
func (s *Server) CreatePlayQueue(ctx context.Context, item mediaplayer.MediaItem, shuffle bool) (mediaplayer.PlayQueue, error) {
	i, ok := item.(*Item)
	if !ok {
		return mediaplayer.PlayQueue{}, fmt.Errorf("unsupported media item: %T", item)
	}
	serverID, err := s.ServerID(ctx)
	if err != nil {
		return mediaplayer.PlayQueue{}, err
	}
	queue, err := s.client.CreatePlayQueue(ctx, serverID, i.metadata, shuffle)
	if err != nil {
		return mediaplayer.PlayQueue{}, err
	}
	kind := mediaplayer.MediaKindVideo
	if i.metadata.QueueType() == "audio" {
		kind = mediaplayer.MediaKindMusic
	}
	return mediaplayer.PlayQueue{
		ID:   strconv.Itoa(queue.ID),
		Key:  "/library/metadata/" + queue.SelectedMetadataItemID,
		Kind: kind,
	}, nil
}

// Device returns the handle for a player connected to the server. state is the player's state, as reported
// by its session, or blank if the player has no session.
func (s *Server) Device(device plex.Device, state string) *Device {
	return &Device{server: s, device: device, state: state}
}

// SessionDevice returns the handle for a player that is only known through its session.
func (s *Server) SessionDevice(player plex.SessionPlayer) *Device {
	return s.Device(plex.Device{
		Name:              player.Title,
		Address:           player.Address,
		MachineIdentifier: player.MachineIdentifier,
		Product:           player.Product,
		Version:           player.Version,
	}, player.State)
}

// Session returns the handle for a session.
func (s *Server) Session(session plex.Session) Session {
	return Session{server: s, session: session}
}
