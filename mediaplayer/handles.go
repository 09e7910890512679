package mediaplayer

import (
	"context"
	"errors"
	"time"
)

// ErrMalformedResponse indicates that a player answered a command with a response that could not be parsed.
// Some players (e.g. Plexamp) do this for commands they executed successfully.
var ErrMalformedResponse = errors.New("malformed player response")

// MediaKind is the hint passed with player commands.
type MediaKind string

const (
	MediaKindMusic MediaKind = "music"
	MediaKindVideo MediaKind = "video"
)

// DeviceHandle is the transport to a Plex client.
type DeviceHandle interface {
	MachineIdentifier() string
	// URL returns the URL for the path on the device.
	URL(path string) (string, error)
	// ProxyThroughServer routes all further commands through the Plex Media Server.
	ProxyThroughServer()
	Title() string
	Product() string
	ProtocolCapabilities() []string
	State() string

	Play(ctx context.Context, kind MediaKind) error
	Pause(ctx context.Context, kind MediaKind) error
	Stop(ctx context.Context, kind MediaKind) error
	SkipNext(ctx context.Context, kind MediaKind) error
	SkipPrevious(ctx context.Context, kind MediaKind) error
	SetVolume(ctx context.Context, volume int, kind MediaKind) error
	PlayMedia(ctx context.Context, queue PlayQueue) error
}

// SessionPlayer is a player record inside a session.
type SessionPlayer struct {
	MachineIdentifier string
	Device            string
	Title             string
	Product           string
	State             string
}

// SessionHandle is an active playback session, as reported by the Plex Media Server.
//
// Fields that the server did not report are returned as their zero value.
type SessionHandle interface {
	Players() []SessionPlayer
	Usernames() []string
	ViewOffset() time.Duration
	RatingKey() string
	ContentRating() string
	Type() string
	Duration() time.Duration
	Title() string
	// LibraryTitle returns the title of the library section containing the media, or "" if there is none.
	LibraryTitle() string
	ThumbURL() string
	GrandparentThumbURL() string
	ArtURL() string
	SeasonNumber() (int, bool)
	EpisodeNumber() (int, bool)
	GrandparentTitle() string
	ParentTitle() string
	OriginalTitle() string
	Year() int
	Index() int
}

// Library gives access to the media of a Plex Media Server.
type Library interface {
	Section(ctx context.Context, name string) (LibrarySection, error)
	Playlist(ctx context.Context, name string) (MediaItem, error)
	CreatePlayQueue(ctx context.Context, item MediaItem, shuffle bool) (PlayQueue, error)
}

// LibrarySection is one library (Movies, TV Shows, Music, ...) of a Plex Media Server.
type LibrarySection interface {
	// Get returns the item with the exact title.
	Get(ctx context.Context, title string) (MediaItem, error)
}

// MediaItem is any item in a library: an artist, album, track, show, season, episode, movie or playlist.
type MediaItem interface {
	Key() string
	Type() string
	Title() string
	Index() int
	Children(ctx context.Context) ([]MediaItem, error)
	Leaves(ctx context.Context) ([]MediaItem, error)
}

// PlayQueue is a server-side list of media items, created before playback is sent to a client.
type PlayQueue struct {
	ID   string
	Key  string
	Kind MediaKind
}

// Refresher requests an out-of-band refresh of all players of a server.
type Refresher interface {
	RequestRefresh()
}
