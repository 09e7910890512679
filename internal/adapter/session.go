package adapter

import (
	"time"

	"github.com/clambin/plexplayer/mediaplayer"
	"github.com/clambin/plexplayer/plex"
)

var _ mediaplayer.SessionHandle = Session{}

// Session is an active playback session on the server.
type Session struct {
	server  *Server
	session plex.Session
}

func (s Session) Players() []mediaplayer.SessionPlayer {
	p := s.session.Player
	if p.MachineIdentifier == "" {
		return nil
	}
	return []mediaplayer.SessionPlayer{{
		MachineIdentifier: p.MachineIdentifier,
		Device:            p.Device,
		Title:             p.Title,
		Product:           p.Product,
		State:             p.State,
	}}
}

func (s Session) Usernames() []string {
	if s.session.User.Title == "" {
		return nil
	}
	return []string{s.session.User.Title}
}

func (s Session) ViewOffset() time.Duration {
	return time.Duration(s.session.ViewOffset) * time.Millisecond
}

func (s Session) Duration() time.Duration {
	return time.Duration(s.session.Duration) * time.Millisecond
}

func (s Session) RatingKey() string        { return s.session.RatingKey }
func (s Session) ContentRating() string    { return s.session.ContentRating }
func (s Session) Type() string             { return s.session.Type }
func (s Session) Title() string            { return s.session.Title }
func (s Session) LibraryTitle() string     { return s.session.LibrarySectionTitle }
func (s Session) GrandparentTitle() string { return s.session.GrandparentTitle }
func (s Session) ParentTitle() string      { return s.session.ParentTitle }
func (s Session) OriginalTitle() string    { return s.session.OriginalTitle }
func (s Session) Year() int                { return s.session.Year }
func (s Session) Index() int               { return s.session.Index }

func (s Session) ThumbURL() string            { return s.server.client.AssetURL(s.session.Thumb) }
func (s Session) GrandparentThumbURL() string { return s.server.client.AssetURL(s.session.GrandparentThumb) }
func (s Session) ArtURL() string              { return s.server.client.AssetURL(s.session.Art) }

// SeasonNumber returns the season of an episode. The season is only known if the server reports the episode's parent.
func (s Session) SeasonNumber() (int, bool) {
	if s.session.ParentRatingKey == "" {
		return 0, false
	}
	return s.session.ParentIndex, true
}

// EpisodeNumber returns the episode's index within its season.
func (s Session) EpisodeNumber() (int, bool) {
	if s.session.Index <= 0 {
		return 0, false
	}
	return s.session.Index, true
}
