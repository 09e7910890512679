// Package mediaplayer represents a Plex client as a media player entity.
//
// A Player receives the latest device and session for its client through [Player.Refresh] and derives a stable
// playback state and media snapshot from them. Commands sent to the Player are forwarded to the device,
// provided the device supports playback.
package mediaplayer

import (
	"cmp"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	"codeberg.org/clambin/go-common/set"
)

const (
	nameFormat        = "Plex "
	defaultDeviceName = "Unnamed Device"
	// positionTolerance is the drift between reported position and wall clock time that is ignored.
	positionTolerance = 5 * time.Second
)

// Option configures a Player.
type Option func(*Player)

// WithLogger configures an optional logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) {
		p.logger = logger
	}
}

// WithEpisodeArt uses the episode's thumbnail for TV shows, instead of the show's thumbnail.
func WithEpisodeArt(useEpisodeArt bool) Option {
	return func(p *Player) {
		p.useEpisodeArt = useEpisodeArt
	}
}

// WithShowAllControls makes the Player report all controls, regardless of what the client supports.
func WithShowAllControls(showAllControls bool) Option {
	return func(p *Player) {
		p.showAllControls = showAllControls
	}
}

// WithClock overrides the clock used to timestamp the media position.
func WithClock(now func() time.Time) Option {
	return func(p *Player) {
		p.now = now
	}
}

// Player is the media player entity of one Plex client.
//
// Player is not safe for concurrent use: the caller serializes calls to Refresh and the commands.
type Player struct {
	lastPosition    time.Time
	library         Library
	refresher       Refresher
	device          DeviceHandle
	session         SessionHandle
	capabilities    set.Set[string]
	logger          *slog.Logger
	now             func() time.Time
	machineID       string
	name            string
	make            string
	playerState     string
	sessionUsername string
	media           Media
	position        time.Duration
	volumeLevel     float64
	previousVolume  float64
	state           State
	hasPosition     bool
	available       bool
	active          bool
	muted           bool
	useEpisodeArt   bool
	showAllControls bool
}

// New returns a Player for the client with the given machine identifier.
// library is used to resolve media for PlayMedia. refresher is called after each successful command.
func New(machineIdentifier string, library Library, refresher Refresher, opts ...Option) *Player {
	p := Player{
		machineID:      machineIdentifier,
		library:        library,
		refresher:      refresher,
		capabilities:   set.New[string](),
		logger:         slog.New(slog.DiscardHandler),
		now:            time.Now,
		playerState:    "idle",
		state:          StateIdle,
		volumeLevel:    1,
		previousVolume: 1,
	}
	for _, opt := range opts {
		opt(&p)
	}
	p.logger = p.logger.With("machineIdentifier", machineIdentifier)
	return &p
}

// MachineIdentifier returns the client's machine identifier. It never changes.
func (p *Player) MachineIdentifier() string { return p.machineID }

// Name returns the name of the player. It is determined during the first Refresh and doesn't change afterwards.
func (p *Player) Name() string { return p.name }

// Available returns true if the last Refresh had a device or a session.
func (p *Player) Available() bool { return p.available }

// State returns the playback state.
func (p *Player) State() State { return p.state }

// Media returns the metadata of the media being played.
func (p *Player) Media() Media { return p.media }

// Make returns the device's make (e.g. SHIELD Android TV), as reported by the session.
func (p *Player) Make() string { return p.make }

// SessionUsername returns the user of the active session.
func (p *Player) SessionUsername() string { return p.sessionUsername }

// SupportedFeatures returns the controls the Player supports.
func (p *Player) SupportedFeatures() Feature {
	capabilities := p.capabilities
	if p.device == nil {
		capabilities = set.New[string]()
	}
	return SupportedFeatures(p.showAllControls, p.make, capabilities)
}

// VolumeLevel returns the volume level (0..1). Clients don't report their volume, so this is the last level
// set through the Player. The second return value is false if the volume is not known.
func (p *Player) VolumeLevel() (float64, bool) {
	if p.active && p.canPlayback() {
		return p.volumeLevel, true
	}
	return 0, false
}

// IsVolumeMuted returns true if the Player was muted. The second return value is false if the mute state is not known.
func (p *Player) IsVolumeMuted() (bool, bool) {
	if p.active && p.device != nil {
		return p.muted, true
	}
	return false, false
}

// Status returns a snapshot of the Player.
func (p *Player) Status() Status {
	status := Status{
		MachineIdentifier: p.machineID,
		Name:              p.name,
		Available:         p.available,
		State:             p.state,
		Make:              p.make,
		SessionUsername:   p.sessionUsername,
		Features:          p.SupportedFeatures(),
		Media:             p.media,
	}
	if level, ok := p.VolumeLevel(); ok {
		status.VolumeLevel = &level
	}
	if muted, ok := p.IsVolumeMuted(); ok {
		status.Muted = &muted
	}
	return status
}

// Refresh replaces the Player's device and session and recalculates its state. Either may be nil.
// The volume and mute state are left untouched.
func (p *Player) Refresh(device DeviceHandle, session SessionHandle) {
	p.device = device
	p.session = session
	p.media = Media{}
	p.sessionUsername = ""
	p.playerState = "idle"
	p.available = device != nil || session != nil

	var nameBase string
	if device != nil {
		if deviceURL, err := device.URL("/"); err != nil || isLoopback(deviceURL) {
			device.ProxyThroughServer()
		}
		nameBase = cmp.Or(device.Title(), device.Product())
		p.capabilities = set.New[string](device.ProtocolCapabilities()...)
		p.playerState = device.State()
	}

	if session == nil {
		p.forceIdle()
	} else {
		if player, ok := p.sessionPlayer(); ok {
			p.make = player.Device
			p.playerState = player.State
			nameBase = cmp.Or(nameBase, player.Title, player.Product)
		} else {
			p.logger.Warn("no player associated with active session")
		}
		if usernames := session.Usernames(); len(usernames) > 0 {
			p.sessionUsername = usernames[0]
		}
		p.updatePosition(session.ViewOffset())
	}

	if p.name == "" {
		p.name = nameFormat + cmp.Or(nameBase, defaultDeviceName)
	}
	p.setPlayerState()

	if p.active && session != nil {
		p.setMedia(session)
	} else {
		p.media = Media{}
	}
}

// forceIdle clears all session-derived state. The device's own state is ignored when there's no session.
func (p *Player) forceIdle() {
	p.state = StateIdle
	p.session = nil
	p.playerState = "idle"
	p.hasPosition = false
	p.position = 0
	p.lastPosition = time.Time{}
}

func (p *Player) sessionPlayer() (SessionPlayer, bool) {
	for _, player := range p.session.Players() {
		if player.MachineIdentifier == p.machineID {
			return player, true
		}
	}
	return SessionPlayer{}, false
}

// updatePosition records the position reported by the session. Once a position is known, a new position is only
// accepted if it differs from the position expected from the elapsed time, i.e., after a seek. This avoids
// updating the position on every poll during normal playback.
func (p *Player) updatePosition(offset time.Duration) {
	position := offset.Truncate(time.Second)
	now := p.now()
	if !p.hasPosition {
		p.position, p.lastPosition, p.hasPosition = position, now, true
		return
	}
	posDiff := position - p.position
	timeDiff := now.Sub(p.lastPosition)
	if posDiff != 0 && (timeDiff-posDiff).Abs() > positionTolerance {
		p.position, p.lastPosition = position, now
	}
}

func (p *Player) setPlayerState() {
	switch {
	case p.playerState == "playing":
		p.active, p.state = true, StatePlaying
	case p.playerState == "paused":
		p.active, p.state = true, StatePaused
	case p.device != nil:
		p.active, p.state = false, StateIdle
	default:
		p.active, p.state = false, StateOff
	}
}

func (p *Player) setMedia(session SessionHandle) {
	p.media = Media{
		ContentID:         session.RatingKey(),
		ContentRating:     session.ContentRating(),
		Duration:          session.Duration().Truncate(time.Second),
		Position:          p.position,
		PositionUpdatedAt: p.lastPosition,
		Title:             session.Title(),
		LibraryName:       session.LibraryTitle(),
	}

	switch session.Type() {
	case "clip":
		p.logger.Debug("clip content type detected, compatibility may vary")
		fallthrough
	case "episode":
		p.media.ContentType = ContentTypeTVShow
		if season, ok := session.SeasonNumber(); ok {
			p.media.Season = zeroPad(season)
		}
		p.media.SeriesTitle = session.GrandparentTitle()
		if episode, ok := session.EpisodeNumber(); ok {
			p.media.Episode = zeroPad(episode)
		}
	case "movie":
		p.media.ContentType = ContentTypeMovie
		if year := session.Year(); year != 0 && p.media.Title != "" {
			p.media.Title += " (" + strconv.Itoa(year) + ")"
		}
	case "track":
		p.media.ContentType = ContentTypeMusic
		p.media.AlbumName = session.ParentTitle()
		p.media.AlbumArtist = session.GrandparentTitle()
		p.media.Track = session.Index()
		p.media.Artist = session.OriginalTitle()
		if p.media.Artist == "" {
			p.logger.Debug("using album artist because track artist was not found")
			p.media.Artist = p.media.AlbumArtist
		}
	}

	p.media.ImageURL = p.imageURL(session)
}

func (p *Player) imageURL(session SessionHandle) string {
	thumbURL := session.ThumbURL()
	if p.media.ContentType == ContentTypeTVShow && !p.useEpisodeArt {
		thumbURL = session.GrandparentThumbURL()
	}
	if thumbURL == "" {
		p.logger.Debug("using media art because media thumb was not found")
		thumbURL = session.ArtURL()
	}
	return thumbURL
}

func (p *Player) canPlayback() bool {
	return p.device != nil && p.capabilities.Contains(capabilityPlayback)
}

func (p *Player) mediaKind() MediaKind {
	if p.media.ContentType == ContentTypeMusic {
		return MediaKindMusic
	}
	return MediaKindVideo
}

func isLoopback(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func zeroPad(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 2 {
		s = "0" + s
	}
	return s
}
