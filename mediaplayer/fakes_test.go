package mediaplayer_test

import (
	"context"
	"errors"
	"time"

	"github.com/clambin/plexplayer/mediaplayer"
)

var _ mediaplayer.DeviceHandle = &fakeDevice{}

type fakeDevice struct {
	err          error
	url          string
	title        string
	product      string
	state        string
	capabilities []string
	commands     []string
	volumes      []int
	kinds        []mediaplayer.MediaKind
	queues       []mediaplayer.PlayQueue
	proxied      bool
}

func newFakeDevice(capabilities ...string) *fakeDevice {
	return &fakeDevice{
		url:          "http://192.168.0.10:32500/",
		title:        "Living Room",
		product:      "Plex for Android (TV)",
		capabilities: capabilities,
	}
}

func (f *fakeDevice) MachineIdentifier() string { return "client-1" }
func (f *fakeDevice) URL(path string) (string, error) {
	if f.url == "" {
		return "", errors.New("no address")
	}
	return f.url, nil
}
func (f *fakeDevice) ProxyThroughServer()            { f.proxied = true }
func (f *fakeDevice) Title() string                  { return f.title }
func (f *fakeDevice) Product() string                { return f.product }
func (f *fakeDevice) ProtocolCapabilities() []string { return f.capabilities }
func (f *fakeDevice) State() string                  { return f.state }

func (f *fakeDevice) record(command string, kind mediaplayer.MediaKind) error {
	if f.err != nil {
		return f.err
	}
	f.commands = append(f.commands, command)
	f.kinds = append(f.kinds, kind)
	return nil
}

func (f *fakeDevice) Play(_ context.Context, kind mediaplayer.MediaKind) error {
	return f.record("play", kind)
}
func (f *fakeDevice) Pause(_ context.Context, kind mediaplayer.MediaKind) error {
	return f.record("pause", kind)
}
func (f *fakeDevice) Stop(_ context.Context, kind mediaplayer.MediaKind) error {
	return f.record("stop", kind)
}
func (f *fakeDevice) SkipNext(_ context.Context, kind mediaplayer.MediaKind) error {
	return f.record("skipNext", kind)
}
func (f *fakeDevice) SkipPrevious(_ context.Context, kind mediaplayer.MediaKind) error {
	return f.record("skipPrevious", kind)
}
func (f *fakeDevice) SetVolume(_ context.Context, volume int, kind mediaplayer.MediaKind) error {
	if err := f.record("setVolume", kind); err != nil {
		return err
	}
	f.volumes = append(f.volumes, volume)
	return nil
}
func (f *fakeDevice) PlayMedia(_ context.Context, queue mediaplayer.PlayQueue) error {
	f.queues = append(f.queues, queue)
	if f.err != nil {
		return f.err
	}
	f.commands = append(f.commands, "playMedia")
	return nil
}

var _ mediaplayer.SessionHandle = fakeSession{}

type fakeSession struct {
	players          []mediaplayer.SessionPlayer
	usernames        []string
	ratingKey        string
	contentRating    string
	sessionType      string
	title            string
	library          string
	thumbURL         string
	grandparentThumb string
	artURL           string
	grandparentTitle string
	parentTitle      string
	originalTitle    string
	viewOffset       time.Duration
	duration         time.Duration
	season           int
	episode          int
	year             int
	index            int
	hasSeason        bool
	hasEpisode       bool
}

func (f fakeSession) Players() []mediaplayer.SessionPlayer { return f.players }
func (f fakeSession) Usernames() []string                  { return f.usernames }
func (f fakeSession) ViewOffset() time.Duration            { return f.viewOffset }
func (f fakeSession) RatingKey() string                    { return f.ratingKey }
func (f fakeSession) ContentRating() string                { return f.contentRating }
func (f fakeSession) Type() string                         { return f.sessionType }
func (f fakeSession) Duration() time.Duration              { return f.duration }
func (f fakeSession) Title() string                        { return f.title }
func (f fakeSession) LibraryTitle() string                 { return f.library }
func (f fakeSession) ThumbURL() string                     { return f.thumbURL }
func (f fakeSession) GrandparentThumbURL() string          { return f.grandparentThumb }
func (f fakeSession) ArtURL() string                       { return f.artURL }
func (f fakeSession) SeasonNumber() (int, bool)            { return f.season, f.hasSeason }
func (f fakeSession) EpisodeNumber() (int, bool)           { return f.episode, f.hasEpisode }
func (f fakeSession) GrandparentTitle() string             { return f.grandparentTitle }
func (f fakeSession) ParentTitle() string                  { return f.parentTitle }
func (f fakeSession) OriginalTitle() string                { return f.originalTitle }
func (f fakeSession) Year() int                            { return f.year }
func (f fakeSession) Index() int                           { return f.index }

// playingSession returns a session for client-1 in the given state.
func playingSession(sessionType, state string) fakeSession {
	return fakeSession{
		players: []mediaplayer.SessionPlayer{{
			MachineIdentifier: "client-1",
			Device:            "SHIELD Android TV",
			Title:             "Shield",
			Product:           "Plex for Android (TV)",
			State:             state,
		}},
		usernames:     []string{"alice", "bob"},
		ratingKey:     "1234",
		contentRating: "PG-13",
		sessionType:   sessionType,
		title:         "Title",
		library:       "Movies",
		thumbURL:      "http://plex:32400/thumb",
		artURL:        "http://plex:32400/art",
		viewOffset:    100 * time.Second,
		duration:      3600*time.Second + 500*time.Millisecond,
	}
}

type fakeRefresher struct {
	calls int
}

func (f *fakeRefresher) RequestRefresh() { f.calls++ }

var _ mediaplayer.Library = &fakeLibrary{}

type fakeLibrary struct {
	sections  map[string]fakeSection
	playlists []mediaplayer.MediaItem
	queued    []mediaplayer.MediaItem
	shuffled  []bool
}

func (f *fakeLibrary) Section(_ context.Context, name string) (mediaplayer.LibrarySection, error) {
	section, ok := f.sections[name]
	if !ok {
		return nil, errors.New("section not found")
	}
	return section, nil
}

func (f *fakeLibrary) Playlist(_ context.Context, name string) (mediaplayer.MediaItem, error) {
	for _, playlist := range f.playlists {
		if playlist.Title() == name {
			return playlist, nil
		}
	}
	return nil, errors.New("playlist not found")
}

func (f *fakeLibrary) CreatePlayQueue(_ context.Context, item mediaplayer.MediaItem, shuffle bool) (mediaplayer.PlayQueue, error) {
	f.queued = append(f.queued, item)
	f.shuffled = append(f.shuffled, shuffle)
	kind := mediaplayer.MediaKindVideo
	if item.Type() == "artist" || item.Type() == "album" || item.Type() == "track" {
		kind = mediaplayer.MediaKindMusic
	}
	return mediaplayer.PlayQueue{ID: "42", Key: item.Key(), Kind: kind}, nil
}

type fakeSection []*fakeItem

func (f fakeSection) Get(_ context.Context, title string) (mediaplayer.MediaItem, error) {
	for _, item := range f {
		if item.title == title {
			return item, nil
		}
	}
	return nil, errors.New("not found")
}

var _ mediaplayer.MediaItem = &fakeItem{}

type fakeItem struct {
	key      string
	itemType string
	title    string
	children []*fakeItem
	index    int
}

func (f *fakeItem) Key() string   { return f.key }
func (f *fakeItem) Type() string  { return f.itemType }
func (f *fakeItem) Title() string { return f.title }
func (f *fakeItem) Index() int    { return f.index }

func (f *fakeItem) Children(_ context.Context) ([]mediaplayer.MediaItem, error) {
	children := make([]mediaplayer.MediaItem, len(f.children))
	for i, child := range f.children {
		children[i] = child
	}
	return children, nil
}

func (f *fakeItem) Leaves(ctx context.Context) ([]mediaplayer.MediaItem, error) {
	if len(f.children) == 0 {
		return []mediaplayer.MediaItem{f}, nil
	}
	var leaves []mediaplayer.MediaItem
	for _, child := range f.children {
		childLeaves, _ := child.Leaves(ctx)
		leaves = append(leaves, childLeaves...)
	}
	return leaves, nil
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{
		sections: map[string]fakeSection{
			"Music": {
				{key: "/library/metadata/100", itemType: "artist", title: "Band Y", children: []*fakeItem{
					{key: "/library/metadata/110", itemType: "album", title: "First Album", children: []*fakeItem{
						{key: "/library/metadata/111", itemType: "track", title: "Opening", index: 1},
						{key: "/library/metadata/112", itemType: "track", title: "Second Song", index: 2},
					}},
					{key: "/library/metadata/120", itemType: "album", title: "Second Album", children: []*fakeItem{
						{key: "/library/metadata/121", itemType: "track", title: "Encore", index: 1},
					}},
				}},
			},
			"TV Shows": {
				{key: "/library/metadata/200", itemType: "show", title: "Show X", children: []*fakeItem{
					{key: "/library/metadata/210", itemType: "season", title: "Season 1", index: 1, children: []*fakeItem{
						{key: "/library/metadata/211", itemType: "episode", title: "Pilot", index: 1},
						{key: "/library/metadata/212", itemType: "episode", title: "Second", index: 2},
					}},
				}},
			},
			"Movies": {
				{key: "/library/metadata/300", itemType: "movie", title: "Movie X"},
			},
		},
		playlists: []mediaplayer.MediaItem{
			&fakeItem{key: "/playlists/400", itemType: "playlist", title: "Favourites"},
		},
	}
}
