package mediaplayer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PlayMediaType is the type of media requested by PlayMedia.
type PlayMediaType string

const (
	PlayMediaMusic    PlayMediaType = "MUSIC"
	PlayMediaEpisode  PlayMediaType = "EPISODE"
	PlayMediaPlaylist PlayMediaType = "PLAYLIST"
	PlayMediaVideo    PlayMediaType = "VIDEO"
)

// ErrInvalidMediaRequest is returned by PlayMedia when the media type or media ID can't be parsed.
var ErrInvalidMediaRequest = errors.New("invalid media request")

// PlayMediaRequest identifies the media to play. It is passed to PlayMedia as a JSON document.
type PlayMediaRequest struct {
	LibraryName   string `json:"library_name"`
	ArtistName    string `json:"artist_name"`
	AlbumName     string `json:"album_name"`
	TrackName     string `json:"track_name"`
	ShowName      string `json:"show_name"`
	PlaylistName  string `json:"playlist_name"`
	VideoName     string `json:"video_name"`
	TrackNumber   number `json:"track_number"`
	SeasonNumber  number `json:"season_number"`
	EpisodeNumber number `json:"episode_number"`
	Shuffle       flag   `json:"shuffle"`
}

// flag is a boolean that also accepts 0 and 1.
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", "1", `"1"`:
		*f = true
	case "false", "0", `"0"`, "null":
		*f = false
	default:
		return fmt.Errorf("invalid flag: %s", string(data))
	}
	return nil
}

// number is an integer that may also be sent as a numeric string.
type number int

func (n *number) UnmarshalJSON(data []byte) error {
	text := string(data)
	if text == "null" {
		*n = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = strings.TrimSpace(unquoted)
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("invalid number: %s", string(data))
	}
	*n = number(value)
	return nil
}

// PlayMedia finds the requested media in the library and starts playing it on the device.
//
// mediaID is a JSON-encoded PlayMediaRequest. If the media can't be found, an error is logged and nothing is played.
func (p *Player) PlayMedia(ctx context.Context, mediaType PlayMediaType, mediaID string) error {
	if !p.canPlayback() {
		return nil
	}

	var req PlayMediaRequest
	if err := json.Unmarshal([]byte(mediaID), &req); err != nil {
		return fmt.Errorf("%w: media id: %w", ErrInvalidMediaRequest, err)
	}

	var media MediaItem
	switch mediaType {
	case PlayMediaMusic:
		media = p.musicMedia(ctx, req)
	case PlayMediaEpisode:
		media = p.tvMedia(ctx, req)
	case PlayMediaPlaylist:
		media = p.lookup(ctx, "playlist", func() (MediaItem, error) { return p.library.Playlist(ctx, req.PlaylistName) })
	case PlayMediaVideo:
		media = p.lookup(ctx, "video", func() (MediaItem, error) { return p.sectionItem(ctx, req.LibraryName, req.VideoName) })
	default:
		return fmt.Errorf("%w: unsupported media type %q", ErrInvalidMediaRequest, mediaType)
	}

	if media == nil {
		p.logger.Error("media could not be found", "mediaID", mediaID)
		return nil
	}

	queue, err := p.library.CreatePlayQueue(ctx, media, bool(req.Shuffle))
	if err != nil {
		return fmt.Errorf("play queue: %w", err)
	}

	switch err = p.device.PlayMedia(ctx, queue); {
	case err == nil:
	case errors.Is(err, ErrMalformedResponse):
		// some clients answer playMedia with an invalid response, even though playback started.
	case isTimeout(err):
		p.logger.Error("timed out playing media", "name", p.name, "err", err)
	default:
		return fmt.Errorf("playMedia: %w", err)
	}

	p.requestRefresh()
	return nil
}

func (p *Player) lookup(ctx context.Context, what string, f func() (MediaItem, error)) MediaItem {
	item, err := f()
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Debug("lookup failed", "type", what, "err", err)
		}
		return nil
	}
	return item
}

func (p *Player) sectionItem(ctx context.Context, libraryName, title string) (MediaItem, error) {
	section, err := p.library.Section(ctx, libraryName)
	if err != nil {
		return nil, fmt.Errorf("library %q: %w", libraryName, err)
	}
	return section.Get(ctx, title)
}

// musicMedia returns the requested artist, album or track.
func (p *Player) musicMedia(ctx context.Context, req PlayMediaRequest) MediaItem {
	artist := p.lookup(ctx, "artist", func() (MediaItem, error) { return p.sectionItem(ctx, req.LibraryName, req.ArtistName) })
	if artist == nil {
		return nil
	}

	if req.AlbumName != "" {
		albums, err := artist.Children(ctx)
		if err != nil {
			p.logger.Debug("failed to get albums", "artist", req.ArtistName, "err", err)
			return nil
		}
		album := findChild(albums, func(item MediaItem) bool { return item.Title() == req.AlbumName })
		if album == nil {
			return nil
		}
		if req.TrackName == "" && req.TrackNumber == 0 {
			return album
		}
		tracks, err := album.Children(ctx)
		if err != nil {
			p.logger.Debug("failed to get tracks", "album", req.AlbumName, "err", err)
			return nil
		}
		if req.TrackName != "" {
			return findChild(tracks, func(item MediaItem) bool { return item.Title() == req.TrackName })
		}
		return findChild(tracks, func(item MediaItem) bool { return item.Index() == int(req.TrackNumber) })
	}

	if req.TrackName != "" {
		return p.searchTrack(ctx, artist, req.TrackName)
	}
	return artist
}

// searchTrack returns the first of the artist's tracks whose title contains the name.
func (p *Player) searchTrack(ctx context.Context, artist MediaItem, name string) MediaItem {
	tracks, err := artist.Leaves(ctx)
	if err != nil {
		p.logger.Debug("failed to get tracks", "artist", artist.Title(), "err", err)
		return nil
	}
	name = strings.ToLower(name)
	return findChild(tracks, func(item MediaItem) bool { return strings.Contains(strings.ToLower(item.Title()), name) })
}

// tvMedia returns the requested show, season or episode.
func (p *Player) tvMedia(ctx context.Context, req PlayMediaRequest) MediaItem {
	show := p.lookup(ctx, "show", func() (MediaItem, error) { return p.sectionItem(ctx, req.LibraryName, req.ShowName) })
	if show == nil || req.SeasonNumber == 0 {
		return show
	}

	episodeID := req.LibraryName + `\` + req.ShowName + " - S" + zeroPad(int(req.SeasonNumber)) + "E" + zeroPad(int(req.EpisodeNumber))

	var season MediaItem
	if seasons, err := show.Children(ctx); err == nil {
		season = findChild(seasons, func(item MediaItem) bool { return item.Index() == int(req.SeasonNumber) })
	}
	if season == nil {
		p.logger.Error("season not found", "episode", episodeID)
		return nil
	}
	if req.EpisodeNumber == 0 {
		return season
	}

	var episode MediaItem
	if episodes, err := season.Children(ctx); err == nil {
		episode = findChild(episodes, func(item MediaItem) bool { return item.Index() == int(req.EpisodeNumber) })
	}
	if episode == nil {
		p.logger.Error("episode not found", "episode", episodeID)
	}
	return episode
}

func findChild(items []MediaItem, match func(MediaItem) bool) MediaItem {
	for _, item := range items {
		if match(item) {
			return item
		}
	}
	return nil
}
