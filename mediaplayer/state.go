package mediaplayer

import (
	"fmt"
	"time"
)

// State is the playback state of a Player.
type State int

const (
	StateOff State = iota
	StateIdle
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "off"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "off":
		*s = StateOff
	case "idle":
		*s = StateIdle
	case "playing":
		*s = StatePlaying
	case "paused":
		*s = StatePaused
	default:
		return fmt.Errorf("invalid state: %q", string(text))
	}
	return nil
}

// ContentType is the category of the media being played.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeTVShow ContentType = "tvshow"
	ContentTypeMusic  ContentType = "music"
)

// Media contains the metadata of the media being played. Fields that don't apply are left blank.
type Media struct {
	PositionUpdatedAt time.Time     `json:"position_updated_at,omitzero"`
	ContentID         string        `json:"content_id,omitempty"`
	ContentRating     string        `json:"content_rating,omitempty"`
	ContentType       ContentType   `json:"content_type,omitempty"`
	Title             string        `json:"title,omitempty"`
	ImageURL          string        `json:"image_url,omitempty"`
	LibraryName       string        `json:"library_name,omitempty"`
	Season            string        `json:"season,omitempty"`
	SeriesTitle       string        `json:"series_title,omitempty"`
	Episode           string        `json:"episode,omitempty"`
	AlbumName         string        `json:"album_name,omitempty"`
	AlbumArtist       string        `json:"album_artist,omitempty"`
	Artist            string        `json:"artist,omitempty"`
	Duration          time.Duration `json:"duration,omitempty"`
	Position          time.Duration `json:"position,omitempty"`
	Track             int           `json:"track,omitempty"`
}

// Status is a point-in-time view of a Player.
type Status struct {
	VolumeLevel       *float64 `json:"volume_level,omitempty"`
	Muted             *bool    `json:"muted,omitempty"`
	MachineIdentifier string   `json:"machine_identifier"`
	Name              string   `json:"name"`
	Make              string   `json:"make,omitempty"`
	SessionUsername   string   `json:"session_username,omitempty"`
	Media             Media    `json:"media"`
	State             State    `json:"state"`
	Features          Feature  `json:"supported_features"`
	Available         bool     `json:"available"`
}
