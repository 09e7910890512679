package plex

import (
	"context"
	"net/http"
)

// GetSessions retrieves session information from the server.
func (c *Client) GetSessions(ctx context.Context) ([]Session, error) {
	type response struct {
		Metadata []Session `json:"Metadata"`
		Size     int       `json:"size"`
	}
	resp, err := call[response](ctx, c, http.MethodGet, "/status/sessions")
	return resp.Metadata, err
}

// Session contains one record in a Sessions
type Session struct {
	User                SessionUser   `json:"User"`
	Player              SessionPlayer `json:"Player"`
	Session             SessionStats  `json:"Session"`
	Art                 string        `json:"art"`
	ContentRating       string        `json:"contentRating"`
	GrandparentArt      string        `json:"grandparentArt"`
	GrandparentKey      string        `json:"grandparentKey"`
	GrandparentThumb    string        `json:"grandparentThumb"`
	GrandparentTitle    string        `json:"grandparentTitle"`
	Key                 string        `json:"key"`
	LibrarySectionID    string        `json:"librarySectionID"`
	LibrarySectionTitle string        `json:"librarySectionTitle"`
	OriginalTitle       string        `json:"originalTitle"`
	ParentKey           string        `json:"parentKey"`
	ParentRatingKey     string        `json:"parentRatingKey"`
	ParentThumb         string        `json:"parentThumb"`
	ParentTitle         string        `json:"parentTitle"`
	RatingKey           string        `json:"ratingKey"`
	SessionKey          string        `json:"sessionKey"`
	Thumb               string        `json:"thumb"`
	Title               string        `json:"title"`
	Type                string        `json:"type"`
	Duration            int           `json:"duration"`
	Index               int           `json:"index"`
	ParentIndex         int           `json:"parentIndex"`
	ViewOffset          int           `json:"viewOffset"`
	Year                int           `json:"year"`
}

// SessionUser contains the user details inside a Session
type SessionUser struct {
	ID    string `json:"id"`
	Thumb string `json:"thumb"`
	Title string `json:"title"`
}

// SessionPlayer contains the player details inside a Session
type SessionPlayer struct {
	Address             string `json:"address"`
	Device              string `json:"device"`
	MachineIdentifier   string `json:"machineIdentifier"`
	Model               string `json:"model"`
	Platform            string `json:"platform"`
	PlatformVersion     string `json:"platformVersion"`
	Product             string `json:"product"`
	Profile             string `json:"profile"`
	RemotePublicAddress string `json:"remotePublicAddress"`
	State               string `json:"state"`
	Title               string `json:"title"`
	Version             string `json:"version"`
	Local               bool   `json:"local"`
	Relayed             bool   `json:"relayed"`
	Secure              bool   `json:"secure"`
	UserID              int    `json:"userID"`
}

// SessionStats contains the session details inside a Session
type SessionStats struct {
	ID        string `json:"id"`
	Location  string `json:"location"`
	Bandwidth int    `json:"bandwidth"`
}
