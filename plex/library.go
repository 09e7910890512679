package plex

import (
	"context"
	"net/http"
	"net/url"
)

// Library is a library section on the server.
type Library struct {
	Key      string `json:"key"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Agent    string `json:"agent"`
	Scanner  string `json:"scanner"`
	Language string `json:"language"`
	UUID     string `json:"uuid"`
}

// Metadata is an item in a library (a movie, show, season, episode, artist, album or track) or a playlist.
type Metadata struct {
	RatingKey        string `json:"ratingKey"`
	Key              string `json:"key"`
	Type             string `json:"type"`
	Title            string `json:"title"`
	ParentTitle      string `json:"parentTitle,omitempty"`
	GrandparentTitle string `json:"grandparentTitle,omitempty"`
	PlaylistType     string `json:"playlistType,omitempty"`
	Thumb            string `json:"thumb,omitempty"`
	Index            int    `json:"index,omitempty"`
	ParentIndex      int    `json:"parentIndex,omitempty"`
	Year             int    `json:"year,omitempty"`
	LeafCount        int    `json:"leafCount,omitempty"`
	Duration         int    `json:"duration,omitempty"`
}

type metadataResponse struct {
	Metadata []Metadata `json:"Metadata"`
	Size     int        `json:"size"`
}

// GetLibraries returns the server's library sections.
func (c *Client) GetLibraries(ctx context.Context) ([]Library, error) {
	type response struct {
		Directory []Library `json:"Directory"`
		Size      int       `json:"size"`
	}
	resp, err := call[response](ctx, c, http.MethodGet, "/library/sections")
	return resp.Directory, err
}

// GetSectionItems returns the top-level items of a library section.
// If title is not blank, the server only returns items whose title contains title.
func (c *Client) GetSectionItems(ctx context.Context, key string, title string) ([]Metadata, error) {
	endpoint := "/library/sections/" + key + "/all"
	if title != "" {
		endpoint += "?title=" + url.QueryEscape(title)
	}
	resp, err := call[metadataResponse](ctx, c, http.MethodGet, endpoint)
	return resp.Metadata, err
}

// GetChildren returns the direct children of an item: a show's seasons, a season's episodes, an artist's albums, etc.
func (c *Client) GetChildren(ctx context.Context, ratingKey string) ([]Metadata, error) {
	resp, err := call[metadataResponse](ctx, c, http.MethodGet, "/library/metadata/"+ratingKey+"/children")
	return resp.Metadata, err
}

// GetLeaves returns all leaves of an item: all episodes of a show, all tracks of an artist, etc.
func (c *Client) GetLeaves(ctx context.Context, ratingKey string) ([]Metadata, error) {
	resp, err := call[metadataResponse](ctx, c, http.MethodGet, "/library/metadata/"+ratingKey+"/allLeaves")
	return resp.Metadata, err
}

// GetPlaylists returns the server's playlists.
func (c *Client) GetPlaylists(ctx context.Context) ([]Metadata, error) {
	resp, err := call[metadataResponse](ctx, c, http.MethodGet, "/playlists")
	return resp.Metadata, err
}
