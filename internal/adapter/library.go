package adapter

import (
	"context"
	"fmt"

	"github.com/clambin/plexplayer/mediaplayer"
	"github.com/clambin/plexplayer/plex"
)

var _ mediaplayer.LibrarySection = &Section{}

// Section is a library section of the server.
type Section struct {
	server  *Server
	library plex.Library
}

// Get returns the section's item with the exact title.
func (s *Section) Get(ctx context.Context, title string) (mediaplayer.MediaItem, error) {
	items, err := s.server.client.GetSectionItems(ctx, s.library.Key, title)
	if err != nil {
		return nil, fmt.Errorf("library %q: %w", s.library.Title, err)
	}
	for _, item := range items {
		if item.Title == title {
			return &Item{server: s.server, metadata: item}, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", title, ErrNotFound)
}

var _ mediaplayer.MediaItem = &Item{}

// Item is a library item or playlist.
type Item struct {
	server   *Server
	metadata plex.Metadata
}

func (i *Item) Key() string {
	if i.metadata.Type == "playlist" {
		return "/playlists/" + i.metadata.RatingKey
	}
	return "/library/metadata/" + i.metadata.RatingKey
}

func (i *Item) Type() string  { return i.metadata.Type }
func (i *Item) Title() string { return i.metadata.Title }
func (i *Item) Index() int    { return i.metadata.Index }

// Metadata returns the item, as reported by the server.
func (i *Item) Metadata() plex.Metadata { return i.metadata }

func (i *Item) Children(ctx context.Context) ([]mediaplayer.MediaItem, error) {
	children, err := i.server.client.GetChildren(ctx, i.metadata.RatingKey)
	return i.server.items(children), err
}

func (i *Item) Leaves(ctx context.Context) ([]mediaplayer.MediaItem, error) {
	leaves, err := i.server.client.GetLeaves(ctx, i.metadata.RatingKey)
	return i.server.items(leaves), err
}

func (s *Server) items(metadata []plex.Metadata) []mediaplayer.MediaItem {
	items := make([]mediaplayer.MediaItem, len(metadata))
	for i := range metadata {
		items[i] = &Item{server: s, metadata: metadata[i]}
	}
	return items
}
