package plex_test

import (
	"context"
	"testing"

	"github.com/clambin/plexplayer/plex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetLibraries(t *testing.T) {
	c, testServer := makeClientAndServer(nil)
	t.Cleanup(testServer.Close)

	libraries, err := c.GetLibraries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []plex.Library{
		{Key: "1", Type: "movie", Title: "Movies"},
		{Key: "2", Type: "show", Title: "TV Shows"},
		{Key: "3", Type: "artist", Title: "Music"},
	}, libraries)
}

func TestClient_GetSectionItems(t *testing.T) {
	c, s := makeClientAndServer(nil)
	t.Cleanup(s.Close)

	items, err := c.GetSectionItems(context.Background(), "1", "")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = c.GetSectionItems(context.Background(), "1", "x 2")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, plex.Metadata{RatingKey: "301", Key: "/library/metadata/301", Type: "movie", Title: "Movie X 2", Year: 2022}, items[0])

	_, err = c.GetSectionItems(context.Background(), "9", "")
	assert.Error(t, err)
}

func TestClient_GetChildren(t *testing.T) {
	c, s := makeClientAndServer(nil)
	t.Cleanup(s.Close)

	seasons, err := c.GetChildren(context.Background(), "200")
	require.NoError(t, err)
	assert.Equal(t, []plex.Metadata{{RatingKey: "210", Key: "/library/metadata/210/children", Type: "season", Title: "Season 1", Index: 1}}, seasons)
}

func TestClient_GetLeaves(t *testing.T) {
	c, s := makeClientAndServer(nil)
	t.Cleanup(s.Close)

	tracks, err := c.GetLeaves(context.Background(), "100")
	require.NoError(t, err)
	require.Len(t, tracks, 3)
	assert.Equal(t, "Encore", tracks[2].Title)
}

func TestClient_GetPlaylists(t *testing.T) {
	c, s := makeClientAndServer(nil)
	t.Cleanup(s.Close)

	playlists, err := c.GetPlaylists(context.Background())
	require.NoError(t, err)
	require.Len(t, playlists, 2)
	assert.Equal(t, "Favourites", playlists[0].Title)
	assert.Equal(t, "audio", playlists[0].PlaylistType)
}
