package plex_test

import (
	"testing"

	"github.com/clambin/plexplayer/plex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreatePlayQueue(t *testing.T) {
	c, s := makeClientAndServer(nil)
	t.Cleanup(s.Close)

	tests := []struct {
		name         string
		item         plex.Metadata
		shuffle      bool
		wantSource   string
		wantSelected string
	}{
		{
			name:         "episode",
			item:         plex.Metadata{RatingKey: "212", Type: "episode"},
			wantSource:   "server://pms-1/com.plexapp.plugins.library/library/metadata/212",
			wantSelected: "212",
		},
		{
			name:         "artist",
			item:         plex.Metadata{RatingKey: "100", Type: "artist"},
			shuffle:      true,
			wantSource:   "server://pms-1/com.plexapp.plugins.library/library/metadata/100",
			wantSelected: "100",
		},
		{
			name:         "playlist",
			item:         plex.Metadata{RatingKey: "400", Type: "playlist", PlaylistType: "audio"},
			wantSource:   "library://playlist/400",
			wantSelected: "111",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue, err := c.CreatePlayQueue(t.Context(), "pms-1", tt.item, tt.shuffle)
			require.NoError(t, err)
			assert.Equal(t, 42, queue.ID)
			assert.Equal(t, tt.wantSource, queue.SourceURI)
			assert.Equal(t, tt.wantSelected, queue.SelectedMetadataItemID)
			assert.Equal(t, tt.shuffle, queue.Shuffled)
		})
	}
}

func TestMetadata_QueueType(t *testing.T) {
	tests := []struct {
		item plex.Metadata
		want string
	}{
		{item: plex.Metadata{Type: "movie"}, want: "video"},
		{item: plex.Metadata{Type: "show"}, want: "video"},
		{item: plex.Metadata{Type: "artist"}, want: "audio"},
		{item: plex.Metadata{Type: "album"}, want: "audio"},
		{item: plex.Metadata{Type: "track"}, want: "audio"},
		{item: plex.Metadata{Type: "playlist", PlaylistType: "audio"}, want: "audio"},
		{item: plex.Metadata{Type: "playlist", PlaylistType: "video"}, want: "video"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.item.QueueType(), tt.item)
	}
}
