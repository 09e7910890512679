package plex

import (
	"context"
	"net/http"
	"net/url"
)

// PlayQueue is a queue of items to be played by a player.
type PlayQueue struct {
	ID                     int        `json:"playQueueID"`
	SelectedItemID         int        `json:"playQueueSelectedItemID"`
	SelectedItemOffset     int        `json:"playQueueSelectedItemOffset"`
	SelectedMetadataItemID string     `json:"playQueueSelectedMetadataItemID"`
	SourceURI              string     `json:"playQueueSourceURI"`
	TotalCount             int        `json:"playQueueTotalCount"`
	Version                int        `json:"playQueueVersion"`
	Shuffled               bool       `json:"playQueueShuffled"`
	Metadata               []Metadata `json:"Metadata"`
}

// QueueType returns the type of play queue needed to play the item: "audio" or "video".
func (m Metadata) QueueType() string {
	switch m.Type {
	case "artist", "album", "track":
		return "audio"
	case "playlist":
		if m.PlaylistType == "audio" {
			return "audio"
		}
	}
	return "video"
}

// CreatePlayQueue creates a new play queue for the item. serverID is the server's machine identifier (see GetIdentity).
func (c *Client) CreatePlayQueue(ctx context.Context, serverID string, item Metadata, shuffle bool) (PlayQueue, error) {
	v := make(url.Values)
	v.Set("type", item.QueueType())
	if item.Type == "playlist" {
		v.Set("playlistID", item.RatingKey)
	} else {
		v.Set("uri", "server://"+serverID+"/com.plexapp.plugins.library/library/metadata/"+item.RatingKey)
	}
	v.Set("shuffle", boolFlag(shuffle))
	v.Set("continuous", "0")
	v.Set("repeat", "0")
	v.Set("includeChapters", "1")
	v.Set("includeRelated", "1")
	return call[PlayQueue](ctx, c, http.MethodPost, "/playQueues?"+v.Encode())
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
