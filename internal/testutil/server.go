package testutil

import (
	"net/http"

	"codeberg.org/clambin/go-common/testutils"
)

// WithToken rejects requests that don't carry the expected X-Plex-Token.
func WithToken(token string, next http.Handler) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get("X-Plex-Token") != token {
			writer.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(writer, request)
	}
}

// PlexServer serves canned Plex Media Server responses.
//
// The server (pms-1) has two connected players: client-1 (a Shield, reachable on the LAN) and client-2 (a Plexamp
// instance that reports a loopback address). client-1 is playing a movie. client-3 is playing an episode, but isn't
// connected to the server.
var PlexServer = testutils.TestServer{Responses: plexResponses}

func get(body string) testutils.PathResponse {
	return testutils.PathResponse{http.MethodGet: testutils.Response{Body: body, StatusCode: http.StatusOK}}
}

var plexResponses = map[string]testutils.PathResponse{
	"/identity": get(`{ "MediaContainer": {
		"size": 0,
		"claimed": true,
		"machineIdentifier": "pms-1",
		"version": "1.41.0"
	}}`),

	"/clients": get(`{ "MediaContainer": {
		"size": 2,
		"Server": [
			{ "name": "Shield", "host": "192.168.0.10", "address": "192.168.0.10", "port": 32500, "machineIdentifier": "client-1", "product": "Plex for Android (TV)", "deviceClass": "stb", "protocolCapabilities": "timeline,playback,navigation,mirror,playqueues" },
			{ "name": "Kitchen", "host": "127.0.0.1", "address": "127.0.0.1", "port": 32500, "machineIdentifier": "client-2", "product": "Plexamp", "protocolCapabilities": "timeline,playback,playqueues" }
		]
	}}`),

	"/status/sessions": get(`{ "MediaContainer": {
		"size": 2,
		"Metadata": [
			{
				"User": { "id": "1", "title": "alice" },
				"Player": { "machineIdentifier": "client-1", "device": "SHIELD Android TV", "title": "Shield", "product": "Plex for Android (TV)", "state": "playing" },
				"Session": { "id": "s1", "location": "lan" },
				"type": "movie", "title": "Movie X", "year": 2020, "ratingKey": "300", "contentRating": "PG-13",
				"librarySectionTitle": "Movies", "thumb": "/library/metadata/300/thumb", "art": "/library/metadata/300/art",
				"duration": 7200000, "viewOffset": 600000
			},
			{
				"User": { "id": "2", "title": "bob" },
				"Player": { "machineIdentifier": "client-3", "device": "iPhone", "title": "Bob's iPhone", "product": "Plex for iOS", "state": "paused" },
				"Session": { "id": "s2", "location": "wan" },
				"type": "episode", "title": "Pilot", "grandparentTitle": "Show X", "parentTitle": "Season 1",
				"ratingKey": "211", "parentRatingKey": "210", "parentIndex": 1, "index": 1,
				"librarySectionTitle": "TV Shows", "thumb": "/library/metadata/211/thumb", "grandparentThumb": "/library/metadata/200/thumb",
				"duration": 1800000, "viewOffset": 60000
			}
		]
	}}`),

	"/library/sections": get(`{ "MediaContainer": {
		"size": 3,
		"Directory": [
			{ "key": "1", "type": "movie", "title": "Movies" },
			{ "key": "2", "type": "show", "title": "TV Shows" },
			{ "key": "3", "type": "artist", "title": "Music" }
		]
	}}`),

	"/library/metadata/100/children": get(`{ "MediaContainer": {
		"Metadata": [
			{ "ratingKey": "110", "key": "/library/metadata/110/children", "type": "album", "title": "First Album", "parentTitle": "Band Y", "index": 1 },
			{ "ratingKey": "120", "key": "/library/metadata/120/children", "type": "album", "title": "Second Album", "parentTitle": "Band Y", "index": 2 }
		]
	}}`),

	"/library/metadata/100/allLeaves": get(`{ "MediaContainer": {
		"Metadata": [
			{ "ratingKey": "111", "key": "/library/metadata/111", "type": "track", "title": "Opening", "index": 1 },
			{ "ratingKey": "112", "key": "/library/metadata/112", "type": "track", "title": "Second Song", "index": 2 },
			{ "ratingKey": "121", "key": "/library/metadata/121", "type": "track", "title": "Encore", "index": 1 }
		]
	}}`),

	"/library/metadata/200/children": get(`{ "MediaContainer": {
		"Metadata": [
			{ "ratingKey": "210", "key": "/library/metadata/210/children", "type": "season", "title": "Season 1", "index": 1 }
		]
	}}`),

	"/library/metadata/210/children": get(`{ "MediaContainer": {
		"Metadata": [
			{ "ratingKey": "211", "key": "/library/metadata/211", "type": "episode", "title": "Pilot", "index": 1, "parentIndex": 1 },
			{ "ratingKey": "212", "key": "/library/metadata/212", "type": "episode", "title": "Second", "index": 2, "parentIndex": 1 }
		]
	}}`),

	"/playlists": get(`{ "MediaContainer": {
		"Metadata": [
			{ "ratingKey": "400", "key": "/playlists/400/items", "type": "playlist", "title": "Favourites", "playlistType": "audio", "leafCount": 12 },
			{ "ratingKey": "401", "key": "/playlists/401/items", "type": "playlist", "title": "Movie Night", "playlistType": "video", "leafCount": 3 }
		]
	}}`),
}
