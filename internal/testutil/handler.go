package testutil

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
)

var sectionItems = map[string][]map[string]any{
	"1": {
		{"ratingKey": "300", "key": "/library/metadata/300", "type": "movie", "title": "Movie X", "year": 2020},
		{"ratingKey": "301", "key": "/library/metadata/301", "type": "movie", "title": "Movie X 2", "year": 2022},
	},
	"2": {
		{"ratingKey": "200", "key": "/library/metadata/200/children", "type": "show", "title": "Show X"},
	},
	"3": {
		{"ratingKey": "100", "key": "/library/metadata/100/children", "type": "artist", "title": "Band Y"},
	},
}

// Handler serves PlexServer's canned responses, plus the endpoints that take query parameters:
// library section searches and play queue creation.
//
// All requests must carry the given token.
func Handler(token string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /library/sections/{key}/all", func(w http.ResponseWriter, r *http.Request) {
		items, ok := sectionItems[r.PathValue("key")]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		title := strings.ToLower(r.URL.Query().Get("title"))
		matches := make([]map[string]any, 0, len(items))
		for _, item := range items {
			if strings.Contains(strings.ToLower(item["title"].(string)), title) {
				matches = append(matches, item)
			}
		}
		writeMediaContainer(w, map[string]any{"size": len(matches), "Metadata": matches})
	})
	mux.HandleFunc("POST /playQueues", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		source := q.Get("uri")
		selected := source[strings.LastIndex(source, "/")+1:]
		if playlistID := q.Get("playlistID"); playlistID != "" {
			source = "library://playlist/" + playlistID
			selected = "111"
		}
		writeMediaContainer(w, map[string]any{
			"playQueueID":                     42,
			"playQueueSelectedItemID":         1001,
			"playQueueSelectedMetadataItemID": selected,
			"playQueueShuffled":               q.Get("shuffle") == "1",
			"playQueueSourceURI":              source,
			"playQueueTotalCount":             1,
		})
	})
	mux.Handle("/", &PlexServer)
	return WithToken(token, mux)
}

func writeMediaContainer(w http.ResponseWriter, container map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"MediaContainer": container})
}

// Player is a fake Plex player. It records the commands it receives.
type Player struct {
	// Response is sent in reply to each command. If blank, a valid Response document is sent.
	Response string
	commands []*http.Request
	lock     sync.Mutex
}

func (p *Player) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.lock.Lock()
	p.commands = append(p.commands, r)
	response := p.Response
	p.lock.Unlock()

	if response == "" {
		response = `<?xml version="1.0" encoding="UTF-8"?><Response code="200" status="OK"/>`
	}
	w.Header().Set("Content-Type", "text/xml")
	_, _ = w.Write([]byte(response))
}

// Commands returns the requests received by the player.
func (p *Player) Commands() []*http.Request {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]*http.Request(nil), p.commands...)
}
