package plex

import (
	"context"
	"net/http"
)

// Identity contains the response of Plex's /identity API
type Identity struct {
	Size              int    `json:"size"`
	Claimed           bool   `json:"claimed"`
	MachineIdentifier string `json:"machineIdentifier"`
	Version           string `json:"version"`
}

// GetIdentity calls Plex' /identity endpoint. Used to get the server's machine identifier, which is needed to create play queues.
func (c *Client) GetIdentity(ctx context.Context) (Identity, error) {
	return call[Identity](ctx, c, http.MethodGet, "/identity")
}
