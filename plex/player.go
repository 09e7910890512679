package plex

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// PlayerTarget identifies the player that receives a command.
type PlayerTarget struct {
	Device Device
	// Proxy sends the command through the server, rather than directly to the player.
	Proxy bool
}

// SendPlayerCommand sends a remote-control command (e.g. "playback/pause") to a player.
//
// A player acknowledges a command with an XML Response document. If the response can't be parsed,
// SendPlayerCommand returns an ErrInvalidXML error.
func (c *Client) SendPlayerCommand(ctx context.Context, target PlayerTarget, command string, params url.Values) error {
	path := "/player/" + command
	var base string
	if target.Proxy {
		base = c.url + path
	} else {
		var err error
		if base, err = target.Device.URL(path); err != nil {
			return err
		}
	}

	if params == nil {
		params = make(url.Values)
	}
	params.Set("commandID", strconv.FormatInt(c.commandID.Add(1), 10))

	req, err := c.newRequest(ctx, http.MethodGet, base+"?"+params.Encode())
	if err != nil {
		return err
	}
	req.Header.Set("X-Plex-Target-Client-Identifier", target.Device.MachineIdentifier)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return parseHTTPError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	var response struct {
		XMLName xml.Name `xml:"Response"`
		Status  string   `xml:"status,attr"`
		Code    int      `xml:"code,attr"`
	}
	if err = xml.Unmarshal(body, &response); err != nil {
		return &ErrInvalidXML{Err: err, Body: body}
	}
	if response.Code != 0 && response.Code != http.StatusOK {
		return fmt.Errorf("player: %d %s", response.Code, response.Status)
	}
	return nil
}

// PlayMediaParams returns the parameters for the "playback/playMedia" command, which starts a play queue on a player.
// mediaType is "music" or "video".
func (c *Client) PlayMediaParams(serverID string, queueID string, key string, mediaType string) (url.Values, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	port := u.Port()
	if port == "" {
		port = "32400"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	v := make(url.Values)
	v.Set("providerIdentifier", "com.plexapp.plugins.library")
	v.Set("machineIdentifier", serverID)
	v.Set("protocol", u.Scheme)
	v.Set("address", u.Hostname())
	v.Set("port", port)
	v.Set("offset", "0")
	v.Set("key", key)
	v.Set("type", mediaType)
	v.Set("containerKey", "/playQueues/"+queueID+"?window=100&own=1")
	return v, nil
}
