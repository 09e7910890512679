package plex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"
)

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		client.httpClient = httpClient
	}
}

func WithToken(token string) Option {
	return func(client *Client) {
		client.token = token
	}
}

// WithClientIdentity sets the identity the Client presents to the server and to the players it controls.
func WithClientIdentity(identity ClientIdentity) Option {
	return func(client *Client) {
		client.identity = identity
	}
}

// Client calls the Plex Media Server APIs
type Client struct {
	httpClient *http.Client
	identity   ClientIdentity
	token      string
	url        string
	commandID  atomic.Int64
}

func New(url string, opts ...Option) *Client {
	client := Client{
		httpClient: &http.Client{},
		identity:   defaultClientIdentity,
		url:        url,
	}
	for _, o := range opts {
		o(&client)
	}
	return &client
}

// URL returns the server's base URL.
func (c *Client) URL() string {
	return c.url
}

// Identity returns the identity the Client presents to the server.
func (c *Client) Identity() ClientIdentity {
	return c.identity
}

// AssetURL returns the full URL of a server asset (e.g. a thumbnail), including the access token.
// Returns an empty string if path is empty.
func (c *Client) AssetURL(path string) string {
	if path == "" {
		return ""
	}
	u, err := url.Parse(c.url + path)
	if err != nil {
		return ""
	}
	if c.token != "" {
		q := u.Query()
		q.Set("X-Plex-Token", c.token)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, target string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, err
	}
	c.identity.populateRequest(req)
	if c.token != "" {
		req.Header.Set("X-Plex-Token", c.token)
	}
	return req, nil
}

func call[T any](ctx context.Context, c *Client, method string, endpoint string) (T, error) {
	var response struct {
		MediaContainer T `json:"MediaContainer"`
	}

	req, err := c.newRequest(ctx, method, c.url+endpoint)
	if err != nil {
		return response.MediaContainer, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response.MediaContainer, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return response.MediaContainer, parseHTTPError(resp)
	}

	if err = json.NewDecoder(resp.Body).Decode(&response); err != nil {
		err = fmt.Errorf("decode: %w", err)
	}
	return response.MediaContainer, err
}
