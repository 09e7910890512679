package plex

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
)

// GetDevices returns the players currently connected to the server.
func (c *Client) GetDevices(ctx context.Context) ([]Device, error) {
	type response struct {
		Server []Device `json:"Server"`
		Size   int      `json:"size"`
	}
	resp, err := call[response](ctx, c, http.MethodGet, "/clients")
	return resp.Server, err
}

// Device is a player connected to the server, as reported by /clients.
type Device struct {
	Name                 string `json:"name"`
	Host                 string `json:"host"`
	Address              string `json:"address"`
	MachineIdentifier    string `json:"machineIdentifier"`
	Version              string `json:"version"`
	Protocol             string `json:"protocol"`
	Product              string `json:"product"`
	DeviceClass          string `json:"deviceClass"`
	ProtocolVersion      string `json:"protocolVersion"`
	ProtocolCapabilities string `json:"protocolCapabilities"`
	Port                 int    `json:"port"`
}

var ErrNoAddress = errors.New("device has no address")

// Capabilities returns the device's protocol capabilities (e.g. "playback", "timeline").
func (d Device) Capabilities() []string {
	if d.ProtocolCapabilities == "" {
		return nil
	}
	capabilities := strings.Split(d.ProtocolCapabilities, ",")
	for i := range capabilities {
		capabilities[i] = strings.TrimSpace(capabilities[i])
	}
	return capabilities
}

// URL returns the URL to reach the given path directly on the device.
func (d Device) URL(path string) (string, error) {
	if d.Address == "" || d.Port == 0 {
		return "", ErrNoAddress
	}
	return "http://" + net.JoinHostPort(d.Address, strconv.Itoa(d.Port)) + path, nil
}
