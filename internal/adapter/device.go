package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/clambin/plexplayer/mediaplayer"
	"github.com/clambin/plexplayer/plex"
)

var _ mediaplayer.DeviceHandle = &Device{}

// Device sends commands to a Plex player.
type Device struct {
	server *Server
	device plex.Device
	state  string
	proxy  bool
}

func (d *Device) MachineIdentifier() string       { return d.device.MachineIdentifier }
func (d *Device) URL(path string) (string, error) { return d.device.URL(path) }
func (d *Device) ProxyThroughServer()             { d.proxy = true }
func (d *Device) Title() string                   { return d.device.Name }
func (d *Device) Product() string                 { return d.device.Product }
func (d *Device) ProtocolCapabilities() []string  { return d.device.Capabilities() }
func (d *Device) State() string                   { return d.state }

// Proxied returns true if commands are sent through the server.
func (d *Device) Proxied() bool { return d.proxy }

func (d *Device) Play(ctx context.Context, kind mediaplayer.MediaKind) error {
	return d.playback(ctx, "play", kind, nil)
}

func (d *Device) Pause(ctx context.Context, kind mediaplayer.MediaKind) error {
	return d.playback(ctx, "pause", kind, nil)
}

func (d *Device) Stop(ctx context.Context, kind mediaplayer.MediaKind) error {
	return d.playback(ctx, "stop", kind, nil)
}

func (d *Device) SkipNext(ctx context.Context, kind mediaplayer.MediaKind) error {
	return d.playback(ctx, "skipNext", kind, nil)
}

func (d *Device) SkipPrevious(ctx context.Context, kind mediaplayer.MediaKind) error {
	return d.playback(ctx, "skipPrevious", kind, nil)
}

// SetVolume sets the player's volume (0-100).
func (d *Device) SetVolume(ctx context.Context, volume int, kind mediaplayer.MediaKind) error {
	return d.playback(ctx, "setParameters", kind, url.Values{"volume": []string{strconv.Itoa(volume)}})
}

// PlayMedia starts playing the play queue.
func (d *Device) PlayMedia(ctx context.Context, queue mediaplayer.PlayQueue) error {
	serverID, err := d.server.ServerID(ctx)
	if err != nil {
		return err
	}
	params, err := d.server.client.PlayMediaParams(serverID, queue.ID, queue.Key, string(queue.Kind))
	if err != nil {
		return err
	}
	return d.send(ctx, "playMedia", params)
}

func (d *Device) playback(ctx context.Context, command string, kind mediaplayer.MediaKind, params url.Values) error {
	if params == nil {
		params = make(url.Values)
	}
	params.Set("type", string(kind))
	return d.send(ctx, command, params)
}

func (d *Device) send(ctx context.Context, command string, params url.Values) error {
	err := d.server.client.SendPlayerCommand(ctx, plex.PlayerTarget{Device: d.device, Proxy: d.proxy}, "playback/"+command, params)
	if errors.Is(err, &plex.ErrInvalidXML{}) {
		err = fmt.Errorf("%w: %w", mediaplayer.ErrMalformedResponse, err)
	}
	return err
}
