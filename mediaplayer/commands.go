package mediaplayer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
)

// Play resumes playback.
func (p *Player) Play(ctx context.Context) error {
	return p.dispatch("play", func(kind MediaKind) error { return p.device.Play(ctx, kind) })
}

// Pause pauses playback.
func (p *Player) Pause(ctx context.Context) error {
	return p.dispatch("pause", func(kind MediaKind) error { return p.device.Pause(ctx, kind) })
}

// Stop stops playback.
func (p *Player) Stop(ctx context.Context) error {
	return p.dispatch("stop", func(kind MediaKind) error { return p.device.Stop(ctx, kind) })
}

// TurnOff stops playback. Plex clients can't be turned off remotely.
func (p *Player) TurnOff(ctx context.Context) error {
	return p.Stop(ctx)
}

// NextTrack skips to the next item in the play queue.
func (p *Player) NextTrack(ctx context.Context) error {
	return p.dispatch("skipNext", func(kind MediaKind) error { return p.device.SkipNext(ctx, kind) })
}

// PreviousTrack skips to the previous item in the play queue.
func (p *Player) PreviousTrack(ctx context.Context) error {
	return p.dispatch("skipPrevious", func(kind MediaKind) error { return p.device.SkipPrevious(ctx, kind) })
}

// SetVolume sets the volume level (0..1). Since the level can't be read back from the client, it is stored locally.
func (p *Player) SetVolume(ctx context.Context, level float64) error {
	if !p.canPlayback() {
		return nil
	}
	if level < 0 || level > 1 {
		return fmt.Errorf("invalid volume level: %v", level)
	}
	err := p.dispatch("setVolume", func(kind MediaKind) error {
		return p.device.SetVolume(ctx, int(math.Round(level*100)), kind)
	})
	if err == nil {
		p.volumeLevel = level
	}
	return err
}

// Mute mutes or unmutes the Player.
//
// Clients don't support muting: on mute, the current volume level is stored and the volume is set to zero.
// On unmute, the stored volume level is restored. The mute state only changes if the volume was set.
func (p *Player) Mute(ctx context.Context, mute bool) error {
	if !p.canPlayback() {
		return nil
	}
	level, previous := p.previousVolume, p.previousVolume
	if mute {
		level, previous = 0, p.volumeLevel
	}
	if err := p.SetVolume(ctx, level); err != nil {
		return err
	}
	p.muted, p.previousVolume = mute, previous
	return nil
}

// dispatch sends a command to the device, if the device supports playback. Otherwise, the command is silently ignored.
// After a successful command, all players of the server are refreshed.
func (p *Player) dispatch(command string, f func(MediaKind) error) error {
	if !p.canPlayback() {
		return nil
	}
	if err := f(p.mediaKind()); err != nil {
		if isTimeout(err) {
			p.logger.Error("timed out sending command", "command", command, "err", err)
		}
		return fmt.Errorf("%s: %w", command, err)
	}
	p.requestRefresh()
	return nil
}

func (p *Player) requestRefresh() {
	if p.refresher != nil {
		p.refresher.RequestRefresh()
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
