package mediaplayer_test

import (
	"testing"

	"codeberg.org/clambin/go-common/set"
	"github.com/clambin/plexplayer/mediaplayer"
	"github.com/stretchr/testify/assert"
)

func TestSupportedFeatures(t *testing.T) {
	const all = mediaplayer.FeaturePause | mediaplayer.FeaturePreviousTrack | mediaplayer.FeatureNextTrack |
		mediaplayer.FeatureStop | mediaplayer.FeatureVolumeSet | mediaplayer.FeaturePlay | mediaplayer.FeaturePlayMedia |
		mediaplayer.FeatureTurnOff | mediaplayer.FeatureVolumeMute

	tests := []struct {
		name            string
		showAllControls bool
		make            string
		capabilities    []string
		want            mediaplayer.Feature
	}{
		{name: "show all controls", showAllControls: true, make: "TiVo", want: all},
		{name: "shield", make: "SHIELD Android TV", capabilities: []string{"playback"}, want: all &^ mediaplayer.FeatureVolumeMute},
		{name: "shield without playback", make: "Shield Android TV", want: all &^ mediaplayer.FeatureVolumeMute},
		{name: "tivo", make: "TiVo Stream 4K", capabilities: []string{"playback"}, want: mediaplayer.FeaturePause | mediaplayer.FeaturePlay | mediaplayer.FeatureStop | mediaplayer.FeatureTurnOff},
		{name: "playback", make: "Chromecast", capabilities: []string{"timeline", "playback"}, want: all},
		{name: "no playback", make: "Chromecast", capabilities: []string{"timeline"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mediaplayer.SupportedFeatures(tt.showAllControls, tt.make, set.New(tt.capabilities...))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlayer_SupportedFeatures(t *testing.T) {
	p := mediaplayer.New("client-1", nil, nil)
	assert.Zero(t, p.SupportedFeatures())

	p.Refresh(newFakeDevice("playback"), nil)
	assert.True(t, p.SupportedFeatures().Has(mediaplayer.FeatureVolumeMute|mediaplayer.FeaturePlayMedia))

	p.Refresh(nil, nil)
	assert.Zero(t, p.SupportedFeatures())

	p = mediaplayer.New("client-1", nil, nil, mediaplayer.WithShowAllControls(true))
	assert.True(t, p.SupportedFeatures().Has(mediaplayer.FeatureVolumeSet))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "off", mediaplayer.StateOff.String())
	assert.Equal(t, "idle", mediaplayer.StateIdle.String())
	assert.Equal(t, "playing", mediaplayer.StatePlaying.String())
	assert.Equal(t, "paused", mediaplayer.StatePaused.String())
}
