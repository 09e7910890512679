package mediaplayer

import (
	"strings"

	"codeberg.org/clambin/go-common/set"
)

// Feature is a bitmask of the controls a Player supports.
type Feature uint32

const (
	FeaturePause Feature = 1 << iota
	FeaturePreviousTrack
	FeatureNextTrack
	FeatureStop
	FeatureVolumeSet
	FeaturePlay
	FeaturePlayMedia
	FeatureTurnOff
	FeatureVolumeMute
)

const allFeatures = FeaturePause | FeaturePreviousTrack | FeatureNextTrack | FeatureStop |
	FeatureVolumeSet | FeaturePlay | FeaturePlayMedia | FeatureTurnOff | FeatureVolumeMute

// capabilityPlayback is the protocol capability that a client must report to accept playback commands.
const capabilityPlayback = "playback"

// Has returns true if all features in want are set.
func (f Feature) Has(want Feature) bool {
	return f&want == want
}

// SupportedFeatures returns the controls supported by a client.
//
// showAllControls enables all controls, regardless of the client. Otherwise, some known clients get a reduced set:
// a Shield Android TV doesn't support mute and a TiVo only supports play, pause, stop and turn off.
// Any other client supports all controls if it reports the "playback" capability.
func SupportedFeatures(showAllControls bool, make string, capabilities set.Set[string]) Feature {
	if showAllControls {
		return allFeatures
	}
	make = strings.ToLower(make)
	switch {
	case make == "shield android tv":
		return allFeatures &^ FeatureVolumeMute
	case strings.HasPrefix(make, "tivo"):
		return FeaturePause | FeaturePlay | FeatureStop | FeatureTurnOff
	case capabilities.Contains(capabilityPlayback):
		return allFeatures
	default:
		return 0
	}
}
