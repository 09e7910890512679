package plex

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/google/uuid"
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		defaultClientIdentity.Version = info.Main.Version
	}
	defaultClientIdentity.DeviceName, _ = os.Hostname()
}

// ClientIdentity identifies the client to the Plex Media Server and to the players it controls.
// Although this package provides a default, it is recommended to set this yourself.
type ClientIdentity struct {
	// Product is the name of the client product.
	// Passed as X-Plex-Product header.
	Product string
	// Version is the version of the client application.
	// Passed as X-Plex-Version header.
	Version string
	// Platform is the operating system or compiler of the client application.
	// Passed as X-Plex-Platform header.
	Platform string
	// PlatformVersion is the version of the platform.
	// Passed as X-Plex-Platform-Version header.
	PlatformVersion string
	// Device is a relatively friendly name for the client device.
	// Passed as X-Plex-Device header.
	Device string
	// DeviceName is a friendly name for the client.
	// Passed as X-Plex-Device-Name header.
	DeviceName string
	// Provides lists the capabilities of the client.
	// Passed as X-Plex-Provides header. Players only accept commands from a "controller".
	Provides string
	// Identifier is a unique identifier for the client.
	// Passed as X-Plex-Client-Identifier header.
	Identifier string
}

func (id ClientIdentity) populateRequest(req *http.Request) {
	headers := map[string]string{
		"X-Plex-Product":           id.Product,
		"X-Plex-Version":           id.Version,
		"X-Plex-Platform":          id.Platform,
		"X-Plex-Platform-Version":  id.PlatformVersion,
		"X-Plex-Device":            id.Device,
		"X-Plex-Device-Name":       id.DeviceName,
		"X-Plex-Provides":          id.Provides,
		"X-Plex-Client-Identifier": id.Identifier,
	}
	for key, value := range headers {
		if value != "" {
			req.Header.Set(key, value)
		}
	}
}

var defaultClientIdentity = ClientIdentity{
	Product:         "github.com/clambin/plexplayer",
	Version:         "(devel)",
	Device:          "plexplayer",
	Provides:        "controller",
	Platform:        runtime.GOOS,
	PlatformVersion: runtime.Version(),
	Identifier:      uuid.New().String(),
}

// DefaultClientIdentity returns the identity used when no ClientIdentity is configured.
func DefaultClientIdentity() ClientIdentity {
	return defaultClientIdentity
}
