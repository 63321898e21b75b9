package session

import (
	"time"

	"github.com/X5-main/hr-platform-sub000/internal/profile"
)

// Config tunes the session workflows. Zero values are filled in by
// DefaultConfig; main overlays env-provided settings.
type Config struct {
	Defaults profile.Defaults

	// Fixed service ports inside the sandbox image.
	VNCPort        int
	CodeServerPort int

	ArchiveBucket      string
	StopTimeoutSeconds int
	DefaultDuration    time.Duration
}

func DefaultConfig() Config {
	return Config{
		Defaults:           profile.Hardened(),
		VNCPort:            6080,
		CodeServerPort:     8443,
		ArchiveBucket:      "session-workspaces",
		StopTimeoutSeconds: 30,
		DefaultDuration:    time.Hour,
	}
}
