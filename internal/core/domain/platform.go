package domain

import "time"

// PlatformStatus is the normalized per-platform outcome of a coordination pass.
type PlatformStatus string

const (
	PlatformLive        PlatformStatus = "live"
	PlatformReady       PlatformStatus = "ready"
	PlatformNeedsSetup  PlatformStatus = "needs_setup"
	PlatformUnavailable PlatformStatus = "unavailable"
	PlatformUnsupported PlatformStatus = "unsupported"
	PlatformError       PlatformStatus = "error"
)

// PlatformResult is the ephemeral per-platform-per-attempt outcome. It is
// folded into the session's status map and never persisted on its own.
type PlatformResult struct {
	Platform PlatformID
	Status   PlatformStatus
	Detail   string
	Elapsed  time.Duration
}

// LiveStatus is the minimal shape a platform client reports for a broadcast.
type LiveStatus struct {
	ID    string
	State string
}

const LiveStateLive = "live"
