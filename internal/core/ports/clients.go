package ports

import (
	"context"

	"costream/internal/core/domain"
)

// PlatformClient is the minimal capability set the coordinator depends on.
// Richer per-platform data (titles, embed URLs, webhook verification) lives
// entirely inside the client implementations.
type PlatformClient interface {
	Platform() domain.PlatformID

	IsConfigured() bool

	// ResolveHostIdentifier maps a user to the platform-specific broadcast
	// identifier. An empty identifier with a nil error means the user has no
	// handle on this platform.
	ResolveHostIdentifier(ctx context.Context, userID domain.UserID) (string, error)

	// GetLiveStatus reports the broadcast state for an identifier. A nil
	// status with a nil error means the platform knows nothing about it.
	// Implementations must enforce their own timeout and always resolve.
	GetLiveStatus(ctx context.Context, identifier string) (*domain.LiveStatus, error)
}

// MatchFinder is the external AI-matching collaborator. The candidate list is
// treated opaquely except for the audience-overlap field.
type MatchFinder interface {
	FindPartners(ctx context.Context, req domain.MatchRequest) ([]domain.PartnerMatch, error)
}

// HandleDirectory resolves a user's saved handle for a platform. Platform
// clients consult it before hitting their remote APIs.
type HandleDirectory interface {
	Lookup(ctx context.Context, userID domain.UserID, platform domain.PlatformID) (string, error)
}
