package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costream/internal/core/domain"
)

func TestSessionRepositoryCreateAndGet(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	session := &domain.CoordinationSession{
		ID:        "session_1",
		EventID:   "event_1",
		Phase:     domain.PhasePreparation,
		HostID:    "user_1",
		StartedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, session))

	got, err := repo.GetByID(ctx, "session_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PhasePreparation, got.Phase)
}

func TestSessionRepositoryGetMissing(t *testing.T) {
	repo := NewMemorySessionRepository()

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepositoryPatchPhaseOnly(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	session := &domain.CoordinationSession{
		ID:      "session_1",
		EventID: "event_1",
		Phase:   domain.PhasePreparation,
		PlatformStatuses: map[domain.PlatformID]domain.PlatformStatus{
			"twitch": domain.PlatformReady,
		},
	}
	require.NoError(t, repo.Create(ctx, session))

	live := domain.PhaseLive
	require.NoError(t, repo.UpdateSession(ctx, "session_1", domain.SessionPatch{Phase: &live}))

	got, err := repo.GetByID(ctx, "session_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseLive, got.Phase)
	// Untouched fields survive a partial patch
	assert.Equal(t, domain.PlatformReady, got.PlatformStatuses["twitch"])
}

func TestSessionRepositoryDoesNotAliasCallerStruct(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	session := &domain.CoordinationSession{
		ID:      "session_1",
		EventID: "event_1",
		Phase:   domain.PhasePreparation,
		PlatformStatuses: map[domain.PlatformID]domain.PlatformStatus{
			"twitch": domain.PlatformReady,
		},
	}
	require.NoError(t, repo.Create(ctx, session))

	// Mutating the caller's struct after Create must not leak into the store
	session.Phase = domain.PhaseEnded
	session.PlatformStatuses["twitch"] = domain.PlatformError

	got, err := repo.GetByID(ctx, "session_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PhasePreparation, got.Phase)
	assert.Equal(t, domain.PlatformReady, got.PlatformStatuses["twitch"])

	// And mutating a returned session must not write back either
	got.Phase = domain.PhaseBreak
	again, err := repo.GetByID(ctx, "session_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PhasePreparation, again.Phase)
}

func TestSessionRepositoryPatchMissingSession(t *testing.T) {
	repo := NewMemorySessionRepository()

	live := domain.PhaseLive
	err := repo.UpdateSession(context.Background(), "nope", domain.SessionPatch{Phase: &live})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
