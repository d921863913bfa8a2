package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costream/internal/core/domain"
)

func TestEventRepositoryCreateAndGet(t *testing.T) {
	repo := NewMemoryEventRepository()
	ctx := context.Background()

	event := &domain.StreamEvent{
		ID:        "event_1",
		CreatorID: "user_1",
		Title:     "launch stream",
		Status:    domain.EventStatusPlanning,
	}
	require.NoError(t, repo.Create(ctx, event))

	got, err := repo.GetByID(ctx, "event_1")
	require.NoError(t, err)
	assert.Equal(t, "launch stream", got.Title)
}

func TestEventRepositoryDuplicateCreate(t *testing.T) {
	repo := NewMemoryEventRepository()
	ctx := context.Background()

	event := &domain.StreamEvent{ID: "event_1", Status: domain.EventStatusPlanning}
	require.NoError(t, repo.Create(ctx, event))
	assert.Error(t, repo.Create(ctx, event))
}

func TestEventRepositoryGetMissing(t *testing.T) {
	repo := NewMemoryEventRepository()

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestEventRepositoryListByStatus(t *testing.T) {
	repo := NewMemoryEventRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.StreamEvent{ID: "e1", Status: domain.EventStatusPlanning}))
	require.NoError(t, repo.Create(ctx, &domain.StreamEvent{ID: "e2", Status: domain.EventStatusActive}))
	require.NoError(t, repo.Create(ctx, &domain.StreamEvent{ID: "e3", Status: domain.EventStatusPlanning}))

	planning, err := repo.ListByStatus(ctx, domain.EventStatusPlanning)
	require.NoError(t, err)
	assert.Len(t, planning, 2)

	completed, err := repo.ListByStatus(ctx, domain.EventStatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, completed)
}
