package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"costream/internal/core/domain"
)

func newTestEventRegistry(t *testing.T) (*eventRegistry, *fakeEventRepo, *fakeCollabRepo, *SubscriptionIndex) {
	t.Helper()

	eventRepo := newFakeEventRepo()
	collabRepo := newFakeCollabRepo()
	subs := NewSubscriptionIndex()

	registry := NewEventRegistry(eventRepo, collabRepo, subs, zap.NewNop().Sugar()).(*eventRegistry)
	return registry, eventRepo, collabRepo, subs
}

func TestCreateEventSideEffects(t *testing.T) {
	registry, _, collabRepo, subs := newTestEventRegistry(t)

	event, err := registry.CreateEvent(context.Background(), "user_1", domain.EventDraft{
		Title:       "launch stream",
		ContentType: "gaming",
		ScheduledAt: time.Now().Add(48 * time.Hour),
		Platforms:   []domain.PlatformID{"twitch"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.EventStatusPlanning, event.Status)
	assert.Equal(t, domain.UserID("user_1"), event.CreatorID)
	assert.NotEmpty(t, event.ID)

	// Creator becomes an accepted host collaborator
	host, err := collabRepo.FindByEventAndUser(context.Background(), event.ID, "user_1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleHost, host.Role)
	assert.Equal(t, domain.AcceptanceAccepted, host.Status)

	// And is subscribed from the start
	assert.True(t, subs.Contains(event.ID, "user_1"))
}

func TestCreateEventStorageFailureLeavesNoPartialState(t *testing.T) {
	registry, eventRepo, collabRepo, subs := newTestEventRegistry(t)
	eventRepo.createErr = assert.AnError

	_, err := registry.CreateEvent(context.Background(), "user_1", domain.EventDraft{Title: "doomed"})
	require.Error(t, err)

	assert.Empty(t, collabRepo.collabs)
	assert.Empty(t, subs.Members("any"))
}

func TestGetEventNotFound(t *testing.T) {
	registry, _, _, _ := newTestEventRegistry(t)

	_, err := registry.GetEvent(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestSubscriptionLifecycle(t *testing.T) {
	registry, _, _, _ := newTestEventRegistry(t)

	registry.AddSubscription("event_1", "user_1")
	registry.AddSubscription("event_1", "user_1") // duplicate is a no-op
	registry.AddSubscription("event_1", "user_2")

	assert.Len(t, registry.Subscribers("event_1"), 2)

	registry.RemoveSubscription("event_1", "user_1")
	assert.Equal(t, []domain.UserID{"user_2"}, registry.Subscribers("event_1"))

	// Removing a non-subscriber is a no-op
	registry.RemoveSubscription("event_1", "user_9")
	assert.Len(t, registry.Subscribers("event_1"), 1)
}

func TestRebuildSubscriptions(t *testing.T) {
	registry, eventRepo, collabRepo, subs := newTestEventRegistry(t)

	eventRepo.events["e1"] = &domain.StreamEvent{ID: "e1", CreatorID: "creator_1", Status: domain.EventStatusPlanning}
	eventRepo.events["e2"] = &domain.StreamEvent{ID: "e2", CreatorID: "creator_2", Status: domain.EventStatusActive}
	eventRepo.events["e3"] = &domain.StreamEvent{ID: "e3", CreatorID: "creator_3", Status: domain.EventStatusCompleted}

	collabRepo.collabs["c1"] = &domain.Collaborator{ID: "c1", EventID: "e1", UserID: "user_a", Status: domain.AcceptanceAccepted}
	collabRepo.collabs["c2"] = &domain.Collaborator{ID: "c2", EventID: "e1", UserID: "user_b", Status: domain.AcceptanceInvited}

	require.NoError(t, registry.RebuildSubscriptions(context.Background()))

	assert.True(t, subs.Contains("e1", "creator_1"))
	assert.True(t, subs.Contains("e1", "user_a"))
	assert.False(t, subs.Contains("e1", "user_b")) // invited, not accepted
	assert.True(t, subs.Contains("e2", "creator_2"))
	assert.False(t, subs.Contains("e3", "creator_3")) // terminal events are skipped
}

func TestStrategicRecommendationsAudienceOverlap(t *testing.T) {
	registry, _, _, _ := newTestEventRegistry(t)
	event := &domain.StreamEvent{ContentType: "irl", Platforms: []domain.PlatformID{"twitch"}}

	// High average overlap: co-promotion hint
	recs := registry.GenerateStrategicRecommendations(event, []domain.PartnerMatch{
		{DisplayName: "A", AudienceOverlap: 0.5},
		{DisplayName: "B", AudienceOverlap: 0.4},
	})
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "co-promote")

	// Only the best candidate crosses the threshold: prioritization hint
	recs = registry.GenerateStrategicRecommendations(event, []domain.PartnerMatch{
		{DisplayName: "A", AudienceOverlap: 0.6},
		{DisplayName: "B", AudienceOverlap: 0.05},
	})
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "A")

	// Nobody crosses the threshold: nothing
	recs = registry.GenerateStrategicRecommendations(event, []domain.PartnerMatch{
		{DisplayName: "A", AudienceOverlap: 0.1},
	})
	assert.Empty(t, recs)
}

func TestStrategicRecommendationsContentAndPlatforms(t *testing.T) {
	registry, _, _, _ := newTestEventRegistry(t)

	gaming := &domain.StreamEvent{
		ContentType: "gaming",
		Platforms:   []domain.PlatformID{"twitch", "youtube"},
		ScheduledAt: time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC), // prime time
	}

	recs := registry.GenerateStrategicRecommendations(gaming, nil)
	require.Len(t, recs, 3)
	assert.Contains(t, recs[0], "co-commentator")
	assert.Contains(t, recs[1], "2 platforms")
	assert.Contains(t, recs[2], "prime-time")
}

func TestStrategicRecommendationsEmpty(t *testing.T) {
	registry, _, _, _ := newTestEventRegistry(t)

	event := &domain.StreamEvent{
		ContentType: "irl",
		Platforms:   []domain.PlatformID{"twitch"},
		ScheduledAt: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
	}
	assert.Empty(t, registry.GenerateStrategicRecommendations(event, nil))
}
