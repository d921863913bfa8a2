package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"costream/internal/core/domain"
	"costream/internal/core/ports"
)

func newTestOrchestrator(t *testing.T) (ports.Orchestrator, *fakeEventRepo, *fakeCollabRepo, *SubscriptionIndex, *fakeMatchFinder) {
	t.Helper()

	eventRepo := newFakeEventRepo()
	collabRepo := newFakeCollabRepo()
	sessionRepo := newFakeSessionRepo()
	subs := NewSubscriptionIndex()
	matcher := &fakeMatchFinder{}
	log := zap.NewNop().Sugar()

	events := NewEventRegistry(eventRepo, collabRepo, subs, log)
	collabs := NewCollaboratorRegistry(collabRepo, eventRepo, matcher, 5, log)

	sc := NewSessionCoordinator(sessionRepo, eventRepo, collabRepo, NewCoordinationMetrics(), nil, log)
	sc.AttachPlatformCoordinator(&fakePlatformCoordinator{})

	return NewOrchestrator(events, collabs, sc), eventRepo, collabRepo, subs, matcher
}

func TestOrchestratorAddCollaboratorRegistersSubscription(t *testing.T) {
	orch, eventRepo, _, subs, _ := newTestOrchestrator(t)
	eventRepo.events["event_1"] = &domain.StreamEvent{ID: "event_1", Status: domain.EventStatusPlanning}

	collab, err := orch.AddCollaborator(context.Background(), "event_1", domain.CollaboratorDraft{
		UserID: "user_2",
		Role:   domain.RoleGuest,
	})
	require.NoError(t, err)

	assert.True(t, subs.Contains("event_1", collab.UserID))
}

func TestOrchestratorAddCollaboratorFailureSkipsSubscription(t *testing.T) {
	orch, _, _, subs, _ := newTestOrchestrator(t)

	_, err := orch.AddCollaborator(context.Background(), "ghost", domain.CollaboratorDraft{UserID: "user_2"})
	require.Error(t, err)
	assert.False(t, subs.Contains("ghost", "user_2"))
}

func TestOrchestratorJoinRegistersSubscription(t *testing.T) {
	orch, eventRepo, _, subs, _ := newTestOrchestrator(t)
	eventRepo.events["event_1"] = &domain.StreamEvent{ID: "event_1"}

	require.NoError(t, orch.HandleCollaboratorJoin(context.Background(), "event_1", "user_3"))
	assert.True(t, subs.Contains("event_1", "user_3"))
}

func TestOrchestratorSuggestionsIncludeStrategic(t *testing.T) {
	orch, eventRepo, _, _, matcher := newTestOrchestrator(t)
	eventRepo.events["event_1"] = &domain.StreamEvent{
		ID:          "event_1",
		ContentType: "gaming",
		ScheduledAt: time.Now().Add(100 * time.Hour),
		Platforms:   []domain.PlatformID{"twitch"},
	}
	matcher.partners = []domain.PartnerMatch{{DisplayName: "A", AudienceOverlap: 0.5}}

	suggestions, err := orch.GetCollaborationSuggestions(context.Background(), "event_1", "user_1")
	require.NoError(t, err)

	require.NotEmpty(t, suggestions.Strategic)
	assert.Len(t, suggestions.Partners, 1)
}

func TestOrchestratorSubscribeUnsubscribe(t *testing.T) {
	orch, _, _, subs, _ := newTestOrchestrator(t)

	orch.Subscribe("event_1", "user_1")
	assert.True(t, subs.Contains("event_1", "user_1"))

	orch.Unsubscribe("event_1", "user_1")
	assert.False(t, subs.Contains("event_1", "user_1"))
}

func TestOrchestratorEndToEndSessionFlow(t *testing.T) {
	orch, _, _, _, _ := newTestOrchestrator(t)
	ctx := context.Background()

	event, err := orch.CreateEvent(ctx, "creator_1", domain.EventDraft{
		Title:       "weekly show",
		ContentType: "talk_show",
		ScheduledAt: time.Now().Add(time.Hour),
		Platforms:   []domain.PlatformID{"twitch"},
	})
	require.NoError(t, err)

	session, err := orch.StartSession(ctx, event.ID, "creator_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PhasePreparation, session.Phase)

	require.NoError(t, orch.UpdatePhase(ctx, event.ID, domain.PhaseLive, "creator_1"))

	status, err := orch.GetStatus(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseLive, status.Phase)
	require.Len(t, status.ActiveCollaborators, 1)
	assert.Equal(t, domain.UserID("creator_1"), status.ActiveCollaborators[0].UserID)
}
