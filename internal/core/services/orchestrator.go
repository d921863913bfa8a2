package services

import (
	"context"

	"costream/internal/core/domain"
	"costream/internal/core/ports"
)

// orchestrator is the facade creators and hosts call. It is pure composition:
// every operation forwards to the owning registry, and it is the only
// component allowed to cross registries (collaborator changes touching the
// subscription set).
type orchestrator struct {
	events   ports.EventRegistry
	collabs  ports.CollaboratorRegistry
	sessions ports.SessionCoordinator
}

func NewOrchestrator(
	events ports.EventRegistry,
	collabs ports.CollaboratorRegistry,
	sessions ports.SessionCoordinator,
) ports.Orchestrator {
	return &orchestrator{
		events:   events,
		collabs:  collabs,
		sessions: sessions,
	}
}

func (o *orchestrator) CreateEvent(ctx context.Context, creatorID domain.UserID, draft domain.EventDraft) (*domain.StreamEvent, error) {
	return o.events.CreateEvent(ctx, creatorID, draft)
}

func (o *orchestrator) GetEvent(ctx context.Context, id domain.EventID) (*domain.StreamEvent, error) {
	return o.events.GetEvent(ctx, id)
}

// AddCollaborator persists the collaborator and registers their user id in the
// event's subscription set.
func (o *orchestrator) AddCollaborator(ctx context.Context, eventID domain.EventID, draft domain.CollaboratorDraft) (*domain.Collaborator, error) {
	collab, err := o.collabs.AddCollaborator(ctx, eventID, draft)
	if err != nil {
		return nil, err
	}

	o.events.AddSubscription(eventID, collab.UserID)
	return collab, nil
}

// GetCollaborationSuggestions combines the collaborator registry's partner and
// scheduling output with the event registry's strategic recommendations.
func (o *orchestrator) GetCollaborationSuggestions(ctx context.Context, eventID domain.EventID, requesterID domain.UserID) (*domain.CollaborationSuggestions, error) {
	event, err := o.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	suggestions, err := o.collabs.GetCollaborationSuggestions(ctx, eventID, requesterID)
	if err != nil {
		return nil, err
	}

	suggestions.Strategic = o.events.GenerateStrategicRecommendations(event, suggestions.Partners)
	return suggestions, nil
}

func (o *orchestrator) HandleCollaboratorJoin(ctx context.Context, eventID domain.EventID, userID domain.UserID) error {
	if err := o.collabs.HandleCollaboratorJoin(ctx, eventID, userID); err != nil {
		return err
	}

	o.events.AddSubscription(eventID, userID)
	return nil
}

func (o *orchestrator) StartSession(ctx context.Context, eventID domain.EventID, hostUserID domain.UserID) (*domain.CoordinationSession, error) {
	return o.sessions.StartSession(ctx, eventID, hostUserID)
}

func (o *orchestrator) UpdatePhase(ctx context.Context, eventID domain.EventID, phase domain.SessionPhase, updatedBy domain.UserID) error {
	return o.sessions.UpdatePhase(ctx, eventID, phase, updatedBy)
}

func (o *orchestrator) GetStatus(ctx context.Context, eventID domain.EventID) (*domain.CoordinationStatus, error) {
	return o.sessions.GetStatus(ctx, eventID)
}

func (o *orchestrator) Subscribe(eventID domain.EventID, userID domain.UserID) {
	o.events.AddSubscription(eventID, userID)
}

func (o *orchestrator) Unsubscribe(eventID domain.EventID, userID domain.UserID) {
	o.events.RemoveSubscription(eventID, userID)
}
