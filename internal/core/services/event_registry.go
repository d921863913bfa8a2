package services

import (
	"context"
	"fmt"
	"time"

	"costream/internal/core/domain"
	"costream/internal/core/ports"
	"costream/pkg/utils"

	"go.uber.org/zap"
)

type eventRegistry struct {
	eventRepo  ports.EventRepository
	collabRepo ports.CollaboratorRepository
	subs       *SubscriptionIndex
	logger     *zap.SugaredLogger
}

func NewEventRegistry(
	eventRepo ports.EventRepository,
	collabRepo ports.CollaboratorRepository,
	subs *SubscriptionIndex,
	logger *zap.SugaredLogger,
) ports.EventRegistry {
	return &eventRegistry{
		eventRepo:  eventRepo,
		collabRepo: collabRepo,
		subs:       subs,
		logger:     logger,
	}
}

// CreateEvent persists a new event in planning status, then adds the creator
// as an accepted host collaborator and seeds the subscription set. Collaborator
// and subscription state are created only after persistence succeeds, so a
// storage failure leaves no partial state behind.
func (r *eventRegistry) CreateEvent(ctx context.Context, creatorID domain.UserID, draft domain.EventDraft) (*domain.StreamEvent, error) {
	event := &domain.StreamEvent{
		ID:                domain.EventID(utils.GenerateEventID()),
		CreatorID:         creatorID,
		Title:             draft.Title,
		ContentType:       draft.ContentType,
		ScheduledAt:       draft.ScheduledAt,
		EstimatedDuration: draft.EstimatedDuration,
		Platforms:         draft.Platforms,
		Status:            domain.EventStatusPlanning,
		CreatedAt:         time.Now(),
	}

	if err := r.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	host := &domain.Collaborator{
		ID:       domain.CollaboratorID(utils.GenerateCollaboratorID()),
		EventID:  event.ID,
		UserID:   creatorID,
		Role:     domain.RoleHost,
		Status:   domain.AcceptanceAccepted,
		JoinedAt: time.Now(),
	}
	if err := r.collabRepo.Create(ctx, host); err != nil {
		return nil, fmt.Errorf("failed to create host collaborator: %w", err)
	}

	r.subs.Add(event.ID, creatorID)

	r.logger.Infow("event created",
		"event_id", event.ID,
		"creator_id", creatorID,
		"platforms", event.Platforms,
	)
	return event, nil
}

func (r *eventRegistry) GetEvent(ctx context.Context, id domain.EventID) (*domain.StreamEvent, error) {
	return r.eventRepo.GetByID(ctx, id)
}

func (r *eventRegistry) AddSubscription(eventID domain.EventID, userID domain.UserID) {
	r.subs.Add(eventID, userID)
}

func (r *eventRegistry) RemoveSubscription(eventID domain.EventID, userID domain.UserID) {
	r.subs.Remove(eventID, userID)
}

func (r *eventRegistry) Subscribers(eventID domain.EventID) []domain.UserID {
	return r.subs.Members(eventID)
}

// RebuildSubscriptions repopulates the in-memory subscription index from the
// creator and accepted collaborators of every non-terminal event. Called once
// at process startup.
func (r *eventRegistry) RebuildSubscriptions(ctx context.Context) error {
	rebuilt := 0
	for _, status := range []domain.EventStatus{domain.EventStatusPlanning, domain.EventStatusActive} {
		events, err := r.eventRepo.ListByStatus(ctx, status)
		if err != nil {
			return fmt.Errorf("failed to list %s events: %w", status, err)
		}

		for _, event := range events {
			r.subs.Add(event.ID, event.CreatorID)

			collabs, err := r.collabRepo.FindByEvent(ctx, event.ID)
			if err != nil {
				return fmt.Errorf("failed to load collaborators for %s: %w", event.ID, err)
			}
			for _, collab := range collabs {
				if collab.Status == domain.AcceptanceAccepted {
					r.subs.Add(event.ID, collab.UserID)
				}
			}
			rebuilt++
		}
	}

	r.logger.Infow("subscription index rebuilt", "events", rebuilt)
	return nil
}
