package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"costream/internal/core/domain"
	"costream/internal/core/ports"
	"costream/pkg/utils"

	"go.uber.org/zap"
)

type collaboratorRegistry struct {
	collabRepo ports.CollaboratorRepository
	eventRepo  ports.EventRepository
	matcher    ports.MatchFinder
	maxResults int
	logger     *zap.SugaredLogger
}

func NewCollaboratorRegistry(
	collabRepo ports.CollaboratorRepository,
	eventRepo ports.EventRepository,
	matcher ports.MatchFinder,
	maxResults int,
	logger *zap.SugaredLogger,
) ports.CollaboratorRegistry {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &collaboratorRegistry{
		collabRepo: collabRepo,
		eventRepo:  eventRepo,
		matcher:    matcher,
		maxResults: maxResults,
		logger:     logger,
	}
}

// AddCollaborator persists the collaborator record. Subscription bookkeeping
// is a cross-registry concern handled by the orchestrator.
func (r *collaboratorRegistry) AddCollaborator(ctx context.Context, eventID domain.EventID, draft domain.CollaboratorDraft) (*domain.Collaborator, error) {
	if _, err := r.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	status := draft.Status
	if status == "" {
		status = domain.AcceptanceInvited
	}

	collab := &domain.Collaborator{
		ID:              domain.CollaboratorID(utils.GenerateCollaboratorID()),
		EventID:         eventID,
		UserID:          draft.UserID,
		Role:            draft.Role,
		Status:          status,
		PlatformHandles: draft.PlatformHandles,
		Capabilities:    draft.Capabilities,
		Availability:    draft.Availability,
		JoinedAt:        time.Now(),
	}

	if err := r.collabRepo.Create(ctx, collab); err != nil {
		return nil, fmt.Errorf("failed to create collaborator: %w", err)
	}

	r.logger.Infow("collaborator added",
		"event_id", eventID,
		"user_id", collab.UserID,
		"role", collab.Role,
	)
	return collab, nil
}

// GetCollaborationSuggestions asks the external matcher for partner candidates
// and computes a scheduling recommendation from the event's own timing.
// Strategic recommendations are attached by the orchestrator.
func (r *collaboratorRegistry) GetCollaborationSuggestions(ctx context.Context, eventID domain.EventID, requesterID domain.UserID) (*domain.CollaborationSuggestions, error) {
	event, err := r.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	req := domain.MatchRequest{
		UserID:       requesterID,
		InterestTags: []string{event.ContentType},
		MaxResults:   r.maxResults,
		Urgency:      urgencyFor(event.ScheduledAt),
	}

	partners, err := r.matcher.FindPartners(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to find partners: %w", err)
	}

	collabs, err := r.collabRepo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load collaborators: %w", err)
	}

	return &domain.CollaborationSuggestions{
		Partners: partners,
		Scheduling: domain.SchedulingRecommendation{
			ProposedStart:    event.ScheduledAt,
			Duration:         event.EstimatedDuration,
			TimezoneCoverage: timezoneCoverage(collabs),
		},
	}, nil
}

// HandleCollaboratorJoin records that a user joined a live session. Joining is
// distinct from accepting an invitation; no acceptance status changes here.
func (r *collaboratorRegistry) HandleCollaboratorJoin(ctx context.Context, eventID domain.EventID, userID domain.UserID) error {
	if _, err := r.eventRepo.GetByID(ctx, eventID); err != nil {
		return err
	}

	r.logger.Infow("collaborator joined session",
		"event_id", eventID,
		"user_id", userID,
	)
	return nil
}

// urgencyFor maps time-to-start onto the matcher's urgency hint.
func urgencyFor(scheduledAt time.Time) string {
	until := time.Until(scheduledAt)
	switch {
	case until < 24*time.Hour:
		return "high"
	case until < 72*time.Hour:
		return "normal"
	default:
		return "low"
	}
}

// timezoneCoverage summarizes the distinct timezones collaborators declared in
// their availability maps. Best effort only.
func timezoneCoverage(collabs []*domain.Collaborator) string {
	seen := make(map[string]struct{})
	var zones []string
	for _, collab := range collabs {
		zone, ok := collab.Availability["timezone"]
		if !ok || zone == "" {
			continue
		}
		if _, dup := seen[zone]; dup {
			continue
		}
		seen[zone] = struct{}{}
		zones = append(zones, zone)
	}

	if len(zones) == 0 {
		return "unknown"
	}
	return strings.Join(zones, ", ")
}
