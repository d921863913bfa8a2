package ports

import (
	"context"

	"costream/internal/core/domain"
)

type EventRegistry interface {
	CreateEvent(ctx context.Context, creatorID domain.UserID, draft domain.EventDraft) (*domain.StreamEvent, error)
	GetEvent(ctx context.Context, id domain.EventID) (*domain.StreamEvent, error)
	AddSubscription(eventID domain.EventID, userID domain.UserID)
	RemoveSubscription(eventID domain.EventID, userID domain.UserID)
	Subscribers(eventID domain.EventID) []domain.UserID
	GenerateStrategicRecommendations(event *domain.StreamEvent, matches []domain.PartnerMatch) []string
	RebuildSubscriptions(ctx context.Context) error
}

type CollaboratorRegistry interface {
	AddCollaborator(ctx context.Context, eventID domain.EventID, draft domain.CollaboratorDraft) (*domain.Collaborator, error)
	GetCollaborationSuggestions(ctx context.Context, eventID domain.EventID, requesterID domain.UserID) (*domain.CollaborationSuggestions, error)
	HandleCollaboratorJoin(ctx context.Context, eventID domain.EventID, userID domain.UserID) error
}

type SessionCoordinator interface {
	StartSession(ctx context.Context, eventID domain.EventID, hostUserID domain.UserID) (*domain.CoordinationSession, error)
	UpdatePhase(ctx context.Context, eventID domain.EventID, phase domain.SessionPhase, updatedBy domain.UserID) error
	GetStatus(ctx context.Context, eventID domain.EventID) (*domain.CoordinationStatus, error)
	GetActiveSession(eventID domain.EventID) *domain.CoordinationSession
	CloseSession(eventID domain.EventID)
}

// SessionLookup is the narrow accessor the platform coordinator uses so the
// active-session registry keeps a single owner and a single writer. Status
// reads go through SnapshotPlatformStatuses, which copies under the registry
// lock; the session returned by GetActiveSession is only safe for its
// immutable identity fields (ID, EventID, HostID, StartedAt).
type SessionLookup interface {
	GetActiveSession(eventID domain.EventID) *domain.CoordinationSession
	SnapshotPlatformStatuses(eventID domain.EventID) map[domain.PlatformID]domain.PlatformStatus
	ApplyPlatformStatuses(eventID domain.EventID, statuses map[domain.PlatformID]domain.PlatformStatus)
}

type PlatformCoordinator interface {
	Coordinate(ctx context.Context, eventID domain.EventID, phase domain.SessionPhase) error
	StartAll(ctx context.Context, eventID domain.EventID) error
	PauseAll(ctx context.Context, eventID domain.EventID) error
	EndAll(ctx context.Context, eventID domain.EventID) error
	GetPlatformStatuses(ctx context.Context, eventID domain.EventID) map[domain.PlatformID]domain.PlatformStatus
}

type Orchestrator interface {
	CreateEvent(ctx context.Context, creatorID domain.UserID, draft domain.EventDraft) (*domain.StreamEvent, error)
	GetEvent(ctx context.Context, id domain.EventID) (*domain.StreamEvent, error)
	AddCollaborator(ctx context.Context, eventID domain.EventID, draft domain.CollaboratorDraft) (*domain.Collaborator, error)
	GetCollaborationSuggestions(ctx context.Context, eventID domain.EventID, requesterID domain.UserID) (*domain.CollaborationSuggestions, error)
	HandleCollaboratorJoin(ctx context.Context, eventID domain.EventID, userID domain.UserID) error
	StartSession(ctx context.Context, eventID domain.EventID, hostUserID domain.UserID) (*domain.CoordinationSession, error)
	UpdatePhase(ctx context.Context, eventID domain.EventID, phase domain.SessionPhase, updatedBy domain.UserID) error
	GetStatus(ctx context.Context, eventID domain.EventID) (*domain.CoordinationStatus, error)
	Subscribe(eventID domain.EventID, userID domain.UserID)
	Unsubscribe(eventID domain.EventID, userID domain.UserID)
}
