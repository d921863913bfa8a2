package ports

import (
	"context"

	"costream/internal/core/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.StreamEvent) error
	GetByID(ctx context.Context, id domain.EventID) (*domain.StreamEvent, error)
	ListByStatus(ctx context.Context, status domain.EventStatus) ([]*domain.StreamEvent, error)
}

type CollaboratorRepository interface {
	Create(ctx context.Context, collab *domain.Collaborator) error
	FindByEvent(ctx context.Context, eventID domain.EventID) ([]*domain.Collaborator, error)
	FindByEventAndUser(ctx context.Context, eventID domain.EventID, userID domain.UserID) (*domain.Collaborator, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.CoordinationSession) error
	GetByID(ctx context.Context, id domain.SessionID) (*domain.CoordinationSession, error)
	UpdateSession(ctx context.Context, id domain.SessionID, patch domain.SessionPatch) error
}
