package memory

import (
	"context"
	"fmt"
	"sync"

	"costream/internal/core/domain"
	"costream/internal/core/ports"
)

type MemorySessionRepository struct {
	sessions map[domain.SessionID]*domain.CoordinationSession
	mu       sync.RWMutex
}

func NewMemorySessionRepository() ports.SessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[domain.SessionID]*domain.CoordinationSession),
	}
}

func (r *MemorySessionRepository) Create(ctx context.Context, session *domain.CoordinationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("session already exists: %s", session.ID)
	}

	// Stored copies never alias the caller's struct; the active-session
	// registry holds the same pointer and mutates it under its own lock.
	r.sessions[session.ID] = session.Clone()
	return nil
}

func (r *MemorySessionRepository) GetByID(ctx context.Context, id domain.SessionID) (*domain.CoordinationSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[id]
	if !exists {
		return nil, domain.ErrSessionNotFound
	}

	return session.Clone(), nil
}

func (r *MemorySessionRepository) UpdateSession(ctx context.Context, id domain.SessionID, patch domain.SessionPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.sessions[id]
	if !exists {
		return domain.ErrSessionNotFound
	}

	if patch.Phase != nil {
		session.Phase = *patch.Phase
	}
	if patch.PlatformStatuses != nil {
		statuses := make(map[domain.PlatformID]domain.PlatformStatus, len(patch.PlatformStatuses))
		for platform, status := range patch.PlatformStatuses {
			statuses[platform] = status
		}
		session.PlatformStatuses = statuses
	}

	return nil
}
