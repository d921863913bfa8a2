package memory

import (
	"context"
	"fmt"
	"sync"

	"costream/internal/core/domain"
	"costream/internal/core/ports"
)

type MemoryCollaboratorRepository struct {
	collaborators map[domain.CollaboratorID]*domain.Collaborator
	mu            sync.RWMutex
}

func NewMemoryCollaboratorRepository() ports.CollaboratorRepository {
	return &MemoryCollaboratorRepository{
		collaborators: make(map[domain.CollaboratorID]*domain.Collaborator),
	}
}

func (r *MemoryCollaboratorRepository) Create(ctx context.Context, collab *domain.Collaborator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.collaborators[collab.ID]; exists {
		return fmt.Errorf("collaborator already exists: %s", collab.ID)
	}

	r.collaborators[collab.ID] = collab
	return nil
}

func (r *MemoryCollaboratorRepository) FindByEvent(ctx context.Context, eventID domain.EventID) ([]*domain.Collaborator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.Collaborator
	for _, collab := range r.collaborators {
		if collab.EventID == eventID {
			matched = append(matched, collab)
		}
	}

	return matched, nil
}

func (r *MemoryCollaboratorRepository) FindByEventAndUser(ctx context.Context, eventID domain.EventID, userID domain.UserID) (*domain.Collaborator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, collab := range r.collaborators {
		if collab.EventID == eventID && collab.UserID == userID {
			return collab, nil
		}
	}

	return nil, domain.ErrCollaboratorNotFound
}
