package memory

import (
	"context"
	"fmt"
	"sync"

	"costream/internal/core/domain"
	"costream/internal/core/ports"
)

type MemoryEventRepository struct {
	events map[domain.EventID]*domain.StreamEvent
	mu     sync.RWMutex
}

func NewMemoryEventRepository() ports.EventRepository {
	return &MemoryEventRepository{
		events: make(map[domain.EventID]*domain.StreamEvent),
	}
}

func (r *MemoryEventRepository) Create(ctx context.Context, event *domain.StreamEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[event.ID]; exists {
		return fmt.Errorf("event already exists: %s", event.ID)
	}

	r.events[event.ID] = event
	return nil
}

func (r *MemoryEventRepository) GetByID(ctx context.Context, id domain.EventID) (*domain.StreamEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, exists := r.events[id]
	if !exists {
		return nil, domain.ErrEventNotFound
	}

	return event, nil
}

func (r *MemoryEventRepository) ListByStatus(ctx context.Context, status domain.EventStatus) ([]*domain.StreamEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*domain.StreamEvent
	for _, event := range r.events {
		if event.Status == status {
			matched = append(matched, event)
		}
	}

	return matched, nil
}
