package platforms

import (
	"sync"

	"costream/internal/core/domain"
	"costream/internal/core/ports"
	"costream/internal/core/services"
)

// Registry holds the known platform clients keyed by platform identifier.
// Unknown platforms are simply absent; the coordinator reports them as
// unsupported instead of failing.
type Registry struct {
	clients map[domain.PlatformID]ports.PlatformClient
	mu      sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[domain.PlatformID]ports.PlatformClient),
	}
}

var _ services.ClientRegistry = (*Registry)(nil)

// Register adds a client under its own platform identifier.
func (r *Registry) Register(client ports.PlatformClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[client.Platform()] = client
}

// Client returns the client for a platform, if one is registered.
func (r *Registry) Client(id domain.PlatformID) (ports.PlatformClient, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[id]
	return client, ok
}

// Platforms lists the registered platform identifiers.
func (r *Registry) Platforms() []domain.PlatformID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]domain.PlatformID, 0, len(r.clients))
	for id := range r.clients {
		ids = append(ids, id)
	}
	return ids
}
