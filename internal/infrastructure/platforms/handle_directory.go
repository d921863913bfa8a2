package platforms

import (
	"context"
	"sync"

	"costream/internal/core/domain"
	"costream/internal/core/ports"
)

// MemoryHandleDirectory keeps user platform handles in process. Handles are
// registered as collaborators come in through the API surface.
type MemoryHandleDirectory struct {
	handles map[domain.UserID]map[domain.PlatformID]string
	mu      sync.RWMutex
}

func NewMemoryHandleDirectory() *MemoryHandleDirectory {
	return &MemoryHandleDirectory{
		handles: make(map[domain.UserID]map[domain.PlatformID]string),
	}
}

var _ ports.HandleDirectory = (*MemoryHandleDirectory)(nil)

// Register stores or replaces a user's handle for one platform.
func (d *MemoryHandleDirectory) Register(userID domain.UserID, platform domain.PlatformID, handle string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	byPlatform, ok := d.handles[userID]
	if !ok {
		byPlatform = make(map[domain.PlatformID]string)
		d.handles[userID] = byPlatform
	}
	byPlatform[platform] = handle
}

// RegisterAll stores every handle in the map for the user.
func (d *MemoryHandleDirectory) RegisterAll(userID domain.UserID, handles map[domain.PlatformID]string) {
	for platform, handle := range handles {
		d.Register(userID, platform, handle)
	}
}

// Lookup returns the user's handle for a platform. A missing handle is not an
// error; it comes back as the empty string.
func (d *MemoryHandleDirectory) Lookup(ctx context.Context, userID domain.UserID, platform domain.PlatformID) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	byPlatform, ok := d.handles[userID]
	if !ok {
		return "", nil
	}
	return byPlatform[platform], nil
}
