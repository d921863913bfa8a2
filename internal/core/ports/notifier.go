package ports

import "costream/internal/core/domain"

// Notifier pushes coordination progress to local subscribers. The transport is
// up to the host application; a no-op implementation is valid.
type Notifier interface {
	PublishPhaseChange(eventID domain.EventID, phase domain.SessionPhase, statuses map[domain.PlatformID]domain.PlatformStatus)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) PublishPhaseChange(domain.EventID, domain.SessionPhase, map[domain.PlatformID]domain.PlatformStatus) {
}
