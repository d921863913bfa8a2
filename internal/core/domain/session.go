package domain

import "time"

// SessionPhase is the coordination state of a session. PhaseNotStarted is the
// implicit phase reported when no active session exists for an event.
type SessionPhase string

const (
	PhaseNotStarted  SessionPhase = "not_started"
	PhasePreparation SessionPhase = "preparation"
	PhaseLive        SessionPhase = "live"
	PhaseBreak       SessionPhase = "break"
	PhaseEnded       SessionPhase = "ended"
)

// CoordinationSession is the live-coordination record for one event. At most
// one session per event is held in the active registry at any time.
type CoordinationSession struct {
	ID               SessionID
	EventID          EventID
	Phase            SessionPhase
	HostID           UserID
	StartedAt        time.Time
	PlatformStatuses map[PlatformID]PlatformStatus
}

// Clone returns a deep copy safe to hand across goroutine boundaries.
func (s *CoordinationSession) Clone() *CoordinationSession {
	if s == nil {
		return nil
	}
	clone := *s
	if s.PlatformStatuses != nil {
		clone.PlatformStatuses = make(map[PlatformID]PlatformStatus, len(s.PlatformStatuses))
		for platform, status := range s.PlatformStatuses {
			clone.PlatformStatuses[platform] = status
		}
	}
	return &clone
}

// SessionPatch is a partial update applied through the session repository.
// Nil fields are left untouched.
type SessionPatch struct {
	Phase            *SessionPhase
	PlatformStatuses map[PlatformID]PlatformStatus
}

// SessionHealth is a derived summary computed at read time.
type SessionHealth struct {
	Overall             string        `json:"overall"`
	AverageResponseTime time.Duration `json:"average_response_time"`
	LastActivityTime    time.Time     `json:"last_activity_time"`
}

// CoordinationStatus is the aggregate view returned by getStatus. It is always
// well-defined, even for events that never started a session.
type CoordinationStatus struct {
	Session             *CoordinationSession          `json:"session,omitempty"`
	Phase               SessionPhase                  `json:"phase"`
	ActiveCollaborators []*Collaborator               `json:"active_collaborators"`
	PlatformStatuses    map[PlatformID]PlatformStatus `json:"platform_statuses"`
	Health              SessionHealth                 `json:"health"`
}
