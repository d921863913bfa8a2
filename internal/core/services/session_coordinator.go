package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"costream/internal/core/domain"
	"costream/internal/core/ports"
	"costream/pkg/utils"

	"go.uber.org/zap"
)

type SessionCoordinator struct {
	sessionRepo ports.SessionRepository
	eventRepo   ports.EventRepository
	collabRepo  ports.CollaboratorRepository
	metrics     *CoordinationMetrics
	notifier    ports.Notifier
	logger      *zap.SugaredLogger

	// platformCoord is attached after construction because the platform
	// coordinator needs this service as its session accessor.
	platformCoord ports.PlatformCoordinator

	// active is the one piece of mutable shared state: event id -> session.
	// This service is its sole writer; the platform coordinator reads it
	// through the SessionLookup accessor.
	mu     sync.RWMutex
	active map[domain.EventID]*domain.CoordinationSession

	// eventLocks serializes updatePhase/fan-out per event. Keys are
	// independent, so there is no cross-event locking.
	lockMu     sync.Mutex
	eventLocks map[domain.EventID]*sync.Mutex
}

func NewSessionCoordinator(
	sessionRepo ports.SessionRepository,
	eventRepo ports.EventRepository,
	collabRepo ports.CollaboratorRepository,
	metrics *CoordinationMetrics,
	notifier ports.Notifier,
	logger *zap.SugaredLogger,
) *SessionCoordinator {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &SessionCoordinator{
		sessionRepo: sessionRepo,
		eventRepo:   eventRepo,
		collabRepo:  collabRepo,
		metrics:     metrics,
		notifier:    notifier,
		logger:      logger,
		active:      make(map[domain.EventID]*domain.CoordinationSession),
		eventLocks:  make(map[domain.EventID]*sync.Mutex),
	}
}

// AttachPlatformCoordinator wires the platform coordinator in after both
// services exist. Must be called before the first phase transition.
func (s *SessionCoordinator) AttachPlatformCoordinator(pc ports.PlatformCoordinator) {
	s.platformCoord = pc
}

func (s *SessionCoordinator) eventLock(eventID domain.EventID) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	lock, exists := s.eventLocks[eventID]
	if !exists {
		lock = &sync.Mutex{}
		s.eventLocks[eventID] = lock
	}
	return lock
}

// StartSession creates a session in the preparation phase and registers it as
// the event's active session. Calling it again for the same event creates a
// second persisted row and only replaces the registry entry; callers must not
// assume exactly-once semantics. The host's collaborator acceptance is not
// checked here: every coordination pass re-validates it, so a session started
// for a non-accepted host fails with ErrNoActiveHost at the first phase
// trigger rather than at creation.
func (s *SessionCoordinator) StartSession(ctx context.Context, eventID domain.EventID, hostUserID domain.UserID) (*domain.CoordinationSession, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}

	session := &domain.CoordinationSession{
		ID:               domain.SessionID(utils.GenerateSessionID()),
		EventID:          eventID,
		Phase:            domain.PhasePreparation,
		HostID:           hostUserID,
		StartedAt:        time.Now(),
		PlatformStatuses: make(map[domain.PlatformID]domain.PlatformStatus),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.mu.Lock()
	s.active[eventID] = session
	s.mu.Unlock()

	s.metrics.RecordActivity(eventID)
	s.logger.Infow("coordination session started",
		"event_id", eventID,
		"session_id", session.ID,
		"host_id", hostUserID,
	)
	// The registry keeps the live struct; callers get their own copy.
	return session.Clone(), nil
}

// UpdatePhase persists the new phase, updates the registry entry and triggers
// platform coordination before returning. A coordination failure is logged but
// does not roll back the phase change; phase state and platform state may
// diverge transiently and are reconciled at read time.
func (s *SessionCoordinator) UpdatePhase(ctx context.Context, eventID domain.EventID, phase domain.SessionPhase, updatedBy domain.UserID) error {
	lock := s.eventLock(eventID)
	lock.Lock()
	defer lock.Unlock()

	session := s.GetActiveSession(eventID)
	if session == nil {
		return domain.ErrSessionNotFound
	}

	patch := domain.SessionPatch{Phase: &phase}
	if err := s.sessionRepo.UpdateSession(ctx, session.ID, patch); err != nil {
		return fmt.Errorf("failed to persist phase %s: %w", phase, err)
	}

	s.mu.Lock()
	session.Phase = phase
	s.mu.Unlock()

	s.metrics.RecordActivity(eventID)
	s.logger.Infow("session phase updated",
		"event_id", eventID,
		"session_id", session.ID,
		"phase", phase,
		"updated_by", updatedBy,
	)

	if err := s.platformCoord.Coordinate(ctx, eventID, phase); err != nil {
		s.logger.Warnw("platform coordination failed after phase change",
			"event_id", eventID,
			"phase", phase,
			"error", err,
		)
	}

	s.notifier.PublishPhaseChange(eventID, phase, s.platformCoord.GetPlatformStatuses(ctx, eventID))
	return nil
}

// GetStatus is always safe to call. Events without an active session get a
// well-defined not-started status instead of an error. The returned session is
// a snapshot taken under the registry lock, so concurrent phase transitions
// never show up mid-write.
func (s *SessionCoordinator) GetStatus(ctx context.Context, eventID domain.EventID) (*domain.CoordinationStatus, error) {
	session := s.snapshotSession(eventID)
	if session == nil {
		return &domain.CoordinationStatus{
			Phase:               domain.PhaseNotStarted,
			ActiveCollaborators: []*domain.Collaborator{},
			PlatformStatuses:    map[domain.PlatformID]domain.PlatformStatus{},
			Health:              domain.SessionHealth{Overall: "unknown"},
		}, nil
	}

	activeCollabs := []*domain.Collaborator{}
	collabs, err := s.collabRepo.FindByEvent(ctx, eventID)
	if err != nil {
		// Status queries stay safe even when storage is unhappy.
		s.logger.Warnw("failed to load collaborators for status", "event_id", eventID, "error", err)
	} else {
		for _, collab := range collabs {
			if collab.Status == domain.AcceptanceAccepted {
				activeCollabs = append(activeCollabs, collab)
			}
		}
	}

	return &domain.CoordinationStatus{
		Session:             session,
		Phase:               session.Phase,
		ActiveCollaborators: activeCollabs,
		PlatformStatuses:    s.platformCoord.GetPlatformStatuses(ctx, eventID),
		Health:              s.metrics.Health(eventID),
	}, nil
}

// GetActiveSession is a registry lookup only; no persistence read. The result
// is the live registry struct: only its immutable identity fields are safe to
// read without coordination. Use snapshotSession or SnapshotPlatformStatuses
// for the mutable ones.
func (s *SessionCoordinator) GetActiveSession(eventID domain.EventID) *domain.CoordinationSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active[eventID]
}

// snapshotSession copies the active session under the registry lock. Nil when
// the event has no active session.
func (s *SessionCoordinator) snapshotSession(eventID domain.EventID) *domain.CoordinationSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active[eventID].Clone()
}

// SnapshotPlatformStatuses copies the active session's status aggregate under
// the registry lock. Empty map, never nil, when no session exists.
func (s *SessionCoordinator) SnapshotPlatformStatuses(eventID domain.EventID) map[domain.PlatformID]domain.PlatformStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session := s.active[eventID]
	if session == nil || session.PlatformStatuses == nil {
		return map[domain.PlatformID]domain.PlatformStatus{}
	}
	statuses := make(map[domain.PlatformID]domain.PlatformStatus, len(session.PlatformStatuses))
	for platform, status := range session.PlatformStatuses {
		statuses[platform] = status
	}
	return statuses
}

// ApplyPlatformStatuses installs a fan-out aggregate on the active session.
// Keeping the write here preserves the single-writer ownership of the registry.
func (s *SessionCoordinator) ApplyPlatformStatuses(eventID domain.EventID, statuses map[domain.PlatformID]domain.PlatformStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, exists := s.active[eventID]; exists {
		session.PlatformStatuses = statuses
	}
}

// CloseSession drops the event's registry entry once the event is over. The
// persisted session rows remain for history.
func (s *SessionCoordinator) CloseSession(eventID domain.EventID) {
	s.mu.Lock()
	delete(s.active, eventID)
	s.mu.Unlock()

	s.metrics.Reset(eventID)
	s.logger.Infow("coordination session closed", "event_id", eventID)
}
