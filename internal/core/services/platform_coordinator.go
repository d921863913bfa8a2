package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"costream/internal/core/domain"
	"costream/internal/core/ports"

	"go.uber.org/zap"
)

// ClientRegistry selects a platform client by identifier. Adding a platform is
// a registration, not a coordinator change.
type ClientRegistry interface {
	Client(id domain.PlatformID) (ports.PlatformClient, bool)
}

type platformCoordinator struct {
	clients     ClientRegistry
	sessions    ports.SessionLookup
	eventRepo   ports.EventRepository
	collabRepo  ports.CollaboratorRepository
	sessionRepo ports.SessionRepository
	metrics     *CoordinationMetrics
	logger      *zap.SugaredLogger
}

func NewPlatformCoordinator(
	clients ClientRegistry,
	sessions ports.SessionLookup,
	eventRepo ports.EventRepository,
	collabRepo ports.CollaboratorRepository,
	sessionRepo ports.SessionRepository,
	metrics *CoordinationMetrics,
	logger *zap.SugaredLogger,
) ports.PlatformCoordinator {
	return &platformCoordinator{
		clients:     clients,
		sessions:    sessions,
		eventRepo:   eventRepo,
		collabRepo:  collabRepo,
		sessionRepo: sessionRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// Coordinate dispatches the platform action for a phase. Phases outside the
// three recognized triggers are no-ops, not errors.
func (p *platformCoordinator) Coordinate(ctx context.Context, eventID domain.EventID, phase domain.SessionPhase) error {
	switch phase {
	case domain.PhaseLive:
		return p.StartAll(ctx, eventID)
	case domain.PhaseBreak:
		return p.PauseAll(ctx, eventID)
	case domain.PhaseEnded:
		return p.EndAll(ctx, eventID)
	default:
		return nil
	}
}

// StartAll attempts the start/status action for every platform the event
// targets. Preconditions (active session with a host) are fatal and abort the
// whole call before any status is written; past that point each platform is
// attempted independently and a failure never aborts sibling attempts.
func (p *platformCoordinator) StartAll(ctx context.Context, eventID domain.EventID) error {
	return p.coordinatePass(ctx, eventID, "start")
}

// PauseAll re-probes every platform when the session drops to a break. The
// minimal client capability set has no pause verb, so the pass records the
// observed broadcast states and leaves pausing to the platforms themselves.
func (p *platformCoordinator) PauseAll(ctx context.Context, eventID domain.EventID) error {
	return p.coordinatePass(ctx, eventID, "pause")
}

// EndAll runs a final probe pass when the session ends so the persisted
// aggregate reflects each platform's closing state.
func (p *platformCoordinator) EndAll(ctx context.Context, eventID domain.EventID) error {
	return p.coordinatePass(ctx, eventID, "end")
}

func (p *platformCoordinator) coordinatePass(ctx context.Context, eventID domain.EventID, action string) error {
	session := p.sessions.GetActiveSession(eventID)
	if session == nil {
		return fmt.Errorf("cannot coordinate %s: %w", action, domain.ErrNoActiveSession)
	}
	if session.HostID == "" {
		return fmt.Errorf("cannot coordinate %s: %w", action, domain.ErrNoActiveHost)
	}

	event, err := p.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to load event for coordination: %w", err)
	}

	host, err := p.collabRepo.FindByEventAndUser(ctx, eventID, session.HostID)
	if err != nil {
		if errors.Is(err, domain.ErrCollaboratorNotFound) {
			return domain.ErrNoActiveHost
		}
		return fmt.Errorf("failed to resolve host collaborator: %w", err)
	}
	if host == nil || host.Status != domain.AcceptanceAccepted {
		return domain.ErrNoActiveHost
	}

	// Fan out: one attempt per configured platform, no more, no fewer. The
	// attempts run concurrently; the aggregate write below happens strictly
	// after every attempt has resolved.
	results := make([]domain.PlatformResult, len(event.Platforms))
	var wg sync.WaitGroup
	for i, platform := range event.Platforms {
		wg.Add(1)
		go func(i int, platform domain.PlatformID) {
			defer wg.Done()
			results[i] = p.attemptPlatform(ctx, platform, session.HostID)
		}(i, platform)
	}
	wg.Wait()

	statuses := make(map[domain.PlatformID]domain.PlatformStatus, len(results))
	for _, result := range results {
		statuses[result.Platform] = result.Status
		p.metrics.RecordAttempt(eventID, result)
		if result.Status == domain.PlatformError {
			p.logger.Warnw("platform attempt failed",
				"event_id", eventID,
				"platform", result.Platform,
				"action", action,
				"detail", result.Detail,
			)
		}
	}

	patch := domain.SessionPatch{PlatformStatuses: statuses}
	if err := p.sessionRepo.UpdateSession(ctx, session.ID, patch); err != nil {
		return fmt.Errorf("failed to persist platform statuses: %w", err)
	}
	p.sessions.ApplyPlatformStatuses(eventID, statuses)

	p.logger.Infow("platform coordination pass completed",
		"event_id", eventID,
		"action", action,
		"platforms", len(results),
	)
	return nil
}

// attemptPlatform is the per-platform boundary: any failure inside it becomes
// an error status and never propagates to sibling attempts.
func (p *platformCoordinator) attemptPlatform(ctx context.Context, platform domain.PlatformID, hostID domain.UserID) domain.PlatformResult {
	started := time.Now()
	result := domain.PlatformResult{Platform: platform}

	client, registered := p.clients.Client(platform)
	if !registered {
		result.Status = domain.PlatformUnsupported
		result.Elapsed = time.Since(started)
		return result
	}

	if !client.IsConfigured() {
		result.Status = domain.PlatformNeedsSetup
		result.Detail = "platform client not configured"
		result.Elapsed = time.Since(started)
		return result
	}

	identifier, err := client.ResolveHostIdentifier(ctx, hostID)
	if err != nil {
		result.Status = domain.PlatformError
		result.Detail = err.Error()
		result.Elapsed = time.Since(started)
		return result
	}
	if identifier == "" {
		result.Status = domain.PlatformNeedsSetup
		result.Detail = "host has no handle on this platform"
		result.Elapsed = time.Since(started)
		return result
	}

	status, err := client.GetLiveStatus(ctx, identifier)
	result.Elapsed = time.Since(started)
	switch {
	case err != nil:
		result.Status = domain.PlatformError
		result.Detail = err.Error()
	case status == nil:
		result.Status = domain.PlatformUnavailable
	case status.State == domain.LiveStateLive:
		result.Status = domain.PlatformLive
	default:
		result.Status = domain.PlatformReady
	}
	return result
}

// GetPlatformStatuses reads the last aggregate off the active session. The
// copy is taken under the registry lock, so a concurrent fan-out write is
// never observed mid-flight. Empty map when no session exists; never fails.
func (p *platformCoordinator) GetPlatformStatuses(ctx context.Context, eventID domain.EventID) map[domain.PlatformID]domain.PlatformStatus {
	return p.sessions.SnapshotPlatformStatuses(eventID)
}
