package services

import (
	"context"
	"sync"

	"costream/internal/core/domain"
	"costream/internal/core/ports"
)

// In-memory repository fakes with injectable failures.

type fakeEventRepo struct {
	mu         sync.Mutex
	events     map[domain.EventID]*domain.StreamEvent
	createErr  error
	getByIDErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[domain.EventID]*domain.StreamEvent)}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *domain.StreamEvent) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id domain.EventID) (*domain.StreamEvent, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) ListByStatus(ctx context.Context, status domain.EventStatus) ([]*domain.StreamEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.StreamEvent
	for _, event := range f.events {
		if event.Status == status {
			out = append(out, event)
		}
	}
	return out, nil
}

type fakeCollabRepo struct {
	mu        sync.Mutex
	collabs   map[domain.CollaboratorID]*domain.Collaborator
	createErr error
	findErr   error
}

func newFakeCollabRepo() *fakeCollabRepo {
	return &fakeCollabRepo{collabs: make(map[domain.CollaboratorID]*domain.Collaborator)}
}

func (f *fakeCollabRepo) Create(ctx context.Context, collab *domain.Collaborator) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.collabs[collab.ID] = collab
	return nil
}

func (f *fakeCollabRepo) FindByEvent(ctx context.Context, eventID domain.EventID) ([]*domain.Collaborator, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Collaborator
	for _, collab := range f.collabs {
		if collab.EventID == eventID {
			out = append(out, collab)
		}
	}
	return out, nil
}

func (f *fakeCollabRepo) FindByEventAndUser(ctx context.Context, eventID domain.EventID, userID domain.UserID) (*domain.Collaborator, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, collab := range f.collabs {
		if collab.EventID == eventID && collab.UserID == userID {
			return collab, nil
		}
	}
	return nil, domain.ErrCollaboratorNotFound
}

type fakeSessionRepo struct {
	mu        sync.Mutex
	sessions  map[domain.SessionID]*domain.CoordinationSession
	created   int
	createErr error
	updateErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[domain.SessionID]*domain.CoordinationSession)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *domain.CoordinationSession) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	// Stored copies never alias the caller's struct, like the real repos.
	f.sessions[session.ID] = session.Clone()
	f.created++
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id domain.SessionID) (*domain.CoordinationSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (f *fakeSessionRepo) UpdateSession(ctx context.Context, id domain.SessionID, patch domain.SessionPatch) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	if patch.Phase != nil {
		session.Phase = *patch.Phase
	}
	if patch.PlatformStatuses != nil {
		session.PlatformStatuses = patch.PlatformStatuses
	}
	return nil
}

// fakePlatformClient is a scriptable client for fan-out tests.

type fakePlatformClient struct {
	id         domain.PlatformID
	configured bool
	handle     string
	resolveErr error
	status     *domain.LiveStatus
	statusErr  error
}

func (c *fakePlatformClient) Platform() domain.PlatformID { return c.id }
func (c *fakePlatformClient) IsConfigured() bool          { return c.configured }

func (c *fakePlatformClient) ResolveHostIdentifier(ctx context.Context, userID domain.UserID) (string, error) {
	return c.handle, c.resolveErr
}

func (c *fakePlatformClient) GetLiveStatus(ctx context.Context, identifier string) (*domain.LiveStatus, error) {
	return c.status, c.statusErr
}

type fakeClientRegistry map[domain.PlatformID]ports.PlatformClient

func (f fakeClientRegistry) Client(id domain.PlatformID) (ports.PlatformClient, bool) {
	client, ok := f[id]
	return client, ok
}

// fakeSessionLookup stands in for the session coordinator on the platform side.

type fakeSessionLookup struct {
	mu      sync.Mutex
	session *domain.CoordinationSession
	applied map[domain.PlatformID]domain.PlatformStatus
}

func (f *fakeSessionLookup) GetActiveSession(eventID domain.EventID) *domain.CoordinationSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

func (f *fakeSessionLookup) SnapshotPlatformStatuses(eventID domain.EventID) map[domain.PlatformID]domain.PlatformStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil || f.session.PlatformStatuses == nil {
		return map[domain.PlatformID]domain.PlatformStatus{}
	}
	statuses := make(map[domain.PlatformID]domain.PlatformStatus, len(f.session.PlatformStatuses))
	for platform, status := range f.session.PlatformStatuses {
		statuses[platform] = status
	}
	return statuses
}

func (f *fakeSessionLookup) ApplyPlatformStatuses(eventID domain.EventID, statuses map[domain.PlatformID]domain.PlatformStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = statuses
	if f.session != nil {
		f.session.PlatformStatuses = statuses
	}
}

// fakePlatformCoordinator stands in for the platform side on the session side.

type fakePlatformCoordinator struct {
	mu            sync.Mutex
	coordinateErr error
	statuses      map[domain.PlatformID]domain.PlatformStatus
	coordinated   []domain.SessionPhase
}

func (f *fakePlatformCoordinator) Coordinate(ctx context.Context, eventID domain.EventID, phase domain.SessionPhase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.coordinated = append(f.coordinated, phase)
	return f.coordinateErr
}

func (f *fakePlatformCoordinator) StartAll(ctx context.Context, eventID domain.EventID) error {
	return f.Coordinate(ctx, eventID, domain.PhaseLive)
}

func (f *fakePlatformCoordinator) PauseAll(ctx context.Context, eventID domain.EventID) error {
	return f.Coordinate(ctx, eventID, domain.PhaseBreak)
}

func (f *fakePlatformCoordinator) EndAll(ctx context.Context, eventID domain.EventID) error {
	return f.Coordinate(ctx, eventID, domain.PhaseEnded)
}

func (f *fakePlatformCoordinator) GetPlatformStatuses(ctx context.Context, eventID domain.EventID) map[domain.PlatformID]domain.PlatformStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statuses == nil {
		return map[domain.PlatformID]domain.PlatformStatus{}
	}
	return f.statuses
}

type fakeMatchFinder struct {
	lastRequest domain.MatchRequest
	partners    []domain.PartnerMatch
	err         error
}

func (f *fakeMatchFinder) FindPartners(ctx context.Context, req domain.MatchRequest) ([]domain.PartnerMatch, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return f.partners, nil
}

// recordingNotifier captures published phase changes.

type recordingNotifier struct {
	mu     sync.Mutex
	phases []domain.SessionPhase
}

func (n *recordingNotifier) PublishPhaseChange(eventID domain.EventID, phase domain.SessionPhase, statuses map[domain.PlatformID]domain.PlatformStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.phases = append(n.phases, phase)
}
