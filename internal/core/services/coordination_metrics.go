package services

import (
	"sync"
	"time"

	"costream/internal/core/domain"
)

// CoordinationMetrics tracks per-event fan-out outcomes in memory and derives
// the health summary exposed through getStatus.
type CoordinationMetrics struct {
	mu sync.RWMutex

	attemptCount  map[domain.EventID]int
	errorCount    map[domain.EventID]int
	totalDuration map[domain.EventID]time.Duration
	lastActivity  map[domain.EventID]time.Time
}

func NewCoordinationMetrics() *CoordinationMetrics {
	return &CoordinationMetrics{
		attemptCount:  make(map[domain.EventID]int),
		errorCount:    make(map[domain.EventID]int),
		totalDuration: make(map[domain.EventID]time.Duration),
		lastActivity:  make(map[domain.EventID]time.Time),
	}
}

func (m *CoordinationMetrics) RecordAttempt(eventID domain.EventID, result domain.PlatformResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attemptCount[eventID]++
	m.totalDuration[eventID] += result.Elapsed
	m.lastActivity[eventID] = time.Now()
	if result.Status == domain.PlatformError {
		m.errorCount[eventID]++
	}
}

func (m *CoordinationMetrics) RecordActivity(eventID domain.EventID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastActivity[eventID] = time.Now()
}

// Health derives the summary for one event. overall is "healthy" when every
// recorded attempt succeeded, "degraded" when some failed, and "unknown"
// before any fan-out has run.
func (m *CoordinationMetrics) Health(eventID domain.EventID) domain.SessionHealth {
	m.mu.RLock()
	defer m.mu.RUnlock()

	attempts := m.attemptCount[eventID]
	health := domain.SessionHealth{
		Overall:          "unknown",
		LastActivityTime: m.lastActivity[eventID],
	}
	if attempts == 0 {
		return health
	}

	health.AverageResponseTime = m.totalDuration[eventID] / time.Duration(attempts)
	if m.errorCount[eventID] == 0 {
		health.Overall = "healthy"
	} else {
		health.Overall = "degraded"
	}
	return health
}

func (m *CoordinationMetrics) Reset(eventID domain.EventID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.attemptCount, eventID)
	delete(m.errorCount, eventID)
	delete(m.totalDuration, eventID)
	delete(m.lastActivity, eventID)
}
