package domain

import (
	"time"
)

type EventID string
type UserID string
type SessionID string
type CollaboratorID string
type PlatformID string

// EventStatus is the persistence-owned lifecycle of an event. The coordinator
// never advances it; it only reads it.
type EventStatus string

const (
	EventStatusPlanning  EventStatus = "planning"
	EventStatusActive    EventStatus = "active"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// StreamEvent is one planned collaborative broadcast with a creator and a
// target platform list. Identity is immutable after creation.
type StreamEvent struct {
	ID                EventID
	CreatorID         UserID
	Title             string
	ContentType       string
	ScheduledAt       time.Time
	EstimatedDuration time.Duration
	Platforms         []PlatformID
	Status            EventStatus
	CreatedAt         time.Time
}

// EventDraft carries caller-supplied attributes for event creation.
type EventDraft struct {
	Title             string
	ContentType       string
	ScheduledAt       time.Time
	EstimatedDuration time.Duration
	Platforms         []PlatformID
}
