package domain

import "time"

type CollaboratorRole string

const (
	RoleHost     CollaboratorRole = "host"
	RoleCoStream CollaboratorRole = "co_stream"
	RoleGuest    CollaboratorRole = "guest"
)

type AcceptanceStatus string

const (
	AcceptanceInvited  AcceptanceStatus = "invited"
	AcceptanceAccepted AcceptanceStatus = "accepted"
	AcceptanceDeclined AcceptanceStatus = "declined"
)

// Collaborator is a user participating in an event. Platform handles and
// capabilities are structured in-process; serialization happens only at the
// repository boundary.
type Collaborator struct {
	ID              CollaboratorID
	EventID         EventID
	UserID          UserID
	Role            CollaboratorRole
	Status          AcceptanceStatus
	PlatformHandles map[PlatformID]string
	Capabilities    []string
	Availability    map[string]string
	JoinedAt        time.Time
}

// CollaboratorDraft carries caller-supplied attributes for adding a collaborator.
type CollaboratorDraft struct {
	UserID          UserID
	Role            CollaboratorRole
	Status          AcceptanceStatus
	PlatformHandles map[PlatformID]string
	Capabilities    []string
	Availability    map[string]string
}
