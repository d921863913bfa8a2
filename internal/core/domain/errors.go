package domain

import "errors"

// Not-found class: the referenced entity does not exist.
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrSessionNotFound      = errors.New("no active session for event")
	ErrCollaboratorNotFound = errors.New("collaborator not found")
)

// Illegal-state class: the entity exists but coordination cannot act on it.
var (
	ErrNoActiveSession = errors.New("coordination requires an active session")
	ErrNoActiveHost    = errors.New("session has no resolvable host")
)
