package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return fmt.Sprintf("event_%s", uuid.NewString())
}

// GenerateSessionID generates a unique session ID
func GenerateSessionID() string {
	return fmt.Sprintf("session_%s", uuid.NewString())
}

// GenerateCollaboratorID generates a unique collaborator ID
func GenerateCollaboratorID() string {
	return fmt.Sprintf("collab_%s", uuid.NewString())
}
