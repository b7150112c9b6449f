package domain

import "github.com/google/uuid"

// generateID creates a new stable block identifier.
func generateID() string {
	return uuid.New().String()
}
