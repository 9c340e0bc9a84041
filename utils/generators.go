package utils

import "github.com/google/uuid"

// GenerateID generates a random ID for entities
func GenerateID() string {
	return uuid.NewString()
}

// IsID reports whether s looks like an ID produced by GenerateID
func IsID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
