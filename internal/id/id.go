package id

import "github.com/google/uuid"

// GenerateID returns a random (version 4) UUID string.
func GenerateID() string {
	return uuid.NewString()
}
