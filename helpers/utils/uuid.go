package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID returns a random (v4) UUID string.
func GenerateUUID() string {
	return uuid.NewString()
}

// GenerateShortID returns the first 8 hex characters of a fresh UUID.
func GenerateShortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// IsValidRequestID reports whether id is a UUID a client may propagate
// through X-Request-ID.
func IsValidRequestID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
