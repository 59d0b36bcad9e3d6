package pkguid

import "github.com/google/uuid"

// UUID generates time-ordered UUIDv7 strings, so run IDs sort by start time.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string.
func (u *UUID) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
