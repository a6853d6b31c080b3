package id

import "github.com/google/uuid"

// New returns a fresh record identifier. Identifiers are opaque random UUIDs;
// uniqueness comes from the generation scheme alone and is never checked
// against existing data.
func New() uuid.UUID {
	return uuid.New()
}

// Parse converts the string form of an identifier back into a UUID.
func Parse(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}
