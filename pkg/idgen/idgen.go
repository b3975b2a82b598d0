package idgen

import (
	"fmt"

	"github.com/google/uuid"
)

// Prefix for all generated task IDs.
const Prefix = "t"

// Generate creates a new unique ID in the format "t-<uuid>".
// Version 7 UUIDs embed a millisecond timestamp followed by random bits, so
// IDs sort by creation time and do not collide under rapid creation.
func Generate() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate ID: %w", err)
	}
	return fmt.Sprintf("%s-%s", Prefix, id.String()), nil
}

// MustGenerate creates a new unique ID, panicking on error.
func MustGenerate() string {
	id, err := Generate()
	if err != nil {
		panic(err)
	}
	return id
}
