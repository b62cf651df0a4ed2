package utils

import "github.com/google/uuid"

// NewTraceID returns a time ordered UUIDv7 string, so trace ids sort by the
// moment the request entered the system. It falls back to a random v4 id when
// the v7 generator fails.
func NewTraceID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
