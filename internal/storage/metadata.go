package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveCurrentSession remembers the session used by default
	SaveCurrentSession(ctx context.Context, sessionID string) error

	// GetCurrentSession returns the session used by default
	// Returns ErrSessionNotSet if no session was saved yet
	GetCurrentSession(ctx context.Context) (string, error)
}
