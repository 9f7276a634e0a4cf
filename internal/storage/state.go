package storage

import (
	"context"

	"github.com/iudanet/gridedit/internal/models"
)

//go:generate moq -out statestorage_mock.go . StateStorage

// StateStorage defines interface for persisting control session state between host calls
type StateStorage interface {
	// SaveState stores or replaces the state of a session
	SaveState(ctx context.Context, state *models.SessionState) error

	// GetState retrieves the state of a session
	// Returns ErrStateNotFound if session state doesn't exist
	GetState(ctx context.Context, sessionID string) (*models.SessionState, error)

	// DeleteState removes the state of a session (control teardown)
	DeleteState(ctx context.Context, sessionID string) error

	// ListSessions returns ids of all stored sessions
	ListSessions(ctx context.Context) ([]string, error)
}
