package storage

import "errors"

// Common storage errors
var (
	// ErrStateNotFound indicates that no session state exists for the session id
	ErrStateNotFound = errors.New("session state not found")

	// ErrSessionNotSet indicates that no current session was recorded yet
	ErrSessionNotSet = errors.New("current session not set")

	// ErrDatasetNotFound indicates that the dataset does not exist
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrRowNotFound indicates that a patched row does not exist in the dataset
	ErrRowNotFound = errors.New("row not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
