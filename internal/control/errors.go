package control

import "errors"

// Control errors
var (
	// ErrReadOnly indicates that the grid is read-only and edits are rejected
	ErrReadOnly = errors.New("grid is read-only")

	// ErrEmptyField indicates an edit event without a field name
	ErrEmptyField = errors.New("edit event has no field")

	// ErrEmptyRow indicates an edit event without a row identity
	ErrEmptyRow = errors.New("edit event has no row id")
)
