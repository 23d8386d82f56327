package storage

import "errors"

var (
	// ErrMissingField is returned when a required input is empty. Form
	// handlers treat it as a silent no-op.
	ErrMissingField = errors.New("required field is missing")

	// ErrInvalidResult is returned when a match result is not win or lose.
	ErrInvalidResult = errors.New("invalid match result")

	// ErrDeckNotFound is returned when a deck id does not resolve.
	ErrDeckNotFound = errors.New("deck not found")
)
