package domain

import (
	"errors"
)

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned for a disallowed bot status change
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrForbidden is returned when a caller does not own the resource
	ErrForbidden = errors.New("forbidden")
)
