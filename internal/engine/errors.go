package engine

import "errors"

// Caller errors. Validation runs before any state is touched, so an
// operation failing with one of these leaves the store unchanged.
var (
	ErrNotFound        = errors.New("session not found")
	ErrInvalidRange    = errors.New("start time must be before end time")
	ErrInvalidDuration = errors.New("duration must be positive")
)
