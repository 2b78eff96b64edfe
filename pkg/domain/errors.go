package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidDuration is returned when a trip duration is not a positive whole number of days.
var ErrInvalidDuration = errors.New("trip duration must be a positive whole number of days")

// ErrCacheMiss is returned by report caches when no entry exists for a key.
var ErrCacheMiss = errors.New("report not found in cache")

// ValidationError describes a request field that could not be accepted.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, fmt.Sprint(e.Value), e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
