package entity

import "errors"

// Sentinel errors for feed retrieval. Infrastructure code wraps them with %w
// so callers can classify failures with errors.Is.
var (
	// ErrFeedFetchFailed indicates the feed could not be downloaded
	// (network error, timeout, non-2xx status or open circuit breaker).
	ErrFeedFetchFailed = errors.New("failed to fetch feed")

	// ErrInvalidFeedFormat indicates the feed body could not be parsed as RSS or Atom.
	ErrInvalidFeedFormat = errors.New("invalid feed format")
)

// ErrValidationFailed is joined with a ValidationError when input is rejected.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError describes a single rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error on field '" + e.Field + "': " + e.Message
}
