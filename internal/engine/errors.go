package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for the analytics core. Callers branch with errors.Is; the
// handler layer maps them to HTTP status codes.
var (
	// ErrInsufficientData means the history is below the minimum threshold.
	// Fatal for the call and surfaced verbatim to the user; never retried.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidParameter means the request itself is malformed.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUpstreamData wraps a collaborator failure. Propagated unchanged;
	// retry policy belongs to the data-access layer, not the engine.
	ErrUpstreamData = errors.New("upstream data error")
)

// insufficientDataf builds an ErrInsufficientData with a user-visible detail.
func insufficientDataf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInsufficientData, fmt.Sprintf(format, args...))
}

// invalidParameterf builds an ErrInvalidParameter with detail.
func invalidParameterf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
