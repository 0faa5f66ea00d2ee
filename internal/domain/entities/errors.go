package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrTransientFetch matches any network or non-2xx provider failure other than 404.
	ErrTransientFetch = errors.New("transient fetch error")

	// ErrMalformedState reports persisted state that could not be parsed.
	ErrMalformedState = errors.New("malformed persisted state")

	// ErrSelectionTooSmall is returned when a comparison is requested for fewer than MinCompare entities.
	ErrSelectionTooSmall = errors.New("comparison needs at least 2 selected entities")

	// ErrInsufficientData is returned when fewer than MinCompare selected entities could be resolved.
	ErrInsufficientData = errors.New("insufficient data to compare")
)

// FetchError describes a failed provider request.
type FetchError struct {
	URL        string
	StatusCode int   // 0 when no response was received
	Err        error // underlying cause, if any
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes every FetchError match ErrTransientFetch.
func (e *FetchError) Is(target error) bool {
	return target == ErrTransientFetch
}
