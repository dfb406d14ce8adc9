package adapter

import (
	"errors"
	"fmt"
)

// ErrUnsupportedAction is reported for a missing or unrecognized action.
var ErrUnsupportedAction = errors.New("Unsupported MCP action")

// ValidationError represents a command that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError is returned by a SearchClient when the upstream call fails,
// either with a non-2xx status or at the network level.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("search API error (status %d): %s", e.StatusCode, e.Body)
}

// Unwrap returns the underlying network error, if any.
func (e *TransportError) Unwrap() error {
	return e.Err
}
