package evalconsole

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNoReport is returned when there is no cached report to copy or download.
	ErrNoReport = errors.New("no report content available")
	// ErrInFlight is returned when a view already has a request in flight.
	ErrInFlight = errors.New("request already in progress")
)

// APIError is a non-2xx response from an endpoint that reports failure through
// its HTTP status and a detail message.
type APIError struct {
	Endpoint   string // Request path, e.g. "/generate-test-cases"
	StatusCode int    // HTTP status code
	Detail     string // Value of the "detail" field, if any
}

// Error implements the error interface. The detail is returned verbatim so
// the user sees exactly what the backend reported.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%s request failed (HTTP %d)", e.Endpoint, e.StatusCode)
}

// BackendError is a failure reported in a {success: false} body.
type BackendError struct {
	Endpoint  string
	Message   string // Value of the "error" field
	Type      string // Value of the "error_type" field, if any
	RequestID string
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s reported failure", e.Endpoint)
}
