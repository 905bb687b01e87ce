package directions

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery wraps query validation failures. No request is sent.
var ErrInvalidQuery = errors.New("invalid directions query")

// TransportError is a network failure or a non-2xx HTTP response.
// URL never contains the API key.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("directions transport: HTTP %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("directions transport: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError means the body could not be read as a directions document.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed directions response: %s: %v", e.Reason, e.Err)
	}
	return "malformed directions response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// APIError is a well-formed response whose status is neither OK nor an empty result.
type APIError struct {
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("directions API status %s: %s", e.Status, e.Message)
	}
	return "directions API status " + e.Status
}

// MissingRouteError is returned when the response has no route at Index.
type MissingRouteError struct {
	Index     int
	Available int
}

func (e *MissingRouteError) Error() string {
	if e.Available == 0 {
		return "directions response contains no routes"
	}
	return fmt.Sprintf("route %d requested but response has %d route(s)", e.Index, e.Available)
}

func malformed(reason string, err error) error {
	return &MalformedResponseError{Reason: reason, Err: err}
}
