package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable reports a transport-level failure: the request never
	// produced a server response.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized reports a 401-class response. The client's registered
	// unauthorized handler has already been invoked by the time a caller
	// sees this error.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a server-reported failure decoded from the backend's
// {"message": ...} error body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// FailureMessage extracts a human-readable message from an API call error,
// falling back to the supplied default for transport and decode failures.
func FailureMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
