package client

import (
	"errors"
	"fmt"
)

// Sentinel errors for API operations
var (
	// ErrSelectorNotFound indicates that the requested selector does not exist
	ErrSelectorNotFound = errors.New("selector not found")

	// ErrInvalidRequest indicates that the server rejected the request as malformed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrAlreadyExists indicates a uniqueness conflict on create or update
	ErrAlreadyExists = errors.New("selector already exists")

	// ErrServiceUnavailable indicates that the service is unreachable or returned an error
	ErrServiceUnavailable = errors.New("selector-manager service unavailable")

	// ErrClientInternal indicates that an internal error occurred in the client
	ErrClientInternal = errors.New("client internal error")
)

// APIError carries the problem document returned by the server.
type APIError struct {
	Status int
	Title  string
	Detail string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API error (%d): %s: %s", e.Status, e.Title, e.Detail)
	}
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Title)
}
