package api

import "fmt"

// Error represents a non-2xx response from the counselor API.
type Error struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("API request failed with status %d", e.StatusCode)
}

// IsNotFound checks if the error indicates a not found response
func (e *Error) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsServerError checks if the error indicates a backend failure
func (e *Error) IsServerError() bool {
	return e.StatusCode >= 500
}
