package newsapi

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when a request is attempted without a usable
// credential.
var ErrMissingAPIKey = errors.New("newsapi: missing or placeholder API key")

// StatusError reports a non-success HTTP status from the API.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Network error: %d", e.StatusCode)
}

// APIError reports an error payload ({"status":"error"}) from the API.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "API returned an error"
	}
	return e.Message
}
