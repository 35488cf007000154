package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// Ensure APIError carries server messages to the core.
var _ domain.MessageError = (*APIError)(nil)

// APIError is a non-2xx response from the backend.
type APIError struct {
	// StatusCode is the HTTP status.
	StatusCode int

	// Message is the server-supplied message, if the body carried one.
	Message string

	// Err is the domain sentinel matching the status, if any.
	Err error
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// ServerMessage returns the server-supplied message.
func (e *APIError) ServerMessage() string {
	return e.Message
}

// Unwrap exposes the domain sentinel for errors.Is.
func (e *APIError) Unwrap() error {
	return e.Err
}

// errorBody covers the error shapes the backend uses.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Detail  string `json:"detail"`
}

// newAPIError builds an APIError from a response status and body.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Err: sentinelFor(status)}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, msg := range []string{parsed.Message, parsed.Error, parsed.Detail} {
			if msg = strings.TrimSpace(msg); msg != "" {
				apiErr.Message = msg
				break
			}
		}
	}
	return apiErr
}

func sentinelFor(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	default:
		return nil
	}
}
