package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidIndex indicates a selection position outside the current selection.
	ErrInvalidIndex = errors.New("invalid selection index")

	// ErrNotConfigured indicates a required endpoint or setting is missing.
	ErrNotConfigured = errors.New("not configured")

	// Check Errors.

	// ErrCheckInFlight indicates a check cycle is already pending.
	// The new trigger is ignored, not queued.
	ErrCheckInFlight = errors.New("interaction check already in progress")

	// ErrNotCheckMode indicates the active mode does not perform interaction checks.
	ErrNotCheckMode = errors.New("mode does not support interaction checks")

	// Authentication Errors.

	// ErrUnauthorized indicates no valid session is available.
	ErrUnauthorized = errors.New("not logged in")

	// ErrForbidden indicates the session lacks admin rights.
	ErrForbidden = errors.New("admin access required")

	// ErrSessionExpired indicates the stored session token has expired.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidCredentials indicates the backend rejected a login.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrRateLimited indicates a local or remote rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// MessageError is implemented by errors that carry a human-readable message
// supplied by a remote service. Check cycles prefer this message over the
// error text when reporting failures.
type MessageError interface {
	error
	ServerMessage() string
}

// ServerMessage extracts the remote message from err, if any error in its
// chain carries one.
func ServerMessage(err error) string {
	var me MessageError
	if errors.As(err, &me) {
		return me.ServerMessage()
	}
	return ""
}
