package driving

import (
	"context"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// SessionService manages login state.
type SessionService interface {
	// Login authenticates and persists the session.
	Login(ctx context.Context, username, password string) (*domain.Session, error)

	// Logout clears the persisted session and resets session-scoped state.
	Logout(ctx context.Context) error

	// Current returns the active session, or nil when logged out.
	Current(ctx context.Context) (*domain.Session, error)

	// RequireAdmin returns domain.ErrUnauthorized or domain.ErrForbidden
	// unless an admin session is active.
	RequireAdmin(ctx context.Context) error
}
