package driven

import (
	"context"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// SessionStore persists the client-side session (token and admin flag).
type SessionStore interface {
	// Load returns the stored session.
	// Returns nil and no error if no session is stored.
	Load(ctx context.Context) (*domain.Session, error)

	// Save replaces the stored session.
	Save(ctx context.Context, session *domain.Session) error

	// Clear removes the stored session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
