package driven

import (
	"context"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// InteractionBackend resolves interactions between selected entities.
type InteractionBackend interface {
	// CheckInteractions issues one check request. Failures that carry a
	// server-supplied message implement domain.MessageError.
	CheckInteractions(ctx context.Context, req domain.InteractionCheckRequest) (*domain.InteractionCheckResult, error)
}

// AuthBackend exchanges credentials for a session.
type AuthBackend interface {
	// Login returns a session for valid credentials.
	// Returns domain.ErrInvalidCredentials when the backend rejects them.
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
}

// ResourceClient performs CRUD against the backend REST resources.
type ResourceClient interface {
	// List returns all records of a resource.
	List(ctx context.Context, resource domain.Resource) ([]domain.Record, error)

	// Get returns one record. Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, resource domain.Resource, id string) (domain.Record, error)

	// Create stores a new record and returns it as saved by the backend.
	Create(ctx context.Context, resource domain.Resource, rec domain.Record) (domain.Record, error)

	// Update modifies a record and returns it as saved by the backend.
	Update(ctx context.Context, resource domain.Resource, id string, rec domain.Record) (domain.Record, error)

	// Delete removes a record.
	Delete(ctx context.Context, resource domain.Resource, id string) error
}
