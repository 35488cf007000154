package driving

import (
	"context"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// AdminService manages backend reference data. Every operation requires an
// admin session.
type AdminService interface {
	List(ctx context.Context, resource domain.Resource) ([]domain.Record, error)
	Get(ctx context.Context, resource domain.Resource, id string) (domain.Record, error)
	Create(ctx context.Context, resource domain.Resource, rec domain.Record) (domain.Record, error)
	Update(ctx context.Context, resource domain.Resource, id string, rec domain.Record) (domain.Record, error)
	Delete(ctx context.Context, resource domain.Resource, id string) error
}
