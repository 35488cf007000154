package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driving"
)

// Ensure AdminService implements the interface.
var _ driving.AdminService = (*AdminService)(nil)

// AdminService manages backend reference data on behalf of admin sessions.
type AdminService struct {
	client  driven.ResourceClient
	session driving.SessionService
}

// NewAdminService creates an admin service.
func NewAdminService(client driven.ResourceClient, session driving.SessionService) *AdminService {
	return &AdminService{client: client, session: session}
}

// List returns all records of a resource.
func (s *AdminService) List(ctx context.Context, resource domain.Resource) ([]domain.Record, error) {
	if err := s.guard(ctx, resource); err != nil {
		return nil, err
	}
	return s.client.List(ctx, resource)
}

// Get returns one record.
func (s *AdminService) Get(ctx context.Context, resource domain.Resource, id string) (domain.Record, error) {
	if err := s.guard(ctx, resource); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.client.Get(ctx, resource, id)
}

// Create validates and stores a new record.
func (s *AdminService) Create(ctx context.Context, resource domain.Resource, rec domain.Record) (domain.Record, error) {
	if err := s.guard(ctx, resource); err != nil {
		return nil, err
	}
	if err := domain.ValidateRecord(resource, rec, true); err != nil {
		return nil, err
	}
	return s.client.Create(ctx, resource, rec)
}

// Update validates and modifies a record.
func (s *AdminService) Update(
	ctx context.Context, resource domain.Resource, id string, rec domain.Record,
) (domain.Record, error) {
	if err := s.guard(ctx, resource); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := domain.ValidateRecord(resource, rec, false); err != nil {
		return nil, err
	}
	return s.client.Update(ctx, resource, id, rec)
}

// Delete removes a record.
func (s *AdminService) Delete(ctx context.Context, resource domain.Resource, id string) error {
	if err := s.guard(ctx, resource); err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}
	return s.client.Delete(ctx, resource, id)
}

func (s *AdminService) guard(ctx context.Context, resource domain.Resource) error {
	if !resource.IsValid() {
		return fmt.Errorf("%w: unknown resource %q", domain.ErrInvalidInput, resource)
	}
	if s.client == nil {
		return fmt.Errorf("admin: backend %w", domain.ErrNotConfigured)
	}
	if s.session == nil {
		return domain.ErrUnauthorized
	}
	return s.session.RequireAdmin(ctx)
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	return nil
}
