package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// List returns all records of a resource. Both a bare array and a
// {"data": [...]} envelope are accepted.
func (c *Client) List(ctx context.Context, resource domain.Resource) ([]domain.Record, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, resource.Path(), nil, &raw, true); err != nil {
		return nil, err
	}

	records := []domain.Record{}
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}

	var envelope struct {
		Data []domain.Record `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding %s list: %w", resource, err)
	}
	if envelope.Data == nil {
		return []domain.Record{}, nil
	}
	return envelope.Data, nil
}

// Get returns one record.
func (c *Client) Get(ctx context.Context, resource domain.Resource, id string) (domain.Record, error) {
	var rec domain.Record
	if err := c.do(ctx, http.MethodGet, recordPath(resource, id), nil, &rec, true); err != nil {
		return nil, err
	}
	return rec, nil
}

// Create stores a new record.
func (c *Client) Create(ctx context.Context, resource domain.Resource, rec domain.Record) (domain.Record, error) {
	var saved domain.Record
	if err := c.do(ctx, http.MethodPost, resource.Path(), rec, &saved, true); err != nil {
		return nil, err
	}
	return saved, nil
}

// Update modifies a record.
func (c *Client) Update(
	ctx context.Context, resource domain.Resource, id string, rec domain.Record,
) (domain.Record, error) {
	var saved domain.Record
	if err := c.do(ctx, http.MethodPut, recordPath(resource, id), rec, &saved, true); err != nil {
		return nil, err
	}
	return saved, nil
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, resource domain.Resource, id string) error {
	return c.do(ctx, http.MethodDelete, recordPath(resource, id), nil, nil, true)
}

func recordPath(resource domain.Resource, id string) string {
	return resource.Path() + "/" + url.PathEscape(id)
}
