package backend

import (
	"context"
	"net/http"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// CheckInteractions posts the partitioned selection and returns the
// categorised result. A body of null lists decodes to empty lists.
func (c *Client) CheckInteractions(
	ctx context.Context, req domain.InteractionCheckRequest,
) (*domain.InteractionCheckResult, error) {
	var result domain.InteractionCheckResult
	if err := c.do(ctx, http.MethodPost, "/interactions/check", req, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}
