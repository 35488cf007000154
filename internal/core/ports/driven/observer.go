package driven

import (
	"time"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// CheckObserver receives measurements from the core.
// Implementations must be safe for concurrent use.
type CheckObserver interface {
	// SearchCompleted is called after every index query.
	SearchCompleted(category domain.Category, hits int, err error, took time.Duration)

	// CheckCompleted is called once per completed check cycle.
	CheckCompleted(outcome domain.CheckOutcome)
}
