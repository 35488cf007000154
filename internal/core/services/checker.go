package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/medcheck-cli/internal/logger"
)

// Ensure CheckCycle implements the interface.
var _ driving.CheckCycle = (*CheckCycle)(nil)

// CheckCycle is the one-shot completion event of a single check. The outcome
// is written once, before Done is closed.
type CheckCycle struct {
	done    chan struct{}
	once    sync.Once
	outcome domain.CheckOutcome
}

func newCheckCycle() *CheckCycle {
	return &CheckCycle{done: make(chan struct{})}
}

// Done is closed when the cycle completes.
func (c *CheckCycle) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the cycle completes or ctx is done.
func (c *CheckCycle) Wait(ctx context.Context) (domain.CheckOutcome, error) {
	select {
	case <-c.done:
		return c.outcome, nil
	case <-ctx.Done():
		return domain.CheckOutcome{}, ctx.Err()
	}
}

// Outcome returns the outcome and true once the cycle has completed.
func (c *CheckCycle) Outcome() (domain.CheckOutcome, bool) {
	select {
	case <-c.done:
		return c.outcome, true
	default:
		return domain.CheckOutcome{}, false
	}
}

// CompletionHook runs exactly once per completed cycle, before Done closes.
type CompletionHook func(domain.CheckOutcome)

// Checker runs interaction check cycles: idle -> pending -> success|error.
// At most one cycle is pending at a time; a trigger while pending is
// rejected, not queued. There is no retry and no caching: every cycle
// issues a fresh request.
type Checker struct {
	backend driven.InteractionBackend
	timeout time.Duration
	now     func() time.Time

	mu      sync.Mutex
	state   domain.CheckState
	current *CheckCycle
	stale   bool
	hooks   []CompletionHook
}

// NewChecker creates a checker. The timeout is clamped to the 5-10s range.
func NewChecker(backend driven.InteractionBackend, timeout time.Duration) *Checker {
	return &Checker{
		backend: backend,
		timeout: domain.ClampCheckTimeout(timeout),
		now:     time.Now,
	}
}

// OnComplete registers a hook run once per completed cycle.
func (c *Checker) OnComplete(hook CompletionHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, hook)
}

// State returns the current cycle state.
func (c *Checker) State() domain.CheckState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Last returns the outcome of the most recent cycle unless it was reset.
func (c *Checker) Last() (domain.CheckOutcome, bool) {
	c.mu.Lock()
	cycle := c.current
	c.mu.Unlock()
	if cycle == nil {
		return domain.CheckOutcome{}, false
	}
	return cycle.Outcome()
}

// Reset discards a completed outcome and returns to idle. A pending cycle
// is not cancelled: it still completes and runs its hooks, but its outcome
// is dropped and the checker returns to idle instead of showing it.
func (c *Checker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == domain.CheckPending {
		c.stale = true
		return
	}
	c.state = domain.CheckIdle
	c.current = nil
}

// Start begins a cycle for items under mode.
//
// While a cycle is pending it returns domain.ErrCheckInFlight and makes no
// request. An ineligible selection completes the cycle immediately in the
// error state with the deficiency message, also without a request.
// Otherwise exactly one backend request is issued in the background.
func (c *Checker) Start(ctx context.Context, mode domain.CheckerMode, items []domain.SelectedItem) (*CheckCycle, error) {
	c.mu.Lock()
	if c.state == domain.CheckPending {
		c.mu.Unlock()
		logger.Debug("Check trigger ignored: cycle already pending")
		return nil, domain.ErrCheckInFlight
	}

	cycle := newCheckCycle()
	c.current = cycle
	c.state = domain.CheckPending
	c.stale = false
	started := c.now()
	c.mu.Unlock()

	logger.Section("Check Cycle")
	logger.Debug("Mode: %s, items: %d", mode, len(items))

	eligibility := CheckEligibility(items, mode)
	if !eligibility.Ready {
		logger.Debug("Selection not eligible: %s", eligibility.Reason)
		c.complete(cycle, domain.CheckOutcome{
			Mode:        mode,
			Request:     domain.PartitionSelection(nil),
			State:       domain.CheckError,
			Message:     eligibility.Reason,
			Deficiency:  true,
			StartedAt:   started,
			CompletedAt: started,
		})
		return cycle, nil
	}

	req := domain.PartitionSelection(items)
	if c.backend == nil {
		c.complete(cycle, domain.CheckOutcome{
			Mode:        mode,
			Request:     req,
			State:       domain.CheckError,
			Message:     "Interaction backend is not configured",
			StartedAt:   started,
			CompletedAt: c.now(),
		})
		return cycle, nil
	}

	go c.run(ctx, cycle, mode, req, started)
	return cycle, nil
}

func (c *Checker) run(
	ctx context.Context, cycle *CheckCycle, mode domain.CheckerMode,
	req domain.InteractionCheckRequest, started time.Time,
) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logger.Debug("Requesting check: drugs=%v foods=%v comps=%v", req.DrugIDs, req.FoodIDs, req.CompIDs)
	result, err := c.backend.CheckInteractions(ctx, req)

	outcome := domain.CheckOutcome{
		Mode:        mode,
		Request:     req,
		StartedAt:   started,
		CompletedAt: c.now(),
	}
	switch {
	case err != nil:
		outcome.State = domain.CheckError
		outcome.Message = c.failureMessage(err)
		logger.Warn("Interaction check failed: %v", err)
	case result == nil:
		outcome.State = domain.CheckError
		outcome.Message = domain.GenericCheckError
		logger.Warn("Interaction check returned no result")
	default:
		outcome.State = domain.CheckSuccess
		outcome.Result = result
		logger.Debug("Check found %d interactions", result.Total())
	}

	c.complete(cycle, outcome)
}

// complete publishes the outcome exactly once. The checker stays pending
// until every hook has returned, so no trigger is honoured in between.
func (c *Checker) complete(cycle *CheckCycle, outcome domain.CheckOutcome) {
	cycle.once.Do(func() {
		c.mu.Lock()
		hooks := make([]CompletionHook, len(c.hooks))
		copy(hooks, c.hooks)
		c.mu.Unlock()

		cycle.outcome = outcome
		for _, hook := range hooks {
			hook(outcome)
		}

		c.mu.Lock()
		if c.current == cycle {
			if c.stale {
				logger.Debug("Selection changed while pending; dropping outcome")
				c.state = domain.CheckIdle
				c.current = nil
				c.stale = false
			} else {
				c.state = outcome.State
			}
		}
		c.mu.Unlock()
		close(cycle.done)
	})
}

// failureMessage prefers the server-supplied message, then the transport
// error text, then a generic message.
func (c *Checker) failureMessage(err error) string {
	if msg := domain.ServerMessage(err); msg != "" {
		return msg
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("Interaction check timed out after %s", c.timeout)
	}
	if text := err.Error(); text != "" {
		return text
	}
	return domain.GenericCheckError
}
