package domain

import "time"

// CheckState is the lifecycle state of a panel's check cycle.
type CheckState int

// Check cycle states. Success and Error are terminal for a cycle but
// accept a new trigger; only Pending rejects one.
const (
	CheckIdle CheckState = iota
	CheckPending
	CheckSuccess
	CheckError
)

// String returns the string representation.
func (s CheckState) String() string {
	switch s {
	case CheckIdle:
		return "idle"
	case CheckPending:
		return "pending"
	case CheckSuccess:
		return "success"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// GenericCheckError is reported when a failure carries neither a server
// message nor transport error text.
const GenericCheckError = "Interaction check failed. Please try again."

// CheckOutcome is the completed state of one check cycle.
type CheckOutcome struct {
	// Mode is the checker mode the cycle ran in.
	Mode CheckerMode

	// Request is the partitioned selection. Empty when validation failed.
	Request InteractionCheckRequest

	// State is CheckSuccess or CheckError.
	State CheckState

	// Result is set on success.
	Result *InteractionCheckResult

	// Message describes the failure on error.
	Message string

	// Deficiency is true when the selection failed validation and no
	// network call was made.
	Deficiency bool

	// StartedAt and CompletedAt bound the cycle.
	StartedAt   time.Time
	CompletedAt time.Time
}

// NoInteractions reports the distinct "no known interactions found" state.
func (o CheckOutcome) NoInteractions() bool {
	return o.State == CheckSuccess && o.Result.IsEmpty()
}

// Duration returns how long the cycle took.
func (o CheckOutcome) Duration() time.Duration {
	return o.CompletedAt.Sub(o.StartedAt)
}

// HistoryEntry is a locally recorded check cycle.
type HistoryEntry struct {
	ID        string
	Mode      CheckerMode
	Request   InteractionCheckRequest
	State     CheckState
	Total     int
	Counts    SeverityCounts
	Message   string
	CheckedAt time.Time
}

// NewHistoryEntry summarises an outcome for the history log. The id is
// assigned by the store.
func NewHistoryEntry(o CheckOutcome) HistoryEntry {
	entry := HistoryEntry{
		Mode:      o.Mode,
		Request:   o.Request,
		State:     o.State,
		Message:   o.Message,
		CheckedAt: o.CompletedAt,
	}
	if o.Result != nil {
		entry.Total = o.Result.Total()
		entry.Counts = o.Result.SeverityCounts()
	}
	return entry
}
