package domain

import (
	"fmt"
	"time"
)

// Bounds for the interaction check timeout.
const (
	MinCheckTimeout = 5 * time.Second
	MaxCheckTimeout = 10 * time.Second
)

// DefaultDebounce is the input inactivity interval before a search query fires.
const DefaultDebounce = 300 * time.Millisecond

// BackendSettings holds the interaction-resolution backend configuration.
type BackendSettings struct {
	// URL is the base URL of the backend REST API.
	URL string

	// Timeout bounds each check request. Clamped to 5-10s.
	Timeout time.Duration

	// RateLimit is the maximum number of requests per second (0 disables limiting).
	RateLimit float64
}

// IsConfigured returns true if the backend URL is set.
func (b BackendSettings) IsConfigured() bool {
	return b.URL != ""
}

// SearchSettings holds search index configuration.
type SearchSettings struct {
	// URL is the base URL of the search index service.
	URL string

	// APIKey authenticates against the search index (optional).
	APIKey string

	// Timeout bounds each search query.
	Timeout time.Duration

	// Debounce is the input inactivity interval before a query fires.
	Debounce time.Duration

	// CacheSize is the number of cached query results (0 disables caching).
	CacheSize int

	// CacheTTL is how long a cached result stays valid.
	CacheTTL time.Duration
}

// IsConfigured returns true if the search index URL is set.
func (s SearchSettings) IsConfigured() bool {
	return s.URL != ""
}

// CheckerSettings holds checker panel defaults.
type CheckerSettings struct {
	// DefaultMode is the mode a new panel starts in.
	DefaultMode CheckerMode
}

// LoggingSettings holds logging configuration.
type LoggingSettings struct {
	// Verbose enables diagnostic logging.
	Verbose bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Backend BackendSettings
	Search  SearchSettings
	Checker CheckerSettings
	Logging LoggingSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Endpoints are left empty; users set them via `medcheck settings set`.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: BackendSettings{
			Timeout:   8 * time.Second,
			RateLimit: 5,
		},
		Search: SearchSettings{
			Timeout:   5 * time.Second,
			Debounce:  DefaultDebounce,
			CacheSize: 256,
			CacheTTL:  30 * time.Second,
		},
		Checker: CheckerSettings{
			DefaultMode: ModeDrugDrug,
		},
	}
}

// ClampCheckTimeout keeps d within the supported check timeout bounds.
func ClampCheckTimeout(d time.Duration) time.Duration {
	if d < MinCheckTimeout {
		return MinCheckTimeout
	}
	if d > MaxCheckTimeout {
		return MaxCheckTimeout
	}
	return d
}

// Validate checks the settings are internally consistent.
func (s AppSettings) Validate() error {
	if !s.Checker.DefaultMode.IsCheckMode() {
		return fmt.Errorf("%w: default mode %q does not run checks", ErrInvalidInput, s.Checker.DefaultMode)
	}
	if s.Search.Debounce < 0 {
		return fmt.Errorf("%w: search debounce must not be negative", ErrInvalidInput)
	}
	if s.Search.Timeout <= 0 {
		return fmt.Errorf("%w: search timeout must be positive", ErrInvalidInput)
	}
	if s.Backend.RateLimit < 0 {
		return fmt.Errorf("%w: backend rate limit must not be negative", ErrInvalidInput)
	}
	return nil
}
