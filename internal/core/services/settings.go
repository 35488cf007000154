package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyBackendURL       = "backend.url"
	KeyBackendTimeout   = "backend.timeout"
	KeyBackendRateLimit = "backend.rate_limit"
	KeySearchURL        = "search.url"
	KeySearchAPIKey     = "search.api_key"
	KeySearchTimeout    = "search.timeout"
	KeySearchDebounce   = "search.debounce"
	KeySearchCacheSize  = "search.cache_size"
	KeySearchCacheTTL   = "search.cache_ttl"
	KeyCheckerMode      = "checker.default_mode"
	KeyLoggingVerbose   = "logging.verbose"
)

// keyKind is the value type stored under a config key.
type keyKind int

const (
	kindString keyKind = iota
	kindDuration
	kindInt
	kindBool
	kindMode
)

var settingKeys = map[string]keyKind{
	KeyBackendURL:       kindString,
	KeyBackendTimeout:   kindDuration,
	KeyBackendRateLimit: kindInt,
	KeySearchURL:        kindString,
	KeySearchAPIKey:     kindString,
	KeySearchTimeout:    kindDuration,
	KeySearchDebounce:   kindDuration,
	KeySearchCacheSize:  kindInt,
	KeySearchCacheTTL:   kindDuration,
	KeyCheckerMode:      kindMode,
	KeyLoggingVerbose:   kindBool,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, filling gaps with defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Backend: domain.BackendSettings{
			URL:       strings.TrimRight(s.configStore.GetString(KeyBackendURL), "/"),
			Timeout:   domain.ClampCheckTimeout(s.getDuration(KeyBackendTimeout, defaults.Backend.Timeout)),
			RateLimit: float64(s.getInt(KeyBackendRateLimit, int(defaults.Backend.RateLimit))),
		},
		Search: domain.SearchSettings{
			URL:       strings.TrimRight(s.configStore.GetString(KeySearchURL), "/"),
			APIKey:    s.configStore.GetString(KeySearchAPIKey),
			Timeout:   s.getDuration(KeySearchTimeout, defaults.Search.Timeout),
			Debounce:  s.getDuration(KeySearchDebounce, defaults.Search.Debounce),
			CacheSize: s.getInt(KeySearchCacheSize, defaults.Search.CacheSize),
			CacheTTL:  s.getDuration(KeySearchCacheTTL, defaults.Search.CacheTTL),
		},
		Checker: domain.CheckerSettings{
			DefaultMode: s.getMode(defaults.Checker.DefaultMode),
		},
		Logging: domain.LoggingSettings{
			Verbose: s.getBool(KeyLoggingVerbose, defaults.Logging.Verbose),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	values := []struct {
		key   string
		value any
	}{
		{KeyBackendURL, settings.Backend.URL},
		{KeyBackendTimeout, settings.Backend.Timeout.String()},
		{KeyBackendRateLimit, int64(settings.Backend.RateLimit)},
		{KeySearchURL, settings.Search.URL},
		{KeySearchTimeout, settings.Search.Timeout.String()},
		{KeySearchDebounce, settings.Search.Debounce.String()},
		{KeySearchCacheSize, int64(settings.Search.CacheSize)},
		{KeySearchCacheTTL, settings.Search.CacheTTL.String()},
		{KeyCheckerMode, settings.Checker.DefaultMode.String()},
		{KeyLoggingVerbose, settings.Logging.Verbose},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if settings.Search.APIKey != "" {
		if err := s.configStore.Set(KeySearchAPIKey, settings.Search.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", KeySearchAPIKey, err)
		}
	}
	return nil
}

// Set parses value according to the key's type and persists it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	value = strings.TrimSpace(value)

	var stored any
	switch kind {
	case kindString:
		stored = value
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: %s must be a duration like 300ms or 8s", domain.ErrInvalidInput, key)
		}
		stored = d.String()
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		stored = int64(n)
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		stored = b
	case kindMode:
		mode, err := domain.ParseCheckerMode(value)
		if err != nil {
			return err
		}
		if !mode.IsCheckMode() {
			return fmt.Errorf("%w: %s does not run checks", domain.ErrInvalidInput, mode)
		}
		stored = mode.String()
	}

	return s.configStore.Set(key, stored)
}

// Keys returns the supported config keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getMode(defaultVal domain.CheckerMode) domain.CheckerMode {
	val := s.configStore.GetString(KeyCheckerMode)
	if val == "" {
		return defaultVal
	}
	mode, err := domain.ParseCheckerMode(val)
	if err != nil || !mode.IsCheckMode() {
		return defaultVal
	}
	return mode
}
