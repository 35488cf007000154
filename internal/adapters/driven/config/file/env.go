package file

import "strings"

// EnvPrefix marks environment variables that override config keys.
const EnvPrefix = "MEDCHECK_"

// EnvKey maps a config key to its environment variable:
// "search.api_key" becomes MEDCHECK_SEARCH_API_KEY.
func EnvKey(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// envOverrides collects MEDCHECK_SECTION_KEY variables as "section.key".
// The first underscore after the prefix separates section from key, so
// MEDCHECK_BACKEND_RATE_LIMIT maps to backend.rate_limit. Empty values are
// ignored.
func envOverrides(environ []string) map[string]any {
	out := make(map[string]any)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		rest := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		section, key, ok := strings.Cut(rest, "_")
		if !ok || section == "" || key == "" {
			continue
		}
		out[section+"."+key] = value
	}
	return out
}
