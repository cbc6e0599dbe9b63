// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config dir.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (under the md2text config dir) to suggest
	marker := "md2text" + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForInvalidPolicy returns hints listing the accepted values for a
// rendering policy flag.
func ForInvalidPolicy(valid ...string) string {
	if len(valid) == 0 {
		return ""
	}
	return format("valid values: " + strings.Join(valid, ", "))
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForWorkers returns hints for invalid worker count errors.
func ForWorkers() string {
	return format("use --workers 0 for automatic sizing")
}

// ForBlockedURL returns hints for URLs rejected by the private-address guard.
func ForBlockedURL() string {
	return format("set MD2TEXT_MCP_ALLOW_PRIVATE_URLS=true to fetch private or loopback hosts")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
