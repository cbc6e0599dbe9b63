package md2text

import "fmt"

// version is set via ldflags during release builds. Development builds
// report "dev".
var version = "dev"

// Version returns the compiled version or "dev" when run from source.
func Version() string {
	return version
}

// UserAgent returns the User-Agent string for outbound HTTP requests.
func UserAgent() string {
	return fmt.Sprintf("md2text/%s", version)
}
