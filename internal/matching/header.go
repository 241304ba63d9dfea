package matching

import (
	"net/http"
)

// HasHeader reports whether headers contain name with at least one value
// matching the glob pattern. Header names are case-insensitive.
func HasHeader(name, pattern string, headers http.Header) bool {
	for _, v := range headers.Values(name) {
		if Glob(pattern, v) {
			return true
		}
	}
	return false
}
