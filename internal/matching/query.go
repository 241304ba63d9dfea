package matching

import (
	"net/url"
)

// HasQueryParam checks if a query parameter exists (regardless of value).
func HasQueryParam(name string, params url.Values) bool {
	_, exists := params[name]
	return exists
}

// HasQueryParamValue reports whether some value of the named parameter
// matches the glob pattern. Parameter names are case-sensitive.
func HasQueryParamValue(name, pattern string, params url.Values) bool {
	for _, v := range params[name] {
		if Glob(pattern, v) {
			return true
		}
	}
	return false
}
