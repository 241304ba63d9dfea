package matching

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob reports whether value matches pattern, where "*" matches any
// sequence of characters (including none and including "/") and every other
// character matches itself. The match is anchored at both ends.
func Glob(pattern, value string) bool {
	if !strings.Contains(pattern, "*") {
		return pattern == value
	}

	parts := strings.Split(pattern, "*")
	last := len(parts) - 1

	// First part must be a prefix, last part a suffix.
	if !strings.HasPrefix(value, parts[0]) {
		return false
	}
	pos := len(parts[0])

	for i := 1; i < last; i++ {
		part := parts[i]
		if part == "" {
			continue
		}
		idx := strings.Index(value[pos:], part)
		if idx == -1 {
			return false
		}
		pos += idx + len(part)
	}

	return len(value)-pos >= len(parts[last]) && strings.HasSuffix(value, parts[last])
}

// PathGlob matches a URL path against a doublestar pattern. Unlike Glob, "*"
// stays within one path segment and "**" spans segments. Invalid patterns
// never match.
func PathGlob(pattern, path string) bool {
	ok, err := doublestar.Match(pattern, path)
	return err == nil && ok
}

// ValidatePathGlob reports a malformed doublestar pattern.
func ValidatePathGlob(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return doublestar.ErrBadPattern
	}
	return nil
}
