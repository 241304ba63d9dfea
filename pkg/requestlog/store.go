package requestlog

import (
	"github.com/getmockd/fakehttp/internal/matching"
	"github.com/getmockd/fakehttp/pkg/call"
)

// Store defines the interface for call log storage.
type Store interface {
	// Log appends c and assigns its sequence number.
	Log(c *call.Call)

	// List returns calls in the order they were logged, optionally filtered.
	List(filter *Filter) []*call.Call

	// Clear removes all calls.
	Clear()

	// Count returns the number of calls.
	Count() int
}

// Filter defines criteria for selecting calls. Zero fields are ignored.
type Filter struct {
	// Method filters by exact HTTP method.
	Method string

	// URLPattern filters by a "*" glob against the full URL.
	URLPattern string

	// Match is an arbitrary additional condition.
	Match func(*call.Call) bool

	// Limit is the maximum number of calls to return.
	Limit int

	// Offset is the number of matching calls to skip.
	Offset int
}

// Matches reports whether c satisfies every set field of f.
func (f *Filter) Matches(c *call.Call) bool {
	if f == nil {
		return true
	}
	if f.Method != "" && c.Method != f.Method {
		return false
	}
	if f.URLPattern != "" && !matching.Glob(f.URLPattern, c.URLString()) {
		return false
	}
	if f.Match != nil && !f.Match(c) {
		return false
	}
	return true
}
