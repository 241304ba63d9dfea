// Package requestlog provides the call log: an append-only, time-ordered
// record of every call a fake transport observed during a test scope.
//
// The dispatcher appends each call before it looks for a matching setup, so
// calls that match nothing are still recorded. Tests read the log to assert
// what was (or was not) sent; an unmatched call is never a dispatch error.
//
// # Usage
//
//	store := requestlog.NewMemoryStore()
//	store.Log(c)
//
//	for _, c := range store.List(&requestlog.Filter{Method: "POST"}) {
//	    // ...
//	}
//
// # Package Design
//
// This package only depends on pkg/call and internal/matching, so it can be
// imported by the dispatcher and by assertion helpers without cycles.
package requestlog
