package requestlog

import (
	"sync"

	"github.com/getmockd/fakehttp/pkg/call"
)

// MemoryStore is a thread-safe, append-only in-memory call log.
type MemoryStore struct {
	mu    sync.RWMutex
	calls []*call.Call
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Log appends c and assigns its sequence number. Safe for concurrent use.
func (s *MemoryStore) Log(c *call.Call) {
	if c == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Seq = len(s.calls) + 1
	s.calls = append(s.calls, c)
}

// List returns a snapshot of logged calls in order, filtered by filter.
func (s *MemoryStore) List(filter *Filter) []*call.Call {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*call.Call, 0, len(s.calls))
	skipped := 0
	for _, c := range s.calls {
		if !filter.Matches(c) {
			continue
		}
		if filter != nil && skipped < filter.Offset {
			skipped++
			continue
		}
		result = append(result, c)
		if filter != nil && filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result
}

// Clear removes all calls. Only scope resets should need this.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// Count returns the number of logged calls.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.calls)
}

var _ Store = (*MemoryStore)(nil)
