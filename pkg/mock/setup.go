package mock

import (
	"strings"

	"github.com/getmockd/fakehttp/pkg/call"
)

// Predicate is a condition over a captured call.
type Predicate func(*call.Call) bool

// Setup is an ordered AND-group of predicates plus one planned response.
type Setup struct {
	name       string
	predicates []Predicate
	registry   Registry
	response   *Response
}

// NewSetup returns an empty setup. With no predicates it matches every call;
// with no response it answers with DefaultResponse.
func NewSetup() *Setup {
	return &Setup{}
}

// Add validates a registration against the setup's existing matchers and,
// if legal, records it and appends pred. On error nothing is added.
func (s *Setup) Add(cat Category, key, description string, pred Predicate) error {
	if err := s.registry.Check(cat, key, description); err != nil {
		return err
	}
	s.registry.Record(cat, key, description)
	s.predicates = append(s.predicates, pred)
	return nil
}

// Matches reports whether every predicate holds for c.
func (s *Setup) Matches(c *call.Call) bool {
	for _, p := range s.predicates {
		if !p(c) {
			return false
		}
	}
	return true
}

// Len returns the number of registered predicates.
func (s *Setup) Len() int {
	return len(s.predicates)
}

// Entries returns the registered matcher metadata in declaration order.
func (s *Setup) Entries() []Entry {
	return s.registry.Entries()
}

// Response returns the planned response, or DefaultResponse when none was
// set. The Timeout sentinel is returned as-is.
func (s *Setup) Response() *Response {
	if s.response == nil {
		return DefaultResponse()
	}
	return s.response
}

// SetResponse replaces the planned response.
func (s *Setup) SetResponse(r *Response) {
	s.response = r
}

// Name returns the setup's name.
func (s *Setup) Name() string {
	return s.name
}

// SetName names the setup for logs and reports.
func (s *Setup) SetName(name string) {
	s.name = name
}

// String describes the setup by name, or by its matchers when unnamed.
func (s *Setup) String() string {
	if s.name != "" {
		return s.name
	}
	return s.Describe()
}

// Describe joins the matcher descriptions in declaration order, ignoring
// the name.
func (s *Setup) Describe() string {
	entries := s.registry.Entries()
	if len(entries) == 0 {
		return "any call"
	}
	descs := make([]string, len(entries))
	for i, e := range entries {
		descs[i] = e.Description
	}
	return strings.Join(descs, " and ")
}
