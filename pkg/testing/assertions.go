package testing

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/getmockd/fakehttp/pkg/call"
	"github.com/getmockd/fakehttp/pkg/requestlog"
)

// callsMatching returns logged calls with the given method (any method when
// empty) and a URL matching the "*" glob.
func (s *Scope) callsMatching(method, urlPattern string) []*call.Call {
	return s.log.List(&requestlog.Filter{Method: method, URLPattern: urlPattern})
}

// AssertCalled asserts at least one call matched method and urlPattern.
// An empty method matches any method.
func (s *Scope) AssertCalled(t testing.TB, method, urlPattern string) bool {
	t.Helper()
	if len(s.callsMatching(method, urlPattern)) > 0 {
		return true
	}
	return assert.Fail(t, "expected a call that was not made",
		"no call matched %s %s\ncalls made:\n%s", methodOrAny(method), urlPattern, s.describeCalls())
}

// AssertCalledTimes asserts exactly n calls matched method and urlPattern.
func (s *Scope) AssertCalledTimes(t testing.TB, method, urlPattern string, n int) bool {
	t.Helper()
	got := len(s.callsMatching(method, urlPattern))
	return assert.Equal(t, n, got, "calls matching %s %s\ncalls made:\n%s", methodOrAny(method), urlPattern, s.describeCalls())
}

// AssertNotCalled asserts no call matched method and urlPattern.
func (s *Scope) AssertNotCalled(t testing.TB, method, urlPattern string) bool {
	t.Helper()
	matched := s.callsMatching(method, urlPattern)
	if len(matched) == 0 {
		return true
	}
	return assert.Fail(t, "unexpected call",
		"%d call(s) matched %s %s, first: %s", len(matched), methodOrAny(method), urlPattern, matched[0])
}

// AssertNoCalls asserts the call log is empty.
func (s *Scope) AssertNoCalls(t testing.TB) bool {
	t.Helper()
	if s.log.Count() == 0 {
		return true
	}
	return assert.Fail(t, "expected no calls", "calls made:\n%s", s.describeCalls())
}

func (s *Scope) describeCalls() string {
	calls := s.Calls()
	if len(calls) == 0 {
		return "  (none)"
	}
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = "  " + c.String()
	}
	return strings.Join(lines, "\n")
}

func methodOrAny(method string) string {
	if method == "" {
		return "*"
	}
	return method
}

// AssertHeader asserts the call carried the header with the expected first
// value.
func AssertHeader(t testing.TB, c *call.Call, key, expected string) bool {
	t.Helper()
	values := c.Header.Values(key)
	if !assert.NotEmpty(t, values, "header %q not found on %s", key, c) {
		return false
	}
	return assert.Equal(t, expected, values[0], "header %q on %s", key, c)
}

// AssertQueryParam asserts the call's query contains key = expected.
func AssertQueryParam(t testing.TB, c *call.Call, key, expected string) bool {
	t.Helper()
	values, ok := c.Query[key]
	if !ok {
		return assert.Fail(t, "query param not found", "query param %q not found on %s", key, c)
	}
	return assert.Contains(t, values, expected, "query param %q on %s", key, c)
}

// AssertBodyContains asserts the call body contains substr.
func AssertBodyContains(t testing.TB, c *call.Call, substr string) bool {
	t.Helper()
	return assert.Contains(t, c.Body, substr, "body of %s", c)
}

// AssertJSONBody asserts the call body is JSON equal to expected. Expected
// may be a JSON string, []byte, or any value that encodes to JSON.
func AssertJSONBody(t testing.TB, c *call.Call, expected any) bool {
	t.Helper()
	var want string
	switch v := expected.(type) {
	case string:
		want = v
	case []byte:
		want = string(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return assert.Fail(t, "failed to marshal expected value", err.Error())
		}
		want = string(data)
	}
	return assert.JSONEq(t, want, c.Body, "body of %s", c)
}
