package testing

import (
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/getmockd/fakehttp/internal/matching"
	"github.com/getmockd/fakehttp/pkg/call"
	"github.com/getmockd/fakehttp/pkg/httputil"
	"github.com/getmockd/fakehttp/pkg/mock"
)

// SetupBuilder declares the matchers and response of one setup using a
// fluent API. Every matcher is validated against the setup's existing ones
// as soon as it is added.
type SetupBuilder struct {
	scope *Scope
	setup *mock.Setup
	tb    testing.TB
	resp  *mock.Response
	err   error // first error encountered during building
}

func newSetupBuilder(scope *Scope, setup *mock.Setup, tb testing.TB) *SetupBuilder {
	return &SetupBuilder{scope: scope, setup: setup, tb: tb}
}

// Err returns the first configuration error encountered during building.
func (b *SetupBuilder) Err() error {
	return b.err
}

// Setup returns the setup being built.
func (b *SetupBuilder) Setup() *mock.Setup {
	return b.setup
}

// Scope returns the scope the setup belongs to.
func (b *SetupBuilder) Scope() *Scope {
	return b.scope
}

func (b *SetupBuilder) helper() {
	if b.tb != nil {
		b.tb.Helper()
	}
}

// fail records err (first error wins) and fails the bound test, if any.
func (b *SetupBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
	if b.tb != nil {
		b.tb.Helper()
		b.tb.Fatalf("fakehttp: %v", err)
	}
}

func (b *SetupBuilder) add(cat mock.Category, key, description string, pred mock.Predicate) *SetupBuilder {
	b.helper()
	if err := b.setup.Add(cat, key, description, pred); err != nil {
		b.fail(err)
	}
	return b
}

// WithURL matches the full request URL against a "*" glob.
func (b *SetupBuilder) WithURL(pattern string) *SetupBuilder {
	b.helper()
	return b.add(mock.CategoryURL, "", fmt.Sprintf("url matches %q", pattern), func(c *call.Call) bool {
		return matching.Glob(pattern, c.URLString())
	})
}

// WithURLPath matches the URL path against a doublestar glob, where "*"
// stays within one segment and "**" crosses segments.
func (b *SetupBuilder) WithURLPath(pattern string) *SetupBuilder {
	b.helper()
	if err := matching.ValidatePathGlob(pattern); err != nil {
		b.fail(fmt.Errorf("WithURLPath: %w", err))
		return b
	}
	return b.add(mock.CategoryURL, "", fmt.Sprintf("url path matches %q", pattern), func(c *call.Call) bool {
		return matching.PathGlob(pattern, c.URL.Path)
	})
}

// WithBody matches the raw request body against a "*" glob. Strings and
// byte slices are used verbatim; other values are JSON encoded first.
func (b *SetupBuilder) WithBody(body any) *SetupBuilder {
	b.helper()
	pattern, err := matching.Serialize(body)
	if err != nil {
		b.fail(fmt.Errorf("WithBody: %w", err))
		return b
	}
	return b.add(mock.CategoryBody, "", fmt.Sprintf("body matches %q", pattern), func(c *call.Call) bool {
		return matching.Glob(pattern, c.Body)
	})
}

// WithMethod matches the HTTP method exactly.
func (b *SetupBuilder) WithMethod(method string) *SetupBuilder {
	b.helper()
	return b.add(mock.CategoryMethod, "", fmt.Sprintf("method is %s", method), func(c *call.Call) bool {
		return c.Method == method
	})
}

// WithContentType matches the request's media type exactly, ignoring
// parameters such as charset.
func (b *SetupBuilder) WithContentType(mediaType string) *SetupBuilder {
	b.helper()
	want := strings.ToLower(strings.TrimSpace(mediaType))
	return b.add(mock.CategoryContentType, "", fmt.Sprintf("content type is %q", want), func(c *call.Call) bool {
		return c.ContentType == want
	})
}

// WithHeader requires a header with at least one value matching pattern.
// The pattern defaults to "*", which only requires presence.
func (b *SetupBuilder) WithHeader(name string, pattern ...string) *SetupBuilder {
	b.helper()
	key := http.CanonicalHeaderKey(name)
	p := headerPattern(pattern)
	desc := fmt.Sprintf("header %s present", key)
	if p != "*" {
		desc = fmt.Sprintf("header %s matches %q", key, p)
	}
	return b.add(mock.CategoryHeaderInclusive, key, desc, func(c *call.Call) bool {
		return matching.HasHeader(key, p, c.Header)
	})
}

// WithoutHeader requires that no value of the header matches pattern. The
// pattern defaults to "*", which requires the header to be absent.
func (b *SetupBuilder) WithoutHeader(name string, pattern ...string) *SetupBuilder {
	b.helper()
	key := http.CanonicalHeaderKey(name)
	p := headerPattern(pattern)
	desc := fmt.Sprintf("header %s absent", key)
	if p != "*" {
		desc = fmt.Sprintf("header %s not matching %q", key, p)
	}
	return b.add(mock.CategoryHeaderExclusive, key, desc, func(c *call.Call) bool {
		return !matching.HasHeader(key, p, c.Header)
	})
}

func headerPattern(pattern []string) string {
	if len(pattern) == 0 || pattern[0] == "" {
		return "*"
	}
	return pattern[0]
}

// WithQueryParam requires the query parameter to be present with any value.
func (b *SetupBuilder) WithQueryParam(name string) *SetupBuilder {
	b.helper()
	return b.add(mock.CategoryQueryParamInclusive, name, fmt.Sprintf("query param %s present", name), func(c *call.Call) bool {
		return matching.HasQueryParam(name, c.Query)
	})
}

// WithoutQueryParam requires the query parameter to be absent.
func (b *SetupBuilder) WithoutQueryParam(name string) *SetupBuilder {
	b.helper()
	return b.add(mock.CategoryQueryParamExclusive, name, fmt.Sprintf("query param %s absent", name), func(c *call.Call) bool {
		return !matching.HasQueryParam(name, c.Query)
	})
}

// WithQueryParamValue requires some value of the query parameter to match
// value. Strings and byte slices are "*" globs; other values are formatted
// first and glob-matched the same way. A slice or array adds one matcher per element, and a
// nil value is the same as WithQueryParam.
func (b *SetupBuilder) WithQueryParamValue(name string, value any) *SetupBuilder {
	b.helper()
	if value == nil {
		return b.WithQueryParam(name)
	}
	for _, v := range expandValues(value) {
		pattern := matching.FormatValue(v)
		b.add(mock.CategoryQueryParamValueInclusive, name, fmt.Sprintf("query param %s = %q", name, pattern), func(c *call.Call) bool {
			return matching.HasQueryParamValue(name, pattern, c.Query)
		})
	}
	return b
}

// WithoutQueryParamValue requires that no value of the query parameter
// matches value. Slices expand like WithQueryParamValue, and a nil value is
// the same as WithoutQueryParam.
func (b *SetupBuilder) WithoutQueryParamValue(name string, value any) *SetupBuilder {
	b.helper()
	if value == nil {
		return b.WithoutQueryParam(name)
	}
	for _, v := range expandValues(value) {
		pattern := matching.FormatValue(v)
		b.add(mock.CategoryQueryParamValueExclusive, name, fmt.Sprintf("query param %s != %q", name, pattern), func(c *call.Call) bool {
			return !matching.HasQueryParamValue(name, pattern, c.Query)
		})
	}
	return b
}

// WithQueryParams adds WithQueryParamValue for every entry, in key order.
func (b *SetupBuilder) WithQueryParams(params map[string]any) *SetupBuilder {
	b.helper()
	for _, name := range sortedKeys(params) {
		b.WithQueryParamValue(name, params[name])
	}
	return b
}

// WithoutQueryParams adds WithoutQueryParamValue for every entry, in key
// order.
func (b *SetupBuilder) WithoutQueryParams(params map[string]any) *SetupBuilder {
	b.helper()
	for _, name := range sortedKeys(params) {
		b.WithoutQueryParamValue(name, params[name])
	}
	return b
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// expandValues flattens a slice or array into its elements. Strings and
// byte slices are scalars.
func expandValues(value any) []any {
	switch value.(type) {
	case string, []byte:
		return []any{value}
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{value}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// WithBasicAuth requires an Authorization header with the Basic scheme and
// the given credentials.
func (b *SetupBuilder) WithBasicAuth(username, password string) *SetupBuilder {
	b.helper()
	return b.add(mock.CategoryAuth, "", fmt.Sprintf("basic auth for %q", username), func(c *call.Call) bool {
		return matching.MatchBasicAuth(c.AuthScheme, c.AuthParameter, username, password)
	})
}

// WithBearerToken requires an Authorization header with the Bearer scheme
// and exactly this token.
func (b *SetupBuilder) WithBearerToken(token string) *SetupBuilder {
	b.helper()
	return b.add(mock.CategoryAuth, "", fmt.Sprintf("bearer token %q", token), func(c *call.Call) bool {
		return matching.MatchBearerToken(c.AuthScheme, c.AuthParameter, token)
	})
}

// WithBearerClaims requires a Bearer JWT carrying every listed claim. The
// token signature is not verified.
func (b *SetupBuilder) WithBearerClaims(claims map[string]any) *SetupBuilder {
	b.helper()
	return b.add(mock.CategoryAuth, "", fmt.Sprintf("bearer token with claims %v", claims), func(c *call.Call) bool {
		return matching.MatchBearerClaims(c.AuthScheme, c.AuthParameter, claims)
	})
}

// With adds an arbitrary predicate.
func (b *SetupBuilder) With(pred func(*call.Call) bool) *SetupBuilder {
	b.helper()
	return b.add(mock.CategoryCustom, "", "custom predicate", pred)
}

// Without adds the negation of an arbitrary predicate.
func (b *SetupBuilder) Without(pred func(*call.Call) bool) *SetupBuilder {
	b.helper()
	return b.add(mock.CategoryCustom, "", "not custom predicate", func(c *call.Call) bool {
		return !pred(c)
	})
}

// WithExpr adds a boolean expr-lang expression over the call. Available
// names are method, url, host, path, query, header, contentType and body.
//
//	WithExpr(`method == "POST" && header["X-Tenant"] == "acme"`)
func (b *SetupBuilder) WithExpr(expression string) *SetupBuilder {
	b.helper()
	program, err := matching.CompileExpr(expression)
	if err != nil {
		b.fail(fmt.Errorf("WithExpr: %w", err))
		return b
	}
	return b.add(mock.CategoryCustom, "", fmt.Sprintf("expr %q", expression), func(c *call.Call) bool {
		return matching.MatchExpr(program, c)
	})
}

// WithJSONPath requires the JSONPath to select a value equal to expected in
// a JSON body. An expected value of {"exists": bool} checks presence only.
func (b *SetupBuilder) WithJSONPath(path string, expected any) *SetupBuilder {
	b.helper()
	x, err := matching.CompileJSONPath(path)
	if err != nil {
		b.fail(fmt.Errorf("WithJSONPath: %w", err))
		return b
	}
	return b.add(mock.CategoryCustom, "", fmt.Sprintf("json path %s = %v", path, expected), func(c *call.Call) bool {
		return matching.MatchJSONPath(x, expected, c.Body)
	})
}

// WithJSONSchema requires a JSON body that validates against schema.
func (b *SetupBuilder) WithJSONSchema(schema any) *SetupBuilder {
	b.helper()
	compiled, err := matching.CompileSchema(schema)
	if err != nil {
		b.fail(fmt.Errorf("WithJSONSchema: %w", err))
		return b
	}
	return b.add(mock.CategoryCustom, "", "body matches JSON schema", func(c *call.Call) bool {
		return matching.MatchSchema(compiled, c.Body)
	})
}

// WithXPath requires an element or attribute selected by path in an XML
// body to have text equal to expected.
func (b *SetupBuilder) WithXPath(path, expected string) *SetupBuilder {
	b.helper()
	x, err := matching.CompileXPath(path)
	if err != nil {
		b.fail(fmt.Errorf("WithXPath: %w", err))
		return b
	}
	return b.add(mock.CategoryCustom, "", fmt.Sprintf("xpath %s = %q", x, expected), func(c *call.Call) bool {
		return matching.MatchXPath(x, expected, c.Body)
	})
}

// response returns the setup's own response, creating it on first use.
func (b *SetupBuilder) response() *mock.Response {
	if b.resp == nil {
		b.resp = mock.NewResponse(http.StatusOK, nil)
		b.setup.SetResponse(b.resp)
	}
	return b.resp
}

// RespondWith sets the response status and body. Strings and byte slices
// are used verbatim; other values are JSON encoded and the Content-Type
// defaults to application/json.
func (b *SetupBuilder) RespondWith(status int, body any) *SetupBuilder {
	b.helper()
	r := b.response()
	r.StatusCode = status
	switch v := body.(type) {
	case nil:
		r.Body = nil
	case string:
		r.Body = []byte(v)
	case []byte:
		r.Body = v
	default:
		data, contentType, err := httputil.JSONBody(v)
		if err != nil {
			b.fail(fmt.Errorf("RespondWith: %w", err))
			return b
		}
		r.Body = data
		if r.Header.Get("Content-Type") == "" {
			r.Header.Set("Content-Type", contentType)
		}
	}
	return b
}

// RespondJSON sets a JSON response body and Content-Type.
func (b *SetupBuilder) RespondJSON(status int, v any) *SetupBuilder {
	b.helper()
	data, contentType, err := httputil.JSONBody(v)
	if err != nil {
		b.fail(fmt.Errorf("RespondJSON: %w", err))
		return b
	}
	r := b.response()
	r.StatusCode = status
	r.Body = data
	r.Header.Set("Content-Type", contentType)
	return b
}

// RespondHeader adds a response header value.
func (b *SetupBuilder) RespondHeader(key, value string) *SetupBuilder {
	b.helper()
	b.response().Header.Add(key, value)
	return b
}

// RespondNotFound answers with 404 and a JSON error body.
func (b *SetupBuilder) RespondNotFound() *SetupBuilder {
	b.helper()
	return b.respondError(http.StatusNotFound, "not_found", "resource not found")
}

// RespondServerError answers with 500 and a JSON error body.
func (b *SetupBuilder) RespondServerError(message string) *SetupBuilder {
	b.helper()
	return b.respondError(http.StatusInternalServerError, "internal_error", message)
}

func (b *SetupBuilder) respondError(status int, code, message string) *SetupBuilder {
	r := b.response()
	r.StatusCode = status
	r.Body = httputil.ErrorBody(code, message)
	r.Header.Set("Content-Type", "application/json")
	return b
}

// SimulateTimeout makes matching calls fail as if they timed out. A later
// Respond call replaces the timeout.
func (b *SetupBuilder) SimulateTimeout() *SetupBuilder {
	b.resp = nil
	b.setup.SetResponse(mock.Timeout)
	return b
}

// Named sets a name used in logs and reports.
func (b *SetupBuilder) Named(name string) *SetupBuilder {
	b.setup.SetName(name)
	return b
}
