package matching

import (
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/fakehttp/pkg/call"
)

func TestMatchJSONPath(t *testing.T) {
	body := `{"status":"active","count":42,"items":[{"id":1},{"id":2}],"deleted":null,"tags":["a","b"]}`

	tests := []struct {
		name     string
		path     string
		expected any
		want     bool
	}{
		{"string field", "$.status", "active", true},
		{"string mismatch", "$.status", "inactive", false},
		{"number as int", "$.count", 42, true},
		{"number as float", "$.count", float64(42), true},
		{"number vs string", "$.count", "42", false},
		{"wildcard any element", "$.items[*].id", 2, true},
		{"null", "$.deleted", nil, true},
		{"array value", "$.tags", []string{"a", "b"}, true},
		{"exists true", "$.status", map[string]any{"exists": true}, true},
		{"exists false on missing", "$.nope", map[string]any{"exists": false}, true},
		{"exists true on missing", "$.nope", map[string]any{"exists": true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := CompileJSONPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, MatchJSONPath(expr, tt.expected, body))
		})
	}
}

func TestMatchJSONPathInvalid(t *testing.T) {
	_, err := CompileJSONPath("$[invalid")
	assert.Error(t, err)

	expr, err := CompileJSONPath("$.a")
	require.NoError(t, err)
	assert.False(t, MatchJSONPath(expr, "x", "not json"))
}

func TestMatchXPath(t *testing.T) {
	body := `<order id="42"><customer><name> Ada </name></customer><line sku="A1"/><line sku="B2"/></order>`

	tests := []struct {
		path     string
		expected string
		want     bool
	}{
		{"/order/customer/name", "Ada", true},
		{"//name", "Ada", true},
		{"/order/@id", "42", true},
		{"/order/line/@sku", "B2", true},
		{"/order/line/@sku", "C3", false},
		{"/order/missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path+"="+tt.expected, func(t *testing.T) {
			x, err := CompileXPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, MatchXPath(x, tt.expected, body))
		})
	}

	x, err := CompileXPath("/order")
	require.NoError(t, err)
	assert.False(t, MatchXPath(x, "", "{not xml"))
}

func TestMatchSchema(t *testing.T) {
	schema, err := CompileSchema(map[string]any{
		"type":     "object",
		"required": []string{"id"},
		"properties": map[string]any{
			"id": map[string]any{"type": "integer"},
		},
	})
	require.NoError(t, err)

	assert.True(t, MatchSchema(schema, `{"id": 7}`))
	assert.False(t, MatchSchema(schema, `{"id": "7"}`))
	assert.False(t, MatchSchema(schema, `{}`))
	assert.False(t, MatchSchema(schema, `not json`))

	_, err = CompileSchema(`{"type": 12}`)
	assert.Error(t, err)
}

func TestAuthMatchers(t *testing.T) {
	param := BasicParameter("user", "pass")
	assert.Equal(t, "dXNlcjpwYXNz", param)

	assert.True(t, MatchBasicAuth("Basic", param, "user", "pass"))
	assert.False(t, MatchBasicAuth("basic", param, "user", "pass"))
	assert.False(t, MatchBasicAuth("Basic", param, "user", "other"))
	assert.False(t, MatchBasicAuth("Bearer", param, "user", "pass"))

	assert.True(t, MatchBearerToken("Bearer", "tok", "tok"))
	assert.False(t, MatchBearerToken("Bearer", "tok2", "tok"))
	assert.False(t, MatchBearerToken("Token", "tok", "tok"))
}

func TestMatchBearerClaims(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-1",
		"admin": true,
		"level": 3,
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	assert.True(t, MatchBearerClaims("Bearer", token, map[string]any{"sub": "user-1"}))
	assert.True(t, MatchBearerClaims("Bearer", token, map[string]any{"admin": true, "level": 3}))
	assert.False(t, MatchBearerClaims("Bearer", token, map[string]any{"sub": "user-2"}))
	assert.False(t, MatchBearerClaims("Bearer", token, map[string]any{"scope": "x"}))
	assert.False(t, MatchBearerClaims("Basic", token, map[string]any{"sub": "user-1"}))
	assert.False(t, MatchBearerClaims("Bearer", "not-a-jwt", map[string]any{}))
}

func TestMatchExpr(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "https://api.test/orders?id=5", nil)
	require.NoError(t, err)
	req.Header.Set("X-Tenant", "acme")
	c, err := call.Capture(req)
	require.NoError(t, err)

	tests := []struct {
		expression string
		want       bool
	}{
		{`method == "GET"`, true},
		{`path startsWith "/orders" && query.id == "5"`, true},
		{`header["X-Tenant"] == "acme" && host == "api.test"`, true},
		{`method == "POST"`, false},
		{`query.missing == "x"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			program, err := CompileExpr(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, MatchExpr(program, c))
		})
	}

	_, err = CompileExpr(`method +`)
	assert.Error(t, err)
	_, err = CompileExpr(`len(body)`)
	assert.Error(t, err, "non-bool expressions are rejected")
}
