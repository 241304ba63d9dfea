package call

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	req, err := http.NewRequest(http.MethodPost, "https://api.example.com/orders?id=5&tag=a&tag=b", strings.NewReader(`{"qty":2}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer  abc.def")
	req.Header.Set("X-Api-Key", "k1")

	c, err := Capture(req)
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, http.MethodPost, c.Method)
	assert.Equal(t, "https://api.example.com/orders?id=5&tag=a&tag=b", c.URLString())
	assert.Equal(t, []string{"a", "b"}, c.Query["tag"])
	assert.Equal(t, "application/json", c.ContentType)
	assert.Equal(t, "Bearer", c.AuthScheme)
	assert.Equal(t, "abc.def", c.AuthParameter)
	assert.Equal(t, `{"qty":2}`, c.Body)
	assert.Equal(t, "POST https://api.example.com/orders?id=5&tag=a&tag=b", c.String())

	// The body must still be readable by whoever holds the request.
	rest, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"qty":2}`, string(rest))
}

func TestCaptureIsASnapshot(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://example.com/a?x=1", nil)
	require.NoError(t, err)
	req.Header.Set("X-Trace", "one")

	c, err := Capture(req)
	require.NoError(t, err)

	req.Header.Set("X-Trace", "two")
	req.URL.Path = "/b"

	assert.Equal(t, "one", c.Header.Get("X-Trace"))
	assert.Equal(t, "/a", c.URL.Path)
}

func TestCaptureDefaults(t *testing.T) {
	req := &http.Request{URL: mustRequest(t, "http://example.com/").URL}

	c, err := Capture(req)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, c.Method)
	assert.Empty(t, c.Body)
	assert.Empty(t, c.AuthScheme)
	assert.NotNil(t, c.Header)
}

func TestCaptureNilRequest(t *testing.T) {
	_, err := Capture(nil)
	assert.Error(t, err)
}

func TestParseContentType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"application/json", "application/json"},
		{"Text/Plain; charset=UTF-8", "text/plain"},
		{"not a media type;;", "not a media type;;"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseContentType(tt.in))
		})
	}
}

func mustRequest(t *testing.T, raw string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, raw, nil)
	require.NoError(t, err)
	return req
}
