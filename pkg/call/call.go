// Package call captures outgoing HTTP requests as immutable snapshots.
//
// A Call is the matching target for setups and the unit stored in the call
// log. It is built once by Capture and never modified afterwards, so it can
// be shared freely between the dispatcher, the log and test assertions.
package call

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Call is a captured snapshot of one outgoing request.
type Call struct {
	// ID uniquely identifies the call.
	ID string `json:"id"`

	// Seq is the 1-based position of the call in its scope's log.
	// Zero when the call was captured without being logged.
	Seq int `json:"seq"`

	// Time is when the call was captured.
	Time time.Time `json:"time"`

	// Method is the HTTP method as sent.
	Method string `json:"method"`

	// URL is the resolved request URL.
	URL *url.URL `json:"-"`

	// Query holds the parsed, possibly repeated, query parameters.
	Query url.Values `json:"query,omitempty"`

	// Header holds the request headers.
	Header http.Header `json:"header,omitempty"`

	// AuthScheme and AuthParameter are the two halves of the Authorization
	// header, split at the first space.
	AuthScheme    string `json:"authScheme,omitempty"`
	AuthParameter string `json:"authParameter,omitempty"`

	// ContentType is the parsed media type of the body, lower-cased.
	ContentType string `json:"contentType,omitempty"`

	// Body is the serialized request body.
	Body string `json:"body,omitempty"`
}

// Capture builds a Call from req. The request body is read fully and
// replaced with an equivalent reader so the caller can still consume it.
func Capture(req *http.Request) (*Call, error) {
	if req == nil || req.URL == nil {
		return nil, fmt.Errorf("capture: request has no URL")
	}

	var body []byte
	if req.Body != nil && req.Body != http.NoBody {
		data, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("capture: reading body: %w", err)
		}
		body = data
		req.Body = io.NopCloser(bytes.NewReader(data))
	}

	u := *req.URL
	if req.URL.User != nil {
		user := *req.URL.User
		u.User = &user
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	header := req.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}

	scheme, param := splitAuthorization(header.Get("Authorization"))

	return &Call{
		ID:            uuid.New().String(),
		Time:          time.Now(),
		Method:        method,
		URL:           &u,
		Query:         u.Query(),
		Header:        header,
		AuthScheme:    scheme,
		AuthParameter: param,
		ContentType:   parseContentType(header.Get("Content-Type")),
		Body:          string(body),
	}, nil
}

// URLString returns the resolved URL as text, or "" when unset.
func (c *Call) URLString() string {
	if c == nil || c.URL == nil {
		return ""
	}
	return c.URL.String()
}

// String returns a short "METHOD URL" form for logs and failure messages.
func (c *Call) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.Method + " " + c.URLString()
}

func splitAuthorization(v string) (scheme, param string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", ""
	}
	scheme, param, _ = strings.Cut(v, " ")
	return scheme, strings.TrimSpace(param)
}

// parseContentType returns the media type without parameters. Values that
// fail to parse are kept verbatim so exact matching still has something to
// compare against.
func parseContentType(v string) string {
	if v == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.TrimSpace(v)
	}
	return mediaType
}
