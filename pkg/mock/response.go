package mock

import (
	"net/http"

	"github.com/getmockd/fakehttp/pkg/httputil"
)

// Response is a canned HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Timeout is the sentinel plan for a simulated timeout. It is recognized by
// identity only: a Response with the same field values is an ordinary
// response.
var Timeout = &Response{}

// IsTimeout reports whether r is the Timeout sentinel.
func IsTimeout(r *Response) bool {
	return r == Timeout
}

// DefaultResponse is the benign answer for calls no setup matches:
// 200 OK with an empty body.
func DefaultResponse() *Response {
	return &Response{StatusCode: http.StatusOK}
}

// NewResponse returns a response with the given status and body.
func NewResponse(status int, body []byte) *Response {
	return &Response{StatusCode: status, Header: make(http.Header), Body: body}
}

// HTTPResponse materializes r for req. Each call gets its own header map
// and body reader.
func (r *Response) HTTPResponse(req *http.Request) *http.Response {
	return httputil.NewResponse(req, r.StatusCode, r.Header, r.Body)
}
