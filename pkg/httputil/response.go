// Package httputil builds *http.Response values for in-process transports.
package httputil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// NewResponse builds a complete *http.Response as a real transport would
// return it: status line, protocol version, cloned headers, a fresh body
// reader and the originating request.
func NewResponse(req *http.Request, status int, header http.Header, body []byte) *http.Response {
	if status == 0 {
		status = http.StatusOK
	}

	h := header.Clone()
	if h == nil {
		h = make(http.Header)
	}

	data := make([]byte, len(body))
	copy(data, body)

	var rc io.ReadCloser = http.NoBody
	if len(data) > 0 {
		rc = io.NopCloser(bytes.NewReader(data))
	}
	if req != nil && req.Method == http.MethodHead {
		rc = http.NoBody
	}

	return &http.Response{
		Status:        strconv.Itoa(status) + " " + http.StatusText(status),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        h,
		Body:          rc,
		ContentLength: int64(len(data)),
		Request:       req,
	}
}

// JSONBody encodes data for a response body and returns it with the
// matching Content-Type.
func JSONBody(data any) ([]byte, string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, "", fmt.Errorf("encoding JSON body: %w", err)
	}
	return b, "application/json", nil
}

// ErrorBody is the JSON body used by canned error responses.
func ErrorBody(errCode, message string) []byte {
	b, _ := json.Marshal(map[string]string{
		"error":   errCode,
		"message": message,
	})
	return b
}
