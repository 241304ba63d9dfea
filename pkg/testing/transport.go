package testing

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getmockd/fakehttp/pkg/call"
	"github.com/getmockd/fakehttp/pkg/mock"
)

// Transport is an http.RoundTripper that answers requests from a Scope's
// setups instead of the network.
type Transport struct {
	scope *Scope
}

var _ http.RoundTripper = (*Transport)(nil)

// NewTransport returns a transport bound to scope. A nil scope answers every
// request with the default response.
func NewTransport(scope *Scope) *Transport {
	return &Transport{scope: scope}
}

// RoundTrip logs req in the scope's call log and answers it with the first
// matching setup's response, or the default response when none match.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		closeBody(req)
		return nil, err
	}

	s := t.scope
	if s == nil || !s.Active() {
		closeBody(req)
		return mock.DefaultResponse().HTTPResponse(req), nil
	}

	// Capture reads and replaces the body, so work on a shallow copy and
	// leave the caller's request untouched apart from consuming its body.
	r := *req
	c, err := call.Capture(&r)
	if err != nil {
		return nil, err
	}
	s.log.Log(c)

	setup, ok := s.Match(c)
	if !ok {
		s.logger.Debug("no setup matched", "seq", c.Seq, "call", c.String())
		return s.defaultResponse().HTTPResponse(req), nil
	}

	resp := setup.Response()
	if mock.IsTimeout(resp) {
		s.logger.Debug("simulating timeout", "seq", c.Seq, "call", c.String(), "setup", setup.String())
		return nil, &TimeoutError{Call: c}
	}

	s.logger.Debug("setup matched",
		"seq", c.Seq,
		"call", c.String(),
		"setup", setup.String(),
		"status", resp.StatusCode,
	)
	return resp.HTTPResponse(req), nil
}

func closeBody(req *http.Request) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
}

// TimeoutError is returned by Transport for calls whose setup simulates a
// timeout. It satisfies net.Error and unwraps to context.DeadlineExceeded.
type TimeoutError struct {
	Call *call.Call
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("fakehttp: simulated timeout for %s", e.Call)
}

// Timeout always reports true.
func (e *TimeoutError) Timeout() bool { return true }

func (e *TimeoutError) Unwrap() error {
	return context.DeadlineExceeded
}
