package testing

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/getmockd/fakehttp/pkg/call"
	"github.com/getmockd/fakehttp/pkg/config"
	"github.com/getmockd/fakehttp/pkg/logging"
	"github.com/getmockd/fakehttp/pkg/mock"
	"github.com/getmockd/fakehttp/pkg/requestlog"
)

// Scope is the explicit test scope: it owns the ordered setups and the call
// log for one test, and hands out transports that dispatch against them.
// A scope is active from creation until End.
type Scope struct {
	tb     testing.TB
	cfg    *config.Config
	logger *slog.Logger
	log    requestlog.Store

	mu     sync.RWMutex
	setups []*mock.Setup

	ended atomic.Bool
}

// Option configures a Scope.
type Option func(*Scope)

// WithConfig replaces the default configuration. Environment overrides are
// not applied to an explicit config.
func WithConfig(cfg *config.Config) Option {
	return func(s *Scope) {
		s.cfg = cfg
	}
}

// WithLogger sets the logger used by the scope's transports. A nil logger
// discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scope) {
		s.logger = logging.OrNop(logger)
	}
}

// WithStore replaces the in-memory call log.
func WithStore(store requestlog.Store) Option {
	return func(s *Scope) {
		s.log = store
	}
}

// NewScope creates an active scope that is not bound to a test. Builder
// errors are only available through SetupBuilder.Err.
func NewScope(opts ...Option) (*Scope, error) {
	s := &Scope{}
	for _, opt := range opts {
		opt(s)
	}

	if s.cfg == nil {
		s.cfg = config.DefaultConfig()
		config.LoadEnvConfig(s.cfg)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scope config: %w", err)
	}

	if s.logger == nil {
		lc := logging.DefaultConfig()
		lc.Level = logging.ParseLevel(s.cfg.LogLevel)
		lc.Format = logging.ParseFormat(s.cfg.LogFormat)
		s.logger = logging.New(lc)
	}
	if s.log == nil {
		s.log = requestlog.NewMemoryStore()
	}

	return s, nil
}

// Begin creates an active scope bound to tb and ends it when the test
// completes. Matcher configuration errors fail the test immediately.
func Begin(tb testing.TB, opts ...Option) *Scope {
	tb.Helper()

	s, err := NewScope(opts...)
	if err != nil {
		tb.Fatalf("fakehttp: %v", err)
		return nil
	}
	s.tb = tb
	tb.Cleanup(s.End)
	return s
}

// End deactivates the scope. Transports stop logging and answer every call
// with the default response. The call log stays readable. Safe to call more
// than once.
func (s *Scope) End() {
	if s.ended.CompareAndSwap(false, true) {
		s.logger.Debug("scope ended", "calls", s.log.Count())
	}
}

// Active reports whether End has not been called yet.
func (s *Scope) Active() bool {
	return !s.ended.Load()
}

// Reset removes all setups and clears the call log.
func (s *Scope) Reset() {
	s.mu.Lock()
	s.setups = nil
	s.mu.Unlock()
	s.log.Clear()
}

// Setup declares a new setup after all existing ones and returns its
// builder. With no matchers it matches every call.
//
// Example:
//
//	scope.Setup().
//	    WithURL("*/orders/*").
//	    WithMethod("GET").
//	    RespondWith(200, "[]")
func (s *Scope) Setup() *SetupBuilder {
	setup := mock.NewSetup()
	s.addSetup(setup)
	return newSetupBuilder(s, setup, s.tb)
}

// Mock declares a setup matching method and URL pattern, like
// Setup().WithMethod(method).WithURL(urlPattern).
func (s *Scope) Mock(method, urlPattern string) *SetupBuilder {
	if s.tb != nil {
		s.tb.Helper()
	}
	return s.Setup().WithMethod(method).WithURL(urlPattern)
}

// RespondWith declares a catch-all setup answering every call that earlier
// setups do not match.
func (s *Scope) RespondWith(status int, body any) *SetupBuilder {
	if s.tb != nil {
		s.tb.Helper()
	}
	return s.Setup().RespondWith(status, body)
}

// Setups returns a snapshot of the declared setups in order.
func (s *Scope) Setups() []*mock.Setup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*mock.Setup, len(s.setups))
	copy(out, s.setups)
	return out
}

// Match returns the first setup, in declaration order, that matches c.
func (s *Scope) Match(c *call.Call) (*mock.Setup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, setup := range s.setups {
		if setup.Matches(c) {
			return setup, true
		}
	}
	return nil, false
}

// Transport returns a transport dispatching against this scope.
func (s *Scope) Transport() *Transport {
	return NewTransport(s)
}

// Client returns an http.Client whose transport is this scope.
func (s *Scope) Client() *http.Client {
	return &http.Client{Transport: s.Transport()}
}

// CallLog returns the scope's call log.
func (s *Scope) CallLog() requestlog.Store {
	return s.log
}

// Calls returns every logged call in order.
func (s *Scope) Calls() []*call.Call {
	return s.log.List(nil)
}

// CallsTo returns logged calls whose URL matches the "*" glob.
func (s *Scope) CallsTo(urlPattern string) []*call.Call {
	return s.log.List(&requestlog.Filter{URLPattern: urlPattern})
}

// CallCount returns the number of logged calls.
func (s *Scope) CallCount() int {
	return s.log.Count()
}

func (s *Scope) addSetup(setup *mock.Setup) {
	s.mu.Lock()
	s.setups = append(s.setups, setup)
	s.mu.Unlock()
}

// defaultResponse builds the answer for calls no setup matches.
func (s *Scope) defaultResponse() *mock.Response {
	r := mock.NewResponse(s.cfg.DefaultStatus, []byte(s.cfg.DefaultBody))
	if s.cfg.DefaultContentType != "" {
		r.Header.Set("Content-Type", s.cfg.DefaultContentType)
	}
	return r
}
