package testing

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	stdtesting "testing"

	"github.com/stretchr/testify/require"

	"github.com/getmockd/fakehttp/pkg/logging"
)

// recordingTB records failures instead of failing the real test.
type recordingTB struct {
	stdtesting.TB

	mu     sync.Mutex
	fatals []string
	errors []string
}

func newRecordingTB(t *stdtesting.T) *recordingTB {
	return &recordingTB{TB: t}
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}

func (r *recordingTB) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingTB) Fatals() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.fatals...)
}

func (r *recordingTB) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}

func newTestScope(t *stdtesting.T) *Scope {
	t.Helper()
	return Begin(t, WithLogger(logging.Nop()))
}

func newDetachedScope(t *stdtesting.T) *Scope {
	t.Helper()
	s, err := NewScope(WithLogger(logging.Nop()))
	require.NoError(t, err)
	return s
}

func send(t *stdtesting.T, client *http.Client, method, url, body string, header ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Add(header[i], header[i+1])
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *stdtesting.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}
