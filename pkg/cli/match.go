package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/fakehttp/pkg/cli/internal/output"
	fakehttp "github.com/getmockd/fakehttp/pkg/testing"
)

// MatchResult describes how a request was answered.
type MatchResult struct {
	Request string      `json:"request"`
	Matched bool        `json:"matched"`
	Fixture string      `json:"fixture,omitempty"`
	Setup   string      `json:"setup,omitempty"`
	Timeout bool        `json:"timeout,omitempty"`
	Status  int         `json:"status,omitempty"`
	Header  http.Header `json:"header,omitempty"`
	Body    string      `json:"body,omitempty"`
}

type matchOptions struct {
	fixtures []string
	method   string
	url      string
	headers  []string
	body     string
}

func newMatchCmd(opts *globalOptions) *cobra.Command {
	mo := &matchOptions{}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Show which fixture answers a request",
		Long: `Load fixtures and send one request through the test double, printing the
first fixture that matched and the response it produced. Unmatched requests
get the default response.`,
		Example: `  fakehttp match -f 'fixtures/*.yaml' --method GET --url https://api.example.com/orders/42
  fakehttp match -f orders.yaml -X POST --url https://api.example.com/orders \
      -H 'Content-Type: application/json' --body '{"qty":2}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.config()
			scope, err := fakehttp.NewScope(
				fakehttp.WithConfig(cfg),
				fakehttp.WithLogger(opts.logger(cfg, cmd.ErrOrStderr())),
			)
			if err != nil {
				return err
			}
			defer scope.End()

			if err := scope.LoadFixtures(mo.fixtures...); err != nil {
				return err
			}

			req, err := mo.request()
			if err != nil {
				return err
			}

			result, err := runMatch(scope, req)
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				return output.JSON(cmd.OutOrStdout(), result)
			}
			printMatch(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&mo.fixtures, "fixtures", "f", nil, "Fixture file glob (can be specified multiple times)")
	cmd.Flags().StringVarP(&mo.method, "method", "X", http.MethodGet, "Request method")
	cmd.Flags().StringVar(&mo.url, "url", "", "Request URL")
	cmd.Flags().StringArrayVarP(&mo.headers, "header", "H", nil, "Request header as 'Name: value' (can be specified multiple times)")
	cmd.Flags().StringVar(&mo.body, "body", "", "Request body")
	_ = cmd.MarkFlagRequired("fixtures")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func (o *matchOptions) request() (*http.Request, error) {
	var body io.Reader
	if o.body != "" {
		body = strings.NewReader(o.body)
	}
	req, err := http.NewRequest(strings.ToUpper(o.method), o.url, body)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	for _, h := range o.headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q: expected 'Name: value'", h)
		}
		req.Header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	return req, nil
}

// runMatch dispatches req through scope and reports the winning setup.
func runMatch(scope *fakehttp.Scope, req *http.Request) (*MatchResult, error) {
	result := &MatchResult{Request: req.Method + " " + req.URL.String()}

	resp, err := scope.Transport().RoundTrip(req)

	calls := scope.Calls()
	if len(calls) > 0 {
		if setup, ok := scope.Match(calls[len(calls)-1]); ok {
			result.Matched = true
			result.Fixture = setup.Name()
			result.Setup = setup.Describe()
		}
	}

	if err != nil {
		var timeoutErr *fakehttp.TimeoutError
		if !errors.As(err, &timeoutErr) {
			return nil, err
		}
		result.Timeout = true
		return result, nil
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	result.Status = resp.StatusCode
	result.Header = resp.Header
	result.Body = string(data)
	return result, nil
}

func printMatch(w io.Writer, r *MatchResult) {
	fmt.Fprintln(w, r.Request)
	if r.Matched {
		name := r.Fixture
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(w, "  matched: %s\n", name)
		fmt.Fprintf(w, "  when:    %s\n", r.Setup)
	} else {
		fmt.Fprintln(w, "  matched: none (default response)")
	}
	if r.Timeout {
		fmt.Fprintln(w, "  result:  simulated timeout")
		return
	}
	fmt.Fprintf(w, "  status:  %d %s\n", r.Status, http.StatusText(r.Status))
	if r.Body != "" {
		fmt.Fprintf(w, "  body:    %s\n", r.Body)
	}
}
