package testing

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/getmockd/fakehttp/pkg/config"
	"github.com/getmockd/fakehttp/pkg/mock"
)

// LoadFixtures loads YAML fixtures matching the glob patterns and declares
// them as setups, in file then document order.
func (s *Scope) LoadFixtures(patterns ...string) error {
	fixtures, err := config.LoadFixtures(patterns...)
	if err != nil {
		return err
	}
	return s.ApplyFixtures(fixtures)
}

// ApplyFixtures declares one setup per fixture, in order. A fixture with a
// configuration error is skipped and reported; the rest are still declared.
// Errors are returned joined rather than failing the bound test.
func (s *Scope) ApplyFixtures(fixtures []config.Fixture) error {
	var errs []error
	for i := range fixtures {
		setup, err := BuildFixture(s, &fixtures[i])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s.addSetup(setup)
		s.logger.Debug("fixture declared", "name", fixtures[i].Name, "source", fixtures[i].Source, "setup", setup.String())
	}
	return errors.Join(errs...)
}

// BuildFixture turns a fixture into a setup without declaring it. The
// returned error names the fixture and its source file.
func BuildFixture(s *Scope, f *config.Fixture) (*mock.Setup, error) {
	b := newSetupBuilder(s, mock.NewSetup(), nil)
	if f.Name != "" {
		b.Named(f.Name)
	}

	m := f.Match
	if m.URL != "" {
		b.WithURL(m.URL)
	}
	if m.URLPath != "" {
		b.WithURLPath(m.URLPath)
	}
	if m.Method != "" {
		b.WithMethod(m.Method)
	}
	if m.ContentType != "" {
		b.WithContentType(m.ContentType)
	}
	if m.Body != nil {
		b.WithBody(m.Body)
	}
	for _, name := range sortedStringKeys(m.Headers) {
		b.WithHeader(name, m.Headers[name])
	}
	for _, name := range m.WithoutHeaders {
		b.WithoutHeader(name)
	}
	for _, name := range m.QueryParams {
		b.WithQueryParam(name)
	}
	for _, name := range m.WithoutQueryParams {
		b.WithoutQueryParam(name)
	}
	if len(m.Query) > 0 {
		b.WithQueryParams(m.Query)
	}
	if len(m.WithoutQuery) > 0 {
		b.WithoutQueryParams(m.WithoutQuery)
	}
	if m.BasicAuth != nil {
		b.WithBasicAuth(m.BasicAuth.Username, m.BasicAuth.Password)
	}
	if m.BearerToken != "" {
		b.WithBearerToken(m.BearerToken)
	}
	if m.Expr != "" {
		b.WithExpr(m.Expr)
	}
	for _, path := range sortedKeys(m.JSONPath) {
		b.WithJSONPath(path, m.JSONPath[path])
	}
	for _, path := range sortedStringKeys(m.XPath) {
		b.WithXPath(path, m.XPath[path])
	}

	r := f.Respond
	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	switch {
	case r.Timeout:
		b.SimulateTimeout()
	case r.JSON != nil:
		b.RespondJSON(status, r.JSON)
	default:
		b.RespondWith(status, r.Body)
	}
	if !r.Timeout {
		for _, name := range sortedStringKeys(r.Headers) {
			b.RespondHeader(name, r.Headers[name])
		}
	}

	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("fixture %q (%s): %w", f.Name, f.Source, err)
	}
	return b.Setup(), nil
}

func sortedStringKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
