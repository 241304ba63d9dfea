package config

import (
	"gopkg.in/yaml.v3"
)

// Fixture is a setup declared in YAML.
type Fixture struct {
	Name    string  `yaml:"name,omitempty"`
	Match   Match   `yaml:"match,omitempty"`
	Respond Respond `yaml:"respond,omitempty"`

	// Source is the file the fixture was loaded from.
	Source string `yaml:"-"`
}

// Match lists the conditions of a fixture. Every set field becomes one or
// more matchers on the same setup, so the same contradiction rules apply as
// for setups declared in code.
type Match struct {
	URL         string `yaml:"url,omitempty"`
	URLPath     string `yaml:"urlPath,omitempty"`
	Method      string `yaml:"method,omitempty"`
	ContentType string `yaml:"contentType,omitempty"`

	// Body is either a string pattern or a structure compared as JSON.
	Body any `yaml:"body,omitempty"`

	// Headers maps header names to value globs ("*" for any value).
	Headers        map[string]string `yaml:"headers,omitempty"`
	WithoutHeaders []string          `yaml:"withoutHeaders,omitempty"`

	// Query maps parameter names to a value or list of values.
	Query              map[string]any `yaml:"query,omitempty"`
	WithoutQuery       map[string]any `yaml:"withoutQuery,omitempty"`
	QueryParams        []string       `yaml:"queryParams,omitempty"`
	WithoutQueryParams []string       `yaml:"withoutQueryParams,omitempty"`

	BasicAuth   *BasicAuth `yaml:"basicAuth,omitempty"`
	BearerToken string     `yaml:"bearerToken,omitempty"`

	Expr     string            `yaml:"expr,omitempty"`
	JSONPath map[string]any    `yaml:"jsonPath,omitempty"`
	XPath    map[string]string `yaml:"xpath,omitempty"`
}

// BasicAuth holds expected basic credentials.
type BasicAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Respond describes the planned response of a fixture.
type Respond struct {
	Status  int               `yaml:"status,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Body    string            `yaml:"body,omitempty"`

	// JSON, when set, is encoded as the body with Content-Type application/json.
	JSON any `yaml:"json,omitempty"`

	// Timeout plans a simulated timeout instead of a response.
	Timeout bool `yaml:"timeout,omitempty"`
}

// fixtureFile is a YAML document holding one fixture or a list of them.
type fixtureFile struct {
	Fixtures []Fixture
}

// UnmarshalYAML implements custom YAML unmarshaling to handle both a single
// fixture and a list of fixtures.
func (f *fixtureFile) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&f.Fixtures)
	}

	var single Fixture
	if err := node.Decode(&single); err != nil {
		return err
	}
	f.Fixtures = []Fixture{single}
	return nil
}
