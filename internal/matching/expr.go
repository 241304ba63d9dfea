package matching

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/getmockd/fakehttp/pkg/call"
)

// ExprEnv is the environment visible to expression predicates. Query and
// header maps hold the first value for each name; headers are keyed by their
// canonical form ("X-Api-Key").
type ExprEnv struct {
	Method      string            `expr:"method"`
	URL         string            `expr:"url"`
	Host        string            `expr:"host"`
	Path        string            `expr:"path"`
	Query       map[string]string `expr:"query"`
	Header      map[string]string `expr:"header"`
	ContentType string            `expr:"contentType"`
	Body        string            `expr:"body"`
}

// CompileExpr compiles a boolean expression against ExprEnv.
func CompileExpr(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(ExprEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}
	return program, nil
}

// MatchExpr runs a compiled expression against c. Runtime errors count as
// a non-match.
func MatchExpr(program *vm.Program, c *call.Call) bool {
	out, err := expr.Run(program, newExprEnv(c))
	if err != nil {
		return false
	}
	b, ok := out.(bool)
	return ok && b
}

func newExprEnv(c *call.Call) ExprEnv {
	env := ExprEnv{
		Method:      c.Method,
		URL:         c.URLString(),
		Query:       make(map[string]string, len(c.Query)),
		Header:      make(map[string]string, len(c.Header)),
		ContentType: c.ContentType,
		Body:        c.Body,
	}
	if c.URL != nil {
		env.Host = c.URL.Host
		env.Path = c.URL.Path
	}
	for name, values := range c.Query {
		if len(values) > 0 {
			env.Query[name] = values[0]
		}
	}
	for name, values := range c.Header {
		if len(values) > 0 {
			env.Header[name] = values[0]
		}
	}
	return env
}
