// Package testing provides an in-process HTTP test double for Go tests.
//
// A Scope holds an ordered list of setups and a call log. Code under test
// sends requests through the scope's Transport (or Client) instead of the
// network; each request is logged and answered by the first setup whose
// matchers all hold, or by a benign default response when none do.
//
// # Basic Usage
//
//	func TestOrders(t *testing.T) {
//	    scope := fakehttp.Begin(t)
//
//	    scope.Mock("GET", "*/orders/*").
//	        WithHeader("X-Api-Key").
//	        RespondJSON(200, map[string]any{"id": 5})
//
//	    client := orders.NewClient(scope.Client())
//	    _, err := client.Get(ctx, 5)
//	    require.NoError(t, err)
//
//	    scope.AssertCalledTimes(t, "GET", "*/orders/5", 1)
//	}
//
// # Matchers
//
// Matchers are validated as they are declared. Declaring the same URL,
// method, body, content type or auth matcher twice on one setup, or a
// header/query matcher together with its exact opposite, fails the test
// immediately with a *mock.ConfigError naming both declarations:
//
//	scope.Setup().WithHeader("X-Trace").WithoutHeader("X-Trace") // fails
//
// Value matchers are globs where "*" matches any run of characters:
//
//	scope.Setup().
//	    WithURL("https://api.example.com/*").
//	    WithQueryParamValue("tag", []string{"a", "b"}).
//	    WithoutQueryParam("debug").
//	    RespondWith(200, "ok")
//
// Structured matchers cover JSON and XML bodies, JWT claims and free-form
// expressions:
//
//	scope.Setup().
//	    WithJSONPath("$.qty", 2).
//	    WithBearerClaims(map[string]any{"sub": "alice"}).
//	    WithExpr(`header["X-Tenant"] == "acme"`)
//
// # Timeouts
//
// SimulateTimeout makes matching calls fail with a *TimeoutError, which
// satisfies net.Error and errors.Is(err, context.DeadlineExceeded):
//
//	scope.Mock("GET", "*/slow").SimulateTimeout()
//
// # Fixtures
//
// Setups can also be declared in YAML and loaded with LoadFixtures:
//
//	- name: list orders
//	  match:
//	    method: GET
//	    urlPath: /orders
//	  respond:
//	    status: 200
//	    json: []
package testing
