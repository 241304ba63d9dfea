package testing

import (
	"net/http"
	stdtesting "testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/fakehttp/pkg/config"
	"github.com/getmockd/fakehttp/pkg/mock"
)

func TestBuildFixture(t *stdtesting.T) {
	fixtures, err := config.ParseFixtures([]byte(`
name: create order
match:
  method: POST
  url: "*/orders"
  contentType: application/json
  headers:
    X-Api-Key: "*"
  withoutHeaders: [X-Debug]
  query:
    tag: [a, b]
  jsonPath:
    $.qty: 2
respond:
  status: 201
  headers:
    Location: /orders/5
  json:
    id: 5
`))
	require.NoError(t, err)
	require.Len(t, fixtures, 1)

	s := newDetachedScope(t)
	setup, err := BuildFixture(s, &fixtures[0])
	require.NoError(t, err)
	assert.Equal(t, "create order", setup.Name())
	assert.Equal(t, 8, setup.Len())

	r := setup.Response()
	assert.Equal(t, http.StatusCreated, r.StatusCode)
	assert.Equal(t, "/orders/5", r.Header.Get("Location"))
	assert.JSONEq(t, `{"id":5}`, string(r.Body))

	// Building does not declare.
	assert.Empty(t, s.Setups())
}

func TestBuildFixtureReportsContradiction(t *stdtesting.T) {
	f := &config.Fixture{
		Name:   "broken",
		Source: "broken.yaml",
		Match: config.Match{
			Headers:        map[string]string{"X-Api-Key": "*"},
			WithoutHeaders: []string{"x-api-key"},
		},
	}

	_, err := BuildFixture(newDetachedScope(t), f)
	require.Error(t, err)
	assert.ErrorIs(t, err, mock.ErrContradictoryMatcher)
	assert.Contains(t, err.Error(), `fixture "broken" (broken.yaml)`)
}

func TestApplyFixturesSkipsBrokenOnes(t *stdtesting.T) {
	fixtures := []config.Fixture{
		{Name: "ok", Match: config.Match{Method: "GET"}},
		{Name: "bad", Match: config.Match{URL: "*/a", URLPath: "/a"}},
		{Name: "bad expr", Match: config.Match{Expr: "method =="}},
		{Name: "timeout", Respond: config.Respond{Timeout: true}},
	}

	s := newTestScope(t)
	err := s.ApplyFixtures(fixtures)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad"`)
	assert.Contains(t, err.Error(), `"bad expr"`)

	setups := s.Setups()
	require.Len(t, setups, 2)
	assert.Equal(t, "ok", setups[0].Name())
	assert.True(t, mock.IsTimeout(setups[1].Response()))
}
