package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFixtures_Single(t *testing.T) {
	fixtures, err := ParseFixtures([]byte(`
name: health
match:
  method: GET
  url: "*/health"
respond:
  status: 204
`))
	require.NoError(t, err)
	require.Len(t, fixtures, 1)
	assert.Equal(t, "health", fixtures[0].Name)
	assert.Equal(t, "GET", fixtures[0].Match.Method)
	assert.Equal(t, 204, fixtures[0].Respond.Status)
}

func TestParseFixtures_ListAndShapes(t *testing.T) {
	fixtures, err := ParseFixtures([]byte(`
- name: search
  match:
    url: "*/search*"
    headers:
      X-Api-Key: "*"
    withoutHeaders: [X-Debug]
    query:
      color: [red, blue]
      page: 2
    queryParams: [q]
    basicAuth:
      username: user
      password: pass
    jsonPath:
      $.id: 5
  respond:
    json:
      results: []
- name: slow
  match:
    urlPath: /slow/**
  respond:
    timeout: true
`))
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	search := fixtures[0]
	assert.Equal(t, "*", search.Match.Headers["X-Api-Key"])
	assert.Equal(t, []string{"X-Debug"}, search.Match.WithoutHeaders)
	assert.Equal(t, []any{"red", "blue"}, search.Match.Query["color"])
	assert.Equal(t, 2, search.Match.Query["page"])
	assert.Equal(t, []string{"q"}, search.Match.QueryParams)
	require.NotNil(t, search.Match.BasicAuth)
	assert.Equal(t, "user", search.Match.BasicAuth.Username)
	assert.Equal(t, map[string]any{"results": []any{}}, search.Respond.JSON)

	assert.True(t, fixtures[1].Respond.Timeout)
	assert.Equal(t, "/slow/**", fixtures[1].Match.URLPath)
}

func TestParseFixtures_Invalid(t *testing.T) {
	_, err := ParseFixtures([]byte("match: [unclosed"))
	assert.Error(t, err)
}

func TestLoadFixtures_GlobOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "name: second\nrespond:\n  status: 201\n")
	writeFile(t, dir, "a.yaml", "- name: first\n- respond:\n    status: 202\n")
	writeFile(t, dir, "nested/deep/c.yaml", "name: third\n")

	fixtures, err := LoadFixtures(filepath.Join(dir, "*.yaml"))
	require.NoError(t, err)
	require.Len(t, fixtures, 3)
	assert.Equal(t, "first", fixtures[0].Name)
	assert.Equal(t, "a.yaml[1]", fixtures[1].Name, "unnamed fixtures get a positional name")
	assert.Equal(t, "second", fixtures[2].Name)
	assert.Equal(t, filepath.Join(dir, "b.yaml"), fixtures[2].Source)

	recursive, err := LoadFixtures(filepath.Join(dir, "**", "*.yaml"))
	require.NoError(t, err)
	assert.Len(t, recursive, 4)
}

func TestLoadFixtures_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFixtures(filepath.Join(dir, "*.yaml"))
	assert.ErrorIs(t, err, ErrNoFixtures)

	writeFile(t, dir, "empty.yaml", "   \n")
	_, err = LoadFixtureFile(filepath.Join(dir, "empty.yaml"))
	assert.ErrorContains(t, err, "file is empty")

	_, err = LoadFixtureFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "file not found")
}

func TestLoadFixtureFile_ExpandsEnv(t *testing.T) {
	t.Setenv("FIXTURE_TOKEN", "secret-token")
	dir := t.TempDir()
	path := writeFile(t, dir, "auth.yaml", `
name: authed
match:
  bearerToken: ${FIXTURE_TOKEN}
  url: ${FIXTURE_HOST:-http://localhost}/me
`)

	fixtures, err := LoadFixtureFile(path)
	require.NoError(t, err)
	require.Len(t, fixtures, 1)
	assert.Equal(t, "secret-token", fixtures[0].Match.BearerToken)
	assert.Equal(t, "http://localhost/me", fixtures[0].Match.URL)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FAKEHTTP_TEST_VAR", "value")

	assert.Equal(t, "a value b", ExpandEnvVars("a ${FAKEHTTP_TEST_VAR} b"))
	assert.Equal(t, "fallback", ExpandEnvVars("${FAKEHTTP_UNSET_VAR:-fallback}"))
	assert.Equal(t, "", ExpandEnvVars("${FAKEHTTP_UNSET_VAR}"))
	assert.Equal(t, "$NOT_BRACED", ExpandEnvVars("$NOT_BRACED"))
}
