package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersFixtures = `
- name: get order
  match:
    method: GET
    url: "*/orders/*"
  respond:
    status: 200
    json: {id: 42}
- name: missing order
  match:
    url: "*/orders/42"
  respond:
    status: 404
- name: slow
  match:
    urlPath: /slow
  respond:
    timeout: true
`

const brokenFixtures = `
- name: contradictory
  match:
    headers:
      X-Api-Key: "*"
    withoutHeaders: [X-Api-Key]
- name: fine
  match:
    method: POST
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLintValidFixtures(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "orders.yaml", ordersFixtures)

	out, err := execute(t, "lint", filepath.Join(dir, "*.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "get order")
	assert.Contains(t, out, `url matches "*/orders/*" and method is GET`)
	assert.NotContains(t, out, "FAIL")
}

func TestLintReportsInvalidFixtures(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "broken.yaml", brokenFixtures)

	out, err := execute(t, "lint", "--json", filepath.Join(dir, "*.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLintFailed)

	var results []LintResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "contradictory", results[0].Name)
	assert.Contains(t, results[0].Error, "contradictory matcher")
	assert.Empty(t, results[1].Error)
	assert.Equal(t, "method is POST", results[1].Setup)
}

func TestLintRequiresArgs(t *testing.T) {
	_, err := execute(t, "lint")
	assert.Error(t, err)
}

func TestMatchFirstDeclaredWins(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "orders.yaml", ordersFixtures)

	out, err := execute(t, "match", "--json", "-f", path, "--url", "https://api.example.com/orders/42")
	require.NoError(t, err)

	var result MatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Matched)
	assert.Equal(t, "get order", result.Fixture)
	assert.Equal(t, 200, result.Status)
	assert.JSONEq(t, `{"id":42}`, result.Body)
}

func TestMatchTimeoutAndDefault(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "orders.yaml", ordersFixtures)

	out, err := execute(t, "match", "-f", path, "--url", "http://example.com/slow")
	require.NoError(t, err)
	assert.Contains(t, out, "matched: slow")
	assert.Contains(t, out, "simulated timeout")

	out, err = execute(t, "match", "-f", path, "-X", "post", "--url", "http://example.com/users",
		"-H", "Content-Type: application/json", "--body", "{}")
	require.NoError(t, err)
	assert.Contains(t, out, "POST http://example.com/users")
	assert.Contains(t, out, "matched: none")
	assert.Contains(t, out, "status:  200 OK")
}

func TestMatchRejectsBadHeader(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "orders.yaml", ordersFixtures)

	_, err := execute(t, "match", "-f", path, "--url", "http://example.com/", "-H", "no-colon")
	assert.Error(t, err)
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--json")
	require.NoError(t, err)

	var v VersionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.NotEmpty(t, v.Version)
	assert.NotEmpty(t, v.Go)
}
