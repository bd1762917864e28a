package usertests

import (
	"github.com/reqres-qa/reqres-contract-tests/framework/harness"
	"github.com/reqres-qa/reqres-contract-tests/framework/ldtest"
	"github.com/reqres-qa/reqres-contract-tests/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SuiteContext holds the dependencies shared by every test in the suite. It is passed to
// ldtest as the global test context, so tests get it from the *ldtest.T rather than from
// package state.
type SuiteContext struct {
	Client  *harness.APIClient
	Schemas *schema.Registry
}

func requireContext(t *ldtest.T) SuiteContext {
	if c, ok := t.Context().(SuiteContext); ok {
		return c
	}
	panic("SuiteContext was not included in the global test configuration!" +
		" This is a basic mistake in the initialization logic.")
}

// Call sends a request to the service under test. If no response is received at all, the test
// fails and immediately exits.
func Call(t *ldtest.T, req harness.Request) *harness.Response {
	resp, err := requireContext(t).Client.Do(req, t.DebugLogger())
	require.NoError(t, err)
	return resp
}

// RequireStatus fails the test and immediately exits if the response status is not the
// expected one.
func RequireStatus(t *ldtest.T, resp *harness.Response, expected int) {
	if resp.Status != expected {
		require.Fail(t, "unexpected status code",
			"expected status %d but got %d\n%s", expected, resp.Status, resp.Describe())
	}
}

// RequireSchema validates the response body against a schema from the registry, failing the
// test and immediately exiting with a list of every violation if it does not match.
func RequireSchema(t *ldtest.T, resp *harness.Response, schemaName string) {
	s, err := requireContext(t).Schemas.Lookup(schemaName)
	require.NoError(t, err)
	if err := s.ValidateJSON(resp.Body); err != nil {
		require.Fail(t, "response body does not match schema", "%s\n%s", err, resp.Describe())
	}
}

// AssertStringField checks that a property of the response body is a string equal to the
// expected value.
func AssertStringField(t *ldtest.T, resp *harness.Response, path string, expected string) bool {
	field := resp.Field(path)
	if !field.Exists() {
		return assert.Fail(t, "missing field", "expected %q to be %q but it was absent", path, expected)
	}
	return assert.Equal(t, expected, field.String(), "unexpected value for %q", path)
}

// AssertNonEmptyField checks that a property of the response body is present and not an empty
// string, and returns its string form.
func AssertNonEmptyField(t *ldtest.T, resp *harness.Response, path string) string {
	value := resp.Field(path).String()
	assert.NotEmpty(t, value, "expected %q to be non-empty\n%s", path, resp.Describe())
	return value
}
