package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validUserBody = `{
	"data": {
		"id": 2,
		"email": "janet.weaver@reqres.in",
		"first_name": "Janet",
		"last_name": "Weaver",
		"avatar": "https://reqres.in/img/faces/2-image.jpg"
	},
	"support": {
		"url": "https://contentcaddy.io",
		"text": "Tired of writing endless social media content?"
	}
}`

func mustLookup(t *testing.T, name string) *Schema {
	r, err := BuiltinRegistry()
	require.NoError(t, err)
	s, err := r.Lookup(name)
	require.NoError(t, err)
	return s
}

func requireViolations(t *testing.T, err error) []Violation {
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	return verr.Violations
}

func TestValidUserBody(t *testing.T) {
	assert.NoError(t, mustLookup(t, GetUser).ValidateJSON([]byte(validUserBody)))
}

func TestExtraPropertiesAreAllowed(t *testing.T) {
	s := mustLookup(t, Register)
	assert.NoError(t, s.ValidateJSON([]byte(`{"id":4,"token":"QpwL5tke4Pnpja7X4","extra":[1,2]}`)))
}

func TestMissingProperties(t *testing.T) {
	s := mustLookup(t, GetUser)
	violations := requireViolations(t, s.ValidateJSON([]byte(`{"data":{"id":2,"email":"a@b.co"}}`)))
	assert.Equal(t, []Violation{
		{Path: "support", Kind: Missing, Expected: "object"},
		{Path: "data.first_name", Kind: Missing, Expected: "string"},
		{Path: "data.last_name", Kind: Missing, Expected: "string"},
		{Path: "data.avatar", Kind: Missing, Expected: "string"},
	}, violations)
}

func TestWrongTypes(t *testing.T) {
	s := mustLookup(t, Register)
	violations := requireViolations(t, s.ValidateJSON([]byte(`{"id":"4","token":null}`)))
	assert.Equal(t, []Violation{
		{Path: "id", Kind: WrongType, Expected: "integer", Actual: "string"},
		{Path: "token", Kind: WrongType, Expected: "string", Actual: "null"},
	}, violations)
}

func TestIntegerRejectsFraction(t *testing.T) {
	s := mustLookup(t, Register)
	violations := requireViolations(t, s.ValidateJSON([]byte(`{"id":4.5,"token":"x"}`)))
	require.Len(t, violations, 1)
	assert.Equal(t, Violation{Path: "id", Kind: WrongType, Expected: "integer", Actual: "number"}, violations[0])
}

func TestEmailFormat(t *testing.T) {
	s := mustLookup(t, GetUser)
	body := `{"data":{"id":2,"email":"not an email","first_name":"a","last_name":"b","avatar":"c"},
		"support":{"url":"u","text":"t"}}`
	violations := requireViolations(t, s.ValidateJSON([]byte(body)))
	require.Len(t, violations, 1)
	assert.Equal(t, "data.email", violations[0].Path)
	assert.Equal(t, FormatMismatch, violations[0].Kind)
	assert.Equal(t, "email", violations[0].Expected)
	assert.Equal(t, `"not an email"`, violations[0].Actual)
}

func TestRootWrongType(t *testing.T) {
	s := mustLookup(t, CreateUser)
	violations := requireViolations(t, s.ValidateJSON([]byte(`[]`)))
	assert.Equal(t, []Violation{{Path: "$", Kind: WrongType, Expected: "object", Actual: "array"}}, violations)
}

func TestInvalidJSONBody(t *testing.T) {
	s := mustLookup(t, UpdateUser)
	violations := requireViolations(t, s.ValidateJSON([]byte("")))
	assert.Equal(t, []Violation{{Path: "$", Kind: WrongType, Expected: "object", Actual: "invalid JSON"}}, violations)
}

func TestArrayItems(t *testing.T) {
	r, err := NewRegistry(map[string][]byte{
		"list": []byte(`{"type":"object","properties":{"ids":{"type":"array","items":{"type":"integer"}}},"required":["ids"]}`),
	})
	require.NoError(t, err)
	s, err := r.Lookup("list")
	require.NoError(t, err)

	assert.NoError(t, s.ValidateJSON([]byte(`{"ids":[1,2,3]}`)))
	violations := requireViolations(t, s.ValidateJSON([]byte(`{"ids":[1,"two"]}`)))
	assert.Equal(t, []Violation{{Path: "ids[1]", Kind: WrongType, Expected: "integer", Actual: "string"}}, violations)
}

func TestValidationErrorMessage(t *testing.T) {
	s := mustLookup(t, Error)
	err := s.ValidateJSON([]byte(`{"message":"Missing password"}`))
	require.Error(t, err)
	assert.Equal(t, "value does not match schema \"error\" (1 violation(s)):\n  - error: missing", err.Error())
}
