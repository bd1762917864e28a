package usertests

import (
	"net/http"

	"github.com/reqres-qa/reqres-contract-tests/framework/harness"
	"github.com/reqres-qa/reqres-contract-tests/framework/ldtest"
	"github.com/reqres-qa/reqres-contract-tests/schema"
)

const (
	registeredEmail    = "eve.holt@reqres.in"
	registeredPassword = "pistol"
)

type registerParams struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

func DoRegisterTests(t *ldtest.T) {
	register := func(t *ldtest.T, params registerParams) *harness.Response {
		return Call(t, harness.Request{Method: http.MethodPost, Path: "/register", Body: params})
	}

	t.Run("success", func(t *ldtest.T) {
		resp := register(t, registerParams{Email: registeredEmail, Password: registeredPassword})
		RequireStatus(t, resp, http.StatusOK)
		RequireSchema(t, resp, schema.Register)
		AssertNonEmptyField(t, resp, "token")
	})

	// The service reports missing credentials with a 400 status and a fixed message.
	for _, tc := range []struct {
		name    string
		params  registerParams
		message string
	}{
		{"missing password", registerParams{Email: registeredEmail}, "Missing password"},
		{"missing email", registerParams{Password: registeredPassword}, "Missing email or username"},
	} {
		tc := tc
		t.Run(tc.name, func(t *ldtest.T) {
			resp := register(t, tc.params)
			RequireStatus(t, resp, http.StatusBadRequest)
			RequireSchema(t, resp, schema.Error)
			AssertStringField(t, resp, "error", tc.message)
		})
	}
}
