package usertests

import (
	"fmt"
	"net/http"
	"time"

	"github.com/reqres-qa/reqres-contract-tests/framework/harness"
	"github.com/reqres-qa/reqres-contract-tests/framework/ldtest"
	"github.com/reqres-qa/reqres-contract-tests/schema"

	"github.com/stretchr/testify/assert"
)

const (
	existingUserID = 2
	unknownUserID  = 0

	testUserName    = "Testname"
	testUserJob     = "Testjob"
	updatedUserName = "Testnewname"
	updatedUserJob  = "Testnewjob"
)

type userParams struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

func userPath(id interface{}) string {
	return fmt.Sprintf("/users/%v", id)
}

func DoUserTests(t *ldtest.T) {
	t.Run("get", DoGetUserTests)
	t.Run("create", DoCreateUserTests)
	t.Run("update", DoUpdateUserTests)
	t.Run("delete", DoDeleteUserTests)
}

func DoGetUserTests(t *ldtest.T) {
	t.Run("existing user", func(t *ldtest.T) {
		resp := Call(t, harness.Request{Method: http.MethodGet, Path: userPath(existingUserID)})
		RequireStatus(t, resp, http.StatusOK)
		RequireSchema(t, resp, schema.GetUser)
		assert.Equal(t, int64(existingUserID), resp.Field("data.id").Int(), "response was for the wrong user")
	})

	t.Run("unknown user", func(t *ldtest.T) {
		resp := Call(t, harness.Request{Method: http.MethodGet, Path: userPath(unknownUserID)})
		RequireStatus(t, resp, http.StatusNotFound)
	})
}

func DoCreateUserTests(t *ldtest.T) {
	t.Run("success", func(t *ldtest.T) {
		resp := Call(t, harness.Request{
			Method: http.MethodPost,
			Path:   "/users",
			Body:   userParams{Name: testUserName, Job: testUserJob},
		})
		RequireStatus(t, resp, http.StatusCreated)
		RequireSchema(t, resp, schema.CreateUser)
		AssertStringField(t, resp, "name", testUserName)
		AssertStringField(t, resp, "job", testUserJob)
		AssertNonEmptyField(t, resp, "id")
		assertTimestampField(t, resp, "createdAt")
	})
}

func DoUpdateUserTests(t *ldtest.T) {
	t.Run("success", func(t *ldtest.T) {
		user := CreateTestUser(t)

		resp := Call(t, harness.Request{
			Method: http.MethodPut,
			Path:   userPath(user.ID),
			Body:   userParams{Name: updatedUserName, Job: updatedUserJob},
		})
		RequireStatus(t, resp, http.StatusOK)
		RequireSchema(t, resp, schema.UpdateUser)
		AssertStringField(t, resp, "name", updatedUserName)
		AssertStringField(t, resp, "job", updatedUserJob)
		assertTimestampField(t, resp, "updatedAt")
	})
}

func DoDeleteUserTests(t *ldtest.T) {
	t.Run("success", func(t *ldtest.T) {
		user := CreateTestUser(t)

		resp := Call(t, harness.Request{Method: http.MethodDelete, Path: userPath(user.ID)})
		RequireStatus(t, resp, http.StatusNoContent)
		assert.Empty(t, string(resp.Body), "expected an empty body for a deleted user")
	})
}

func assertTimestampField(t *ldtest.T, resp *harness.Response, path string) {
	value := AssertNonEmptyField(t, resp, path)
	if value == "" {
		return
	}
	if _, err := time.Parse(time.RFC3339Nano, value); err != nil {
		assert.Fail(t, "malformed timestamp", "expected %q to be an RFC 3339 timestamp but got %q", path, value)
	}
}
