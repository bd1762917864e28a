package usertests

import (
	"net/http"

	"github.com/reqres-qa/reqres-contract-tests/framework/harness"
	"github.com/reqres-qa/reqres-contract-tests/framework/ldtest"
)

// CreatedUser is what the service returns for a newly created user.
type CreatedUser struct {
	ID        string
	Name      string
	Job       string
	CreatedAt string
}

// CreateTestUser creates a throwaway user for a test that needs one to exist. Any failure here
// aborts the calling test before its own assertions run. Nothing is cleaned up afterward;
// users created this way are not persisted by the service.
func CreateTestUser(t *ldtest.T) CreatedUser {
	var user CreatedUser
	t.Fixture("create test user", func() {
		resp := Call(t, harness.Request{
			Method: http.MethodPost,
			Path:   "/users",
			Body:   userParams{Name: testUserName, Job: testUserJob},
		})
		RequireStatus(t, resp, http.StatusCreated)
		user = CreatedUser{
			ID:        AssertNonEmptyField(t, resp, "id"),
			Name:      resp.Field("name").String(),
			Job:       resp.Field("job").String(),
			CreatedAt: resp.Field("createdAt").String(),
		}
	})
	t.Debug("Created test user with ID %s", user.ID)
	return user
}
