package usertests

import (
	"github.com/reqres-qa/reqres-contract-tests/framework/ldtest"
)

func RunTestSuite(
	suiteContext SuiteContext,
	filter ldtest.Filter,
	testLogger ldtest.TestLogger,
) ldtest.Results {
	config := ldtest.TestConfiguration{
		Filter:     filter,
		TestLogger: testLogger,
		Context:    suiteContext,
	}
	return ldtest.Run(config, func(t *ldtest.T) {
		t.Run("users", DoUserTests)
		t.Run("register", DoRegisterTests)
	})
}
