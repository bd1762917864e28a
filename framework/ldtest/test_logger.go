package ldtest

import "github.com/reqres-qa/reqres-contract-tests/framework"

// TestLogger receives notifications about test progress as the test run proceeds.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, status TestStatus, debugOutput framework.CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                                        {}
func (n nullTestLogger) TestError(TestID, error)                                   {}
func (n nullTestLogger) TestFinished(TestID, TestStatus, framework.CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                                {}
