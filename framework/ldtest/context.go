package ldtest

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/reqres-qa/reqres-contract-tests/framework"
)

// TestConfiguration holds the global settings for a test run.
type TestConfiguration struct {
	// Filter, if not nil, selects which tests to run.
	Filter Filter

	// TestLogger receives progress notifications. If nil, nothing is logged.
	TestLogger TestLogger

	// Context is an arbitrary value that domain-specific test code can retrieve with T.Context().
	// It is how shared, immutable dependencies such as API clients reach the tests.
	Context interface{}
}

type environment struct {
	config  TestConfiguration
	results Results
}

// T represents a test or subtest.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner, and with some extra features such as captured debug output and
// fixture scopes. To make test assertions, use the assert and require packages, passing the *T
// as if it were a *testing.T.
type T struct {
	env         *environment
	id          TestID
	debugLogger framework.CapturingLogger
	failed      bool
	aborted     bool
	skipped     bool
	skipReason  string
	hasSubtests bool
	fixture     string
	errors      []error
	cleanups    []func()
}

// Run starts a test run and returns the results once action, and any subtests it starts, have
// completed.
func Run(config TestConfiguration, action func(*T)) Results {
	if config.TestLogger == nil {
		config.TestLogger = nullTestLogger{}
	}
	env := &environment{config: config}
	t := &T{env: env}
	t.run(action)
	return env.results
}

func (t *T) run(action func(*T)) {
	defer func() {
		if r := recover(); r != nil {
			if !t.skipped {
				t.failed = true
				var addError error
				if _, ok := r.(*T); ok {
					if len(t.errors) == 0 {
						addError = errors.New("test failed with no failure message")
					}
				} else {
					addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
				}
				if addError != nil {
					t.addError(addError)
				}
			}
		}
		t.fixture = ""
		t.runCleanups()
		t.record()
	}()

	action(t)
}

func (t *T) record() {
	if len(t.id.Path) == 0 || (t.hasSubtests && !t.failed) {
		return // only leaf tests, and groups that failed on their own, count as results
	}
	result := TestResult{TestID: t.id, Errors: t.errors, Status: t.status(), SkipReason: t.skipReason}
	t.env.results.Tests = append(t.env.results.Tests, result)
	if t.failed {
		t.env.results.Failures = append(t.env.results.Failures, result)
	}
}

func (t *T) status() TestStatus {
	switch {
	case t.skipped:
		return StatusSkipped
	case t.aborted:
		return StatusAborted
	case t.failed:
		return StatusFailed
	default:
		return StatusPassed
	}
}

func (t *T) runCleanups() {
	for len(t.cleanups) > 0 {
		n := len(t.cleanups) - 1
		fn := t.cleanups[n]
		t.cleanups = t.cleanups[:n]
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.failed = true
					t.addError(fmt.Errorf("unexpected panic in deferred cleanup: %+v", r))
				}
			}()
			fn()
		}()
	}
}

// ID returns the unique identifier of this test.
func (t *T) ID() TestID {
	return t.id
}

// Context returns the Context value from the TestConfiguration.
func (t *T) Context() interface{} {
	return t.env.config.Context
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.hasSubtests = true
	id := t.id.Plus(name)
	logger := t.env.config.TestLogger

	logger.TestStarted(id)
	if filter := t.env.config.Filter; filter != nil && !filter(id) {
		reason := "excluded by filter parameters"
		t.env.results.Tests = append(t.env.results.Tests,
			TestResult{TestID: id, Status: StatusSkipped, SkipReason: reason})
		logger.TestSkipped(id, reason)
		return
	}
	t1 := &T{
		id:  id,
		env: t.env,
	}
	t1.run(action)
	if t1.skipped {
		logger.TestSkipped(id, t1.skipReason)
	} else {
		logger.TestFinished(id, t1.status(), t1.debugLogger.Output())
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
//
// If this is called within a fixture scope, the error is wrapped in a *FixtureError and the test
// will be reported as aborted.
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	t.addError(fmt.Errorf(format, args...))
}

func (t *T) addError(err error) {
	if t.fixture != "" {
		t.aborted = true
		err = &FixtureError{Fixture: t.fixture, Err: err}
	}
	t.errors = append(t.errors, err)
	t.env.config.TestLogger.TestError(t.id, err)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.failed = true
	if t.fixture != "" {
		t.aborted = true
	}
	panic(t)
}

// Failed returns true if the test has failed so far.
func (t *T) Failed() bool {
	return t.failed
}

// Skip marks the test as skipped and immediately exits.
func (t *T) Skip() {
	t.skipped = true
	panic(t)
}

// SkipWithReason is the same as Skip, but provides a reason to show in the test output.
func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Defer schedules a function to run when the test ends, whether it passed or failed. Deferred
// functions run in reverse order.
func (t *T) Defer(fn func()) {
	t.cleanups = append(t.cleanups, fn)
}

// Fixture runs setup logic that the rest of the test depends on. If any assertion fails while
// the action is running, the test exits as soon as the action returns (or immediately, for
// require-style assertions), and it is reported as aborted rather than failed.
func (t *T) Fixture(description string, action func()) {
	outer := t.fixture
	t.fixture = description
	errorCount := len(t.errors)
	action()
	t.fixture = outer
	if len(t.errors) > errorCount {
		t.aborted = true
		panic(t)
	}
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to this test's debug output. Inside a fixture scope,
// messages are prefixed with the fixture description.
func (t *T) DebugLogger() framework.Logger {
	if t.fixture != "" {
		return framework.LoggerWithPrefix(&t.debugLogger, "["+t.fixture+"] ")
	}
	return &t.debugLogger
}
