package ldtest

import (
	"fmt"
	"strings"
)

// Results is the accumulated outcome of a test run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// TestStatus is the final state of a single test.
type TestStatus int

const (
	StatusPassed TestStatus = iota
	StatusFailed
	// StatusAborted means the test could not run its own assertions because a fixture it
	// depends on failed.
	StatusAborted
	StatusSkipped
)

func (s TestStatus) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusAborted:
		return "aborted"
	case StatusSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("TestStatus(%d)", int(s))
	}
}

type TestResult struct {
	TestID     TestID
	Status     TestStatus
	Errors     []error
	SkipReason string
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Count returns the number of recorded tests that ended with the given status.
func (r Results) Count(status TestStatus) int {
	n := 0
	for _, t := range r.Tests {
		if t.Status == status {
			n++
		}
	}
	return n
}

// Ran returns the number of recorded tests that were actually executed, that is, not skipped.
func (r Results) Ran() int {
	return len(r.Tests) - r.Count(StatusSkipped)
}

type TestID struct {
	Path []string
}

// Plus returns a new TestID for a subtest of this one.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// FixtureError wraps any failure that happened inside a fixture scope (see T.Fixture). Tests
// that fail this way are reported as aborted rather than failed.
type FixtureError struct {
	Fixture string
	Err     error
}

func (e *FixtureError) Error() string {
	return fmt.Sprintf("fixture %q failed: %s", e.Fixture, e.Err)
}

func (e *FixtureError) Unwrap() error { return e.Err }
