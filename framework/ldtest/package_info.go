// Package ldtest provides a test context, T, that behaves like Go's testing.T but can be used
// in a standalone program such as a contract test runner.
//
// Tests are organized as a tree: Run starts the root, and T.Run starts named subtests. Each
// leaf test's outcome is collected into Results. A T implements require.TestingT, so the
// testify assertion packages can be used with it directly.
package ldtest
