// Package framework contains the low-level implementation of contract test infrastructure
// that can be reused for different kinds of HTTP APIs. The base package contains shared
// types such as Logger; other components are in the subpackages harness and ldtest.
//
// The general model is:
//
// 1. The test harness talks to a REST service through an API client (package harness). The
// client's transport can be the real network, an in-process server, or a replayed recording.
//
// 2. There is a general notion of a test context which is similar to Go's testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results (package ldtest).
//
// The domain-specific code that knows what is being tested is responsible for providing
// the requests to send, the expected response shapes, and a domain-specific test API on top
// of the test context.
package framework
