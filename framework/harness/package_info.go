// Package harness contains the HTTP side of the contract test framework: the APIClient that
// tests use to call the service under test, and transports that can stand in for the real
// service.
package harness
