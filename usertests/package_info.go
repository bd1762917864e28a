// Package usertests contains the contract tests for the reqres user and registration
// endpoints, and the small domain-specific API they are written with.
//
// Infrastructure that is not specific to this API, such as the test context, the HTTP client
// and the replay transport, is in the lower-level framework packages. Response shapes are
// defined in the schema package.
package usertests
