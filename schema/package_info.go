// Package schema holds the structural contracts that API responses are checked against.
//
// Schemas are written as JSON Schema documents and loaded into an immutable Registry once at
// startup. Validation is structural: required properties must be present with the declared
// type, strings with a declared format must match it, and undeclared properties are allowed.
package schema
