package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ViolationKind describes how a value failed to match its schema.
type ViolationKind int

const (
	// Missing means a required property was absent.
	Missing ViolationKind = iota
	// WrongType means a value had a different JSON type than declared.
	WrongType
	// FormatMismatch means a string did not match the declared format, such as "email".
	FormatMismatch
)

func (k ViolationKind) String() string {
	switch k {
	case Missing:
		return "missing"
	case WrongType:
		return "wrong type"
	case FormatMismatch:
		return "format mismatch"
	default:
		return fmt.Sprintf("ViolationKind(%d)", int(k))
	}
}

// Violation is one way in which a value did not match a schema.
type Violation struct {
	// Path is the dotted property path from the root of the document, or "$" for the root.
	Path     string
	Kind     ViolationKind
	Expected string
	Actual   string
}

func (v Violation) String() string {
	if v.Kind == Missing {
		return fmt.Sprintf("%s: %s", v.Path, v.Kind)
	}
	return fmt.Sprintf("%s: %s (expected %s, got %s)", v.Path, v.Kind, v.Expected, v.Actual)
}

// ValidationError is returned when a value does not match a schema. It lists every violation
// found, not only the first.
type ValidationError struct {
	Schema     string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Violations)+1)
	lines = append(lines, fmt.Sprintf("value does not match schema %q (%d violation(s)):", e.Schema, len(e.Violations)))
	for _, v := range e.Violations {
		lines = append(lines, "  - "+v.String())
	}
	return strings.Join(lines, "\n")
}

// Validate checks a JSON value against the schema. It returns nil if the value matches, or a
// *ValidationError.
//
// Properties that the schema does not declare are ignored.
func (s *Schema) Validate(value ldvalue.Value) error {
	var violations []Violation
	s.validate(rootPath, value, &violations)
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Schema: s.name, Violations: violations}
}

// ValidateJSON is the same as Validate, but parses the value from raw JSON first. Data that is
// not valid JSON is reported as a WrongType violation at the root.
func (s *Schema) ValidateJSON(data []byte) error {
	var value ldvalue.Value
	if err := json.Unmarshal(data, &value); err != nil {
		return &ValidationError{
			Schema: s.name,
			Violations: []Violation{{
				Path:     rootPath,
				Kind:     WrongType,
				Expected: s.expectedType(),
				Actual:   "invalid JSON",
			}},
		}
	}
	return s.Validate(value)
}

func (s *Schema) validate(path string, value ldvalue.Value, out *[]Violation) {
	if s.typ != "" && !matchesType(s.typ, value) {
		*out = append(*out, Violation{Path: path, Kind: WrongType, Expected: s.typ, Actual: typeName(value)})
		return
	}

	switch value.Type() {
	case ldvalue.ObjectType:
		present := make(map[string]bool)
		for _, key := range value.Keys() {
			present[key] = true
		}
		for _, key := range s.required {
			if !present[key] {
				*out = append(*out, Violation{Path: joinPath(path, key), Kind: Missing, Expected: s.properties[key].expectedType()})
			}
		}
		for _, key := range s.propOrder {
			if present[key] {
				s.properties[key].validate(joinPath(path, key), value.GetByKey(key), out)
			}
		}
	case ldvalue.ArrayType:
		if s.items != nil {
			for i := 0; i < value.Count(); i++ {
				s.items.validate(fmt.Sprintf("%s[%d]", path, i), value.GetByIndex(i), out)
			}
		}
	case ldvalue.StringType:
		if s.format != "" && !jsonschema.Formats[s.format](value.StringValue()) {
			*out = append(*out, Violation{Path: path, Kind: FormatMismatch, Expected: s.format, Actual: value.JSONString()})
		}
	}
}

func (s *Schema) expectedType() string {
	if s == nil || s.typ == "" {
		return "any"
	}
	return s.typ
}

func matchesType(typ string, value ldvalue.Value) bool {
	switch typ {
	case "object":
		return value.Type() == ldvalue.ObjectType
	case "array":
		return value.Type() == ldvalue.ArrayType
	case "string":
		return value.Type() == ldvalue.StringType
	case "integer":
		return value.IsInt()
	case "number":
		return value.IsNumber()
	case "boolean":
		return value.Type() == ldvalue.BoolType
	case "null":
		return value.IsNull()
	default:
		return true
	}
}

func typeName(value ldvalue.Value) string {
	switch value.Type() {
	case ldvalue.NullType:
		return "null"
	case ldvalue.BoolType:
		return "boolean"
	case ldvalue.NumberType:
		if value.IsInt() {
			return "integer"
		}
		return "number"
	case ldvalue.StringType:
		return "string"
	case ldvalue.ArrayType:
		return "array"
	default:
		return "object"
	}
}
