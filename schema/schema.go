package schema

import (
	"fmt"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const rootPath = "$"

var knownTypes = map[string]bool{
	"object":  true,
	"array":   true,
	"string":  true,
	"integer": true,
	"number":  true,
	"boolean": true,
	"null":    true,
}

// document is the subset of JSON Schema that Schema understands. Other keywords are accepted by
// NewRegistry but do not take part in validation.
type document struct {
	Type       string               `json:"type"`
	Format     string               `json:"format"`
	Properties map[string]*document `json:"properties"`
	Required   []string             `json:"required"`
	Items      *document            `json:"items"`
}

// Schema is a structural description of an expected JSON value: its type, and for objects the
// declared and required properties. Schemas are obtained from a Registry and never change.
type Schema struct {
	name       string
	typ        string
	format     string
	properties map[string]*Schema
	propOrder  []string
	required   []string
	items      *Schema
}

func fromDocument(d *document, path string) (*Schema, error) {
	if d.Type != "" && !knownTypes[d.Type] {
		return nil, fmt.Errorf("%s: unsupported type %q", path, d.Type)
	}
	if d.Format != "" {
		if _, ok := jsonschema.Formats[d.Format]; !ok {
			return nil, fmt.Errorf("%s: unsupported format %q", path, d.Format)
		}
	}
	s := &Schema{
		typ:      d.Type,
		format:   d.Format,
		required: append([]string(nil), d.Required...),
	}
	if len(d.Properties) > 0 {
		s.properties = make(map[string]*Schema, len(d.Properties))
		for key, prop := range d.Properties {
			child, err := fromDocument(prop, joinPath(path, key))
			if err != nil {
				return nil, err
			}
			s.properties[key] = child
			s.propOrder = append(s.propOrder, key)
		}
		sort.Strings(s.propOrder)
	}
	for _, key := range s.required {
		if _, ok := s.properties[key]; !ok {
			return nil, fmt.Errorf("%s: required property %q is not declared in properties", path, key)
		}
	}
	if d.Items != nil {
		items, err := fromDocument(d.Items, path+"[]")
		if err != nil {
			return nil, err
		}
		s.items = items
	}
	return s, nil
}

// Name returns the name the schema was registered under.
func (s *Schema) Name() string { return s.name }

// Type returns the declared JSON type, or "" if any type is allowed.
func (s *Schema) Type() string { return s.typ }

// Required returns the names of the required properties.
func (s *Schema) Required() []string {
	return append([]string(nil), s.required...)
}

// Property returns the schema for a declared property, or nil.
func (s *Schema) Property(name string) *Schema {
	return s.properties[name]
}

func joinPath(parent, key string) string {
	if parent == rootPath {
		return key
	}
	return parent + "." + key
}
