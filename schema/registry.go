package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Names of the built-in response schemas.
const (
	GetUser    = "get user"
	Register   = "register"
	CreateUser = "create user"
	UpdateUser = "update user"
	Error      = "error"
)

//go:embed schemas/*.json
var builtinFS embed.FS

var builtinFiles = map[string]string{
	GetUser:    "schemas/get_user.json",
	Register:   "schemas/register.json",
	CreateUser: "schemas/create_user.json",
	UpdateUser: "schemas/update_user.json",
	Error:      "schemas/error.json",
}

// ErrUnknownSchema is returned by Registry.Lookup for a name that was never registered.
var ErrUnknownSchema = errors.New("unknown schema")

// Registry is an immutable set of named schemas. It is safe for concurrent use.
type Registry struct {
	schemas map[string]*Schema
}

// NewRegistry builds a Registry from JSON Schema documents keyed by logical name.
//
// Every document is compiled by a full JSON Schema implementation, and then checked for the
// structural rules this package relies on (known types and formats, and every required name
// declared under properties). The first problem found is returned and no Registry is built.
func NewRegistry(docs map[string][]byte) (*Registry, error) {
	r := &Registry{schemas: make(map[string]*Schema, len(docs))}
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s, err := load(name, docs[name])
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", name, err)
		}
		r.schemas[name] = s
	}
	return r, nil
}

// BuiltinRegistry returns a Registry containing the reqres response schemas.
func BuiltinRegistry() (*Registry, error) {
	docs := make(map[string][]byte, len(builtinFiles))
	for name, path := range builtinFiles {
		data, err := builtinFS.ReadFile(path)
		if err != nil {
			return nil, err
		}
		docs[name] = data
	}
	return NewRegistry(docs)
}

// Lookup returns the schema with the given name.
func (r *Registry) Lookup(name string) (*Schema, error) {
	if s, ok := r.schemas[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
}

// Names returns the registered schema names in sorted order.
func (r *Registry) Names() []string {
	ret := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

func load(name string, doc []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	resourceURL := "mem://schemas/" + url.PathEscape(name) + ".json"
	if err := compiler.AddResource(resourceURL, bytes.NewReader(doc)); err != nil {
		return nil, err
	}
	if _, err := compiler.Compile(resourceURL); err != nil {
		return nil, fmt.Errorf("not a valid JSON schema: %w", err)
	}

	var d document
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, err
	}
	s, err := fromDocument(&d, rootPath)
	if err != nil {
		return nil, err
	}
	s.name = name
	return s, nil
}
