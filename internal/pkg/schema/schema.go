// Package schema validates JSON documents against embedded JSON schemas
package schema

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
)

// Schema is a compiled JSON schema
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// Compile parses a raw JSON schema
func Compile(name string, raw []byte) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeConfiguration, "invalid %s schema", name)
	}
	return &Schema{name: name, schema: s}, nil
}

// MustCompile is Compile for schemas embedded at build time
func MustCompile(name string, raw []byte) *Schema {
	s, err := Compile(name, raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks a Go value, marshaled as JSON, against the schema
func (s *Schema) Validate(doc any) error {
	return s.check(gojsonschema.NewGoLoader(doc))
}

// ValidateBytes checks a raw JSON document against the schema
func (s *Schema) ValidateBytes(doc []byte) error {
	return s.check(gojsonschema.NewBytesLoader(doc))
}

func (s *Schema) check(loader gojsonschema.JSONLoader) error {
	result, err := s.schema.Validate(loader)
	if err != nil {
		return errors.InvalidArgumentf("%s is not valid JSON: %v", s.name, err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return errors.InvalidArgumentf("%s failed validation: %s", s.name, strings.Join(errs, "; ")).
			WithMeta("schema_errors", errs)
	}

	return nil
}
