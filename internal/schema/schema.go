// Package schema validates inbound payloads against static per-entity field
// tables and renders records back in the table's canonical field order.
//
// Each table lists field name, maximum length, whether the field is required
// on a full update, and an accessor to the record's storage. The table is
// compiled once into a pair of JSON schemas (full and partial) which do the
// shape checks, then the same table drives coercion and rendering.
package schema

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"
)

// DefaultMaxLength bounds every persisted text field.
const DefaultMaxLength = 200

// JobsKey is the payload key carrying nested job descriptors.
const JobsKey = "jobs"

// Field describes a single free-text field of T.
type Field[T any] struct {
	Name      string
	MinLength int
	MaxLength int
	Required  bool
	Value     func(*T) *string
}

// Schema is the field table of one entity.
type Schema[T any] struct {
	ID     string
	Fields []Field[T]
	// Jobs enables the nested "jobs" descriptor list.
	Jobs bool

	full    *gojsonschema.Schema
	partial *gojsonschema.Schema
}

// JobDescriptor identifies a job by name inside a report payload.
type JobDescriptor struct {
	Name string `json:"name"`
}

// Parsed holds the fields supplied by a validated payload.
type Parsed struct {
	Values map[string]string
	// HasJobs distinguishes an absent "jobs" key from an empty list.
	HasJobs bool
	Jobs    []JobDescriptor
}

// JobNames returns the descriptor names in payload order.
func (p *Parsed) JobNames() []string {
	names := make([]string, 0, len(p.Jobs))
	for _, j := range p.Jobs {
		names = append(names, j.Name)
	}
	return names
}

// MustNew compiles a schema and panics on an invalid table.
func MustNew[T any](id string, jobs bool, fields ...Field[T]) *Schema[T] {
	s, err := New(id, jobs, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// New compiles the full and partial JSON schemas for the field table.
func New[T any](id string, jobs bool, fields ...Field[T]) (*Schema[T], error) {
	s := &Schema[T]{ID: id, Fields: fields, Jobs: jobs}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" || f.Value == nil {
			return nil, fmt.Errorf("schema %s: incomplete field %q", id, f.Name)
		}
		if seen[f.Name] || (jobs && f.Name == JobsKey) {
			return nil, fmt.Errorf("schema %s: duplicate field %q", id, f.Name)
		}
		seen[f.Name] = true
	}

	var err error
	if s.full, err = gojsonschema.NewSchema(gojsonschema.NewGoLoader(s.document(false))); err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", id, err)
	}
	if s.partial, err = gojsonschema.NewSchema(gojsonschema.NewGoLoader(s.document(true))); err != nil {
		return nil, fmt.Errorf("compile partial schema %s: %w", id, err)
	}
	return s, nil
}

// document builds the JSON schema for the table. Unknown properties are
// allowed so that read-only keys such as "id" or "user" are ignored.
func (s *Schema[T]) document(partial bool) map[string]interface{} {
	properties := make(map[string]interface{}, len(s.Fields)+1)
	required := []string{}
	for _, f := range s.Fields {
		prop := map[string]interface{}{"type": "string"}
		if f.MinLength > 0 {
			prop["minLength"] = f.MinLength
		}
		if f.MaxLength > 0 {
			prop["maxLength"] = f.MaxLength
		}
		properties[f.Name] = prop
		if f.Required && !partial {
			required = append(required, f.Name)
		}
	}
	if s.Jobs {
		properties[JobsKey] = map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{"type": "string", "minLength": 1, "maxLength": DefaultMaxLength},
				},
				"required": []string{"name"},
			},
		}
	}

	doc := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}

// Parse validates raw against the table. Full payloads must carry every
// required field; partial payloads may carry any subset.
func (s *Schema[T]) Parse(raw []byte, partial bool) (*Parsed, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}

	compiled := s.full
	if partial {
		compiled = s.partial
	}
	result, err := compiled.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		verr := &ValidationError{}
		verr.Add(NonFieldErrors, "JSON parse error: "+err.Error())
		return nil, verr
	}
	if !result.Valid() {
		return nil, fromResult(result)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		verr := &ValidationError{}
		verr.Add(NonFieldErrors, "JSON parse error: "+err.Error())
		return nil, verr
	}

	p := &Parsed{Values: make(map[string]string, len(body))}
	for _, f := range s.Fields {
		v, ok := body[f.Name]
		if !ok {
			continue
		}
		var str string
		if err := json.Unmarshal(v, &str); err != nil {
			return nil, fmt.Errorf("decode %s: %w", f.Name, err)
		}
		p.Values[f.Name] = str
	}
	if s.Jobs {
		if v, ok := body[JobsKey]; ok {
			p.HasJobs = true
			p.Jobs = []JobDescriptor{}
			if err := json.Unmarshal(v, &p.Jobs); err != nil {
				return nil, fmt.Errorf("decode %s: %w", JobsKey, err)
			}
		}
	}
	return p, nil
}

// Apply copies the parsed values into dst. Fields absent from p keep their
// current value.
func (s *Schema[T]) Apply(p *Parsed, dst *T) {
	for _, f := range s.Fields {
		if v, ok := p.Values[f.Name]; ok {
			*f.Value(dst) = v
		}
	}
}
