// Package schema checks parsed JSON documents against a JSON Schema
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/kaptinlin/jsonschema"
	"github.com/mcncl/jsonsmith/internal/errors"
	"github.com/mcncl/jsonsmith/internal/models"
)

// SchemaType handles JSON Schema type field which can be string or array of strings
type SchemaType struct {
	Types []string
}

// UnmarshalJSON handles both string and array forms of type
func (st *SchemaType) UnmarshalJSON(data []byte) error {
	// Try string first
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		st.Types = []string{s}
		return nil
	}

	// Try array of strings
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		st.Types = arr
		return nil
	}

	return fmt.Errorf("type must be string or array of strings")
}

// Primary returns the primary (first) type, or empty string if none
func (st SchemaType) Primary() string {
	if len(st.Types) > 0 {
		return st.Types[0]
	}
	return ""
}

// Info is the descriptive part of a schema document
type Info struct {
	Schema      string     `json:"$schema,omitempty"`
	ID          string     `json:"$id,omitempty"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Type        SchemaType `json:"type,omitempty"`
}

// Name returns the best human-readable name for the schema
func (i Info) Name() string {
	switch {
	case i.Title != "":
		return i.Title
	case i.ID != "":
		return i.ID
	case i.Type.Primary() != "":
		return i.Type.Primary() + " schema"
	}
	return "schema"
}

// Violation is one reason a document does not satisfy a schema
type Violation struct {
	Keyword string `json:"keyword"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Keyword + ": " + v.Message
}

// Checker validates documents against one compiled schema
type Checker struct {
	info   Info
	schema *jsonschema.Schema
}

// ParseFile reads and compiles a JSON Schema from a file
func ParseFile(path string) (*Checker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewSchemaError(fmt.Sprintf("failed to read schema file '%s'", path), err)
	}

	return ParseBytes(data)
}

// ParseBytes compiles a JSON Schema from bytes
func ParseBytes(data []byte) (*Checker, error) {
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, errors.NewSchemaError("failed to parse JSON Schema", err)
	}

	compiler := jsonschema.NewCompiler()
	compiled, err := compiler.Compile(data)
	if err != nil {
		return nil, errors.NewSchemaError("invalid schema", err)
	}

	return &Checker{info: info, schema: compiled}, nil
}

// ParseString compiles a JSON Schema from a string
func ParseString(s string) (*Checker, error) {
	return ParseBytes([]byte(s))
}

// Info returns the schema's descriptive fields
func (c *Checker) Info() Info { return c.info }

// Check validates doc and returns its violations sorted by keyword. An
// empty result means doc is valid.
func (c *Checker) Check(doc models.Value) []Violation {
	result := c.schema.Validate(toAny(doc))
	if result.IsValid() {
		return nil
	}

	violations := make([]Violation, 0, len(result.Errors))
	for keyword, verr := range result.Errors {
		violations = append(violations, Violation{Keyword: keyword, Message: verr.Message})
	}
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].Keyword != violations[j].Keyword {
			return violations[i].Keyword < violations[j].Keyword
		}
		return violations[i].Message < violations[j].Message
	})
	return violations
}

// toAny converts v to the generic form produced by encoding/json
func toAny(v models.Value) any {
	switch v.Kind() {
	case models.Bool:
		return v.Bool()
	case models.Number:
		return v.Float()
	case models.String:
		return v.Str()
	case models.Array:
		out := make([]any, 0, v.Len())
		for _, item := range v.Items() {
			out = append(out, toAny(item))
		}
		return out
	case models.Object:
		out := make(map[string]any, v.Len())
		for _, m := range v.Members() {
			out[m.Key] = toAny(m.Value)
		}
		return out
	}
	return nil
}
