// Package loader reads and validates the input document before the core
// ever sees it.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/okanra/jsonmint/pkg/schema"
)

// documentSchemaJSON is the JSON Schema for the input document shape.
// Embedded as a constant to avoid filesystem dependencies. It checks the
// document envelope only; directive markers are the compiler's business.
const documentSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://jsonmint.dev/schemas/document.json",
  "type": "object",
  "required": ["schema"],
  "properties": {
    "schema": {},
    "variables": {
      "type": "object",
      "additionalProperties": { "$ref": "#/$defs/binding" }
    }
  },
  "additionalProperties": false,
  "$defs": {
    "scalar": {
      "type": ["string", "number", "integer", "boolean", "null"]
    },
    "binding": {
      "oneOf": [
        { "$ref": "#/$defs/scalar" },
        {
          "type": "array",
          "items": { "$ref": "#/$defs/scalar" }
        }
      ]
    }
  }
}`

// Loader parses raw document text (inline JSON, @file, or @- for stdin)
// into a validated Document. Safe for concurrent use.
type Loader struct {
	docSchema *jsonschema.Schema
	stdin     io.Reader
}

// New creates a Loader with the document schema pre-compiled. stdin backs
// the @- source; pass os.Stdin outside of tests.
func New(stdin io.Reader) (*Loader, error) {
	c := jsonschema.NewCompiler()
	c.AssertFormat()

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(documentSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshal document schema: %w", err)
	}
	if err := c.AddResource("https://jsonmint.dev/schemas/document.json", doc); err != nil {
		return nil, fmt.Errorf("add document schema resource: %w", err)
	}

	compiled, err := c.Compile("https://jsonmint.dev/schemas/document.json")
	if err != nil {
		return nil, fmt.Errorf("compile document schema: %w", err)
	}

	return &Loader{docSchema: compiled, stdin: stdin}, nil
}

// Load resolves the argument to raw JSON text, validates the document shape
// and returns the parsed Document. An argument starting with '@' names a
// file; '@-' reads standard input; anything else is inline JSON.
func (l *Loader) Load(arg string) (*schema.Document, error) {
	raw, err := l.read(arg)
	if err != nil {
		return nil, err
	}

	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, schema.NewError(schema.ErrCodeLoad, "document is not valid JSON").WithCause(err)
	}

	if err := l.docSchema.Validate(parsed); err != nil {
		return nil, toMintError(err)
	}

	var doc schema.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, schema.NewError(schema.ErrCodeLoad, "cannot decode document").WithCause(err)
	}
	return &doc, nil
}

func (l *Loader) read(arg string) ([]byte, error) {
	if arg == "" {
		return nil, schema.NewError(schema.ErrCodeLoad, "document argument is empty")
	}
	if !strings.HasPrefix(arg, "@") {
		return []byte(arg), nil
	}
	if arg == "@-" {
		if l.stdin == nil {
			return nil, schema.NewError(schema.ErrCodeLoad, "no standard input available for @-")
		}
		raw, err := io.ReadAll(l.stdin)
		if err != nil {
			return nil, schema.NewError(schema.ErrCodeLoad, "cannot read standard input").WithCause(err)
		}
		return raw, nil
	}

	path := strings.TrimPrefix(arg, "@")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeLoad, "cannot read document file %q", path).WithCause(err)
	}
	return raw, nil
}

// toMintError converts a jsonschema.ValidationError into a MintError with
// one message per leaf violation.
func toMintError(err error) *schema.MintError {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return schema.NewError(schema.ErrCodeValidation, err.Error())
	}

	violations := collectViolations(verr)
	if len(violations) == 0 {
		return schema.NewError(schema.ErrCodeValidation, verr.Error())
	}
	if len(violations) == 1 {
		return schema.NewError(schema.ErrCodeValidation, violations[0]).
			WithDetails(map[string]any{"violations": violations})
	}

	msg := fmt.Sprintf("document validation failed with %d errors", len(violations))
	return schema.NewError(schema.ErrCodeValidation, msg).
		WithDetails(map[string]any{"violations": violations})
}

// collectViolations walks a ValidationError tree and collects leaf messages
// with their instance locations.
func collectViolations(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		loc := "/"
		if len(verr.InstanceLocation) > 0 {
			loc = "/" + strings.Join(verr.InstanceLocation, "/")
		}
		return []string{fmt.Sprintf("%s: %s", loc, verr.Error())}
	}

	var violations []string
	for _, cause := range verr.Causes {
		violations = append(violations, collectViolations(cause)...)
	}
	return violations
}
