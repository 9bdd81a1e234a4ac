package schema

import "encoding/json"

// Document is the parsed input document: a template tree plus the variable
// bindings available to it. Schema stays raw so the template compiler can
// decode it with key order preserved.
type Document struct {
	Schema    json.RawMessage `json:"schema"`
	Variables map[string]any  `json:"variables,omitempty"`
}
