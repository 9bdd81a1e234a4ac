// Package directive parses {{kind|arg|...}} markers embedded in template
// string leaves into typed directives.
package directive

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/okanra/jsonmint/pkg/schema"
)

// Kind identifies the directive variant. The set is closed: templates can
// only name these five kinds.
type Kind int

const (
	KindVariable Kind = iota + 1
	KindFunction
	KindConst
	KindCond
	KindRepeat
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	case KindConst:
		return "const"
	case KindCond:
		return "cond"
	case KindRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// Directive is a parsed marker. Name is set for variable and function
// directives. Const directives carry the coerced literal in Value.
type Directive struct {
	Kind  Kind
	Name  string
	Value any
}

const (
	openMarker  = "{{"
	closeMarker = "}}"
)

// constTypes are the coercion targets a const marker may name.
var constTypes = []string{"int", "float", "str", "bool"}

// Parse inspects a string leaf. Strings not starting with the marker prefix
// are plain literals (ok=false, no error). Marker-shaped strings either
// parse into a Directive or fail hard: a template author who opened a marker
// meant to write one.
func Parse(s string) (*Directive, bool, error) {
	if !strings.HasPrefix(s, openMarker) {
		return nil, false, nil
	}
	if !strings.HasSuffix(s, closeMarker) || len(s) < len(openMarker)+len(closeMarker) {
		return nil, false, schema.NewErrorf(schema.ErrCodeMarkerSyntax,
			"unclosed marker %q: missing %q", s, closeMarker)
	}

	body := strings.TrimSpace(s[len(openMarker) : len(s)-len(closeMarker)])
	segments := strings.Split(body, "|")
	kind := segments[0]
	args := segments[1:]

	if kind == "" {
		return nil, false, schema.NewErrorf(schema.ErrCodeMarkerSyntax,
			"empty directive kind in %q", s)
	}

	switch kind {
	case "variable":
		if len(args) != 1 || args[0] == "" {
			return nil, false, schema.NewErrorf(schema.ErrCodeMarkerSyntax,
				"variable marker %q: expected {{variable|name}}", s)
		}
		return &Directive{Kind: KindVariable, Name: args[0]}, true, nil

	case "function":
		if len(args) != 1 || args[0] == "" {
			return nil, false, schema.NewErrorf(schema.ErrCodeMarkerSyntax,
				"function marker %q: expected {{function|name}}", s)
		}
		return &Directive{Kind: KindFunction, Name: args[0]}, true, nil

	case "const":
		val, err := parseConst(s, args)
		if err != nil {
			return nil, false, err
		}
		return &Directive{Kind: KindConst, Value: val}, true, nil

	case "cond":
		if len(args) != 0 {
			return nil, false, schema.NewErrorf(schema.ErrCodeMarkerSyntax,
				"cond marker %q carries no segments; branches are sibling array elements", s)
		}
		return &Directive{Kind: KindCond}, true, nil

	case "repeat":
		if len(args) != 0 {
			return nil, false, schema.NewErrorf(schema.ErrCodeMarkerSyntax,
				"repeat marker %q carries no segments; count and template are sibling array elements", s)
		}
		return &Directive{Kind: KindRepeat}, true, nil

	default:
		return nil, false, schema.NewErrorf(schema.ErrCodeUnknownDirective,
			"unknown directive kind %q in %q; available: variable, function, const, cond, repeat", kind, s).
			WithDetails(map[string]any{"marker": s, "kind": kind})
	}
}

// parseConst coerces {{const|value}} / {{const|value|type}} into a literal.
func parseConst(marker string, args []string) (any, error) {
	switch len(args) {
	case 1:
		return args[0], nil
	case 2:
		val, typ := args[0], args[1]
		switch typ {
		case "str":
			return val, nil
		case "int":
			n, err := cast.ToInt64E(val)
			if err != nil {
				return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
					"cannot coerce %q to int in %q", val, marker).WithCause(err)
			}
			return n, nil
		case "float":
			f, err := cast.ToFloat64E(val)
			if err != nil {
				return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
					"cannot coerce %q to float in %q", val, marker).WithCause(err)
			}
			return f, nil
		case "bool":
			b, err := cast.ToBoolE(val)
			if err != nil {
				return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
					"cannot coerce %q to bool in %q", val, marker).WithCause(err)
			}
			return b, nil
		default:
			return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
				"unknown const type %q in %q; available: %s",
				typ, marker, strings.Join(constTypes, ", "))
		}
	default:
		return nil, schema.NewErrorf(schema.ErrCodeMarkerSyntax,
			"const marker %q: expected {{const|value}} or {{const|value|type}}", marker)
	}
}
