package funcs

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"

	"github.com/okanra/jsonmint/internal/randsrc"
	"github.com/okanra/jsonmint/pkg/schema"
)

func convertFunctions(r *Registry) []Function {
	return []Function{
		{
			Name:    "format",
			MinArgs: 1,
			MaxArgs: -1,
			Doc:     "Substitute {} placeholders in a template string, left to right.",
			Call:    callFormat,
		},
		{
			Name:    "cast",
			MinArgs: 2,
			MaxArgs: 2,
			Doc:     "Convert a value to the named type: str, int, float or bool.",
			Call:    callCast,
		},
		{
			Name:    "len",
			MinArgs: 1,
			MaxArgs: 1,
			Doc:     "Length of a string (in runes), list or object.",
			Call:    callLen,
		},
		{
			Name:    "copy",
			MinArgs: 2,
			MaxArgs: 2,
			Doc:     "Build a list of n copies of a value.",
			Call:    callCopy,
		},
		{
			Name:    "count",
			MinArgs: 0,
			MaxArgs: 2,
			Doc: "Add a delta (default 1) to a named run-scoped counter " +
				"(default \"default\") and return its value.",
			Call: r.callCount,
		},
	}
}

func callFormat(args []any, _ *randsrc.Source) (any, error) {
	tmpl, ok := args[0].(string)
	if !ok {
		return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
			"format expects a template string, got %T", args[0])
	}

	out := tmpl
	for _, a := range args[1:] {
		s, err := stringify(a)
		if err != nil {
			return nil, err
		}
		out = strings.Replace(out, "{}", s, 1)
	}
	return out, nil
}

func callCast(args []any, _ *randsrc.Source) (any, error) {
	typ, ok := args[1].(string)
	if !ok {
		return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
			"cast expects a type name string, got %T", args[1])
	}

	val := args[0]
	switch typ {
	case "str":
		return stringify(val)
	case "int":
		n, err := cast.ToInt64E(val)
		if err != nil {
			return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
				"cannot cast %v to int", val).WithCause(err)
		}
		return n, nil
	case "float":
		f, err := cast.ToFloat64E(val)
		if err != nil {
			return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
				"cannot cast %v to float", val).WithCause(err)
		}
		return f, nil
	case "bool":
		b, err := cast.ToBoolE(val)
		if err != nil {
			return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
				"cannot cast %v to bool", val).WithCause(err)
		}
		return b, nil
	default:
		return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
			"unknown cast type %q; available: str, int, float, bool", typ)
	}
}

func callLen(args []any, _ *randsrc.Source) (any, error) {
	switch v := args[0].(type) {
	case string:
		return int64(utf8.RuneCountInString(v)), nil
	case []any:
		return int64(len(v)), nil
	case *schema.Object:
		return int64(v.Len()), nil
	case map[string]any:
		return int64(len(v)), nil
	default:
		return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
			"len expects a string, list or object, got %T", v)
	}
}

func callCopy(args []any, _ *randsrc.Source) (any, error) {
	n, ok := schema.IntValue(args[1])
	if !ok || n < 0 {
		return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
			"copy count must be a non-negative integer, got %v", args[1])
	}

	out := make([]any, 0, n)
	for range n {
		out = append(out, schema.DeepCopy(args[0]))
	}
	return out, nil
}

func (r *Registry) callCount(args []any, _ *randsrc.Source) (any, error) {
	delta := 1.0
	key := "default"

	if len(args) > 0 {
		f, ok := schema.FloatValue(args[0])
		if !ok {
			return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
				"count delta must be a number, got %T", args[0])
		}
		delta = f
	}
	if len(args) > 1 {
		k, ok := args[1].(string)
		if !ok {
			return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
				"count key must be a string, got %T", args[1])
		}
		key = k
	}

	r.counters[key] += delta
	total := r.counters[key]
	if total == float64(int64(total)) {
		return int64(total), nil
	}
	return total, nil
}

// stringify renders a value the way it would appear in the output document:
// strings verbatim, scalars via cast, containers as compact JSON.
func stringify(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case nil:
		return "null", nil
	case []any, map[string]any, *schema.Object:
		b, err := json.Marshal(schema.Plain(val))
		if err != nil {
			return "", schema.NewErrorf(schema.ErrCodeTypeCoercion,
				"cannot stringify %T", val).WithCause(err)
		}
		return string(b), nil
	default:
		s, err := cast.ToStringE(val)
		if err != nil {
			return "", schema.NewErrorf(schema.ErrCodeTypeCoercion,
				"cannot stringify %T", val).WithCause(err)
		}
		return s, nil
	}
}
