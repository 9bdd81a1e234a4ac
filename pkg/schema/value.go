package schema

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is the evaluator's output type for JSON objects. Key order follows
// the template's key order exactly, which plain Go maps cannot guarantee.
type Object = orderedmap.OrderedMap[string, any]

// NewObject creates an empty ordered object value.
func NewObject() *Object {
	return orderedmap.New[string, any]()
}

// NormalizeNumber converts a json.Number into int64 when the literal is
// integral and float64 otherwise, so integer constants round-trip without
// picking up a fractional representation.
func NormalizeNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	// Out-of-range integers degrade to their string form rather than lose data.
	return n.String()
}

// IntValue reports v as an int64 when it is an integer-valued number.
func IntValue(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
		return 0, false
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}

// FloatValue reports v as a float64 when it is any numeric value.
func FloatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Truthy reports whether a value selects a cond branch. nil, false, zero,
// the empty string, and empty lists/objects are falsy; everything else is
// truthy.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int64:
		return val != 0
	case int:
		return val != 0
	case float64:
		return val != 0
	case json.Number:
		f, err := val.Float64()
		return err == nil && f != 0
	case []any:
		return len(val) > 0
	case *Object:
		return val.Len() > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}

// DeepEqual compares two values structurally. Numbers compare by value
// across int64/float64, objects compare by key set regardless of order.
func DeepEqual(a, b any) bool {
	if fa, ok := FloatValue(a); ok {
		fb, ok := FloatValue(b)
		return ok && fa == fb
	}

	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !DeepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		am, ok := asMap(a)
		if !ok {
			return false
		}
		bm, ok := asMap(b)
		if !ok || len(am) != len(bm) {
			return false
		}
		for k, v := range am {
			bvv, exists := bm[k]
			if !exists || !DeepEqual(v, bvv) {
				return false
			}
		}
		return true
	}
}

// asMap views object-shaped values (ordered or plain) as a plain map.
func asMap(v any) (map[string]any, bool) {
	switch val := v.(type) {
	case map[string]any:
		return val, true
	case *Object:
		m := make(map[string]any, val.Len())
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			m[pair.Key] = pair.Value
		}
		return m, true
	default:
		return nil, false
	}
}

// Plain recursively converts ordered objects into plain map[string]any and
// integers into float64, the shape jq and encoding/json-decoded data use.
func Plain(v any) any {
	switch val := v.(type) {
	case *Object:
		out := make(map[string]any, val.Len())
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = Plain(pair.Value)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Plain(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Plain(item)
		}
		return out
	case int64:
		return float64(val)
	case int:
		return float64(val)
	case json.Number:
		return NormalizeNumber(val)
	default:
		return v
	}
}

// DeepCopy recursively copies a value. Primitives are value types and pass
// through unchanged.
func DeepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		cp := make(map[string]any, len(val))
		for k, item := range val {
			cp[k] = DeepCopy(item)
		}
		return cp
	case []any:
		cp := make([]any, len(val))
		for i, item := range val {
			cp[i] = DeepCopy(item)
		}
		return cp
	case *Object:
		cp := NewObject()
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			cp.Set(pair.Key, DeepCopy(pair.Value))
		}
		return cp
	default:
		return v
	}
}
