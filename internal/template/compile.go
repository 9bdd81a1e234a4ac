package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okanra/jsonmint/internal/directive"
	"github.com/okanra/jsonmint/pkg/schema"
)

// rawField preserves the template's object key order through decoding, which
// encoding/json's map representation would destroy.
type rawField struct {
	key   string
	value any
}

type rawObject []rawField

// Compile parses a raw schema tree into a typed node tree. All directive
// markers are parsed and all arrays classified here; compile errors carry
// the path of the offending node.
func Compile(raw json.RawMessage) (Node, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, schema.NewError(schema.ErrCodeValidation, "schema is empty")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, schema.NewError(schema.ErrCodeValidation, "schema is not valid JSON").WithCause(err)
	}
	if dec.More() {
		return nil, schema.NewError(schema.ErrCodeValidation, "schema has trailing data")
	}

	return classify(v, nil)
}

// decodeValue reads one JSON value from the token stream, keeping object
// key order and representing numbers as json.Number.
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFrom(dec, tok)
}

func decodeFrom(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := rawObject{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, want string", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj = append(obj, rawField{key: key, value: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			list := []any{}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return list, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case nil, bool, string, json.Number:
		return tok, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

// classify turns a raw value into a typed node.
func classify(v any, path []string) (Node, error) {
	switch val := v.(type) {
	case nil:
		return Literal{Value: nil}, nil
	case bool:
		return Literal{Value: val}, nil
	case json.Number:
		return Literal{Value: schema.NormalizeNumber(val)}, nil
	case string:
		return classifyString(val, path)
	case rawObject:
		fields := make([]Field, 0, len(val))
		for _, f := range val {
			child, err := classify(f.value, append(path, f.key))
			if err != nil {
				return nil, err
			}
			fields = append(fields, Field{Key: f.key, Value: child})
		}
		return Object{Fields: fields}, nil
	case []any:
		return classifyArray(val, path)
	default:
		return nil, schema.NewErrorf(schema.ErrCodeValidation,
			"unsupported schema value of type %T", val).WithPath(pathString(path))
	}
}

func classifyString(s string, path []string) (Node, error) {
	d, ok, err := directive.Parse(s)
	if err != nil {
		return nil, withPath(err, path)
	}
	if !ok {
		return Literal{Value: s}, nil
	}

	switch d.Kind {
	case directive.KindVariable:
		return Variable{Name: d.Name}, nil
	case directive.KindConst:
		return Const{Value: d.Value}, nil
	default:
		// function, cond and repeat take their operands from sibling array
		// elements; in plain string position they have nothing to operate on.
		return nil, schema.NewErrorf(schema.ErrCodeMarkerSyntax,
			"%s marker %q must be the first element of an array", d.Kind, s).
			WithPath(pathString(path))
	}
}

func classifyArray(list []any, path []string) (Node, error) {
	if len(list) == 0 {
		return List{}, nil
	}

	head, isString := list[0].(string)
	if isString {
		d, ok, err := directive.Parse(head)
		if err != nil {
			return nil, withPath(err, append(path, "0"))
		}
		if ok {
			switch d.Kind {
			case directive.KindRepeat:
				return classifyRepeat(list, path)
			case directive.KindCond:
				return classifyCond(list, path)
			case directive.KindFunction:
				return classifyCall(d.Name, list, path)
			case directive.KindConst:
				// Further elements are ignored by definition.
				return Const{Value: d.Value}, nil
			case directive.KindVariable:
				// A variable reference does not classify the array; it is an
				// ordinary first element of a plain list.
			}
		}
	}

	elems := make([]Node, 0, len(list))
	for i, item := range list {
		child, err := classify(item, append(path, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		elems = append(elems, child)
	}
	return List{Elems: elems}, nil
}

func classifyRepeat(list []any, path []string) (Node, error) {
	if len(list) != 3 {
		return nil, schema.NewErrorf(schema.ErrCodeMarkerSyntax,
			"repeat array expects [marker, count, template], got %d elements", len(list)).
			WithPath(pathString(path))
	}

	count, err := classify(list[1], append(path, "1"))
	if err != nil {
		return nil, err
	}
	body, err := classify(list[2], append(path, "2"))
	if err != nil {
		return nil, err
	}
	return Repeat{Count: count, Body: body}, nil
}

func classifyCond(list []any, path []string) (Node, error) {
	operands := list[1:]

	// Branches are normally positional: ("{{cond}}", pair, pair, ...).
	// A sole operand that is a list of pairs not itself starting a directive
	// is the wrapped form ("{{cond}}", [pair, pair, ...]).
	if len(operands) == 1 {
		if wrapped, ok := operands[0].([]any); ok && len(wrapped) > 0 &&
			allPairs(wrapped) && !startsDirective(wrapped[0]) {
			operands = wrapped
		}
	}

	branches := make([]Branch, 0, len(operands))
	for i, op := range operands {
		pair, ok := op.([]any)
		if !ok || len(pair) != 2 {
			return nil, schema.NewErrorf(schema.ErrCodeMarkerSyntax,
				"cond branch %d must be a [test, value] pair", i).
				WithPath(pathString(path))
		}

		branchPath := append(path, strconv.Itoa(i+1))
		test, err := classify(pair[0], append(branchPath, "0"))
		if err != nil {
			return nil, err
		}
		value, err := classify(pair[1], append(branchPath, "1"))
		if err != nil {
			return nil, err
		}
		branches = append(branches, Branch{Test: test, Value: value})
	}
	return Cond{Branches: branches}, nil
}

func classifyCall(name string, list []any, path []string) (Node, error) {
	args := make([]Node, 0, len(list)-1)
	for i, item := range list[1:] {
		arg, err := classify(item, append(path, strconv.Itoa(i+1)))
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return Call{Name: name, Args: args}, nil
}

// allPairs reports whether every element is a 2-element list.
func allPairs(list []any) bool {
	for _, item := range list {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			return false
		}
	}
	return true
}

// startsDirective reports whether v is a marker string or an array headed by
// one, i.e. something that could itself be a cond test.
func startsDirective(v any) bool {
	switch val := v.(type) {
	case string:
		_, ok, err := directive.Parse(val)
		return ok || err != nil
	case []any:
		if len(val) == 0 {
			return false
		}
		s, ok := val[0].(string)
		if !ok {
			return false
		}
		_, isDir, err := directive.Parse(s)
		return isDir || err != nil
	default:
		return false
	}
}

func pathString(path []string) string {
	if len(path) == 0 {
		return "/"
	}
	return "/" + strings.Join(path, "/")
}

// withPath attaches the node path to structured errors, wrapping anything
// else so no error escapes without a location.
func withPath(err error, path []string) error {
	if me, ok := err.(*schema.MintError); ok {
		return me.WithPath(pathString(path))
	}
	return schema.NewError(schema.ErrCodeValidation, err.Error()).
		WithCause(err).WithPath(pathString(path))
}
