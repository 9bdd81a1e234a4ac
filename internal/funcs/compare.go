package funcs

import (
	"github.com/okanra/jsonmint/internal/randsrc"
	"github.com/okanra/jsonmint/pkg/schema"
)

func compareFunctions() []Function {
	binary := func(name, doc string, cmp Handler) Function {
		return Function{Name: name, MinArgs: 2, MaxArgs: 2, Doc: doc, Call: cmp}
	}

	return []Function{
		binary("eq", "Structural equality of two values.", callEq),
		binary("ne", "Structural inequality of two values.", callNe),
		binary("gt", "Numeric or lexicographic greater-than.", orderFunc("gt", func(c int) bool { return c > 0 })),
		binary("ge", "Numeric or lexicographic greater-or-equal.", orderFunc("ge", func(c int) bool { return c >= 0 })),
		binary("lt", "Numeric or lexicographic less-than.", orderFunc("lt", func(c int) bool { return c < 0 })),
		binary("le", "Numeric or lexicographic less-or-equal.", orderFunc("le", func(c int) bool { return c <= 0 })),
	}
}

func callEq(args []any, _ *randsrc.Source) (any, error) {
	return schema.DeepEqual(args[0], args[1]), nil
}

func callNe(args []any, _ *randsrc.Source) (any, error) {
	return !schema.DeepEqual(args[0], args[1]), nil
}

// orderFunc builds a comparison handler from a predicate over the usual
// -1/0/1 comparison result.
func orderFunc(name string, accept func(int) bool) Handler {
	return func(args []any, _ *randsrc.Source) (any, error) {
		c, err := compareValues(name, args[0], args[1])
		if err != nil {
			return nil, err
		}
		return accept(c), nil
	}
}

func compareValues(name string, a, b any) (int, error) {
	if fa, ok := schema.FloatValue(a); ok {
		fb, ok := schema.FloatValue(b)
		if !ok {
			return 0, schema.NewErrorf(schema.ErrCodeTypeCoercion,
				"%s cannot compare %T with %T", name, a, b)
		}
		switch {
		case fa < fb:
			return -1, nil
		case fa > fb:
			return 1, nil
		default:
			return 0, nil
		}
	}

	sa, okA := a.(string)
	sb, okB := b.(string)
	if okA && okB {
		switch {
		case sa < sb:
			return -1, nil
		case sa > sb:
			return 1, nil
		default:
			return 0, nil
		}
	}

	return 0, schema.NewErrorf(schema.ErrCodeTypeCoercion,
		"%s cannot compare %T with %T", name, a, b)
}
