package funcs

import (
	"math"

	"github.com/okanra/jsonmint/internal/randsrc"
	"github.com/okanra/jsonmint/pkg/schema"
)

func arithFunctions() []Function {
	return []Function{
		{
			Name:    "add",
			MinArgs: 1,
			MaxArgs: -1,
			Doc: "Combine values: numbers sum, strings and lists concatenate, " +
				"booleans OR together. The first argument picks the mode.",
			Call: callAdd,
		},
		{
			Name:    "sub",
			MinArgs: 2,
			MaxArgs: 2,
			Doc:     "Subtract: numbers subtract, booleans compute a && !b.",
			Call:    callSub,
		},
		{
			Name:    "mul",
			MinArgs: 1,
			MaxArgs: -1,
			Doc:     "Multiply numbers, or AND booleans together.",
			Call:    callMul,
		},
		{
			Name:    "div",
			MinArgs: 2,
			MaxArgs: 2,
			Doc:     "Divide two numbers; the result is a float.",
			Call:    callDiv,
		},
		{
			Name:    "mod",
			MinArgs: 2,
			MaxArgs: 2,
			Doc:     "Remainder of integer division.",
			Call:    callMod,
		},
		{
			Name:    "pow",
			MinArgs: 2,
			MaxArgs: 2,
			Doc:     "Raise the first number to the power of the second.",
			Call:    callPow,
		},
		{
			Name:    "neg",
			MinArgs: 1,
			MaxArgs: 1,
			Doc:     "Negate a number, or NOT a boolean.",
			Call:    callNeg,
		},
	}
}

func callAdd(args []any, _ *randsrc.Source) (any, error) {
	switch args[0].(type) {
	case bool:
		for i, a := range args {
			b, ok := a.(bool)
			if !ok {
				return nil, addMixedErr("add", i, a)
			}
			if b {
				return true, nil
			}
		}
		return false, nil

	case string:
		out := ""
		for i, a := range args {
			s, ok := a.(string)
			if !ok {
				return nil, addMixedErr("add", i, a)
			}
			out += s
		}
		return out, nil

	case []any:
		var out []any
		for i, a := range args {
			list, ok := a.([]any)
			if !ok {
				return nil, addMixedErr("add", i, a)
			}
			out = append(out, list...)
		}
		return out, nil

	default:
		return sumNumbers("add", args)
	}
}

func callSub(args []any, _ *randsrc.Source) (any, error) {
	if a, ok := args[0].(bool); ok {
		b, ok := args[1].(bool)
		if !ok {
			return nil, addMixedErr("sub", 1, args[1])
		}
		return a && !b, nil
	}

	if a, aOK := schema.IntValue(args[0]); aOK {
		if b, bOK := schema.IntValue(args[1]); bOK {
			return a - b, nil
		}
	}
	fa, aOK := schema.FloatValue(args[0])
	fb, bOK := schema.FloatValue(args[1])
	if !aOK || !bOK {
		return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
			"sub expects two numbers or two booleans, got %T and %T", args[0], args[1])
	}
	return fa - fb, nil
}

func callMul(args []any, _ *randsrc.Source) (any, error) {
	if _, ok := args[0].(bool); ok {
		for i, a := range args {
			b, ok := a.(bool)
			if !ok {
				return nil, addMixedErr("mul", i, a)
			}
			if !b {
				return false, nil
			}
		}
		return true, nil
	}

	allInt := true
	intProduct := int64(1)
	floatProduct := 1.0
	for i, a := range args {
		f, ok := schema.FloatValue(a)
		if !ok {
			return nil, addMixedErr("mul", i, a)
		}
		floatProduct *= f
		if n, ok := schema.IntValue(a); ok && allInt {
			intProduct *= n
		} else {
			allInt = false
		}
	}
	if allInt {
		return intProduct, nil
	}
	return floatProduct, nil
}

func callDiv(args []any, _ *randsrc.Source) (any, error) {
	fa, aOK := schema.FloatValue(args[0])
	fb, bOK := schema.FloatValue(args[1])
	if !aOK || !bOK {
		return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
			"div expects two numbers, got %T and %T", args[0], args[1])
	}
	if fb == 0 {
		return nil, schema.NewError(schema.ErrCodeTypeCoercion, "division by zero")
	}
	return fa / fb, nil
}

func callMod(args []any, _ *randsrc.Source) (any, error) {
	a, aOK := schema.IntValue(args[0])
	b, bOK := schema.IntValue(args[1])
	if !aOK || !bOK {
		return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
			"mod expects two integers, got %T and %T", args[0], args[1])
	}
	if b == 0 {
		return nil, schema.NewError(schema.ErrCodeTypeCoercion, "division by zero")
	}
	return a % b, nil
}

func callPow(args []any, _ *randsrc.Source) (any, error) {
	if base, ok := schema.IntValue(args[0]); ok {
		if exp, ok := schema.IntValue(args[1]); ok && exp >= 0 {
			result := int64(1)
			for range exp {
				result *= base
			}
			return result, nil
		}
	}

	fa, aOK := schema.FloatValue(args[0])
	fb, bOK := schema.FloatValue(args[1])
	if !aOK || !bOK {
		return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
			"pow expects two numbers, got %T and %T", args[0], args[1])
	}
	return math.Pow(fa, fb), nil
}

func callNeg(args []any, _ *randsrc.Source) (any, error) {
	switch v := args[0].(type) {
	case bool:
		return !v, nil
	default:
		if n, ok := schema.IntValue(v); ok {
			return -n, nil
		}
		if f, ok := schema.FloatValue(v); ok {
			return -f, nil
		}
		return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
			"neg expects a number or boolean, got %T", v)
	}
}

// sumNumbers adds numeric arguments, staying integral when every input is.
func sumNumbers(name string, args []any) (any, error) {
	allInt := true
	intSum := int64(0)
	floatSum := 0.0
	for i, a := range args {
		f, ok := schema.FloatValue(a)
		if !ok {
			return nil, addMixedErr(name, i, a)
		}
		floatSum += f
		if n, ok := schema.IntValue(a); ok && allInt {
			intSum += n
		} else {
			allInt = false
		}
	}
	if allInt {
		return intSum, nil
	}
	return floatSum, nil
}

func addMixedErr(name string, i int, got any) *schema.MintError {
	return schema.NewErrorf(schema.ErrCodeTypeCoercion,
		"%s argument %d has incompatible type %T", name, i, got)
}
