package funcs

import (
	"github.com/google/uuid"

	"github.com/okanra/jsonmint/internal/randsrc"
	"github.com/okanra/jsonmint/pkg/schema"
)

func randomFunctions() []Function {
	return []Function{
		{
			Name:    "uuid",
			MinArgs: 0,
			MaxArgs: 0,
			Doc:     "Return a freshly generated random UUID-v4 string.",
			Call:    callUUID,
		},
		{
			Name:    "rand",
			MinArgs: 0,
			MaxArgs: 2,
			Doc: "Return a random number. No arguments: float in [0,1). " +
				"One integer N: integer in [0,N). Two integers: integer in [min,max]. " +
				"Floats: float in [min,max).",
			Call: callRand,
		},
		{
			Name:    "choice",
			MinArgs: 1,
			MaxArgs: 1,
			Doc:     "Return one element of a list, sampled uniformly at random.",
			Call:    callChoice,
		},
		{
			Name:    "sample",
			MinArgs: 2,
			MaxArgs: 2,
			Doc:     "Return k distinct elements of a list, in random order.",
			Call:    callSample,
		},
	}
}

func callUUID(_ []any, rng *randsrc.Source) (any, error) {
	// Drawn from the run RNG so a fixed seed yields a fixed id sequence.
	id, err := uuid.NewRandomFromReader(rng.Reader())
	if err != nil {
		return nil, schema.NewError(schema.ErrCodeTypeCoercion, "uuid generation failed").WithCause(err)
	}
	return id.String(), nil
}

func callRand(args []any, rng *randsrc.Source) (any, error) {
	switch len(args) {
	case 0:
		return rng.Float64(), nil

	case 1:
		if n, ok := schema.IntValue(args[0]); ok {
			if n <= 0 {
				return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
					"rand upper bound must be positive, got %d", n)
			}
			return rng.Int64N(n), nil
		}
		if f, ok := schema.FloatValue(args[0]); ok {
			if f <= 0 {
				return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
					"rand upper bound must be positive, got %v", f)
			}
			return rng.Float64() * f, nil
		}
		return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
			"rand expects numeric bounds, got %T", args[0])

	default:
		lo, loInt := schema.IntValue(args[0])
		hi, hiInt := schema.IntValue(args[1])
		if loInt && hiInt {
			if hi < lo {
				return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
					"rand range is empty: [%d, %d]", lo, hi)
			}
			return lo + rng.Int64N(hi-lo+1), nil
		}

		flo, loOK := schema.FloatValue(args[0])
		fhi, hiOK := schema.FloatValue(args[1])
		if !loOK || !hiOK {
			return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
				"rand expects numeric bounds, got %T and %T", args[0], args[1])
		}
		if fhi < flo {
			return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
				"rand range is empty: [%v, %v)", flo, fhi)
		}
		return flo + rng.Float64()*(fhi-flo), nil
	}
}

func callChoice(args []any, rng *randsrc.Source) (any, error) {
	list, ok := args[0].([]any)
	if !ok {
		return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
			"choice expects a list, got %T", args[0])
	}
	if len(list) == 0 {
		return nil, schema.NewError(schema.ErrCodeTypeCoercion, "choice over an empty list")
	}
	return list[rng.IntN(len(list))], nil
}

func callSample(args []any, rng *randsrc.Source) (any, error) {
	list, ok := args[0].([]any)
	if !ok {
		return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
			"sample expects a list, got %T", args[0])
	}
	k, ok := schema.IntValue(args[1])
	if !ok || k < 0 || k > int64(len(list)) {
		return nil, schema.NewErrorf(schema.ErrCodeTypeCoercion,
			"sample size must be an integer in [0, %d], got %v", len(list), args[1])
	}

	out := make([]any, 0, k)
	for _, idx := range rng.Perm(len(list))[:k] {
		out = append(out, list[idx])
	}
	return out, nil
}
