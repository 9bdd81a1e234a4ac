package template

import (
	"strconv"

	"github.com/okanra/jsonmint/internal/funcs"
	"github.com/okanra/jsonmint/internal/randsrc"
	"github.com/okanra/jsonmint/internal/scope"
	"github.com/okanra/jsonmint/pkg/schema"
)

// DefaultMaxRepeat caps repeat counts so a template cannot demand unbounded
// allocation.
const DefaultMaxRepeat = 1_000_000

// vanish is the sentinel for a cond with no matching branch. Containers
// drop vanished children instead of storing null.
type vanish struct{}

// Evaluator walks a compiled node tree depth-first, left to right, producing
// a concrete JSON value. It owns no global state: the variable table, the
// function registry and the RNG are all per-run.
type Evaluator struct {
	vars      *scope.Table
	registry  *funcs.Registry
	rng       *randsrc.Source
	maxRepeat int64
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMaxRepeat overrides the repeat-count cap.
func WithMaxRepeat(n int64) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.maxRepeat = n
		}
	}
}

// NewEvaluator creates an Evaluator for one run.
func NewEvaluator(vars *scope.Table, registry *funcs.Registry, rng *randsrc.Source, opts ...Option) *Evaluator {
	e := &Evaluator{
		vars:      vars,
		registry:  registry,
		rng:       rng,
		maxRepeat: DefaultMaxRepeat,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate resolves a compiled template into a directive-free value. Any
// error aborts the run; no partial output is returned. A top-level cond
// with no matching branch resolves to null.
func (e *Evaluator) Evaluate(root Node) (any, error) {
	v, err := e.eval(root, nil)
	if err != nil {
		return nil, err
	}
	if _, gone := v.(vanish); gone {
		return nil, nil
	}
	return v, nil
}

func (e *Evaluator) eval(n Node, path []string) (any, error) {
	switch node := n.(type) {
	case Literal:
		return node.Value, nil

	case Const:
		return node.Value, nil

	case Variable:
		v, err := e.vars.Lookup(node.Name)
		if err != nil {
			return nil, withPath(err, path)
		}
		return v, nil

	case Object:
		out := schema.NewObject()
		for _, f := range node.Fields {
			v, err := e.eval(f.Value, append(path, f.Key))
			if err != nil {
				return nil, err
			}
			if _, gone := v.(vanish); gone {
				continue
			}
			out.Set(f.Key, v)
		}
		return out, nil

	case List:
		out := make([]any, 0, len(node.Elems))
		for i, elem := range node.Elems {
			v, err := e.eval(elem, append(path, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			if _, gone := v.(vanish); gone {
				continue
			}
			out = append(out, v)
		}
		return out, nil

	case Call:
		return e.evalCall(node, path)

	case Repeat:
		return e.evalRepeat(node, path)

	case Cond:
		for _, branch := range node.Branches {
			tv, err := e.eval(branch.Test, path)
			if err != nil {
				return nil, err
			}
			if schema.Truthy(tv) {
				return e.eval(branch.Value, path)
			}
		}
		return vanish{}, nil

	default:
		return nil, schema.NewErrorf(schema.ErrCodeValidation,
			"unknown node type %T", n).WithPath(pathString(path))
	}
}

// evalCall resolves arguments depth-first, left to right, so nested calls
// used as arguments complete before the outer call runs. The handler's
// return value replaces the array node directly.
func (e *Evaluator) evalCall(node Call, path []string) (any, error) {
	args := make([]any, 0, len(node.Args))
	for i, argNode := range node.Args {
		v, err := e.eval(argNode, append(path, strconv.Itoa(i+1)))
		if err != nil {
			return nil, err
		}
		if _, gone := v.(vanish); gone {
			v = nil
		}
		args = append(args, v)
	}

	out, err := e.registry.Call(node.Name, args, e.rng)
	if err != nil {
		return nil, withPath(err, path)
	}
	return out, nil
}

// evalRepeat resolves the count once, then evaluates the body independently
// that many times. Iterations share the variable table but draw fresh
// values from the RNG; no iteration sees another's output.
func (e *Evaluator) evalRepeat(node Repeat, path []string) (any, error) {
	cv, err := e.eval(node.Count, append(path, "1"))
	if err != nil {
		return nil, err
	}

	count, ok := schema.IntValue(cv)
	if !ok {
		return nil, schema.NewErrorf(schema.ErrCodeInvalidRepeatCount,
			"repeat count must be an integer, got %v", cv).WithPath(pathString(path))
	}
	if count < 0 {
		return nil, schema.NewErrorf(schema.ErrCodeInvalidRepeatCount,
			"repeat count must be non-negative, got %d", count).WithPath(pathString(path))
	}
	if count > e.maxRepeat {
		return nil, schema.NewErrorf(schema.ErrCodeInvalidRepeatCount,
			"repeat count %d exceeds the cap of %d", count, e.maxRepeat).WithPath(pathString(path))
	}

	out := make([]any, 0, count)
	for i := int64(0); i < count; i++ {
		v, err := e.eval(node.Body, append(path, strconv.FormatInt(i, 10)))
		if err != nil {
			return nil, err
		}
		if _, gone := v.(vanish); gone {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
