// Package funcs provides the built-in function registry. The set is closed:
// templates can call these handlers and nothing else.
package funcs

import (
	"sort"
	"strconv"
	"strings"

	"github.com/okanra/jsonmint/internal/randsrc"
	"github.com/okanra/jsonmint/pkg/schema"
)

// Handler executes a built-in over already-evaluated argument values,
// drawing any randomness from the per-run source.
type Handler func(args []any, rng *randsrc.Source) (any, error)

// Function describes one built-in. MaxArgs of -1 means variadic.
type Function struct {
	Name    string
	MinArgs int
	MaxArgs int
	Doc     string
	Call    Handler
}

// Registry is the fixed name→handler table for one run. Counter state for
// the count builtin lives here, never in a package-level variable, so
// parallel runs stay independent.
type Registry struct {
	table    map[string]Function
	counters map[string]float64
}

// NewRegistry creates a Registry populated with all built-ins.
func NewRegistry() *Registry {
	r := &Registry{
		table:    make(map[string]Function),
		counters: make(map[string]float64),
	}
	r.register(randomFunctions()...)
	r.register(compareFunctions()...)
	r.register(arithFunctions()...)
	r.register(convertFunctions(r)...)
	return r
}

func (r *Registry) register(fns ...Function) {
	for _, fn := range fns {
		r.table[fn.Name] = fn
	}
}

// Call invokes a built-in by name. Unknown names and argument-count
// mismatches are hard errors.
func (r *Registry) Call(name string, args []any, rng *randsrc.Source) (any, error) {
	fn, ok := r.table[name]
	if !ok {
		available := r.Names()
		return nil, schema.NewErrorf(schema.ErrCodeFunctionNotFound,
			"function %q not found; available: [%s]", name, strings.Join(available, ", ")).
			WithDetails(map[string]any{"function": name, "available_functions": available})
	}

	if len(args) < fn.MinArgs || (fn.MaxArgs >= 0 && len(args) > fn.MaxArgs) {
		return nil, schema.NewErrorf(schema.ErrCodeArgumentArity,
			"function %q expects %s, got %d", name, arityString(fn), len(args)).
			WithDetails(map[string]any{"function": name, "got": len(args)})
	}

	return fn.Call(args, rng)
}

// Has reports whether name is a registered built-in.
func (r *Registry) Has(name string) bool {
	_, ok := r.table[name]
	return ok
}

// Names returns all registered function names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.table))
	for k := range r.table {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func arityString(fn Function) string {
	switch {
	case fn.MaxArgs < 0:
		return atLeast(fn.MinArgs)
	case fn.MinArgs == fn.MaxArgs:
		return plural(fn.MinArgs)
	default:
		return plural(fn.MinArgs) + " to " + strconv.Itoa(fn.MaxArgs)
	}
}

func atLeast(n int) string { return "at least " + plural(n) }

func plural(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return strconv.Itoa(n) + " arguments"
}
