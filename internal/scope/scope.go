// Package scope provides the run-scoped variable table.
package scope

import (
	"sort"
	"strings"

	"github.com/okanra/jsonmint/pkg/schema"
)

// Table is an immutable name→value snapshot built once per run. Values are
// frozen (deep-copied) at construction and again on lookup, so neither the
// caller's map nor an evaluated document can mutate another lookup's result.
type Table struct {
	vars map[string]any
}

// NewTable builds a Table from the document's variables object.
func NewTable(vars map[string]any) *Table {
	frozen := make(map[string]any, len(vars))
	for k, v := range vars {
		frozen[k] = schema.DeepCopy(v)
	}
	return &Table{vars: frozen}
}

// Lookup resolves a variable by name. Lists stay lists: they back
// choice-style selection and are never flattened.
func (t *Table) Lookup(name string) (any, error) {
	v, ok := t.vars[name]
	if !ok {
		available := t.Names()
		return nil, schema.NewErrorf(schema.ErrCodeUnboundVariable,
			"variable %q not found; available: [%s]", name, strings.Join(available, ", ")).
			WithDetails(map[string]any{"variable": name, "available_variables": available})
	}
	return schema.DeepCopy(v), nil
}

// Has reports whether name is bound.
func (t *Table) Has(name string) bool {
	_, ok := t.vars[name]
	return ok
}

// Names returns the bound variable names, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.vars))
	for k := range t.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
