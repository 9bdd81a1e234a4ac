// Package query post-filters resolved documents with jq expressions.
package query

import (
	"context"
	"sync"

	"github.com/itchyny/gojq"

	"github.com/okanra/jsonmint/pkg/schema"
)

// Engine evaluates jq expressions against a resolved output value.
// Thread-safe: compiled *Code objects are cached and reused across goroutines.
type Engine struct {
	mu    sync.RWMutex
	cache map[string]*gojq.Code
}

// NewEngine creates a new jq query engine.
func NewEngine() *Engine {
	return &Engine{cache: make(map[string]*gojq.Code)}
}

// Evaluate compiles (or retrieves from cache) a jq expression and runs it
// against the value. Ordered objects are flattened to plain maps first,
// the shape gojq requires.
//
// jq expressions can produce multiple outputs. One output is returned
// directly; several are collected into a slice.
func (e *Engine) Evaluate(ctx context.Context, expression string, value any) (any, error) {
	if expression == "" {
		return nil, schema.NewError(schema.ErrCodeQuery, "empty jq expression")
	}

	code, err := e.getOrCompile(expression)
	if err != nil {
		return nil, err
	}

	iter := code.RunWithContext(ctx, schema.Plain(value))

	var results []any
	for {
		val, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := val.(error); isErr {
			return nil, schema.NewErrorf(schema.ErrCodeQuery,
				"jq evaluation failed for %q: %s", expression, err.Error()).
				WithCause(err).
				WithDetails(map[string]any{"expression": expression})
		}
		results = append(results, val)
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

// getOrCompile returns a cached compiled code or compiles and caches a new one.
func (e *Engine) getOrCompile(expression string) (*gojq.Code, error) {
	e.mu.RLock()
	if code, ok := e.cache[expression]; ok {
		e.mu.RUnlock()
		return code, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Double-check after acquiring write lock.
	if code, ok := e.cache[expression]; ok {
		return code, nil
	}

	parsed, err := gojq.Parse(expression)
	if err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeQuery,
			"jq parse error in %q: %s", expression, err.Error()).
			WithCause(err).
			WithDetails(map[string]any{"expression": expression})
	}

	code, err := gojq.Compile(parsed,
		// Sandbox: return empty env to block $ENV and env access.
		gojq.WithEnvironLoader(func() []string { return nil }),
	)
	if err != nil {
		return nil, schema.NewErrorf(schema.ErrCodeQuery,
			"jq compile error in %q: %s", expression, err.Error()).
			WithCause(err).
			WithDetails(map[string]any{"expression": expression})
	}

	e.cache[expression] = code
	return code, nil
}
