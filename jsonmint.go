// Package jsonmint generates randomized JSON documents from declarative
// templates: ordinary JSON trees whose string leaves may carry
// {{kind|arg|...}} directive markers (variable references, function calls,
// constants, repetition and conditional branching).
package jsonmint

import (
	"github.com/okanra/jsonmint/internal/funcs"
	"github.com/okanra/jsonmint/internal/randsrc"
	"github.com/okanra/jsonmint/internal/scope"
	"github.com/okanra/jsonmint/internal/template"
	"github.com/okanra/jsonmint/pkg/schema"
)

type config struct {
	seed      *uint64
	maxRepeat int64
}

// Option configures a Generate run.
type Option func(*config)

// WithSeed makes the run deterministic: a fixed seed and a fixed document
// always produce the same output.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = &seed }
}

// WithMaxRepeat overrides the repeat-count cap.
func WithMaxRepeat(n int64) Option {
	return func(c *config) { c.maxRepeat = n }
}

// Generate resolves a document's template against its variables, producing
// a directive-free value tree. Objects in the result preserve the
// template's key order. Any error aborts the run with no partial output.
func Generate(doc *schema.Document, opts ...Option) (any, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	root, err := template.Compile(doc.Schema)
	if err != nil {
		return nil, err
	}

	rng := randsrc.NewRandom()
	if cfg.seed != nil {
		rng = randsrc.New(*cfg.seed)
	}

	var evalOpts []template.Option
	if cfg.maxRepeat > 0 {
		evalOpts = append(evalOpts, template.WithMaxRepeat(cfg.maxRepeat))
	}

	ev := template.NewEvaluator(scope.NewTable(doc.Variables), funcs.NewRegistry(), rng, evalOpts...)
	return ev.Evaluate(root)
}

// Check compiles the document's template without evaluating it, reporting
// marker syntax and classification errors.
func Check(doc *schema.Document) error {
	_, err := template.Compile(doc.Schema)
	return err
}
