package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"github.com/okanra/jsonmint"
	"github.com/okanra/jsonmint/internal/loader"
	"github.com/okanra/jsonmint/internal/logging"
	"github.com/okanra/jsonmint/internal/query"
	"github.com/okanra/jsonmint/pkg/schema"
)

const usageText = `usage: jsonmint [flags] <document>

The document is JSON with a "schema" template tree and optional "variables".
It may be given inline, as @path to read a file, or as @- to read stdin.

flags:
  -seed N       seed the run's RNG for reproducible output (env: JSONMINT_SEED)
  -query EXPR   apply a jq expression to the resolved output
  -o FILE       write output to FILE atomically instead of stdout
  -pretty       indent the output
  -check        validate and compile the document without evaluating it
`

// run wires loader -> evaluator -> query -> serializer. Separated from
// main so tests can drive the full CLI path.
func run(args []string, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	cfg := loadConfig()

	fs := flag.NewFlagSet("jsonmint", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	var (
		seed    = cfg.Seed
		jqExpr  string
		outPath string
		pretty  bool
		check   bool
	)
	fs.Func("seed", "RNG seed", func(v string) error {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed %q", v)
		}
		seed = &n
		return nil
	})
	fs.StringVar(&jqExpr, "query", "", "jq expression applied to the output")
	fs.StringVar(&outPath, "o", "", "output file")
	fs.BoolVar(&pretty, "pretty", false, "indent the output")
	fs.BoolVar(&check, "check", false, "compile only")

	if err := fs.Parse(args); err != nil {
		return schema.NewErrorf(schema.ErrCodeValidation, "%s\n%s", err.Error(), usageText)
	}
	if fs.NArg() != 1 {
		return schema.NewErrorf(schema.ErrCodeValidation, "expected one document argument\n%s", usageText)
	}
	arg := fs.Arg(0)

	ctx := logging.WithRunID(context.Background(), uuid.NewString())
	ctx = logging.WithSource(ctx, sourceName(arg))

	ld, err := loader.New(stdin)
	if err != nil {
		return schema.NewError(schema.ErrCodeLoad, "loader initialization failed").WithCause(err)
	}

	doc, err := ld.Load(arg)
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "document loaded", slog.Int("variables", len(doc.Variables)))

	if check {
		if err := jsonmint.Check(doc); err != nil {
			return err
		}
		logger.InfoContext(ctx, "document compiles cleanly")
		return nil
	}

	var opts []jsonmint.Option
	if seed != nil {
		opts = append(opts, jsonmint.WithSeed(*seed))
	}

	result, err := jsonmint.Generate(doc, opts...)
	if err != nil {
		return err
	}

	if jqExpr != "" {
		result, err = query.NewEngine().Evaluate(ctx, jqExpr, result)
		if err != nil {
			return err
		}
	}

	out, err := encode(result, pretty)
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := atomic.WriteFile(outPath, bytes.NewReader(out)); err != nil {
			return schema.NewErrorf(schema.ErrCodeLoad, "cannot write %q", outPath).WithCause(err)
		}
		logger.InfoContext(ctx, "output written", slog.String("path", outPath))
		return nil
	}

	_, err = stdout.Write(out)
	return err
}

func encode(v any, pretty bool) ([]byte, error) {
	var (
		out []byte
		err error
	)
	if pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return nil, schema.NewError(schema.ErrCodeValidation, "cannot serialize output").WithCause(err)
	}
	return append(out, '\n'), nil
}

func sourceName(arg string) string {
	switch {
	case arg == "@-":
		return "stdin"
	case strings.HasPrefix(arg, "@"):
		return strings.TrimPrefix(arg, "@")
	default:
		return "inline"
	}
}
