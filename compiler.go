package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/tdlang/compiler/ast"
	"github.com/tdlang/compiler/ir"
	"github.com/tdlang/compiler/optimize"
	"github.com/tdlang/compiler/parser"
	"github.com/tdlang/compiler/sema"
)

// Options controls the parts of the pipeline a caller may skip. The zero
// value runs the full pipeline including optimization.
type Options struct {
	// NoOptimize skips the optimizer pass entirely, matching the -no-opt
	// CLI flag: the IR generator's output becomes the code generator's
	// input directly.
	NoOptimize bool
}

// Result holds both the pre- and post-optimization IR so callers (notably
// the -ir CLI flag) can dump either one. When opt.NoOptimize is set,
// Optimized is identical to Generated.
type Result struct {
	Program   *ast.Program
	Generated []ir.Instruction
	Optimized []ir.Instruction
}

// CompileFile reads path and compiles its contents.
func CompileFile(ctx context.Context, path string, opt Options) (Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{}, errors.Wrap(err, "read file %q", path)
	}

	tlog.SpanFromContext(ctx).Printw("read file", "path", path, "size", len(src), "from", loc.Caller(1))

	return Compile(ctx, path, src, opt)
}

// Compile runs the full pipeline over src: lex, parse, analyze, generate
// IR, and (unless opt.NoOptimize) optimize. name identifies the source for
// diagnostics only.
func Compile(ctx context.Context, name string, src []byte, opt Options) (Result, error) {
	prog, err := parser.Parse(src)
	if err != nil {
		return Result{}, errors.Wrap(err, "parse %v", name)
	}

	tlog.SpanFromContext(ctx).Printw("parsed", "name", name, "decls", len(prog.Decls))

	if err := sema.Analyze(ctx, prog); err != nil {
		return Result{}, errors.Wrap(err, "analyze %v", name)
	}

	tlog.SpanFromContext(ctx).Printw("analyzed", "name", name)

	generated := ir.Generate(prog)

	optimized := generated

	if !opt.NoOptimize {
		optimized = optimize.Run(ctx, generated)
	}

	tlog.SpanFromContext(ctx).Printw("compiled", "name", name, "generated", len(generated), "optimized", len(optimized))

	return Result{Program: prog, Generated: generated, Optimized: optimized}, nil
}
