// Command tdlc is the TDLang compiler frontend: file I/O, flag parsing, and
// exit codes around the compiler package. Its argument handling lives in
// run, exercised directly by this package's tests; main and compileAct
// exist only to wire run into cli.Command.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nikandfor/hacked/hfmt"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/tdlang/compiler"
	"github.com/tdlang/compiler/codegen"
)

func main() {
	app := &cli.Command{
		Name:        "tdlc",
		Description: "tdlc compiles TDLang tower-defense configuration sources to JSON",
		Action:      compileAct,
		Args:        cli.Args{},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func compileAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	return run(ctx, []string(c.Args))
}

// run implements the flag surface documented by printUsage over a plain
// argument slice, independent of cli.Command, so it can be exercised
// directly by tests.
func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printUsage()
		return errors.New("no input file")
	}

	input := args[0]
	output := "output.json"
	showIR := false
	readable := false
	noOpt := false

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "-o":
			if i+1 >= len(args) {
				return errors.New("-o requires an argument")
			}
			i++
			output = args[i]
		case "-ir":
			showIR = true
		case "-readable":
			readable = true
		case "-no-opt":
			noOpt = true
		case "-h", "--help":
			printUsage()
			return nil
		default:
			return errors.New("unknown option: %s", args[i])
		}
	}

	result, err := compiler.CompileFile(ctx, input, compiler.Options{NoOptimize: noOpt})
	if err != nil {
		return errors.Wrap(err, "compile %v", input)
	}

	if showIR {
		fmt.Println(codegen.Readable(result.Generated))

		if !noOpt {
			fmt.Println(codegen.Readable(result.Optimized))
		}
	}

	var out string
	if readable {
		out = codegen.Readable(result.Optimized)
	} else {
		out = codegen.JSON(result.Optimized)
	}

	if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
		return errors.Wrap(err, "write output %v", output)
	}

	tlog.SpanFromContext(ctx).Printw("compilation successful", "output", output)

	return nil
}

func printUsage() {
	var b []byte

	b = hfmt.Appendf(b, "Usage: tdlc <input_file> [options]\n")
	b = hfmt.Appendf(b, "Options:\n")
	b = hfmt.Appendf(b, "  -o <file>     Output file (default: output.json)\n")
	b = hfmt.Appendf(b, "  -ir           Output IR to stdout\n")
	b = hfmt.Appendf(b, "  -readable     Output readable format instead of JSON\n")
	b = hfmt.Appendf(b, "  -no-opt       Disable optimization\n")
	b = hfmt.Appendf(b, "  -h, --help    Show this help message\n")

	fmt.Print(string(b))
}
