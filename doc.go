/*
Package compiler implements the TDLang compiler pipeline end to end.

	TDL Source Text ->
		lex ->
	Token Stream ->
		parse ->
	Abstract Syntax Tree (ast) ->
		analyze ->
	Validated AST ->
		generate ->
	Intermediate Representation (ir) ->
		optimize ->
	Optimized IR ->
		generate ->
	JSON Game Configuration / Readable Dump (codegen)

Each arrow is a separate, independently testable package: token, lexer,
ast, parser, sema, ir, optimize, codegen. This package's Compile and
CompileFile functions are the only way those packages are meant to be
driven together; callers needing partial pipelines (only parse, only
optimize) should use the subpackages directly.
*/
package compiler
