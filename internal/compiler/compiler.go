// Package compiler wires the lexer, parser, type checker, fragment IR, and
// translator into the single-call driver the CLI (cmd/abc) and tests use
// (spec §1 "Compile(source, options) -> Result<string, CompileError>").
package compiler

import (
	"fmt"

	"github.com/ablang/abc/internal/compiler/diagnostics"
	"github.com/ablang/abc/internal/compiler/fragment"
	"github.com/ablang/abc/internal/compiler/funccache"
	"github.com/ablang/abc/internal/compiler/lexer"
	"github.com/ablang/abc/internal/compiler/parser"
	"github.com/ablang/abc/internal/compiler/translate"
	"github.com/ablang/abc/internal/compiler/typecheck"
)

// Options configures one compile (spec §2 "Configuration"). No
// package-level globals carry any of this — every call is self-contained,
// matching the parser's own no-global-state discipline (spec §9).
type Options struct {
	Arith  fragment.ArithStrategy
	Minify bool
	Header string
	Footer string
}

// Error wraps a failed compile's formatted diagnostics (spec §6/§7:
// warnings are reported but never fail the compile; only Errors do).
type Error struct {
	Path     string
	Messages []diagnostics.Message
	Source   string
}

func (e *Error) Error() string {
	log := diagnostics.NewLog()
	for _, m := range e.Messages {
		log.Add(m)
	}
	return fmt.Sprintf("compile failed with %d error(s):\n%s", len(e.Messages), log.Format(e.Source))
}

// Result is a successful compile's output.
type Result struct {
	Script   string
	Warnings []diagnostics.Message
}

// Compile lowers source (named path, for diagnostics) to shell text per
// opts. It is the sole entry point cmd/abc and tests drive the pipeline
// through.
func Compile(path, source string, opts Options) (*Result, error) {
	l := lexer.New(source, path)
	cursor := parser.NewTokenCursor(l)
	ctx := parser.NewParseContext()

	progResult := parser.ParseProgram(cursor, ctx)
	if !progResult.IsOk() {
		msgs := ctx.Log.Messages()
		if progResult.Err != nil {
			msgs = append(msgs, diagnostics.Message{
				Severity: diagnostics.Error,
				Pos:      progResult.Err.Pos,
				Length:   progResult.Err.Length,
				Text:     progResult.Err.Message,
			})
		}
		return nil, &Error{Path: path, Source: source, Messages: msgs}
	}
	prog := progResult.Value

	if ctx.Log.HasErrors() {
		return nil, &Error{Path: path, Source: source, Messages: ctx.Log.Messages()}
	}

	cache := funccache.New()
	checker := typecheck.NewChecker(functionTable(ctx), cache)
	if errs := checker.Check(prog); len(errs) > 0 {
		msgs := make([]diagnostics.Message, len(errs))
		for i, e := range errs {
			msgs[i] = diagnostics.Message{Severity: diagnostics.Error, Pos: e.Pos, Length: e.Length, Text: e.Message}
		}
		return nil, &Error{Path: path, Source: source, Messages: msgs}
	}

	translator := translate.New(prog, functionTable(ctx), cache, translate.Options{
		Arith:  opts.Arith,
		Minify: opts.Minify,
	})
	body := translator.Translate(prog)

	script := assembleScript(opts, body)
	return &Result{Script: script, Warnings: warningsOf(ctx.Log)}, nil
}

func assembleScript(opts Options, body string) string {
	out := "#!/bin/sh\n"
	if opts.Header != "" {
		out += opts.Header + "\n"
	}
	out += body + "\n"
	if opts.Footer != "" {
		out += opts.Footer + "\n"
	}
	return out
}

func warningsOf(log *diagnostics.Log) []diagnostics.Message {
	var warnings []diagnostics.Message
	for _, m := range log.Messages() {
		if m.Severity == diagnostics.Warning {
			warnings = append(warnings, m)
		}
	}
	return warnings
}

// functionTable exposes ctx's parsed function declarations, keyed the same
// way the checker/translator both expect (lower-cased name -> entry).
func functionTable(ctx *parser.ParseContext) map[string]*parser.FunctionEntry {
	return ctx.Functions()
}
