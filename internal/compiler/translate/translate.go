// Package translate walks a type-checked ast.Program and lowers it to
// POSIX/Bash shell text through the fragment IR (spec §4.5 "Translator &
// Statement Queue"), grounded on original_source's
// utils/metadata/translate.rs for the statement-queue/flag/ephemeral-
// variable discipline.
package translate

import (
	"strings"

	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/fragment"
	"github.com/ablang/abc/internal/compiler/funccache"
	"github.com/ablang/abc/internal/compiler/parser"
	"github.com/ablang/abc/internal/compiler/types"
)

// Options configures a Translator (spec §2 "Configuration", SPEC_FULL.md
// §2's Options struct).
type Options struct {
	Arith  fragment.ArithStrategy
	Minify bool
}

type variantKey struct{ declID, variantID int }

// Translator is the single-compile lowering driver. It owns the fragment
// Metadata (statement queue, flags, indent), the translator's own variable
// scope (global-id assignment, spec §3 "Variable entry"), and the function
// cache shared with the type checker.
type Translator struct {
	meta      *fragment.Metadata
	cache     *funccache.Cache
	functions map[string]*parser.FunctionEntry
	declByID  map[int]*ast.FunDecl
	scope     *scope

	funcDefOrder []variantKey
	emitted      map[variantKey]bool
}

// New returns a Translator over prog's function declarations.
func New(prog *ast.Program, functions map[string]*parser.FunctionEntry, cache *funccache.Cache, opts Options) *Translator {
	declByID := make(map[int]*ast.FunDecl, len(prog.Functions))
	for _, fn := range prog.Functions {
		declByID[fn.DeclID] = fn
	}
	return &Translator{
		meta:      fragment.NewMetadata(cache, opts.Arith, opts.Minify),
		cache:     cache,
		functions: functions,
		declByID:  declByID,
		scope:     newScope(nil),
		emitted:   make(map[variantKey]bool),
	}
}

// Translate lowers prog.Main's body to shell text, preceded by the
// definitions of every function variant that body (transitively) calls.
func (t *Translator) Translate(prog *ast.Program) string {
	mainBody := t.translateBlock(prog.Main.Body, false)

	var out strings.Builder
	for _, k := range t.funcDefOrder {
		v, ok := t.cache.GetByVariant(k.declID, k.variantID)
		if !ok || v.Translated == "" {
			continue
		}
		out.WriteString(v.Translated)
		out.WriteString("\n\n")
	}
	out.WriteString(mainBody.ToString(t.meta))
	return out.String()
}

// translateBlock lowers every statement of b, draining the statement queue
// between each one (spec §4.5's per-statement drain invariant) and wrapping
// the result (spec §4.4 "Block{stmts, braces}").
func (t *Translator) translateBlock(b *ast.BlockStmt, braces bool) *fragment.BlockFragment {
	if b == nil {
		return fragment.NewBlock(nil, braces)
	}
	var stmts []fragment.Fragment
	for _, s := range b.Stmts {
		f := t.translateStmt(s)
		stmts = append(stmts, t.meta.DrainStmts()...)
		stmts = append(stmts, f)
	}
	return fragment.NewBlock(stmts, braces)
}

// ensureFunctionVariant returns the mangled call-site name for (declID,
// variantID), translating and caching the variant's body on first use
// (spec §4.8 "Cache miss: instantiate... translate it with a fresh scope").
func (t *Translator) ensureFunctionVariant(declID, variantID int) string {
	fn, ok := t.declByID[declID]
	if !ok {
		return "unknown_fn"
	}
	entry, ok := t.functions[strings.ToLower(fn.Name)]
	if !ok {
		return fn.Name
	}

	v, ok := t.cache.GetByVariant(declID, variantID)
	if !ok {
		// Non-generic declaration: never entered the cache by the type
		// checker (only monomorphized calls are Stored there), so this is
		// its first and only variant.
		v = &funccache.Variant{
			DeclID:    declID,
			VariantID: variantID,
			ArgTypes:  append([]types.Type(nil), entry.ArgTypes...),
			Returns:   entry.Returns,
		}
		t.cache.Store(v)
	}

	mangled := v.MangledName(fn.Name)
	key := variantKey{declID, variantID}
	if t.emitted[key] {
		return mangled
	}
	t.emitted[key] = true
	t.funcDefOrder = append(t.funcDefOrder, key)

	t.withScope(func() {
		var paramStmts []fragment.Fragment
		for i, name := range entry.ArgNames {
			argType := entry.ArgTypes[i]
			if i < len(v.ArgTypes) {
				argType = types.Substitute(argType, v.ArgTypes[i])
			}
			id := t.meta.GenValueID()
			t.scope.define(name, varBinding{globalID: id, typ: argType})
			// Positional parameters are read once into a mangled local so
			// every reference inside the body uses the same collision-free
			// name a nested call's own parameters would use.
			posRef := fragment.NewRaw(positionalRef(i + 1))
			stmt := fragment.NewVarStmt(name, argType, posRef)
			stmt.GlobalID = id
			paramStmts = append(paramStmts, stmt)
		}
		body := t.translateBlock(fn.Body, false)
		allStmts := append(paramStmts, body.Stmts...)
		inner := fragment.NewBlock(allStmts, true)
		v.Translated = mangled + "() " + inner.ToString(t.meta)
	})

	return mangled
}

func positionalRef(i int) string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteByte('$')
	writeInt(&b, i)
	b.WriteByte('"')
	return b.String()
}

func writeInt(b *strings.Builder, n int) {
	if n == 0 {
		b.WriteByte('0')
		return
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	b.Write(digits[i:])
}
