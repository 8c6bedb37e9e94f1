package typecheck

import (
	"strings"

	"github.com/ablang/abc/internal/compiler/parser"
	"github.com/ablang/abc/internal/compiler/types"
)

// ScopeKind identifies why a scope exists, for diagnostics only.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeBlock
)

// Scope is one lexical level of the checker's symbol table. Scopes chain to
// a parent so inner scopes see outer declarations while still allowing
// shadowing.
type Scope struct {
	Kind    ScopeKind
	Symbols map[string]types.Type
	Parent  *Scope
}

// NewScope returns an empty scope chained to parent.
func NewScope(kind ScopeKind, parent *Scope) *Scope {
	return &Scope{Kind: kind, Symbols: make(map[string]types.Type), Parent: parent}
}

// Define adds name to this scope only.
func (s *Scope) Define(name string, typ types.Type) {
	s.Symbols[strings.ToLower(name)] = typ
}

// Lookup searches this scope and its ancestors, innermost first.
func (s *Scope) Lookup(name string) (types.Type, bool) {
	key := strings.ToLower(name)
	for sc := s; sc != nil; sc = sc.Parent {
		if t, ok := sc.Symbols[key]; ok {
			return t, true
		}
	}
	return nil, false
}

// PassContext is the state threaded through every checking pass: the scope
// chain, the function table inherited from parsing, the diagnostic list,
// and the contextual flags a pass needs to validate nesting rules
// (break/continue only in a loop, return only inside a function,
// trust/`?` conflicts).
type PassContext struct {
	Functions       map[string]*parser.FunctionEntry
	scope           *Scope
	Errors          []Error
	CurrentFunction *parser.FunctionEntry
	LoopDepth       int
	InTrust         bool
}

// NewPassContext returns a context with a single global scope and the
// given function table (produced by the parser while it registered
// declarations).
func NewPassContext(functions map[string]*parser.FunctionEntry) *PassContext {
	return &PassContext{
		Functions: functions,
		scope:     NewScope(ScopeGlobal, nil),
	}
}

func (ctx *PassContext) PushScope(kind ScopeKind) { ctx.scope = NewScope(kind, ctx.scope) }

func (ctx *PassContext) PopScope() {
	if ctx.scope.Parent != nil {
		ctx.scope = ctx.scope.Parent
	}
}

func (ctx *PassContext) WithScope(kind ScopeKind, fn func()) {
	ctx.PushScope(kind)
	defer ctx.PopScope()
	fn()
}

func (ctx *PassContext) Define(name string, typ types.Type) { ctx.scope.Define(name, typ) }

func (ctx *PassContext) Lookup(name string) (types.Type, bool) { return ctx.scope.Lookup(name) }

func (ctx *PassContext) LookupFunction(name string) (*parser.FunctionEntry, bool) {
	f, ok := ctx.Functions[strings.ToLower(name)]
	return f, ok
}

func (ctx *PassContext) AddError(e Error) { ctx.Errors = append(ctx.Errors, e) }

func (ctx *PassContext) HasErrors() bool { return len(ctx.Errors) > 0 }
