package parser

import (
	"strings"

	"github.com/ablang/abc/internal/compiler/diagnostics"
	"github.com/ablang/abc/internal/compiler/token"
	"github.com/ablang/abc/internal/compiler/types"
)

// ContextFlags are the contextual parsing flags spec.md §2/§3 names:
// inside-loop, inside-function, inside-trust. They gate keyword validity
// (break/continue only inside a loop) and modifier validity (trust's
// interaction with ? propagation).
type ContextFlags struct {
	InLoop     bool
	InFunction bool
	InTrust    bool
}

// VariableEntry is the spec's {name, type, is_reference, global_id?,
// scope_depth} variable-table row. GlobalID is assigned lazily, during
// translation (not parsing), so it is a pointer: nil means "not yet
// assigned".
type VariableEntry struct {
	Name        string
	Type        types.Type
	IsReference bool
	GlobalID    *int
	ScopeDepth  int
}

// ScopeFrame holds the variable entries visible in one lexical scope.
type ScopeFrame struct {
	vars map[string]*VariableEntry
}

func newScopeFrame() *ScopeFrame {
	return &ScopeFrame{vars: make(map[string]*VariableEntry)}
}

// FunctionEntry is the spec's Function declaration row, held in the
// context's function table during parsing (before monomorphization).
type FunctionEntry struct {
	ID        int
	Name      string
	ArgNames  []string
	ArgTypes  []types.Type // may contain types.Generic
	ArgRefs   []bool
	Returns   types.Type
	IsTyped   bool
	IsPublic  bool
}

// BlockContext records one nested block for error-message context (e.g.
// "expected '}' closing the block opened at 3:1").
type BlockContext struct {
	Kind     string
	StartPos token.Position
}

// ParseContext carries everything syntax modules share: the scope stack,
// the function table, the message log, and the contextual flags. It is
// passed explicitly to every parse call — there is no package-level
// global (spec §9 "Global mutable state").
type ParseContext struct {
	flags      ContextFlags
	scopes     []*ScopeFrame
	functions  map[string]*FunctionEntry
	nextFuncID int
	blockStack []BlockContext
	Log        *diagnostics.Log
}

// NewParseContext returns a context with a single, empty global scope.
func NewParseContext() *ParseContext {
	return &ParseContext{
		scopes:    []*ScopeFrame{newScopeFrame()},
		functions: make(map[string]*FunctionEntry),
		Log:       diagnostics.NewLog(),
	}
}

// Warnf logs a non-fatal warning at pos (spec §7: "warnings do not fail the
// compile").
func (ctx *ParseContext) Warnf(pos token.Position, length int, format string, args ...any) {
	ctx.Log.Warnf(pos, length, format, args...)
}

// Flags returns a copy of the current contextual flags.
func (ctx *ParseContext) Flags() ContextFlags { return ctx.flags }

// SetFlags replaces the contextual flags.
func (ctx *ParseContext) SetFlags(f ContextFlags) { ctx.flags = f }

// WithFlag runs fn with one flag field temporarily set, restoring the
// previous value on every exit path (including panics propagating through
// fn) — the scoped-flag discipline spec §4.5/§9 requires, applied here to
// parser-level contextual flags (in_loop/in_function/in_trust) rather than
// translator flags (silenced/sudoed/eval_ctx), which live on
// fragment.Metadata instead.
func (ctx *ParseContext) WithFlag(set func(*ContextFlags, bool), value bool, fn func()) {
	saved := ctx.flags
	set(&ctx.flags, value)
	defer func() { ctx.flags = saved }()
	fn()
}

// PushScope opens a new lexical scope.
func (ctx *ParseContext) PushScope() { ctx.scopes = append(ctx.scopes, newScopeFrame()) }

// PopScope closes the innermost lexical scope, discarding its entries.
func (ctx *ParseContext) PopScope() {
	if len(ctx.scopes) > 1 {
		ctx.scopes = ctx.scopes[:len(ctx.scopes)-1]
	}
}

// WithScope runs fn inside a freshly pushed scope, guaranteeing the scope
// is popped on every exit path.
func (ctx *ParseContext) WithScope(fn func()) {
	ctx.PushScope()
	defer ctx.PopScope()
	fn()
}

// Depth returns the current scope nesting depth (0 = global scope).
func (ctx *ParseContext) Depth() int { return len(ctx.scopes) - 1 }

// Define adds a variable entry to the innermost scope.
func (ctx *ParseContext) Define(name string, typ types.Type, isReference bool) *VariableEntry {
	entry := &VariableEntry{
		Name:        name,
		Type:        typ,
		IsReference: isReference,
		ScopeDepth:  ctx.Depth(),
	}
	ctx.scopes[len(ctx.scopes)-1].vars[strings.ToLower(name)] = entry
	return entry
}

// Lookup searches scopes innermost-first for name.
func (ctx *ParseContext) Lookup(name string) (*VariableEntry, bool) {
	key := strings.ToLower(name)
	for i := len(ctx.scopes) - 1; i >= 0; i-- {
		if entry, ok := ctx.scopes[i].vars[key]; ok {
			return entry, true
		}
	}
	return nil, false
}

// DefineFunction registers a function declaration, assigning it a
// monotonic decl id.
func (ctx *ParseContext) DefineFunction(decl *FunctionEntry) {
	decl.ID = ctx.nextFuncID
	ctx.nextFuncID++
	ctx.functions[strings.ToLower(decl.Name)] = decl
}

// Functions returns the full function table built by parsing, keyed by
// lower-cased name — consumed by the type checker and translator after
// parsing finishes.
func (ctx *ParseContext) Functions() map[string]*FunctionEntry { return ctx.functions }

// LookupFunction finds a function declaration by name.
func (ctx *ParseContext) LookupFunction(name string) (*FunctionEntry, bool) {
	f, ok := ctx.functions[strings.ToLower(name)]
	return f, ok
}

// PushBlock records entry into a nested block, for error-context messages.
func (ctx *ParseContext) PushBlock(kind string, pos token.Position) {
	ctx.blockStack = append(ctx.blockStack, BlockContext{Kind: kind, StartPos: pos})
}

// PopBlock records exit from the innermost block.
func (ctx *ParseContext) PopBlock() {
	if len(ctx.blockStack) > 0 {
		ctx.blockStack = ctx.blockStack[:len(ctx.blockStack)-1]
	}
}

// WithBlock runs fn inside a tracked block, guaranteeing PopBlock runs on
// every exit path.
func (ctx *ParseContext) WithBlock(kind string, pos token.Position, fn func()) {
	ctx.PushBlock(kind, pos)
	defer ctx.PopBlock()
	fn()
}

// CurrentBlock returns the innermost tracked block, or nil if none.
func (ctx *ParseContext) CurrentBlock() *BlockContext {
	if len(ctx.blockStack) == 0 {
		return nil
	}
	return &ctx.blockStack[len(ctx.blockStack)-1]
}
