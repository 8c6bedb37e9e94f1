package fragment

import (
	"strings"

	"github.com/ablang/abc/internal/compiler/funccache"
	"github.com/ablang/abc/internal/compiler/types"
)

const indentUnit = "    "

// ArithStrategy selects how Arithmetic fragments lower (spec §4.7).
type ArithStrategy int

const (
	ArithNative ArithStrategy = iota // $(( ... )), Int only
	ArithBcSed                       // bc -l | sed, Num
)

// Metadata is the translator's mutable, single-compile lowering context
// (spec §3 "TranslateMetadata"): the statement queue, indentation, the
// value-id counter, the arithmetic strategy, the function cache, and the
// scoped flags silenced/sudoed/eval_ctx/suppress.
type Metadata struct {
	Cache   *funccache.Cache
	StmtQueue []Fragment

	Arith  ArithStrategy
	Minify bool

	valueID int
	indent  int

	Silenced bool
	Sudoed   bool
	EvalCtx  bool
	Suppress bool
}

// NewMetadata returns a Metadata with indent at -1 (spec §4.5: "so the
// top-level block emits at column 0").
func NewMetadata(cache *funccache.Cache, arith ArithStrategy, minify bool) *Metadata {
	return &Metadata{Cache: cache, Arith: arith, Minify: minify, indent: -1}
}

// GenIndent renders the current indentation level.
func (m *Metadata) GenIndent() string {
	n := m.indent
	if n < 0 {
		n = 0
	}
	return strings.Repeat(indentUnit, n)
}

func (m *Metadata) IncreaseIndent() { m.indent++ }
func (m *Metadata) DecreaseIndent() { m.indent-- }

// GenValueID returns the next monotonic id used to build collision-free
// emitted identifiers (spec §3 "global_id").
func (m *Metadata) GenValueID() int {
	id := m.valueID
	m.valueID++
	return id
}

// PushStmt enqueues a fragment that must be emitted before the statement
// currently being translated (spec §4.5 "statement queue").
func (m *Metadata) PushStmt(f Fragment) { m.StmtQueue = append(m.StmtQueue, f) }

// DrainStmts removes and returns every queued fragment, in push order
// (FIFO, spec §3 invariant).
func (m *Metadata) DrainStmts() []Fragment {
	drained := m.StmtQueue
	m.StmtQueue = nil
	return drained
}

// PushEphemeralVariable enqueues stmt (marked ephemeral) and returns the
// VarExpr referring to it (spec §4.5 "Ephemeral variables").
func (m *Metadata) PushEphemeralVariable(stmt *VarStmtFragment) *VarExprFragment {
	stmt.Ephemeral = true
	expr := VarExprFromStmt(stmt)
	m.PushStmt(stmt)
	return expr
}

// GenSilent returns the redirect fragment matching the Silenced flag (spec
// §4.2 "silent" command modifier).
func (m *Metadata) GenSilent() Fragment {
	if m.Silenced {
		return NewRaw(">/dev/null 2>&1")
	}
	return Empty
}

// GenSuppress returns the stdout-only redirect matching the Suppress flag
// — distinct from Silenced, which also redirects stderr (SPEC_FULL.md §4
// "Silenced / suppressed output modifiers").
func (m *Metadata) GenSuppress() Fragment {
	if m.Suppress {
		return NewRaw(">/dev/null")
	}
	return Empty
}

// GenSudoPrefix emits a subshell-computed prefix that only inserts `sudo`
// when not already root and a sudo binary is on PATH, hoisted through the
// statement queue as an ephemeral variable (SPEC_FULL.md §4 "Sudo prefix
// generation is conditional, not literal").
func (m *Metadata) GenSudoPrefix() Fragment {
	if !m.Sudoed {
		return Empty
	}
	condition := `[ "$(id -u)" -ne 0 ] && command -v sudo >/dev/null 2>&1 && printf sudo`
	conditionFrag := NewRaw("$(" + condition + ")")
	stmt := NewVarStmt("__sudo", types.TextT, conditionFrag)
	stmt.GlobalID = m.GenValueID()
	expr := VarExprFromStmt(stmt).WithQuotes(false)
	m.PushStmt(stmt)
	return expr
}

// GenQuote returns the quote character to use for a StringLiteral, doubled
// up with an escaping backslash inside an eval context (spec
// "gen_quote").
func (m *Metadata) GenQuote() string {
	if m.EvalCtx {
		return `\"`
	}
	return `"`
}

// GenDollar returns the sigil introducing a variable expansion, escaped
// inside an eval context (spec "gen_dollar").
func (m *Metadata) GenDollar() string {
	if m.EvalCtx {
		return `\$`
	}
	return "$"
}

// withFlag runs fn with *flag temporarily set to value, restoring it on
// every exit path — the scoped-flag discipline spec §4.5/§9 requires for
// silenced/sudoed/eval_ctx/suppress, grounded on the same pattern the
// parser's ParseContext.WithFlag uses for its own contextual flags.
func withFlag(flag *bool, value bool, fn func()) {
	saved := *flag
	*flag = value
	defer func() { *flag = saved }()
	fn()
}

func (m *Metadata) WithSilenced(value bool, fn func()) { withFlag(&m.Silenced, value, fn) }
func (m *Metadata) WithSudoed(value bool, fn func())   { withFlag(&m.Sudoed, value, fn) }
func (m *Metadata) WithEvalCtx(value bool, fn func())  { withFlag(&m.EvalCtx, value, fn) }
func (m *Metadata) WithSuppress(value bool, fn func()) { withFlag(&m.Suppress, value, fn) }
