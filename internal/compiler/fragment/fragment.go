// Package fragment implements the translator's intermediate representation:
// a small closed tagged union of shell-text fragments, each of which lowers
// deterministically to target text given a *Metadata (spec §3 "Fragment
// (IR)", §4.4).
package fragment

// Kind discriminates the members of the fragment union.
type Kind int

const (
	KindEmpty Kind = iota
	KindRaw
	KindInterpolable
	KindList
	KindBlock
	KindSubprocess
	KindArithmetic
	KindVarStmt
	KindVarExpr
)

// Fragment is implemented by every member of the union. ToString lowers the
// fragment to shell text; IsRunningCommand/IsMutating answer the questions
// the translator asks before deciding whether an expression needs to be
// hoisted through the statement queue.
type Fragment interface {
	Kind() Kind
	ToString(meta *Metadata) string
	IsRunningCommand() bool
	IsMutating() bool
}

// Empty lowers to the empty string; used where a construct has no target
// representation (e.g. an unhandled optional clause).
type EmptyFragment struct{}

func (EmptyFragment) Kind() Kind                    { return KindEmpty }
func (EmptyFragment) ToString(*Metadata) string     { return "" }
func (EmptyFragment) IsRunningCommand() bool        { return false }
func (EmptyFragment) IsMutating() bool              { return false }

// Empty is the shared Empty fragment value.
var Empty Fragment = EmptyFragment{}

// RawFragment carries literal shell text, emitted unchanged.
type RawFragment struct {
	Text string
}

// NewRaw constructs a RawFragment.
func NewRaw(text string) *RawFragment { return &RawFragment{Text: text} }

func (r *RawFragment) Kind() Kind                { return KindRaw }
func (r *RawFragment) ToString(*Metadata) string { return r.Text }
func (r *RawFragment) IsRunningCommand() bool    { return false }
func (r *RawFragment) IsMutating() bool          { return false }

// ListFragment joins Items with Sep (spec §4.4 "List{items, sep}").
type ListFragment struct {
	Items []Fragment
	Sep   string
}

// NewList constructs a ListFragment, defaulting Sep to a single space.
func NewList(items []Fragment, sep string) *ListFragment {
	if sep == "" {
		sep = " "
	}
	return &ListFragment{Items: items, Sep: sep}
}

func (l *ListFragment) Kind() Kind { return KindList }

func (l *ListFragment) ToString(meta *Metadata) string {
	out := ""
	for i, item := range l.Items {
		if i > 0 {
			out += l.Sep
		}
		out += item.ToString(meta)
	}
	return out
}

func (l *ListFragment) IsRunningCommand() bool {
	for _, item := range l.Items {
		if item.IsRunningCommand() {
			return true
		}
	}
	return false
}

func (l *ListFragment) IsMutating() bool {
	for _, item := range l.Items {
		if item.IsMutating() {
			return true
		}
	}
	return false
}

// BlockFragment renders each statement on its own indented line, optionally
// wrapped in literal braces (spec §4.4 "Block{stmts, braces}"). Indent is
// always increased for the body regardless of Braces — a shell `if`/`while`
// body wants the indent without the literal `{`/`}` a `name() { ... }`
// function body wants both.
type BlockFragment struct {
	Stmts  []Fragment
	Braces bool
}

// NewBlock constructs a BlockFragment whose body always renders one indent
// level deeper than its surroundings; braces additionally wraps it in a
// literal `{ ... }` shell grouping (used for function bodies).
func NewBlock(stmts []Fragment, braces bool) *BlockFragment {
	return &BlockFragment{Stmts: stmts, Braces: braces}
}

func (b *BlockFragment) Kind() Kind { return KindBlock }

func (b *BlockFragment) ToString(meta *Metadata) string {
	out := ""
	if b.Braces {
		out += "{\n"
	}
	meta.IncreaseIndent()
	for _, stmt := range b.Stmts {
		out += meta.GenIndent() + stmt.ToString(meta) + "\n"
	}
	meta.DecreaseIndent()
	if b.Braces {
		out += meta.GenIndent() + "}"
	}
	return out
}

func (b *BlockFragment) IsRunningCommand() bool { return false }
func (b *BlockFragment) IsMutating() bool       { return true }

// SubprocessFragment wraps Inner in `$( ... )`, rendering it in command
// (unquoted) context (spec §4.4 "Subprocess(inner)").
type SubprocessFragment struct {
	Inner Fragment
}

func NewSubprocess(inner Fragment) *SubprocessFragment {
	return &SubprocessFragment{Inner: inner}
}

func (s *SubprocessFragment) Kind() Kind { return KindSubprocess }

func (s *SubprocessFragment) ToString(meta *Metadata) string {
	return "$(" + s.Inner.ToString(meta) + ")"
}

func (s *SubprocessFragment) IsRunningCommand() bool { return true }
func (s *SubprocessFragment) IsMutating() bool       { return s.Inner.IsMutating() }
