package ast

import "github.com/ablang/abc/internal/compiler/token"

// Identifier is a variable or parameter reference.
type Identifier struct {
	TypedBase
	Name string
}

func (*Identifier) exprNode() {}

// IntLiteral is an integer constant.
type IntLiteral struct {
	TypedBase
	Value int64
}

func (*IntLiteral) exprNode() {}

// FloatLiteral is a floating point constant.
type FloatLiteral struct {
	TypedBase
	Value float64
}

func (*FloatLiteral) exprNode() {}

// BoolLiteral is a true/false constant.
type BoolLiteral struct {
	TypedBase
	Value bool
}

func (*BoolLiteral) exprNode() {}

// TextPart is one piece of an interpolated text literal or command body:
// either a literal run of source text, or an embedded expression.
type TextPart struct {
	Literal string
	Expr    Expression // nil when Literal is set
}

// TextLiteral is a `"..."` literal, possibly interpolated with `${expr}`
// segments.
type TextLiteral struct {
	TypedBase
	Parts []TextPart
}

func (*TextLiteral) exprNode() {}

// ArrayLiteral is an `[elem, elem, ...]` literal.
type ArrayLiteral struct {
	TypedBase
	Elements []Expression
}

func (*ArrayLiteral) exprNode() {}

// BinaryExpr is a two-operand operator application.
type BinaryExpr struct {
	TypedBase
	Op    token.Type
	Left  Expression
	Right Expression
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr is a one-operand prefix operator application (`-`, `not`).
type UnaryExpr struct {
	TypedBase
	Op      token.Type
	Operand Expression
}

func (*UnaryExpr) exprNode() {}

// CallExpr is a function call. DeclID/VariantID are filled in by the type
// checker once the call is resolved to a concrete monomorphized variant.
type CallExpr struct {
	TypedBase
	Name      string
	Args      []Expression
	DeclID    int
	VariantID int
}

func (*CallExpr) exprNode() {}

// IndexExpr is an `array[index]` access.
type IndexExpr struct {
	TypedBase
	Array Expression
	Index Expression
}

func (*IndexExpr) exprNode() {}

// HandlerKind names which failure-handler clause followed a command.
type HandlerKind int

const (
	HandlerNone HandlerKind = iota
	HandlerPropagate             // trailing `?`
	HandlerFailed                // `failed { ... }`
	HandlerSucceeded             // `succeeded { ... }`
	HandlerExited                // `exited { ... }` / `then { ... }`
)

// FailureHandler is the clause attached to a command describing what to do
// with its exit status.
type FailureHandler struct {
	Kind      HandlerKind
	ParamName string     // the name bound to the exit status inside Body; "" for HandlerPropagate/HandlerNone
	Body      *BlockStmt // nil for HandlerPropagate and HandlerNone
}

// CommandModifiers are the keyword prefixes a command literal may carry.
type CommandModifiers struct {
	Silent   bool
	Sudo     bool
	Suppress bool
	Trust    bool
}

// CommandExpr is a `$...$` shell-command literal, with its interpolated
// body, its modifiers, and its (optional) failure handler.
type CommandExpr struct {
	TypedBase
	Modifiers CommandModifiers
	Parts     []TextPart
	Handler   *FailureHandler
}

func (*CommandExpr) exprNode() {}
