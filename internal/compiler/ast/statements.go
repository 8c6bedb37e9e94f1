package ast

import "github.com/ablang/abc/internal/compiler/types"

// TypeExpr is a textual type annotation as written in source, before the
// type checker resolves it into a types.Type.
type TypeExpr struct {
	BaseNode
	Name     string    // "int", "num", "text", "bool", "array"
	Elem     *TypeExpr // non-nil when Name == "array"
	Resolved types.Type
}

// LetStmt declares and initializes a variable, optionally typed `ref`.
type LetStmt struct {
	BaseNode
	Name        string
	Annotation  *TypeExpr // nil when the type is inferred
	Value       Expression
	IsReference bool
}

func (*LetStmt) stmtNode() {}

// AssignStmt rebinds an already-declared variable.
type AssignStmt struct {
	BaseNode
	Name  string
	Value Expression
}

func (*AssignStmt) stmtNode() {}

// ReturnStmt returns from the enclosing function, with an optional value.
type ReturnStmt struct {
	BaseNode
	Value Expression // nil for a bare `return`
}

func (*ReturnStmt) stmtNode() {}

// ExprStmt is an expression evaluated for its side effect (typically a
// command) and discarded.
type ExprStmt struct {
	BaseNode
	Expr Expression
}

func (*ExprStmt) stmtNode() {}

// BlockStmt is a `{ ... }` sequence of statements introducing its own
// lexical scope.
type BlockStmt struct {
	BaseNode
	Stmts []Statement
}

func (*BlockStmt) stmtNode() {}

// IfStmt is a conditional. Else may be a *BlockStmt or a nested *IfStmt
// (else-if chaining), or nil.
type IfStmt struct {
	BaseNode
	Cond Expression
	Then *BlockStmt
	Else Statement
}

func (*IfStmt) stmtNode() {}

// WhileStmt repeats Body while Cond holds.
type WhileStmt struct {
	BaseNode
	Cond Expression
	Body *BlockStmt
}

func (*WhileStmt) stmtNode() {}

// LoopStmt repeats Body unconditionally; the only way out is `break`.
type LoopStmt struct {
	BaseNode
	Body *BlockStmt
}

func (*LoopStmt) stmtNode() {}

// BreakStmt exits the nearest enclosing loop.
type BreakStmt struct{ BaseNode }

func (*BreakStmt) stmtNode() {}

// ContinueStmt jumps to the next iteration of the nearest enclosing loop.
type ContinueStmt struct{ BaseNode }

func (*ContinueStmt) stmtNode() {}

// Param is one function parameter.
type Param struct {
	Name        string
	Annotation  *TypeExpr
	IsReference bool
}

// FunDecl is a top-level function declaration.
type FunDecl struct {
	BaseNode
	Name       string
	Params     []Param
	ReturnType *TypeExpr // nil when unannotated / inferred void
	Body       *BlockStmt
	IsPublic   bool

	// DeclID is assigned by the parser's ParseContext when the function is
	// registered, and used by the type checker/translator to key the
	// monomorphized variant cache.
	DeclID int
}

func (*FunDecl) stmtNode() {}

// MainDecl is the program's single entry-point block.
type MainDecl struct {
	BaseNode
	Body *BlockStmt
}

func (*MainDecl) stmtNode() {}
