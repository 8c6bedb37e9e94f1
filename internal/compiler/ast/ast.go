// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the type checker and translator.
package ast

import (
	"github.com/ablang/abc/internal/compiler/token"
	"github.com/ablang/abc/internal/compiler/types"
)

// Node is the base interface every AST node implements.
type Node interface {
	Pos() token.Position
	End() token.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	exprNode()
	GetType() types.Type
	SetType(types.Type)
}

// Statement is any node executed for effect.
type Statement interface {
	Node
	stmtNode()
}

// BaseNode carries the start/end source positions shared by every node.
// Embedding it satisfies Pos()/End() for free.
type BaseNode struct {
	StartPos token.Position
	EndPos   token.Position
}

func (b BaseNode) Pos() token.Position { return b.StartPos }
func (b BaseNode) End() token.Position { return b.EndPos }

// SetEnd records the node's end position once the node's closing token is
// known. Syntax modules call this from NodeBuilder.Finish.
func (b *BaseNode) SetEnd(pos token.Position) { b.EndPos = pos }

// TypedBase adds a resolved-type slot to an expression. The type checker
// fills it in; it is the zero Type (nil) until then.
type TypedBase struct {
	BaseNode
	ResolvedType types.Type
}

func (t *TypedBase) GetType() types.Type    { return t.ResolvedType }
func (t *TypedBase) SetType(typ types.Type) { t.ResolvedType = typ }

// Program is the root node: zero or more function declarations plus exactly
// one main block.
type Program struct {
	BaseNode
	Functions []*FunDecl
	Main      *MainDecl
}

func (p *Program) stmtNode() {}
