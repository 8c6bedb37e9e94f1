package parser

import "github.com/ablang/abc/internal/compiler/token"

// endSetter is implemented by every ast node via BaseNode.SetEnd. Using the
// interface instead of reflection (the teacher's approach, needed there
// because its node set predated a common base type) keeps this a compile
// checked cast instead of a silently-failing reflect.Value walk.
type endSetter interface {
	SetEnd(token.Position)
}

// NodeBuilder captures a node's start token and, once the syntax module
// knows the node's extent, stamps its end position. Syntax modules create
// one NodeBuilder per production attempt:
//
//	nb := NewNodeBuilder(cursor)
//	... parse children, advancing cursor ...
//	nb.Finish(node, cursor)
type NodeBuilder struct {
	start token.Position
}

// NewNodeBuilder records cursor's current position as the node's start.
func NewNodeBuilder(cursor *TokenCursor) *NodeBuilder {
	return &NodeBuilder{start: cursor.Position()}
}

// Start returns the recorded start position.
func (nb *NodeBuilder) Start() token.Position { return nb.start }

// Finish stamps node's end position from cursor's current token (the token
// just past the node, typically the one not yet consumed) and returns node
// for chaining. If node doesn't implement endSetter, this is a no-op.
func (nb *NodeBuilder) Finish(node any, cursor *TokenCursor) any {
	return nb.FinishAt(node, cursor.Position())
}

// FinishAt stamps node's end position explicitly, for callers that already
// hold the position of the node's last consumed token (e.g. after Advance).
func (nb *NodeBuilder) FinishAt(node any, pos token.Position) any {
	if es, ok := node.(endSetter); ok {
		es.SetEnd(pos)
	}
	return node
}
