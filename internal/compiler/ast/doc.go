// Package ast defines the node types produced by internal/compiler/parser
// and consumed by internal/compiler/typecheck and internal/compiler/translate.
//
// Dispatch over the AST is done with type switches in the consuming
// packages rather than a visitor interface on Node itself — the node set
// is closed and small enough that a switch reads better than a double
// dispatch indirection.
package ast
