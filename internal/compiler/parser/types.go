package parser

import (
	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/token"
	"github.com/ablang/abc/internal/compiler/types"
)

// ParseType parses a type annotation: a bare name (int/num/text/bool) or a
// bracketed array of one, e.g. [int].
func ParseType(cursor *TokenCursor, ctx *ParseContext) Result[*ast.TypeExpr] {
	start := cursor.Position()
	if cursor.Is(token.LBRACKET) {
		inner := Context(ParseType, "expected element type inside '[...]'", ErrExpectedType)(cursor.Advance(), ctx)
		if inner.Kind != Ok {
			return Result[*ast.TypeExpr]{Kind: inner.Kind, Err: inner.Err, Cursor: inner.Cursor}
		}
		if !inner.Cursor.Is(token.RBRACKET) {
			return LoudResult[*ast.TypeExpr](NewParserError(inner.Cursor.Position(), inner.Cursor.Length(),
				"expected ']' closing array type", ErrMissingRBracket), inner.Cursor)
		}
		te := &ast.TypeExpr{
			BaseNode: ast.BaseNode{StartPos: start, EndPos: inner.Cursor.Position()},
			Name:     "array",
			Elem:     inner.Value,
		}
		te.Resolved = types.NewArray(resolveTypeName(inner.Value))
		return OkResult(te, inner.Cursor.Advance())
	}
	if !cursor.Is(token.IDENT) {
		return QuietResult[*ast.TypeExpr](cursor)
	}
	name := cursor.Current().Word
	resolved, ok := primitiveType(name)
	if !ok {
		return QuietResult[*ast.TypeExpr](cursor)
	}
	te := &ast.TypeExpr{
		BaseNode: ast.BaseNode{StartPos: start, EndPos: cursor.Position()},
		Name:     name,
		Resolved: resolved,
	}
	return OkResult(te, cursor.Advance())
}

func primitiveType(name string) (types.Type, bool) {
	switch name {
	case "int":
		return types.IntT, true
	case "num":
		return types.NumT, true
	case "text":
		return types.TextT, true
	case "bool":
		return types.BoolT, true
	default:
		return nil, false
	}
}

// resolveTypeName returns te's resolved type, or Void for nil. It does not
// recurse: a nested array's inner TypeExpr already carries its own resolved
// Array type, so [[int]] resolves to Array(Array(Int)).
func resolveTypeName(te *ast.TypeExpr) types.Type {
	if te == nil {
		return types.VoidT
	}
	return te.Resolved
}
