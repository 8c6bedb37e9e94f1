package parser

import (
	"strconv"

	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/token"
)

// ParseIntLiteral matches a bare integer literal.
func ParseIntLiteral(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	if !cursor.Is(token.INT) {
		return QuietResult[ast.Expression](cursor)
	}
	tok := cursor.Current()
	v, _ := strconv.ParseInt(tok.Word, 10, 64)
	n := &ast.IntLiteral{Value: v}
	n.StartPos, n.EndPos = tok.Pos, tok.Pos
	return OkResult[ast.Expression](n, cursor.Advance())
}

// ParseFloatLiteral matches a bare float literal.
func ParseFloatLiteral(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	if !cursor.Is(token.FLOAT) {
		return QuietResult[ast.Expression](cursor)
	}
	tok := cursor.Current()
	v, _ := strconv.ParseFloat(tok.Word, 64)
	n := &ast.FloatLiteral{Value: v}
	n.StartPos, n.EndPos = tok.Pos, tok.Pos
	return OkResult[ast.Expression](n, cursor.Advance())
}

// ParseBoolLiteral matches `true` or `false`.
func ParseBoolLiteral(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	tok := cursor.Current()
	switch tok.Type {
	case token.TRUE:
		n := &ast.BoolLiteral{Value: true}
		n.StartPos, n.EndPos = tok.Pos, tok.Pos
		return OkResult[ast.Expression](n, cursor.Advance())
	case token.FALSE:
		n := &ast.BoolLiteral{Value: false}
		n.StartPos, n.EndPos = tok.Pos, tok.Pos
		return OkResult[ast.Expression](n, cursor.Advance())
	default:
		return QuietResult[ast.Expression](cursor)
	}
}

// ParseTextLiteral matches a `"..."` token and splits it into interpolated
// parts.
func ParseTextLiteral(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	if !cursor.Is(token.TEXT) {
		return QuietResult[ast.Expression](cursor)
	}
	tok := cursor.Current()
	parts, err := parseInterpolated(tok, false, ctx)
	if err != nil {
		return LoudResult[ast.Expression](err, cursor)
	}
	n := &ast.TextLiteral{Parts: parts}
	n.StartPos, n.EndPos = tok.Pos, tok.Pos
	return OkResult[ast.Expression](n, cursor.Advance())
}

// ParseArrayLiteral matches `[expr, expr, ...]`, possibly empty.
func ParseArrayLiteral(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	if !cursor.Is(token.LBRACKET) {
		return QuietResult[ast.Expression](cursor)
	}
	start := cursor.Position()
	cur := cursor.Advance()
	var elements []ast.Expression
	if !cur.Is(token.RBRACKET) {
		list := SeparatedList(ParseExpression, token.COMMA)(cur, ctx)
		if list.Kind == Loud {
			return Result[ast.Expression]{Kind: Loud, Err: list.Err, Cursor: list.Cursor}
		}
		if list.Kind == Ok {
			elements = list.Value
			cur = list.Cursor
		}
	}
	if !cur.Is(token.RBRACKET) {
		return LoudResult[ast.Expression](NewParserError(cur.Position(), cur.Length(),
			"expected ']' closing array literal", ErrMissingRBracket), cur)
	}
	n := &ast.ArrayLiteral{Elements: elements}
	n.StartPos, n.EndPos = start, cur.Position()
	return OkResult[ast.Expression](n, cur.Advance())
}
