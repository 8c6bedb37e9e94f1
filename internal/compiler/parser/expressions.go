package parser

import (
	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/token"
)

// ParseExpression is the entry point for the whole precedence chain:
// or < and < not < comparisons < additive < multiplicative < unary <
// call/index < primary (spec §4.2).
func ParseExpression(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	return parseOr(cursor, ctx)
}

// binaryLevel is the left-recursion-elimination helper spec §4.2 names:
// parse the left operand via next, then while the current token is one of
// ops, require the right operand via next and fold into a BinaryExpr.
func binaryLevel(next ParseFunc[ast.Expression], ops ...token.Type) ParseFunc[ast.Expression] {
	isOp := func(t token.Type) bool {
		for _, o := range ops {
			if o == t {
				return true
			}
		}
		return false
	}
	return func(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
		left := next(cursor, ctx)
		if left.Kind != Ok {
			return left
		}
		cur := left.Cursor
		node := left.Value
		for isOp(cur.Current().Type) {
			op := cur.Current().Type
			rhsCursor := cur.Advance()
			right := Context(next, "expected an operand", ErrInvalidExpression)(rhsCursor, ctx)
			if right.Kind != Ok {
				return right
			}
			bin := &ast.BinaryExpr{Op: op, Left: node, Right: right.Value}
			bin.StartPos, bin.EndPos = node.Pos(), right.Value.End()
			node = bin
			cur = right.Cursor
		}
		return OkResult(node, cur)
	}
}

func parseOr(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	return binaryLevel(parseAnd, token.OR)(cursor, ctx)
}

func parseAnd(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	return binaryLevel(parseNot, token.AND)(cursor, ctx)
}

// parseNot handles a prefix `not`, recursing on itself so `not not x`
// parses, then falls through to comparisons.
func parseNot(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	if cursor.Is(token.NOT) {
		start := cursor.Position()
		operand := Context(parseNot, "expected an operand after 'not'", ErrInvalidExpression)(cursor.Advance(), ctx)
		if operand.Kind != Ok {
			return operand
		}
		n := &ast.UnaryExpr{Op: token.NOT, Operand: operand.Value}
		n.StartPos, n.EndPos = start, operand.Value.End()
		return OkResult[ast.Expression](n, operand.Cursor)
	}
	return parseComparison(cursor, ctx)
}

func parseComparison(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	return binaryLevel(parseAdditive, token.EQ, token.NEQ, token.LT, token.GT, token.LE, token.GE)(cursor, ctx)
}

func parseAdditive(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	return binaryLevel(parseMultiplicative, token.PLUS, token.MINUS)(cursor, ctx)
}

func parseMultiplicative(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	return binaryLevel(parseUnary, token.STAR, token.SLASH, token.PERCENT)(cursor, ctx)
}

// parseUnary handles prefix `-`.
func parseUnary(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	if cursor.Is(token.MINUS) {
		start := cursor.Position()
		operand := Context(parseUnary, "expected an operand after '-'", ErrInvalidExpression)(cursor.Advance(), ctx)
		if operand.Kind != Ok {
			return operand
		}
		n := &ast.UnaryExpr{Op: token.MINUS, Operand: operand.Value}
		n.StartPos, n.EndPos = start, operand.Value.End()
		return OkResult[ast.Expression](n, operand.Cursor)
	}
	return parseCallIndex(cursor, ctx)
}

// parseCallIndex parses a primary expression, then zero or more trailing
// call `(...)` or index `[...]` suffixes.
func parseCallIndex(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	primary := parsePrimary(cursor, ctx)
	if primary.Kind != Ok {
		return primary
	}
	node := primary.Value
	cur := primary.Cursor
	for {
		switch {
		case cur.Is(token.LPAREN):
			id, isIdent := node.(*ast.Identifier)
			if !isIdent {
				return LoudResult[ast.Expression](NewParserError(cur.Position(), cur.Length(),
					"only a function name may be called", ErrInvalidExpression), cur)
			}
			args, afterArgs, err := parseArgList(cur.Advance(), ctx)
			if err != nil {
				return LoudResult[ast.Expression](err, afterArgs)
			}
			call := &ast.CallExpr{Name: id.Name, Args: args}
			call.StartPos, call.EndPos = node.Pos(), afterArgs.Position()
			node = call
			cur = afterArgs
		case cur.Is(token.LBRACKET):
			idxResult := Context(ParseExpression, "expected an index expression", ErrInvalidExpression)(cur.Advance(), ctx)
			if idxResult.Kind != Ok {
				return idxResult
			}
			if !idxResult.Cursor.Is(token.RBRACKET) {
				return LoudResult[ast.Expression](NewParserError(idxResult.Cursor.Position(), idxResult.Cursor.Length(),
					"expected ']' closing index", ErrMissingRBracket), idxResult.Cursor)
			}
			idx := &ast.IndexExpr{Array: node, Index: idxResult.Value}
			idx.StartPos, idx.EndPos = node.Pos(), idxResult.Cursor.Position()
			node = idx
			cur = idxResult.Cursor.Advance()
		default:
			return OkResult(node, cur)
		}
	}
}

func parseArgList(cursor *TokenCursor, ctx *ParseContext) ([]ast.Expression, *TokenCursor, *ParserError) {
	if cursor.Is(token.RPAREN) {
		return nil, cursor.Advance(), nil
	}
	list := SeparatedList(ParseExpression, token.COMMA)(cursor, ctx)
	if list.Kind == Loud {
		return nil, list.Cursor, list.Err
	}
	if list.Kind == Quiet {
		return nil, cursor, NewParserError(cursor.Position(), cursor.Length(), "expected an argument", ErrInvalidExpression)
	}
	if !list.Cursor.Is(token.RPAREN) {
		return nil, list.Cursor, NewParserError(list.Cursor.Position(), list.Cursor.Length(), "expected ')'", ErrMissingRParen)
	}
	return list.Value, list.Cursor.Advance(), nil
}

// parsePrimary matches the innermost productions: literals, commands,
// parenthesized expressions, and identifiers.
func parsePrimary(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	return Choice(
		ParseIntLiteral,
		ParseFloatLiteral,
		ParseBoolLiteral,
		ParseTextLiteral,
		ParseArrayLiteral,
		ParseCommand,
		parseParenExpr,
		parseIdentifier,
	)(cursor, ctx)
}

func parseParenExpr(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	return Between(token.LPAREN, ParseExpression, token.RPAREN, "expected ')'", ErrMissingRParen)(cursor, ctx)
}

func parseIdentifier(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	if !cursor.Is(token.IDENT) {
		return QuietResult[ast.Expression](cursor)
	}
	tok := cursor.Current()
	n := &ast.Identifier{Name: tok.Word}
	n.StartPos, n.EndPos = tok.Pos, tok.Pos
	return OkResult[ast.Expression](n, cursor.Advance())
}
