package parser

import (
	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/token"
)

// handlerKeywords maps a dispatch keyword to the HandlerKind it introduces
// (spec §4.9; "then" and "exited" are accepted synonyms, DESIGN.md).
var handlerKeywords = map[token.Type]ast.HandlerKind{
	token.FAILED:    ast.HandlerFailed,
	token.SUCCEEDED: ast.HandlerSucceeded,
	token.EXITED:    ast.HandlerExited,
	token.THEN:      ast.HandlerExited,
}

// ParseCommand implements the failure-handler state machine from spec
// §4.2/§4.9: optional modifiers, the interpolated command body, then
// exactly one of `?`, `failed{}`, `succeeded{}`, `exited{}`/`then{}`, or
// (if `trust` was given) nothing at all.
func ParseCommand(cursor *TokenCursor, ctx *ParseContext) Result[ast.Expression] {
	start := cursor.Position()
	var mods ast.CommandModifiers
	cur := cursor
	for {
		switch cur.Current().Type {
		case token.SILENT:
			mods.Silent = true
		case token.SUDO:
			mods.Sudo = true
		case token.SUPPRESS:
			mods.Suppress = true
		case token.TRUST:
			mods.Trust = true
		default:
			goto modifiersDone
		}
		cur = cur.Advance()
	}
modifiersDone:

	if !cur.Is(token.COMMAND) {
		if mods != (ast.CommandModifiers{}) {
			return LoudResult[ast.Expression](NewParserError(cur.Position(), cur.Length(),
				"expected a command after modifiers", ErrUnexpectedToken), cur)
		}
		return QuietResult[ast.Expression](cursor)
	}
	tok := cur.Current()
	parts, perr := parseInterpolated(tok, true, ctx)
	if perr != nil {
		return LoudResult[ast.Expression](perr, cur)
	}
	cur = cur.Advance()

	cmd := &ast.CommandExpr{Modifiers: mods, Parts: parts}
	cmd.StartPos, cmd.EndPos = start, tok.Pos

	handler, next, herr := parseFailureHandler(cur, ctx)
	if herr != nil {
		return LoudResult[ast.Expression](herr, cur)
	}
	cur = next

	if handler == nil && !mods.Trust {
		return LoudResult[ast.Expression](NewParserError(cur.Position(), cur.Length(),
			"command must be trusted or have a failure handler", ErrUnhandledCommand), cur)
	}
	if handler != nil {
		if _, dup := handlerKeywords[cur.Current().Type]; dup {
			return LoudResult[ast.Expression](NewParserError(cur.Position(), cur.Length(),
				"a command may have only one failure handler", ErrDuplicateHandler), cur)
		}
	}
	cmd.Handler = handler
	cmd.EndPos = cur.Position()
	return OkResult[ast.Expression](cmd, cur)
}

// parseFailureHandler consumes the dispatch clause, if present.
func parseFailureHandler(cursor *TokenCursor, ctx *ParseContext) (*ast.FailureHandler, *TokenCursor, *ParserError) {
	if cursor.Is(token.QUESTION) {
		return &ast.FailureHandler{Kind: ast.HandlerPropagate}, cursor.Advance(), nil
	}
	kind, ok := handlerKeywords[cursor.Current().Type]
	if !ok {
		return nil, cursor, nil
	}
	cur := cursor.Advance()
	if !cur.Is(token.LPAREN) {
		return nil, cur, NewParserError(cur.Position(), cur.Length(), "expected '(' after handler keyword", ErrUnexpectedToken)
	}
	cur = cur.Advance()
	if !cur.Is(token.IDENT) {
		return nil, cur, NewParserError(cur.Position(), cur.Length(), "expected a parameter name", ErrExpectedIdent)
	}
	paramName := cur.Current().Word
	cur = cur.Advance()
	if !cur.Is(token.RPAREN) {
		return nil, cur, NewParserError(cur.Position(), cur.Length(), "expected ')'", ErrMissingRParen)
	}
	cur = cur.Advance()
	blockResult := ParseBlock(cur, ctx)
	if blockResult.Kind != Ok {
		if blockResult.Err != nil {
			return nil, blockResult.Cursor, blockResult.Err
		}
		return nil, cur, NewParserError(cur.Position(), cur.Length(), "expected a handler block", ErrMissingRBrace)
	}
	if len(blockResult.Value.Stmts) == 0 {
		ctx.Warnf(blockResult.Value.Pos(), 1, "empty %s block", cursor.Current().Type)
	}
	return &ast.FailureHandler{Kind: kind, ParamName: paramName, Body: blockResult.Value}, blockResult.Cursor, nil
}
