package parser

import (
	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/token"
	"github.com/ablang/abc/internal/compiler/types"
)

// ParseStatement dispatches to the production matching the current token.
func ParseStatement(cursor *TokenCursor, ctx *ParseContext) Result[ast.Statement] {
	return Choice(
		parseLet,
		parseReturn,
		parseIf,
		parseWhile,
		parseLoop,
		parseBreak,
		parseContinue,
		parseBlockStmt,
		parseAssignOrExpr,
	)(cursor, ctx)
}

// ParseBlock parses a `{ stmt* }` sequence, pushing a lexical scope for its
// duration.
func ParseBlock(cursor *TokenCursor, ctx *ParseContext) Result[*ast.BlockStmt] {
	if !cursor.Is(token.LBRACE) {
		return QuietResult[*ast.BlockStmt](cursor)
	}
	start := cursor.Position()
	cur := cursor.Advance()
	var stmts []ast.Statement
	ctx.PushScope()
	defer ctx.PopScope()
	for !cur.Is(token.RBRACE) && !cur.IsEOF() {
		r := ParseStatement(cur, ctx)
		if r.Kind == Loud {
			return Result[*ast.BlockStmt]{Kind: Loud, Err: r.Err, Cursor: r.Cursor}
		}
		if r.Kind == Quiet {
			return LoudResult[*ast.BlockStmt](NewParserError(cur.Position(), cur.Length(),
				"expected a statement or '}'", ErrUnexpectedToken), cur)
		}
		stmts = append(stmts, r.Value)
		cur = r.Cursor
	}
	if !cur.Is(token.RBRACE) {
		return LoudResult[*ast.BlockStmt](NewParserError(cur.Position(), cur.Length(),
			"expected '}' closing block", ErrMissingRBrace), cur)
	}
	block := &ast.BlockStmt{Stmts: stmts}
	block.StartPos, block.EndPos = start, cur.Position()
	return OkResult(block, cur.Advance())
}

func parseBlockStmt(cursor *TokenCursor, ctx *ParseContext) Result[ast.Statement] {
	r := ParseBlock(cursor, ctx)
	if r.Kind != Ok {
		return Result[ast.Statement]{Kind: r.Kind, Err: r.Err, Cursor: r.Cursor}
	}
	return OkResult[ast.Statement](r.Value, r.Cursor)
}

// parseLet parses `let name[: type] = expr [;]`. `ref` is not accepted
// here: by-reference binding exists only in function parameter lists
// (functions.go), and `let ref x` fails in this production with "expected
// a variable name after 'let'".
func parseLet(cursor *TokenCursor, ctx *ParseContext) Result[ast.Statement] {
	if !cursor.Is(token.LET) {
		return QuietResult[ast.Statement](cursor)
	}
	start := cursor.Position()
	cur := cursor.Advance()
	if !cur.Is(token.IDENT) {
		return LoudResult[ast.Statement](NewParserError(cur.Position(), cur.Length(),
			"expected a variable name after 'let'", ErrExpectedIdent), cur)
	}
	name := cur.Current().Word
	cur = cur.Advance()

	var annotation *ast.TypeExpr
	if cur.Is(token.COLON) {
		typeResult := Context(ParseType, "expected a type after ':'", ErrExpectedType)(cur.Advance(), ctx)
		if typeResult.Kind != Ok {
			return Result[ast.Statement]{Kind: typeResult.Kind, Err: typeResult.Err, Cursor: typeResult.Cursor}
		}
		annotation = typeResult.Value
		cur = typeResult.Cursor
	}

	if !cur.Is(token.ASSIGN) {
		return LoudResult[ast.Statement](NewParserError(cur.Position(), cur.Length(),
			"expected '=' in let binding", ErrMissingAssign), cur)
	}
	valResult := Context(ParseExpression, "expected an expression", ErrInvalidExpression)(cur.Advance(), ctx)
	if valResult.Kind != Ok {
		return Result[ast.Statement]{Kind: valResult.Kind, Err: valResult.Err, Cursor: valResult.Cursor}
	}
	cur = valResult.Cursor
	if cur.Is(token.SEMICOLON) {
		cur = cur.Advance()
	}

	var declared types.Type
	if annotation != nil {
		declared = annotation.Resolved
	}
	ctx.Define(name, declared, false)

	stmt := &ast.LetStmt{Name: name, Annotation: annotation, Value: valResult.Value}
	stmt.StartPos, stmt.EndPos = start, cur.Position()
	return OkResult[ast.Statement](stmt, cur)
}

// parseAssignOrExpr disambiguates `ident = expr` (assignment) from a bare
// expression statement (typically a command), via one token of lookahead.
func parseAssignOrExpr(cursor *TokenCursor, ctx *ParseContext) Result[ast.Statement] {
	if cursor.Is(token.IDENT) && cursor.PeekIs(1, token.ASSIGN) {
		start := cursor.Position()
		name := cursor.Current().Word
		cur := cursor.AdvanceN(2)
		valResult := Context(ParseExpression, "expected an expression", ErrInvalidExpression)(cur, ctx)
		if valResult.Kind != Ok {
			return Result[ast.Statement]{Kind: valResult.Kind, Err: valResult.Err, Cursor: valResult.Cursor}
		}
		cur = valResult.Cursor
		if cur.Is(token.SEMICOLON) {
			cur = cur.Advance()
		}
		stmt := &ast.AssignStmt{Name: name, Value: valResult.Value}
		stmt.StartPos, stmt.EndPos = start, cur.Position()
		return OkResult[ast.Statement](stmt, cur)
	}

	exprResult := ParseExpression(cursor, ctx)
	if exprResult.Kind != Ok {
		return Result[ast.Statement]{Kind: exprResult.Kind, Err: exprResult.Err, Cursor: exprResult.Cursor}
	}
	cur := exprResult.Cursor
	if cur.Is(token.SEMICOLON) {
		cur = cur.Advance()
	}
	stmt := &ast.ExprStmt{Expr: exprResult.Value}
	stmt.StartPos, stmt.EndPos = exprResult.Value.Pos(), cur.Position()
	return OkResult[ast.Statement](stmt, cur)
}

func parseReturn(cursor *TokenCursor, ctx *ParseContext) Result[ast.Statement] {
	if !cursor.Is(token.RETURN) {
		return QuietResult[ast.Statement](cursor)
	}
	start := cursor.Position()
	cur := cursor.Advance()
	var value ast.Expression
	if !cur.Is(token.SEMICOLON) && !cur.Is(token.RBRACE) {
		r := Context(ParseExpression, "expected an expression after 'return'", ErrInvalidExpression)(cur, ctx)
		if r.Kind != Ok {
			return Result[ast.Statement]{Kind: r.Kind, Err: r.Err, Cursor: r.Cursor}
		}
		value = r.Value
		cur = r.Cursor
	}
	if cur.Is(token.SEMICOLON) {
		cur = cur.Advance()
	}
	stmt := &ast.ReturnStmt{Value: value}
	stmt.StartPos, stmt.EndPos = start, cur.Position()
	return OkResult[ast.Statement](stmt, cur)
}

func parseIf(cursor *TokenCursor, ctx *ParseContext) Result[ast.Statement] {
	if !cursor.Is(token.IF) {
		return QuietResult[ast.Statement](cursor)
	}
	start := cursor.Position()
	cond := Context(ParseExpression, "expected a condition after 'if'", ErrInvalidExpression)(cursor.Advance(), ctx)
	if cond.Kind != Ok {
		return Result[ast.Statement]{Kind: cond.Kind, Err: cond.Err, Cursor: cond.Cursor}
	}
	thenResult := Context(ParseBlock, "expected a block after 'if' condition", ErrMissingRBrace)(cond.Cursor, ctx)
	if thenResult.Kind != Ok {
		return Result[ast.Statement]{Kind: thenResult.Kind, Err: thenResult.Err, Cursor: thenResult.Cursor}
	}
	cur := thenResult.Cursor
	var elseStmt ast.Statement
	if cur.Is(token.ELSE) {
		cur = cur.Advance()
		if cur.Is(token.IF) {
			r := parseIf(cur, ctx)
			if r.Kind != Ok {
				return r
			}
			elseStmt = r.Value
			cur = r.Cursor
		} else {
			r := Context(ParseBlock, "expected a block after 'else'", ErrMissingRBrace)(cur, ctx)
			if r.Kind != Ok {
				return Result[ast.Statement]{Kind: r.Kind, Err: r.Err, Cursor: r.Cursor}
			}
			elseStmt = r.Value
			cur = r.Cursor
		}
	}
	stmt := &ast.IfStmt{Cond: cond.Value, Then: thenResult.Value, Else: elseStmt}
	stmt.StartPos, stmt.EndPos = start, cur.Position()
	return OkResult[ast.Statement](stmt, cur)
}

func parseWhile(cursor *TokenCursor, ctx *ParseContext) Result[ast.Statement] {
	if !cursor.Is(token.WHILE) {
		return QuietResult[ast.Statement](cursor)
	}
	start := cursor.Position()
	cond := Context(ParseExpression, "expected a condition after 'while'", ErrInvalidExpression)(cursor.Advance(), ctx)
	if cond.Kind != Ok {
		return Result[ast.Statement]{Kind: cond.Kind, Err: cond.Err, Cursor: cond.Cursor}
	}
	var body *ast.BlockStmt
	ctx.WithFlag(func(f *ContextFlags, v bool) { f.InLoop = v }, true, func() {
		bodyResult := Context(ParseBlock, "expected a block after 'while' condition", ErrMissingRBrace)(cond.Cursor, ctx)
		if bodyResult.Kind == Ok {
			body = bodyResult.Value
			cond.Cursor = bodyResult.Cursor
		}
	})
	if body == nil {
		return LoudResult[ast.Statement](NewParserError(cond.Cursor.Position(), cond.Cursor.Length(),
			"expected a block after 'while' condition", ErrMissingRBrace), cond.Cursor)
	}
	stmt := &ast.WhileStmt{Cond: cond.Value, Body: body}
	stmt.StartPos, stmt.EndPos = start, cond.Cursor.Position()
	return OkResult[ast.Statement](stmt, cond.Cursor)
}

func parseLoop(cursor *TokenCursor, ctx *ParseContext) Result[ast.Statement] {
	if !cursor.Is(token.LOOP) {
		return QuietResult[ast.Statement](cursor)
	}
	start := cursor.Position()
	var body *ast.BlockStmt
	var next *TokenCursor
	var ferr *ParserError
	ctx.WithFlag(func(f *ContextFlags, v bool) { f.InLoop = v }, true, func() {
		r := Context(ParseBlock, "expected a block after 'loop'", ErrMissingRBrace)(cursor.Advance(), ctx)
		if r.Kind == Ok {
			body, next = r.Value, r.Cursor
		} else {
			ferr, next = r.Err, r.Cursor
		}
	})
	if body == nil {
		return LoudResult[ast.Statement](ferr, next)
	}
	stmt := &ast.LoopStmt{Body: body}
	stmt.StartPos, stmt.EndPos = start, next.Position()
	return OkResult[ast.Statement](stmt, next)
}

func parseBreak(cursor *TokenCursor, ctx *ParseContext) Result[ast.Statement] {
	if !cursor.Is(token.BREAK) {
		return QuietResult[ast.Statement](cursor)
	}
	start := cursor.Position()
	cur := cursor.Advance()
	if !ctx.Flags().InLoop {
		return LoudResult[ast.Statement](NewParserError(start, 1, "'break' outside a loop", ErrUnexpectedToken), cur)
	}
	if cur.Is(token.SEMICOLON) {
		cur = cur.Advance()
	}
	stmt := &ast.BreakStmt{}
	stmt.StartPos, stmt.EndPos = start, cur.Position()
	return OkResult[ast.Statement](stmt, cur)
}

func parseContinue(cursor *TokenCursor, ctx *ParseContext) Result[ast.Statement] {
	if !cursor.Is(token.CONTINUE) {
		return QuietResult[ast.Statement](cursor)
	}
	start := cursor.Position()
	cur := cursor.Advance()
	if !ctx.Flags().InLoop {
		return LoudResult[ast.Statement](NewParserError(start, 1, "'continue' outside a loop", ErrUnexpectedToken), cur)
	}
	if cur.Is(token.SEMICOLON) {
		cur = cur.Advance()
	}
	stmt := &ast.ContinueStmt{}
	stmt.StartPos, stmt.EndPos = start, cur.Position()
	return OkResult[ast.Statement](stmt, cur)
}
