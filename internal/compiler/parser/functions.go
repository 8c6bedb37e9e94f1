package parser

import (
	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/token"
	"github.com/ablang/abc/internal/compiler/types"
)

// ParseProgram is the top-level driver: zero or more function declarations
// followed by exactly one `main { ... }` block (spec §2 "Program").
func ParseProgram(cursor *TokenCursor, ctx *ParseContext) Result[*ast.Program] {
	start := cursor.Position()
	var funcs []*ast.FunDecl
	cur := cursor
	for cur.Is(token.PUB) || cur.Is(token.FUN) {
		r := ParseFunDecl(cur, ctx)
		if r.Kind != Ok {
			return Result[*ast.Program]{Kind: r.Kind, Err: r.Err, Cursor: r.Cursor}
		}
		funcs = append(funcs, r.Value)
		cur = r.Cursor
	}

	mainResult := Context(ParseMainDecl, "expected a 'main' block", ErrUnexpectedToken)(cur, ctx)
	if mainResult.Kind != Ok {
		return Result[*ast.Program]{Kind: mainResult.Kind, Err: mainResult.Err, Cursor: mainResult.Cursor}
	}
	cur = mainResult.Cursor

	if !cur.IsEOF() {
		return LoudResult[*ast.Program](NewParserError(cur.Position(), cur.Length(),
			"expected end of file after 'main' block", ErrUnexpectedToken), cur)
	}

	prog := &ast.Program{Functions: funcs, Main: mainResult.Value}
	prog.StartPos, prog.EndPos = start, cur.Position()
	return OkResult(prog, cur)
}

// ParseFunDecl parses `[pub] fun name(params) [: type] { body }` and
// registers the declaration in ctx so later call sites can resolve it
// (spec §2 "Function declaration").
func ParseFunDecl(cursor *TokenCursor, ctx *ParseContext) Result[*ast.FunDecl] {
	start := cursor.Position()
	isPublic := false
	cur := cursor
	if cur.Is(token.PUB) {
		isPublic = true
		cur = cur.Advance()
	}
	if !cur.Is(token.FUN) {
		if isPublic {
			return LoudResult[*ast.FunDecl](NewParserError(cur.Position(), cur.Length(),
				"expected 'fun' after 'pub'", ErrUnexpectedToken), cur)
		}
		return QuietResult[*ast.FunDecl](cursor)
	}
	cur = cur.Advance()

	if !cur.Is(token.IDENT) {
		return LoudResult[*ast.FunDecl](NewParserError(cur.Position(), cur.Length(),
			"expected a function name", ErrExpectedIdent), cur)
	}
	name := cur.Current().Word
	cur = cur.Advance()

	if !cur.Is(token.LPAREN) {
		return LoudResult[*ast.FunDecl](NewParserError(cur.Position(), cur.Length(),
			"expected '(' after function name", ErrUnexpectedToken), cur)
	}
	cur = cur.Advance()

	var params []ast.Param
	if !cur.Is(token.RPAREN) {
		for {
			p, next, perr := parseParam(cur, ctx)
			if perr != nil {
				return LoudResult[*ast.FunDecl](perr, next)
			}
			params = append(params, p)
			cur = next
			if cur.Is(token.COMMA) {
				cur = cur.Advance()
				continue
			}
			break
		}
	}
	if !cur.Is(token.RPAREN) {
		return LoudResult[*ast.FunDecl](NewParserError(cur.Position(), cur.Length(),
			"expected ')' closing parameter list", ErrMissingRParen), cur)
	}
	cur = cur.Advance()

	var returnType *ast.TypeExpr
	isTyped := true
	if cur.Is(token.COLON) {
		typeResult := Context(ParseType, "expected a return type after ':'", ErrExpectedType)(cur.Advance(), ctx)
		if typeResult.Kind != Ok {
			return Result[*ast.FunDecl]{Kind: typeResult.Kind, Err: typeResult.Err, Cursor: typeResult.Cursor}
		}
		returnType = typeResult.Value
		cur = typeResult.Cursor
	} else {
		isTyped = false
	}

	argNames := make([]string, len(params))
	argTypes := make([]types.Type, len(params))
	argRefs := make([]bool, len(params))
	for i, p := range params {
		argNames[i] = p.Name
		argRefs[i] = p.IsReference
		if p.Annotation != nil {
			argTypes[i] = p.Annotation.Resolved
		} else {
			argTypes[i] = types.Generic
		}
	}
	var returns types.Type = types.VoidT
	if returnType != nil {
		returns = returnType.Resolved
	}

	entry := &FunctionEntry{
		Name:     name,
		ArgNames: argNames,
		ArgTypes: argTypes,
		ArgRefs:  argRefs,
		Returns:  returns,
		IsTyped:  isTyped,
		IsPublic: isPublic,
	}
	ctx.DefineFunction(entry)

	var body *ast.BlockStmt
	ctx.WithFlag(func(f *ContextFlags, v bool) { f.InFunction = v }, true, func() {
		ctx.WithScope(func() {
			for i, p := range params {
				ctx.Define(p.Name, argTypes[i], p.IsReference)
			}
			r := Context(ParseBlock, "expected a function body", ErrMissingRBrace)(cur, ctx)
			if r.Kind == Ok {
				body, cur = r.Value, r.Cursor
			}
		})
	})
	if body == nil {
		return LoudResult[*ast.FunDecl](NewParserError(cur.Position(), cur.Length(),
			"expected a function body", ErrMissingRBrace), cur)
	}

	decl := &ast.FunDecl{
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		IsPublic:   isPublic,
		DeclID:     entry.ID,
	}
	decl.StartPos, decl.EndPos = start, cur.Position()
	return OkResult(decl, cur)
}

// parseParam parses one `[ref] name[: type]` parameter.
func parseParam(cursor *TokenCursor, ctx *ParseContext) (ast.Param, *TokenCursor, *ParserError) {
	cur := cursor
	isRef := false
	if cur.Is(token.REF) {
		isRef = true
		cur = cur.Advance()
	}
	if !cur.Is(token.IDENT) {
		return ast.Param{}, cur, NewParserError(cur.Position(), cur.Length(), "expected a parameter name", ErrExpectedIdent)
	}
	name := cur.Current().Word
	cur = cur.Advance()

	var annotation *ast.TypeExpr
	if cur.Is(token.COLON) {
		typeResult := Context(ParseType, "expected a type after ':'", ErrExpectedType)(cur.Advance(), ctx)
		if typeResult.Kind != Ok {
			return ast.Param{}, typeResult.Cursor, typeResult.Err
		}
		annotation = typeResult.Value
		cur = typeResult.Cursor
	}
	return ast.Param{Name: name, Annotation: annotation, IsReference: isRef}, cur, nil
}

// ParseMainDecl parses the single `main { ... }` entry point.
func ParseMainDecl(cursor *TokenCursor, ctx *ParseContext) Result[*ast.MainDecl] {
	if !cursor.Is(token.MAIN) {
		return QuietResult[*ast.MainDecl](cursor)
	}
	start := cursor.Position()
	bodyResult := Context(ParseBlock, "expected a block after 'main'", ErrMissingRBrace)(cursor.Advance(), ctx)
	if bodyResult.Kind != Ok {
		return Result[*ast.MainDecl]{Kind: bodyResult.Kind, Err: bodyResult.Err, Cursor: bodyResult.Cursor}
	}
	decl := &ast.MainDecl{Body: bodyResult.Value}
	decl.StartPos, decl.EndPos = start, bodyResult.Cursor.Position()
	return OkResult(decl, bodyResult.Cursor)
}
