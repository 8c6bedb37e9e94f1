package translate

import (
	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/fragment"
	"github.com/ablang/abc/internal/compiler/funccache"
	"github.com/ablang/abc/internal/compiler/parser"
	"github.com/ablang/abc/internal/compiler/token"
)

// newTestTranslator returns a bare Translator suitable for exercising a
// single lowering method in isolation, without going through New/Translate.
func newTestTranslator() *Translator {
	cache := funccache.New()
	return &Translator{
		meta:      fragment.NewMetadata(cache, fragment.ArithNative, false),
		cache:     cache,
		functions: make(map[string]*parser.FunctionEntry),
		declByID:  make(map[int]*ast.FunDecl),
		scope:     newScope(nil),
		emitted:   make(map[variantKey]bool),
	}
}

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

func intLit(v int64) *ast.IntLiteral {
	return &ast.IntLiteral{Value: v}
}

func boolLit(v bool) *ast.BoolLiteral {
	return &ast.BoolLiteral{Value: v}
}

func textLit(s string) *ast.TextLiteral {
	return &ast.TextLiteral{Parts: []ast.TextPart{{Literal: s}}}
}

func binExpr(op token.Type, left, right ast.Expression) *ast.BinaryExpr {
	return &ast.BinaryExpr{Op: op, Left: left, Right: right}
}

func block(stmts ...ast.Statement) *ast.BlockStmt {
	return &ast.BlockStmt{Stmts: stmts}
}
