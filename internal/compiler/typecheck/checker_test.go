package typecheck

import (
	"testing"

	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/funccache"
	"github.com/ablang/abc/internal/compiler/parser"
	"github.com/ablang/abc/internal/compiler/token"
	"github.com/ablang/abc/internal/compiler/types"
)

func TestCheckBinaryNumericMixIsRejected(t *testing.T) {
	functions := map[string]*parser.FunctionEntry{}
	prog := &ast.Program{Main: &ast.MainDecl{Body: &ast.BlockStmt{Stmts: []ast.Statement{
		&ast.LetStmt{Name: "x", Value: &ast.BinaryExpr{
			Op:    token.PLUS,
			Left:  &ast.IntLiteral{Value: 1},
			Right: &ast.FloatLiteral{Value: 2.5},
		}},
	}}}}
	c := NewChecker(functions, funccache.New())
	errs := c.Check(prog)
	if len(errs) != 1 || errs[0].Kind != ErrTypeMismatch {
		t.Fatalf("expected one type mismatch error, got %+v", errs)
	}
}

func TestCheckUndefinedVariable(t *testing.T) {
	prog := &ast.Program{Main: &ast.MainDecl{Body: &ast.BlockStmt{Stmts: []ast.Statement{
		&ast.ExprStmt{Expr: &ast.Identifier{Name: "missing"}},
	}}}}
	c := NewChecker(map[string]*parser.FunctionEntry{}, funccache.New())
	errs := c.Check(prog)
	if len(errs) != 1 || errs[0].Kind != ErrUndefinedVariable {
		t.Fatalf("expected one undefined-variable error, got %+v", errs)
	}
}

func TestCheckCallMonomorphizesGenericFunction(t *testing.T) {
	functions := map[string]*parser.FunctionEntry{
		"id": {ID: 0, Name: "id", ArgNames: []string{"x"}, ArgTypes: []types.Type{types.Generic}, ArgRefs: []bool{false}, Returns: types.Generic},
	}
	call1 := &ast.CallExpr{Name: "id", Args: []ast.Expression{&ast.IntLiteral{Value: 1}}}
	call2 := &ast.CallExpr{Name: "id", Args: []ast.Expression{&ast.TextLiteral{Parts: []ast.TextPart{{Literal: "hi"}}}}}
	prog := &ast.Program{Main: &ast.MainDecl{Body: &ast.BlockStmt{Stmts: []ast.Statement{
		&ast.ExprStmt{Expr: call1},
		&ast.ExprStmt{Expr: call2},
	}}}}
	c := NewChecker(functions, funccache.New())
	errs := c.Check(prog)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %+v", errs)
	}
	if call1.VariantID == call2.VariantID {
		t.Fatalf("expected distinct variants for Int and Text calls, got %d == %d", call1.VariantID, call2.VariantID)
	}
	if call1.GetType() != types.IntT {
		t.Fatalf("expected Int variant to return Int, got %v", call1.GetType())
	}
	if call2.GetType() != types.TextT {
		t.Fatalf("expected Text variant to return Text, got %v", call2.GetType())
	}
}

func TestCheckReferenceArgumentMustBeVariable(t *testing.T) {
	functions := map[string]*parser.FunctionEntry{
		"inc": {ID: 0, Name: "inc", ArgNames: []string{"x"}, ArgTypes: []types.Type{types.IntT}, ArgRefs: []bool{true}, Returns: types.VoidT},
	}
	prog := &ast.Program{Main: &ast.MainDecl{Body: &ast.BlockStmt{Stmts: []ast.Statement{
		&ast.ExprStmt{Expr: &ast.CallExpr{Name: "inc", Args: []ast.Expression{&ast.IntLiteral{Value: 1}}}},
	}}}}
	c := NewChecker(functions, funccache.New())
	errs := c.Check(prog)
	if len(errs) != 1 || errs[0].Kind != ErrReferenceArgument {
		t.Fatalf("expected one reference-argument error, got %+v", errs)
	}
}

func TestCheckCommandRequiresHandlerOrTrust(t *testing.T) {
	prog := &ast.Program{Main: &ast.MainDecl{Body: &ast.BlockStmt{Stmts: []ast.Statement{
		&ast.ExprStmt{Expr: &ast.CommandExpr{Parts: []ast.TextPart{{Literal: "echo hi"}}}},
	}}}}
	c := NewChecker(map[string]*parser.FunctionEntry{}, funccache.New())
	errs := c.Check(prog)
	if len(errs) != 1 || errs[0].Kind != ErrUnhandledCommand {
		t.Fatalf("expected one unhandled-command error, got %+v", errs)
	}
}

func TestCheckTrustConflictsWithPropagate(t *testing.T) {
	prog := &ast.Program{Main: &ast.MainDecl{Body: &ast.BlockStmt{Stmts: []ast.Statement{
		&ast.ExprStmt{Expr: &ast.CommandExpr{
			Modifiers: ast.CommandModifiers{Trust: true},
			Parts:     []ast.TextPart{{Literal: "echo hi"}},
			Handler:   &ast.FailureHandler{Kind: ast.HandlerPropagate},
		}},
	}}}}
	c := NewChecker(map[string]*parser.FunctionEntry{}, funccache.New())
	errs := c.Check(prog)
	if len(errs) != 1 || errs[0].Kind != ErrTrustConflict {
		t.Fatalf("expected one trust-conflict error, got %+v", errs)
	}
}
