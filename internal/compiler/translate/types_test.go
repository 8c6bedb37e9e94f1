package translate

import (
	"testing"

	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/funccache"
	"github.com/ablang/abc/internal/compiler/token"
	"github.com/ablang/abc/internal/compiler/types"
)

func TestExprTypePrefersResolvedType(t *testing.T) {
	tr := newTestTranslator()
	lit := intLit(1)
	lit.SetType(types.TextT)
	if got := tr.exprType(lit); got != types.TextT {
		t.Fatalf("exprType() = %v, want the checker-set TextT override", got)
	}
}

func TestExprTypeLiteralFallbacks(t *testing.T) {
	tr := newTestTranslator()
	cases := []struct {
		name string
		expr ast.Expression
		want types.Kind
	}{
		{"int", intLit(1), types.KindInt},
		{"float", &ast.FloatLiteral{Value: 1.5}, types.KindNum},
		{"bool", boolLit(true), types.KindBool},
		{"text", textLit("x"), types.KindText},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := tr.exprType(c.expr); got.Kind() != c.want {
				t.Fatalf("exprType(%s) = %v, want kind %v", c.name, got, c.want)
			}
		})
	}
}

func TestExprTypeArrayLiteralInfersFromFirstElement(t *testing.T) {
	tr := newTestTranslator()
	arr := &ast.ArrayLiteral{Elements: []ast.Expression{intLit(1), intLit(2)}}
	got := tr.exprType(arr)
	at, ok := got.(types.ArrayType)
	if !ok || at.Elem.Kind() != types.KindInt {
		t.Fatalf("exprType([1, 2]) = %v, want Array(Int)", got)
	}
}

func TestExprTypeEmptyArrayLiteralDefaultsToBool(t *testing.T) {
	tr := newTestTranslator()
	got := tr.exprType(&ast.ArrayLiteral{})
	at, ok := got.(types.ArrayType)
	if !ok || at.Elem.Kind() != types.KindBool {
		t.Fatalf("exprType([]) = %v, want Array(Bool) default", got)
	}
}

func TestExprTypeIdentifierFromScope(t *testing.T) {
	tr := newTestTranslator()
	tr.scope.define("x", varBinding{globalID: 1, typ: types.NumT})
	if got := tr.exprType(ident("x")); got != types.NumT {
		t.Fatalf("exprType(x) = %v, want NumT", got)
	}
}

func TestExprTypeUndeclaredIdentifierDefaultsToText(t *testing.T) {
	tr := newTestTranslator()
	if got := tr.exprType(ident("mystery")); got.Kind() != types.KindText {
		t.Fatalf("exprType(mystery) = %v, want Text default", got)
	}
}

func TestExprTypeUnaryIsOperandType(t *testing.T) {
	tr := newTestTranslator()
	u := &ast.UnaryExpr{Op: token.MINUS, Operand: &ast.FloatLiteral{Value: 1}}
	if got := tr.exprType(u); got.Kind() != types.KindNum {
		t.Fatalf("exprType(-1.0) = %v, want Num", got)
	}
}

func TestExprTypeCompareIsBool(t *testing.T) {
	tr := newTestTranslator()
	b := binExpr(token.LT, intLit(1), intLit(2))
	if got := tr.exprType(b); got.Kind() != types.KindBool {
		t.Fatalf("exprType(1 < 2) = %v, want Bool", got)
	}
}

func TestExprTypeAndOrIsBool(t *testing.T) {
	tr := newTestTranslator()
	b := binExpr(token.AND, boolLit(true), boolLit(false))
	if got := tr.exprType(b); got.Kind() != types.KindBool {
		t.Fatalf("exprType(true and false) = %v, want Bool", got)
	}
}

func TestExprTypeArithmeticPromotesToNum(t *testing.T) {
	tr := newTestTranslator()
	b := binExpr(token.PLUS, intLit(1), &ast.FloatLiteral{Value: 2})
	if got := tr.exprType(b); got.Kind() != types.KindNum {
		t.Fatalf("exprType(1 + 2.0) = %v, want Num (promoted)", got)
	}
}

func TestExprTypeArithmeticStaysIntWhenBothInt(t *testing.T) {
	tr := newTestTranslator()
	b := binExpr(token.PLUS, intLit(1), intLit(2))
	if got := tr.exprType(b); got.Kind() != types.KindInt {
		t.Fatalf("exprType(1 + 2) = %v, want Int", got)
	}
}

func TestExprTypeIndexIsElementType(t *testing.T) {
	tr := newTestTranslator()
	tr.scope.define("arr", varBinding{globalID: 1, typ: types.NewArray(types.TextT)})
	idx := &ast.IndexExpr{Array: ident("arr"), Index: intLit(0)}
	if got := tr.exprType(idx); got.Kind() != types.KindText {
		t.Fatalf("exprType(arr[0]) = %v, want Text", got)
	}
}

func TestExprTypeCallUsesCachedVariantReturn(t *testing.T) {
	tr := newTestTranslator()
	tr.cache = funccache.New()
	tr.cache.Store(&funccache.Variant{DeclID: 1, VariantID: 0, Returns: types.BoolT})
	call := &ast.CallExpr{DeclID: 1, VariantID: 0}
	if got := tr.exprType(call); got != types.BoolT {
		t.Fatalf("exprType(call) = %v, want the cached variant's Returns", got)
	}
}

func TestExprTypeCallMissingVariantDefaultsToText(t *testing.T) {
	tr := newTestTranslator()
	call := &ast.CallExpr{DeclID: 99, VariantID: 0}
	if got := tr.exprType(call); got.Kind() != types.KindText {
		t.Fatalf("exprType(unresolved call) = %v, want Text default", got)
	}
}

func TestExprTypeCommandIsText(t *testing.T) {
	tr := newTestTranslator()
	if got := tr.exprType(&ast.CommandExpr{}); got.Kind() != types.KindText {
		t.Fatalf("exprType(command) = %v, want Text", got)
	}
}
