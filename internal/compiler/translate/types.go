package translate

import (
	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/token"
	"github.com/ablang/abc/internal/compiler/types"
)

// exprType recovers e's type for translation decisions (arithmetic
// strategy, Text-vs-numeric comparison lowering). It prefers the type
// checker's own ResolvedType where available, falling back to a local
// structural inference mirroring typecheck/checker.go's checkExpr: the
// checker never walks a generic function's body at the declaration level
// (only checkCall records the call site's argument/return types), so nodes
// inside a monomorphized body were never annotated.
func (t *Translator) exprType(e ast.Expression) types.Type {
	if tn, ok := e.(interface{ GetType() types.Type }); ok {
		if got := tn.GetType(); got != nil {
			return got
		}
	}

	switch ex := e.(type) {
	case *ast.IntLiteral:
		return types.IntT
	case *ast.FloatLiteral:
		return types.NumT
	case *ast.BoolLiteral:
		return types.BoolT
	case *ast.TextLiteral:
		return types.TextT
	case *ast.ArrayLiteral:
		var elem types.Type = types.BoolT
		if len(ex.Elements) > 0 {
			elem = t.exprType(ex.Elements[0])
		}
		return types.NewArray(elem)
	case *ast.Identifier:
		if b, ok := t.scope.lookup(ex.Name); ok {
			return b.typ
		}
		return types.TextT
	case *ast.UnaryExpr:
		return t.exprType(ex.Operand)
	case *ast.BinaryExpr:
		return t.binaryExprType(ex)
	case *ast.IndexExpr:
		arrType := t.exprType(ex.Array)
		if at, ok := arrType.(types.ArrayType); ok {
			return at.Elem
		}
		return types.TextT
	case *ast.CallExpr:
		if v, ok := t.cache.GetByVariant(ex.DeclID, ex.VariantID); ok {
			return v.Returns
		}
		return types.TextT
	case *ast.CommandExpr:
		return types.TextT
	default:
		return types.TextT
	}
}

func (t *Translator) binaryExprType(ex *ast.BinaryExpr) types.Type {
	if isCompareOp(ex.Op) || ex.Op == token.AND || ex.Op == token.OR {
		return types.BoolT
	}
	left := t.exprType(ex.Left)
	right := t.exprType(ex.Right)
	if left != nil && left.Kind() == types.KindNum {
		return left
	}
	if right != nil && right.Kind() == types.KindNum {
		return right
	}
	if left != nil {
		return left
	}
	return right
}
