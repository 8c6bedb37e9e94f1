package translate

import (
	"strconv"
	"strings"

	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/fragment"
	"github.com/ablang/abc/internal/compiler/token"
	"github.com/ablang/abc/internal/compiler/types"
)

// translateExpr lowers e to a Fragment, pushing any required side-effect
// statements onto meta.stmt_queue (spec §4.5).
func (t *Translator) translateExpr(e ast.Expression) fragment.Fragment {
	switch ex := e.(type) {
	case *ast.IntLiteral:
		return fragment.NewRaw(strconv.FormatInt(ex.Value, 10))
	case *ast.FloatLiteral:
		return fragment.NewRaw(strconv.FormatFloat(ex.Value, 'f', -1, 64))
	case *ast.BoolLiteral:
		if ex.Value {
			return fragment.NewRaw("true")
		}
		return fragment.NewRaw("false")
	case *ast.TextLiteral:
		return t.translateTextLiteral(ex)
	case *ast.ArrayLiteral:
		return t.translateArrayLiteral(ex)
	case *ast.Identifier:
		return t.translateIdentifier(ex)
	case *ast.UnaryExpr:
		return t.translateUnary(ex)
	case *ast.BinaryExpr:
		return t.translateBinary(ex)
	case *ast.IndexExpr:
		return t.translateIndex(ex)
	case *ast.CallExpr:
		return t.translateCall(ex)
	case *ast.CommandExpr:
		return t.translateCommand(ex)
	default:
		return fragment.Empty
	}
}

func (t *Translator) translateTextLiteral(ex *ast.TextLiteral) fragment.Fragment {
	parts := make([]fragment.InterpolablePart, len(ex.Parts))
	for i, p := range ex.Parts {
		if p.Expr != nil {
			inner := t.translateExpr(p.Expr)
			parts[i] = fragment.NewInterpPart(inner)
		} else {
			parts[i] = fragment.NewStringPart(p.Literal)
		}
	}
	return fragment.NewInterpolable(parts, fragment.StringLiteral)
}

func (t *Translator) translateArrayLiteral(ex *ast.ArrayLiteral) fragment.Fragment {
	items := make([]fragment.Fragment, len(ex.Elements))
	for i, el := range ex.Elements {
		items[i] = t.translateExpr(el)
	}
	return fragment.NewList(items, " ")
}

func (t *Translator) translateIdentifier(ex *ast.Identifier) fragment.Fragment {
	b, ok := t.scope.lookup(ex.Name)
	if !ok {
		return fragment.NewRaw(ex.Name)
	}
	stmt := fragment.NewVarStmt(ex.Name, b.typ, fragment.Empty)
	stmt.GlobalID = b.globalID
	stmt.VariantSuffix = b.variantSuffix
	return fragment.VarExprFromStmt(stmt)
}

func (t *Translator) translateUnary(ex *ast.UnaryExpr) fragment.Fragment {
	operand := t.translateExpr(ex.Operand)
	switch ex.Op {
	case token.NOT:
		return fragment.NewList([]fragment.Fragment{fragment.NewRaw("!"), operand}, " ")
	case token.MINUS:
		return fragment.NewArithmetic(token.MINUS, fragment.NewRaw("0"), operand,
			t.exprType(ex.Operand).Kind() == types.KindNum, false)
	default:
		return operand
	}
}

func (t *Translator) translateBinary(ex *ast.BinaryExpr) fragment.Fragment {
	if ex.Op == token.AND || ex.Op == token.OR {
		sep := " && "
		if ex.Op == token.OR {
			sep = " || "
		}
		left := t.translateExpr(ex.Left)
		right := t.translateExpr(ex.Right)
		return fragment.NewList([]fragment.Fragment{left, right}, sep)
	}

	left := t.translateExpr(ex.Left)
	right := t.translateExpr(ex.Right)
	leftType := t.exprType(ex.Left)
	rightType := t.exprType(ex.Right)
	isNum := leftType.Kind() == types.KindNum || rightType.Kind() == types.KindNum
	isCompare := isCompareOp(ex.Op)

	if leftType.Kind() == types.KindText && isCompare {
		return t.translateTextCompare(ex.Op, left, right)
	}
	return fragment.NewArithmetic(ex.Op, left, right, isNum, isCompare)
}

func isCompareOp(op token.Type) bool {
	switch op {
	case token.EQ, token.NEQ, token.LT, token.GT, token.LE, token.GE:
		return true
	default:
		return false
	}
}

// translateTextCompare lowers Text comparisons to `test` operators, since
// `bc`/`$((...))` only compares numbers.
func (t *Translator) translateTextCompare(op token.Type, left, right fragment.Fragment) fragment.Fragment {
	testOp := "="
	if op == token.NEQ {
		testOp = "!="
	}
	expr := "[ " + left.ToString(t.meta) + " " + testOp + " " + right.ToString(t.meta) + " ]"
	return fragment.NewRaw(expr)
}

func (t *Translator) translateIndex(ex *ast.IndexExpr) fragment.Fragment {
	arr, ok := ex.Array.(*ast.Identifier)
	if !ok {
		return fragment.Empty
	}
	b, ok := t.scope.lookup(arr.Name)
	if !ok {
		return fragment.Empty
	}
	idx := t.translateExpr(ex.Index)
	ref := "${" + mangledName(arr.Name, b.globalID, b.variantSuffix) + "[" + idx.ToString(t.meta) + "]}"
	return fragment.NewRaw(`"` + ref + `"`)
}

// translateCall lowers a resolved function invocation to `$(name args)`
// (spec §4.8). Reference parameters pass the mangled variable name;
// value parameters pass the evaluated expression, with the array-unwrap
// special case from SPEC_FULL.md §4.
func (t *Translator) translateCall(ex *ast.CallExpr) fragment.Fragment {
	fn, ok := t.declByID[ex.DeclID]
	if !ok {
		return fragment.Empty
	}
	entry := t.functions[strings.ToLower(fn.Name)]
	mangled := t.ensureFunctionVariant(ex.DeclID, ex.VariantID)

	items := []fragment.Fragment{fragment.NewRaw(mangled)}
	for i, a := range ex.Args {
		if entry != nil && i < len(entry.ArgRefs) && entry.ArgRefs[i] {
			if ident, ok := a.(*ast.Identifier); ok {
				if b, ok := t.scope.lookup(ident.Name); ok {
					items = append(items, fragment.NewRaw(mangledName(ident.Name, b.globalID, b.variantSuffix)))
					continue
				}
			}
		}
		rendered := t.translateExpr(a).ToString(t.meta)
		items = append(items, fragment.NewRaw(unwrapArrayArg(rendered)))
	}
	return fragment.NewSubprocess(fragment.NewList(items, " "))
}

// unwrapArrayArg strips the quoting/indexing off an already-rendered
// `"${x[@]}"` argument so the callee does not double-wrap it.
func unwrapArrayArg(s string) string {
	if strings.HasPrefix(s, `"${`) && strings.HasSuffix(s, `[@]}"`) {
		return strings.TrimSuffix(strings.TrimPrefix(s, `"${`), `}"`)
	}
	return s
}

func mangledName(name string, globalID int, variantSuffix string) string {
	stmt := fragment.NewVarStmt(name, nil, fragment.Empty)
	stmt.GlobalID = globalID
	stmt.VariantSuffix = variantSuffix
	return stmt.MangledName()
}

// translateCommand lowers a `$...$` command literal (spec §4.2/§4.5/§4.9),
// applying the sudo/silent/suppress modifiers and the failure-handler
// state machine.
func (t *Translator) translateCommand(ex *ast.CommandExpr) fragment.Fragment {
	var cmdFrag fragment.Fragment
	t.meta.WithSilenced(ex.Modifiers.Silent, func() {
		t.meta.WithSuppress(ex.Modifiers.Suppress, func() {
			t.meta.WithSudoed(ex.Modifiers.Sudo, func() {
				cmdFrag = t.buildCommandLine(ex)
			})
		})
	})

	if ex.Handler == nil {
		return cmdFrag
	}

	switch ex.Handler.Kind {
	case ast.HandlerPropagate:
		return fragment.NewRaw(cmdFrag.ToString(t.meta) + ` || exit "$?"`)
	case ast.HandlerFailed, ast.HandlerSucceeded, ast.HandlerExited:
		return t.translateHandledCommand(cmdFrag, ex.Handler)
	default:
		return cmdFrag
	}
}

func (t *Translator) buildCommandLine(ex *ast.CommandExpr) fragment.Fragment {
	parts := make([]fragment.InterpolablePart, len(ex.Parts))
	for i, p := range ex.Parts {
		if p.Expr != nil {
			parts[i] = fragment.NewInterpPart(t.translateExpr(p.Expr))
		} else {
			parts[i] = fragment.NewStringPart(p.Literal)
		}
	}
	body := fragment.NewInterpolable(parts, fragment.GlobalContext)

	items := []fragment.Fragment{}
	if prefix := t.meta.GenSudoPrefix(); prefix != fragment.Empty {
		items = append(items, prefix)
	}
	items = append(items, body)
	if redirect := t.meta.GenSilent(); redirect != fragment.Empty {
		items = append(items, redirect)
	}
	if redirect := t.meta.GenSuppress(); redirect != fragment.Empty {
		items = append(items, redirect)
	}
	return fragment.NewList(items, " ")
}

// translateHandledCommand hoists the exit status into a variable before the
// user's block runs (SPEC_FULL.md §4 "Then/exited unification"), then
// branches on it for failed/succeeded or runs it unconditionally for
// exited/then.
func (t *Translator) translateHandledCommand(cmdFrag fragment.Fragment, h *ast.FailureHandler) fragment.Fragment {
	statusID := t.meta.GenValueID()
	statusName := h.ParamName
	if statusName == "" {
		statusName = "status"
	}
	statusStmt := fragment.NewVarStmt(statusName, types.IntT, fragment.NewRaw("$?"))
	statusStmt.GlobalID = statusID
	t.scope.define(statusName, varBinding{globalID: statusID, typ: types.IntT})

	runCmd := fragment.NewRaw(cmdFrag.ToString(t.meta))
	t.meta.PushStmt(runCmd)
	t.meta.PushStmt(statusStmt)

	statusRef := fragment.VarExprFromStmt(statusStmt).WithQuotes(false)

	switch h.Kind {
	case ast.HandlerFailed:
		return t.ifStatus(statusRef, "-ne", h.Body)
	case ast.HandlerSucceeded:
		return t.ifStatus(statusRef, "-eq", h.Body)
	default: // HandlerExited
		return t.translateBlock(h.Body, true)
	}
}

func (t *Translator) ifStatus(statusRef fragment.Fragment, cmp string, body *ast.BlockStmt) fragment.Fragment {
	cond := "[ " + statusRef.ToString(t.meta) + " " + cmp + " 0 ]"
	thenBody := t.translateBlock(body, false)
	var out strings.Builder
	out.WriteString("if " + cond + "; then\n")
	out.WriteString(thenBody.ToString(t.meta))
	out.WriteString(t.meta.GenIndent() + "fi")
	return fragment.NewRaw(out.String())
}
