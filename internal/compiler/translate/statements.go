package translate

import (
	"strings"

	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/fragment"
)

// translateStmt lowers one statement to a Fragment. Any side-effect
// fragments it needs (ephemeral captures, hoisted handler bodies) are
// pushed onto meta.stmt_queue by the expression translation it calls into;
// the caller (translateBlock) drains the queue immediately after.
func (t *Translator) translateStmt(s ast.Statement) fragment.Fragment {
	switch st := s.(type) {
	case *ast.LetStmt:
		return t.translateLet(st)
	case *ast.AssignStmt:
		return t.translateAssign(st)
	case *ast.ReturnStmt:
		return t.translateReturn(st)
	case *ast.ExprStmt:
		return t.translateExprStmt(st)
	case *ast.BlockStmt:
		return t.translateBlock(st, true)
	case *ast.IfStmt:
		return t.translateIf(st)
	case *ast.WhileStmt:
		return t.translateWhile(st)
	case *ast.LoopStmt:
		return t.translateLoop(st)
	case *ast.BreakStmt:
		return fragment.NewRaw("break")
	case *ast.ContinueStmt:
		return fragment.NewRaw("continue")
	default:
		return fragment.Empty
	}
}

func (t *Translator) translateLet(st *ast.LetStmt) fragment.Fragment {
	declared := t.exprType(st.Value)
	if st.Annotation != nil && st.Annotation.Resolved != nil {
		declared = st.Annotation.Resolved
	}
	value := t.translateExpr(st.Value)
	id := t.meta.GenValueID()
	t.scope.define(st.Name, varBinding{globalID: id, typ: declared})

	stmt := fragment.NewVarStmt(st.Name, declared, value)
	stmt.GlobalID = id
	return stmt
}

func (t *Translator) translateAssign(st *ast.AssignStmt) fragment.Fragment {
	b, ok := t.scope.lookup(st.Name)
	if !ok {
		b = varBinding{globalID: t.meta.GenValueID(), typ: t.exprType(st.Value)}
		t.scope.define(st.Name, b)
	}
	value := t.translateExpr(st.Value)
	stmt := fragment.NewVarStmt(st.Name, b.typ, value)
	stmt.GlobalID = b.globalID
	stmt.VariantSuffix = b.variantSuffix
	return stmt
}

// translateReturn lowers a return by printing the value to stdout, the
// idiomatic way a shell function communicates a non-integer result back to
// its call site's `$(name args)` capture (spec §4.8's call-site Subprocess
// wrapping is exactly the matching consumer of this convention).
func (t *Translator) translateReturn(st *ast.ReturnStmt) fragment.Fragment {
	if st.Value == nil {
		return fragment.NewRaw("return")
	}
	value := t.translateExpr(st.Value)
	return fragment.NewList([]fragment.Fragment{fragment.NewRaw("echo"), value}, " ")
}

// translateExprStmt lowers an expression evaluated for effect. Commands and
// calls run directly as a bare command line rather than through the
// `$(...)`/ephemeral-capture machinery a value-context use would need,
// since a captured-but-discarded subshell result would otherwise be
// executed as a command by the shell.
func (t *Translator) translateExprStmt(st *ast.ExprStmt) fragment.Fragment {
	switch ex := st.Expr.(type) {
	case *ast.CommandExpr:
		return t.translateCommand(ex)
	case *ast.CallExpr:
		return t.translateCallStatement(ex)
	default:
		return fragment.NewRaw(t.translateExpr(ex).ToString(t.meta))
	}
}

// translateCallStatement is translateCall without the Subprocess wrapper,
// for a call used purely for its side effects.
func (t *Translator) translateCallStatement(ex *ast.CallExpr) fragment.Fragment {
	call := t.translateCall(ex)
	sub, ok := call.(*fragment.SubprocessFragment)
	if !ok {
		return call
	}
	return fragment.NewRaw(sub.Inner.ToString(t.meta))
}

func (t *Translator) translateIf(st *ast.IfStmt) fragment.Fragment {
	cond := t.translateExpr(st.Cond)
	thenBody := t.translateBlock(st.Then, false)

	var out strings.Builder
	out.WriteString("if " + shellCondition(cond, t.meta) + "; then\n")
	out.WriteString(thenBody.ToString(t.meta))

	if st.Else == nil {
		out.WriteString(t.meta.GenIndent() + "fi")
		return fragment.NewRaw(out.String())
	}

	switch elseStmt := st.Else.(type) {
	case *ast.IfStmt:
		elseFrag := t.translateIf(elseStmt)
		out.WriteString(t.meta.GenIndent() + "el" + elseFrag.ToString(t.meta))
	case *ast.BlockStmt:
		elseBody := t.translateBlock(elseStmt, false)
		out.WriteString(t.meta.GenIndent() + "else\n")
		out.WriteString(elseBody.ToString(t.meta))
		out.WriteString(t.meta.GenIndent() + "fi")
	}
	return fragment.NewRaw(out.String())
}

func (t *Translator) translateWhile(st *ast.WhileStmt) fragment.Fragment {
	cond := t.translateExpr(st.Cond)
	body := t.translateBlock(st.Body, false)
	var out strings.Builder
	out.WriteString("while " + shellCondition(cond, t.meta) + "; do\n")
	out.WriteString(body.ToString(t.meta))
	out.WriteString(t.meta.GenIndent() + "done")
	return fragment.NewRaw(out.String())
}

func (t *Translator) translateLoop(st *ast.LoopStmt) fragment.Fragment {
	body := t.translateBlock(st.Body, false)
	var out strings.Builder
	out.WriteString("while true; do\n")
	out.WriteString(body.ToString(t.meta))
	out.WriteString(t.meta.GenIndent() + "done")
	return fragment.NewRaw(out.String())
}

// shellCondition renders a condition fragment as a shell-testable
// expression: a Bool-typed identifier/arithmetic gets wrapped in `[ ... ]`,
// a `[ ... ]` text comparison (already `test`-shaped) and `&&`/`||` boolean
// combinations are used as-is.
func shellCondition(cond fragment.Fragment, meta *fragment.Metadata) string {
	s := cond.ToString(meta)
	if len(s) > 0 && s[0] == '[' {
		return s
	}
	return "[ " + s + " -ne 0 ]"
}
