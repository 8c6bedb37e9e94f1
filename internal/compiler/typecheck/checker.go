package typecheck

import (
	"fmt"

	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/funccache"
	"github.com/ablang/abc/internal/compiler/parser"
	"github.com/ablang/abc/internal/compiler/token"
	"github.com/ablang/abc/internal/compiler/types"
)

// Checker is the second compiler pass (spec §4.3): it resolves operator and
// call types over the tree the parser built, monomorphizes generic
// functions through cache, and validates the reference-parameter and
// trust/`?` structural rules.
type Checker struct {
	ctx   *PassContext
	cache *funccache.Cache
}

// NewChecker returns a Checker over functions (the declaration table the
// parser built) sharing cache with the translator that runs afterward.
func NewChecker(functions map[string]*parser.FunctionEntry, cache *funccache.Cache) *Checker {
	return &Checker{ctx: NewPassContext(functions), cache: cache}
}

// Name satisfies Pass.
func (c *Checker) Name() string { return "typecheck" }

// Run satisfies Pass: it type-checks the whole program, recording errors on
// the shared context (ctx is discarded; Checker keeps its own).
func (c *Checker) Run(prog *ast.Program, _ *PassContext) {
	for _, fn := range prog.Functions {
		c.checkFunction(fn)
	}
	if prog.Main != nil {
		c.ctx.WithScope(ScopeFunction, func() {
			c.checkBlock(prog.Main.Body)
		})
	}
}

// Check type-checks the whole program, via a single-pass PassManager run,
// and returns the accumulated errors.
func (c *Checker) Check(prog *ast.Program) []Error {
	NewPassManager(c).RunAll(prog, c.ctx)
	return c.ctx.Errors
}

func (c *Checker) checkFunction(fn *ast.FunDecl) {
	entry, ok := c.ctx.LookupFunction(fn.Name)
	if !ok {
		return // parser failed to register it; already reported there
	}
	if declHasGeneric(entry) {
		// Generic declarations are only checked per concrete variant, at
		// call sites (checkCall); checking the unresolved body here would
		// reject valid uses of the placeholder type.
		return
	}
	c.ctx.CurrentFunction = entry
	c.ctx.WithScope(ScopeFunction, func() {
		for i, name := range entry.ArgNames {
			c.ctx.Define(name, entry.ArgTypes[i])
		}
		c.checkBlock(fn.Body)
	})
	c.ctx.CurrentFunction = nil
}

func declHasGeneric(entry *parser.FunctionEntry) bool {
	for _, t := range entry.ArgTypes {
		if types.IsGeneric(t) {
			return true
		}
	}
	return false
}

func (c *Checker) checkBlock(b *ast.BlockStmt) {
	if b == nil {
		return
	}
	c.ctx.WithScope(ScopeBlock, func() {
		for _, s := range b.Stmts {
			c.checkStmt(s)
		}
	})
}

func (c *Checker) checkStmt(s ast.Statement) {
	switch st := s.(type) {
	case *ast.LetStmt:
		valType := c.checkExpr(st.Value)
		declared := valType
		if st.Annotation != nil {
			declared = st.Annotation.Resolved
			if declared != nil && valType != nil && !declared.Equals(valType) && !types.IsGeneric(declared) {
				c.err(ErrTypeMismatch, st.Pos(), 1,
					fmt.Sprintf("cannot assign %s to %s (declared %s)", valType, st.Name, declared))
			}
		}
		c.ctx.Define(st.Name, declared)
	case *ast.AssignStmt:
		declared, ok := c.ctx.Lookup(st.Name)
		valType := c.checkExpr(st.Value)
		if ok && declared != nil && valType != nil && !declared.Equals(valType) {
			c.err(ErrTypeMismatch, st.Pos(), 1,
				fmt.Sprintf("cannot assign %s to %s (declared %s)", valType, st.Name, declared))
		}
		if !ok {
			c.err(ErrUndefinedVariable, st.Pos(), len(st.Name), fmt.Sprintf("undefined variable %q", st.Name))
		}
	case *ast.ReturnStmt:
		if st.Value != nil {
			c.checkExpr(st.Value)
		}
		if c.ctx.CurrentFunction == nil {
			c.err(ErrInvalidReturn, st.Pos(), 1, "return outside a function")
		}
	case *ast.ExprStmt:
		c.checkExpr(st.Expr)
	case *ast.BlockStmt:
		c.checkBlock(st)
	case *ast.IfStmt:
		c.checkExpr(st.Cond)
		c.checkBlock(st.Then)
		if st.Else != nil {
			c.checkStmt(st.Else)
		}
	case *ast.WhileStmt:
		c.checkExpr(st.Cond)
		c.ctx.LoopDepth++
		c.checkBlock(st.Body)
		c.ctx.LoopDepth--
	case *ast.LoopStmt:
		c.ctx.LoopDepth++
		c.checkBlock(st.Body)
		c.ctx.LoopDepth--
	case *ast.BreakStmt:
		if c.ctx.LoopDepth == 0 {
			c.err(ErrInvalidBreak, st.Pos(), 1, "break outside a loop")
		}
	case *ast.ContinueStmt:
		if c.ctx.LoopDepth == 0 {
			c.err(ErrInvalidContinue, st.Pos(), 1, "continue outside a loop")
		}
	}
}

// checkExpr resolves e's type, records it on the node, and returns it.
func (c *Checker) checkExpr(e ast.Expression) types.Type {
	if e == nil {
		return nil
	}
	var t types.Type
	switch ex := e.(type) {
	case *ast.IntLiteral:
		t = types.IntT
	case *ast.FloatLiteral:
		t = types.NumT
	case *ast.BoolLiteral:
		t = types.BoolT
	case *ast.TextLiteral:
		for _, part := range ex.Parts {
			if part.Expr != nil {
				c.checkExpr(part.Expr)
			}
		}
		t = types.TextT
	case *ast.ArrayLiteral:
		var elem types.Type = types.VoidT
		for i, el := range ex.Elements {
			et := c.checkExpr(el)
			if i == 0 {
				elem = et
			}
		}
		t = types.NewArray(elem)
	case *ast.Identifier:
		if vt, ok := c.ctx.Lookup(ex.Name); ok {
			t = vt
		} else {
			c.err(ErrUndefinedVariable, ex.Pos(), len(ex.Name), fmt.Sprintf("undefined variable %q", ex.Name))
			t = types.VoidT
		}
	case *ast.UnaryExpr:
		t = c.checkUnary(ex)
	case *ast.BinaryExpr:
		t = c.checkBinary(ex)
	case *ast.IndexExpr:
		at := c.checkExpr(ex.Array)
		c.checkExpr(ex.Index)
		if arr, ok := at.(types.ArrayType); ok {
			t = arr.Elem
		} else {
			t = types.VoidT
		}
	case *ast.CallExpr:
		t = c.checkCall(ex)
	case *ast.CommandExpr:
		t = c.checkCommand(ex)
	default:
		t = types.VoidT
	}
	e.SetType(t)
	return t
}

func (c *Checker) checkUnary(ex *ast.UnaryExpr) types.Type {
	operand := c.checkExpr(ex.Operand)
	switch ex.Op {
	case token.NOT:
		if operand != nil && operand.Kind() != types.KindBool {
			c.err(ErrTypeMismatch, ex.Pos(), 1, "'not' requires a Bool operand")
		}
		return types.BoolT
	case token.MINUS:
		if operand != nil && operand.Kind() != types.KindInt && operand.Kind() != types.KindNum {
			c.err(ErrTypeMismatch, ex.Pos(), 1, "unary '-' requires an Int or Num operand")
		}
		return operand
	default:
		return operand
	}
}

func (c *Checker) checkBinary(ex *ast.BinaryExpr) types.Type {
	left := c.checkExpr(ex.Left)
	right := c.checkExpr(ex.Right)
	if left == nil || right == nil {
		return types.VoidT
	}
	switch ex.Op {
	case token.OR, token.AND:
		return types.BoolT
	case token.EQ, token.NEQ, token.LT, token.GT, token.LE, token.GE:
		if types.NumericMix(left, right) {
			c.err(ErrTypeMismatch, ex.Pos(), 1, "cannot compare Int and Num without an explicit conversion")
		} else if !types.Comparable(left) || !left.Equals(right) {
			c.err(ErrTypeMismatch, ex.Pos(), 1,
				fmt.Sprintf("cannot compare %s and %s", left, right))
		}
		return types.BoolT
	case token.PLUS, token.MINUS, token.STAR, token.SLASH:
		if types.NumericMix(left, right) {
			c.err(ErrTypeMismatch, ex.Pos(), 1, "cannot mix Int and Num without an explicit conversion")
			return left
		}
		if left.Kind() != types.KindInt && left.Kind() != types.KindNum {
			c.err(ErrTypeMismatch, ex.Pos(), 1, "arithmetic requires Int or Num operands")
		}
		return left
	default:
		return left
	}
}

// checkCall resolves a call site to a function declaration and, when the
// declaration carries Generic parameters, monomorphizes it through cache
// (spec §4.3 item 2, §4.8).
func (c *Checker) checkCall(ex *ast.CallExpr) types.Type {
	argTypes := make([]types.Type, len(ex.Args))
	for i, a := range ex.Args {
		argTypes[i] = c.checkExpr(a)
	}
	entry, ok := c.ctx.LookupFunction(ex.Name)
	if !ok {
		c.err(ErrUndefinedFunction, ex.Pos(), len(ex.Name), fmt.Sprintf("undefined function %q", ex.Name))
		return types.VoidT
	}
	if len(entry.ArgTypes) != len(argTypes) {
		c.err(ErrArgumentCount, ex.Pos(), len(ex.Name),
			fmt.Sprintf("%q expects %d arguments, got %d", ex.Name, len(entry.ArgTypes), len(argTypes)))
		return entry.Returns
	}

	for i, ref := range entry.ArgRefs {
		if ref && !isPureVariable(ex.Args[i]) {
			c.err(ErrReferenceArgument, ex.Args[i].Pos(), 1,
				fmt.Sprintf("parameter %q is by reference; pass a variable, not an expression", entry.ArgNames[i]))
		}
	}

	hasGeneric := declHasGeneric(entry)

	ex.DeclID = entry.ID
	if !hasGeneric {
		for i, declared := range entry.ArgTypes {
			if argTypes[i] != nil && !declared.Equals(argTypes[i]) {
				c.err(ErrTypeMismatch, ex.Args[i].Pos(), 1,
					fmt.Sprintf("argument %d of %q: expected %s, got %s", i+1, ex.Name, declared, argTypes[i]))
			}
		}
		ex.VariantID = 0
		return entry.Returns
	}

	concrete := types.VoidT
	for i, at := range entry.ArgTypes {
		if types.IsGeneric(at) && argTypes[i] != nil {
			concrete = argTypes[i]
			break
		}
	}
	if v, found := c.cache.Lookup(entry.ID, argTypes); found {
		ex.VariantID = v.VariantID
		return v.Returns
	}
	variantID := c.cache.Reserve(entry.ID, argTypes)
	ex.VariantID = variantID
	returns := types.Substitute(entry.Returns, concrete)
	c.cache.Store(&funccache.Variant{
		DeclID:    entry.ID,
		VariantID: variantID,
		ArgTypes:  append([]types.Type(nil), argTypes...),
		Returns:   returns,
	})
	return returns
}

// isPureVariable reports whether e is a bare identifier — the only
// expression shape a reference parameter may be bound to (spec §4.3 item 3).
func isPureVariable(e ast.Expression) bool {
	_, ok := e.(*ast.Identifier)
	return ok
}

// checkCommand validates the failure-handler structural rule (spec §4.9)
// and types the command expression as Failable(Text).
func (c *Checker) checkCommand(ex *ast.CommandExpr) types.Type {
	for _, part := range ex.Parts {
		if part.Expr != nil {
			c.checkExpr(part.Expr)
		}
	}
	if ex.Handler != nil && ex.Handler.Body != nil {
		c.ctx.WithScope(ScopeBlock, func() {
			if ex.Handler.ParamName != "" {
				c.ctx.Define(ex.Handler.ParamName, types.IntT)
			}
			c.checkBlock(ex.Handler.Body)
		})
	}
	if ex.Modifiers.Trust && ex.Handler != nil && ex.Handler.Kind == ast.HandlerPropagate {
		c.err(ErrTrustConflict, ex.Pos(), 1, "'trust' cannot combine with '?'")
	}
	if !ex.Modifiers.Trust && (ex.Handler == nil || ex.Handler.Kind == ast.HandlerNone) {
		c.err(ErrUnhandledCommand, ex.Pos(), 1, "command must be trusted or have a failure handler")
	}
	return types.NewFailable(types.TextT)
}

func (c *Checker) err(kind Kind, pos token.Position, length int, msg string) {
	c.ctx.AddError(Error{Kind: kind, Pos: pos, Length: length, Message: msg})
}
