package fragment

import "github.com/ablang/abc/internal/compiler/token"

// ArithmeticFragment renders a binary arithmetic/comparison operation
// using either the native integer strategy or the bc+sed float strategy
// (spec §4.4 "Arithmetic{op, left, right}", §4.7).
type ArithmeticFragment struct {
	Op        token.Type
	Left      Fragment
	Right     Fragment
	IsNum     bool // true forces the bc+sed strategy regardless of meta.Arith
	IsCompare bool
}

func NewArithmetic(op token.Type, left, right Fragment, isNum, isCompare bool) *ArithmeticFragment {
	return &ArithmeticFragment{Op: op, Left: left, Right: right, IsNum: isNum, IsCompare: isCompare}
}

func (a *ArithmeticFragment) Kind() Kind { return KindArithmetic }

func (a *ArithmeticFragment) IsRunningCommand() bool {
	return a.Left.IsRunningCommand() || a.Right.IsRunningCommand()
}

func (a *ArithmeticFragment) IsMutating() bool {
	return a.Left.IsMutating() || a.Right.IsMutating()
}

func (a *ArithmeticFragment) ToString(meta *Metadata) string {
	opText := arithOpText(a.Op)
	if meta.Arith == ArithNative && !a.IsNum {
		return "$((" + a.Left.ToString(meta) + " " + opText + " " + a.Right.ToString(meta) + "))"
	}
	expr := a.Left.ToString(meta) + " " + opText + " " + a.Right.ToString(meta)
	if a.IsCompare {
		return `$(echo "` + expr + `" | bc -l)`
	}
	return `$(echo "` + expr + `" | bc -l | sed 's/^\./0./')`
}

func arithOpText(op token.Type) string {
	switch op {
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.STAR:
		return "*"
	case token.SLASH:
		return "/"
	case token.PERCENT:
		return "%"
	case token.EQ:
		return "=="
	case token.NEQ:
		return "!="
	case token.LT:
		return "<"
	case token.GT:
		return ">"
	case token.LE:
		return "<="
	case token.GE:
		return ">="
	default:
		return "?"
	}
}
