package fragment

import (
	"testing"

	"github.com/ablang/abc/internal/compiler/types"
)

func TestVarStmtMangledNameIncludesGlobalIDAndVariant(t *testing.T) {
	v := NewVarStmt("x", types.IntT, NewRaw("1"))
	v.GlobalID = 4
	if got, want := v.MangledName(), "x_4"; got != want {
		t.Fatalf("MangledName() = %q, want %q", got, want)
	}
	v.VariantSuffix = "1_v0"
	if got, want := v.MangledName(), "x_4_1_v0"; got != want {
		t.Fatalf("MangledName() = %q, want %q", got, want)
	}
}

func TestVarStmtScalarToString(t *testing.T) {
	v := NewVarStmt("x", types.TextT, NewRaw("hi"))
	v.GlobalID = 0
	if got, want := v.ToString(newMeta()), `x_0="hi"`; got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
}

func TestVarStmtArrayToString(t *testing.T) {
	v := NewVarStmt("xs", types.NewArray(types.IntT), NewRaw("1 2 3"))
	v.GlobalID = 2
	if got, want := v.ToString(newMeta()), "xs_2=(1 2 3)"; got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
}

func TestVarExprQuotedScalar(t *testing.T) {
	v := NewVarStmt("x", types.TextT, NewRaw("hi"))
	v.GlobalID = 0
	e := VarExprFromStmt(v)
	if got, want := e.ToString(newMeta()), `"${x_0}"`; got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
}

func TestVarExprUnquoted(t *testing.T) {
	v := NewVarStmt("x", types.TextT, NewRaw("hi"))
	v.GlobalID = 0
	e := VarExprFromStmt(v).WithQuotes(false)
	if got, want := e.ToString(newMeta()), "${x_0}"; got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
}

func TestVarExprArrayPreservesElementsByDefault(t *testing.T) {
	v := NewVarStmt("xs", types.NewArray(types.IntT), NewRaw("1 2 3"))
	v.GlobalID = 1
	e := VarExprFromStmt(v)
	if got, want := e.ToString(newMeta()), `"${xs_1[@]}"`; got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
}

func TestVarExprArrayToStringJoinsWithStar(t *testing.T) {
	v := NewVarStmt("xs", types.NewArray(types.IntT), NewRaw("1 2 3"))
	v.GlobalID = 1
	e := VarExprFromStmt(v).WithArrayToString(true)
	if got, want := e.ToString(newMeta()), `"${xs_1[*]}"`; got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
}
