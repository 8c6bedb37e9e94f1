package cmd

import (
	"strings"
	"testing"

	"github.com/ablang/abc/internal/compiler/ast"
)

func TestParamListRendersRefAndType(t *testing.T) {
	params := []ast.Param{
		{Name: "x", Annotation: &ast.TypeExpr{Name: "int"}},
		{Name: "y", IsReference: true, Annotation: &ast.TypeExpr{Name: "text"}},
		{Name: "z"},
	}
	got := paramList(params)
	want := "x: int, ref y: text, z"
	if got != want {
		t.Fatalf("paramList() = %q, want %q", got, want)
	}
}

func TestUsageSummarySkipsPrivateFunctions(t *testing.T) {
	prog := &ast.Program{Functions: []*ast.FunDecl{
		{Name: "pub_fn", IsPublic: true, Params: []ast.Param{{Name: "a"}}},
		{Name: "priv_fn", IsPublic: false},
	}}
	got := usageSummary(prog)
	if !strings.Contains(got, "pub_fn(a)") {
		t.Fatalf("usageSummary() = %q, want it to list pub_fn", got)
	}
	if strings.Contains(got, "priv_fn") {
		t.Fatalf("usageSummary() = %q, should not list private functions", got)
	}
}

func TestMarkdownDocsIncludesReturnType(t *testing.T) {
	prog := &ast.Program{Functions: []*ast.FunDecl{
		{Name: "add", IsPublic: true, Params: []ast.Param{{Name: "a"}, {Name: "b"}}, ReturnType: &ast.TypeExpr{Name: "int"}},
	}}
	got := markdownDocs("math.abc", prog)
	if !strings.Contains(got, "## add") {
		t.Fatalf("markdownDocs() = %q, want a heading for add", got)
	}
	if !strings.Contains(got, "public fun add(a, b): int") {
		t.Fatalf("markdownDocs() = %q, want the rendered signature", got)
	}
}
