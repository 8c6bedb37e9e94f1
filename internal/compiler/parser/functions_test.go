package parser

import (
	"testing"

	"github.com/ablang/abc/internal/compiler/types"
)

func TestParseFunDeclRegistersEntry(t *testing.T) {
	cursor := cursorFor(t, "fun add(x: int, y: int): int { return x + y; }")
	ctx := NewParseContext()
	r := ParseFunDecl(cursor, ctx)
	if !r.IsOk() {
		t.Fatalf("expected Ok, got %+v", r)
	}
	if r.Value.Name != "add" || len(r.Value.Params) != 2 {
		t.Fatalf("unexpected decl: %+v", r.Value)
	}
	entry, found := ctx.LookupFunction("add")
	if !found {
		t.Fatalf("expected 'add' to be registered")
	}
	if !entry.Returns.Equals(types.IntT) {
		t.Fatalf("expected Int return type, got %s", entry.Returns)
	}
}

func TestParseFunDeclPubAndGenericParam(t *testing.T) {
	cursor := cursorFor(t, "pub fun id(x) { return x; }")
	ctx := NewParseContext()
	r := ParseFunDecl(cursor, ctx)
	if !r.IsOk() {
		t.Fatalf("expected Ok, got %+v", r)
	}
	if !r.Value.IsPublic {
		t.Fatalf("expected IsPublic, got %+v", r.Value)
	}
	entry, _ := ctx.LookupFunction("id")
	if !types.IsGeneric(entry.ArgTypes[0]) {
		t.Fatalf("expected untyped param to default to Generic, got %s", entry.ArgTypes[0])
	}
}

func TestParseFunDeclRefParam(t *testing.T) {
	cursor := cursorFor(t, "fun inc(ref x: int) { x = x + 1; }")
	ctx := NewParseContext()
	r := ParseFunDecl(cursor, ctx)
	if !r.IsOk() {
		t.Fatalf("expected Ok, got %+v", r)
	}
	entry, _ := ctx.LookupFunction("inc")
	if !entry.ArgRefs[0] {
		t.Fatalf("expected the first parameter to be by-reference")
	}
}

func TestParseProgramFunctionsThenMain(t *testing.T) {
	cursor := cursorFor(t, "fun f(x: int): int { return x; } main { let y = f(1); }")
	ctx := NewParseContext()
	r := ParseProgram(cursor, ctx)
	if !r.IsOk() {
		t.Fatalf("expected Ok, got %+v", r)
	}
	if len(r.Value.Functions) != 1 || r.Value.Main == nil {
		t.Fatalf("expected one function and a main block, got %+v", r.Value)
	}
}

func TestParseProgramRequiresMain(t *testing.T) {
	cursor := cursorFor(t, "fun f() { }")
	ctx := NewParseContext()
	r := ParseProgram(cursor, ctx)
	if !r.IsLoud() {
		t.Fatalf("expected Loud when 'main' is missing, got %+v", r)
	}
}
