package compiler

import (
	"strings"
	"testing"
)

func TestCompileSimpleProgram(t *testing.T) {
	src := `main { let x = 1; }`
	result, err := Compile("test.abc", src, Options{})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !strings.HasPrefix(result.Script, "#!/bin/sh\n") {
		t.Fatalf("Compile() script should start with a shebang, got %q", result.Script)
	}
	if !strings.Contains(result.Script, `x_0="1"`) {
		t.Fatalf("Compile() script should assign x, got %q", result.Script)
	}
}

func TestCompileWithHeaderAndFooter(t *testing.T) {
	src := `main { let x = 1; }`
	result, err := Compile("test.abc", src, Options{Header: "set -eu", Footer: "exit 0"})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !strings.Contains(result.Script, "#!/bin/sh\nset -eu\n") {
		t.Fatalf("Compile() should place the header right after the shebang, got %q", result.Script)
	}
	if !strings.HasSuffix(result.Script, "exit 0\n") {
		t.Fatalf("Compile() should append the footer, got %q", result.Script)
	}
}

func TestCompileFunctionCall(t *testing.T) {
	src := `fun f(x: int): int { return x; } main { let y = f(1); }`
	result, err := Compile("test.abc", src, Options{})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !strings.Contains(result.Script, "f__0_v0()") {
		t.Fatalf("Compile() should emit the called function's definition, got %q", result.Script)
	}
}

func TestCompileParseErrorReturnsFormattedError(t *testing.T) {
	_, err := Compile("bad.abc", `fun f() { `, Options{})
	if err == nil {
		t.Fatal("Compile() with unterminated source should fail")
	}
	if !strings.Contains(err.Error(), "compile failed") {
		t.Fatalf("Error() = %q, want a formatted compile-failure message", err.Error())
	}
}

func TestCompileTypeErrorReturnsFormattedError(t *testing.T) {
	_, err := Compile("bad.abc", `main { let x = "a" + 1; }`, Options{})
	if err == nil {
		t.Fatal("Compile() with a type mismatch should fail")
	}
	if !strings.Contains(err.Error(), "compile failed") {
		t.Fatalf("Error() = %q, want a formatted compile-failure message", err.Error())
	}
}

func TestCompileMinifyOption(t *testing.T) {
	src := `main { let x = 1; }`
	result, err := Compile("test.abc", src, Options{Minify: true})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if result.Script == "" {
		t.Fatal("Compile() with Minify should still produce a script")
	}
}
