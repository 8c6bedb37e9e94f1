package fragment

import "testing"

func TestScanQuoteStateTogglesOnUnescapedQuote(t *testing.T) {
	var inSingle, inDouble bool
	scanQuoteState(`it's`, &inSingle, &inDouble)
	if !inSingle || inDouble {
		t.Fatalf("inSingle=%v inDouble=%v, want true/false", inSingle, inDouble)
	}
}

func TestScanQuoteStateIgnoresEscapedQuote(t *testing.T) {
	var inSingle, inDouble bool
	scanQuoteState(`it\'s`, &inSingle, &inDouble)
	if inSingle {
		t.Fatal("a backslash-escaped quote should not toggle the quote state")
	}
}

func TestScanQuoteStateDoubleQuoteSuppressesSingle(t *testing.T) {
	var inSingle, inDouble bool
	scanQuoteState(`"it's"`, &inSingle, &inDouble)
	if inSingle || inDouble {
		t.Fatalf("inSingle=%v inDouble=%v, want both closed", inSingle, inDouble)
	}
}

func TestBalanceSingleQuotesClosesAndReopensAcrossInterpolation(t *testing.T) {
	parts := []InterpolablePart{
		NewStringPart("it's"),
		NewInterpPart(NewRaw("$x")),
	}
	out := balanceSingleQuotes(parts)

	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3 (trailing closer appended)", len(out))
	}
	if got, want := out[0].Literal, `it's'"`; got != want {
		t.Fatalf("out[0].Literal = %q, want %q", got, want)
	}
	if out[1].Interp == nil {
		t.Fatal("out[1] should still be the interpolated part")
	}
	if got, want := out[2].Literal, `"`; got != want {
		t.Fatalf("out[2].Literal = %q, want %q", got, want)
	}
}

func TestBalanceSingleQuotesNoOpWhenBalanced(t *testing.T) {
	parts := []InterpolablePart{
		NewStringPart("plain text"),
		NewInterpPart(NewRaw("$x")),
		NewStringPart("more text"),
	}
	out := balanceSingleQuotes(parts)
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3 (no trailing closer needed)", len(out))
	}
	if out[0].Literal != "plain text" || out[2].Literal != "more text" {
		t.Fatalf("literals altered unexpectedly: %+v", out)
	}
}

func TestInterpolableStringLiteralEscapesAndQuotes(t *testing.T) {
	f := NewInterpolable([]InterpolablePart{NewStringPart(`say "hi" $x`)}, StringLiteral)
	got := f.ToString(newMeta())
	want := `"say \"hi\" \$x"`
	if got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
}

func TestInterpolableStringLiteralEscapesBang(t *testing.T) {
	f := NewInterpolable([]InterpolablePart{NewStringPart(`wow!`)}, StringLiteral)
	got := f.ToString(newMeta())
	want := `"wow"'!'""`
	if got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
}

func TestInterpolableGlobalContextTrimsAndSkipsEscaping(t *testing.T) {
	f := NewInterpolable([]InterpolablePart{NewStringPart("  echo hi  ")}, GlobalContext)
	got := f.ToString(newMeta())
	if got != "echo hi" {
		t.Fatalf("ToString() = %q, want %q", got, "echo hi")
	}
}

func TestInterpolableEmbedsNestedVarExpr(t *testing.T) {
	stmt := NewVarStmt("name", nil, NewRaw("world"))
	stmt.GlobalID = 1
	varExpr := VarExprFromStmt(stmt).WithQuotes(false)
	f := NewInterpolable([]InterpolablePart{
		NewStringPart("hello "),
		NewInterpPart(varExpr),
	}, StringLiteral)
	got := f.ToString(newMeta())
	want := `"hello ${name_1}"`
	if got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
}
