package fragment

import (
	"testing"

	"github.com/ablang/abc/internal/compiler/funccache"
	"github.com/ablang/abc/internal/compiler/token"
)

func TestArithmeticNativeIntAddition(t *testing.T) {
	a := NewArithmetic(token.PLUS, NewRaw("1"), NewRaw("2"), false, false)
	got := a.ToString(newMeta())
	if want := "$((1 + 2))"; got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
}

func TestArithmeticNumUsesBcEvenUnderNativeStrategy(t *testing.T) {
	a := NewArithmetic(token.PLUS, NewRaw("1.5"), NewRaw("2"), true, false)
	got := a.ToString(newMeta())
	want := `$(echo "1.5 + 2" | bc -l | sed 's/^\./0./')`
	if got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
}

func TestArithmeticBcSedStrategyAppliesToInt(t *testing.T) {
	meta := NewMetadata(funccache.New(), ArithBcSed, false)
	a := NewArithmetic(token.STAR, NewRaw("3"), NewRaw("4"), false, false)
	got := a.ToString(meta)
	want := `$(echo "3 * 4" | bc -l | sed 's/^\./0./')`
	if got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
}

func TestArithmeticCompareOmitsSed(t *testing.T) {
	a := NewArithmetic(token.LT, NewRaw("1"), NewRaw("2"), true, true)
	got := a.ToString(newMeta())
	want := `$(echo "1 < 2" | bc -l)`
	if got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
}
