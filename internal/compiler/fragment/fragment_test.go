package fragment

import (
	"testing"

	"github.com/ablang/abc/internal/compiler/funccache"
)

func newMeta() *Metadata {
	return NewMetadata(funccache.New(), ArithNative, false)
}

func TestRawToString(t *testing.T) {
	r := NewRaw("echo hi")
	if got := r.ToString(newMeta()); got != "echo hi" {
		t.Fatalf("ToString() = %q", got)
	}
}

func TestListJoinsWithSep(t *testing.T) {
	l := NewList([]Fragment{NewRaw("a"), NewRaw("b"), NewRaw("c")}, ",")
	if got, want := l.ToString(newMeta()), "a,b,c"; got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
}

func TestListDefaultSepIsSpace(t *testing.T) {
	l := NewList([]Fragment{NewRaw("a"), NewRaw("b")}, "")
	if got, want := l.ToString(newMeta()), "a b"; got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
}

func TestBlockIndentsBracedBody(t *testing.T) {
	b := NewBlock([]Fragment{NewRaw("echo 1"), NewRaw("echo 2")}, true)
	meta := newMeta()
	// Render as nested inside the top-level block (indent 0), so the
	// braced body sits one unit deeper.
	meta.IncreaseIndent()
	got := b.ToString(meta)
	want := "{\n    echo 1\n    echo 2\n}"
	if got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
}

func TestBlockTopLevelHasNoIndent(t *testing.T) {
	b := NewBlock([]Fragment{NewRaw("echo 1")}, false)
	got := b.ToString(newMeta())
	if got != "echo 1\n" {
		t.Fatalf("ToString() = %q", got)
	}
}

func TestSubprocessWrapsInner(t *testing.T) {
	s := NewSubprocess(NewRaw("ls"))
	if got, want := s.ToString(newMeta()), "$(ls)"; got != want {
		t.Fatalf("ToString() = %q, want %q", got, want)
	}
	if !s.IsRunningCommand() {
		t.Fatal("Subprocess should report IsRunningCommand")
	}
}

func TestIsRunningCommandPropagatesThroughList(t *testing.T) {
	l := NewList([]Fragment{NewRaw("a"), NewSubprocess(NewRaw("ls"))}, " ")
	if !l.IsRunningCommand() {
		t.Fatal("List containing a Subprocess should report IsRunningCommand")
	}
}

func TestEmptyFragment(t *testing.T) {
	if Empty.ToString(newMeta()) != "" {
		t.Fatal("Empty should render to the empty string")
	}
	if Empty.IsRunningCommand() || Empty.IsMutating() {
		t.Fatal("Empty should not be running or mutating")
	}
}
