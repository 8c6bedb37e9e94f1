package diagnostics

import (
	"strings"
	"testing"

	"github.com/ablang/abc/internal/compiler/token"
)

func TestLogHasErrors(t *testing.T) {
	log := NewLog()
	if log.HasErrors() {
		t.Fatal("empty log should not have errors")
	}
	log.Warnf(token.Position{Row: 1, Col: 1}, 1, "empty block")
	if log.HasErrors() {
		t.Fatal("warning-only log should not have errors")
	}
	log.Errorf(token.Position{Row: 2, Col: 3}, 1, "must handle result")
	if !log.HasErrors() {
		t.Fatal("log with an error message should report HasErrors")
	}
}

func TestMessageFormatIncludesCaret(t *testing.T) {
	log := NewLog()
	log.Errorf(token.Position{Row: 1, Col: 6}, 3, "unknown identifier %q", "foo")
	out := log.Format(`let x = foo`)
	if !strings.Contains(out, "unknown identifier \"foo\"") {
		t.Errorf("missing message text: %s", out)
	}
	if !strings.Contains(out, "^^^") {
		t.Errorf("missing caret underline of length 3: %s", out)
	}
	if !strings.Contains(out, "let x = foo") {
		t.Errorf("missing source line: %s", out)
	}
}

func TestMessagesInEmissionOrder(t *testing.T) {
	log := NewLog()
	log.Errorf(token.Position{Row: 1}, 1, "first")
	log.Errorf(token.Position{Row: 2}, 1, "second")
	msgs := log.Messages()
	if msgs[0].Text != "first" || msgs[1].Text != "second" {
		t.Errorf("messages out of order: %+v", msgs)
	}
}
