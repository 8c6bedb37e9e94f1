// Package diagnostics formats compiler messages with source context,
// line/column information, and a caret pointing to the offending span.
// Grounded on the teacher's error-formatting conventions, generalized from
// a single CompilerError into the Message/Log accumulator spec.md §6/§7
// describes: severities, a position range, a short message, and an
// optional comment, collected across an entire compile rather than
// returned one at a time.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/ablang/abc/internal/compiler/token"
)

// Severity classifies a Message. A compile fails iff the Log contains at
// least one Error; Warnings are reported but do not halt compilation.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Message is a single diagnostic: a severity, a position, a short message,
// and an optional comment giving extra guidance.
type Message struct {
	Severity Severity
	Pos      token.Position
	Length   int
	Text     string
	Comment  string
}

// Format renders m with source context: a header, the offending source
// line, and a caret underline of m's span.
func (m Message) Format(source string) string {
	var sb strings.Builder
	if m.Pos.Path != "" {
		fmt.Fprintf(&sb, "%s: %s: %s\n", m.Pos.String(), m.Severity, m.Text)
	} else {
		fmt.Fprintf(&sb, "%s: %d:%d: %s\n", m.Severity, m.Pos.Row, m.Pos.Col, m.Text)
	}

	if line := sourceLine(source, m.Pos.Row); line != "" {
		prefix := fmt.Sprintf("%4d | ", m.Pos.Row)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")

		col := m.Pos.Col
		if col < 1 {
			col = 1
		}
		length := m.Length
		if length < 1 {
			length = 1
		}
		sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
		sb.WriteString(strings.Repeat("^", length))
		sb.WriteString("\n")
	}

	if m.Comment != "" {
		sb.WriteString(m.Comment)
		sb.WriteString("\n")
	}

	return sb.String()
}

func sourceLine(source string, row int) string {
	if source == "" || row < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if row > len(lines) {
		return ""
	}
	return lines[row-1]
}

// Log accumulates Messages across one compile. It is not safe for
// concurrent use; each compile owns its own Log (spec §5's single-threaded
// resource model).
type Log struct {
	messages []Message
}

// NewLog returns an empty Log.
func NewLog() *Log { return &Log{} }

// Add appends a Message.
func (l *Log) Add(m Message) { l.messages = append(l.messages, m) }

// Errorf logs an Error-severity message at pos.
func (l *Log) Errorf(pos token.Position, length int, format string, args ...any) {
	l.Add(Message{Severity: Error, Pos: pos, Length: length, Text: fmt.Sprintf(format, args...)})
}

// Warnf logs a Warning-severity message at pos.
func (l *Log) Warnf(pos token.Position, length int, format string, args ...any) {
	l.Add(Message{Severity: Warning, Pos: pos, Length: length, Text: fmt.Sprintf(format, args...)})
}

// Messages returns every logged Message in emission order.
func (l *Log) Messages() []Message { return l.messages }

// HasErrors reports whether the log contains at least one Error-severity
// message — the compile-abort condition (spec §6).
func (l *Log) HasErrors() bool {
	for _, m := range l.messages {
		if m.Severity == Error {
			return true
		}
	}
	return false
}

// Format renders every message against source, in emission order.
func (l *Log) Format(source string) string {
	var sb strings.Builder
	for i, m := range l.messages {
		sb.WriteString(m.Format(source))
		if i < len(l.messages)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
