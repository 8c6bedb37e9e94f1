package typecheck

import "github.com/ablang/abc/internal/compiler/token"

// Kind classifies a semantic error for callers that want to branch on error
// shape (tests, IDE integrations) rather than match message text.
type Kind string

const (
	ErrTypeMismatch      Kind = "type_mismatch"
	ErrUndefinedVariable Kind = "undefined_variable"
	ErrUndefinedFunction Kind = "undefined_function"
	ErrRedeclaration     Kind = "redeclaration"
	ErrArgumentCount     Kind = "argument_count"
	ErrInvalidReturn     Kind = "invalid_return"
	ErrMissingReturn     Kind = "missing_return"
	ErrInvalidBreak      Kind = "invalid_break"
	ErrInvalidContinue   Kind = "invalid_continue"
	ErrReferenceArgument Kind = "reference_argument"
	ErrUnhandledCommand  Kind = "unhandled_command"
	ErrDuplicateHandler  Kind = "duplicate_handler"
	ErrTrustConflict     Kind = "trust_conflict"
)

// Error is one semantic-analysis finding.
type Error struct {
	Kind    Kind
	Pos     token.Position
	Length  int
	Message string
}
