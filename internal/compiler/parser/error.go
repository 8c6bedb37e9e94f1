package parser

import (
	"fmt"

	"github.com/ablang/abc/internal/compiler/token"
)

// ParserError is a structured parsing error: a position, a length (for
// caret-underline rendering), a human message, and a machine-readable code.
type ParserError struct {
	Message string
	Code    string
	Pos     token.Position
	Length  int
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos.String())
}

// NewParserError constructs a ParserError.
func NewParserError(pos token.Position, length int, message, code string) *ParserError {
	return &ParserError{Message: message, Pos: pos, Length: length, Code: code}
}

// Error code constants, one per distinct diagnosable shape a syntax module
// can fail on.
const (
	ErrUnexpectedToken    = "E_UNEXPECTED_TOKEN"
	ErrMissingSemicolon   = "E_MISSING_SEMICOLON"
	ErrMissingRParen      = "E_MISSING_RPAREN"
	ErrMissingRBracket    = "E_MISSING_RBRACKET"
	ErrMissingRBrace      = "E_MISSING_RBRACE"
	ErrMissingColon       = "E_MISSING_COLON"
	ErrMissingAssign      = "E_MISSING_ASSIGN"
	ErrInvalidExpression  = "E_INVALID_EXPRESSION"
	ErrExpectedIdent      = "E_EXPECTED_IDENT"
	ErrExpectedType       = "E_EXPECTED_TYPE"
	ErrUnhandledCommand   = "E_UNHANDLED_COMMAND"    // command with no handler and no trust
	ErrDuplicateHandler   = "E_DUPLICATE_HANDLER"    // a second failed/succeeded/exited/then
	ErrTrustConflict      = "E_TRUST_CONFLICT"       // trust combined with '?'
	ErrReferenceArgument  = "E_REFERENCE_ARGUMENT"   // ref param given a non-variable argument
)

// getErrorCodeForMissingToken maps a missing expected token to its specific
// error code, falling back to the generic unexpected-token code.
func getErrorCodeForMissingToken(t token.Type) string {
	switch t {
	case token.SEMICOLON:
		return ErrMissingSemicolon
	case token.RPAREN:
		return ErrMissingRParen
	case token.RBRACKET:
		return ErrMissingRBracket
	case token.RBRACE:
		return ErrMissingRBrace
	case token.COLON:
		return ErrMissingColon
	case token.ASSIGN:
		return ErrMissingAssign
	default:
		return ErrUnexpectedToken
	}
}
