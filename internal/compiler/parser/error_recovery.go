package parser

import (
	"fmt"

	"github.com/ablang/abc/internal/compiler/token"
)

// ErrorRecovery implements panic-mode recovery: after a Loud failure is
// reported, skip tokens until a synchronization point so the parser can
// keep going and report more than one error per compile.
type ErrorRecovery struct {
	parser *Parser
}

// NewErrorRecovery returns an ErrorRecovery bound to p.
func NewErrorRecovery(p *Parser) *ErrorRecovery { return &ErrorRecovery{parser: p} }

// SynchronizationSet names a predefined recovery token set.
type SynchronizationSet int

const (
	SyncStatementStarters SynchronizationSet = iota
	SyncBlockClosers
	SyncAll
)

var statementStarters = []token.Type{
	token.LET, token.IF, token.WHILE, token.LOOP, token.RETURN,
	token.BREAK, token.CONTINUE, token.IDENT,
}

var blockClosers = []token.Type{token.RBRACE}

// GetSyncTokens returns the token set named by s.
func (s SynchronizationSet) GetSyncTokens() []token.Type {
	switch s {
	case SyncStatementStarters:
		return statementStarters
	case SyncBlockClosers:
		return blockClosers
	case SyncAll:
		all := make([]token.Type, 0, len(statementStarters)+len(blockClosers))
		all = append(all, statementStarters...)
		all = append(all, blockClosers...)
		return all
	default:
		return nil
	}
}

// SynchronizeOn advances the parser's cursor until it lands on one of
// tokens or EOF.
func (er *ErrorRecovery) SynchronizeOn(tokens ...token.Type) bool {
	return er.parser.synchronize(tokens)
}

// SynchronizeOnSet synchronizes using a predefined set plus any extra
// tokens.
func (er *ErrorRecovery) SynchronizeOnSet(set SynchronizationSet, extra ...token.Type) bool {
	all := append(append([]token.Type{}, set.GetSyncTokens()...), extra...)
	return er.parser.synchronize(all)
}

// AddExpectError reports "expected X <context>, got Y instead" at the
// current token.
func (er *ErrorRecovery) AddExpectError(expected token.Type, context string) {
	got := er.parser.cursor.Current()
	var msg string
	if context != "" {
		msg = fmt.Sprintf("expected %s %s, got %s instead", expected, context, got.Type)
	} else {
		msg = fmt.Sprintf("expected %s, got %s instead", expected, got.Type)
	}
	er.parser.addError(msg, getErrorCodeForMissingToken(expected))
}

// AddError reports a plain message at the current token with code.
func (er *ErrorRecovery) AddError(msg, code string) {
	er.parser.addError(msg, code)
}

// IsAtSyncPoint reports whether the cursor already sits on a
// synchronization token.
func (er *ErrorRecovery) IsAtSyncPoint() bool {
	cur := er.parser.cursor.Current().Type
	for _, t := range statementStarters {
		if cur == t {
			return true
		}
	}
	for _, t := range blockClosers {
		if cur == t {
			return true
		}
	}
	return false
}
