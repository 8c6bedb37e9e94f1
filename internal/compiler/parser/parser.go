package parser

import (
	"github.com/ablang/abc/internal/compiler/diagnostics"
	"github.com/ablang/abc/internal/compiler/lexer"
	"github.com/ablang/abc/internal/compiler/token"
)

// Parser owns the token cursor, the parse context, and the accumulated
// errors for one compile. Syntax modules receive *Parser (or just its
// cursor/context, per call) rather than reading package-level state —
// spec §9 "Global mutable state" forbids a process-wide parser global.
type Parser struct {
	cursor *TokenCursor
	ctx    *ParseContext
	path   string
	source string
	log    *diagnostics.Log
	errors []*ParserError
}

// New creates a Parser over src, tokenizing it with l.
func New(l *lexer.Lexer, path, src string) *Parser {
	ctx := NewParseContext()
	return &Parser{
		cursor: NewTokenCursor(l),
		ctx:    ctx,
		path:   path,
		source: src,
		log:    ctx.Log,
	}
}

func (p *Parser) Cursor() *TokenCursor  { return p.cursor }
func (p *Parser) Context() *ParseContext { return p.ctx }
func (p *Parser) Log() *diagnostics.Log { return p.log }
func (p *Parser) Errors() []*ParserError { return p.errors }
func (p *Parser) Source() string        { return p.source }

// SetCursor repositions the parser, used by top-level driving code once a
// syntax module returns its advanced cursor.
func (p *Parser) SetCursor(c *TokenCursor) { p.cursor = c }

// addError records a ParserError at the cursor's current position and logs
// it into the shared diagnostic log.
func (p *Parser) addError(message, code string) {
	pos := p.cursor.Position()
	length := p.cursor.Length()
	p.errors = append(p.errors, NewParserError(pos, length, message, code))
	p.log.Errorf(pos, length, "%s", message)
}

// synchronize advances the cursor until it lands on one of tokens or EOF,
// returning false if EOF was reached first (panic-mode recovery, spec §9
// "Backtracking").
func (p *Parser) synchronize(tokens []token.Type) bool {
	for !p.cursor.IsEOF() {
		if p.cursor.IsAny(tokens...) {
			return true
		}
		p.cursor = p.cursor.Advance()
	}
	return false
}
