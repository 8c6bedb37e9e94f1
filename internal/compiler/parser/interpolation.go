package parser

import (
	"strings"

	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/lexer"
	"github.com/ablang/abc/internal/compiler/token"
)

// decodeEscape applies spec §4.2's region-dependent escape table to the
// character following a backslash. It returns the decoded rune(s) and
// whether the two-character sequence was recognized (an unrecognized
// escape is passed through verbatim, backslash included, by the caller).
func decodeEscape(c rune, isCommand bool) (string, bool) {
	switch c {
	case 'n':
		return "\n", true
	case 't':
		return "\t", true
	case 'r':
		return "\r", true
	case '0':
		return "\x00", true
	case '\\':
		return "\\", true
	case '{':
		return "{", true
	case '"':
		if !isCommand {
			return "\"", true
		}
		return "", false
	case '$':
		if isCommand {
			return "$", true
		}
		return "", false
	default:
		return "", false
	}
}

// parseInterpolated splits tok's decoded body (tok.Word minus its
// delimiters) into literal/expression parts, recursively parsing each
// `{expr}` span as a full expression with a fresh sub-lexer (spec §4.2
// "complex form"). isCommand selects the escape table.
func parseInterpolated(tok token.Token, isCommand bool, ctx *ParseContext) ([]ast.TextPart, *ParserError) {
	body := tok.Word
	if len(body) >= 2 {
		body = body[1 : len(body)-1]
	}
	runes := []rune(body)
	var parts []ast.TextPart
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, ast.TextPart{Literal: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case c == '\\' && i+1 < len(runes):
			decoded, ok := decodeEscape(runes[i+1], isCommand)
			if ok {
				lit.WriteString(decoded)
				i += 2
			} else {
				lit.WriteRune(c)
				i++
			}
		case c == '{':
			depth := 1
			j := i + 1
			for j < len(runes) && depth > 0 {
				switch runes[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth == 0 {
					break
				}
				j++
			}
			if depth != 0 {
				return nil, NewParserError(tok.Pos, tok.Length(), "unterminated interpolation", ErrUnexpectedToken)
			}
			flush()
			inner := string(runes[i+1 : j])
			expr, err := parseSubExpression(inner, tok.Pos, ctx)
			if err != nil {
				return nil, err
			}
			parts = append(parts, ast.TextPart{Expr: expr})
			i = j + 1
		default:
			lit.WriteRune(c)
			i++
		}
	}
	flush()
	return parts, nil
}

// parseSubExpression parses src (the text captured between interpolation
// braces) as a standalone expression, reusing the outer token's position
// for any error raised inside it.
func parseSubExpression(src string, pos token.Position, ctx *ParseContext) (ast.Expression, *ParserError) {
	sub := NewTokenCursor(lexer.New(src, pos.Path))
	r := ParseExpression(sub, ctx)
	if r.Kind != Ok {
		if r.Err != nil {
			return nil, r.Err
		}
		return nil, NewParserError(pos, 1, "expected expression inside interpolation", ErrInvalidExpression)
	}
	return r.Value, nil
}
