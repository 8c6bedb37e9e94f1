package parser

import "github.com/ablang/abc/internal/compiler/token"

// Kind is the three-valued parse outcome spec §4.1/§9 names: a production
// either matched (Ok), didn't match but input is still viable for another
// alternative (Quiet), or matched partially and the input is invalid
// (Loud). Quiet is the backtracking signal; Loud is a committed error.
type Kind int

const (
	Ok Kind = iota
	Quiet
	Loud
)

// Result is the outcome of one production attempt. Cursor always reflects
// where parsing should continue: on Ok, past the matched tokens; on Quiet,
// unchanged (the caller's own cursor, so it can try the next alternative);
// on Loud, wherever the failure occurred (callers typically synchronize
// from here rather than resume normal parsing).
type Result[T any] struct {
	Kind   Kind
	Value  T
	Cursor *TokenCursor
	Err    *ParserError
}

func OkResult[T any](value T, cursor *TokenCursor) Result[T] {
	return Result[T]{Kind: Ok, Value: value, Cursor: cursor}
}

func QuietResult[T any](cursor *TokenCursor) Result[T] {
	return Result[T]{Kind: Quiet, Cursor: cursor}
}

func LoudResult[T any](err *ParserError, cursor *TokenCursor) Result[T] {
	return Result[T]{Kind: Loud, Err: err, Cursor: cursor}
}

func (r Result[T]) IsOk() bool    { return r.Kind == Ok }
func (r Result[T]) IsQuiet() bool { return r.Kind == Quiet }
func (r Result[T]) IsLoud() bool  { return r.Kind == Loud }

// ParseFunc is the uniform shape every syntax module's parse entry point
// has: given a cursor and the shared parse context, produce a Result.
type ParseFunc[T any] func(cursor *TokenCursor, ctx *ParseContext) Result[T]

// Context promotes a Quiet result from body into Loud, with msg/code as the
// committed error — the `context!` idiom spec §4.1 names: "we committed to
// this production, a failure is now fatal".
func Context[T any](body ParseFunc[T], msg, code string) ParseFunc[T] {
	return func(cursor *TokenCursor, ctx *ParseContext) Result[T] {
		r := body(cursor, ctx)
		if r.Kind == Quiet {
			return LoudResult[T](NewParserError(cursor.Position(), cursor.Length(), msg, code), cursor)
		}
		return r
	}
}

// TryParse runs parse and, if it didn't match (Quiet) or failed committed
// (Loud), returns a result whose Cursor is reset to the caller's starting
// cursor — making backtracking explicit at the call site rather than
// relying on every ParseFunc to leave the cursor untouched on its own.
func TryParse[T any](parse ParseFunc[T], cursor *TokenCursor, ctx *ParseContext) Result[T] {
	mark := cursor.Mark()
	r := parse(cursor, ctx)
	if r.Kind != Ok {
		r.Cursor = cursor.ResetTo(mark)
	}
	return r
}

// Optional makes a production's absence a successful Quiet-absorbing Ok: a
// nil-valued Ok if parse didn't match, otherwise a pointer to the matched
// value. Loud still propagates — Optional only absorbs Quiet.
func Optional[T any](parse ParseFunc[T]) ParseFunc[*T] {
	return func(cursor *TokenCursor, ctx *ParseContext) Result[*T] {
		r := TryParse(parse, cursor, ctx)
		switch r.Kind {
		case Ok:
			v := r.Value
			return OkResult[*T](&v, r.Cursor)
		case Quiet:
			return OkResult[*T](nil, r.Cursor)
		default:
			return LoudResult[*T](r.Err, r.Cursor)
		}
	}
}

// Many matches parse zero or more times, stopping (without consuming) at
// the first Quiet. A Loud mid-sequence propagates.
func Many[T any](parse ParseFunc[T]) ParseFunc[[]T] {
	return func(cursor *TokenCursor, ctx *ParseContext) Result[[]T] {
		var items []T
		for {
			r := TryParse(parse, cursor, ctx)
			if r.Kind == Loud {
				return LoudResult[[]T](r.Err, r.Cursor)
			}
			if r.Kind == Quiet {
				return OkResult(items, cursor)
			}
			items = append(items, r.Value)
			cursor = r.Cursor
		}
	}
}

// Many1 is Many but requires at least one match, else Quiet.
func Many1[T any](parse ParseFunc[T]) ParseFunc[[]T] {
	return func(cursor *TokenCursor, ctx *ParseContext) Result[[]T] {
		r := Many(parse)(cursor, ctx)
		if r.Kind == Ok && len(r.Value) == 0 {
			return QuietResult[[]T](cursor)
		}
		return r
	}
}

// ManyUntil matches parse repeatedly until stop reports true at the current
// cursor (checked before each attempt), or EOF.
func ManyUntil[T any](parse ParseFunc[T], stop func(*TokenCursor) bool) ParseFunc[[]T] {
	return func(cursor *TokenCursor, ctx *ParseContext) Result[[]T] {
		var items []T
		for !cursor.IsEOF() && !stop(cursor) {
			r := parse(cursor, ctx)
			if r.Kind != Ok {
				return Result[[]T]{Kind: r.Kind, Err: r.Err, Cursor: r.Cursor}
			}
			items = append(items, r.Value)
			cursor = r.Cursor
		}
		return OkResult(items, cursor)
	}
}

// Choice tries each alternative in order, returning the first Ok or the
// first Loud. If every alternative is Quiet, the whole Choice is Quiet.
func Choice[T any](parsers ...ParseFunc[T]) ParseFunc[T] {
	return func(cursor *TokenCursor, ctx *ParseContext) Result[T] {
		for _, p := range parsers {
			r := TryParse(p, cursor, ctx)
			if r.Kind != Quiet {
				return r
			}
		}
		return QuietResult[T](cursor)
	}
}

// pairResult is the value type Seq2 produces.
type pairResult[A, B any] struct {
	First  A
	Second B
}

// Seq2 runs two productions back to back, threading the cursor. Either
// failing (Quiet or Loud) aborts the sequence with that result.
func Seq2[A, B any](first ParseFunc[A], second ParseFunc[B]) ParseFunc[pairResult[A, B]] {
	return func(cursor *TokenCursor, ctx *ParseContext) Result[pairResult[A, B]] {
		r1 := first(cursor, ctx)
		if r1.Kind != Ok {
			return Result[pairResult[A, B]]{Kind: r1.Kind, Err: r1.Err, Cursor: r1.Cursor}
		}
		r2 := second(r1.Cursor, ctx)
		if r2.Kind != Ok {
			return Result[pairResult[A, B]]{Kind: r2.Kind, Err: r2.Err, Cursor: r2.Cursor}
		}
		return OkResult(pairResult[A, B]{First: r1.Value, Second: r2.Value}, r2.Cursor)
	}
}

// Between parses open, inner, close in sequence and yields inner's value.
// Missing close is promoted to Loud via closeMsg/closeCode (the commitment
// point: once open+inner matched, a missing close is always an error, not
// a backtrack signal).
func Between[T any](open token.Type, inner ParseFunc[T], close token.Type, closeMsg, closeCode string) ParseFunc[T] {
	return func(cursor *TokenCursor, ctx *ParseContext) Result[T] {
		if !cursor.Is(open) {
			return QuietResult[T](cursor)
		}
		cur := cursor.Advance()
		r := inner(cur, ctx)
		if r.Kind != Ok {
			return r
		}
		if !r.Cursor.Is(close) {
			return LoudResult[T](NewParserError(r.Cursor.Position(), r.Cursor.Length(), closeMsg, closeCode), r.Cursor)
		}
		return OkResult(r.Value, r.Cursor.Advance())
	}
}

// SeparatedList parses item repeatedly, separated by sep, requiring at
// least one item to match (else Quiet — an empty list is not this
// production's job; callers wrap with Optional where an empty list is
// valid).
func SeparatedList[T any](item ParseFunc[T], sep token.Type) ParseFunc[[]T] {
	return func(cursor *TokenCursor, ctx *ParseContext) Result[[]T] {
		first := TryParse(item, cursor, ctx)
		if first.Kind != Ok {
			return Result[[]T]{Kind: first.Kind, Err: first.Err, Cursor: first.Cursor}
		}
		items := []T{first.Value}
		cur := first.Cursor
		for cur.Is(sep) {
			next := item(cur.Advance(), ctx)
			if next.Kind != Ok {
				return Result[[]T]{Kind: next.Kind, Err: next.Err, Cursor: next.Cursor}
			}
			items = append(items, next.Value)
			cur = next.Cursor
		}
		return OkResult(items, cur)
	}
}

// Guard succeeds with no cursor advance iff pred holds, else Quiet — used
// to gate a production on a lookahead condition without consuming.
func Guard(pred func(*TokenCursor) bool) ParseFunc[struct{}] {
	return func(cursor *TokenCursor, ctx *ParseContext) Result[struct{}] {
		if pred(cursor) {
			return OkResult(struct{}{}, cursor)
		}
		return QuietResult[struct{}](cursor)
	}
}

// Peek1Is reports whether the current token has type t.
func Peek1Is(cursor *TokenCursor, t token.Type) bool { return cursor.Is(t) }

// PeekNIs reports whether the token n positions ahead has type t.
func PeekNIs(cursor *TokenCursor, n int, t token.Type) bool { return cursor.PeekIs(n, t) }

// SkipUntil advances cursor until it reaches one of the stop types or EOF,
// without reporting an error — used by syntax modules doing their own
// local recovery rather than the shared ErrorRecovery helper.
func SkipUntil(cursor *TokenCursor, stop ...token.Type) *TokenCursor {
	for !cursor.IsEOF() && !cursor.IsAny(stop...) {
		cursor = cursor.Advance()
	}
	return cursor
}

// SkipPast is SkipUntil followed by consuming the stop token itself, if one
// was found.
func SkipPast(cursor *TokenCursor, stop ...token.Type) *TokenCursor {
	cursor = SkipUntil(cursor, stop...)
	if cursor.IsAny(stop...) {
		cursor = cursor.Advance()
	}
	return cursor
}
