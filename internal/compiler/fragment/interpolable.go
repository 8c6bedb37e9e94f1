package fragment

import "strings"

// RenderType is the context an InterpolableFragment renders into (spec
// §4.6): a double-quoted shell string literal, or a bare command line.
type RenderType int

const (
	StringLiteral RenderType = iota
	GlobalContext
)

// InterpolablePart alternates a literal string chunk and an embedded
// fragment (spec §3 "Interpolable part").
type InterpolablePart struct {
	Literal string
	Interp  Fragment // nil iff this part is a literal chunk
}

// NewStringPart wraps a literal chunk.
func NewStringPart(s string) InterpolablePart { return InterpolablePart{Literal: s} }

// NewInterpPart wraps an embedded fragment.
func NewInterpPart(f Fragment) InterpolablePart { return InterpolablePart{Interp: f} }

func (p InterpolablePart) isRunningCommand() bool {
	return p.Interp != nil && p.Interp.IsRunningCommand()
}

func (p InterpolablePart) isMutating() bool {
	return p.Interp != nil && p.Interp.IsMutating()
}

// InterpolableFragment is the lowering of an interpolated text or command
// region (spec §4.4/§4.6).
type InterpolableFragment struct {
	Parts      []InterpolablePart
	RenderType RenderType
	Quoted     bool
}

// NewInterpolable constructs an InterpolableFragment, quoted by default.
func NewInterpolable(parts []InterpolablePart, renderType RenderType) *InterpolableFragment {
	return &InterpolableFragment{Parts: parts, RenderType: renderType, Quoted: true}
}

// WithQuotes returns f with Quoted set, for the nested-interpolable case
// (spec §4.6 "Nested interpolables").
func (f *InterpolableFragment) WithQuotes(quoted bool) *InterpolableFragment {
	f.Quoted = quoted
	return f
}

func (f *InterpolableFragment) Kind() Kind { return KindInterpolable }

func (f *InterpolableFragment) IsRunningCommand() bool {
	for _, p := range f.Parts {
		if p.isRunningCommand() {
			return true
		}
	}
	return false
}

func (f *InterpolableFragment) IsMutating() bool {
	for _, p := range f.Parts {
		if p.isMutating() {
			return true
		}
	}
	return false
}

func (f *InterpolableFragment) ToString(meta *Metadata) string {
	result := f.renderInterpolatedRegion(meta)
	if f.RenderType == StringLiteral {
		quote := ""
		if f.Quoted {
			quote = meta.GenQuote()
		}
		return quote + result + quote
	}
	return strings.TrimSpace(result)
}

// renderInterpolatedRegion concatenates the parts, balancing single quotes
// first when rendering into command (GlobalContext) position.
func (f *InterpolableFragment) renderInterpolatedRegion(meta *Metadata) string {
	parts := f.Parts
	if f.RenderType == GlobalContext {
		parts = balanceSingleQuotes(parts)
	}
	var out strings.Builder
	for _, part := range parts {
		if part.Interp == nil {
			out.WriteString(f.translateEscapedString(part.Literal))
			continue
		}
		if nested, ok := part.Interp.(*InterpolableFragment); ok {
			nested.RenderType = GlobalContext
			nested.Quoted = false
			out.WriteString(nested.ToString(meta))
			continue
		}
		out.WriteString(part.Interp.ToString(meta))
	}
	return out.String()
}

// translateEscapedString escapes one literal chunk per the render type's
// table (spec §4.6).
func (f *InterpolableFragment) translateEscapedString(s string) string {
	if f.RenderType == GlobalContext {
		return s
	}
	var out strings.Builder
	for _, c := range s {
		switch c {
		case '"':
			out.WriteString(`\"`)
		case '$':
			out.WriteString(`\$`)
		case '`':
			out.WriteString("\\`")
		case '\\':
			out.WriteString(`\\`)
		case '!':
			out.WriteString(`"'!'"`)
		default:
			out.WriteRune(c)
		}
	}
	return out.String()
}

// balanceSingleQuotes implements the §4.6 quote-balancing algorithm,
// grounded on original_source's interpolable.rs balance_single_quotes:
// scan each literal chunk's quoting state; if a chunk (not the last part)
// ends still inside a single-quoted region, close it locally with `'"`,
// remembering to reopen with `"'` at the start of the next chunk. If the
// sequence as a whole ends still "reopened", append a trailing lone `"`.
func balanceSingleQuotes(parts []InterpolablePart) []InterpolablePart {
	var inSingle, inDouble, reopenSingle bool
	out := make([]InterpolablePart, len(parts))
	copy(out, parts)

	for i := range out {
		if out[i].Interp != nil {
			continue
		}
		s := out[i].Literal
		if reopenSingle {
			s = "\"'" + s
			reopenSingle = false
		}
		scanQuoteState(s, &inSingle, &inDouble)

		hasMore := i+1 < len(out)
		if inSingle && hasMore {
			s += "'\""
			inSingle = false
			inDouble = true
			reopenSingle = true
		}
		out[i].Literal = s
	}
	if reopenSingle {
		out = append(out, InterpolablePart{Literal: "\""})
	}
	return out
}

// scanQuoteState scans s byte-by-byte, toggling *inSingle/*inDouble per
// backslash-parity escaping rules (spec §4.6).
func scanQuoteState(s string, inSingle, inDouble *bool) {
	backslashes := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			backslashes++
		case '"':
			if !*inSingle && backslashes%2 == 0 {
				*inDouble = !*inDouble
			}
			backslashes = 0
		case '\'':
			if !*inDouble && backslashes%2 == 0 {
				*inSingle = !*inSingle
			}
			backslashes = 0
		default:
			backslashes = 0
		}
	}
}
