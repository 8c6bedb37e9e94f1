// Package funccache memoizes monomorphized function variants so a generic
// declaration is instantiated at most once per distinct tuple of concrete
// argument types.
package funccache

import (
	"strings"

	"github.com/ablang/abc/internal/compiler/ast"
	"github.com/ablang/abc/internal/compiler/types"
)

// Variant is one concrete instantiation of a function declaration (spec §3
// "Function instance").
type Variant struct {
	DeclID     int
	VariantID  int
	ArgTypes   []types.Type
	Returns    types.Type
	Body       *ast.BlockStmt // substituted and type-checked for this variant
	Translated string         // the emitted function definition, filled in by the translator on first use
}

// MangledName returns the emitted call-site identifier, spec §4.8:
// name__<decl_id>_v<variant_id>.
func (v *Variant) MangledName(declName string) string {
	var b strings.Builder
	b.WriteString(declName)
	b.WriteString("__")
	writeInt(&b, v.DeclID)
	b.WriteString("_v")
	writeInt(&b, v.VariantID)
	return b.String()
}

func writeInt(b *strings.Builder, n int) {
	if n == 0 {
		b.WriteByte('0')
		return
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	b.Write(digits[i:])
}

// key identifies a variant by its declaration and its concrete argument
// types, stringified since types.Type values are not comparable structs.
type key struct {
	declID int
	argSig string
}

func argSignature(argTypes []types.Type) string {
	var b strings.Builder
	for i, t := range argTypes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// idKey identifies a variant by declaration and variant id, for lookups at
// translate time when only the call site's (decl_id, variant_id) is known.
type idKey struct {
	declID    int
	variantID int
}

// Cache is the per-compile monomorphized-variant store.
type Cache struct {
	variants  map[key]*Variant
	byVariant map[idKey]*Variant
	nextID    map[int]int
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{
		variants:  make(map[key]*Variant),
		byVariant: make(map[idKey]*Variant),
		nextID:    make(map[int]int),
	}
}

// Lookup returns the cached variant for (declID, argTypes), if instantiated
// already.
func (c *Cache) Lookup(declID int, argTypes []types.Type) (*Variant, bool) {
	v, ok := c.variants[key{declID, argSignature(argTypes)}]
	return v, ok
}

// Reserve allocates the next variant id for declID without storing a body
// yet, so recursive calls within the body being instantiated can resolve
// against the same variant id.
func (c *Cache) Reserve(declID int, argTypes []types.Type) int {
	id := c.nextID[declID]
	c.nextID[declID] = id + 1
	return id
}

// Store records the finished variant.
func (c *Cache) Store(v *Variant) {
	c.variants[key{v.DeclID, argSignature(v.ArgTypes)}] = v
	c.byVariant[idKey{v.DeclID, v.VariantID}] = v
}

// GetByVariant looks a variant up by its (decl_id, variant_id) pair, used by
// the translator when a call site only carries the resolved variant id
// (spec §4.8).
func (c *Cache) GetByVariant(declID, variantID int) (*Variant, bool) {
	v, ok := c.byVariant[idKey{declID, variantID}]
	return v, ok
}
