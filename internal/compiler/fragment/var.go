package fragment

import (
	"strings"

	"github.com/ablang/abc/internal/compiler/types"
)

// VarStmtFragment renders to an assignment statement (spec §4.4
// "VarStmt{name, type, value, global_id, ephemeral}"). The emitted
// identifier mangles Name with GlobalID (and VariantSuffix, if the
// statement lives inside a monomorphized function body) to prevent
// collisions across scopes and variants.
type VarStmtFragment struct {
	Name          string
	Type          types.Type
	Value         Fragment
	GlobalID      int
	VariantSuffix string
	Ephemeral     bool
}

// NewVarStmt constructs a VarStmtFragment; GlobalID/VariantSuffix are
// filled in by the translator once the variable is scoped.
func NewVarStmt(name string, typ types.Type, value Fragment) *VarStmtFragment {
	return &VarStmtFragment{Name: name, Type: typ, Value: value}
}

func (v *VarStmtFragment) Kind() Kind { return KindVarStmt }

// MangledName is the identifier this statement assigns to.
func (v *VarStmtFragment) MangledName() string {
	var b strings.Builder
	b.WriteString(v.Name)
	b.WriteByte('_')
	writeInt(&b, v.GlobalID)
	if v.VariantSuffix != "" {
		b.WriteByte('_')
		b.WriteString(v.VariantSuffix)
	}
	return b.String()
}

func (v *VarStmtFragment) ToString(meta *Metadata) string {
	name := v.MangledName()
	if arr, ok := v.Type.(types.ArrayType); ok {
		_ = arr
		return name + "=(" + v.Value.ToString(meta) + ")"
	}
	return name + "=" + meta.GenQuote() + v.Value.ToString(meta) + meta.GenQuote()
}

func (v *VarStmtFragment) IsRunningCommand() bool { return v.Value.IsRunningCommand() }
func (v *VarStmtFragment) IsMutating() bool       { return true }

// VarExprFragment renders a reference to a previously declared variable
// (spec §4.4 "VarExpr{...}").
type VarExprFragment struct {
	Name          string
	Type          types.Type
	GlobalID      int
	VariantSuffix string
	Quoted        bool
	ArrayToString bool
}

// VarExprFromStmt builds the VarExpr referring to stmt's variable.
func VarExprFromStmt(stmt *VarStmtFragment) *VarExprFragment {
	return &VarExprFragment{
		Name:          stmt.Name,
		Type:          stmt.Type,
		GlobalID:      stmt.GlobalID,
		VariantSuffix: stmt.VariantSuffix,
		Quoted:        true,
	}
}

// WithQuotes returns e with Quoted set.
func (e *VarExprFragment) WithQuotes(quoted bool) *VarExprFragment {
	e.Quoted = quoted
	return e
}

// WithArrayToString returns e set to join array elements into a single
// string (`"${name[*]}"`) rather than preserving them (`"${name[@]}"`).
func (e *VarExprFragment) WithArrayToString(v bool) *VarExprFragment {
	e.ArrayToString = v
	return e
}

func (e *VarExprFragment) Kind() Kind { return KindVarExpr }

// MangledName is the identifier this expression refers to.
func (e *VarExprFragment) MangledName() string {
	var b strings.Builder
	b.WriteString(e.Name)
	b.WriteByte('_')
	writeInt(&b, e.GlobalID)
	if e.VariantSuffix != "" {
		b.WriteByte('_')
		b.WriteString(e.VariantSuffix)
	}
	return b.String()
}

func (e *VarExprFragment) ToString(meta *Metadata) string {
	name := e.MangledName()
	if _, isArray := e.Type.(types.ArrayType); isArray {
		sigil := "@"
		if e.ArrayToString {
			sigil = "*"
		}
		ref := "${" + name + "[" + sigil + "]}"
		if e.Quoted {
			return meta.GenQuote() + ref + meta.GenQuote()
		}
		return ref
	}
	ref := meta.GenDollar() + "{" + name + "}"
	if e.Quoted {
		return meta.GenQuote() + ref + meta.GenQuote()
	}
	return ref
}

func (e *VarExprFragment) IsRunningCommand() bool { return false }
func (e *VarExprFragment) IsMutating() bool       { return false }

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
